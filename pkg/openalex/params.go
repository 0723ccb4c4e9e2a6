package openalex

import (
	"net/url"
	"strconv"
	"strings"
)

// kv is a single pre-encoded top-level query parameter.
type kv struct {
	key   string
	value string
}

// Params is the accumulated state of one query: filter and sort expression
// trees plus the flat top-level parameters. It is mutated in place by the
// query builder and read only at serialization time.
type Params struct {
	filter       *group
	sort         *group
	search       string
	hasSearch    bool
	groupBy      string
	selectFields []string
	sample       int
	hasSample    bool
	seed         int
	hasSeed      bool
	extra        []kv
}

// NewParams creates an empty parameter set.
func NewParams() *Params {
	return &Params{}
}

// Clone deep-copies the parameter set so a finalized request or a paginator
// snapshot is isolated from further builder mutation.
func (p *Params) Clone() *Params {
	cloned := *p

	if p.filter != nil {
		cloned.filter, _ = p.filter.clone().(*group)
	}

	if p.sort != nil {
		cloned.sort, _ = p.sort.clone().(*group)
	}

	cloned.selectFields = append([]string(nil), p.selectFields...)
	cloned.extra = append([]kv(nil), p.extra...)

	return &cloned
}

func (p *Params) addFilter(key string, value any, or bool, op wrapOp) {
	if p.filter == nil {
		p.filter = newEmptyGroup()
	}

	p.filter.set(key, value, or, op)
}

func (p *Params) addSort(key string, direction any) {
	if p.sort == nil {
		p.sort = newEmptyGroup()
	}

	p.sort.set(key, direction, false, 0)
}

func (p *Params) setSearch(text string) {
	p.search = text
	p.hasSearch = true
}

func (p *Params) setGroupBy(key string) {
	p.groupBy = key
}

func (p *Params) setSelect(fields []string) {
	p.selectFields = fields
}

func (p *Params) setSample(n int) {
	p.sample = n
	p.hasSample = true
}

func (p *Params) setSeed(seed int) {
	p.seed = seed
	p.hasSeed = true
}

// setExtra sets a verbatim top-level parameter such as search.semantic or q.
// Setting the same key twice overwrites.
func (p *Params) setExtra(key, value string) {
	for i := range p.extra {
		if p.extra[i].key == key {
			p.extra[i].value = value

			return
		}
	}

	p.extra = append(p.extra, kv{key: key, value: value})
}

func (p *Params) grouped() bool { return p.groupBy != "" }

func (p *Params) sampled() bool { return p.hasSample }

// encode renders the parameter set plus pagination arguments into the raw
// query string. Parameters follow a fixed emission order so URLs are
// reproducible; absent parameters are omitted entirely. Filter and sort
// values are already encoded by the expression tree, so the structural
// delimiters (".", ",", "|", ":", "+", "!", ">", "<") stay literal.
func (p *Params) encode(opts *GetOptions) string {
	var parts []string

	if p.filter != nil {
		parts = append(parts, "filter="+strings.Join(p.filter.tokens("", false), ","))
	}

	if p.hasSearch {
		parts = append(parts, "search="+url.QueryEscape(p.search))
	}

	if p.sort != nil {
		parts = append(parts, "sort="+strings.Join(p.sort.tokens("", false), ","))
	}

	if p.groupBy != "" {
		parts = append(parts, "group-by="+url.QueryEscape(p.groupBy))
	}

	if len(p.selectFields) > 0 {
		escaped := make([]string, len(p.selectFields))
		for i, field := range p.selectFields {
			escaped[i] = url.QueryEscape(field)
		}

		parts = append(parts, "select="+strings.Join(escaped, ","))
	}

	if p.hasSample {
		parts = append(parts, "sample="+strconv.Itoa(p.sample))
	}

	if p.hasSeed {
		parts = append(parts, "seed="+strconv.Itoa(p.seed))
	}

	for _, param := range p.extra {
		parts = append(parts, param.key+"="+url.QueryEscape(param.value))
	}

	if opts != nil {
		if opts.PerPage > 0 {
			parts = append(parts, "per-page="+strconv.Itoa(opts.PerPage))
		}

		if opts.Page > 0 {
			parts = append(parts, "page="+strconv.Itoa(opts.Page))
		}

		if opts.Cursor != "" {
			parts = append(parts, "cursor="+url.QueryEscape(opts.Cursor))
		}
	}

	return strings.Join(parts, "&")
}
