package openalex

import (
	"context"
	"fmt"
	"strings"
)

// Resource names one of the API's resource collections. Its value is the
// lowercase path segment of the collection.
type Resource string

// Resource collections.
const (
	ResourceWorks        Resource = "works"
	ResourceAuthors      Resource = "authors"
	ResourceSources      Resource = "sources"
	ResourceInstitutions Resource = "institutions"
	ResourceConcepts     Resource = "concepts"
	ResourceTopics       Resource = "topics"
	ResourcePublishers   Resource = "publishers"
	ResourceFunders      Resource = "funders"
	ResourceKeywords     Resource = "keywords"
	ResourceDomains      Resource = "domains"
	ResourceFields       Resource = "fields"
	ResourceSubfields    Resource = "subfields"
)

// Resources lists every collection, in the order the CLI presents them.
var Resources = []Resource{
	ResourceWorks,
	ResourceAuthors,
	ResourceSources,
	ResourceInstitutions,
	ResourceConcepts,
	ResourceTopics,
	ResourcePublishers,
	ResourceFunders,
	ResourceKeywords,
	ResourceDomains,
	ResourceFields,
	ResourceSubfields,
}

// Requester is the narrow transport contract the query builder depends on:
// issue one GET and return the response body. The raw query string is
// pre-encoded by the serializer and must be sent verbatim.
type Requester interface {
	Get(ctx context.Context, path string, rawQuery string) ([]byte, error)
}

// GetOptions carries the pagination arguments of a single request. The zero
// value omits all three parameters, leaving page sizing to the server.
type GetOptions struct {
	Page    int
	PerPage int
	Cursor  string
}

// Query is a chainable builder for one request against a resource
// collection. Builder methods mutate the query in place and return it;
// executing methods serialize an isolated snapshot, so issuing a request
// never changes the builder's accumulated state. A Query is not safe for
// concurrent mutation.
type Query[T ~map[string]any] struct {
	requester Requester
	baseURL   string
	resource  Resource
	params    *Params
}

// NewQuery creates an empty query for one resource collection.
func NewQuery[T ~map[string]any](requester Requester, baseURL string, resource Resource) *Query[T] {
	return &Query[T]{
		requester: requester,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		resource:  resource,
		params:    NewParams(),
	}
}

// Clone returns an independent copy of the query and its accumulated
// parameters.
func (q *Query[T]) Clone() *Query[T] {
	cloned := *q
	cloned.params = q.params.Clone()

	return &cloned
}

// Filter AND-merges one predicate into the filter tree. The value may be a
// scalar, a slice (joined with the API's "+" conjunction token), a nested F
// map (rendered as a dotted path), or a value wrapped with Not, Gt or Lt.
func (q *Query[T]) Filter(key string, value any) *Query[T] {
	q.params.addFilter(key, value, false, 0)

	return q
}

// FilterOr merges a predicate whose list values are disjunctive: they join
// with "|" instead of "+". Sibling filter keys remain conjunctive.
func (q *Query[T]) FilterOr(key string, value any) *Query[T] {
	q.params.addFilter(key, value, true, 0)

	return q
}

// FilterNot merges a predicate with every leaf value negated.
func (q *Query[T]) FilterNot(key string, value any) *Query[T] {
	q.params.addFilter(key, value, false, opNot)

	return q
}

// FilterGt merges a predicate with every leaf value marked greater-than.
func (q *Query[T]) FilterGt(key string, value any) *Query[T] {
	q.params.addFilter(key, value, false, opGt)

	return q
}

// FilterLt merges a predicate with every leaf value marked less-than.
func (q *Query[T]) FilterLt(key string, value any) *Query[T] {
	q.params.addFilter(key, value, false, opLt)

	return q
}

// SearchFilter merges a per-field search predicate: the key is rewritten to
// key.search and merged as a normal filter.
func (q *Query[T]) SearchFilter(key string, value any) *Query[T] {
	q.params.addFilter(key+".search", value, false, 0)

	return q
}

// Sort merges one sort directive, e.g. Sort("cited_by_count", "desc").
func (q *Query[T]) Sort(key string, direction string) *Query[T] {
	q.params.addSort(key, direction)

	return q
}

// GroupBy requests a server-side aggregation over the given field; results
// become buckets instead of entity records.
func (q *Query[T]) GroupBy(key string) *Query[T] {
	q.params.setGroupBy(key)

	return q
}

// Search sets the full-text search parameter.
func (q *Query[T]) Search(text string) *Query[T] {
	q.params.setSearch(text)

	return q
}

// Similar requests records semantically similar to the given text.
func (q *Query[T]) Similar(text string) *Query[T] {
	q.params.setExtra("search.semantic", text)

	return q
}

// Sample requests a pseudo-random sample of n records. An optional seed
// makes the sample reproducible.
func (q *Query[T]) Sample(n int, seed ...int) *Query[T] {
	q.params.setSample(n)

	if len(seed) > 0 {
		q.params.setSeed(seed[0])
	}

	return q
}

// Select restricts returned records to the given fields.
func (q *Query[T]) Select(fields ...string) *Query[T] {
	q.params.setSelect(fields)

	return q
}

// URL returns the request URL the accumulated parameters serialize to,
// without pagination arguments. No I/O is performed.
func (q *Query[T]) URL() string {
	return q.urlFor(nil)
}

func (q *Query[T]) urlFor(opts *GetOptions) string {
	requestURL := q.baseURL + q.path()

	if rawQuery := q.params.encode(opts); rawQuery != "" {
		requestURL += "?" + rawQuery
	}

	return requestURL
}

func (q *Query[T]) path() string {
	return "/" + string(q.resource)
}

// Get issues the request and decodes one results page. Pagination arguments
// are validated before any network I/O.
func (q *Query[T]) Get(ctx context.Context, opts *GetOptions) (*ListResult[T], error) {
	if err := q.validate(opts); err != nil {
		return nil, err
	}

	// Snapshot so concurrent reuse of the builder cannot race the encode.
	snapshot := q.params.Clone()

	body, err := q.requester.Get(ctx, q.path(), snapshot.encode(opts))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", q.resource, err)
	}

	return DecodeList[T](body, snapshot.grouped())
}

func (q *Query[T]) validate(opts *GetOptions) error {
	if opts != nil {
		if err := validatePerPage(opts.PerPage); err != nil {
			return err
		}
	}

	if q.params.sampled() && q.params.sample < 1 {
		return ErrSampleSize
	}

	return nil
}

// Count issues a one-item request and returns the total count reported by
// the response metadata.
func (q *Query[T]) Count(ctx context.Context) (int, error) {
	result, err := q.Get(ctx, &GetOptions{PerPage: 1})
	if err != nil {
		return 0, err
	}

	return result.Meta.Count, nil
}

// GetByID fetches and decodes a single record. The identifier is appended to
// the collection path verbatim, so canonical URLs and DOIs work as-is.
func (q *Query[T]) GetByID(ctx context.Context, id string) (T, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	body, err := q.requester.Get(ctx, q.path()+"/"+id, "")
	if err != nil {
		return nil, fmt.Errorf("getting %s record: %w", q.resource, err)
	}

	return decodeEntity[T](body)
}

// Random fetches a single pseudo-random record via the reserved identifier.
func (q *Query[T]) Random(ctx context.Context) (T, error) {
	return q.GetByID(ctx, "random")
}

// GetMany fetches up to 100 records by identifier in one request, as an
// OR-filter on openalex_id.
func (q *Query[T]) GetMany(ctx context.Context, ids []string) (*ListResult[T], error) {
	if len(ids) == 0 {
		return nil, ErrIDRequired
	}

	if len(ids) > MaxBatchIDs {
		return nil, ErrTooManyIDs
	}

	return q.Clone().
		FilterOr("openalex_id", ids).
		Get(ctx, &GetOptions{PerPage: len(ids)})
}

// Autocomplete runs a search-as-you-type query against the collection's
// autocomplete endpoint, honoring any filters already accumulated.
func (q *Query[T]) Autocomplete(ctx context.Context, text string) (*ListResult[Entity], error) {
	if text == "" {
		return nil, ErrEmptyAutocomplete
	}

	snapshot := q.params.Clone()
	snapshot.setExtra("q", text)

	body, err := q.requester.Get(ctx, "/autocomplete"+q.path(), snapshot.encode(nil))
	if err != nil {
		return nil, fmt.Errorf("autocompleting %s: %w", q.resource, err)
	}

	return DecodeList[Entity](body, false)
}

func validatePerPage(perPage int) error {
	if perPage == 0 {
		return nil
	}

	if perPage < MinPerPage || perPage > MaxPerPage {
		return ErrPerPageRange
	}

	return nil
}
