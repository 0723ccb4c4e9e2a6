package openalex

import "context"

// PaginationMethod selects one of the API's two pagination protocols.
type PaginationMethod string

const (
	// MethodCursor walks an opaque server-issued continuation token.
	MethodCursor PaginationMethod = "cursor"

	// MethodPage walks numbered pages.
	MethodPage PaginationMethod = "page"
)

// PaginateOptions configures a Paginator. The zero value means cursor
// pagination from the start sentinel with the default result cap.
type PaginateOptions struct {
	// Method defaults to MethodCursor.
	Method PaginationMethod

	// PerPage is validated against the API bounds on every step.
	PerPage int

	// Cursor is the initial continuation token; defaults to CursorStart.
	Cursor string

	// Page is the initial page number; defaults to 1.
	Page int

	// MaxResults caps the total number of records yielded across pages.
	// Zero applies DefaultMaxResults; a negative value removes the cap.
	MaxResults int
}

// Paginator is a sequential, pull-based iterator over result pages. It
// yields one page per step and is not restartable: create a new one to
// iterate again. Pages are never fetched concurrently.
type Paginator[T ~map[string]any] struct {
	query      *Query[T]
	method     PaginationMethod
	perPage    int
	maxResults int

	cursor  string
	page    int
	yielded int
	done    bool
}

// Paginate returns a paginator bound to a snapshot of this query. Cursor
// pagination is rejected when a sample parameter is set: the API disallows
// combining the two.
func (q *Query[T]) Paginate(opts *PaginateOptions) (*Paginator[T], error) {
	if opts == nil {
		opts = &PaginateOptions{}
	}

	method := opts.Method
	if method == "" {
		method = MethodCursor
	}

	if method != MethodCursor && method != MethodPage {
		return nil, ErrInvalidPagination
	}

	if method == MethodCursor && q.params.sampled() {
		return nil, ErrCursorWithSample
	}

	if err := validatePerPage(opts.PerPage); err != nil {
		return nil, err
	}

	paginator := &Paginator[T]{
		query:      q.Clone(),
		method:     method,
		perPage:    opts.PerPage,
		maxResults: opts.MaxResults,
		cursor:     opts.Cursor,
		page:       opts.Page,
	}

	if paginator.maxResults == 0 {
		paginator.maxResults = DefaultMaxResults
	}

	if paginator.cursor == "" {
		paginator.cursor = CursorStart
	}

	if paginator.page == 0 {
		paginator.page = 1
	}

	return paginator, nil
}

// HasNext reports whether another page may be available.
func (p *Paginator[T]) HasNext() bool {
	return !p.done
}

// Next fetches the next page. It returns ErrNoMorePages once the cursor is
// exhausted, an empty page was returned in page mode, or the result cap was
// reached.
func (p *Paginator[T]) Next(ctx context.Context) (*ListResult[T], error) {
	if p.done {
		return nil, ErrNoMorePages
	}

	if err := validatePerPage(p.perPage); err != nil {
		return nil, err
	}

	opts := &GetOptions{PerPage: p.perPage}
	if p.method == MethodCursor {
		opts.Cursor = p.cursor
	} else {
		opts.Page = p.page
	}

	result, err := p.query.Get(ctx, opts)
	if err != nil {
		return nil, err
	}

	p.truncate(result)
	p.advance(result)

	return result, nil
}

// truncate trims the final page so the total yielded never exceeds the cap.
func (p *Paginator[T]) truncate(result *ListResult[T]) {
	if p.maxResults < 0 {
		p.yielded += pageLen(result)

		return
	}

	remaining := p.maxResults - p.yielded

	if len(result.Results) > remaining {
		result.Results = result.Results[:remaining]
	}

	if len(result.Groups) > remaining {
		result.Groups = result.Groups[:remaining]
	}

	p.yielded += pageLen(result)
}

func (p *Paginator[T]) advance(result *ListResult[T]) {
	if p.maxResults >= 0 && p.yielded >= p.maxResults {
		p.done = true

		return
	}

	if p.method == MethodCursor {
		if result.Meta.NextCursor == nil || *result.Meta.NextCursor == "" {
			p.done = true

			return
		}

		p.cursor = *result.Meta.NextCursor

		return
	}

	// Page mode: an empty page signals exhaustion.
	if pageLen(result) == 0 {
		p.done = true

		return
	}

	if result.Meta.Page != nil {
		p.page = *result.Meta.Page + 1
	} else {
		p.page++
	}
}

func pageLen[T ~map[string]any](result *ListResult[T]) int {
	if result.Groups != nil {
		return len(result.Groups)
	}

	return len(result.Results)
}

// All walks every remaining page and returns the flattened records.
func (p *Paginator[T]) All(ctx context.Context) ([]T, error) {
	var all []T

	for p.HasNext() {
		page, err := p.Next(ctx)
		if err != nil {
			return all, err
		}

		all = append(all, page.Results...)
	}

	return all, nil
}

// ForEach walks every remaining page and applies fn to each record,
// stopping at the first error.
func (p *Paginator[T]) ForEach(ctx context.Context, fn func(T) error) error {
	for p.HasNext() {
		page, err := p.Next(ctx)
		if err != nil {
			return err
		}

		for _, record := range page.Results {
			if err := fn(record); err != nil {
				return err
			}
		}
	}

	return nil
}
