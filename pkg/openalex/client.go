package openalex

import "context"

// EntityClients provides one query builder per resource collection.
type EntityClients interface {
	Works() *Query[Work]
	Authors() *Query[Author]
	Sources() *Query[Source]
	Institutions() *Query[Institution]
	Concepts() *Query[Concept]
	Topics() *Query[Topic]
	Publishers() *Query[Publisher]
	Funders() *Query[Funder]
	Keywords() *Query[Keyword]
	Domains() *Query[Domain]
	Fields() *Query[Field]
	Subfields() *Query[Subfield]

	// People and Journals are historical aliases for Authors and Sources.
	People() *Query[Author]
	Journals() *Query[Source]

	// Collection returns a builder for any collection by name, for callers
	// that select the resource at runtime.
	Collection(resource Resource) *Query[Entity]
}

// ContentClient provides the bulk-content and full-text helpers around the
// works collection.
type ContentClient interface {
	// WorkNgrams fetches the n-grams extracted from a work's full text.
	WorkNgrams(ctx context.Context, workID string) (*NgramsResult, error)

	// DownloadContent fetches a content blob (PDF, TEI XML) by its absolute
	// URL, as produced by Work.PDFURL and Work.TEIURL.
	DownloadContent(ctx context.Context, rawURL string) ([]byte, error)
}

type Client interface {
	EntityClients
	ContentClient

	// Autocomplete runs a cross-collection search-as-you-type query.
	Autocomplete(ctx context.Context, text string) (*ListResult[Entity], error)
}
