package openalex

import "time"

// DefaultBaseURL is the public API endpoint.
const DefaultBaseURL = "https://api.openalex.org"

// DefaultContentURL is the host serving bulk work content (PDF, TEI XML).
const DefaultContentURL = "https://content.openalex.org"

// Query and pagination limits imposed by the API.
const (
	// MinPerPage and MaxPerPage bound the page size the API accepts.
	MinPerPage = 1
	MaxPerPage = 200

	// DefaultPerPage is the page size the server applies when none is
	// requested.
	DefaultPerPage = 25

	// MaxBatchIDs is the largest number of identifiers a batch lookup
	// accepts.
	MaxBatchIDs = 100

	// DefaultMaxResults caps how many records a paginator yields unless the
	// caller overrides it.
	DefaultMaxResults = 10000

	// CursorStart is the sentinel token that begins cursor pagination.
	CursorStart = "*"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an openalex.Client.
//
// All fields are optional; the zero value targets the public API
// unauthenticated. The upstream service applies its own policy to
// unauthenticated requests and may reject filtered or search queries with a
// structured error.
type Config struct {
	// BaseURL: API endpoint. Defaults to DefaultBaseURL. The constructor
	// normalizes this value by trimming a trailing slash and adding
	// "https://" if no scheme is present.
	BaseURL string

	// Email: contact address sent with every request (the API's "polite
	// pool"). Optional.
	Email string

	// APIKey: premium API key, sent as a Bearer token. Optional.
	APIKey string

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// HTTPTimeout: optional default HTTP timeout. If zero, a sensible
	// default is used; per-request deadlines should rely on context.
	HTTPTimeout time.Duration

	// RetryMax: maximum number of retries for transient failures. If 0, a
	// sensible default is used.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration
	// RetryStatusCodes: response codes considered transient. Defaults to
	// 429, 500 and 503.
	RetryStatusCodes []int

	// Debug enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
}
