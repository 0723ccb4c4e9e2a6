package openalex

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Validation errors raised before any network I/O.
var (
	ErrPerPageRange       = errors.New("per-page should be a number between 1 and 200")
	ErrCursorWithSample   = errors.New("cursor pagination cannot be combined with sample")
	ErrTooManyIDs         = errors.New("batch lookup accepts at most 100 identifiers")
	ErrIDRequired         = errors.New("record identifier is required")
	ErrInvalidPagination  = errors.New(`pagination method should be "cursor" or "page"`)
	ErrSampleSize         = errors.New("sample size should be a positive number")
	ErrConfigRequired     = errors.New("config is required")
	ErrNoMorePages        = errors.New("no more pages")
	ErrUnexpectedResponse = errors.New("unexpected response shape")
	ErrEmptyAutocomplete  = errors.New("autocomplete query is required")
)

// QueryError is an error the API raised about the query itself: an invalid
// filter field, a missing or invalid API key, or a disallowed parameter
// combination. The upstream message is carried verbatim.
type QueryError struct {
	StatusCode int
	Message    string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query rejected by API: %s (status: %d)", e.Message, e.StatusCode)
}

// APIError is any other non-success response from the API, after retry
// exhaustion.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API request failed with status %d", e.StatusCode)
	}

	return fmt.Sprintf("%s (status: %d)", e.Message, e.StatusCode)
}

// errorBody is the JSON error envelope returned by the API.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewResponseError maps a non-2xx response body to the error taxonomy. A 4xx
// whose error field mentions query parameters or the API key becomes a
// *QueryError; everything else becomes a *APIError.
func NewResponseError(statusCode int, body []byte) error {
	var envelope errorBody

	_ = json.Unmarshal(body, &envelope)

	message := envelope.Message
	if message == "" {
		message = envelope.Error
	}

	if message == "" {
		message = strings.TrimSpace(string(body))
	}

	if statusCode >= 400 && statusCode < 500 {
		lowered := strings.ToLower(envelope.Error)
		if strings.Contains(lowered, "query parameters") || strings.Contains(lowered, "api key") ||
			strings.Contains(lowered, "api_key") {
			return &QueryError{StatusCode: statusCode, Message: message}
		}
	}

	return &APIError{StatusCode: statusCode, Message: message}
}

// IsQueryError checks if the error is a query validation error from the API.
func IsQueryError(err error) bool {
	queryErr := &QueryError{}

	return errors.As(err, &queryErr)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}

	return false
}
