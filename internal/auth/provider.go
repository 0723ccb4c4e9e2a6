// Package auth supplies request credentials for the OpenAlex API.
package auth

import "context"

// EmailHeader carries the contact address for the API's polite pool.
const EmailHeader = "email"

// Provider yields the headers that authenticate one request. Implementations
// must be safe for concurrent use.
type Provider interface {
	Headers(ctx context.Context) (map[string]string, error)
}

// Static is a Provider backed by fixed credentials. Either field may be
// empty; an entirely empty Static authenticates nothing, which the API
// accepts.
type Static struct {
	// APIKey is the premium key, sent as a Bearer token.
	APIKey string

	// Email is the polite-pool contact address.
	Email string
}

// NewStatic creates a provider from fixed credentials.
func NewStatic(apiKey, email string) *Static {
	return &Static{APIKey: apiKey, Email: email}
}

// Headers returns the credential headers for one request.
func (s *Static) Headers(_ context.Context) (map[string]string, error) {
	headers := make(map[string]string, 2)

	if s.APIKey != "" {
		headers["Authorization"] = "Bearer " + s.APIKey
	}

	if s.Email != "" {
		headers[EmailHeader] = s.Email
	}

	return headers, nil
}
