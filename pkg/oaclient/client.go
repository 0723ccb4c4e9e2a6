// Package oaclient provides the main entry point for creating OpenAlex API clients
package oaclient

import (
	"fmt"

	"github.com/goalex-io/goalex/internal/client"
	"github.com/goalex-io/goalex/pkg/openalex"
)

// New creates a new OpenAlex API client from the given configuration.
func New(config *openalex.Config) (openalex.Client, error) {
	if config == nil {
		return nil, openalex.ErrConfigRequired
	}

	cli, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// NewDefault creates an unauthenticated client against the public API.
func NewDefault() (openalex.Client, error) {
	return New(&openalex.Config{})
}

// NewWithEmail creates a client using the API's polite pool.
func NewWithEmail(email string) (openalex.Client, error) {
	return New(&openalex.Config{
		Email: email,
	})
}

// NewWithAPIKey creates a client authenticated with a premium API key.
func NewWithAPIKey(apiKey string) (openalex.Client, error) {
	return New(&openalex.Config{
		APIKey: apiKey,
	})
}
