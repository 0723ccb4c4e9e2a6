// Package client implements the openalex.Client interface on top of the
// internal HTTP transport.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/goalex-io/goalex/internal/auth"
	"github.com/goalex-io/goalex/internal/http"
	"github.com/goalex-io/goalex/pkg/openalex"
)

// Client implements the openalex.Client interface. It also satisfies
// openalex.Requester, so query builders issue their requests through the
// shared transport.
type Client struct {
	httpClient *http.Client
	baseURL    string
	contentURL string
	logger     openalex.Logger
}

// New creates a client from the given configuration.
func New(config *openalex.Config) (*Client, error) {
	if config == nil {
		return nil, openalex.ErrConfigRequired
	}

	baseURL := normalizeURL(config.BaseURL, openalex.DefaultBaseURL)

	httpOpts := createHTTPClientOptions(config)

	var provider auth.Provider
	if config.APIKey != "" || config.Email != "" {
		provider = auth.NewStatic(config.APIKey, config.Email)
	}

	client := &Client{
		httpClient: http.NewClient(baseURL, provider, httpOpts...),
		baseURL:    baseURL,
		contentURL: openalex.DefaultContentURL,
		logger:     config.Logger,
	}

	return client, nil
}

// normalizeURL trims a trailing slash and defaults the scheme to https.
func normalizeURL(rawURL, fallback string) string {
	if rawURL == "" {
		return fallback
	}

	rawURL = strings.TrimSuffix(rawURL, "/")

	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	return rawURL
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *openalex.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 || config.RetryWaitMin > 0 || config.RetryWaitMax > 0 {
		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	if len(config.RetryStatusCodes) > 0 {
		httpOpts = append(httpOpts, http.WithRetryStatusCodes(config.RetryStatusCodes))
	}

	return httpOpts
}

// Get implements openalex.Requester.
func (c *Client) Get(ctx context.Context, path string, rawQuery string) ([]byte, error) {
	return c.httpClient.Get(ctx, path, rawQuery)
}

// Resource query builders

// Works implements openalex.Client.Works.
func (c *Client) Works() *openalex.Query[openalex.Work] {
	return openalex.NewQuery[openalex.Work](c, c.baseURL, openalex.ResourceWorks)
}

// Authors implements openalex.Client.Authors.
func (c *Client) Authors() *openalex.Query[openalex.Author] {
	return openalex.NewQuery[openalex.Author](c, c.baseURL, openalex.ResourceAuthors)
}

// Sources implements openalex.Client.Sources.
func (c *Client) Sources() *openalex.Query[openalex.Source] {
	return openalex.NewQuery[openalex.Source](c, c.baseURL, openalex.ResourceSources)
}

// Institutions implements openalex.Client.Institutions.
func (c *Client) Institutions() *openalex.Query[openalex.Institution] {
	return openalex.NewQuery[openalex.Institution](c, c.baseURL, openalex.ResourceInstitutions)
}

// Concepts implements openalex.Client.Concepts.
func (c *Client) Concepts() *openalex.Query[openalex.Concept] {
	return openalex.NewQuery[openalex.Concept](c, c.baseURL, openalex.ResourceConcepts)
}

// Topics implements openalex.Client.Topics.
func (c *Client) Topics() *openalex.Query[openalex.Topic] {
	return openalex.NewQuery[openalex.Topic](c, c.baseURL, openalex.ResourceTopics)
}

// Publishers implements openalex.Client.Publishers.
func (c *Client) Publishers() *openalex.Query[openalex.Publisher] {
	return openalex.NewQuery[openalex.Publisher](c, c.baseURL, openalex.ResourcePublishers)
}

// Funders implements openalex.Client.Funders.
func (c *Client) Funders() *openalex.Query[openalex.Funder] {
	return openalex.NewQuery[openalex.Funder](c, c.baseURL, openalex.ResourceFunders)
}

// Keywords implements openalex.Client.Keywords.
func (c *Client) Keywords() *openalex.Query[openalex.Keyword] {
	return openalex.NewQuery[openalex.Keyword](c, c.baseURL, openalex.ResourceKeywords)
}

// Domains implements openalex.Client.Domains.
func (c *Client) Domains() *openalex.Query[openalex.Domain] {
	return openalex.NewQuery[openalex.Domain](c, c.baseURL, openalex.ResourceDomains)
}

// Fields implements openalex.Client.Fields.
func (c *Client) Fields() *openalex.Query[openalex.Field] {
	return openalex.NewQuery[openalex.Field](c, c.baseURL, openalex.ResourceFields)
}

// Subfields implements openalex.Client.Subfields.
func (c *Client) Subfields() *openalex.Query[openalex.Subfield] {
	return openalex.NewQuery[openalex.Subfield](c, c.baseURL, openalex.ResourceSubfields)
}

// People implements openalex.Client.People.
func (c *Client) People() *openalex.Query[openalex.Author] {
	return c.Authors()
}

// Journals implements openalex.Client.Journals.
func (c *Client) Journals() *openalex.Query[openalex.Source] {
	return c.Sources()
}

// Collection implements openalex.Client.Collection.
func (c *Client) Collection(resource openalex.Resource) *openalex.Query[openalex.Entity] {
	return openalex.NewQuery[openalex.Entity](c, c.baseURL, resource)
}

// Autocomplete implements openalex.Client.Autocomplete: a cross-collection
// search-as-you-type query against /autocomplete.
func (c *Client) Autocomplete(ctx context.Context, text string) (*openalex.ListResult[openalex.Entity], error) {
	if text == "" {
		return nil, openalex.ErrEmptyAutocomplete
	}

	body, err := c.httpClient.Get(ctx, "/autocomplete", "q="+url.QueryEscape(text))
	if err != nil {
		return nil, fmt.Errorf("autocompleting: %w", err)
	}

	return openalex.DecodeList[openalex.Entity](body, false)
}

// WorkNgrams implements openalex.Client.WorkNgrams.
func (c *Client) WorkNgrams(ctx context.Context, workID string) (*openalex.NgramsResult, error) {
	if workID == "" {
		return nil, openalex.ErrIDRequired
	}

	body, err := c.httpClient.Get(ctx, "/works/"+workID+"/ngrams", "")
	if err != nil {
		return nil, fmt.Errorf("getting ngrams: %w", err)
	}

	var result openalex.NgramsResult

	err = json.Unmarshal(body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing ngrams response: %w", err)
	}

	return &result, nil
}

// DownloadContent implements openalex.Client.DownloadContent.
func (c *Client) DownloadContent(ctx context.Context, rawURL string) ([]byte, error) {
	if rawURL == "" {
		return nil, openalex.ErrIDRequired
	}

	body, err := c.httpClient.GetAbsolute(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("downloading content: %w", err)
	}

	return body, nil
}
