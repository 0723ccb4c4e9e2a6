package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalex-io/goalex/internal/client"
	"github.com/goalex-io/goalex/pkg/openalex"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := client.New(nil)
		require.ErrorIs(t, err, openalex.ErrConfigRequired)
	})

	t.Run("defaults to the public endpoint", func(t *testing.T) {
		t.Parallel()

		c, err := client.New(&openalex.Config{})
		require.NoError(t, err)
		assert.Equal(t, "https://api.openalex.org/works", c.Works().URL())
	})

	t.Run("normalizes the base URL", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			baseURL  string
			expected string
		}{
			{"trailing slash", "https://api.example.org/", "https://api.example.org/works"},
			{"missing scheme", "api.example.org", "https://api.example.org/works"},
			{"explicit http", "http://localhost:8080", "http://localhost:8080/works"},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				c, err := client.New(&openalex.Config{BaseURL: tt.baseURL})
				require.NoError(t, err)
				assert.Equal(t, tt.expected, c.Works().URL())
			})
		}
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Queries(t *testing.T) {
	t.Parallel()
	t.Run("lists works", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/works", request.URL.Path)
			assert.Equal(t, "filter=publication_year:2020", request.URL.RawQuery)

			_ = json.NewEncoder(writer).Encode(map[string]any{
				"meta": map[string]any{"count": 2, "db_response_time_ms": 10, "page": 1, "per_page": 25},
				"results": []map[string]any{
					{"id": "https://openalex.org/W1", "display_name": "first"},
					{"id": "https://openalex.org/W2", "display_name": "second"},
				},
			})
		}))
		defer server.Close()

		c, err := client.New(&openalex.Config{BaseURL: server.URL})
		require.NoError(t, err)

		result, err := c.Works().Filter("publication_year", 2020).Get(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Meta.Count)
		require.Len(t, result.Results, 2)
		assert.Equal(t, "first", result.Results[0].DisplayName())
	})

	t.Run("fetches a single record", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/authors/A123", request.URL.Path)

			_ = json.NewEncoder(writer).Encode(map[string]any{
				"id":           "https://openalex.org/A123",
				"display_name": "Jane Doe",
			})
		}))
		defer server.Close()

		c, err := client.New(&openalex.Config{BaseURL: server.URL})
		require.NoError(t, err)

		author, err := c.Authors().GetByID(context.Background(), "A123")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", author.DisplayName())
	})

	t.Run("group-by yields buckets", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "group-by=is_oa", request.URL.RawQuery)

			_ = json.NewEncoder(writer).Encode(map[string]any{
				"meta": map[string]any{"count": 100, "db_response_time_ms": 5, "page": 1, "per_page": 25},
				"group_by": []map[string]any{
					{"key": "true", "key_display_name": "true", "count": 60},
					{"key": "false", "key_display_name": "false", "count": 40},
				},
			})
		}))
		defer server.Close()

		c, err := client.New(&openalex.Config{BaseURL: server.URL})
		require.NoError(t, err)

		result, err := c.Works().GroupBy("is_oa").Get(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, result.Groups, 2)
		assert.Equal(t, "true", result.Groups[0].Key)
		assert.Equal(t, 60, result.Groups[0].Count)
	})

	t.Run("collection by name", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/funders", request.URL.Path)

			_ = json.NewEncoder(writer).Encode(map[string]any{
				"meta":    map[string]any{"count": 0, "db_response_time_ms": 1, "page": 1, "per_page": 25},
				"results": []map[string]any{},
			})
		}))
		defer server.Close()

		c, err := client.New(&openalex.Config{BaseURL: server.URL})
		require.NoError(t, err)

		result, err := c.Collection(openalex.ResourceFunders).Get(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, result.Results)
	})

	t.Run("aliases share the underlying collection", func(t *testing.T) {
		t.Parallel()

		c, err := client.New(&openalex.Config{})
		require.NoError(t, err)

		assert.Equal(t, c.Authors().URL(), c.People().URL())
		assert.Equal(t, c.Sources().URL(), c.Journals().URL())
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Autocomplete(t *testing.T) {
	t.Parallel()
	t.Run("cross-collection", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/autocomplete", request.URL.Path)
			assert.Equal(t, "q=einst", request.URL.RawQuery)

			_ = json.NewEncoder(writer).Encode(map[string]any{
				"meta": map[string]any{"count": 1, "db_response_time_ms": 3, "page": 1, "per_page": 10},
				"results": []map[string]any{
					{"id": "https://openalex.org/A1", "display_name": "Albert Einstein"},
				},
			})
		}))
		defer server.Close()

		c, err := client.New(&openalex.Config{BaseURL: server.URL})
		require.NoError(t, err)

		result, err := c.Autocomplete(context.Background(), "einst")
		require.NoError(t, err)
		require.Len(t, result.Results, 1)
		assert.Equal(t, "Albert Einstein", result.Results[0].DisplayName())
	})

	t.Run("empty query", func(t *testing.T) {
		t.Parallel()

		c, err := client.New(&openalex.Config{})
		require.NoError(t, err)

		_, err = c.Autocomplete(context.Background(), "")
		require.ErrorIs(t, err, openalex.ErrEmptyAutocomplete)
	})

	t.Run("per-collection", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/autocomplete/institutions", request.URL.Path)
			assert.Equal(t, "q=harv", request.URL.RawQuery)

			_ = json.NewEncoder(writer).Encode(map[string]any{
				"meta": map[string]any{"count": 1, "db_response_time_ms": 3, "page": 1, "per_page": 10},
				"results": []map[string]any{
					{"id": "https://openalex.org/I1", "display_name": "Harvard University"},
				},
			})
		}))
		defer server.Close()

		c, err := client.New(&openalex.Config{BaseURL: server.URL})
		require.NoError(t, err)

		result, err := c.Institutions().Autocomplete(context.Background(), "harv")
		require.NoError(t, err)
		require.Len(t, result.Results, 1)
	})
}

func TestClient_WorkNgrams(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/works/W123/ngrams", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(map[string]any{
			"meta": map[string]any{"count": 1, "db_response_time_ms": 2, "page": 1, "per_page": 25},
			"ngrams": []map[string]any{
				{"ngram": "machine learning", "ngram_count": 4, "ngram_tokens": 2, "term_frequency": 0.001},
			},
		})
	}))
	defer server.Close()

	c, err := client.New(&openalex.Config{BaseURL: server.URL})
	require.NoError(t, err)

	result, err := c.WorkNgrams(context.Background(), "W123")
	require.NoError(t, err)
	require.Len(t, result.Ngrams, 1)
	assert.Equal(t, "machine learning", result.Ngrams[0].Ngram)
	assert.Equal(t, 4, result.Ngrams[0].NgramCount)

	_, err = c.WorkNgrams(context.Background(), "")
	require.ErrorIs(t, err, openalex.ErrIDRequired)
}

func TestClient_DownloadContent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/works/W123.pdf", request.URL.Path)
		writer.Header().Set("Content-Type", "application/pdf")
		_, _ = writer.Write([]byte("%PDF-1.7 payload"))
	}))
	defer server.Close()

	c, err := client.New(&openalex.Config{BaseURL: server.URL})
	require.NoError(t, err)

	body, err := c.DownloadContent(context.Background(), server.URL+"/works/W123.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 payload"), body)

	_, err = c.DownloadContent(context.Background(), "")
	require.ErrorIs(t, err, openalex.ErrIDRequired)
}
