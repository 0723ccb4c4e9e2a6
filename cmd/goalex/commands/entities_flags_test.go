package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalex-io/goalex/pkg/openalex"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestApplyQueryFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		flags    *entityFlags
		expected string
	}{
		{
			name:     "pipe-joined values build an OR predicate",
			flags:    &entityFlags{filters: []string{"institutions.country_code=tw|hk|us"}},
			expected: "https://api.openalex.org/works?filter=institutions.country_code:tw|hk|us",
		},
		{
			name:     "repeated filters stay conjunctive",
			flags:    &entityFlags{filters: []string{"publication_year=2020", "is_oa=true"}},
			expected: "https://api.openalex.org/works?filter=publication_year:2020,is_oa:true",
		},
		{
			name:     "operator prefixes on values",
			flags:    &entityFlags{filters: []string{"cited_by_count=>100", "publication_year=!2020"}},
			expected: "https://api.openalex.org/works?filter=cited_by_count:>100,publication_year:!2020",
		},
		{
			name:     "operator prefixes inside an OR list",
			flags:    &entityFlags{filters: []string{"institutions.country_code=!tw|!hk"}},
			expected: "https://api.openalex.org/works?filter=institutions.country_code:!tw|!hk",
		},
		{
			name:     "search filter rewrites the key",
			flags:    &entityFlags{searchFilters: []string{"display_name=einstein"}},
			expected: "https://api.openalex.org/works?filter=display_name.search:einstein",
		},
		{
			name:     "sort select and search",
			flags:    &entityFlags{sorts: []string{"cited_by_count=desc"}, selectFields: []string{"id", "doi"}, search: "malaria"},
			expected: "https://api.openalex.org/works?search=malaria&sort=cited_by_count:desc&select=id,doi",
		},
		{
			name:     "group by",
			flags:    &entityFlags{groupBy: "oa_status"},
			expected: "https://api.openalex.org/works?group-by=oa_status",
		},
		{
			name:     "sample with seed",
			flags:    &entityFlags{sample: 50, seed: 535},
			expected: "https://api.openalex.org/works?sample=50&seed=535",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			query := openalex.NewQuery[openalex.Entity](nil, openalex.DefaultBaseURL, openalex.ResourceWorks)
			require.NoError(t, applyQueryFlags(query, tt.flags))
			assert.Equal(t, tt.expected, query.URL())
		})
	}
}

func TestApplyQueryFlags_InvalidArguments(t *testing.T) {
	t.Parallel()

	query := openalex.NewQuery[openalex.Entity](nil, openalex.DefaultBaseURL, openalex.ResourceWorks)

	err := applyQueryFlags(query, &entityFlags{filters: []string{"publication_year"}})
	require.ErrorIs(t, err, ErrInvalidFilterFormat)

	err = applyQueryFlags(query, &entityFlags{searchFilters: []string{"=einstein"}})
	require.ErrorIs(t, err, ErrInvalidFilterFormat)

	err = applyQueryFlags(query, &entityFlags{sorts: []string{"cited_by_count"}})
	require.ErrorIs(t, err, ErrInvalidSortFormat)
}
