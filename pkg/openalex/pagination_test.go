package openalex_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalex-io/goalex/pkg/openalex"
)

func cursorBody(t *testing.T, count int, ids []string, next string) []byte {
	t.Helper()

	results := make([]map[string]any, len(ids))
	for i, id := range ids {
		results[i] = map[string]any{"id": id}
	}

	meta := map[string]any{"count": count, "db_response_time_ms": 5, "page": 1, "per_page": 25}
	if next != "" {
		meta["next_cursor"] = next
	}

	body, err := json.Marshal(map[string]any{"meta": meta, "results": results})
	require.NoError(t, err)

	return body
}

func pageBody(t *testing.T, count, page int, ids []string) []byte {
	t.Helper()

	results := make([]map[string]any, len(ids))
	for i, id := range ids {
		results[i] = map[string]any{"id": id}
	}

	meta := map[string]any{"count": count, "db_response_time_ms": 5, "page": page, "per_page": 25}

	body, err := json.Marshal(map[string]any{"meta": meta, "results": results})
	require.NoError(t, err)

	return body
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestPaginator_Cursor(t *testing.T) {
	t.Parallel()
	t.Run("walks until the cursor runs out", func(t *testing.T) {
		t.Parallel()

		requester := &mockRequester{bodies: [][]byte{
			cursorBody(t, 3, []string{"W1", "W2"}, "tok-2"),
			cursorBody(t, 3, []string{"W3"}, ""),
		}}

		paginator, err := newWorksQuery(requester).Paginate(&openalex.PaginateOptions{PerPage: 2})
		require.NoError(t, err)

		var ids []string

		for paginator.HasNext() {
			page, err := paginator.Next(context.Background())
			require.NoError(t, err)

			for _, record := range page.Results {
				ids = append(ids, record.ShortID())
			}
		}

		assert.Equal(t, []string{"W1", "W2", "W3"}, ids)
		assert.Equal(t, 2, requester.calls)

		// First request starts at the sentinel, the second carries the token.
		assert.Equal(t, "per-page=2&cursor=%2A", requester.queries[0])
		assert.Equal(t, "per-page=2&cursor=tok-2", requester.queries[1])

		_, err = paginator.Next(context.Background())
		require.ErrorIs(t, err, openalex.ErrNoMorePages)
	})

	t.Run("truncates the final page at the result cap", func(t *testing.T) {
		t.Parallel()

		requester := &mockRequester{bodies: [][]byte{
			cursorBody(t, 10, []string{"W1", "W2"}, "tok-2"),
			cursorBody(t, 10, []string{"W3", "W4"}, "tok-3"),
		}}

		paginator, err := newWorksQuery(requester).Paginate(&openalex.PaginateOptions{PerPage: 2, MaxResults: 3})
		require.NoError(t, err)

		all, err := paginator.All(context.Background())
		require.NoError(t, err)
		assert.Len(t, all, 3)
		assert.Equal(t, 2, requester.calls)
		assert.False(t, paginator.HasNext())
	})

	t.Run("rejects cursor pagination over a sample", func(t *testing.T) {
		t.Parallel()

		_, err := newWorksQuery(&mockRequester{}).
			Sample(10).
			Paginate(&openalex.PaginateOptions{Method: openalex.MethodCursor})
		require.ErrorIs(t, err, openalex.ErrCursorWithSample)
	})

	t.Run("rejects per-page out of range", func(t *testing.T) {
		t.Parallel()

		_, err := newWorksQuery(&mockRequester{}).Paginate(&openalex.PaginateOptions{PerPage: 500})
		require.ErrorIs(t, err, openalex.ErrPerPageRange)
	})

	t.Run("rejects an unknown method", func(t *testing.T) {
		t.Parallel()

		_, err := newWorksQuery(&mockRequester{}).Paginate(&openalex.PaginateOptions{Method: "offset"})
		require.ErrorIs(t, err, openalex.ErrInvalidPagination)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestPaginator_Page(t *testing.T) {
	t.Parallel()
	t.Run("walks numbered pages until one comes back empty", func(t *testing.T) {
		t.Parallel()

		requester := &mockRequester{bodies: [][]byte{
			pageBody(t, 3, 1, []string{"W1", "W2"}),
			pageBody(t, 3, 2, []string{"W3"}),
			pageBody(t, 3, 3, nil),
		}}

		paginator, err := newWorksQuery(requester).Paginate(&openalex.PaginateOptions{
			Method:  openalex.MethodPage,
			PerPage: 2,
		})
		require.NoError(t, err)

		all, err := paginator.All(context.Background())
		require.NoError(t, err)
		assert.Len(t, all, 3)
		assert.Equal(t, 3, requester.calls)

		assert.Equal(t, "per-page=2&page=1", requester.queries[0])
		assert.Equal(t, "per-page=2&page=2", requester.queries[1])
		assert.Equal(t, "per-page=2&page=3", requester.queries[2])
	})

	t.Run("page pagination over a sample is allowed", func(t *testing.T) {
		t.Parallel()

		requester := &mockRequester{bodies: [][]byte{
			pageBody(t, 1, 1, []string{"W1"}),
			pageBody(t, 1, 2, nil),
		}}

		paginator, err := newWorksQuery(requester).
			Sample(10, 42).
			Paginate(&openalex.PaginateOptions{Method: openalex.MethodPage, PerPage: 10})
		require.NoError(t, err)

		all, err := paginator.All(context.Background())
		require.NoError(t, err)
		assert.Len(t, all, 1)
		assert.Equal(t, "sample=10&seed=42&per-page=10&page=1", requester.queries[0])
	})

	t.Run("starts from a caller-provided page", func(t *testing.T) {
		t.Parallel()

		requester := &mockRequester{bodies: [][]byte{
			pageBody(t, 10, 3, []string{"W5"}),
			pageBody(t, 10, 4, nil),
		}}

		paginator, err := newWorksQuery(requester).Paginate(&openalex.PaginateOptions{
			Method:  openalex.MethodPage,
			PerPage: 1,
			Page:    3,
		})
		require.NoError(t, err)

		_, err = paginator.All(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "per-page=1&page=3", requester.queries[0])
		assert.Equal(t, "per-page=1&page=4", requester.queries[1])
	})
}

func TestPaginator_ForEach(t *testing.T) {
	t.Parallel()

	requester := &mockRequester{bodies: [][]byte{
		cursorBody(t, 3, []string{"W1", "W2"}, "tok"),
		cursorBody(t, 3, []string{"W3"}, ""),
	}}

	paginator, err := newWorksQuery(requester).Paginate(nil)
	require.NoError(t, err)

	var seen []string

	err = paginator.ForEach(context.Background(), func(work openalex.Work) error {
		seen = append(seen, work.ShortID())

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"W1", "W2", "W3"}, seen)
}

func TestPaginator_GroupBy(t *testing.T) {
	t.Parallel()

	body, err := json.Marshal(map[string]any{
		"meta": map[string]any{"count": 2, "db_response_time_ms": 5, "page": 1, "per_page": 25},
		"group_by": []map[string]any{
			{"key": "gold", "key_display_name": "gold", "count": 10},
			{"key": "green", "key_display_name": "green", "count": 5},
		},
	})
	require.NoError(t, err)

	requester := &mockRequester{bodies: [][]byte{body}}

	paginator, err := newWorksQuery(requester).GroupBy("oa_status").Paginate(nil)
	require.NoError(t, err)

	page, err := paginator.Next(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Groups, 2)
	assert.Equal(t, "gold", page.Groups[0].Key)
	assert.False(t, paginator.HasNext())
}
