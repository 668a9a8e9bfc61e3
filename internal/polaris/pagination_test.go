package polaris

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slaConnectionPage builds a globalSlaConnection response body.
func slaConnectionPage(names []string, endCursor string, hasNext bool) string {
	edges := ""
	for i, n := range names {
		if i > 0 {
			edges += ","
		}
		edges += fmt.Sprintf(`{"node": {"id": "id-%s", "name": "%s", "description": ""}}`, n, n)
	}
	return fmt.Sprintf(
		`{"data": {"globalSlaConnection": {"edges": [%s], "pageInfo": {"endCursor": "%s", "hasNextPage": %t}}}}`,
		edges, endCursor, hasNext)
}

func TestPaginate_ThreePages(t *testing.T) {
	pages := []string{
		slaConnectionPage([]string{"a", "b"}, "cursor-1", true),
		slaConnectionPage([]string{"c", "d"}, "cursor-2", true),
		slaConnectionPage([]string{"e"}, "", false),
	}

	gs := newGraphQLServer(t, func(req wireRequest, call int) (int, string) {
		switch call {
		case 1:
			assert.NotContains(t, req.Variables, "after")
		case 2:
			assert.Equal(t, "cursor-1", req.Variables["after"])
		case 3:
			assert.Equal(t, "cursor-2", req.Variables["after"])
		}
		return http.StatusOK, pages[call-1]
	})

	client := NewClient(gs.URL, "tok")
	nodes, err := paginate[slaNode](context.Background(), client, opSLAList,
		map[string]any{"first": 20}, "globalSlaConnection")

	require.NoError(t, err)
	require.Len(t, nodes, 5)

	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, names)
	assert.Len(t, gs.Requests(), 3, "one request per page")
}

func TestPaginate_DoesNotMutateCallerVariables(t *testing.T) {
	pages := []string{
		slaConnectionPage([]string{"a"}, "cursor-1", true),
		slaConnectionPage([]string{"b"}, "", false),
	}
	gs := newGraphQLServer(t, func(_ wireRequest, call int) (int, string) {
		return http.StatusOK, pages[call-1]
	})

	client := NewClient(gs.URL, "tok")
	variables := map[string]any{"first": 20}
	_, err := paginate[slaNode](context.Background(), client, opSLAList, variables, "globalSlaConnection")

	require.NoError(t, err)
	assert.NotContains(t, variables, "after")
}

func TestPaginate_MalformedPages(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		reason string
	}{
		{
			name:   "missing connection root",
			body:   `{"data": {}}`,
			reason: "missing globalSlaConnection connection",
		},
		{
			name:   "null connection root",
			body:   `{"data": {"globalSlaConnection": null}}`,
			reason: "missing globalSlaConnection connection",
		},
		{
			name:   "missing pageInfo",
			body:   `{"data": {"globalSlaConnection": {"edges": []}}}`,
			reason: "missing pageInfo",
		},
		{
			name:   "missing edges",
			body:   `{"data": {"globalSlaConnection": {"pageInfo": {"endCursor": "", "hasNextPage": false}}}}`,
			reason: "missing edges",
		},
		{
			name:   "edges is not a list",
			body:   `{"data": {"globalSlaConnection": {"edges": 42, "pageInfo": {"endCursor": "", "hasNextPage": false}}}}`,
			reason: "decode globalSlaConnection connection",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := newGraphQLServer(t, func(wireRequest, int) (int, string) {
				return http.StatusOK, tt.body
			})

			client := NewClient(gs.URL, "tok")
			nodes, err := paginate[slaNode](context.Background(), client, opSLAList,
				map[string]any{"first": 20}, "globalSlaConnection")

			require.Error(t, err)
			var pageErr *PaginationError
			require.ErrorAs(t, err, &pageErr)
			assert.Contains(t, pageErr.Reason, tt.reason)
			assert.Nil(t, nodes, "partial data must not be returned as complete")
		})
	}
}

func TestPaginate_MaxPagesBound(t *testing.T) {
	gs := newGraphQLServer(t, func(_ wireRequest, call int) (int, string) {
		// The server always reports another page.
		return http.StatusOK, slaConnectionPage(
			[]string{fmt.Sprintf("n%d", call)}, fmt.Sprintf("cursor-%d", call), true)
	})

	client := NewClient(gs.URL, "tok", WithMaxPages(2))
	nodes, err := paginate[slaNode](context.Background(), client, opSLAList,
		map[string]any{"first": 20}, "globalSlaConnection")

	require.NoError(t, err)
	assert.Len(t, nodes, 2)
	assert.Len(t, gs.Requests(), 2)
}

func TestPaginate_CancelledBeforeFirstPage(t *testing.T) {
	doer := &fakeDoer{responses: []string{slaConnectionPage([]string{"a"}, "", false)}}
	client := NewClient("https://example.test", "tok", WithHTTPClient(doer))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := paginate[slaNode](ctx, client, opSLAList, map[string]any{"first": 20}, "globalSlaConnection")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, doer.calls)
}

func TestPaginate_CancelledBetweenPages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	doer := &fakeDoer{
		responses: []string{
			slaConnectionPage([]string{"a"}, "cursor-1", true),
			slaConnectionPage([]string{"b"}, "", false),
		},
		onCall: func(int) { cancel() },
	}
	client := NewClient("https://example.test", "tok", WithHTTPClient(doer))

	_, err := paginate[slaNode](ctx, client, opSLAList, map[string]any{"first": 20}, "globalSlaConnection")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, doer.calls, "no fetch after cancellation")
}

func TestPaginate_HTTPError(t *testing.T) {
	gs := newGraphQLServer(t, func(wireRequest, int) (int, string) {
		return http.StatusInternalServerError, `{"message": "boom"}`
	})

	client := NewClient(gs.URL, "tok")
	_, err := paginate[slaNode](context.Background(), client, opSLAList,
		map[string]any{"first": 20}, "globalSlaConnection")

	assert.ErrorIs(t, err, ErrServerError)
}

func TestPaginate_GraphQLErrors(t *testing.T) {
	gs := newGraphQLServer(t, func(wireRequest, int) (int, string) {
		return http.StatusOK, `{"errors": [{"message": "field does not exist"}]}`
	})

	client := NewClient(gs.URL, "tok")
	_, err := paginate[slaNode](context.Background(), client, opSLAList,
		map[string]any{"first": 20}, "globalSlaConnection")

	var gqlErr *GraphQLError
	require.ErrorAs(t, err, &gqlErr)
	assert.Equal(t, "SLAList", gqlErr.Operation)
	assert.Contains(t, gqlErr.Error(), "field does not exist")
}
