package polaris

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/polaris-o365-go/internal/logger"
)

// pageInfo is the cursor state of a GraphQL connection page.
type pageInfo struct {
	EndCursor   string `json:"endCursor"`
	HasNextPage bool   `json:"hasNextPage"`
}

// edge wraps a single connection node.
type edge[T any] struct {
	Node T `json:"node"`
}

// connection is the generic GraphQL connection shape: edges[].node plus
// pageInfo{endCursor, hasNextPage}.
type connection[T any] struct {
	Edges    []edge[T] `json:"edges"`
	PageInfo *pageInfo `json:"pageInfo"`
}

// decodeConnection extracts the named connection root from a response
// envelope. A missing root, missing edges or missing pageInfo is a
// *PaginationError: pages of unknown shape must not be passed off as
// complete results.
func decodeConnection[T any](resp *gqlResponse, op operation, root string) (*connection[T], error) {
	var data map[string]json.RawMessage
	if err := resp.unmarshalData(op, &data); err != nil {
		return nil, err
	}

	raw, ok := data[root]
	if !ok || string(raw) == "null" {
		return nil, &PaginationError{Operation: op.name, Reason: fmt.Sprintf("missing %s connection", root)}
	}

	var conn connection[T]
	if err := json.Unmarshal(raw, &conn); err != nil {
		return nil, &PaginationError{Operation: op.name, Reason: fmt.Sprintf("decode %s connection: %v", root, err)}
	}
	if conn.PageInfo == nil {
		return nil, &PaginationError{Operation: op.name, Reason: "missing pageInfo"}
	}
	if conn.Edges == nil {
		return nil, &PaginationError{Operation: op.name, Reason: "missing edges"}
	}

	return &conn, nil
}

// paginate drives the cursor loop for one connection query: issue the
// operation, append the page's nodes in server order, then re-issue with
// after set to endCursor while the server reports another page. Requests
// are strictly sequential; cursor N+1 is only known after response N.
// The loop is unbounded unless the client was built with WithMaxPages,
// and checks ctx between fetches.
func paginate[T any](ctx context.Context, c *Client, op operation, variables map[string]any, root string) ([]T, error) {
	vars := make(map[string]any, len(variables)+1)
	for k, v := range variables {
		vars[k] = v
	}

	var nodes []T
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := c.doGraphQL(ctx, op, vars)
		if err != nil {
			return nil, err
		}

		conn, err := decodeConnection[T](resp, op, root)
		if err != nil {
			return nil, err
		}

		for _, e := range conn.Edges {
			nodes = append(nodes, e.Node)
		}

		if !conn.PageInfo.HasNextPage {
			return nodes, nil
		}
		if c.maxPages > 0 && page >= c.maxPages {
			logger.Debug("polaris: %s: stopping after %d pages (max pages reached)", op.name, page)
			return nodes, nil
		}

		vars["after"] = conn.PageInfo.EndCursor
	}
}
