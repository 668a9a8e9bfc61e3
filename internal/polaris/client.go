// Package polaris is a thin client for the Polaris data-protection
// platform's session and GraphQL APIs, covering SLA domain lookup and
// assignment plus enumeration of protected Office 365 organisations and
// users. Every operation is a synchronous request/response call; the
// client keeps no state beyond the credentials it was constructed with.
package polaris

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/polaris-o365-go/internal/logger"
)

const (
	sessionPath = "/api/session"
	graphqlPath = "/api/graphql"
)

// HTTPDoer is the minimal HTTP client interface the Polaris client needs.
// *http.Client satisfies it.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client issues requests against one Polaris account. It is immutable
// after construction and safe for concurrent use; the session token is
// fixed at construction and never refreshed.
type Client struct {
	accountURL  string
	doer        HTTPDoer
	tokenSource oauth2.TokenSource
	rateLimiter *RateLimiter
	maxPages    int
}

// NewClient creates a client for the given account base URL and session
// token. The token is typically obtained via Login.
func NewClient(accountURL, token string, opts ...Option) *Client {
	o := resolveOptions(opts)

	ts := o.tokenSource
	if ts == nil {
		ts = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	}

	return &Client{
		accountURL:  strings.TrimRight(accountURL, "/"),
		doer:        o.doer,
		tokenSource: ts,
		rateLimiter: o.rateLimiter,
		maxPages:    o.maxPages,
	}
}

// AccountURL returns the normalised account base URL.
func (c *Client) AccountURL() string {
	return c.accountURL
}

// gqlRequest is the wire shape of a GraphQL POST body.
type gqlRequest struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

// gqlResponse holds a decoded GraphQL envelope plus the raw body for
// diagnostics.
type gqlResponse struct {
	Data json.RawMessage `json:"data"`
	raw  []byte
}

// doGraphQL executes one named operation with the given variables and
// returns the decoded envelope. Top-level GraphQL errors surface as
// *GraphQLError; HTTP failures map onto the sentinel taxonomy.
func (c *Client) doGraphQL(ctx context.Context, op operation, variables map[string]any) (*gqlResponse, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	token, err := c.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("get access token: %w", err)
	}

	body := gqlRequest{
		OperationName: op.name,
		Query:         op.doc,
		Variables:     variables,
	}

	req, err := newJSONRequest(ctx, http.MethodPost, c.accountURL+graphqlPath, body, token.AccessToken)
	if err != nil {
		return nil, err
	}

	requestID := uuid.New().String()
	logger.Debug("polaris: %s request %s", op.name, requestID)

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", op.name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", op.name, err)
	}

	logger.Debug("polaris: %s request %s: status %d, body length %d",
		op.name, requestID, resp.StatusCode, len(raw))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
			c.rateLimiter.RecordRateLimitError(retryAfter)
		}
		if wrapped := WrapError(resp.StatusCode); wrapped != nil {
			return nil, fmt.Errorf("%s failed with status %d: %w", op.name, resp.StatusCode, wrapped)
		}
		return nil, fmt.Errorf("%s failed with status %d: %s", op.name, resp.StatusCode, string(raw))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []ResponseError `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", op.name, err)
	}
	if len(envelope.Errors) > 0 {
		return nil, &GraphQLError{Operation: op.name, Errors: envelope.Errors, Raw: raw}
	}

	return &gqlResponse{Data: envelope.Data, raw: raw}, nil
}

// unmarshalData decodes the data field of an envelope into out.
func (r *gqlResponse) unmarshalData(op operation, out any) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("%s response has no data", op.name)
	}
	if err := json.Unmarshal(r.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", op.name, err)
	}
	return nil
}

// newJSONRequest builds a JSON POST with the common Polaris headers.
// An empty token omits the Authorization header (session endpoint).
func newJSONRequest(ctx context.Context, method, url string, body any, token string) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}
