package polaris

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// wireRequest is a decoded GraphQL POST body as seen by a test server.
type wireRequest struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`

	authorization string
	path          string
}

// graphqlServer records every GraphQL request and answers via handle.
type graphqlServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []wireRequest
}

// newGraphQLServer starts a mock Polaris GraphQL endpoint. The handler
// receives the decoded request and the 1-based call number and returns
// the response body.
func newGraphQLServer(t *testing.T, handle func(req wireRequest, call int) (status int, body string)) *graphqlServer {
	t.Helper()

	gs := &graphqlServer{}
	gs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req wireRequest
		require.NoError(t, json.Unmarshal(body, &req))
		req.authorization = r.Header.Get("Authorization")
		req.path = r.URL.Path

		gs.mu.Lock()
		gs.requests = append(gs.requests, req)
		call := len(gs.requests)
		gs.mu.Unlock()

		status, resp := handle(req, call)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(resp))
	}))
	t.Cleanup(gs.Close)

	return gs
}

// Requests returns a copy of the recorded requests.
func (gs *graphqlServer) Requests() []wireRequest {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return append([]wireRequest(nil), gs.requests...)
}

// fakeDoer serves canned responses without a network, for tests that need
// tight control over the request lifecycle (e.g. cancellation between
// pages).
type fakeDoer struct {
	responses []string
	calls     int
	onCall    func(call int)
}

func (f *fakeDoer) Do(_ *http.Request) (*http.Response, error) {
	f.calls++
	if f.onCall != nil {
		f.onCall(f.calls)
	}

	body := f.responses[f.calls-1]
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}, nil
}
