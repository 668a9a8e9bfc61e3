package polaris

import (
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// defaultTimeout bounds each HTTP request when no custom client is supplied.
const defaultTimeout = 30 * time.Second

// Option customises a Client or a Login call.
type Option func(*options)

type options struct {
	doer        HTTPDoer
	tokenSource oauth2.TokenSource
	rateLimiter *RateLimiter
	timeout     time.Duration
	maxPages    int
}

// WithHTTPClient supplies a custom HTTP client (or any HTTPDoer).
func WithHTTPClient(doer HTTPDoer) Option {
	return func(o *options) {
		o.doer = doer
	}
}

// WithTokenSource supplies the bearer token via an oauth2.TokenSource
// instead of a fixed string, for callers that manage token lifetime
// themselves.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(o *options) {
		o.tokenSource = ts
	}
}

// WithRateLimit overrides the default client-side request pacing.
func WithRateLimit(cfg RateLimitConfig) Option {
	return func(o *options) {
		o.rateLimiter = NewRateLimiterWithConfig(cfg)
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
// Ignored when WithHTTPClient is also given.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithMaxPages bounds every pagination loop to at most n pages. The
// default (0) keeps the server-driven behaviour of fetching until the
// server reports no further pages.
func WithMaxPages(n int) Option {
	return func(o *options) {
		o.maxPages = n
	}
}

func resolveOptions(opts []Option) *options {
	o := &options{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(o)
	}
	if o.doer == nil {
		o.doer = &http.Client{Timeout: o.timeout}
	}
	if o.rateLimiter == nil {
		o.rateLimiter = NewRateLimiter()
	}
	return o
}
