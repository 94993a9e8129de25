package pexels

import (
	"net/http"
	"time"
)

// DefaultTimeout is the per-request timeout used when none is configured.
const DefaultTimeout = 15 * time.Second

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout    time.Duration
	httpClient *http.Client
	userAgent  string
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. The timeout option is
// ignored when a custom client is supplied.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// RequestOption overrides paging parameters for a single listing call.
type RequestOption func(*requestParams)

type requestParams struct {
	perPage int
	page    int
}

// WithPerPage sets the number of results per page for one call.
func WithPerPage(n int) RequestOption {
	return func(p *requestParams) {
		if n > 0 {
			p.perPage = n
		}
	}
}

// WithPage sets the page number for one call.
func WithPage(n int) RequestOption {
	return func(p *requestParams) {
		if n > 0 {
			p.page = n
		}
	}
}
