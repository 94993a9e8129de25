package pexels

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxErrorBody caps how much of a failed response body is kept on an APIError
const maxErrorBody = 512

// Client represents a Pexels API client.
//
// Requests are serialized; State may be read concurrently and always
// returns a complete snapshot.
type Client struct {
	endpoints  Endpoints
	apiKey     string
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger

	mu    sync.Mutex
	state atomic.Pointer[State]
}

// NewClient creates a new Pexels client. It validates the endpoints but
// makes no network call.
func NewClient(apiKey string, endpoints Endpoints, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &ConfigError{Key: "api_key", Reason: "is required"}
	}
	if err := endpoints.Validate(); err != nil {
		return nil, err
	}

	options := clientOptions{
		timeout:   DefaultTimeout,
		userAgent: "pexels-go",
	}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	client := &Client{
		endpoints:  endpoints,
		apiKey:     apiKey,
		httpClient: httpClient,
		userAgent:  options.userAgent,
		logger:     logger,
	}
	client.state.Store(&State{})

	return client, nil
}

// State returns the snapshot left by the most recent request
func (c *Client) State() *State {
	return c.state.Load()
}

// SearchPhotos searches photos matching query
func (c *Client) SearchPhotos(ctx context.Context, query string, opts ...RequestOption) (*Response, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	return c.list(ctx, c.endpoints.PhotoPath, c.endpoints.SearchPath, query, opts)
}

// SearchVideos searches videos matching query
func (c *Client) SearchVideos(ctx context.Context, query string, opts ...RequestOption) (*Response, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	return c.list(ctx, c.endpoints.VideoPath, c.endpoints.SearchPath, query, opts)
}

// PopularPhotos lists popular photos
func (c *Client) PopularPhotos(ctx context.Context, opts ...RequestOption) (*Response, error) {
	return c.list(ctx, c.endpoints.PhotoPath, c.endpoints.PopularPath, "", opts)
}

// PopularVideos lists popular videos
func (c *Client) PopularVideos(ctx context.Context, opts ...RequestOption) (*Response, error) {
	return c.list(ctx, c.endpoints.VideoPath, c.endpoints.PopularPath, "", opts)
}

// CuratedPhotos lists curated photos
func (c *Client) CuratedPhotos(ctx context.Context, opts ...RequestOption) (*Response, error) {
	return c.list(ctx, c.endpoints.PhotoPath, c.endpoints.CuratedPath, "", opts)
}

// NextPage requests the server-supplied next page link. ok is false, and
// nothing is requested, when the last response had no next page.
func (c *Client) NextPage(ctx context.Context) (resp *Response, ok bool, err error) {
	return c.follow(ctx, func(s *State) (string, bool) {
		return s.NextPage, s.HasNextPage
	})
}

// PreviousPage requests the server-supplied previous page link. ok is false,
// and nothing is requested, when the last response had no previous page.
func (c *Client) PreviousPage(ctx context.Context) (resp *Response, ok bool, err error) {
	return c.follow(ctx, func(s *State) (string, bool) {
		return s.PrevPage, s.HasPreviousPage
	})
}

// PhotoEntries wraps each record of the cached body's photos list. It
// returns nil when no successful response is cached.
func (c *Client) PhotoEntries() []*Photo {
	body := c.State().Body
	if body == nil {
		return nil
	}

	photos := make([]*Photo, 0, len(body.Photos))
	for _, raw := range body.Photos {
		photos = append(photos, NewPhoto(raw))
	}
	return photos
}

// VideoEntries wraps each record of the cached body's videos list. It
// returns nil when no successful response is cached.
func (c *Client) VideoEntries() []*Video {
	body := c.State().Body
	if body == nil {
		return nil
	}

	videos := make([]*Video, 0, len(body.Videos))
	for _, raw := range body.Videos {
		videos = append(videos, NewVideo(raw))
	}
	return videos
}

// TestConnection verifies the API key with a one-result curated listing.
// It does not touch the client state.
func (c *Client) TestConnection(ctx context.Context) error {
	params := url.Values{}
	params.Set("per_page", "1")
	params.Set("page", "1")

	requestURL := c.endpoints.endpoint(c.endpoints.PhotoPath, c.endpoints.CuratedPath) + "?" + params.Encode()
	_, _, err := c.doRequest(ctx, requestURL)
	return err
}

func (c *Client) list(ctx context.Context, mediaPath, path, query string, opts []RequestOption) (*Response, error) {
	params := requestParams{
		perPage: c.endpoints.ResultsPerPage,
		page:    c.endpoints.DefaultPage,
	}
	for _, opt := range opts {
		opt(&params)
	}

	values := url.Values{}
	if query != "" {
		values.Set("query", query)
	}
	values.Set("per_page", strconv.Itoa(params.perPage))
	values.Set("page", strconv.Itoa(params.page))

	requestURL := c.endpoints.endpoint(mediaPath, path) + "?" + values.Encode()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.request(ctx, requestURL)
}

func (c *Client) follow(ctx context.Context, cursor func(*State) (string, bool)) (*Response, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	link, ok := cursor(c.State())
	if !ok {
		return nil, false, nil
	}

	// Server links are already encoded and are used verbatim.
	resp, err := c.request(ctx, link)
	return resp, true, err
}

// request performs the call and replaces the state. Callers hold c.mu.
func (c *Client) request(ctx context.Context, requestURL string) (*Response, error) {
	statusCode, body, err := c.doRequest(ctx, requestURL)
	if err != nil {
		outcome := OutcomeBadResponse
		if errors.Is(err, ErrTransport) {
			outcome = OutcomeTransportFailure
		}
		c.state.Store(failureState(outcome, statusCode))
		return nil, err
	}

	resp, err := parseResponse(body)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", requestURL).Msg("Could not decode Pexels response")
		c.state.Store(failureState(OutcomeBadResponse, statusCode))
		return nil, err
	}

	if len(resp.Malformed) > 0 {
		c.logger.Warn().
			Strs("fields", resp.Malformed).
			Str("url", requestURL).
			Msg("Ignoring malformed fields in Pexels response")
	}

	c.state.Store(successState(statusCode, resp))
	return resp, nil
}

// doRequest performs an authenticated GET and returns the status and body of a 2xx response
func (c *Client) doRequest(ctx context.Context, requestURL string) (int, []byte, error) {
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, nil, &TransportError{URL: requestURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug().
		Str("method", http.MethodGet).
		Str("url", requestURL).
		Str("request_id", requestID).
		Msg("Making Pexels API request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("request_id", requestID).Msg("Pexels request failed")
		return 0, nil, &TransportError{URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{URL: requestURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Pexels API response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       truncate(string(body), maxErrorBody),
		}
		if apiErr.IsUnauthorized() {
			apiErr.Message = "check the configured API key"
		}
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("request_id", requestID).
			Msg("Pexels API returned a non-success status")
		return resp.StatusCode, nil, apiErr
	}

	return resp.StatusCode, body, nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
