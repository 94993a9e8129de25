package pexels

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEndpoints(baseURL string) Endpoints {
	return Endpoints{
		BaseURL:        baseURL,
		PhotoPath:      "/v1",
		VideoPath:      "/videos",
		SearchPath:     "search",
		PopularPath:    "popular",
		CuratedPath:    "curated",
		ResultsPerPage: 15,
		DefaultPage:    1,
	}
}

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	client, err := NewClient("test-key", testEndpoints(baseURL), zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name      string
		apiKey    string
		endpoints func(Endpoints) Endpoints
		wantKey   string
	}{
		{
			name:      "valid config",
			apiKey:    "test-key",
			endpoints: func(e Endpoints) Endpoints { return e },
		},
		{
			name:      "missing API key",
			apiKey:    "",
			endpoints: func(e Endpoints) Endpoints { return e },
			wantKey:   "api_key",
		},
		{
			name:   "missing base URL",
			apiKey: "test-key",
			endpoints: func(e Endpoints) Endpoints {
				e.BaseURL = ""
				return e
			},
			wantKey: "base_url",
		},
		{
			name:   "relative base URL",
			apiKey: "test-key",
			endpoints: func(e Endpoints) Endpoints {
				e.BaseURL = "api.pexels.com"
				return e
			},
			wantKey: "base_url",
		},
		{
			name:   "missing curated path",
			apiKey: "test-key",
			endpoints: func(e Endpoints) Endpoints {
				e.CuratedPath = " "
				return e
			},
			wantKey: "curated_path",
		},
		{
			name:   "zero results per page",
			apiKey: "test-key",
			endpoints: func(e Endpoints) Endpoints {
				e.ResultsPerPage = 0
				return e
			},
			wantKey: "results_per_page",
		},
		{
			name:   "negative default page",
			apiKey: "test-key",
			endpoints: func(e Endpoints) Endpoints {
				e.DefaultPage = -1
				return e
			},
			wantKey: "default_page",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.apiKey, tt.endpoints(testEndpoints("https://api.pexels.com")), logger)
			if tt.wantKey == "" {
				require.NoError(t, err)
				assert.Equal(t, OutcomeNone, client.State().Outcome)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantKey, cfgErr.Key)
		})
	}
}

func TestClientOptions(t *testing.T) {
	t.Run("default timeout", func(t *testing.T) {
		client := newTestClient(t, "https://api.pexels.com")
		assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
	})

	t.Run("with timeout", func(t *testing.T) {
		client := newTestClient(t, "https://api.pexels.com", WithTimeout(5*time.Second))
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client := newTestClient(t, "https://api.pexels.com", WithHTTPClient(customClient))
		assert.Same(t, customClient, client.httpClient)
	})

	t.Run("with user agent", func(t *testing.T) {
		client := newTestClient(t, "https://api.pexels.com", WithUserAgent("stockpile/1.0"))
		assert.Equal(t, "stockpile/1.0", client.userAgent)
	})
}

func TestListingURLs(t *testing.T) {
	tests := []struct {
		name      string
		call      func(context.Context, *Client) (*Response, error)
		wantPath  string
		wantQuery string
	}{
		{
			name: "search photos with defaults",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.SearchPhotos(ctx, "nature")
			},
			wantPath:  "/v1/search",
			wantQuery: "page=1&per_page=15&query=nature",
		},
		{
			name: "search photos replaces spaces",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.SearchPhotos(ctx, "red sports car", WithPerPage(5), WithPage(2))
			},
			wantPath:  "/v1/search",
			wantQuery: "page=2&per_page=5&query=red+sports+car",
		},
		{
			name: "search photos encodes reserved characters",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.SearchPhotos(ctx, "salt & pepper")
			},
			wantPath:  "/v1/search",
			wantQuery: "page=1&per_page=15&query=salt+%26+pepper",
		},
		{
			name: "search videos",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.SearchVideos(ctx, "drone nature")
			},
			wantPath:  "/videos/search",
			wantQuery: "page=1&per_page=15&query=drone+nature",
		},
		{
			name: "popular photos",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.PopularPhotos(ctx, WithPerPage(40))
			},
			wantPath:  "/v1/popular",
			wantQuery: "page=1&per_page=40",
		},
		{
			name: "popular videos",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.PopularVideos(ctx)
			},
			wantPath:  "/videos/popular",
			wantQuery: "page=1&per_page=15",
		},
		{
			name: "curated photos ignores non-positive overrides",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.CuratedPhotos(ctx, WithPerPage(0), WithPage(-3))
			},
			wantPath:  "/v1/curated",
			wantQuery: "page=1&per_page=15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, tt.wantPath, r.URL.Path)
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				assert.Equal(t, "test-key", r.Header.Get("Authorization"))
				assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
				writeJSON(t, w, map[string]any{"page": 1, "photos": []any{}})
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			resp, err := tt.call(context.Background(), client)
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, OutcomeOK, client.State().Outcome)
		})
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.SearchPhotos(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	_, err = client.SearchVideos(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyQuery)

	assert.Zero(t, calls.Load())
	assert.Equal(t, OutcomeNone, client.State().Outcome)
}

func TestResponseState(t *testing.T) {
	t.Run("well formed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]any{
				"page":          2,
				"per_page":      2,
				"total_results": 8000,
				"photos":        []any{samplePhoto(1, "one"), samplePhoto(2, "two")},
				"next_page":     "https://api.pexels.com/v1/search/?page=3&per_page=2&query=cats",
				"prev_page":     "https://api.pexels.com/v1/search/?page=1&per_page=2&query=cats",
				"unknown_field": map[string]any{"ignored": true},
			})
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		_, err := client.SearchPhotos(context.Background(), "cats")
		require.NoError(t, err)

		state := client.State()
		assert.Equal(t, OutcomeOK, state.Outcome)
		assert.Equal(t, http.StatusOK, state.StatusCode)
		require.NotNil(t, state.Page)
		assert.Equal(t, 2, *state.Page)
		require.NotNil(t, state.TotalResults)
		assert.Equal(t, 8000, *state.TotalResults)
		require.NotNil(t, state.PageResults)
		assert.Equal(t, 2, *state.PageResults)
		assert.True(t, state.HasNextPage)
		assert.Equal(t, "https://api.pexels.com/v1/search/?page=3&per_page=2&query=cats", state.NextPage)
		assert.True(t, state.HasPreviousPage)
		assert.Equal(t, "https://api.pexels.com/v1/search/?page=1&per_page=2&query=cats", state.PrevPage)
	})

	t.Run("missing and malformed fields are left unset", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]any{
				"page":          "two",
				"total_results": 10,
				"videos":        []any{},
				"next_page":     42,
			})
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		resp, err := client.SearchVideos(context.Background(), "waves")
		require.NoError(t, err)

		state := client.State()
		assert.Nil(t, state.Page)
		require.NotNil(t, state.TotalResults)
		assert.Equal(t, 10, *state.TotalResults)
		require.NotNil(t, state.PageResults)
		assert.Equal(t, 0, *state.PageResults)
		assert.False(t, state.HasNextPage)
		assert.Empty(t, state.NextPage)
		assert.False(t, state.HasPreviousPage)
		assert.ElementsMatch(t, []string{"page", "next_page"}, resp.Malformed)
	})

	t.Run("undecodable body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>maintenance</html>"))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		_, err := client.CuratedPhotos(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidResponse)

		state := client.State()
		assert.Equal(t, OutcomeBadResponse, state.Outcome)
		assert.Nil(t, state.Body)
		assert.Nil(t, client.PhotoEntries())
	})
}

func TestPagination(t *testing.T) {
	var (
		server *httptest.Server
		mu     sync.Mutex
		seen   []string
	)
	requests := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), seen...)
	}
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.URL.RequestURI())
		mu.Unlock()

		switch r.URL.Query().Get("page") {
		case "1":
			writeJSON(t, w, map[string]any{
				"page":      1,
				"photos":    []any{samplePhoto(1, "first")},
				"next_page": server.URL + "/v1/search/?page=2&per_page=1&query=cats%2Bdogs",
			})
		case "2":
			writeJSON(t, w, map[string]any{
				"page":      2,
				"photos":    []any{samplePhoto(2, "second")},
				"prev_page": server.URL + "/v1/search/?page=1&per_page=1&query=cats",
			})
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer server.Close()

	ctx := context.Background()
	client := newTestClient(t, server.URL)

	t.Run("no cursor before the first request", func(t *testing.T) {
		resp, ok, err := client.NextPage(ctx)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, resp)
		assert.Empty(t, requests())
	})

	_, err := client.SearchPhotos(ctx, "cats", WithPerPage(1))
	require.NoError(t, err)
	require.True(t, client.State().HasNextPage)
	assert.False(t, client.State().HasPreviousPage)

	t.Run("previous page is a no-op when absent", func(t *testing.T) {
		before := client.State()
		resp, ok, err := client.PreviousPage(ctx)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, resp)
		assert.Same(t, before, client.State())
		assert.Len(t, requests(), 1)
	})

	t.Run("next page uses the server link verbatim", func(t *testing.T) {
		resp, ok, err := client.NextPage(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.NotNil(t, resp.Page)
		assert.Equal(t, 2, *resp.Page)

		require.Len(t, requests(), 2)
		assert.Equal(t, "/v1/search/?page=2&per_page=1&query=cats%2Bdogs", requests()[1])

		state := client.State()
		assert.False(t, state.HasNextPage)
		assert.True(t, state.HasPreviousPage)

		id, err := client.PhotoEntries()[0].ID()
		require.NoError(t, err)
		assert.Equal(t, 2, id)
	})

	t.Run("next page is a no-op on the last page", func(t *testing.T) {
		_, ok, err := client.NextPage(ctx)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Len(t, requests(), 2)
	})

	t.Run("previous page walks back", func(t *testing.T) {
		_, ok, err := client.PreviousPage(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Len(t, requests(), 3)
		assert.Equal(t, "/v1/search/?page=1&per_page=1&query=cats", requests()[2])
		assert.True(t, client.State().HasNextPage)
	})
}

func TestFailureClearsStateAndClientRecovers(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch calls.Add(1) {
		case 2:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"bad key"}`))
		default:
			writeJSON(t, w, map[string]any{
				"page":      1,
				"photos":    []any{samplePhoto(7, "seven")},
				"next_page": "https://api.pexels.com/v1/curated/?page=2",
			})
		}
	}))
	defer server.Close()

	ctx := context.Background()
	client := newTestClient(t, server.URL)

	_, err := client.CuratedPhotos(ctx)
	require.NoError(t, err)
	require.True(t, client.State().HasNextPage)

	_, err = client.CuratedPhotos(ctx, WithPage(2))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "bad key")
	assert.NotContains(t, err.Error(), "test-key")

	state := client.State()
	assert.Equal(t, OutcomeBadResponse, state.Outcome)
	assert.Equal(t, http.StatusUnauthorized, state.StatusCode)
	assert.Nil(t, state.Body)
	assert.False(t, state.HasNextPage)
	assert.Empty(t, state.NextPage)
	assert.Nil(t, client.PhotoEntries())

	_, ok, err := client.NextPage(ctx)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = client.CuratedPhotos(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutcomeOK, client.State().Outcome)
	assert.Len(t, client.PhotoEntries(), 1)
}

func TestTransportFailure(t *testing.T) {
	t.Run("connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		baseURL := server.URL
		server.Close()

		client := newTestClient(t, baseURL)
		_, err := client.SearchPhotos(context.Background(), "cats")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTransport)
		assert.NotContains(t, err.Error(), "test-key")

		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.Contains(t, transportErr.URL, "/v1/search")

		assert.Equal(t, OutcomeTransportFailure, client.State().Outcome)
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		client := newTestClient(t, server.URL, WithTimeout(50*time.Millisecond))
		_, err := client.PopularPhotos(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTransport)
		assert.Equal(t, OutcomeTransportFailure, client.State().Outcome)
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]any{"photos": []any{}})
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := newTestClient(t, server.URL)
		_, err := client.CuratedPhotos(ctx)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.ErrorIs(t, err, ErrTransport)
	})
}

func TestEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/videos/search" {
			writeJSON(t, w, map[string]any{
				"videos": []any{sampleVideo(10, []any{sampleFile(640, "a"), sampleFile(1920, "b")})},
			})
			return
		}
		writeJSON(t, w, map[string]any{
			"photos": []any{samplePhoto(1, "Alpha"), samplePhoto(2, ""), "not an object"},
		})
	}))
	defer server.Close()

	ctx := context.Background()
	client := newTestClient(t, server.URL)

	t.Run("nil before any response", func(t *testing.T) {
		assert.Nil(t, client.PhotoEntries())
		assert.Nil(t, client.VideoEntries())
	})

	_, err := client.SearchPhotos(ctx, "alpha")
	require.NoError(t, err)

	t.Run("order is preserved and bad records stay isolated", func(t *testing.T) {
		photos := client.PhotoEntries()
		require.Len(t, photos, 3)

		id, err := photos[0].ID()
		require.NoError(t, err)
		assert.Equal(t, 1, id)

		id, err = photos[1].ID()
		require.NoError(t, err)
		assert.Equal(t, 2, id)

		_, err = photos[2].ID()
		assert.ErrorIs(t, err, ErrMalformedField)
	})

	t.Run("idempotent between requests", func(t *testing.T) {
		first := client.PhotoEntries()
		second := client.PhotoEntries()
		require.Len(t, second, len(first))
		for i := range first {
			d1, err1 := first[i].Description()
			d2, err2 := second[i].Description()
			assert.Equal(t, d1, d2)
			assert.Equal(t, err1 == nil, err2 == nil)
		}
	})

	t.Run("videos list absent from a photo body", func(t *testing.T) {
		videos := client.VideoEntries()
		assert.NotNil(t, videos)
		assert.Empty(t, videos)
	})

	t.Run("video entries", func(t *testing.T) {
		_, err := client.SearchVideos(ctx, "drone")
		require.NoError(t, err)

		videos := client.VideoEntries()
		require.Len(t, videos, 1)
		width, err := videos[0].HighestResolutionWidth()
		require.NoError(t, err)
		assert.Equal(t, 1920, width)
	})
}

func TestTestConnection(t *testing.T) {
	t.Run("success leaves state untouched", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/curated", r.URL.Path)
			assert.Equal(t, "1", r.URL.Query().Get("per_page"))
			writeJSON(t, w, map[string]any{"photos": []any{}})
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		require.NoError(t, client.TestConnection(context.Background()))
		assert.Equal(t, OutcomeNone, client.State().Outcome)
	})

	t.Run("bad key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		err := client.TestConnection(context.Background())
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestErrorBodyTruncation(t *testing.T) {
	body := strings.Repeat("a", maxErrorBody-1) + "ééé"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.CuratedPhotos(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, utf8.ValidString(apiErr.Body))
	assert.Equal(t, strings.Repeat("a", maxErrorBody-1), apiErr.Body)

	tests := []struct {
		in       string
		n        int
		expected string
	}{
		{"short", 10, "short"},
		{"abcdef", 3, "abc"},
		{"añb", 2, "a"},
		{"añb", 3, "añ"},
		{"日本", 2, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, truncate(tt.in, tt.n))
	}
}
