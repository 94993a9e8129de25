package pexels

import (
	"net/url"
	"strings"
)

// Endpoints describes where the API lives and the paging defaults.
type Endpoints struct {
	BaseURL        string
	PhotoPath      string
	VideoPath      string
	SearchPath     string
	PopularPath    string
	CuratedPath    string
	ResultsPerPage int
	DefaultPage    int
}

// Validate checks that every endpoint fragment is set and the paging defaults are positive.
func (e Endpoints) Validate() error {
	fragments := []struct {
		key   string
		value string
	}{
		{"base_url", e.BaseURL},
		{"photo_path", e.PhotoPath},
		{"video_path", e.VideoPath},
		{"search_path", e.SearchPath},
		{"popular_path", e.PopularPath},
		{"curated_path", e.CuratedPath},
	}
	for _, f := range fragments {
		if strings.TrimSpace(f.value) == "" {
			return &ConfigError{Key: f.key, Reason: "is required"}
		}
	}

	u, err := url.Parse(e.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ConfigError{Key: "base_url", Reason: "must be an absolute URL"}
	}

	if e.ResultsPerPage <= 0 {
		return &ConfigError{Key: "results_per_page", Reason: "must be a positive integer"}
	}
	if e.DefaultPage <= 0 {
		return &ConfigError{Key: "default_page", Reason: "must be a positive integer"}
	}

	return nil
}

// endpoint joins the base URL, a media path and an endpoint path with single slashes.
func (e Endpoints) endpoint(mediaPath, path string) string {
	return strings.TrimRight(e.BaseURL, "/") + "/" +
		strings.Trim(mediaPath, "/") + "/" +
		strings.Trim(path, "/")
}
