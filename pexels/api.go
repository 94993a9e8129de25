package pexels

import (
	"context"
)

// API defines the interface for Pexels operations
type API interface {
	// TestConnection verifies the client can reach Pexels with its API key
	TestConnection(ctx context.Context) error

	SearchPhotos(ctx context.Context, query string, opts ...RequestOption) (*Response, error)
	SearchVideos(ctx context.Context, query string, opts ...RequestOption) (*Response, error)
	PopularPhotos(ctx context.Context, opts ...RequestOption) (*Response, error)
	PopularVideos(ctx context.Context, opts ...RequestOption) (*Response, error)
	CuratedPhotos(ctx context.Context, opts ...RequestOption) (*Response, error)

	// NextPage and PreviousPage follow the links of the last response
	NextPage(ctx context.Context) (*Response, bool, error)
	PreviousPage(ctx context.Context) (*Response, bool, error)

	PhotoEntries() []*Photo
	VideoEntries() []*Video
	State() *State
}

var _ API = (*Client)(nil)
