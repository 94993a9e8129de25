package pexels

import (
	"encoding/json"
	"fmt"
)

// Response is the parsed body of a listing or search call.
//
// Pagination numbers are nil when the field is absent or not an integer.
// Photos and Videos hold the raw records; use Client.PhotoEntries and
// Client.VideoEntries (or NewPhoto/NewVideo) to read them.
type Response struct {
	Page         *int
	PerPage      *int
	TotalResults *int
	NextPage     string
	PrevPage     string
	Photos       []json.RawMessage
	Videos       []json.RawMessage

	// Malformed lists top-level fields that were present but unreadable.
	Malformed []string
}

// PageResults returns the number of records on this page, counting photos
// or videos depending on which list the body carries.
func (r *Response) PageResults() *int {
	switch {
	case r.Photos != nil:
		n := len(r.Photos)
		return &n
	case r.Videos != nil:
		n := len(r.Videos)
		return &n
	default:
		return nil
	}
}

// HasNextPage reports whether the server supplied a next page link
func (r *Response) HasNextPage() bool {
	return r.NextPage != ""
}

// HasPreviousPage reports whether the server supplied a previous page link
func (r *Response) HasPreviousPage() bool {
	return r.PrevPage != ""
}

// parseResponse decodes a success body. Only a body that is not a JSON object
// is an error; individual fields degrade to unset.
func parseResponse(body []byte) (*Response, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: body is null", ErrInvalidResponse)
	}

	resp := &Response{}
	resp.Page = resp.optionalInt(fields, "page")
	resp.PerPage = resp.optionalInt(fields, "per_page")
	resp.TotalResults = resp.optionalInt(fields, "total_results")
	resp.NextPage = resp.optionalString(fields, "next_page")
	resp.PrevPage = resp.optionalString(fields, "prev_page")
	resp.Photos = resp.optionalList(fields, "photos")
	resp.Videos = resp.optionalList(fields, "videos")

	return resp, nil
}

func (r *Response) optionalInt(fields map[string]json.RawMessage, key string) *int {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		r.Malformed = append(r.Malformed, key)
		return nil
	}
	return &n
}

func (r *Response) optionalString(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		r.Malformed = append(r.Malformed, key)
		return ""
	}
	return s
}

func (r *Response) optionalList(fields map[string]json.RawMessage, key string) []json.RawMessage {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil
	}
	list := []json.RawMessage{}
	if err := json.Unmarshal(raw, &list); err != nil {
		r.Malformed = append(r.Malformed, key)
		return nil
	}
	return list
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
