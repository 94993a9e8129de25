package pexels

import (
	"encoding/json"
	"errors"
	"strings"
)

// compressQuery is appended to an original image URL to request a compressed rendition
const compressQuery = "?auto=compress"

// Photo is a read-only view over one record of a photos list.
//
// A Photo holds the raw record it was built from; it does not follow later
// requests made by the client.
type Photo struct {
	rec record
}

// NewPhoto wraps a raw photo record. A record that is not a JSON object
// yields a Photo whose accessors all return *MalformedFieldError.
func NewPhoto(raw json.RawMessage) *Photo {
	return &Photo{rec: newRecord("photo", raw)}
}

// ID returns the photo id
func (p *Photo) ID() (int, error) {
	return p.rec.integer("id")
}

// Width returns the width in pixels
func (p *Photo) Width() (int, error) {
	return p.rec.integer("width")
}

// Height returns the height in pixels
func (p *Photo) Height() (int, error) {
	return p.rec.integer("height")
}

// Photographer returns the photographer's name
func (p *Photo) Photographer() (string, error) {
	return p.rec.str("photographer")
}

// URL returns the canonical Pexels page of the photo
func (p *Photo) URL() (string, error) {
	return p.rec.str("url")
}

// Color returns the average colour as a hex string
func (p *Photo) Color() (string, error) {
	return p.rec.str("avg_color")
}

// Description returns the lower-cased alt text, or a description derived
// from the page URL when the alt text is missing or empty.
func (p *Photo) Description() (string, error) {
	alt, err := p.rec.str("alt")
	if err != nil && !errors.Is(err, ErrMissingField) {
		return "", err
	}
	if alt != "" {
		return strings.ToLower(alt), nil
	}

	id, err := p.ID()
	if err != nil {
		return "", err
	}
	pageURL, err := p.URL()
	if err != nil {
		return "", err
	}
	return describeFromURL(pageURL, id), nil
}

// Original returns the URL of the original upload
func (p *Photo) Original() (string, error) { return p.source("original") }

// Large2x returns the large2x rendition URL
func (p *Photo) Large2x() (string, error) { return p.source("large2x") }

// Large returns the large rendition URL
func (p *Photo) Large() (string, error) { return p.source("large") }

// Medium returns the medium rendition URL
func (p *Photo) Medium() (string, error) { return p.source("medium") }

// Small returns the small rendition URL
func (p *Photo) Small() (string, error) { return p.source("small") }

// Portrait returns the portrait crop URL
func (p *Photo) Portrait() (string, error) { return p.source("portrait") }

// Landscape returns the landscape crop URL
func (p *Photo) Landscape() (string, error) { return p.source("landscape") }

// Tiny returns the tiny rendition URL
func (p *Photo) Tiny() (string, error) { return p.source("tiny") }

// Compressed returns the original URL with the compression flag appended
func (p *Photo) Compressed() (string, error) {
	original, err := p.Original()
	if err != nil {
		return "", err
	}
	return original + compressQuery, nil
}

// Extension returns the suffix of the original URL's file name after the
// last dot, ignoring any query string, or "" when the file name has none.
func (p *Photo) Extension() (string, error) {
	original, err := p.Original()
	if err != nil {
		return "", err
	}
	original, _, _ = strings.Cut(original, "?")
	name := original[strings.LastIndex(original, "/")+1:]
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return "", nil
	}
	return name[i+1:], nil
}

func (p *Photo) source(name string) (string, error) {
	return p.rec.nested("src").str(name)
}
