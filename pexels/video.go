package pexels

import (
	"encoding/json"
	"strings"
)

// VideoFile is one encoded variant of a video
type VideoFile struct {
	ID       int     `json:"id"`
	Quality  string  `json:"quality"`
	FileType string  `json:"file_type"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	FPS      float64 `json:"fps"`
	Link     string  `json:"link"`
}

// DirectLink returns the link without its query string
func (f VideoFile) DirectLink() string {
	link, _, _ := strings.Cut(f.Link, "?")
	return link
}

// Extension returns the subtype of the media type, e.g. "mp4" for "video/mp4"
func (f VideoFile) Extension() string {
	return f.FileType[strings.LastIndex(f.FileType, "/")+1:]
}

// highestResolution returns the widest file. Ties keep the earliest entry.
func highestResolution(files []VideoFile) (VideoFile, bool) {
	if len(files) == 0 {
		return VideoFile{}, false
	}

	best := files[0]
	for _, f := range files[1:] {
		if f.Width > best.Width {
			best = f
		}
	}
	return best, true
}

// Video is a read-only view over one record of a videos list.
type Video struct {
	rec record
}

// NewVideo wraps a raw video record
func NewVideo(raw json.RawMessage) *Video {
	return &Video{rec: newRecord("video", raw)}
}

// ID returns the video id
func (v *Video) ID() (int, error) {
	return v.rec.integer("id")
}

// Width returns the width in pixels
func (v *Video) Width() (int, error) {
	return v.rec.integer("width")
}

// Height returns the height in pixels
func (v *Video) Height() (int, error) {
	return v.rec.integer("height")
}

// Videographer returns the uploader's name
func (v *Video) Videographer() (string, error) {
	return v.rec.nested("user").str("name")
}

// URL returns the canonical Pexels page of the video
func (v *Video) URL() (string, error) {
	return v.rec.str("url")
}

// ImagePreview returns the preview image URL
func (v *Video) ImagePreview() (string, error) {
	return v.rec.str("image")
}

// Duration returns the length in seconds
func (v *Video) Duration() (int, error) {
	return v.rec.integer("duration")
}

// Description is always derived from the page URL; videos carry no alt text.
func (v *Video) Description() (string, error) {
	id, err := v.ID()
	if err != nil {
		return "", err
	}
	pageURL, err := v.URL()
	if err != nil {
		return "", err
	}
	return describeFromURL(pageURL, id), nil
}

// Files returns every encoded variant in the order the API listed them
func (v *Video) Files() ([]VideoFile, error) {
	var files []VideoFile
	if err := v.rec.decode("video_files", &files); err != nil {
		return nil, err
	}
	return files, nil
}

// HighestResolution returns the variant with the greatest width
func (v *Video) HighestResolution() (VideoFile, error) {
	files, err := v.Files()
	if err != nil {
		return VideoFile{}, err
	}
	best, ok := highestResolution(files)
	if !ok {
		return VideoFile{}, &MissingFieldError{Record: "video", Field: "video_files"}
	}
	return best, nil
}

// HighestResolutionWidth returns the width of the best variant
func (v *Video) HighestResolutionWidth() (int, error) {
	best, err := v.HighestResolution()
	return best.Width, err
}

// HighestResolutionHeight returns the height of the best variant
func (v *Video) HighestResolutionHeight() (int, error) {
	best, err := v.HighestResolution()
	return best.Height, err
}

// Link returns the direct download link of the best variant
func (v *Video) Link() (string, error) {
	best, err := v.HighestResolution()
	if err != nil {
		return "", err
	}
	return best.DirectLink(), nil
}

// Extension returns the file extension of the best variant
func (v *Video) Extension() (string, error) {
	best, err := v.HighestResolution()
	if err != nil {
		return "", err
	}
	return best.Extension(), nil
}
