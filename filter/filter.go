package filter

import (
	"github.com/s0up4200/pexels/pexels"
)

// Photos returns the photos matching f, in order. A nil filter keeps everything.
func Photos(f *Filter, photos []*pexels.Photo) []*pexels.Photo {
	if f == nil {
		return photos
	}

	matched := make([]*pexels.Photo, 0, len(photos))
	for _, photo := range photos {
		if f.MatchPhoto(photo) {
			matched = append(matched, photo)
		}
	}
	return matched
}

// Videos returns the videos matching f, in order. A nil filter keeps everything.
func Videos(f *Filter, videos []*pexels.Video) []*pexels.Video {
	if f == nil {
		return videos
	}

	matched := make([]*pexels.Video, 0, len(videos))
	for _, video := range videos {
		if f.MatchVideo(video) {
			matched = append(matched, video)
		}
	}
	return matched
}
