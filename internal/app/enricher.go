package app

import (
	"io"

	"github.com/dhowden/tag"

	"github.com/cesargomez89/trackvault/internal/domain"
)

// enrichFromTags fills metadata fields the uploader left empty from tags
// embedded in the audio itself (ID3, Vorbis comments, MP4 atoms). It never
// overwrites caller-supplied values and never fails the upload: unreadable
// or absent tags just leave the track as-is.
func enrichFromTags(track *domain.Track, r io.ReadSeeker) bool {
	meta, err := tag.ReadFrom(r)
	if err != nil {
		return false
	}

	enriched := false
	if track.Artist == "" && meta.Artist() != "" {
		track.Artist = meta.Artist()
		enriched = true
	}
	if track.Album == "" && meta.Album() != "" {
		track.Album = meta.Album()
		enriched = true
	}
	if track.Genre == "" && meta.Genre() != "" {
		track.Genre = meta.Genre()
		enriched = true
	}
	return enriched
}
