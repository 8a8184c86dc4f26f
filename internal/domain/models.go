package domain

import (
	"net/url"
	"strings"
	"time"
)

// Track represents one uploaded audio file and its metadata record.
type Track struct {
	ID               int64     `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Artist           string    `json:"artist" db:"artist"`
	Album            string    `json:"album" db:"album"`
	Genre            string    `json:"genre" db:"genre"`
	CoverURL         string    `json:"cover_url" db:"cover_url"`
	Filename         string    `json:"filename" db:"filename"`
	OriginalFilename string    `json:"original_filename" db:"original_filename"`
	ContentType      string    `json:"content_type" db:"content_type"`
	FileSize         int64     `json:"file_size" db:"file_size"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// Normalize trims caller-supplied text fields in place.
func (t *Track) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	t.Artist = strings.TrimSpace(t.Artist)
	t.Album = strings.TrimSpace(t.Album)
	t.Genre = strings.TrimSpace(t.Genre)
	t.CoverURL = strings.TrimSpace(t.CoverURL)
}

// Validate checks the record-level invariants that must hold before a
// track is persisted.
func (t *Track) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrInvalidTitle
	}
	if t.CoverURL != "" {
		u, err := url.Parse(t.CoverURL)
		if err != nil || !u.IsAbs() {
			return ErrInvalidCoverURL
		}
	}
	if t.FileSize < 0 {
		return ErrInvalidFileSize
	}
	return nil
}

// IsAudioContentType reports whether a declared MIME type passes the
// coarse ingestion check.
func IsAudioContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "audio/")
}
