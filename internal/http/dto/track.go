package dto

import (
	"strings"
	"time"

	"github.com/cesargomez89/trackvault/internal/domain"
)

// TrackUploadRequest carries the text fields of the multipart upload form.
// The file part is handled separately by the handler.
type TrackUploadRequest struct {
	Title    string `form:"title"`
	Artist   string `form:"artist"`
	Album    string `form:"album"`
	Genre    string `form:"genre"`
	CoverURL string `form:"cover_url"`
}

func (r *TrackUploadRequest) Validate() []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, ValidationError{Field: "title", Message: "title is required"})
	}
	errs = append(errs, validateCoverURL(r.CoverURL)...)

	return errs
}

// TrackResponse is the fixed serialization contract for a track: every
// stored field plus the derived media URL.
type TrackResponse struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Artist           string    `json:"artist"`
	Album            string    `json:"album"`
	Genre            string    `json:"genre"`
	CoverURL         string    `json:"cover_url"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	ContentType      string    `json:"content_type"`
	FileSize         int64     `json:"file_size"`
	MediaURL         string    `json:"media_url"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewTrackResponse(t *domain.Track, mediaURL string) TrackResponse {
	return TrackResponse{
		ID:               t.ID,
		Title:            t.Title,
		Artist:           t.Artist,
		Album:            t.Album,
		Genre:            t.Genre,
		CoverURL:         t.CoverURL,
		Filename:         t.Filename,
		OriginalFilename: t.OriginalFilename,
		ContentType:      t.ContentType,
		FileSize:         t.FileSize,
		MediaURL:         mediaURL,
		CreatedAt:        t.CreatedAt,
	}
}
