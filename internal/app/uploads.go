package app

import (
	"fmt"
	"io"
	"os"

	"github.com/cesargomez89/trackvault/internal/domain"
	"github.com/cesargomez89/trackvault/internal/logger"
	"github.com/cesargomez89/trackvault/internal/storage"
)

// blobStore is the slice of the blob store the upload flow depends on.
type blobStore interface {
	Write(name string, r io.Reader) (int64, error)
	Open(name string) (io.ReadSeekCloser, os.FileInfo, error)
	Remove(name string)
}

// trackStore is the slice of the metadata store the upload flow depends on.
type trackStore interface {
	CreateTrack(track *domain.Track) error
}

// UploadRequest carries one parsed multipart upload.
type UploadRequest struct {
	File             io.Reader
	ContentType      string
	OriginalFilename string
	Title            string
	Artist           string
	Album            string
	Genre            string
	CoverURL         string
}

// UploadService orchestrates the two-phase upload: blob first, metadata
// second, with a compensating blob delete when the metadata insert fails.
type UploadService struct {
	Blobs  blobStore
	Tracks trackStore
	Logger *logger.Logger
}

func NewUploadService(blobs blobStore, tracks trackStore, log *logger.Logger) *UploadService {
	return &UploadService{
		Blobs:  blobs,
		Tracks: tracks,
		Logger: log.WithComponent("uploads"),
	}
}

// Upload validates the request, stores the blob under a generated name,
// and persists the metadata record. A failure after the blob write removes
// the blob again so no partial state stays reachable.
func (s *UploadService) Upload(req UploadRequest) (*domain.Track, error) {
	if !domain.IsAudioContentType(req.ContentType) {
		return nil, fmt.Errorf("content type %q: %w", req.ContentType, domain.ErrInvalidContentType)
	}

	track := &domain.Track{
		Title:            req.Title,
		Artist:           req.Artist,
		Album:            req.Album,
		Genre:            req.Genre,
		CoverURL:         req.CoverURL,
		OriginalFilename: req.OriginalFilename,
		ContentType:      req.ContentType,
	}
	track.Normalize()
	if err := track.Validate(); err != nil {
		return nil, err
	}

	track.Filename = storage.GenerateName(req.OriginalFilename)

	size, err := s.Blobs.Write(track.Filename, req.File)
	if err != nil {
		return nil, err
	}
	track.FileSize = size

	s.enrich(track)

	if err := s.Tracks.CreateTrack(track); err != nil {
		// Roll the blob back so no record-less file stays behind.
		s.Blobs.Remove(track.Filename)
		return nil, err
	}

	s.Logger.Info("Track uploaded", "track_id", track.ID, "title", track.Title, "filename", track.Filename, "size", track.FileSize)
	return track, nil
}

// enrich backfills empty metadata fields from tags embedded in the stored
// blob. Best-effort only.
func (s *UploadService) enrich(track *domain.Track) {
	if track.Artist != "" && track.Album != "" && track.Genre != "" {
		return
	}

	f, _, err := s.Blobs.Open(track.Filename)
	if err != nil {
		s.Logger.Debug("Skipping tag enrichment", "filename", track.Filename, "error", err)
		return
	}
	defer f.Close() //nolint:errcheck // read-only handle

	if enrichFromTags(track, f) {
		s.Logger.Debug("Enriched track from embedded tags", "filename", track.Filename)
	}
}
