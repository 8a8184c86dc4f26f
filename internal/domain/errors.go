package domain

import "errors"

// Sentinel errors for the upload and retrieval flow. Callers classify
// failures with errors.Is; the HTTP layer maps them to status codes.
var (
	// ErrInvalidContentType rejects uploads whose declared MIME type is
	// missing or not audio/*. Detected before any side effect.
	ErrInvalidContentType = errors.New("only audio files are allowed")

	// ErrInvalidID marks a track id that is not well-formed.
	ErrInvalidID = errors.New("invalid track id")

	// ErrNotFound marks a well-formed lookup with no matching record or blob.
	ErrNotFound = errors.New("not found")

	// ErrStorageWrite marks a filesystem failure while persisting a blob.
	ErrStorageWrite = errors.New("failed to save file")

	// ErrPersistence marks a metadata insert or query failure.
	ErrPersistence = errors.New("database error")

	// ErrStoreUnavailable marks the metadata store being unreachable or not
	// configured, as opposed to a record simply being absent.
	ErrStoreUnavailable = errors.New("database not available")
)

// Record-level validation errors. Surfaced as 400s like ErrInvalidContentType.
var (
	ErrInvalidTitle    = errors.New("title is required")
	ErrInvalidCoverURL = errors.New("cover_url must be an absolute URL")
	ErrInvalidFileSize = errors.New("file size cannot be negative")
)
