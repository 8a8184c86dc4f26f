package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cesargomez89/trackvault/internal/domain"
)

func (db *DB) CreateTrack(track *domain.Track) error {
	if db == nil || db.DB == nil {
		return domain.ErrStoreUnavailable
	}

	track.Normalize()
	if track.CreatedAt.IsZero() {
		track.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO tracks (
		title, artist, album, genre, cover_url,
		filename, original_filename, content_type, file_size,
		created_at
	) VALUES (
		:title, :artist, :album, :genre, :cover_url,
		:filename, :original_filename, :content_type, :file_size,
		:created_at
	) RETURNING id`

	rows, err := db.NamedQuery(query, track)
	if err != nil {
		return fmt.Errorf("%w: failed to create track: %v", domain.ErrPersistence, err)
	}
	defer rows.Close() //nolint:errcheck // deferred cleanup

	if rows.Next() {
		if err := rows.Scan(&track.ID); err != nil {
			return fmt.Errorf("%w: failed to scan track id: %v", domain.ErrPersistence, err)
		}
	} else if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: error iterating returning rows: %v", domain.ErrPersistence, err)
	}

	return nil
}

// ListTracks returns tracks newest-first. A limit of zero or below means no
// limit; ties on created_at are broken by id so insertion order wins.
func (db *DB) ListTracks(limit int) ([]domain.Track, error) {
	if db == nil || db.DB == nil {
		return nil, domain.ErrStoreUnavailable
	}

	query := `SELECT * FROM tracks ORDER BY created_at DESC, id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	tracks := []domain.Track{}
	if err := db.Select(&tracks, query, args...); err != nil {
		return nil, fmt.Errorf("%w: failed to list tracks: %v", domain.ErrPersistence, err)
	}
	return tracks, nil
}

func (db *DB) GetTrackByID(id int64) (*domain.Track, error) {
	if db == nil || db.DB == nil {
		return nil, domain.ErrStoreUnavailable
	}

	query := `SELECT * FROM tracks WHERE id = ?`

	var track domain.Track
	err := db.Get(&track, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("track %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get track %d: %v", domain.ErrPersistence, id, err)
	}
	return &track, nil
}

// FindTrackByFilename recovers the record behind a stored blob. Used by the
// media endpoint to annotate responses with the real content type.
func (db *DB) FindTrackByFilename(filename string) (*domain.Track, error) {
	if db == nil || db.DB == nil {
		return nil, domain.ErrStoreUnavailable
	}

	query := `SELECT * FROM tracks WHERE filename = ?`

	var track domain.Track
	err := db.Get(&track, query, filename)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("filename %s: %w", filename, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find track by filename: %v", domain.ErrPersistence, err)
	}
	return &track, nil
}
