// Package storage implements the filesystem blob store holding raw
// uploaded audio bytes, addressed by their generated storage name.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cesargomez89/trackvault/internal/constants"
	"github.com/cesargomez89/trackvault/internal/domain"
	"github.com/cesargomez89/trackvault/internal/logger"
)

var errUnsafeName = errors.New("unsafe storage name")

// BlobStore stores raw file bytes under a single root directory.
type BlobStore struct {
	root string
	log  *logger.Logger
}

// NewBlobStore creates the root directory if absent and returns a store
// rooted there.
func NewBlobStore(root string, log *logger.Logger) (*BlobStore, error) {
	if err := os.MkdirAll(root, constants.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", root, err)
	}
	return &BlobStore{
		root: root,
		log:  log.WithComponent("blobstore"),
	}, nil
}

// Root returns the directory blobs are stored under.
func (s *BlobStore) Root() string {
	return s.root
}

// path resolves a storage name inside the root. Names are always
// generator-produced, but separators and parent segments are rejected here
// anyway so no caller can escape the root.
func (s *BlobStore) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", errUnsafeName, name)
	}
	return filepath.Join(s.root, name), nil
}

// Write creates the blob and copies all bytes from r, returning the count
// written. A failed write never leaves a partial blob behind.
func (s *BlobStore) Write(name string, r io.Reader) (int64, error) {
	dest, err := s.path(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close() //nolint:errcheck // already failing
		s.discard(dest)
		return 0, fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	if err := f.Close(); err != nil {
		s.discard(dest)
		return 0, fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}

	return n, nil
}

// Exists reports whether a blob is present under name.
func (s *BlobStore) Exists(name string) bool {
	p, err := s.path(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// Open returns a readable, seekable handle on the blob plus its FileInfo.
// The caller owns the handle.
func (s *BlobStore) Open(name string) (io.ReadSeekCloser, os.FileInfo, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, nil, fmt.Errorf("blob %q: %w", name, domain.ErrNotFound)
	}

	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return nil, nil, fmt.Errorf("blob %q: %w", name, domain.ErrNotFound)
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, nil, fmt.Errorf("blob %q: %w", name, domain.ErrNotFound)
	}
	return f, info, nil
}

// Remove deletes a blob best-effort. Used only for compensating cleanup, so
// failures are logged and swallowed; they cannot make the reported outcome
// worse for the caller.
func (s *BlobStore) Remove(name string) {
	p, err := s.path(name)
	if err != nil {
		s.log.Warn("Refusing to remove unsafe blob name", "name", name)
		return
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		s.log.Warn("Failed to remove blob", "name", name, "error", err)
	}
}

func (s *BlobStore) discard(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn("Failed to discard partial blob", "path", path, "error", err)
	}
}
