package storage

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// GenerateName produces a collision-resistant storage name from a random
// token plus the original file's extension. The token carries the full
// randomness of a v4 UUID, so uniqueness needs no lookup; no
// uploader-supplied character other than the extension reaches the result.
func GenerateName(original string) string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	return token + filepath.Ext(original)
}
