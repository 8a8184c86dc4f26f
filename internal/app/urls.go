package app

import (
	"strings"

	"github.com/cesargomez89/trackvault/internal/constants"
)

// MediaURLBuilder derives the public-facing media URL for a storage
// filename. Pure; no I/O.
type MediaURLBuilder struct {
	base string
}

// NewMediaURLBuilder takes the optional public base URL. An empty base
// yields root-relative URLs the frontend prefixes itself.
func NewMediaURLBuilder(base string) *MediaURLBuilder {
	return &MediaURLBuilder{base: strings.TrimRight(base, "/")}
}

// URL returns "<base>/media/<filename>" when a base is configured,
// otherwise "/media/<filename>".
func (b *MediaURLBuilder) URL(filename string) string {
	return b.base + constants.MediaPathPrefix + "/" + filename
}
