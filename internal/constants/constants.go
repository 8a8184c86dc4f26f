// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort        = "8080"
	DefaultDBPath      = "trackvault.db"
	DefaultUploadDir   = "uploads"
	DefaultMaxUploadMB = 64
	ShutdownTimeout    = 5 * time.Second
)

// MIME Types
const (
	MimeTypeAudioPrefix = "audio/"
	MimeTypeBinary      = "application/octet-stream"
	MimeTypeJSON        = "application/json"
)

// Routing
const (
	MediaPathPrefix = "/media"
)

// File Permissions
const (
	DirPermissions  = 0755
	FilePermissions = 0644
)
