// Package httpapp wires the upload and retrieval flow to the HTTP surface.
package httpapp

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/form/v4"

	"github.com/cesargomez89/trackvault/internal/app"
	"github.com/cesargomez89/trackvault/internal/logger"
	"github.com/cesargomez89/trackvault/internal/storage"
	"github.com/cesargomez89/trackvault/internal/store"
)

type Handler struct {
	Uploads *app.UploadService
	Store   *store.DB
	Blobs   *storage.BlobStore
	URLs    *app.MediaURLBuilder
	Logger  *logger.Logger

	decoder        *form.Decoder
	maxUploadBytes int64
}

func NewHandler(uploads *app.UploadService, db *store.DB, blobs *storage.BlobStore, urls *app.MediaURLBuilder, log *logger.Logger, maxUploadMB int) *Handler {
	return &Handler{
		Uploads:        uploads,
		Store:          db,
		Blobs:          blobs,
		URLs:           urls,
		Logger:         log.WithComponent("http"),
		decoder:        form.NewDecoder(),
		maxUploadBytes: int64(maxUploadMB) << 20,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

// detailResponse is the error payload: a short human-readable message,
// never internal detail.
type detailResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}
