package httpapp

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/trackvault/internal/app"
	"github.com/cesargomez89/trackvault/internal/constants"
	"github.com/cesargomez89/trackvault/internal/domain"
	"github.com/cesargomez89/trackvault/internal/http/dto"
)

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/api/hello", h.Hello)
	r.Get("/api/status", h.Status)

	r.Post("/api/tracks/upload", h.UploadTrack)
	r.Get("/api/tracks", h.ListTracks)
	r.Get("/api/tracks/{id}", h.GetTrack)

	r.Get("/media/{filename}", h.ServeMedia)
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Track Vault API ready"})
}

func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Hello from the backend API!"})
}

type statusResponse struct {
	Backend  string `json:"backend"`
	Database string `json:"database"`
}

// Status reports whether the metadata store is reachable.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{Backend: "running", Database: "unavailable"}
	if h.Store.Available() {
		resp.Database = "connected"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) UploadTrack(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	var req dto.TrackUploadRequest
	if err := h.decoder.Decode(&req, url.Values(r.MultipartForm.Value)); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid form fields")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeDetail(w, http.StatusBadRequest, dto.ToResponse(errs))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close() //nolint:errcheck // read-only handle

	track, err := h.Uploads.Upload(app.UploadRequest{
		File:             file,
		ContentType:      header.Header.Get("Content-Type"),
		OriginalFilename: header.Filename,
		Title:            req.Title,
		Artist:           req.Artist,
		Album:            req.Album,
		Genre:            req.Genre,
		CoverURL:         req.CoverURL,
	})
	if err != nil {
		h.uploadError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewTrackResponse(track, h.URLs.URL(track.Filename)))
}

func (h *Handler) uploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidContentType):
		writeDetail(w, http.StatusBadRequest, "Only audio files are allowed")
	case errors.Is(err, domain.ErrInvalidTitle),
		errors.Is(err, domain.ErrInvalidCoverURL),
		errors.Is(err, domain.ErrInvalidFileSize):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrStorageWrite):
		h.Logger.Error("Blob write failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to save file")
	default:
		h.Logger.Error("Upload failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Database error")
	}
}

func (h *Handler) ListTracks(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeDetail(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	tracks, err := h.Store.ListTracks(limit)
	if err != nil {
		h.storeError(w, err)
		return
	}

	resp := make([]dto.TrackResponse, 0, len(tracks))
	for i := range tracks {
		resp = append(resp, dto.NewTrackResponse(&tracks[i], h.URLs.URL(tracks[i].Filename)))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetTrack(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeDetail(w, http.StatusBadRequest, "Invalid track id")
		return
	}

	track, err := h.Store.GetTrackByID(id)
	if errors.Is(err, domain.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Track not found")
		return
	}
	if err != nil {
		h.storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewTrackResponse(track, h.URLs.URL(track.Filename)))
}

func (h *Handler) ServeMedia(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	f, info, err := h.Blobs.Open(filename)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "File not found")
		return
	}
	defer f.Close() //nolint:errcheck // read-only handle

	// Prefer the recorded content type; absence is non-fatal.
	contentType := constants.MimeTypeBinary
	if track, err := h.Store.FindTrackByFilename(filename); err == nil && track.ContentType != "" {
		contentType = track.ContentType
	}

	w.Header().Set("Content-Type", contentType)
	http.ServeContent(w, r, filename, info.ModTime(), f)
}

func (h *Handler) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		writeDetail(w, http.StatusInternalServerError, "Database not available")
		return
	}
	h.Logger.Error("Store query failed", "error", err)
	writeDetail(w, http.StatusInternalServerError, "Database error")
}
