package httpapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesargomez89/trackvault/internal/app"
	"github.com/cesargomez89/trackvault/internal/http/dto"
	"github.com/cesargomez89/trackvault/internal/logger"
	"github.com/cesargomez89/trackvault/internal/storage"
	"github.com/cesargomez89/trackvault/internal/store"
)

type testEnv struct {
	server    *httptest.Server
	uploadDir string
	db        *store.DB
}

func setupServer(t *testing.T, publicBase string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	db, err := store.NewSQLiteDB(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logger.Default()
	uploadDir := filepath.Join(dir, "uploads")
	blobs, err := storage.NewBlobStore(uploadDir, log)
	require.NoError(t, err)

	uploads := app.NewUploadService(blobs, db, log)
	urls := app.NewMediaURLBuilder(publicBase)

	r := chi.NewRouter()
	h := NewHandler(uploads, db, blobs, urls, log, 8)
	h.RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, uploadDir: uploadDir, db: db}
}

func multipartBody(t *testing.T, fields map[string]string, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
		hdr.Set("Content-Type", contentType)
		pw, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = pw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func uploadTrack(t *testing.T, env *testEnv, fields map[string]string, filename, contentType string, content []byte) *http.Response {
	t.Helper()

	body, bodyType := multipartBody(t, fields, filename, contentType, content)
	resp, err := http.Post(env.server.URL+"/api/tracks/upload", bodyType, body)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestRootAndHello(t *testing.T) {
	env := setupServer(t, "")

	resp, err := http.Get(env.server.URL + "/")
	require.NoError(t, err)
	var msg map[string]string
	decodeJSON(t, resp, &msg)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Track Vault API ready", msg["message"])

	resp, err = http.Get(env.server.URL + "/api/hello")
	require.NoError(t, err)
	decodeJSON(t, resp, &msg)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, msg["message"], "Hello")
}

func TestStatus(t *testing.T) {
	env := setupServer(t, "")

	resp, err := http.Get(env.server.URL + "/api/status")
	require.NoError(t, err)
	var status map[string]string
	decodeJSON(t, resp, &status)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "running", status["backend"])
	assert.Equal(t, "connected", status["database"])
}

func TestUploadAndRetrieve(t *testing.T) {
	env := setupServer(t, "")
	content := []byte("these bytes stand in for an mp3")

	resp := uploadTrack(t, env, map[string]string{
		"title":  "Night Drive",
		"artist": "The Testers",
		"album":  "Fixtures",
		"genre":  "electronic",
	}, "night drive.mp3", "audio/mpeg", content)

	var track dto.TrackResponse
	decodeJSON(t, resp, &track)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.NotZero(t, track.ID)
	assert.Equal(t, "Night Drive", track.Title)
	assert.Equal(t, "night drive.mp3", track.OriginalFilename)
	assert.Equal(t, "audio/mpeg", track.ContentType)
	assert.Equal(t, int64(len(content)), track.FileSize)
	assert.Equal(t, "/media/"+track.Filename, track.MediaURL)
	assert.NotEqual(t, track.OriginalFilename, track.Filename)
	assert.False(t, track.CreatedAt.IsZero())

	// Fetch by id
	resp, err := http.Get(fmt.Sprintf("%s/api/tracks/%d", env.server.URL, track.ID))
	require.NoError(t, err)
	var fetched dto.TrackResponse
	decodeJSON(t, resp, &fetched)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, track.ID, fetched.ID)
	assert.Equal(t, track.MediaURL, fetched.MediaURL)

	// Stream the exact bytes back
	resp, err = http.Get(env.server.URL + track.MediaURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, content, got)
	assert.Equal(t, "audio/mpeg", resp.Header.Get("Content-Type"))
}

func TestUploadRejectsNonAudio(t *testing.T) {
	env := setupServer(t, "")

	resp := uploadTrack(t, env, map[string]string{"title": "Nope"}, "movie.mp4", "video/mp4", []byte("not audio"))
	var detail map[string]string
	decodeJSON(t, resp, &detail)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Only audio files are allowed", detail["detail"])

	// No blob written, no record created
	entries, err := os.ReadDir(env.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	tracks, err := env.db.ListTracks(0)
	require.NoError(t, err)
	assert.Empty(t, tracks)
}

func TestUploadValidation(t *testing.T) {
	env := setupServer(t, "")

	// Missing title
	resp := uploadTrack(t, env, map[string]string{}, "song.mp3", "audio/mpeg", []byte("x"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Relative cover URL
	resp = uploadTrack(t, env, map[string]string{
		"title":     "Night Drive",
		"cover_url": "/covers/1.jpg",
	}, "song.mp3", "audio/mpeg", []byte("x"))
	var detail map[string]string
	decodeJSON(t, resp, &detail)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, detail["detail"], "cover_url")

	// Missing file part
	body, bodyType := multipartBody(t, map[string]string{"title": "Night Drive"}, "", "", nil)
	resp, err := http.Post(env.server.URL+"/api/tracks/upload", bodyType, body)
	require.NoError(t, err)
	decodeJSON(t, resp, &detail)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "file is required", detail["detail"])
}

func TestListNewestFirstWithLimit(t *testing.T) {
	env := setupServer(t, "")

	for _, title := range []string{"a", "b", "c"} {
		resp := uploadTrack(t, env, map[string]string{"title": title}, title+".mp3", "audio/mpeg", []byte(title))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp, err := http.Get(env.server.URL + "/api/tracks?limit=2")
	require.NoError(t, err)
	var tracks []dto.TrackResponse
	decodeJSON(t, resp, &tracks)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, tracks, 2)
	assert.Equal(t, "c", tracks[0].Title)
	assert.Equal(t, "b", tracks[1].Title)

	// Full listing carries media URLs
	resp, err = http.Get(env.server.URL + "/api/tracks")
	require.NoError(t, err)
	decodeJSON(t, resp, &tracks)
	require.Len(t, tracks, 3)
	for _, tr := range tracks {
		assert.Equal(t, "/media/"+tr.Filename, tr.MediaURL)
	}

	// Bad limit
	resp, err = http.Get(env.server.URL + "/api/tracks?limit=abc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetTrackErrors(t *testing.T) {
	env := setupServer(t, "")

	// Malformed id
	resp, err := http.Get(env.server.URL + "/api/tracks/not-a-number")
	require.NoError(t, err)
	var detail map[string]string
	decodeJSON(t, resp, &detail)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid track id", detail["detail"])

	// Well-formed but absent id
	resp, err = http.Get(env.server.URL + "/api/tracks/424242")
	require.NoError(t, err)
	decodeJSON(t, resp, &detail)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Track not found", detail["detail"])
}

func TestServeMediaMissing(t *testing.T) {
	env := setupServer(t, "")

	resp, err := http.Get(env.server.URL + "/media/nope.mp3")
	require.NoError(t, err)
	var detail map[string]string
	decodeJSON(t, resp, &detail)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "File not found", detail["detail"])
}

func TestServeMediaRangeRequest(t *testing.T) {
	env := setupServer(t, "")
	content := []byte("0123456789")

	resp := uploadTrack(t, env, map[string]string{"title": "Ranged"}, "ranged.mp3", "audio/mpeg", content)
	var track dto.TrackResponse
	decodeJSON(t, resp, &track)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, env.server.URL+track.MediaURL, nil)
	require.NoError(t, err)
	req.Header.Set("Range", "bytes=0-3")

	rangeResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer rangeResp.Body.Close()

	got, err := io.ReadAll(rangeResp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusPartialContent, rangeResp.StatusCode)
	assert.Equal(t, []byte("0123"), got)
}

func TestMediaURLWithPublicBase(t *testing.T) {
	env := setupServer(t, "https://api.example.com")

	resp := uploadTrack(t, env, map[string]string{"title": "Based"}, "based.mp3", "audio/mpeg", []byte("x"))
	var track dto.TrackResponse
	decodeJSON(t, resp, &track)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://api.example.com/media/"+track.Filename, track.MediaURL)
}
