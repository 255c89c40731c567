package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"scorekeeper/models"
	"scorekeeper/pkg/coursematch"
	"scorekeeper/pkg/scorecard"
	"scorekeeper/pkg/store"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const testCard = `MARS GARDENS
12/30/2025 3:15:28 AM
SCORE 2 3 2 2 4 3 3 3 2 3 2 2 3 3 2 4 2 3
PlayerName: Space_Cadet`

type textRecognizer string

func (r textRecognizer) Recognize(*image.Gray) (string, error) { return string(r), nil }

// memStore is an in-memory scorecardStore.
type memStore struct {
	mu      sync.Mutex
	courses []coursematch.Course
	uploads []*models.ScorecardUpload
}

func (m *memStore) ListCourses(context.Context) ([]coursematch.Course, error) {
	return m.courses, nil
}

func (m *memStore) SaveUpload(_ context.Context, up *models.ScorecardUpload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads = append(m.uploads, up)
	return nil
}

func (m *memStore) GetUpload(_ context.Context, id uuid.UUID) (*models.ScorecardUpload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, up := range m.uploads {
		if up.PublicID == id {
			return up, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) ListUploads(_ context.Context, reviewOnly bool, limit int) ([]models.ScorecardUpload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ScorecardUpload
	for i := len(m.uploads) - 1; i >= 0 && len(out) < limit; i-- {
		if reviewOnly && !m.uploads[i].NeedsReview {
			continue
		}
		out = append(out, *m.uploads[i])
	}
	return out, nil
}

func performRequest(r http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func newTestApp(t *testing.T, st scorecardStore) (*app, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := &app{
		store:            st,
		extractor:        scorecard.NewExtractor(textRecognizer(testCard), logger),
		resolver:         coursematch.NewResolver(coursematch.DefaultThreshold),
		uploadBase:       t.TempDir(),
		maxUploadBytes:   1 << 20,
		reviewConfidence: 0.75,
		logger:           logger,
	}
	r := gin.New()
	a.setupRoutes(r)
	return a, r
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.New(32, 32, color.NRGBA{255, 255, 255, 255}), imaging.PNG); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func multipartFile(t *testing.T, field, name string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	if field != "" {
		w, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = w.Write(data)
	} else {
		_ = mw.WriteField("note", "no file")
	}
	_ = mw.Close()
	return buf, mw.FormDataContentType()
}

func catalogStore() *memStore {
	return &memStore{courses: []coursematch.Course{
		{ID: "tourist-trap", Name: "Tourist Trap"},
		{ID: "mars-gardens", Name: "Mars Gardens"},
	}}
}

func TestHealthz(t *testing.T) {
	_, r := newTestApp(t, &memStore{})
	resp := performRequest(r, http.MethodGet, "/healthz", nil, "")
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"ok"`) {
		t.Fatalf("healthz: %d %s", resp.Code, resp.Body.String())
	}
}

func TestUploadScorecard(t *testing.T) {
	st := catalogStore()
	a, r := newTestApp(t, st)

	body, ct := multipartFile(t, "file", "round.PNG", pngBytes(t))
	resp := performRequest(r, http.MethodPost, "/scorecards", body, ct)
	if resp.Code != http.StatusOK {
		t.Fatalf("upload failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	var out struct {
		ID          string                        `json:"id"`
		FileName    string                        `json:"file_name"`
		Extraction  scorecard.ScorecardExtraction `json:"extraction"`
		CourseMatch *coursematch.Result           `json:"course_match"`
		NeedsReview bool                          `json:"needs_review"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.FileName != "round.PNG" || !out.Extraction.Success {
		t.Fatalf("unexpected response: %+v", out)
	}
	if out.CourseMatch == nil || out.CourseMatch.MatchedCourseID == nil || *out.CourseMatch.MatchedCourseID != "mars-gardens" {
		t.Fatalf("course not matched: %+v", out.CourseMatch)
	}
	if out.NeedsReview {
		t.Fatalf("clean scorecard flagged for review")
	}
	if len(st.uploads) != 1 || st.uploads[0].PublicID.String() != out.ID {
		t.Fatalf("upload not stored: %+v", st.uploads)
	}
	if _, err := os.Stat(filepath.Join(a.uploadBase, uploadDir, out.ID+".png")); err != nil {
		t.Fatalf("image not saved: %v", err)
	}

	resp = performRequest(r, http.MethodGet, "/scorecards/"+out.ID, nil, "")
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"matched_course_id":"mars-gardens"`) {
		t.Fatalf("get failed status=%d body=%s", resp.Code, resp.Body.String())
	}
}

func TestUploadScorecardErrors(t *testing.T) {
	a, r := newTestApp(t, catalogStore())

	body, ct := multipartFile(t, "", "", nil)
	if resp := performRequest(r, http.MethodPost, "/scorecards", body, ct); resp.Code != http.StatusBadRequest {
		t.Fatalf("missing file: expected 400 got %d", resp.Code)
	}

	body, ct = multipartFile(t, "file", "notes.png", []byte("definitely not an image"))
	if resp := performRequest(r, http.MethodPost, "/scorecards", body, ct); resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad image: expected 422 got %d", resp.Code)
	}
	entries, _ := os.ReadDir(filepath.Join(a.uploadBase, uploadDir))
	if len(entries) != 0 {
		t.Fatalf("rejected image left on disk: %d files", len(entries))
	}

	a.maxUploadBytes = 1024
	body, ct = multipartFile(t, "file", "big.png", bytes.Repeat([]byte{0}, 4096))
	if resp := performRequest(r, http.MethodPost, "/scorecards", body, ct); resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("large file: expected 413 got %d", resp.Code)
	}
}

func TestGetScorecard(t *testing.T) {
	_, r := newTestApp(t, &memStore{})
	if resp := performRequest(r, http.MethodGet, "/scorecards/not-a-uuid", nil, ""); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if resp := performRequest(r, http.MethodGet, "/scorecards/"+uuid.NewString(), nil, ""); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestListScorecards(t *testing.T) {
	st := &memStore{uploads: []*models.ScorecardUpload{
		{PublicID: uuid.New(), FileName: "a.png", NeedsReview: false},
		{PublicID: uuid.New(), FileName: "b.png", NeedsReview: true},
		{PublicID: uuid.New(), FileName: "c.png", NeedsReview: true},
	}}
	_, r := newTestApp(t, st)

	resp := performRequest(r, http.MethodGet, "/scorecards?review=true", nil, "")
	var ups []models.ScorecardUpload
	if err := json.Unmarshal(resp.Body.Bytes(), &ups); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ups) != 2 || ups[0].FileName != "c.png" {
		t.Fatalf("review list: %+v", ups)
	}

	resp = performRequest(r, http.MethodGet, "/scorecards?limit=1", nil, "")
	ups = nil
	_ = json.Unmarshal(resp.Body.Bytes(), &ups)
	if len(ups) != 1 {
		t.Fatalf("limit ignored: %d", len(ups))
	}

	if resp := performRequest(r, http.MethodGet, "/scorecards?limit=abc", nil, ""); resp.Code != http.StatusBadRequest {
		t.Fatalf("bad limit: expected 400 got %d", resp.Code)
	}
}

func TestCourses(t *testing.T) {
	_, r := newTestApp(t, catalogStore())

	resp := performRequest(r, http.MethodGet, "/courses", nil, "")
	var catalog []coursematch.Course
	_ = json.Unmarshal(resp.Body.Bytes(), &catalog)
	if len(catalog) != 2 {
		t.Fatalf("catalog: %+v", catalog)
	}

	body, _ := json.Marshal(map[string]string{"name": "MARS GARDNS"})
	resp = performRequest(r, http.MethodPost, "/courses/match", bytes.NewReader(body), "application/json")
	var res coursematch.Result
	if err := json.Unmarshal(resp.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.MatchedCourseID == nil || *res.MatchedCourseID != "mars-gardens" {
		t.Fatalf("match: %+v", res)
	}

	resp = performRequest(r, http.MethodPost, "/courses/match", strings.NewReader(`{}`), "application/json")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("missing name: expected 400 got %d", resp.Code)
	}
}
