package web

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vamostennis/newsletter/internal/auth"
	"github.com/vamostennis/newsletter/internal/config"
	"github.com/vamostennis/newsletter/internal/core"
	"github.com/vamostennis/newsletter/internal/session"
)

const coursesCSV = "Name,Status,Start Date,Time,Type,Day,Classes,Active Participants\n" +
	"Belair Park Beginner,Upcoming,04/08/2025,18:00,Adult,Monday,6,3\n" +
	"Red Ball Saturdays,Upcoming,09/08/2025,10:00,Junior,Saturday,10,5\n"

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Port: 8080, RequestTimeout: time.Minute, ShutdownTimeout: time.Second},
		Upload:  config.UploadConfig{MaxFileSize: 1 << 20},
		Session: config.SessionConfig{TTL: time.Minute},
		Rate:    config.RateLimitConfig{Enabled: false},
		Logging: config.LoggingConfig{Level: "info", Format: "text"},
	}
}

func newTestServer(t *testing.T, creds *auth.Credentials) *Server {
	t.Helper()
	cfg := testConfig()
	manager := session.NewManager(core.NewComposer(nil), nil, cfg.Session.TTL, nil)
	return NewServer(cfg, manager, creds)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createSession(t *testing.T, srv *Server) string {
	t.Helper()

	rec := doJSON(t, srv, http.MethodPost, "/api/sessions", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: status %d", rec.Code)
	}

	var body map[string]string
	decode(t, rec, &body)
	if body["session_id"] == "" {
		t.Fatal("create session: empty id")
	}
	return body["session_id"]
}

func uploadCourses(t *testing.T, srv *Server, sessionID, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+sessionID+"/courses", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestReportURLs(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodGet, "/api/report-urls", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]string
	decode(t, rec, &body)
	if !strings.Contains(body["courses"], "Coaching_Courses") {
		t.Errorf("courses url = %q", body["courses"])
	}
	if !strings.Contains(body["sessions"], "Coaching_Sessions") {
		t.Errorf("sessions url = %q", body["sessions"])
	}
}

func TestUploadCourses(t *testing.T) {
	srv := newTestServer(t, nil)
	id := createSession(t, srv)

	rec := uploadCourses(t, srv, id, "courses.csv", coursesCSV)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Availability map[string]core.CategoryAvailability `json:"availability"`
		Order        []string                             `json:"order"`
	}
	decode(t, rec, &body)

	if !body.Availability["adults"].Available {
		t.Error("adults should be available")
	}
	if len(body.Order) != 2 || body.Order[0] != "adults" || body.Order[1] != "juniors" {
		t.Errorf("order = %v", body.Order)
	}
}

func TestUploadCoursesErrors(t *testing.T) {
	srv := newTestServer(t, nil)
	id := createSession(t, srv)

	t.Run("missing columns", func(t *testing.T) {
		rec := uploadCourses(t, srv, id, "courses.csv", "Name,Status\nX,Upcoming\n")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}

		var body ErrorResponse
		decode(t, rec, &body)
		if body.Code != "VAL001" {
			t.Errorf("code = %q, want VAL001", body.Code)
		}
		if !strings.Contains(body.Message, "Start Date") {
			t.Errorf("message should list missing columns: %q", body.Message)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		rec := uploadCourses(t, srv, "nope", "courses.csv", coursesCSV)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}

		var body ErrorResponse
		decode(t, rec, &body)
		if body.Code != "SES001" {
			t.Errorf("code = %q, want SES001", body.Code)
		}
	})

	t.Run("no file", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/courses", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestEventsAndOrder(t *testing.T) {
	srv := newTestServer(t, nil)
	id := createSession(t, srv)

	if rec := uploadCourses(t, srv, id, "courses.csv", coursesCSV); rec.Code != http.StatusOK {
		t.Fatalf("upload: status %d", rec.Code)
	}

	rec := doJSON(t, srv, http.MethodPut, "/api/sessions/"+id+"/events", map[string]any{
		"events": []map[string]string{
			{"title": "Summer Social", "description": "Doubles and drinks."},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("set events: status %d, body: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Events []core.Event `json:"events"`
		Order  []string     `json:"order"`
	}
	decode(t, rec, &body)
	if len(body.Events) != 1 || body.Events[0].ID != "event_1" {
		t.Fatalf("events = %+v", body.Events)
	}
	if len(body.Order) != 3 || body.Order[2] != "event_1" {
		t.Fatalf("order = %v", body.Order)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/order/event_1/up", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("move up: status %d", rec.Code)
	}

	var moved struct {
		Order []string `json:"order"`
	}
	decode(t, rec, &moved)
	if moved.Order[1] != "event_1" {
		t.Errorf("after move up: %v", moved.Order)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/sessions/"+id+"/order", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get order: status %d", rec.Code)
	}
}

func TestGenerateAndFinalize(t *testing.T) {
	srv := newTestServer(t, nil)
	id := createSession(t, srv)

	if rec := uploadCourses(t, srv, id, "courses.csv", coursesCSV); rec.Code != http.StatusOK {
		t.Fatalf("upload: status %d", rec.Code)
	}

	rec := doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/generate", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate: status %d, body: %s", rec.Code, rec.Body.String())
	}

	var gen map[string]string
	decode(t, rec, &gen)
	if !strings.Contains(gen["content"], "<h2>Adult Courses</h2>") {
		t.Error("generated content missing adults block")
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/copy", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("copy: status %d", rec.Code)
	}

	var copyBody session.Copy
	decode(t, rec, &copyBody)
	if copyBody.Subject == "" || copyBody.Preview == "" || copyBody.Summary == "" {
		t.Errorf("copy should fall back to static text: %+v", copyBody)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/finalize", map[string]string{
		"subject": "🎾 August Courses",
		"preview": "Courses now open",
		"title":   "August Newsletter",
		"summary": "Plenty on this month.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("finalize: status %d, body: %s", rec.Code, rec.Body.String())
	}

	var env session.Envelope
	decode(t, rec, &env)
	if env.Subject != "🎾 August Courses" {
		t.Errorf("subject = %q", env.Subject)
	}
	if env.PreviewText != "Courses now open" {
		t.Errorf("preview_text = %q", env.PreviewText)
	}
	if !strings.Contains(env.Content, "<h1>August Newsletter</h1>") {
		t.Error("content missing title")
	}
}

func TestGenerateWithoutCourses(t *testing.T) {
	srv := newTestServer(t, nil)
	id := createSession(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/generate", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBasicAuthGate(t *testing.T) {
	hash, err := auth.HashPassword("TopSpin!9")
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	creds := &auth.Credentials{Username: "coach", Hash: hash}
	srv := newTestServer(t, creds)

	t.Run("missing credentials rejected", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/sessions", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if rec.Header().Get("WWW-Authenticate") == "" {
			t.Error("missing WWW-Authenticate challenge")
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
		req.SetBasicAuth("coach", "wrong")
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("correct credentials accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
		req.SetBasicAuth("coach", "TopSpin!9")
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
	})

	t.Run("health stays open", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/healthz", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}
