package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vamostennis/newsletter/internal/session"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReportURLs returns the pre-filtered ClubSpark report links the
// operator downloads the coaching export from.
func (s *Server) handleReportURLs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"courses":  s.portal.CoursesURL(),
		"sessions": s.portal.SessionsURL(),
	})
}

// handleCreateSession starts a newsletter build session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": sess.ID})
}

// handleDeleteSession discards a session and its state.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.Delete(chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}

// handleUploadCourses accepts a coaching export (CSV or XLSX) and loads it
// into the session. Responds with the per-category availability so the UI
// can show what the newsletter will contain.
func (s *Server) handleUploadCourses(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondError(w, r, fmt.Errorf("invalid file upload: %w", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, fmt.Errorf("invalid file upload: no file provided"), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("invalid file upload: %w", err), http.StatusBadRequest)
		return
	}

	workbook := strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx")

	classification, err := s.sessions.SetCourses(sessionID, data, workbook)
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}

	order, err := s.sessions.Order(sessionID)
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"availability": classification.Availability,
		"order":        order,
	})
}

// handleSetEvents replaces the session's user-authored events.
func (s *Server) handleSetEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var body struct {
		Events []session.EventInput `json:"events"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	events, err := s.sessions.SetEvents(sessionID, body.Events)
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}

	order, err := s.sessions.Order(sessionID)
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"order":  order,
	})
}

// handleGetOrder returns the current content order.
func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.sessions.Order(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

// handleMoveUp moves an order entry one position earlier.
func (s *Server) handleMoveUp(w http.ResponseWriter, r *http.Request) {
	s.handleMove(w, r, s.sessions.MoveUp)
}

// handleMoveDown moves an order entry one position later.
func (s *Server) handleMoveDown(w http.ResponseWriter, r *http.Request) {
	s.handleMove(w, r, s.sessions.MoveDown)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request, move func(id, key string) ([]string, error)) {
	order, err := move(chi.URLParam(r, "sessionID"), chi.URLParam(r, "key"))
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

// handleGenerate composes the ordered content into the newsletter
// document, without envelope copy.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	content, err := s.sessions.Generate(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"content": content})
}

// handleGenerateCopy produces subject line, preview text and summary for
// the generated newsletter. The operator edits these before finalizing.
func (s *Server) handleGenerateCopy(w http.ResponseWriter, r *http.Request) {
	copyText, err := s.sessions.GenerateCopy(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, copyText)
}

// handleFinalize wraps the approved copy around the document and returns
// the delivery envelope.
func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Subject string `json:"subject"`
		Preview string `json:"preview"`
		Title   string `json:"title"`
		Summary string `json:"summary"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	envelope, err := s.sessions.Finalize(chi.URLParam(r, "sessionID"),
		body.Subject, body.Preview, body.Title, body.Summary)
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, envelope)
}

// statusForError picks the HTTP status for a session-layer error. Unknown
// sessions are 404, everything else is a client-input problem.
func statusForError(err error) int {
	if strings.Contains(err.Error(), "session not found") {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
