// Package session holds the in-memory state of a newsletter build: the
// uploaded course table, user-authored events, the content order and the
// generated document. Sessions live in process memory only and expire on a
// timer; nothing is ever persisted.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vamostennis/newsletter/internal/core"
	"github.com/vamostennis/newsletter/internal/enrich"
)

// MaxEvents caps the user-authored events per newsletter.
const MaxEvents = 3

// DefaultTTL is how long an idle session survives.
const DefaultTTL = 2 * time.Hour

// EventInput is the operator-supplied event form. Only the description is
// load-bearing: an entry without one is silently skipped, matching the
// form's optional slots.
type EventInput struct {
	Title       string `json:"title" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	URL         string `json:"url" validate:"omitempty,url"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

// Envelope is the final deliverable, shaped for the email service import.
type Envelope struct {
	Subject     string `json:"subject"`
	Content     string `json:"content"`
	PreviewText string `json:"preview_text"`
}

// Copy is the generated email envelope text, pre-edit.
type Copy struct {
	Subject string `json:"subject"`
	Preview string `json:"preview"`
	Summary string `json:"summary"`
}

// Session is one newsletter build in progress. All fields are guarded by
// the owning Manager's lock; handlers never touch a Session concurrently
// without going through the Manager.
type Session struct {
	ID        string
	CreatedAt time.Time

	Table          *core.Table
	Classification *core.Classification
	Events         []core.Event
	Order          []string

	Fragments map[string]string
	Document  string

	expire *time.Timer
}

// Manager owns the session map and runs every state transition.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	composer *core.Composer
	port     core.TextPort
	validate *validator.Validate
	ttl      time.Duration
	log      *slog.Logger
}

// NewManager builds a session manager. The port may be nil; copy
// generation then uses the static fallbacks.
func NewManager(composer *core.Composer, port core.TextPort, ttl time.Duration, log *slog.Logger) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		composer: composer,
		port:     port,
		validate: validator.New(),
		ttl:      ttl,
		log:      log,
	}
}

// Create starts a new session with an expiry timer.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Fragments: make(map[string]string),
	}
	s.expire = time.AfterFunc(m.ttl, func() { m.evict(s.ID) })
	m.sessions[s.ID] = s

	m.log.Info("session created", "session_id", s.ID)
	return s
}

// Delete removes a session immediately.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		s.expire.Stop()
		delete(m.sessions, id)
	}
}

func (m *Manager) evict(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; ok {
		delete(m.sessions, id)
		m.log.Info("session expired", "session_id", id)
	}
}

// get looks up a live session and pushes its expiry out. Callers must hold
// the manager lock.
func (m *Manager) get(id string) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	s.expire.Reset(m.ttl)
	return s, nil
}

// SetCourses loads a coaching export into the session, replacing any
// earlier upload. The content order is reconciled so earlier reordering
// survives a re-upload.
func (m *Manager) SetCourses(id string, data []byte, workbook bool) (*core.Classification, error) {
	load := core.Load
	if workbook {
		load = core.LoadWorkbook
	}

	table, err := load(data)
	if err != nil {
		return nil, err
	}
	table = core.Derive(table)
	classification := core.Classify(table)

	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.get(id)
	if err != nil {
		return nil, err
	}

	s.Table = table
	s.Classification = &classification
	s.Order = core.Reconcile(s.Order, classification.AvailableCategories(), eventIDs(s.Events))
	s.Document = ""

	m.log.Info("courses loaded",
		"session_id", s.ID,
		"records", len(table.Records),
		"categories", len(classification.AvailableCategories()))

	return &classification, nil
}

// SetEvents replaces the session's events. Inputs without a description
// are skipped; at most MaxEvents survive. IDs and default titles are
// assigned from the input slot position, so "Event 2" stays "Event 2" even
// when slot 1 is empty.
func (m *Manager) SetEvents(id string, inputs []EventInput) ([]core.Event, error) {
	if len(inputs) > MaxEvents {
		return nil, fmt.Errorf("too many events: %d (max %d)", len(inputs), MaxEvents)
	}

	var events []core.Event
	for i, in := range inputs {
		if strings.TrimSpace(in.Description) == "" {
			continue
		}
		if err := m.validate.Struct(in); err != nil {
			return nil, fmt.Errorf("invalid event %d: %w", i+1, err)
		}

		title := strings.TrimSpace(in.Title)
		if title == "" {
			title = fmt.Sprintf("Event %d", i+1)
		}

		events = append(events, core.Event{
			ID:          fmt.Sprintf("event_%d", i+1),
			Title:       title,
			Description: strings.TrimSpace(in.Description),
			URL:         strings.TrimSpace(in.URL),
			ImageURL:    strings.TrimSpace(in.ImageURL),
		})
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.get(id)
	if err != nil {
		return nil, err
	}

	s.Events = events
	s.Order = core.Reconcile(s.Order, availableCategories(s.Classification), eventIDs(events))
	s.Document = ""

	return events, nil
}

// Order returns the session's current content order.
func (m *Manager) Order(id string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), s.Order...), nil
}

// MoveUp moves the named entry one position earlier.
func (m *Manager) MoveUp(id, key string) ([]string, error) {
	return m.move(id, key, core.MoveUp)
}

// MoveDown moves the named entry one position later.
func (m *Manager) MoveDown(id, key string) ([]string, error) {
	return m.move(id, key, core.MoveDown)
}

func (m *Manager) move(id, key string, shift func([]string, int) []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.get(id)
	if err != nil {
		return nil, err
	}

	pos := -1
	for i, k := range s.Order {
		if k == key {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, fmt.Errorf("unknown order key: %s", key)
	}

	s.Order = shift(s.Order, pos)
	return append([]string(nil), s.Order...), nil
}

// Generate composes every ordered entry and assembles the document without
// a title or summary; those are added at finalisation. The fragments are
// kept so Finalize can re-wrap without re-running enrichment.
func (m *Manager) Generate(ctx context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.get(id)
	if err != nil {
		return "", err
	}
	if s.Classification == nil {
		return "", fmt.Errorf("no courses uploaded")
	}

	var fragments []string
	s.Fragments = make(map[string]string, len(s.Order))

	for _, key := range s.Order {
		var fragment string
		if ev, ok := findEvent(s.Events, key); ok {
			fragment = m.composer.ComposeEvent(ctx, ev)
		} else {
			cat := core.Category(key)
			fragment = m.composer.ComposeBlock(ctx, cat, s.Classification.ByCategory(cat))
		}
		if fragment == "" {
			m.log.Warn("empty fragment skipped", "session_id", s.ID, "key", key)
			continue
		}
		s.Fragments[key] = fragment
		fragments = append(fragments, fragment)
	}

	s.Document = m.composer.Assemble(fragments, "", "")
	return s.Document, nil
}

// GenerateCopy produces the subject line, preview text and summary from
// the generated document. Each piece independently falls back to its
// static default, so a partial enrichment outage still yields a complete
// envelope.
func (m *Manager) GenerateCopy(ctx context.Context, id string) (*Copy, error) {
	m.mu.Lock()

	s, err := m.get(id)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	if s.Document == "" {
		m.mu.Unlock()
		return nil, fmt.Errorf("newsletter not generated yet")
	}
	text := core.ExtractText(s.Document)
	m.mu.Unlock()

	// Port calls run outside the lock; they are slow and touch no session
	// state.
	c := &Copy{
		Subject: enrich.FallbackSubjectLine,
		Preview: enrich.FallbackPreviewText,
		Summary: enrich.FallbackNewsletterSummary,
	}
	if m.port == nil {
		return c, nil
	}

	if subject, err := m.port.SubjectLine(ctx, text); err == nil {
		c.Subject = enrich.OrFallback(subject, c.Subject)
	}
	if preview, err := m.port.PreviewText(ctx, text); err == nil {
		c.Preview = enrich.OrFallback(preview, c.Preview)
	}
	if summary, err := m.port.NewsletterSummary(ctx, text); err == nil {
		c.Summary = enrich.OrFallback(summary, c.Summary)
	}

	return c, nil
}

// Finalize re-wraps the stored fragments with the operator-approved title
// and summary and returns the delivery envelope. No enrichment runs here;
// the operator has already approved the exact text.
func (m *Manager) Finalize(id, subject, preview, title, summary string) (*Envelope, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	if s.Document == "" {
		return nil, fmt.Errorf("newsletter not generated yet")
	}

	var fragments []string
	for _, key := range s.Order {
		if f, ok := s.Fragments[key]; ok {
			fragments = append(fragments, f)
		}
	}

	content := m.composer.Assemble(fragments, title, summary)

	return &Envelope{
		Subject:     subject,
		Content:     content,
		PreviewText: preview,
	}, nil
}

func eventIDs(events []core.Event) []string {
	ids := make([]string, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}
	return ids
}

func availableCategories(c *core.Classification) []core.Category {
	if c == nil {
		return nil
	}
	return c.AvailableCategories()
}

func findEvent(events []core.Event, key string) (core.Event, bool) {
	for _, ev := range events {
		if ev.ID == key {
			return ev, true
		}
	}
	return core.Event{}, false
}
