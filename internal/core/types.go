// Package core provides the business logic for newsletter generation.
// This package has no UI dependencies and can be used by any frontend.
package core

import "context"

// Venue is a coaching location extracted from a course name.
type Venue string

const (
	VenueBelairPark  Venue = "Belair Park"
	VenueDulwichPark Venue = "Dulwich Park"
	VenueUnknown     Venue = "Unknown Venue"
)

// SkillLevel is an adult course level extracted from a course name.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelImprover     SkillLevel = "Improver"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelAdvanced     SkillLevel = "Advanced"
	LevelUnknown      SkillLevel = "Unknown"
)

// CourseRecord is one validated row from a coaching export.
// Derived fields are populated exactly once by Derive and never mutated
// afterwards; a record that survives Load always leaves Derive with every
// derived field set.
type CourseRecord struct {
	// Raw fields, trimmed and coerced by the loader.
	Name               string
	Status             string
	StartDate          string // DD/MM/YYYY or YYYY-MM-DD, kept verbatim
	Time               string // 24-hour HH:MM
	Type               string
	Day                string
	ClassCount         int
	ActiveParticipants int

	// Derived fields, set by Derive.
	Venue              Venue
	SkillLevel         SkillLevel
	LimitedSpots       bool
	Full               bool
	FormattedStartDate string
	DurationText       string
}

// Table is the validated output of the loader: upcoming courses only,
// in file order.
type Table struct {
	Records []CourseRecord
}

// Category identifies a newsletter content grouping. Categories are
// independent predicate-derived sets, not a partition: a single-class
// adult course belongs to both CategoryAdults and CategoryEvents.
type Category string

const (
	CategoryAdults  Category = "adults"
	CategoryJuniors Category = "juniors"
	CategoryEvents  Category = "events"
	CategoryDropIns Category = "drop_ins"
)

// CategoryAvailability reports whether a category has content and, for
// adults, the distinct skill levels present in input order.
type CategoryAvailability struct {
	Available bool         `json:"available"`
	Count     int          `json:"count"`
	Levels    []SkillLevel `json:"levels,omitempty"`
}

// Classification holds the per-category record subsets plus the
// availability map.
type Classification struct {
	Adults       []CourseRecord
	Juniors      []CourseRecord
	Events       []CourseRecord
	DropIns      []CourseRecord
	Availability map[Category]CategoryAvailability
}

// Event is a user-authored one-off event, created fresh per generation
// session and never persisted. The ID is stable and derived from input
// order ("event_1", "event_2", ...).
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ImageURL    string `json:"imageUrl"`
}

// TextPort is the optional text-enrichment collaborator. Every method can
// fail or return an empty string; call sites substitute a static fallback
// and never propagate the error. Implementations receive already-rendered
// or derived text only, never raw records.
type TextPort interface {
	LevelBlurb(ctx context.Context, level string) (string, error)
	CategoryBlurb(ctx context.Context, category string) (string, error)
	EventDescription(ctx context.Context, description, title string) (string, error)
	SubjectLine(ctx context.Context, documentText string) (string, error)
	PreviewText(ctx context.Context, documentText string) (string, error)
	NewsletterSummary(ctx context.Context, documentText string) (string, error)
}
