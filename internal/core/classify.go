package core

// classify.go partitions enriched records into content categories.
//
// Categories are independent filters, not a partition. The events set is
// deliberately a union: a one-class program is event-like even when its
// Type label says otherwise, so a row can appear in both adults and events.

import "strings"

// eventTypeMarkers are the Type substrings that make a row event-like.
var eventTypeMarkers = []string{"event", "session", "drop"}

// Classify builds the per-category subsets and the availability map.
// Records matching no predicate are omitted from every subset; that is
// silent by design.
func Classify(t *Table) Classification {
	c := Classification{
		Availability: make(map[Category]CategoryAvailability),
	}

	for _, r := range t.Records {
		typ := strings.ToLower(r.Type)

		if typ == "adult" {
			c.Adults = append(c.Adults, r)
		}
		if typ == "junior" {
			c.Juniors = append(c.Juniors, r)
		}
		if isEventLike(typ, r.ClassCount) {
			c.Events = append(c.Events, r)
			c.DropIns = append(c.DropIns, r)
		}
	}

	c.Availability[CategoryAdults] = CategoryAvailability{
		Available: len(c.Adults) > 0,
		Count:     len(c.Adults),
		Levels:    distinctLevels(c.Adults),
	}
	c.Availability[CategoryJuniors] = CategoryAvailability{
		Available: len(c.Juniors) > 0,
		Count:     len(c.Juniors),
	}
	c.Availability[CategoryEvents] = CategoryAvailability{
		Available: len(c.Events) > 0,
		Count:     len(c.Events),
	}
	c.Availability[CategoryDropIns] = CategoryAvailability{
		Available: len(c.DropIns) > 0,
		Count:     len(c.DropIns),
	}

	return c
}

// ByCategory returns the subset for one category key.
func (c Classification) ByCategory(cat Category) []CourseRecord {
	switch cat {
	case CategoryAdults:
		return c.Adults
	case CategoryJuniors:
		return c.Juniors
	case CategoryEvents:
		return c.Events
	case CategoryDropIns:
		return c.DropIns
	default:
		return nil
	}
}

// AvailableCategories lists the non-empty course categories in canonical
// order (adults first).
func (c Classification) AvailableCategories() []Category {
	var out []Category
	for _, cat := range []Category{CategoryAdults, CategoryJuniors, CategoryEvents} {
		if c.Availability[cat].Available {
			out = append(out, cat)
		}
	}
	return out
}

func isEventLike(loweredType string, classCount int) bool {
	if classCount == 1 {
		return true
	}
	for _, marker := range eventTypeMarkers {
		if strings.Contains(loweredType, marker) {
			return true
		}
	}
	return false
}

// distinctLevels returns the distinct skill levels present, preserving
// first-appearance order.
func distinctLevels(records []CourseRecord) []SkillLevel {
	seen := make(map[SkillLevel]bool, 4)
	var out []SkillLevel
	for _, r := range records {
		if !seen[r.SkillLevel] {
			seen[r.SkillLevel] = true
			out = append(out, r.SkillLevel)
		}
	}
	return out
}
