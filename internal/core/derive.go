package core

// derive.go computes the presentation fields for validated records.
//
// Derive is total: every record that survived loading leaves with all six
// derived fields set. Unrecognised names get Unknown values and unparsable
// dates keep the raw string, because classification and composition must
// still run on degenerate rows.

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Accepted raw start-date layouts, tried in order.
var startDateLayouts = []string{"02/01/2006", "2006-01-02"}

// Derive returns a copy of the table with every derived field populated.
// The input table is not mutated.
func Derive(t *Table) *Table {
	out := &Table{Records: make([]CourseRecord, len(t.Records))}
	for i, r := range t.Records {
		r.Venue = extractVenue(r.Name)
		r.SkillLevel = extractSkillLevel(r.Name)
		r.LimitedSpots = r.ActiveParticipants >= 7 && r.ActiveParticipants < 10
		r.Full = r.ActiveParticipants >= 10
		r.FormattedStartDate = formatStartDate(r.StartDate)
		r.DurationText = durationText(r.ClassCount)
		out.Records[i] = r
	}
	return out
}

// extractVenue matches venue substrings in the lower-cased course name.
// Belair is checked before Dulwich; first match wins.
func extractVenue(name string) Venue {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "belair"):
		return VenueBelairPark
	case strings.Contains(lower, "dulwich"):
		return VenueDulwichPark
	default:
		return VenueUnknown
	}
}

// extractSkillLevel matches level substrings in the lower-cased course
// name, in the fixed order Beginner, Improver, Intermediate, Advanced.
func extractSkillLevel(name string) SkillLevel {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "beginner"):
		return LevelBeginner
	case strings.Contains(lower, "improver"):
		return LevelImprover
	case strings.Contains(lower, "intermediate"):
		return LevelIntermediate
	case strings.Contains(lower, "advanced"):
		return LevelAdvanced
	default:
		return LevelUnknown
	}
}

// formatStartDate renders a raw start date as "DD Month YYYY". On parse
// failure the raw string is returned unchanged; this is deliberate, not an
// error.
func formatStartDate(raw string) string {
	t, ok := parseStartDate(raw)
	if !ok {
		return raw
	}
	return t.Format("02 January 2006")
}

// parseStartDate tries the accepted raw layouts. The slash layout is tried
// first because DD/MM/YYYY is what the export produces by default.
func parseStartDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func durationText(classCount int) string {
	if classCount == 1 {
		return "1 week"
	}
	return fmt.Sprintf("%d weeks", classCount)
}

// formatTime converts 24-hour "HH:MM" to a 12-hour, hour-precision label:
// "18:00" -> "6pm", "00:00" -> "12am", "12:00" -> "12pm". Minutes are
// dropped. Unparsable input passes through unchanged.
func formatTime(raw string) string {
	hourStr, _, ok := strings.Cut(raw, ":")
	if !ok {
		return raw
	}

	hour, err := strconv.Atoi(strings.TrimSpace(hourStr))
	if err != nil {
		return raw
	}

	switch {
	case hour > 12:
		return fmt.Sprintf("%dpm", hour-12)
	case hour == 12:
		return "12pm"
	case hour == 0:
		return "12am"
	default:
		return fmt.Sprintf("%dam", hour)
	}
}
