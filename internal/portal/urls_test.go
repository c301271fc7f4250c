package portal

import (
	"strings"
	"testing"
	"time"
)

func fixedGenerator() *Generator {
	g := NewGenerator()
	g.now = func() time.Time {
		return time.Date(2025, time.August, 4, 10, 30, 0, 0, time.UTC)
	}
	return g
}

func TestCoursesURL(t *testing.T) {
	got := fixedGenerator().CoursesURL()

	want := DefaultBaseURL + "/Coaching_Courses" +
		"?startdateforfiltering=2025%2F08%2F04" +
		"&enddateforfiltering=2025%2F09%2F15" +
		"&category=&status=Upcoming&leadcoachforfiltering=&venue="

	if got != want {
		t.Errorf("CoursesURL()\n got  %s\n want %s", got, want)
	}
}

func TestSessionsURL(t *testing.T) {
	got := fixedGenerator().SessionsURL()

	if !strings.Contains(got, "/Coaching_Sessions?") {
		t.Errorf("SessionsURL() targets wrong report: %s", got)
	}
	if !strings.Contains(got, "status=Upcoming") {
		t.Errorf("SessionsURL() missing status filter: %s", got)
	}
	if !strings.Contains(got, "startdateforfiltering=2025%2F08%2F04") {
		t.Errorf("SessionsURL() wrong start date: %s", got)
	}
}
