// Package portal generates deep links into the ClubSpark admin reporting
// area, pre-filtered to the window the newsletter covers. The operator
// follows these links to download the coaching export that feeds the
// upload flow.
package portal

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultBaseURL is the club's coaching reports area.
const DefaultBaseURL = "https://clubspark.lta.org.uk/VamosTennis/Admin/Coaching/CoachingReports"

// reportWindow is how far ahead the pre-filtered reports look.
const reportWindow = 6 * 7 * 24 * time.Hour

// Generator builds report URLs. The clock is injectable for tests; the
// zero value is not usable, construct with NewGenerator.
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator builds a Generator against the production reports area.
func NewGenerator() *Generator {
	return &Generator{baseURL: DefaultBaseURL, now: time.Now}
}

// CoursesURL links to the courses report filtered to the next six weeks
// of upcoming programs.
func (g *Generator) CoursesURL() string {
	return g.reportURL("Coaching_Courses")
}

// SessionsURL links to the sessions report filtered to the next six weeks
// of upcoming programs.
func (g *Generator) SessionsURL() string {
	return g.reportURL("Coaching_Sessions")
}

// reportURL assembles one filtered report link. The date filters use the
// portal's YYYY/MM/DD convention with the slashes percent-encoded; the
// empty filters are required by the portal and must stay in the query.
func (g *Generator) reportURL(report string) string {
	start := g.now()
	end := start.Add(reportWindow)

	startEnc := url.QueryEscape(start.Format("2006/01/02"))
	endEnc := url.QueryEscape(end.Format("2006/01/02"))

	return fmt.Sprintf(
		"%s/%s?startdateforfiltering=%s&enddateforfiltering=%s&category=&status=Upcoming&leadcoachforfiltering=&venue=",
		g.baseURL, report, startEnc, endEnc)
}
