package core

// compose.go renders content categories and user-authored events into HTML
// fragments.
//
// Every lookup table the composer consults is a field, not a hidden
// constant, so tests can substitute fixtures. The defaults reproduce the
// production newsletter exactly.

import (
	"context"
	"fmt"
	"strings"
)

// Default booking portal endpoints.
const (
	DefaultAdultBookingURL  = "https://clubspark.lta.org.uk/VamosTennis/Coaching/Adult"
	DefaultJuniorBookingURL = "https://clubspark.lta.org.uk/VamosTennis/Coaching/Junior"

	// DefaultFallbackInstant is used for the date-range parameter when no
	// start date in a skill-level group parses.
	DefaultFallbackInstant = "2025-08-03T00:00:00.000Z"
)

// DefaultSkillLevelIDs maps skill levels to the booking portal's numeric
// identifiers. Improver=4 and Intermediate=2 are not adjacent; the mapping
// is fixed upstream and must not be "corrected".
var DefaultSkillLevelIDs = map[SkillLevel]int{
	LevelBeginner:     1,
	LevelImprover:     4,
	LevelIntermediate: 2,
	LevelAdvanced:     3,
}

// DefaultSkillLevelOrder is the group presentation order for adult courses.
var DefaultSkillLevelOrder = []SkillLevel{
	LevelBeginner, LevelImprover, LevelIntermediate, LevelAdvanced,
}

// DefaultJuniorLegend is the fixed LTA colour/age-group legend rendered at
// the top of the junior block.
var DefaultJuniorLegend = []string{
	"\U0001F535 Blue (4–6) – New to tennis",
	"\U0001F534 Red (6–8) – Rallying, volleying, serving",
	"\U0001F7E0 Orange (8–11) - Hitting from mid-court and learning tactics. Great for beginners and improvers.",
	"\U0001F7E2 Green (11–14) - Playing on full-size courts with standard balls. All levels welcome, with drills matched to ability.",
}

// DefaultBlockTitles are the category headings. Events carry no heading;
// the caller supplies context for that block.
var DefaultBlockTitles = map[Category]string{
	CategoryAdults:  "Adult Courses",
	CategoryJuniors: "Term Time Junior Courses",
}

// DefaultLevelBlurbs are the static per-level sentences used when the
// enrichment port yields nothing.
var DefaultLevelBlurbs = map[SkillLevel]string{
	LevelBeginner:     "Perfect for those new to tennis or returning after a break.",
	LevelImprover:     "For players who are confident rallying and ready to level up.",
	LevelIntermediate: "For regular players wanting to refine technique and strategy.",
	LevelAdvanced:     "For experienced players focusing on advanced techniques and match play.",
}

// DefaultLevelBlurbFallback covers levels without a dedicated sentence.
const DefaultLevelBlurbFallback = "Suitable for all levels."

// DefaultCategoryBlurbs are the static section intros used when the
// enrichment port yields nothing.
var DefaultCategoryBlurbs = map[Category]string{
	CategoryAdults:  "Perfect for players of all levels, our adult courses focus on technique, strategy, and match play.",
	CategoryJuniors: "Fun and engaging courses for young players, using the LTA's colored ball progression system.",
	CategoryEvents:  "Special sessions and events to enhance your tennis experience and meet other players.",
}

// NewsletterContainer is the fixed-width wrapper every document uses.
const NewsletterContainer = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; width: 100%; box-sizing: border-box; text-align: left;">`

// Composer renders category blocks, single events and the final document.
// The zero value is not usable; construct with NewComposer.
type Composer struct {
	port TextPort

	SkillLevelIDs    map[SkillLevel]int
	SkillLevelOrder  []SkillLevel
	JuniorLegend     []string
	BlockTitles      map[Category]string
	LevelBlurbs      map[SkillLevel]string
	CategoryBlurbs   map[Category]string
	AdultBookingURL  string
	JuniorBookingURL string
	FallbackInstant  string
}

// NewComposer builds a Composer with the production lookup tables. The
// port may be nil; every enrichment call site then uses its static
// fallback.
func NewComposer(port TextPort) *Composer {
	return &Composer{
		port:             port,
		SkillLevelIDs:    DefaultSkillLevelIDs,
		SkillLevelOrder:  DefaultSkillLevelOrder,
		JuniorLegend:     DefaultJuniorLegend,
		BlockTitles:      DefaultBlockTitles,
		LevelBlurbs:      DefaultLevelBlurbs,
		CategoryBlurbs:   DefaultCategoryBlurbs,
		AdultBookingURL:  DefaultAdultBookingURL,
		JuniorBookingURL: DefaultJuniorBookingURL,
		FallbackInstant:  DefaultFallbackInstant,
	}
}

// ComposeBlock renders one category into an HTML fragment. An empty input
// set yields the empty string, never a heading-only fragment; callers must
// skip empty fragments.
func (c *Composer) ComposeBlock(ctx context.Context, cat Category, records []CourseRecord) string {
	if len(records) == 0 {
		return ""
	}

	switch cat {
	case CategoryAdults:
		return c.composeAdults(ctx, records)
	case CategoryJuniors:
		return c.composeJuniors(records)
	case CategoryEvents, CategoryDropIns:
		return c.composeEvents(ctx, records)
	default:
		return ""
	}
}

// composeAdults groups by skill level, drops the Unknown group, orders
// groups by the fixed sequence (unrecognised levels last) and keeps input
// row order within each group.
func (c *Composer) composeAdults(ctx context.Context, records []CourseRecord) string {
	groups, order := c.groupByLevel(records)
	if len(order) == 0 {
		// Every row was Unknown; a bare heading would be worse than nothing.
		return ""
	}

	parts := []string{fmt.Sprintf("<h2>%s</h2>", c.BlockTitles[CategoryAdults])}

	for _, level := range order {
		rows := groups[level]

		parts = append(parts, fmt.Sprintf("<h3>%s</h3>", level))

		if blurb := c.levelBlurb(ctx, level); blurb != "" {
			parts = append(parts, fmt.Sprintf("<p>%s</p>", blurb))
		}

		parts = append(parts, "<ul>")
		for _, r := range rows {
			parts = append(parts, formatCourseItem(r))
		}
		parts = append(parts, "</ul>")

		parts = append(parts, c.adultBookingButton(level, rows))
	}

	return strings.Join(parts, "\n")
}

// composeJuniors renders the fixed colour legend followed by the literal
// course names from the export. Duplicating names the reader could derive
// from the legend is intentional; it lets parents match legend colours to
// the program names they will see at booking. No grouping, no limited/full
// annotations.
func (c *Composer) composeJuniors(records []CourseRecord) string {
	parts := []string{fmt.Sprintf("<h2>%s</h2>", c.BlockTitles[CategoryJuniors])}

	parts = append(parts, "<p><strong>Age Groups:</strong></p>", "<ul>")
	for _, entry := range c.JuniorLegend {
		parts = append(parts, fmt.Sprintf("<li>%s</li>", entry))
	}
	parts = append(parts, "</ul>")

	var names []string
	for _, r := range records {
		if r.Name != "" {
			names = append(names, r.Name)
		}
	}
	if len(names) > 0 {
		parts = append(parts, "<p><strong>Available Courses:</strong></p>", "<ul>")
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("<li>%s</li>", name))
		}
		parts = append(parts, "</ul>")
	}

	parts = append(parts, bookingButton(c.JuniorBookingURL, "Book Junior Courses"))

	return strings.Join(parts, "\n")
}

// composeEvents renders event-like rows flat, with an optional category
// intro. No heading is added here; the caller supplies context.
func (c *Composer) composeEvents(ctx context.Context, records []CourseRecord) string {
	var parts []string

	if blurb := c.categoryBlurb(ctx, CategoryEvents); blurb != "" {
		parts = append(parts, fmt.Sprintf("<p>%s</p>", blurb))
	}

	parts = append(parts, "<ul>")
	for _, r := range records {
		parts = append(parts, formatCourseItem(r))
	}
	parts = append(parts, "</ul>")

	return strings.Join(parts, "\n")
}

// ComposeEvent renders a single user-authored event: heading, optional
// image, descriptive paragraph and an optional call-to-action. This path
// never groups or sorts. An event without a description yields the empty
// string; the session layer should already have excluded it.
func (c *Composer) ComposeEvent(ctx context.Context, ev Event) string {
	if ev.Description == "" {
		return ""
	}

	parts := []string{`<div style="margin: 40px 0;">`}
	parts = append(parts, fmt.Sprintf("<h2>%s</h2>", ev.Title))

	if ev.ImageURL != "" {
		parts = append(parts, fmt.Sprintf(
			`<img src="%s" alt="%s" style="width: 100%%; max-width: 600px; margin: 10px auto; display: block;" />`,
			ev.ImageURL, ev.Title))
	}

	// The port rewrites the operator's raw description; the raw text is the
	// fallback, verbatim.
	desc := c.textOr(ev.Description, func() (string, error) {
		return c.port.EventDescription(ctx, ev.Description, ev.Title)
	})
	parts = append(parts, fmt.Sprintf("<p>%s</p>", desc))

	if ev.URL != "" {
		parts = append(parts, bookingButton(ev.URL, "Book Your Spot"))
	}

	parts = append(parts, "</div>")

	return strings.Join(parts, "\n")
}

// groupByLevel buckets records by skill level, dropping Unknown. The
// returned order is the fixed sequence first, then unrecognised levels in
// first-appearance order.
func (c *Composer) groupByLevel(records []CourseRecord) (map[SkillLevel][]CourseRecord, []SkillLevel) {
	groups := make(map[SkillLevel][]CourseRecord)
	var appearance []SkillLevel
	for _, r := range records {
		if r.SkillLevel == LevelUnknown {
			continue
		}
		if _, ok := groups[r.SkillLevel]; !ok {
			appearance = append(appearance, r.SkillLevel)
		}
		groups[r.SkillLevel] = append(groups[r.SkillLevel], r)
	}

	var order []SkillLevel
	for _, level := range c.SkillLevelOrder {
		if _, ok := groups[level]; ok {
			order = append(order, level)
		}
	}
	for _, level := range appearance {
		if !containsLevel(c.SkillLevelOrder, level) {
			order = append(order, level)
		}
	}
	return groups, order
}

// adultBookingButton emits the category-scoped booking link for one skill
// level group. The URL encodes the portal's numeric level id and the
// earliest parseable start date in the group as an ISO instant at midnight
// UTC; levels outside the fixed mapping get the generic booking link.
func (c *Composer) adultBookingButton(level SkillLevel, rows []CourseRecord) string {
	id, ok := c.SkillLevelIDs[level]
	if !ok {
		return bookingButton(c.AdultBookingURL, "Book Your Place")
	}

	url := fmt.Sprintf("%s?skill-level%%5B%%5D=%d&date-range[]=%%22%s%%22",
		c.AdultBookingURL, id, c.earliestInstant(rows))
	return bookingButton(url, fmt.Sprintf("Book %s", level))
}

// earliestInstant finds the earliest parseable start date among the rows
// and formats it for the portal's date-range parameter. If no date parses
// the fixed fallback instant is used instead of failing the render.
func (c *Composer) earliestInstant(rows []CourseRecord) string {
	var earliest *CourseRecord
	var earliestAt int64
	for i := range rows {
		t, ok := parseStartDate(rows[i].StartDate)
		if !ok {
			continue
		}
		if earliest == nil || t.Unix() < earliestAt {
			earliest = &rows[i]
			earliestAt = t.Unix()
		}
	}
	if earliest == nil {
		return c.FallbackInstant
	}
	t, _ := parseStartDate(earliest.StartDate)
	return t.Format("2006-01-02") + "T00:00:00.000Z"
}

// formatCourseItem renders one course as a list item: venue, formatted
// date, 12-hour time, duration and the limited/full suffix.
func formatCourseItem(r CourseRecord) string {
	var suffix string
	switch {
	case r.Full:
		suffix = " <strong>(Full!)</strong>"
	case r.LimitedSpots:
		suffix = " <strong>(Limited spots!)</strong>"
	}

	startDate := r.FormattedStartDate
	if startDate == "" {
		startDate = r.StartDate
	}

	return fmt.Sprintf("<li><strong>%s</strong> - starting %s at %s (%s)%s</li>",
		r.Venue, startDate, formatTime(r.Time), r.DurationText, suffix)
}

// bookingButton renders a centred call-to-action link.
func bookingButton(url, label string) string {
	return fmt.Sprintf("<p style=\"text-align: center;\">\n    <a href=%q class=\"cta-button\">%s</a>\n</p>", url, label)
}

// levelBlurb asks the port for a one-line level intro, falling back to the
// static per-level sentence.
func (c *Composer) levelBlurb(ctx context.Context, level SkillLevel) string {
	fallback, ok := c.LevelBlurbs[level]
	if !ok {
		fallback = DefaultLevelBlurbFallback
	}
	return c.textOr(fallback, func() (string, error) {
		return c.port.LevelBlurb(ctx, string(level))
	})
}

// categoryBlurb asks the port for a section intro, falling back to the
// static category sentence.
func (c *Composer) categoryBlurb(ctx context.Context, cat Category) string {
	return c.textOr(c.CategoryBlurbs[cat], func() (string, error) {
		return c.port.CategoryBlurb(ctx, string(cat))
	})
}

// textOr is the fallback-on-failure combinator every enrichment call site
// uses. A nil port, an error, or an empty response all produce the
// fallback; enrichment failures never abort a render.
func (c *Composer) textOr(fallback string, call func() (string, error)) string {
	if c.port == nil {
		return fallback
	}
	text, err := call()
	if err != nil || strings.TrimSpace(text) == "" {
		return fallback
	}
	return text
}

func containsLevel(levels []SkillLevel, level SkillLevel) bool {
	for _, l := range levels {
		if l == level {
			return true
		}
	}
	return false
}
