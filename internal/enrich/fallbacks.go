package enrich

// Static envelope copy used when no enrichment service is configured or a
// call fails. Section and level fallbacks live with the composer; these
// three cover the email envelope.
const (
	FallbackSubjectLine       = "🎾 New Courses Available!"
	FallbackPreviewText       = "New courses and fun events this July"
	FallbackNewsletterSummary = "Check out what's coming up this month — from new tennis courses to help you improve your game!"
)
