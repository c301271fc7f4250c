package core

// assemble.go concatenates ordered fragments into the final newsletter
// document.

import (
	"context"
	"fmt"
	"strings"
)

// Assemble wraps the fragments in the fixed-width container, optionally
// prepending a title and summary. Blank fragments are skipped.
//
// The title is only rendered when a summary is present; a heading with
// nothing under it reads broken in email clients, so title and summary are
// coupled. Given identical inputs the output is byte-identical on every
// call.
func (c *Composer) Assemble(fragments []string, title, summary string) string {
	if summary == "" {
		title = ""
	}

	parts := []string{NewsletterContainer}

	if summary != "" {
		if title != "" {
			parts = append(parts, fmt.Sprintf("<h1>%s</h1>", title))
		}
		parts = append(parts, fmt.Sprintf("<div style=\"margin: 40px 0;\">\n  <p>%s</p>\n</div>", summary))
	}

	for _, f := range fragments {
		if strings.TrimSpace(f) != "" {
			parts = append(parts, f)
		}
	}

	parts = append(parts, "</div>")
	return strings.Join(parts, "\n")
}

// AssembleAuto is Assemble with a port-generated summary when the caller
// has none. A failed or empty port response degrades to the plain
// document; this path never errors. The determinism contract above does
// not extend here since the port is non-deterministic.
func (c *Composer) AssembleAuto(ctx context.Context, fragments []string, title string) string {
	var summary string
	if c.port != nil {
		base := c.Assemble(fragments, "", "")
		if text, err := c.port.NewsletterSummary(ctx, ExtractText(base)); err == nil {
			summary = strings.TrimSpace(text)
		}
	}
	return c.Assemble(fragments, title, summary)
}
