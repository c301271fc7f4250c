package core

import (
	"context"
	"strings"
	"testing"
)

func TestAssemble(t *testing.T) {
	c := NewComposer(nil)

	fragments := []string{"<h2>Adult Courses</h2>", "", "<p>Open day.</p>"}

	t.Run("no summary, no title", func(t *testing.T) {
		got := c.Assemble(fragments, "July Newsletter", "")

		if !strings.HasPrefix(got, NewsletterContainer) {
			t.Error("document must start with the container")
		}
		if !strings.HasSuffix(got, "</div>") {
			t.Error("document must close the container")
		}
		if strings.Contains(got, "<h1>") {
			t.Error("title must not render without a summary")
		}
		if strings.Contains(got, "\n\n") {
			t.Error("blank fragment was not skipped")
		}
	})

	t.Run("summary carries title", func(t *testing.T) {
		got := c.Assemble(fragments, "July Newsletter", "Lots on this month.")

		if !strings.Contains(got, "<h1>July Newsletter</h1>") {
			t.Error("missing title")
		}
		if !strings.Contains(got, "<div style=\"margin: 40px 0;\">\n  <p>Lots on this month.</p>\n</div>") {
			t.Error("summary block format changed")
		}
		h1 := strings.Index(got, "<h1>")
		body := strings.Index(got, "<h2>Adult Courses</h2>")
		if h1 > body {
			t.Error("title must precede the content fragments")
		}
	})

	t.Run("summary without title", func(t *testing.T) {
		got := c.Assemble(fragments, "", "Lots on this month.")
		if strings.Contains(got, "<h1>") {
			t.Error("no title requested, none should render")
		}
		if !strings.Contains(got, "<p>Lots on this month.</p>") {
			t.Error("summary missing")
		}
	})

	t.Run("no fragments yields bare wrapper", func(t *testing.T) {
		got := c.Assemble(nil, "", "")
		if got != NewsletterContainer+"\n</div>" {
			t.Errorf("empty document = %q", got)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a := c.Assemble(fragments, "T", "S")
		b := c.Assemble(fragments, "T", "S")
		if a != b {
			t.Error("identical inputs must produce identical documents")
		}
	})
}

func TestAssembleAuto(t *testing.T) {
	ctx := context.Background()
	fragments := []string{"<h2>Adult Courses</h2>"}

	t.Run("port fills missing summary", func(t *testing.T) {
		c := NewComposer(&stubPort{responses: map[string]string{
			"summary": "A great month ahead.",
		}})
		got := c.AssembleAuto(ctx, fragments, "July")
		if !strings.Contains(got, "<p>A great month ahead.</p>") {
			t.Error("port summary not used")
		}
		if !strings.Contains(got, "<h1>July</h1>") {
			t.Error("title should render once a summary exists")
		}
	})

	t.Run("empty port response drops title and summary", func(t *testing.T) {
		c := NewComposer(&stubPort{responses: map[string]string{}})
		got := c.AssembleAuto(ctx, fragments, "July")
		if strings.Contains(got, "<h1>") {
			t.Error("title rendered despite no summary")
		}
	})

	t.Run("nil port matches plain assemble", func(t *testing.T) {
		c := NewComposer(nil)
		if got, want := c.AssembleAuto(ctx, fragments, "July"), c.Assemble(fragments, "", ""); got != want {
			t.Errorf("AssembleAuto with nil port = %q, want plain document %q", got, want)
		}
	})
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips tags",
			input: "<h2>Adult Courses</h2>\n<p>Play more.</p>",
			want:  "Adult Courses Play more.",
		},
		{
			name:  "markup inside a word does not split it",
			input: "re<strong>book</strong>ing",
			want:  "rebooking",
		},
		{
			name:  "collapses whitespace",
			input: "a\n\n  b\tc",
			want:  "a b c",
		},
		{
			name:  "plain text unchanged",
			input: "already plain",
			want:  "already plain",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractText(tt.input); got != tt.want {
				t.Errorf("ExtractText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
