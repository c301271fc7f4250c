// Package enrich provides the Gemini-backed text enrichment service used to
// polish newsletter copy. Every method degrades to an empty response on
// failure; callers substitute their static fallbacks and never see the
// underlying error.
package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// DefaultModel balances quality against latency for short marketing copy.
	DefaultModel = "gemini-1.5-flash"

	// DefaultTimeout bounds a single generation call. The newsletter flow is
	// interactive; a slow model call should fall back, not block the user.
	DefaultTimeout = 30 * time.Second

	defaultMaxTokens = 150
	temperature      = 0.7
)

// Gemini implements the text enrichment methods against the Gemini API.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	log     *slog.Logger
}

// NewGemini builds an enrichment service. An empty API key is an error
// here; callers that want to run without enrichment should not construct
// one and pass nil downstream instead.
func NewGemini(ctx context.Context, apiKey, model string, log *slog.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key not set")
	}
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = slog.Default()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Gemini{
		client:  client,
		model:   model,
		timeout: DefaultTimeout,
		log:     log,
	}, nil
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// generate runs one prompt and returns the cleaned response. All failure
// modes collapse to ("", err); the caller's fallback logic handles both the
// error and the empty-response case identically.
func (g *Gemini) generate(ctx context.Context, prompt string, maxTokens int32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	model := g.client.GenerativeModel(g.model)
	model.SetMaxOutputTokens(maxTokens)
	model.SetTemperature(temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		g.log.Warn("enrichment call failed", "model", g.model, "error", err)
		return "", fmt.Errorf("gemini: generate: %w", err)
	}

	return CleanResponse(firstText(resp)), nil
}

// firstText pulls the text of the first candidate part. Safety-blocked
// responses come back with a candidate whose Content is nil, so every level
// is checked before dereferencing.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return ""
	}
	if part, ok := content.Parts[0].(genai.Text); ok {
		return string(part)
	}
	return ""
}

// LevelBlurb writes a one-line skill level introduction.
func (g *Gemini) LevelBlurb(ctx context.Context, level string) (string, error) {
	return g.generate(ctx, fmt.Sprintf(promptLevelBlurb, level), 50)
}

// CategoryBlurb writes a short section intro for a content category.
func (g *Gemini) CategoryBlurb(ctx context.Context, category string) (string, error) {
	return g.generate(ctx, fmt.Sprintf(promptCategoryBlurb, category), defaultMaxTokens)
}

// EventDescription rewrites the operator's raw event text.
func (g *Gemini) EventDescription(ctx context.Context, description, title string) (string, error) {
	return g.generate(ctx, fmt.Sprintf(promptEventDescription, description, title), defaultMaxTokens)
}

// SubjectLine writes an email subject from the newsletter's plain text.
func (g *Gemini) SubjectLine(ctx context.Context, documentText string) (string, error) {
	return g.generate(ctx, fmt.Sprintf(promptSubjectLine, documentText), 100)
}

// PreviewText writes the inbox preview snippet from the newsletter's
// plain text.
func (g *Gemini) PreviewText(ctx context.Context, documentText string) (string, error) {
	return g.generate(ctx, fmt.Sprintf(promptPreviewText, documentText), 100)
}

// NewsletterSummary writes the opening paragraph from the newsletter's
// plain text.
func (g *Gemini) NewsletterSummary(ctx context.Context, documentText string) (string, error) {
	return g.generate(ctx, fmt.Sprintf(promptNewsletterSummary, documentText), defaultMaxTokens)
}
