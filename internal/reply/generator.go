// Package reply drafts replies for tickets that are not escalated. When the
// chat provider fails or returns nothing usable, the draft falls back to the
// static per-category template and is flagged so reporting can surface the
// degradation.
package reply

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/triagehq/mailtriage/internal/config"
	"github.com/triagehq/mailtriage/internal/metrics"
	"github.com/triagehq/mailtriage/internal/prompt"
	"github.com/triagehq/mailtriage/pkg/models"
)

const defaultTimeout = 5 * time.Second

// Generator drafts replies via a chat provider.
type Generator struct {
	provider models.ChatProvider
	policy   *config.Policy
	timeout  time.Duration
	prompts  prompt.Builder
}

// Option configures a Generator.
type Option func(*Generator)

// WithTimeout bounds each provider call.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) { g.timeout = d }
}

// New creates a Generator.
func New(provider models.ChatProvider, policy *config.Policy, opts ...Option) *Generator {
	g := &Generator{
		provider: provider,
		policy:   policy,
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate drafts a reply for one email. It never returns an error: any
// provider failure yields the category template with Fallback set.
func (g *Generator) Generate(ctx context.Context, email models.Email, cl models.Classification) models.DraftReply {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.provider.Complete(callCtx, models.CompletionRequest{
		System:      g.prompts.ReplySystem(),
		Prompt:      g.prompts.BuildReplyPrompt(prompt.ReplyParams{Email: email, Classification: cl}),
		Temperature: g.policy.Reply.Temperature,
		MaxTokens:   g.policy.Reply.MaxTokens,
	})
	if err != nil {
		slog.Warn("reply generation failed, using template", "email_id", email.ID, "error", err)
		return g.fallback(cl)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		slog.Warn("reply generation returned empty output, using template", "email_id", email.ID)
		return g.fallback(cl)
	}

	return models.DraftReply{Text: text, Fallback: false}
}

func (g *Generator) fallback(cl models.Classification) models.DraftReply {
	metrics.FallbackDrafts.Inc()
	return models.DraftReply{
		Text:     g.policy.Template(cl.Category, string(cl.Sentiment)),
		Fallback: true,
	}
}
