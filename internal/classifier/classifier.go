// Package classifier turns a raw email into a structured Classification by
// calling the injected chat provider. It never returns an error: any
// provider failure, timeout, or malformed output resolves to a deterministic
// default classification so the pipeline is never blocked.
package classifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/triagehq/mailtriage/internal/cache"
	"github.com/triagehq/mailtriage/internal/config"
	"github.com/triagehq/mailtriage/internal/metrics"
	"github.com/triagehq/mailtriage/internal/prompt"
	"github.com/triagehq/mailtriage/pkg/models"
)

const (
	defaultTimeout = 5 * time.Second
	cacheTTL       = time.Hour
	maxBodyBytes   = 4000
)

// Classifier classifies support emails via a chat provider.
type Classifier struct {
	provider models.ChatProvider
	policy   *config.Policy
	cache    cache.Cache // nil disables caching
	timeout  time.Duration
	prompts  prompt.Builder
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithCache enables classification caching.
func WithCache(c cache.Cache) Option {
	return func(cl *Classifier) { cl.cache = c }
}

// WithTimeout bounds each provider call.
func WithTimeout(d time.Duration) Option {
	return func(cl *Classifier) { cl.timeout = d }
}

// New creates a Classifier.
func New(provider models.ChatProvider, policy *config.Policy, opts ...Option) *Classifier {
	c := &Classifier{
		provider: provider,
		policy:   policy,
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultClassification is the deterministic fallback used whenever the
// provider fails or returns something unusable. Confidence 0.0 ensures the
// low-confidence escalation rule fires downstream; a failed parse must never
// masquerade as a confident decision.
func DefaultClassification() models.Classification {
	return models.Classification{
		Category:        config.DefaultCategory,
		SubCategory:     "Unknown",
		Urgency:         models.UrgencyMedium,
		Sentiment:       models.SentimentNeutral,
		Confidence:      0.0,
		EscalateToHuman: true,
	}
}

// Classify classifies one email. The error path is local recovery: the
// caller always receives a valid Classification.
func (c *Classifier) Classify(ctx context.Context, email models.Email) models.Classification {
	subject := Sanitize(email.Subject)
	body := Sanitize(email.Body)

	key := cache.ClassificationKey(subject, body)
	if cached, ok := c.fromCache(ctx, key); ok {
		return cached
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.provider.Complete(callCtx, models.CompletionRequest{
		System:      c.prompts.ClassifySystem(),
		Prompt:      c.prompts.BuildClassifyPrompt(prompt.ClassifyParams{Subject: subject, Body: body, Categories: c.policy.Categories}),
		Temperature: c.policy.Classify.Temperature,
		MaxTokens:   c.policy.Classify.MaxTokens,
	})
	if err != nil {
		slog.Warn("classification call failed, using default", "email_id", email.ID, "error", err)
		metrics.ClassifierDefaults.Inc()
		return DefaultClassification()
	}

	cl, ok := c.parse(raw)
	if !ok {
		slog.Warn("classification output unusable, using default", "email_id", email.ID)
		metrics.ClassifierDefaults.Inc()
		return DefaultClassification()
	}

	c.toCache(ctx, key, cl)
	return cl
}

// rawClassification mirrors the JSON schema the model is instructed to emit.
// Pointers distinguish a missing required field from a zero value.
type rawClassification struct {
	Category        *string  `json:"category"`
	SubCategory     string   `json:"sub_category"`
	Urgency         string   `json:"urgency"`
	Sentiment       string   `json:"sentiment"`
	Confidence      *float64 `json:"confidence"`
	EscalateToHuman bool     `json:"escalate_to_human"`
}

// parse extracts and validates the classification JSON from raw model output.
// Unknown enum values are coerced to defaults rather than rejected, to keep
// the pipeline non-blocking.
func (c *Classifier) parse(raw string) (models.Classification, bool) {
	doc, ok := extractJSON(raw)
	if !ok {
		return models.Classification{}, false
	}

	var rc rawClassification
	if err := json.Unmarshal([]byte(doc), &rc); err != nil {
		return models.Classification{}, false
	}
	if rc.Category == nil || rc.Confidence == nil {
		return models.Classification{}, false
	}

	cl := models.Classification{
		Category:        strings.TrimSpace(*rc.Category),
		SubCategory:     strings.TrimSpace(rc.SubCategory),
		Urgency:         models.Urgency(rc.Urgency),
		Sentiment:       models.Sentiment(rc.Sentiment),
		Confidence:      *rc.Confidence,
		EscalateToHuman: rc.EscalateToHuman,
	}

	if !c.policy.KnownCategory(cl.Category) {
		cl.Category = config.DefaultCategory
	}
	if cl.SubCategory == "" {
		cl.SubCategory = "Unknown"
	}
	if !models.ValidUrgency(cl.Urgency) {
		cl.Urgency = models.UrgencyMedium
	}
	if !models.ValidSentiment(cl.Sentiment) {
		cl.Sentiment = models.SentimentNeutral
	}
	if cl.Confidence < 0 {
		cl.Confidence = 0
	}
	if cl.Confidence > 1 {
		cl.Confidence = 1
	}

	return cl, true
}

func (c *Classifier) fromCache(ctx context.Context, key string) (models.Classification, bool) {
	if c.cache == nil {
		return models.Classification{}, false
	}
	data, found, err := c.cache.Get(ctx, key)
	if err != nil || !found {
		return models.Classification{}, false
	}
	var cl models.Classification
	if err := json.Unmarshal(data, &cl); err != nil {
		return models.Classification{}, false
	}
	return cl, true
}

func (c *Classifier) toCache(ctx context.Context, key string, cl models.Classification) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(cl)
	if err != nil {
		return
	}
	_ = c.cache.Set(ctx, key, data, cacheTTL)
}

// extractJSON returns the outermost JSON object embedded in s. Models wrap
// output in fences or prose often enough that a plain Unmarshal is not
// reliable.
func extractJSON(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}
