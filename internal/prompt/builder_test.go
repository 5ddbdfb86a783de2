package prompt

import (
	"strings"
	"testing"

	"github.com/triagehq/mailtriage/internal/config"
	"github.com/triagehq/mailtriage/pkg/models"
)

func TestBuildClassifyPrompt(t *testing.T) {
	b := Builder{}
	got := b.BuildClassifyPrompt(ClassifyParams{
		Subject:    "Can't watch videos",
		Body:       "The player keeps buffering on chapter 3.",
		Categories: config.DefaultPolicy().Categories,
	})

	for _, want := range []string{
		"Technical Issues",
		"Video Playback",
		"Payment & Billing",
		`"escalate_to_human": true|false`,
		`"confidence": <number between 0.0 and 1.0>`,
		"Subject: Can't watch videos",
		"The player keeps buffering on chapter 3.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("classify prompt missing %q", want)
		}
	}
}

func TestClassifySystemForbidsFences(t *testing.T) {
	sys := Builder{}.ClassifySystem()
	if !strings.Contains(sys, "single JSON object") {
		t.Error("system instructions must demand a single JSON object")
	}
	if !strings.Contains(sys, "classifier") {
		t.Error("system instructions must identify the classifier role")
	}
}

func TestBuildReplyPrompt(t *testing.T) {
	b := Builder{}
	got := b.BuildReplyPrompt(ReplyParams{
		Email: models.Email{
			Subject: "Invoice request",
			Body:    "I need an invoice for my last purchase.",
		},
		Classification: models.Classification{
			Category:    "Payment & Billing",
			SubCategory: "Invoice",
			Sentiment:   models.SentimentNeutral,
		},
	})

	for _, want := range []string{
		"Category: Payment & Billing",
		"Sub-category: Invoice",
		"Customer sentiment: Neutral",
		"Invoice request",
		"I need an invoice for my last purchase.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("reply prompt missing %q", want)
		}
	}
}

func TestReplySystemCarriesGuardrails(t *testing.T) {
	sys := Builder{}.ReplySystem()
	for _, want := range []string{"Never promise a refund", "order ID"} {
		if !strings.Contains(sys, want) {
			t.Errorf("reply system instructions missing %q", want)
		}
	}
}
