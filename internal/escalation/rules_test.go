package escalation

import (
	"testing"

	"github.com/triagehq/mailtriage/pkg/models"
)

func testConfig() Config {
	return Config{
		LegalKeywords:          []string{"legal", "lawsuit", "lawyer", "attorney", "sue", "court", "dispute"},
		RefundKeywords:         []string{"refund", "money back", "chargeback", "charge back"},
		ConfidenceThreshold:    0.6,
		RepeatContactThreshold: 2,
	}
}

func calmClassification() models.Classification {
	return models.Classification{
		Category:   "General Queries",
		Urgency:    models.UrgencyLow,
		Sentiment:  models.SentimentNeutral,
		Confidence: 0.9,
	}
}

func TestEvaluate_RuleOutcomes(t *testing.T) {
	tests := []struct {
		name           string
		classification models.Classification
		body           string
		contactCount   int
		wantEscalate   bool
		wantPriority   models.Priority
		wantReason     string
	}{
		{
			name:           "legal threat escalates critical",
			classification: calmClassification(),
			body:           "I will sue you for fraud",
			contactCount:   1,
			wantEscalate:   true,
			wantPriority:   models.PriorityCritical,
			wantReason:     "legal threat detected",
		},
		{
			name:           "legal keyword is case insensitive",
			classification: calmClassification(),
			body:           "My LAWYER will be in touch",
			contactCount:   1,
			wantEscalate:   true,
			wantPriority:   models.PriorityCritical,
			wantReason:     "legal threat detected",
		},
		{
			name:           "substring match is intentionally broad",
			classification: calmClassification(),
			body:           "can you legalize this certificate for my embassy",
			contactCount:   1,
			wantEscalate:   true,
			wantPriority:   models.PriorityCritical,
			wantReason:     "legal threat detected",
		},
		{
			name:           "refund demand escalates critical",
			classification: calmClassification(),
			body:           "I want my money back now",
			contactCount:   1,
			wantEscalate:   true,
			wantPriority:   models.PriorityCritical,
			wantReason:     "refund/chargeback demand",
		},
		{
			name: "high urgency negative escalates high",
			classification: models.Classification{
				Urgency:    models.UrgencyHigh,
				Sentiment:  models.SentimentNegative,
				Confidence: 0.95,
			},
			body:         "everything is broken and nobody helps",
			contactCount: 1,
			wantEscalate: true,
			wantPriority: models.PriorityHigh,
			wantReason:   "high urgency with negative sentiment",
		},
		{
			name: "repeated contact negative escalates medium",
			classification: models.Classification{
				Urgency:    models.UrgencyLow,
				Sentiment:  models.SentimentNegative,
				Confidence: 0.95,
			},
			body:         "still waiting on an answer",
			contactCount: 2,
			wantEscalate: true,
			wantPriority: models.PriorityMedium,
			wantReason:   "repeated contact with negative sentiment",
		},
		{
			name: "single contact negative does not fire repeat rule",
			classification: models.Classification{
				Urgency:    models.UrgencyLow,
				Sentiment:  models.SentimentNegative,
				Confidence: 0.95,
			},
			body:         "still waiting on an answer",
			contactCount: 1,
			wantEscalate: false,
			wantPriority: models.PriorityNone,
		},
		{
			name: "low confidence escalates low",
			classification: models.Classification{
				Urgency:    models.UrgencyLow,
				Sentiment:  models.SentimentNeutral,
				Confidence: 0.59,
			},
			body:         "hello there",
			contactCount: 1,
			wantEscalate: true,
			wantPriority: models.PriorityLow,
			wantReason:   "low classifier confidence",
		},
		{
			name: "confidence exactly at threshold does not escalate",
			classification: models.Classification{
				Urgency:    models.UrgencyLow,
				Sentiment:  models.SentimentNeutral,
				Confidence: 0.6,
			},
			body:         "hello there",
			contactCount: 1,
			wantEscalate: false,
			wantPriority: models.PriorityNone,
		},
		{
			name:           "calm email does not escalate",
			classification: calmClassification(),
			body:           "how long is the course",
			contactCount:   1,
			wantEscalate:   false,
			wantPriority:   models.PriorityNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(testConfig(), Input{
				Classification: tt.classification,
				Body:           tt.body,
				ContactCount:   tt.contactCount,
			})
			if got.Escalate != tt.wantEscalate {
				t.Errorf("escalate: expected %v, got %v", tt.wantEscalate, got.Escalate)
			}
			if got.Priority != tt.wantPriority {
				t.Errorf("priority: expected %s, got %s", tt.wantPriority, got.Priority)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("reason: expected %q, got %q", tt.wantReason, got.Reason)
			}
		})
	}
}

func TestEvaluate_PrecedenceOverClassification(t *testing.T) {
	// A legal threat outranks every later rule, even when several would
	// also fire.
	got := Evaluate(testConfig(), Input{
		Classification: models.Classification{
			Urgency:    models.UrgencyHigh,
			Sentiment:  models.SentimentNegative,
			Confidence: 0.1,
		},
		Body:         "refund me or my lawsuit goes ahead",
		ContactCount: 5,
	})
	if !got.Escalate {
		t.Fatal("expected escalation")
	}
	if got.Priority != models.PriorityCritical {
		t.Errorf("expected Critical, got %s", got.Priority)
	}
	if got.Reason != "legal threat detected" {
		t.Errorf("legal rule must win over refund rule, got reason %q", got.Reason)
	}
}

func TestEvaluate_AdvisoryFlagIgnored(t *testing.T) {
	cl := calmClassification()
	cl.EscalateToHuman = true // model opinion only

	got := Evaluate(testConfig(), Input{
		Classification: cl,
		Body:           "just saying thanks",
		ContactCount:   1,
	})
	if got.Escalate {
		t.Error("model escalate flag must not gate escalation")
	}
}

func TestEvaluate_NoReasonWhenNotEscalating(t *testing.T) {
	got := Evaluate(testConfig(), Input{
		Classification: calmClassification(),
		Body:           "all good",
		ContactCount:   0,
	})
	if got.Reason != "" {
		t.Errorf("expected empty reason, got %q", got.Reason)
	}
}
