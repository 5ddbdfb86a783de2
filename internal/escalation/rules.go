// Package escalation decides whether a ticket goes to a human. It is pure
// business policy: deterministic, no external calls, and deliberately
// independent of the model's own escalate_to_human flag, which is advisory
// only.
package escalation

import (
	"strings"

	"github.com/triagehq/mailtriage/pkg/models"
)

// Config holds the tunable inputs of the rule set.
type Config struct {
	LegalKeywords          []string
	RefundKeywords         []string
	ConfidenceThreshold    float64 // strict less-than comparison
	RepeatContactThreshold int
}

// Input is everything a rule may look at.
type Input struct {
	Classification models.Classification
	Body           string // raw body, not sanitized
	ContactCount   int
}

// rule is one named escalation check. match returns the decision and true
// when the rule fires.
type rule struct {
	name  string
	match func(cfg Config, in Input) (models.EscalationDecision, bool)
}

// rules are evaluated in this exact order; the first match wins. The order
// is policy: a legal threat outranks everything regardless of what the
// classifier said.
var rules = []rule{
	{name: "legal-threat", match: legalThreat},
	{name: "refund-demand", match: refundDemand},
	{name: "high-urgency-negative", match: highUrgencyNegative},
	{name: "repeated-contact-negative", match: repeatedContactNegative},
	{name: "low-confidence", match: lowConfidence},
}

// Evaluate runs the rule list against one classified ticket and returns the
// escalation decision. It never errors and never calls out.
func Evaluate(cfg Config, in Input) models.EscalationDecision {
	for _, r := range rules {
		if d, ok := r.match(cfg, in); ok {
			return d
		}
	}
	return models.EscalationDecision{Escalate: false, Priority: models.PriorityNone}
}

func legalThreat(cfg Config, in Input) (models.EscalationDecision, bool) {
	if !containsAny(in.Body, cfg.LegalKeywords) {
		return models.EscalationDecision{}, false
	}
	return models.EscalationDecision{
		Escalate: true,
		Reason:   "legal threat detected",
		Priority: models.PriorityCritical,
	}, true
}

func refundDemand(cfg Config, in Input) (models.EscalationDecision, bool) {
	if !containsAny(in.Body, cfg.RefundKeywords) {
		return models.EscalationDecision{}, false
	}
	return models.EscalationDecision{
		Escalate: true,
		Reason:   "refund/chargeback demand",
		Priority: models.PriorityCritical,
	}, true
}

func highUrgencyNegative(_ Config, in Input) (models.EscalationDecision, bool) {
	if in.Classification.Urgency != models.UrgencyHigh ||
		in.Classification.Sentiment != models.SentimentNegative {
		return models.EscalationDecision{}, false
	}
	return models.EscalationDecision{
		Escalate: true,
		Reason:   "high urgency with negative sentiment",
		Priority: models.PriorityHigh,
	}, true
}

func repeatedContactNegative(cfg Config, in Input) (models.EscalationDecision, bool) {
	if in.ContactCount < cfg.RepeatContactThreshold ||
		in.Classification.Sentiment != models.SentimentNegative {
		return models.EscalationDecision{}, false
	}
	return models.EscalationDecision{
		Escalate: true,
		Reason:   "repeated contact with negative sentiment",
		Priority: models.PriorityMedium,
	}, true
}

func lowConfidence(cfg Config, in Input) (models.EscalationDecision, bool) {
	// Strict less-than: confidence exactly at the threshold does not fire.
	if in.Classification.Confidence >= cfg.ConfidenceThreshold {
		return models.EscalationDecision{}, false
	}
	return models.EscalationDecision{
		Escalate: true,
		Reason:   "low classifier confidence",
		Priority: models.PriorityLow,
	}, true
}

// containsAny reports whether any keyword occurs as a case-insensitive
// substring of body. Substring semantics are intentional and over-broad:
// "legalize" matches "legal". The bias is toward escalation.
func containsAny(body string, keywords []string) bool {
	lower := strings.ToLower(body)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
