package models

// Urgency is the classifier-assigned urgency level of an email.
type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

// Sentiment is the classifier-assigned tone of an email.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Classification is the structured result of classifying an Email.
//
// EscalateToHuman is what the model itself believes; it is advisory only.
// The escalation evaluator is the sole authority on whether a ticket is
// actually escalated.
type Classification struct {
	Category        string    `json:"category"`
	SubCategory     string    `json:"sub_category"`
	Urgency         Urgency   `json:"urgency"`
	Sentiment       Sentiment `json:"sentiment"`
	Confidence      float64   `json:"confidence"` // always within [0, 1]
	EscalateToHuman bool      `json:"escalate_to_human"`
}

// ValidUrgency reports whether u is one of the known urgency levels.
func ValidUrgency(u Urgency) bool {
	return u == UrgencyLow || u == UrgencyMedium || u == UrgencyHigh
}

// ValidSentiment reports whether s is one of the known sentiment values.
func ValidSentiment(s Sentiment) bool {
	return s == SentimentPositive || s == SentimentNeutral || s == SentimentNegative
}
