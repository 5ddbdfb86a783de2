package models

// SummaryReport is a read-only aggregation over one batch of tickets.
// It is recomputed fresh for every batch, never mutated incrementally.
// Invariant: AutoDrafted + Escalated == Total.
type SummaryReport struct {
	Total          int               `json:"total_tickets"`
	AutoDrafted    int               `json:"auto_drafted"`
	Escalated      int               `json:"escalated"`
	EscalationRate float64           `json:"escalation_rate"` // Escalated / Total, 0 when Total is 0
	ByUrgency      map[Urgency]int   `json:"urgency_breakdown"`
	BySentiment    map[Sentiment]int `json:"sentiment_breakdown"`
	ByCategory     map[string]int    `json:"category_breakdown"`
}
