package models

import (
	"time"

	"github.com/google/uuid"
)

// Priority ranks an escalation. Critical > High > Medium > Low; None means
// the ticket was not escalated.
type Priority string

const (
	PriorityNone     Priority = "None"
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// EscalationDecision is the outcome of the escalation rule evaluation.
// Reason is empty when Escalate is false.
type EscalationDecision struct {
	Escalate bool     `json:"escalate"`
	Reason   string   `json:"reason,omitempty"`
	Priority Priority `json:"priority"`
}

// DraftReply is a generated or templated reply to an email. Fallback is true
// when the text came from a static template rather than the model.
type DraftReply struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

// TicketStatus tracks a ticket through its lifecycle. Drafted and Escalated
// are terminal.
type TicketStatus string

const (
	TicketCreated    TicketStatus = "Created"
	TicketClassified TicketStatus = "Classified"
	TicketEvaluated  TicketStatus = "Evaluated"
	TicketDrafted    TicketStatus = "Drafted"
	TicketEscalated  TicketStatus = "Escalated"
)

// Ticket is one email's full processing record from intake to resolution.
// A ticket is owned exclusively by the pipeline run that created it and moves
// strictly forward through Created -> Classified -> Evaluated -> terminal;
// the transition methods ignore out-of-order calls.
type Ticket struct {
	ID             uuid.UUID          `json:"ticket_id"`
	Email          Email              `json:"email"`
	Classification Classification     `json:"classification"`
	Decision       EscalationDecision `json:"decision"`
	Reply          *DraftReply        `json:"reply,omitempty"`
	Status         TicketStatus       `json:"status"`
	ProcessedAt    time.Time          `json:"processed_at"`
}

// NewTicket creates an empty ticket for an email.
func NewTicket(email Email) *Ticket {
	return &Ticket{
		ID:     uuid.New(),
		Email:  email,
		Status: TicketCreated,
	}
}

// SetClassification records the classification result.
func (t *Ticket) SetClassification(c Classification) {
	if t.Status != TicketCreated {
		return
	}
	t.Classification = c
	t.Status = TicketClassified
}

// SetDecision records the escalation decision.
func (t *Ticket) SetDecision(d EscalationDecision) {
	if t.Status != TicketClassified {
		return
	}
	t.Decision = d
	t.Status = TicketEvaluated
}

// ResolveDrafted moves the ticket to its Drafted terminal state.
func (t *Ticket) ResolveDrafted(reply DraftReply) {
	if t.Status != TicketEvaluated {
		return
	}
	t.Reply = &reply
	t.Status = TicketDrafted
	t.ProcessedAt = time.Now().UTC()
}

// ResolveEscalated moves the ticket to its Escalated terminal state.
func (t *Ticket) ResolveEscalated() {
	if t.Status != TicketEvaluated {
		return
	}
	t.Status = TicketEscalated
	t.ProcessedAt = time.Now().UTC()
}

// Resolved reports whether the ticket reached a terminal state.
func (t *Ticket) Resolved() bool {
	return t.Status == TicketDrafted || t.Status == TicketEscalated
}

// TicketOutcome is the flat per-ticket contract consumed by downstream
// routing collaborators (send-draft vs. notify-human branching).
type TicketOutcome struct {
	TicketID      uuid.UUID `json:"ticket_id"`
	EmailID       string    `json:"email_id"`
	Subject       string    `json:"subject"`
	Category      string    `json:"category"`
	SubCategory   string    `json:"sub_category"`
	Urgency       Urgency   `json:"urgency"`
	Sentiment     Sentiment `json:"sentiment"`
	Confidence    float64   `json:"confidence"`
	Status        string    `json:"status"`
	Escalate      bool      `json:"escalate"`
	Reason        string    `json:"escalation_reason,omitempty"`
	Priority      Priority  `json:"escalation_priority"`
	DraftReply    *string   `json:"draft_reply"`
	FallbackReply bool      `json:"fallback_reply"`
	ProcessedAt   time.Time `json:"processed_at"`
}

// Outcome flattens the ticket into its outbound contract.
func (t *Ticket) Outcome() TicketOutcome {
	out := TicketOutcome{
		TicketID:    t.ID,
		EmailID:     t.Email.ID,
		Subject:     t.Email.Subject,
		Category:    t.Classification.Category,
		SubCategory: t.Classification.SubCategory,
		Urgency:     t.Classification.Urgency,
		Sentiment:   t.Classification.Sentiment,
		Confidence:  t.Classification.Confidence,
		Status:      string(t.Status),
		Escalate:    t.Decision.Escalate,
		Reason:      t.Decision.Reason,
		Priority:    t.Decision.Priority,
		ProcessedAt: t.ProcessedAt,
	}
	if t.Reply != nil {
		text := t.Reply.Text
		out.DraftReply = &text
		out.FallbackReply = t.Reply.Fallback
	}
	return out
}
