// Package models contains shared data models used across the MailTriage codebase.
package models

// Email is an inbound customer-support email. It is created once from the
// external source and never mutated afterwards.
type Email struct {
	ID           string `json:"email_id"`
	Subject      string `json:"subject"`
	Body         string `json:"body"`
	Sender       string `json:"sender"`
	ContactCount int    `json:"contact_count"` // prior contacts from this customer, >= 0
}
