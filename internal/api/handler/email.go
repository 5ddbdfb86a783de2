// Package handler contains the HTTP handlers for the triage API.
package handler

import "github.com/triagehq/mailtriage/pkg/models"

// emailInput is the wire shape of an inbound email. A missing subject or
// body is not an error: the ticket proceeds with empty strings so the batch
// always completes.
type emailInput struct {
	EmailID      string `json:"email_id"`
	Subject      string `json:"subject"`
	Body         string `json:"body"`
	Sender       string `json:"sender"`
	ContactCount int    `json:"contact_count"`
}

func (in emailInput) toEmail() models.Email {
	contactCount := in.ContactCount
	if contactCount < 0 {
		contactCount = 0
	}
	return models.Email{
		ID:           in.EmailID,
		Subject:      in.Subject,
		Body:         in.Body,
		Sender:       in.Sender,
		ContactCount: contactCount,
	}
}
