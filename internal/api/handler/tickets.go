package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/triagehq/mailtriage/internal/api/response"
	"github.com/triagehq/mailtriage/pkg/models"
)

const maxBatchSize = 500

// TicketProcessor defines the pipeline dependency of the ticket handlers.
type TicketProcessor interface {
	Process(ctx context.Context, email models.Email) *models.Ticket
	ProcessBatch(ctx context.Context, emails []models.Email) ([]*models.Ticket, models.SummaryReport)
}

// NewProcessTicketHandler returns the handler for POST /api/v1/tickets.
func NewProcessTicketHandler(svc TicketProcessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req emailInput
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		ticket := svc.Process(r.Context(), req.toEmail())

		response.Created(w, ticket.Outcome())
	}
}

type batchRequest struct {
	Emails []emailInput `json:"emails"`
}

type batchResponse struct {
	Tickets []models.TicketOutcome `json:"tickets"`
	Summary models.SummaryReport   `json:"summary"`
}

// NewBatchProcessHandler returns the handler for POST /api/v1/tickets/batch.
func NewBatchProcessHandler(svc TicketProcessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req batchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if len(req.Emails) > maxBatchSize {
			response.Error(w, http.StatusBadRequest, "BATCH_TOO_LARGE",
				"Batch exceeds the maximum size", map[string]int{"max": maxBatchSize})
			return
		}

		emails := make([]models.Email, 0, len(req.Emails))
		for _, in := range req.Emails {
			emails = append(emails, in.toEmail())
		}

		tickets, summary := svc.ProcessBatch(r.Context(), emails)

		outcomes := make([]models.TicketOutcome, 0, len(tickets))
		for _, t := range tickets {
			outcomes = append(outcomes, t.Outcome())
		}

		response.JSON(w, batchResponse{Tickets: outcomes, Summary: summary})
	}
}
