package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/triagehq/mailtriage/internal/api/response"
	"github.com/triagehq/mailtriage/pkg/models"
)

// Classifier defines the classification dependency of the classify handler.
type Classifier interface {
	Classify(ctx context.Context, email models.Email) models.Classification
}

type classifyResponse struct {
	EmailID         string           `json:"email_id"`
	Category        string           `json:"category"`
	SubCategory     string           `json:"sub_category"`
	Urgency         models.Urgency   `json:"urgency"`
	Sentiment       models.Sentiment `json:"sentiment"`
	Confidence      float64          `json:"confidence"`
	EscalateToHuman bool             `json:"escalate_to_human"`
}

// NewClassifyHandler returns the handler for POST /api/v1/classify.
func NewClassifyHandler(svc Classifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req emailInput
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		cl := svc.Classify(r.Context(), req.toEmail())

		response.JSON(w, classifyResponse{
			EmailID:         req.EmailID,
			Category:        cl.Category,
			SubCategory:     cl.SubCategory,
			Urgency:         cl.Urgency,
			Sentiment:       cl.Sentiment,
			Confidence:      cl.Confidence,
			EscalateToHuman: cl.EscalateToHuman,
		})
	}
}
