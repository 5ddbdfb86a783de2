package handler

import (
	"net/http"

	"github.com/triagehq/mailtriage/internal/api/response"
	"github.com/triagehq/mailtriage/internal/config"
)

// NewCategoriesHandler returns the handler for GET /api/v1/categories,
// exposing the fixed support taxonomy to callers.
func NewCategoriesHandler(policy *config.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, map[string][]config.Category{
			"categories": policy.Categories,
		})
	}
}
