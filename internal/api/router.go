// Package api wires the HTTP surface of the triage service.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/triagehq/mailtriage/internal/api/middleware"
	"github.com/triagehq/mailtriage/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	RateLimit *mw.RateLimit

	HealthHandler        http.HandlerFunc
	ClassifyHandler      http.HandlerFunc
	ProcessTicketHandler http.HandlerFunc
	BatchProcessHandler  http.HandlerFunc
	CategoriesHandler    http.HandlerFunc
	MetricsHandler       http.Handler
}

// NewRouter builds the Chi router with the middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.Limit)
		}

		r.Post("/api/v1/classify", orNotImplemented(deps.ClassifyHandler))
		r.Post("/api/v1/tickets", orNotImplemented(deps.ProcessTicketHandler))
		r.Post("/api/v1/tickets/batch", orNotImplemented(deps.BatchProcessHandler))
		r.Get("/api/v1/categories", orNotImplemented(deps.CategoriesHandler))
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
