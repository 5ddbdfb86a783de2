// Package metrics registers the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TicketsProcessed counts resolved tickets by terminal outcome
	// ("drafted" or "escalated").
	TicketsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mailtriage_tickets_processed_total",
		Help: "Total tickets resolved, by terminal outcome.",
	}, []string{"outcome"})

	// ClassifierDefaults counts classifications that fell back to the
	// deterministic default because the provider call failed or returned
	// malformed output.
	ClassifierDefaults = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mailtriage_classifier_defaults_total",
		Help: "Total classifications resolved to the default fallback.",
	})

	// FallbackDrafts counts draft replies served from static templates
	// instead of the model. A rising rate signals provider degradation.
	FallbackDrafts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mailtriage_fallback_drafts_total",
		Help: "Total draft replies served from static templates.",
	})

	// Escalations counts escalated tickets by priority.
	Escalations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mailtriage_escalations_total",
		Help: "Total escalated tickets, by priority.",
	}, []string{"priority"})
)
