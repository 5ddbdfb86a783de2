// Package publish emits resolved ticket outcomes to the downstream routing
// collaborator (send-draft vs. notify-human branching happens there, not in
// this service).
package publish

import (
	"context"

	"github.com/triagehq/mailtriage/pkg/models"
)

// Publisher delivers one ticket outcome. Delivery is best-effort: the
// pipeline logs publish failures but never fails a ticket over them.
type Publisher interface {
	PublishOutcome(ctx context.Context, outcome models.TicketOutcome) error
	Close() error
}

// Noop is the Publisher used when no broker is configured.
type Noop struct{}

func (Noop) PublishOutcome(_ context.Context, _ models.TicketOutcome) error { return nil }
func (Noop) Close() error                                                   { return nil }

var _ Publisher = Noop{}
