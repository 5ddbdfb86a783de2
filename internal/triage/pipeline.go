// Package triage orchestrates the per-ticket decision pipeline:
// classify -> evaluate escalation -> draft or escalate -> report.
package triage

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/triagehq/mailtriage/internal/escalation"
	"github.com/triagehq/mailtriage/internal/metrics"
	"github.com/triagehq/mailtriage/internal/publish"
	"github.com/triagehq/mailtriage/pkg/models"
)

const defaultBatchWorkers = 4

// Classifier is the classification dependency of the pipeline.
type Classifier interface {
	Classify(ctx context.Context, email models.Email) models.Classification
}

// ReplyGenerator is the drafting dependency of the pipeline.
type ReplyGenerator interface {
	Generate(ctx context.Context, email models.Email, cl models.Classification) models.DraftReply
}

// Pipeline processes emails into resolved tickets. Every email reaches a
// terminal ticket state; classification and drafting failures degrade to
// defaults instead of failing the ticket.
type Pipeline struct {
	classifier Classifier
	replies    ReplyGenerator
	rules      escalation.Config
	publisher  publish.Publisher
	workers    int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithPublisher sets the outcome publisher.
func WithPublisher(p publish.Publisher) Option {
	return func(pl *Pipeline) { pl.publisher = p }
}

// WithWorkers bounds batch concurrency.
func WithWorkers(n int) Option {
	return func(pl *Pipeline) {
		if n > 0 {
			pl.workers = n
		}
	}
}

// New creates a Pipeline.
func New(classifier Classifier, replies ReplyGenerator, rules escalation.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		classifier: classifier,
		replies:    replies,
		rules:      rules,
		publisher:  publish.Noop{},
		workers:    defaultBatchWorkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs one email through the full state machine and returns its
// resolved ticket. It always terminates in a terminal state.
func (p *Pipeline) Process(ctx context.Context, email models.Email) *models.Ticket {
	if email.ContactCount < 0 {
		email.ContactCount = 0
	}

	ticket := models.NewTicket(email)

	cl := p.classifier.Classify(ctx, email)
	ticket.SetClassification(cl)

	decision := escalation.Evaluate(p.rules, escalation.Input{
		Classification: cl,
		Body:           email.Body,
		ContactCount:   email.ContactCount,
	})
	ticket.SetDecision(decision)

	if decision.Escalate {
		ticket.ResolveEscalated()
		metrics.TicketsProcessed.WithLabelValues("escalated").Inc()
		metrics.Escalations.WithLabelValues(string(decision.Priority)).Inc()
	} else {
		draft := p.replies.Generate(ctx, email, cl)
		ticket.ResolveDrafted(draft)
		metrics.TicketsProcessed.WithLabelValues("drafted").Inc()
	}

	if err := p.publisher.PublishOutcome(ctx, ticket.Outcome()); err != nil {
		slog.Warn("publishing ticket outcome failed", "ticket_id", ticket.ID, "error", err)
	}

	return ticket
}

// ProcessBatch processes emails on a bounded worker pool and returns the
// resolved tickets with a fresh summary. Tickets are independent: each worker
// writes only its own slot, so the only synchronization point is the join.
// Cancelling ctx stops dispatching new tickets; in-flight ones complete.
func (p *Pipeline) ProcessBatch(ctx context.Context, emails []models.Email) ([]*models.Ticket, models.SummaryReport) {
	slots := make([]*models.Ticket, len(emails))

	g := new(errgroup.Group)
	g.SetLimit(p.workers)

	for i, email := range emails {
		if ctx.Err() != nil {
			break
		}
		i, email := i, email
		g.Go(func() error {
			slots[i] = p.Process(ctx, email)
			return nil
		})
	}
	_ = g.Wait()

	tickets := make([]*models.Ticket, 0, len(slots))
	for _, t := range slots {
		if t != nil {
			tickets = append(tickets, t)
		}
	}

	return tickets, BuildReport(tickets)
}
