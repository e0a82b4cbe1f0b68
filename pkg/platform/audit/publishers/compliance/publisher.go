// Package compliance provides a fail-closed audit publisher for events that
// change a volunteer's training standing.
//
// Emit is synchronous: the caller blocks until the store write succeeds, and a
// failed write is returned so the calling operation fails with it.
//
// Use for: volunteer_imported, training_unit_completed, core_volunteer_promoted
package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	audit "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit"
)

// Publisher emits compliance events with fail-closed semantics.
type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// New creates a compliance publisher.
func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit writes event to the audit store before returning. A non-nil error
// means the standing change was not recorded and the caller must fail.
func (p *Publisher) Emit(ctx context.Context, event audit.ComplianceEvent) error {
	if err := validate(event); err != nil {
		return err
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now()
	}

	start := time.Now()
	err := p.store.Append(ctx, event.ToEvent())
	if err != nil {
		p.metrics.IncPersistFailures()
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "compliance audit write failed",
				"action", event.Action,
				"subject", event.Subject,
				"volunteer_id", event.VolunteerID.String(),
				"request_id", event.RequestID,
				"error", err,
			)
		}
		return fmt.Errorf("persist %s audit event: %w", event.Action, err)
	}

	p.metrics.ObservePersistDuration(time.Since(start))
	p.metrics.IncEventsEmitted(event.Action)
	return nil
}

func validate(event audit.ComplianceEvent) error {
	switch {
	case event.VolunteerID.IsNil():
		return fmt.Errorf("compliance event requires VolunteerID")
	case event.Action == "":
		return fmt.Errorf("compliance event requires Action")
	case audit.AuditEvent(event.Action).Category() != audit.CategoryCompliance:
		return fmt.Errorf("%s is not a compliance action", event.Action)
	}
	return nil
}
