// Package service owns volunteer record writes: bulk import and unit
// completion with Core Volunteer promotion. Reads derive clearance through the
// training engine and never write.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/completion"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/eligibility"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/progression"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/metrics"
	vmodels "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/models"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/attrs"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	dErrors "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain-errors"
	audit "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/sentinel"
	txcontext "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/tx"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/requestcontext"
)

const (
	defaultImportWorkers = 8
	maxImportBatch       = 1000
	maxCompletionTries   = 5
)

// Store persists volunteer profiles. UpdateTraining must return
// sentinel.ErrConflict when the stored version differs from expectedVersion.
type Store interface {
	Create(ctx context.Context, v *vmodels.Volunteer) error
	FindByID(ctx context.Context, volunteerID id.VolunteerID) (*vmodels.Volunteer, error)
	UpdateTraining(ctx context.Context, volunteerID id.VolunteerID, expectedVersion int64, record models.Record) (*vmodels.Volunteer, error)
}

// AuditPublisher writes compliance events. A returned error fails the write it
// belongs to.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.ComplianceEvent) error
}

// PromotionPublisher announces committed promotions to other systems.
type PromotionPublisher interface {
	PublishPromotion(ctx context.Context, msg vmodels.PromotionMessage) error
}

// Service orchestrates volunteer record reads and writes.
type Service struct {
	store         Store
	machine       *progression.Machine
	resolver      *completion.Resolver
	tx            txcontext.Runner
	auditor       AuditPublisher
	promotions    PromotionPublisher
	logger        *slog.Logger
	metrics       *metrics.Metrics
	tracer        trace.Tracer
	importWorkers int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = publisher
	}
}

func WithPromotionPublisher(publisher PromotionPublisher) Option {
	return func(s *Service) {
		s.promotions = publisher
	}
}

// WithTxRunner makes each training write and its audit events one unit of work.
func WithTxRunner(runner txcontext.Runner) Option {
	return func(s *Service) {
		s.tx = runner
	}
}

// WithImportWorkers bounds how many import rows are written concurrently.
func WithImportWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.importWorkers = n
		}
	}
}

// New constructs a Service.
func New(store Store, machine *progression.Machine, opts ...Option) *Service {
	s := &Service{
		store:         store,
		machine:       machine,
		resolver:      machine.Resolver(),
		tx:            txcontext.NoopRunner{},
		logger:        slog.Default(),
		tracer:        otel.Tracer("github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/service"),
		importWorkers: defaultImportWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get loads one profile.
func (s *Service) Get(ctx context.Context, volunteerID id.VolunteerID) (*vmodels.Volunteer, error) {
	v, err := s.store.FindByID(ctx, volunteerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "volunteer not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load volunteer")
	}
	s.resolver.ReportUnknown(ctx, v.Training)
	return v, nil
}

// Clearance derives the volunteer's checklist and gates as of the request time.
func (s *Service) Clearance(ctx context.Context, volunteerID id.VolunteerID) (*vmodels.ClearanceView, error) {
	v, err := s.Get(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	checklist := s.machine.Checklist(v.Training, v.Role, requestcontext.Now(ctx))
	return &vmodels.ClearanceView{
		Volunteer: v,
		Checklist: checklist,
		Gates:     eligibility.Evaluate(checklist.Clearance),
	}, nil
}

// Gates derives the volunteer's deployment gates.
func (s *Service) Gates(ctx context.Context, volunteerID id.VolunteerID) (models.Gates, error) {
	v, err := s.Get(ctx, volunteerID)
	if err != nil {
		return models.Gates{}, err
	}
	return eligibility.Evaluate(s.machine.Stage(v.Training, v.Role)), nil
}

// emitCompliance logs an audit line and writes the compliance event. Errors
// from the publisher are returned so the surrounding write rolls back.
func (s *Service) emitCompliance(ctx context.Context, action audit.AuditEvent, volunteerID id.VolunteerID, attributes ...any) error {
	requestID := requestcontext.RequestID(ctx)
	args := append([]any{"volunteer_id", volunteerID.String()}, attributes...)
	if requestID != "" {
		args = append(args, "request_id", requestID)
	}
	args = append(args, "event", string(action), "log_type", "audit")
	s.logger.InfoContext(ctx, string(action), args...)

	if s.auditor == nil {
		return nil
	}
	var actorID string
	if actor := requestcontext.VolunteerID(ctx); !actor.IsNil() && actor != volunteerID {
		actorID = actor.String()
	}
	return s.auditor.Emit(ctx, audit.ComplianceEvent{
		Timestamp:   requestcontext.Now(ctx),
		VolunteerID: volunteerID,
		Subject:     attrs.String(attributes, "subject"),
		Action:      string(action),
		Decision:    attrs.String(attributes, "decision"),
		RequestID:   requestID,
		ActorID:     actorID,
	})
}
