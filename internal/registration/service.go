package registration

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/registration/metrics"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/registration/ports"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	audit "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/requestcontext"
)

// Request asks whether a stored volunteer may register for Target.
type Request struct {
	VolunteerID id.VolunteerID
	Target      *Target
}

// Service loads a volunteer profile and runs it through the Validator.
type Service struct {
	validator *Validator
	profiles  ports.ProfilePort
	tracker   ports.OpsTracker
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
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

// WithOpsTracker records a registration_validated event per verdict.
func WithOpsTracker(tracker ports.OpsTracker) Option {
	return func(s *Service) {
		s.tracker = tracker
	}
}

func NewService(validator *Validator, profiles ports.ProfilePort, opts ...Option) *Service {
	s := &Service{
		validator: validator,
		profiles:  profiles,
		logger:    slog.Default(),
		tracer:    otel.Tracer("github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/registration"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate returns the registration verdict for req. Recommended-training
// deadlines are checked against the request time. A missing profile is a
// not_found error; every other problem with the request is reported inside
// the verdict.
func (s *Service) Validate(ctx context.Context, req Request) (Verdict, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "registration.validate",
		trace.WithAttributes(attribute.String("volunteer.id", req.VolunteerID.String())))
	defer span.End()

	profile, err := s.profiles.FindProfile(ctx, req.VolunteerID)
	if err != nil {
		span.RecordError(err)
		return Verdict{}, err
	}

	s.validator.resolver.ReportUnknown(ctx, profile.Record)
	verdict := s.validator.Validate(inputFromProfile(profile, req.Target, requestcontext.Now(ctx)))

	codes := make([]string, 0, len(verdict.BlockingIssues))
	for _, issue := range verdict.BlockingIssues {
		codes = append(codes, string(issue.Code))
	}
	s.metrics.ObserveVerdict(verdict.CanRegister, codes, time.Since(start))
	span.SetAttributes(
		attribute.Bool("registration.allowed", verdict.CanRegister),
		attribute.Int("registration.blocking_issues", len(verdict.BlockingIssues)),
	)

	s.track(ctx, req, verdict, codes)
	return verdict, nil
}

func (s *Service) track(ctx context.Context, req Request, verdict Verdict, codes []string) {
	decision := "denied"
	if verdict.CanRegister {
		decision = "allowed"
	}
	subject := ""
	if req.Target != nil {
		subject = string(req.Target.EventType)
	}
	reason := ""
	if len(codes) > 0 {
		reason = codes[0]
	}

	s.logger.InfoContext(ctx, "registration validated",
		"volunteer_id", req.VolunteerID.String(),
		"event_type", subject,
		"decision", decision,
		"blocking_issues", len(verdict.BlockingIssues),
		"warnings", len(verdict.Warnings),
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.tracker == nil {
		return
	}
	s.tracker.Track(ctx, audit.OpsEvent{
		Timestamp:   requestcontext.Now(ctx),
		VolunteerID: req.VolunteerID,
		Subject:     subject,
		Action:      string(audit.EventRegistrationValidated),
		Decision:    decision,
		Reason:      reason,
		RequestID:   requestcontext.RequestID(ctx),
	})
}

func inputFromProfile(p *ports.Profile, target *Target, asOf time.Time) Input {
	return Input{
		Record:     p.Record,
		Role:       p.Role,
		Compliance: Compliance{BackgroundCheck: BackgroundCheckStatus(p.BackgroundCheck)},
		Availability: &Availability{
			Weekdays:  p.Weekdays,
			Blackouts: p.Blackouts,
		},
		Target: target,
		AsOf:   asOf,
	}
}
