package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	vmodels "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/models"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	dErrors "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain-errors"
	audit "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/sentinel"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/requestcontext"
)

// CompleteUnit records a finished unit and attempts Core Volunteer promotion.
//
// Rules:
//  1. The unit id must resolve to a current catalog unit. Retired ids are
//     rejected with the id to record instead.
//  2. Recording is idempotent: a unit already on record (verbatim or through
//     an alias) is not appended again.
//  3. Promotion is attempted on every call, so a record that became eligible
//     through a catalog change is promoted by its next completion.
//  4. The write is a version compare-and-swap. On conflict the profile is
//     reloaded and the rules re-run, so exactly one writer records the
//     promotion and publishes its event.
func (s *Service) CompleteUnit(ctx context.Context, volunteerID id.VolunteerID, rawUnitID string) (*vmodels.CompletionResult, error) {
	ctx, span := s.tracer.Start(ctx, "volunteer.CompleteUnit", trace.WithAttributes(
		attribute.String("volunteer_id", volunteerID.String()),
		attribute.String("unit_id", rawUnitID),
	))
	defer span.End()

	unitID, err := s.resolveForCompletion(rawUnitID)
	if err != nil {
		s.metrics.IncrementCompletion("rejected")
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	for attempt := 1; attempt <= maxCompletionTries; attempt++ {
		result, err := s.completeOnce(ctx, volunteerID, unitID)
		if errors.Is(err, sentinel.ErrConflict) {
			s.metrics.IncrementCASRetry()
			s.logger.DebugContext(ctx, "training write conflict, retrying",
				"volunteer_id", volunteerID.String(),
				"attempt", attempt,
			)
			continue
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "complete unit failed")
			return nil, err
		}

		span.SetAttributes(
			attribute.Bool("already_complete", result.AlreadyComplete),
			attribute.Bool("promoted", result.Promotion != nil),
		)
		if result.AlreadyComplete {
			s.metrics.IncrementCompletion("already_complete")
		} else {
			s.metrics.IncrementCompletion("recorded")
		}
		if result.Promotion != nil {
			s.afterPromotion(ctx, result)
		}
		return result, nil
	}

	span.SetStatus(codes.Error, "too many concurrent writers")
	return nil, dErrors.New(dErrors.CodeConflict, "training record is being updated concurrently, retry the request")
}

func (s *Service) resolveForCompletion(raw string) (models.UnitID, error) {
	unitID, err := models.ParseUnitID(raw)
	if err != nil {
		return "", err
	}
	cat := s.machine.Catalog()
	if cat.IsRetired(unitID) {
		current, _ := cat.Resolve(unitID)
		return "", dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("unit %s is retired; record %s instead", unitID, current))
	}
	canonical, ok := cat.Resolve(unitID)
	if !ok {
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown training unit %s", unitID))
	}
	return canonical, nil
}

// completeOnce runs one read-evaluate-write cycle. sentinel.ErrConflict is
// returned unwrapped so the caller can retry.
func (s *Service) completeOnce(ctx context.Context, volunteerID id.VolunteerID, unitID models.UnitID) (*vmodels.CompletionResult, error) {
	v, err := s.Get(ctx, volunteerID)
	if err != nil {
		return nil, err
	}

	already := s.resolver.IsComplete(v.Training, unitID)
	next := v.Training
	if !already {
		next = next.WithCompleted(unitID)
	}
	next, promotion := s.machine.TryPromote(next, requestcontext.Now(ctx))

	result := &vmodels.CompletionResult{
		Volunteer:       v,
		UnitID:          unitID,
		AlreadyComplete: already,
		Promotion:       promotion,
	}
	if already && promotion == nil {
		return result, nil
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		updated, err := s.store.UpdateTraining(ctx, v.ID, v.Version, next)
		if err != nil {
			return err
		}
		result.Volunteer = updated

		if !already {
			if err := s.emitCompliance(ctx, audit.EventTrainingUnitCompleted, v.ID,
				"subject", string(unitID),
				"decision", "recorded",
			); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write compliance audit")
			}
		}
		if promotion != nil {
			if err := s.emitCompliance(ctx, audit.EventCoreVolunteerPromoted, v.ID,
				"subject", "core_volunteer",
				"decision", "promoted",
				"completed_units", joinUnits(promotion.Completed),
			); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write compliance audit")
			}
		}
		return nil
	})
	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, sentinel.ErrConflict):
		return nil, sentinel.ErrConflict
	case errors.Is(err, sentinel.ErrNotFound):
		return nil, dErrors.New(dErrors.CodeNotFound, "volunteer not found")
	case dErrors.HasCode(err, dErrors.CodeInternal), dErrors.HasCode(err, dErrors.CodeTimeout):
		return nil, err
	default:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record training unit")
	}
}

// afterPromotion runs once the promotion is committed. Publishing is best
// effort: the committed record and its audit event are the source of truth.
func (s *Service) afterPromotion(ctx context.Context, result *vmodels.CompletionResult) {
	v := result.Volunteer
	s.metrics.IncrementPromotion()
	s.logger.InfoContext(ctx, "core volunteer promoted",
		"volunteer_id", v.ID.String(),
		"role", string(v.Role),
		"approved_at", result.Promotion.ApprovedAt,
		"request_id", requestcontext.RequestID(ctx),
	)

	if s.promotions == nil {
		return
	}
	msg := vmodels.PromotionMessage{
		VolunteerID:    v.ID,
		Role:           v.Role,
		ApprovedAt:     result.Promotion.ApprovedAt,
		CompletedUnits: result.Promotion.Completed,
		CatalogVersion: s.machine.Catalog().Version(),
		RequestID:      requestcontext.RequestID(ctx),
	}
	if err := s.promotions.PublishPromotion(ctx, msg); err != nil {
		s.metrics.IncrementPublishFailure()
		s.logger.ErrorContext(ctx, "failed to publish promotion event",
			"volunteer_id", v.ID.String(),
			"error", err,
		)
	}
}

func joinUnits(ids []models.UnitID) string {
	parts := make([]string, 0, len(ids))
	for _, u := range ids {
		parts = append(parts, string(u))
	}
	return strings.Join(parts, ",")
}
