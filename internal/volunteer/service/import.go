package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	vmodels "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/models"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	dErrors "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain-errors"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/email"
	audit "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/sentinel"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/requestcontext"
)

// Import creates profiles from a bulk-import batch. Every imported profile
// starts with no completed units and a pending background check, whatever the
// source system claimed. Rows fail independently; the batch only fails as a
// whole when it is empty, oversized or the context ends.
func (s *Service) Import(ctx context.Context, records []vmodels.ImportRecord) (*vmodels.ImportResult, error) {
	if len(records) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "import batch is empty")
	}
	if len(records) > maxImportBatch {
		return nil, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("import batch has %d records, the limit is %d", len(records), maxImportBatch))
	}

	ctx, span := s.tracer.Start(ctx, "volunteer.Import", trace.WithAttributes(
		attribute.Int("records", len(records)),
	))
	defer span.End()

	outcomes := make([]vmodels.ImportOutcome, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.importWorkers)
	for i, rec := range records {
		g.Go(func() error {
			outcomes[i] = s.importOne(gctx, i, rec)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "import aborted")
	}

	result := &vmodels.ImportResult{Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Error == "" {
			result.Imported++
			s.metrics.IncrementImported("imported")
		} else {
			result.Failed++
			s.metrics.IncrementImported("failed")
		}
	}
	span.SetAttributes(attribute.Int("imported", result.Imported), attribute.Int("failed", result.Failed))

	s.logger.InfoContext(ctx, "volunteer import finished",
		"imported", result.Imported,
		"failed", result.Failed,
		"actor_id", requestcontext.VolunteerID(ctx).String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return result, nil
}

func (s *Service) importOne(ctx context.Context, index int, rec vmodels.ImportRecord) vmodels.ImportOutcome {
	outcome := vmodels.ImportOutcome{Index: index, Email: rec.Email}
	fail := func(err error) vmodels.ImportOutcome {
		de, ok := dErrors.As(err)
		if !ok {
			de = dErrors.Wrap(err, dErrors.CodeInternal, "failed to import volunteer")
		}
		outcome.Code = de.Code
		outcome.Error = de.Message
		return outcome
	}

	if _, ok := s.machine.Catalog().Role(rec.Role); !ok {
		return fail(dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown role %q", rec.Role)))
	}
	name := rec.Name
	if name == "" {
		name = email.DisplayNameFromEmail(rec.Email)
	}

	v, err := vmodels.NewImported(id.NewVolunteerID(), name, rec.Email, rec.Role, rec.Availability, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return fail(dErrors.New(dErrors.CodeValidation, err.Error()))
		}
		return fail(err)
	}
	outcome.Email = v.Email

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Create(ctx, v); err != nil {
			return err
		}
		return s.emitCompliance(ctx, audit.EventVolunteerImported, v.ID,
			"subject", string(v.Role),
			"decision", string(vmodels.SourceImport),
		)
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return fail(dErrors.New(dErrors.CodeConflict, "a volunteer with this email already exists"))
		}
		s.logger.ErrorContext(ctx, "volunteer import row failed",
			"index", index,
			"error", err,
		)
		return fail(dErrors.Wrap(err, dErrors.CodeInternal, "failed to import volunteer"))
	}

	outcome.VolunteerID = v.ID
	return outcome
}
