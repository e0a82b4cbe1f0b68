package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/catalog"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/completion"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/progression"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/service/mocks"
	vmodels "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/models"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/store"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	dErrors "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain-errors"
	audit "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit/publishers/compliance"
	auditmemory "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit/store/memory"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/sentinel"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,AuditPublisher,PromotionPublisher
type ServiceSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	cat        *catalog.Catalog
	machine    *progression.Machine
	volunteers *store.InMemory
	auditStore *auditmemory.InMemoryStore
	promotions *mocks.MockPromotionPublisher
	service    *Service
	now        time.Time
	logger     *slog.Logger
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	cat, err := catalog.LoadDefault()
	s.Require().NoError(err)
	s.cat = cat
	s.machine = progression.New(completion.New(cat))
	s.ctrl = gomock.NewController(s.T())
	s.volunteers = store.NewInMemory()
	s.auditStore = auditmemory.NewInMemoryStore()
	s.promotions = mocks.NewMockPromotionPublisher(s.ctrl)
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = New(s.volunteers, s.machine,
		WithLogger(s.logger),
		WithAuditPublisher(compliance.New(s.auditStore)),
		WithPromotionPublisher(s.promotions),
		WithImportWorkers(4),
	)
	s.now = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) ctx() context.Context {
	ctx := requestcontext.WithTime(context.Background(), s.now)
	return requestcontext.WithRequestID(ctx, "req-1")
}

// seed stores a core_volunteer profile with the given units on record.
func (s *ServiceSuite) seed(units ...models.UnitID) *vmodels.Volunteer {
	v, err := vmodels.NewImported(id.NewVolunteerID(), "Ana Ruiz", id.NewVolunteerID().String()+"@example.org",
		"core_volunteer", vmodels.Availability{}, s.now.Add(-time.Hour))
	s.Require().NoError(err)
	v.Training.Completed = append([]models.UnitID{}, units...)
	s.Require().NoError(s.volunteers.Create(context.Background(), v))
	return v
}

// almostCore lists every tier 1 and tier 2 unit except the last one.
func (s *ServiceSuite) almostCore() ([]models.UnitID, models.UnitID) {
	all := append(s.cat.TierUnits(models.TierOrientation), s.cat.TierUnits(models.TierBaseline)...)
	return all[:len(all)-1], all[len(all)-1]
}

func (s *ServiceSuite) actions(volunteerID id.VolunteerID) []string {
	events, err := s.auditStore.ListByVolunteer(context.Background(), volunteerID)
	s.Require().NoError(err)
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Action)
	}
	return out
}

// =============================================================================
// CompleteUnit
// =============================================================================

func (s *ServiceSuite) TestCompleteUnit() {
	s.Run("records a new unit", func() {
		v := s.seed()
		result, err := s.service.CompleteUnit(s.ctx(), v.ID, "hmc_orientation")
		s.Require().NoError(err)
		s.False(result.AlreadyComplete)
		s.Nil(result.Promotion)
		s.Equal(models.UnitID("hmc_orientation"), result.UnitID)
		s.Equal([]models.UnitID{"hmc_orientation"}, result.Volunteer.Training.Completed)
		s.Equal(v.Version+1, result.Volunteer.Version)
		s.Equal([]string{string(audit.EventTrainingUnitCompleted)}, s.actions(v.ID))
	})

	s.Run("recording twice is idempotent", func() {
		v := s.seed("hmc_orientation")
		result, err := s.service.CompleteUnit(s.ctx(), v.ID, " hmc_orientation ")
		s.Require().NoError(err)
		s.True(result.AlreadyComplete)
		s.Equal(v.Version, result.Volunteer.Version)
		s.Empty(s.actions(v.ID))
	})

	s.Run("a unit satisfied through an alias is already complete", func() {
		v := s.seed("get_to_know_us")
		result, err := s.service.CompleteUnit(s.ctx(), v.ID, "hmc_orientation")
		s.Require().NoError(err)
		s.True(result.AlreadyComplete)
	})

	s.Run("retired id names its replacement", func() {
		v := s.seed()
		_, err := s.service.CompleteUnit(s.ctx(), v.ID, "get_to_know_us")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Contains(err.Error(), "record hmc_orientation instead")
	})

	s.Run("unknown unit", func() {
		v := s.seed()
		_, err := s.service.CompleteUnit(s.ctx(), v.ID, "underwater_basket_weaving")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown volunteer", func() {
		_, err := s.service.CompleteUnit(s.ctx(), id.NewVolunteerID(), "hmc_orientation")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestCompleteUnitPromotes() {
	s.Run("final baseline unit promotes and publishes", func() {
		units, last := s.almostCore()
		v := s.seed(units...)

		s.promotions.EXPECT().PublishPromotion(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, msg vmodels.PromotionMessage) error {
				s.Equal(v.ID, msg.VolunteerID)
				s.Equal(models.Role("core_volunteer"), msg.Role)
				s.True(s.now.Equal(msg.ApprovedAt))
				s.Equal(s.cat.Version(), msg.CatalogVersion)
				s.Equal("req-1", msg.RequestID)
				s.Len(msg.CompletedUnits, len(units)+1)
				return nil
			})

		result, err := s.service.CompleteUnit(s.ctx(), v.ID, string(last))
		s.Require().NoError(err)
		s.Require().NotNil(result.Promotion)
		s.True(result.Volunteer.Training.CoreVolunteer)
		s.Require().NotNil(result.Volunteer.Training.CoreApprovedAt)
		s.True(s.now.Equal(*result.Volunteer.Training.CoreApprovedAt))
		s.Equal([]string{
			string(audit.EventCoreVolunteerPromoted),
			string(audit.EventTrainingUnitCompleted),
		}, s.actions(v.ID), "newest first")

		s.Run("later completions never promote again", func() {
			again, err := s.service.CompleteUnit(s.ctx(), v.ID, "deescalation")
			s.Require().NoError(err)
			s.Nil(again.Promotion)
			s.True(again.Volunteer.Training.CoreVolunteer)
		})
	})

	s.Run("publish failure does not fail the completion", func() {
		units, last := s.almostCore()
		v := s.seed(units...)
		s.promotions.EXPECT().PublishPromotion(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		result, err := s.service.CompleteUnit(s.ctx(), v.ID, string(last))
		s.Require().NoError(err)
		s.NotNil(result.Promotion)

		stored, err := s.volunteers.FindByID(context.Background(), v.ID)
		s.Require().NoError(err)
		s.True(stored.Training.CoreVolunteer)
	})

	s.Run("an eligible record is promoted by a repeat completion", func() {
		units, last := s.almostCore()
		v := s.seed(append(units, last)...)
		s.promotions.EXPECT().PublishPromotion(gomock.Any(), gomock.Any()).Return(nil)

		result, err := s.service.CompleteUnit(s.ctx(), v.ID, string(last))
		s.Require().NoError(err)
		s.True(result.AlreadyComplete)
		s.NotNil(result.Promotion)
		s.Equal([]string{string(audit.EventCoreVolunteerPromoted)}, s.actions(v.ID))
	})
}

func (s *ServiceSuite) TestConcurrentCompletionsPromoteOnce() {
	units, last := s.almostCore()
	v := s.seed(units...)
	s.promotions.EXPECT().PublishPromotion(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	const writers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		promoted int
	)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := s.service.CompleteUnit(s.ctx(), v.ID, string(last))
			if err != nil {
				// Exhausted retries are acceptable under contention; a
				// double promotion is not.
				s.True(dErrors.HasCode(err, dErrors.CodeConflict), err.Error())
				return
			}
			if result.Promotion != nil {
				mu.Lock()
				promoted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(1, promoted)
	var promotions int
	for _, action := range s.actions(v.ID) {
		if action == string(audit.EventCoreVolunteerPromoted) {
			promotions++
		}
	}
	s.Equal(1, promotions)
}

func (s *ServiceSuite) TestCompleteUnitConflictExhaustion() {
	mockStore := mocks.NewMockStore(s.ctrl)
	svc := New(mockStore, s.machine, WithLogger(s.logger))
	v, err := vmodels.NewImported(id.NewVolunteerID(), "Ana", "ana@example.org", "core_volunteer", vmodels.Availability{}, s.now)
	s.Require().NoError(err)

	mockStore.EXPECT().FindByID(gomock.Any(), v.ID).Return(v, nil).Times(maxCompletionTries)
	mockStore.EXPECT().UpdateTraining(gomock.Any(), v.ID, v.Version, gomock.Any()).
		Return(nil, sentinel.ErrConflict).Times(maxCompletionTries)

	_, err = svc.CompleteUnit(s.ctx(), v.ID, "hmc_orientation")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestCompleteUnitAuditFailure() {
	auditor := mocks.NewMockAuditPublisher(s.ctrl)
	svc := New(s.volunteers, s.machine, WithLogger(s.logger), WithAuditPublisher(auditor))
	v := s.seed()

	auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, event audit.ComplianceEvent) error {
			s.Equal(v.ID, event.VolunteerID)
			s.Equal("hmc_orientation", event.Subject)
			s.Equal("recorded", event.Decision)
			s.Equal("req-1", event.RequestID)
			return errors.New("audit store unavailable")
		})

	_, err := svc.CompleteUnit(s.ctx(), v.ID, "hmc_orientation")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

// =============================================================================
// Reads
// =============================================================================

func (s *ServiceSuite) TestClearanceAndGates() {
	units, last := s.almostCore()

	s.Run("pending volunteer", func() {
		v := s.seed(units...)
		view, err := s.service.Clearance(s.ctx(), v.ID)
		s.Require().NoError(err)
		s.Equal(models.StageTier2Pending, view.Checklist.Clearance.Universal)
		s.Equal([]models.UnitID{last}, view.Checklist.NextRequired)
		s.False(view.Gates.CanDeployCore)

		gates, err := s.service.Gates(s.ctx(), v.ID)
		s.Require().NoError(err)
		s.Equal(view.Gates, gates)
	})

	s.Run("core volunteer", func() {
		v := s.seed(append(units, last)...)
		gates, err := s.service.Gates(s.ctx(), v.ID)
		s.Require().NoError(err)
		s.True(gates.CanDeployCore)
		s.True(gates.HealthFair)
		s.False(gates.StreetMedicine)
	})

	s.Run("unknown volunteer", func() {
		_, err := s.service.Clearance(s.ctx(), id.NewVolunteerID())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestClearanceReportsUnknownUnits() {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	machine := progression.New(completion.New(s.cat, completion.WithLogger(logger)))
	svc := New(s.volunteers, machine, WithLogger(logger))

	v := s.seed("hmc_orientation", "typo_unit")
	view, err := svc.Clearance(s.ctx(), v.ID)
	s.Require().NoError(err)
	s.NotContains(view.Checklist.NextRequired, models.UnitID("hmc_orientation"))
	s.Contains(buf.String(), "unit_id=typo_unit")
	s.Contains(buf.String(), "request_id=req-1")
}

// =============================================================================
// Import
// =============================================================================

func (s *ServiceSuite) TestImport() {
	s.Run("rows fail independently", func() {
		ctx := requestcontext.WithVolunteerID(s.ctx(), id.NewVolunteerID())
		result, err := s.service.Import(ctx, []vmodels.ImportRecord{
			{Name: "Ana Ruiz", Email: " Ana@Example.org ", Role: "core_volunteer",
				Availability: vmodels.Availability{Weekdays: []time.Weekday{time.Saturday}}},
			{Email: "ben.okafor@example.org", Role: "core_volunteer"},
			{Name: "No Email", Role: "core_volunteer"},
			{Name: "Astronaut", Email: "astro@example.org", Role: "astronaut"},
		})
		s.Require().NoError(err)
		s.Equal(2, result.Imported)
		s.Equal(2, result.Failed)
		s.Require().Len(result.Outcomes, 4)

		first := result.Outcomes[0]
		s.Empty(first.Error)
		s.Equal("ana@example.org", first.Email)
		stored, err := s.volunteers.FindByID(context.Background(), first.VolunteerID)
		s.Require().NoError(err)
		s.Empty(stored.Training.Completed)
		s.NotNil(stored.Training.Completed)
		s.Equal(vmodels.BackgroundCheckPending, stored.BackgroundCheck)
		s.Equal(vmodels.SourceImport, stored.Source)
		s.Equal([]time.Weekday{time.Saturday}, stored.Availability.Weekdays)
		s.Equal([]string{string(audit.EventVolunteerImported)}, s.actions(first.VolunteerID))

		second, err := s.volunteers.FindByID(context.Background(), result.Outcomes[1].VolunteerID)
		s.Require().NoError(err)
		s.Equal("Ben Okafor", second.Name)

		s.Equal(dErrors.CodeValidation, result.Outcomes[2].Code)
		s.Equal("email is required", result.Outcomes[2].Error)
		s.Equal(dErrors.CodeValidation, result.Outcomes[3].Code)
		s.Contains(result.Outcomes[3].Error, "unknown role")
	})

	s.Run("duplicate emails keep one profile", func() {
		result, err := s.service.Import(s.ctx(), []vmodels.ImportRecord{
			{Name: "Cy", Email: "cy@example.org", Role: "core_volunteer"},
			{Name: "Cy Again", Email: "CY@example.org", Role: "core_volunteer"},
		})
		s.Require().NoError(err)
		s.Equal(1, result.Imported)
		s.Equal(1, result.Failed)
		for _, o := range result.Outcomes {
			if o.Error != "" {
				s.Equal(dErrors.CodeConflict, o.Code)
			}
		}
	})

	s.Run("empty batch", func() {
		_, err := s.service.Import(s.ctx(), nil)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("oversized batch", func() {
		_, err := s.service.Import(s.ctx(), make([]vmodels.ImportRecord, maxImportBatch+1))
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("cancelled context aborts", func() {
		ctx, cancel := context.WithCancel(s.ctx())
		cancel()
		_, err := s.service.Import(ctx, []vmodels.ImportRecord{{Email: "d@example.org", Role: "core_volunteer"}})
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}
