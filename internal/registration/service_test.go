package registration

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/registration/ports"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/registration/ports/mocks"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/catalog"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/completion"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/progression"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	dErrors "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain-errors"
	audit "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/requestcontext"
)

//go:generate mockgen -source=ports/ports.go -destination=ports/mocks/mocks.go -package=mocks ProfilePort,OpsTracker
type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	profiles *mocks.MockProfilePort
	tracker  *mocks.MockOpsTracker
	service  *Service
	cat      *catalog.Catalog
	now      time.Time
	eventDay time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	cat, err := catalog.LoadDefault()
	s.Require().NoError(err)
	resolver := completion.New(cat)
	s.cat = cat
	s.ctrl = gomock.NewController(s.T())
	s.profiles = mocks.NewMockProfilePort(s.ctrl)
	s.tracker = mocks.NewMockOpsTracker(s.ctrl)
	s.service = NewService(NewValidator(resolver, progression.New(resolver)), s.profiles,
		WithOpsTracker(s.tracker),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.now = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	s.eventDay = time.Date(2026, 5, 16, 0, 0, 0, 0, time.UTC)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) ctx() context.Context {
	ctx := requestcontext.WithTime(context.Background(), s.now)
	return requestcontext.WithRequestID(ctx, "req-1")
}

func (s *ServiceSuite) coreProfile(volunteerID id.VolunteerID) *ports.Profile {
	units := append(s.cat.TierUnits(models.TierOrientation), s.cat.TierUnits(models.TierBaseline)...)
	return &ports.Profile{
		VolunteerID:     volunteerID,
		Role:            "core_volunteer",
		Record:          models.Record{Completed: units},
		BackgroundCheck: "verified",
		Weekdays:        []time.Weekday{time.Saturday},
	}
}

func (s *ServiceSuite) TestValidate() {
	s.Run("allowed verdict is tracked", func() {
		volunteerID := id.NewVolunteerID()
		s.profiles.EXPECT().FindProfile(gomock.Any(), volunteerID).Return(s.coreProfile(volunteerID), nil)
		s.tracker.EXPECT().Track(gomock.Any(), audit.OpsEvent{
			Timestamp:   s.now,
			VolunteerID: volunteerID,
			Subject:     "community_tabling",
			Action:      string(audit.EventRegistrationValidated),
			Decision:    "allowed",
			RequestID:   "req-1",
		})

		verdict, err := s.service.Validate(s.ctx(), Request{
			VolunteerID: volunteerID,
			Target:      &Target{EventType: "community_tabling", Date: s.eventDay},
		})
		s.Require().NoError(err)
		s.True(verdict.CanRegister)
		s.Empty(verdict.Warnings)
	})

	s.Run("denied verdict carries the first blocking code", func() {
		volunteerID := id.NewVolunteerID()
		profile := s.coreProfile(volunteerID)
		profile.Blackouts = []time.Time{s.eventDay}
		s.profiles.EXPECT().FindProfile(gomock.Any(), volunteerID).Return(profile, nil)
		s.tracker.EXPECT().Track(gomock.Any(), gomock.Any()).Do(func(_ context.Context, event audit.OpsEvent) {
			s.Equal("denied", event.Decision)
			s.Equal(string(IssueProgramTrainingRequired), event.Reason)
		})

		verdict, err := s.service.Validate(s.ctx(), Request{
			VolunteerID: volunteerID,
			Target:      &Target{EventType: "street_medicine_outreach", Date: s.eventDay},
		})
		s.Require().NoError(err)
		s.False(verdict.CanRegister)
		s.Equal([]IssueCode{IssueProgramTrainingRequired, IssueDateUnavailable}, codes(verdict.BlockingIssues))
	})

	s.Run("missing event is a blocking issue, not an error", func() {
		volunteerID := id.NewVolunteerID()
		s.profiles.EXPECT().FindProfile(gomock.Any(), volunteerID).Return(s.coreProfile(volunteerID), nil)
		s.tracker.EXPECT().Track(gomock.Any(), gomock.Any())

		verdict, err := s.service.Validate(s.ctx(), Request{VolunteerID: volunteerID})
		s.Require().NoError(err)
		s.Equal([]IssueCode{IssueMissingEvent}, codes(verdict.BlockingIssues))
	})

	s.Run("background check status flows through as a warning", func() {
		volunteerID := id.NewVolunteerID()
		profile := s.coreProfile(volunteerID)
		profile.BackgroundCheck = "pending"
		s.profiles.EXPECT().FindProfile(gomock.Any(), volunteerID).Return(profile, nil)
		s.tracker.EXPECT().Track(gomock.Any(), gomock.Any())

		verdict, err := s.service.Validate(s.ctx(), Request{
			VolunteerID: volunteerID,
			Target:      &Target{EventType: "health_fair", Date: s.eventDay},
		})
		s.Require().NoError(err)
		s.True(verdict.CanRegister)
		s.Equal([]IssueCode{IssueBackgroundCheckNotVerified}, codes(verdict.Warnings))
	})

	s.Run("overdue training is measured against the request time", func() {
		volunteerID := id.NewVolunteerID()
		profile := s.coreProfile(volunteerID)
		machine := progression.New(completion.New(s.cat))
		promoted, event := machine.TryPromote(profile.Record, s.now.AddDate(0, 0, -75))
		s.Require().NotNil(event)
		profile.Record = promoted
		s.profiles.EXPECT().FindProfile(gomock.Any(), volunteerID).Return(profile, nil)
		s.tracker.EXPECT().Track(gomock.Any(), gomock.Any())

		verdict, err := s.service.Validate(s.ctx(), Request{
			VolunteerID: volunteerID,
			Target:      &Target{EventType: "community_tabling", Date: s.eventDay},
		})
		s.Require().NoError(err)
		s.True(verdict.CanRegister)
		s.Equal([]IssueCode{IssueRecommendedTrainingOverdue}, codes(verdict.Warnings))
	})

	s.Run("unknown volunteer returns the port error", func() {
		volunteerID := id.NewVolunteerID()
		s.profiles.EXPECT().FindProfile(gomock.Any(), volunteerID).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "volunteer not found"))

		_, err := s.service.Validate(s.ctx(), Request{VolunteerID: volunteerID})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestValidateWithoutTracker() {
	volunteerID := id.NewVolunteerID()
	resolver := completion.New(s.cat)
	svc := NewService(NewValidator(resolver, progression.New(resolver)), s.profiles,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.profiles.EXPECT().FindProfile(gomock.Any(), volunteerID).Return(s.coreProfile(volunteerID), nil)

	verdict, err := svc.Validate(s.ctx(), Request{
		VolunteerID: volunteerID,
		Target:      &Target{EventType: "health_fair", Date: s.eventDay},
	})
	s.Require().NoError(err)
	s.True(verdict.CanRegister)
}
