//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	audit "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit"
	auditpostgres "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit/store/postgres"
	txcontext "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/tx"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/testutil/containers"
)

type AuditStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *auditpostgres.Store
	ctx      context.Context
}

func TestAuditStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(AuditStoreSuite))
}

func (s *AuditStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = auditpostgres.New(s.postgres.DB)
}

func (s *AuditStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "audit_events"))
}

func (s *AuditStoreSuite) TestListByVolunteer() {
	volunteerID := id.NewVolunteerID()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.Append(s.ctx, audit.Event{
		Timestamp:   base,
		VolunteerID: volunteerID,
		Subject:     "hmc_orientation",
		Action:      string(audit.EventTrainingUnitCompleted),
	}))
	s.Require().NoError(s.store.Append(s.ctx, audit.Event{
		Timestamp:   base.Add(time.Minute),
		VolunteerID: volunteerID,
		Action:      string(audit.EventRegistrationValidated),
		Decision:    "denied",
		Reason:      "core_volunteer_required",
	}))
	s.Require().NoError(s.store.Append(s.ctx, audit.Event{
		Timestamp:   base,
		VolunteerID: id.NewVolunteerID(),
		Action:      string(audit.EventVolunteerImported),
	}))

	events, err := s.store.ListByVolunteer(s.ctx, volunteerID)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(string(audit.EventRegistrationValidated), events[0].Action)
	s.Equal(audit.CategoryOperations, events[0].Category)
	s.Equal("core_volunteer_required", events[0].Reason)
	s.Equal(audit.CategoryCompliance, events[1].Category)
	s.Equal("hmc_orientation", events[1].Subject)
	s.Equal(volunteerID, events[1].VolunteerID)
}

func (s *AuditStoreSuite) TestAppendRollsBackWithTransaction() {
	volunteerID := id.NewVolunteerID()
	runner := txcontext.NewSQLRunner(s.postgres.DB, 0)
	errAbort := errors.New("abort")

	err := runner.RunInTx(s.ctx, func(ctx context.Context) error {
		s.Require().NoError(s.store.Append(ctx, audit.Event{
			VolunteerID: volunteerID,
			Action:      string(audit.EventCoreVolunteerPromoted),
		}))
		return errAbort
	})
	s.Require().ErrorIs(err, errAbort)

	events, err := s.store.ListByVolunteer(s.ctx, volunteerID)
	s.Require().NoError(err)
	s.Empty(events)
}
