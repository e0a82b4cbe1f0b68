package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	vmodels "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/models"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/sentinel"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/requestcontext"
)

type volunteerStore interface {
	Create(ctx context.Context, v *vmodels.Volunteer) error
	FindByID(ctx context.Context, volunteerID id.VolunteerID) (*vmodels.Volunteer, error)
	UpdateTraining(ctx context.Context, volunteerID id.VolunteerID, expectedVersion int64, record models.Record) (*vmodels.Volunteer, error)
	Count(ctx context.Context) (int, error)
}

// contractSuite is shared by every backend. Backends embed it and set store
// (and reset their state) in SetupTest.
type contractSuite struct {
	suite.Suite
	store volunteerStore
	ctx   context.Context
}

var baseTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func (s *contractSuite) newVolunteer(email string) *vmodels.Volunteer {
	v, err := vmodels.NewImported(id.NewVolunteerID(), "Test Volunteer", email, "core_volunteer", vmodels.Availability{
		Weekdays:  []time.Weekday{time.Saturday, time.Sunday},
		Blackouts: []time.Time{time.Date(2026, 5, 16, 0, 0, 0, 0, time.UTC)},
	}, baseTime)
	s.Require().NoError(err)
	return v
}

// TestCreateAndFind verifies profiles round-trip through the backend unchanged.
func (s *contractSuite) TestCreateAndFind() {
	s.Run("creates and finds by id", func() {
		v := s.newVolunteer("find@example.org")
		s.Require().NoError(s.store.Create(s.ctx, v))

		found, err := s.store.FindByID(s.ctx, v.ID)
		s.Require().NoError(err)
		s.Equal(v.ID, found.ID)
		s.Equal("find@example.org", found.Email)
		s.Equal(models.Role("core_volunteer"), found.Role)
		s.Equal(vmodels.BackgroundCheckPending, found.BackgroundCheck)
		s.Equal(vmodels.SourceImport, found.Source)
		s.Equal(int64(1), found.Version)
		s.NotNil(found.Training.Completed, "an empty record is a list, not null")
		s.Empty(found.Training.Completed)
		s.False(found.Training.CoreVolunteer)
		s.Equal([]time.Weekday{time.Saturday, time.Sunday}, found.Availability.Weekdays)
		s.Require().Len(found.Availability.Blackouts, 1)
		s.Equal("2026-05-16", found.Availability.Blackouts[0].Format(time.DateOnly))
	})

	s.Run("unknown id is ErrNotFound", func() {
		_, err := s.store.FindByID(s.ctx, id.NewVolunteerID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("duplicate email is ErrConflict regardless of case", func() {
		s.Require().NoError(s.store.Create(s.ctx, s.newVolunteer("dup@example.org")))
		err := s.store.Create(s.ctx, s.newVolunteer("DUP@example.org"))
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("duplicate id is ErrConflict", func() {
		v := s.newVolunteer("first@example.org")
		s.Require().NoError(s.store.Create(s.ctx, v))
		again := s.newVolunteer("second@example.org")
		again.ID = v.ID
		s.Require().ErrorIs(s.store.Create(s.ctx, again), sentinel.ErrConflict)
	})
}

// TestUpdateTraining verifies the version compare-and-swap.
func (s *contractSuite) TestUpdateTraining() {
	s.Run("matching version writes and bumps version", func() {
		v := s.newVolunteer("cas@example.org")
		s.Require().NoError(s.store.Create(s.ctx, v))

		approved := baseTime.Add(time.Hour)
		record := models.Record{
			Completed:      []models.UnitID{"hmc_orientation", "hipaa_nonclinical"},
			CoreVolunteer:  true,
			CoreApprovedAt: &approved,
			Baseline:       models.BaselineGates{CanDeployCore: true, HealthFair: true},
		}
		ctx := requestcontext.WithTime(s.ctx, approved)
		updated, err := s.store.UpdateTraining(ctx, v.ID, 1, record)
		s.Require().NoError(err)
		s.Equal(int64(2), updated.Version)

		found, err := s.store.FindByID(s.ctx, v.ID)
		s.Require().NoError(err)
		s.Equal(int64(2), found.Version)
		s.Equal(record.Completed, found.Training.Completed)
		s.True(found.Training.CoreVolunteer)
		s.Require().NotNil(found.Training.CoreApprovedAt)
		s.True(approved.Equal(*found.Training.CoreApprovedAt))
		s.True(found.Training.Baseline.HealthFair)
	})

	s.Run("stale version is ErrConflict and leaves the record alone", func() {
		v := s.newVolunteer("stale@example.org")
		s.Require().NoError(s.store.Create(s.ctx, v))
		_, err := s.store.UpdateTraining(s.ctx, v.ID, 1, models.Record{Completed: []models.UnitID{"a"}})
		s.Require().NoError(err)

		_, err = s.store.UpdateTraining(s.ctx, v.ID, 1, models.Record{Completed: []models.UnitID{"b"}})
		s.Require().ErrorIs(err, sentinel.ErrConflict)

		found, err := s.store.FindByID(s.ctx, v.ID)
		s.Require().NoError(err)
		s.Equal([]models.UnitID{"a"}, found.Training.Completed)
	})

	s.Run("unknown id is ErrNotFound", func() {
		_, err := s.store.UpdateTraining(s.ctx, id.NewVolunteerID(), 1, models.Record{})
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestConcurrentUpdatesHaveOneWinner verifies that writers racing on the same
// version produce exactly one success.
func (s *contractSuite) TestConcurrentUpdatesHaveOneWinner() {
	v := s.newVolunteer("race@example.org")
	s.Require().NoError(s.store.Create(s.ctx, v))

	const writers = 20
	var (
		wg        sync.WaitGroup
		wins      atomic.Int32
		conflicts atomic.Int32
	)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			record := models.Record{Completed: []models.UnitID{models.UnitID(fmt.Sprintf("unit_%d", i))}}
			_, err := s.store.UpdateTraining(s.ctx, v.ID, 1, record)
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, sentinel.ErrConflict):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), wins.Load(), "exactly one writer should win")
	s.Equal(int32(writers-1), conflicts.Load(), "all other writers should conflict")

	found, err := s.store.FindByID(s.ctx, v.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), found.Version)
}

func (s *contractSuite) TestCount() {
	before, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, s.newVolunteer("count1@example.org")))
	s.Require().NoError(s.store.Create(s.ctx, s.newVolunteer("count2@example.org")))
	after, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(before+2, after)
}
