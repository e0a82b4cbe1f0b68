package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/catalog"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/completion"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/progression"
	vmodels "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/models"
	volunteerService "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/service"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/store"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	dErrors "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain-errors"
)

func TestVolunteerAdapter(t *testing.T) {
	cat, err := catalog.LoadDefault()
	require.NoError(t, err)
	volunteers := store.NewInMemory()
	svc := volunteerService.New(volunteers, progression.New(completion.New(cat)))
	adapter := NewVolunteerAdapter(svc)
	ctx := context.Background()

	blackout := time.Date(2026, 5, 16, 0, 0, 0, 0, time.UTC)
	v, err := vmodels.NewImported(id.NewVolunteerID(), "Ana Ruiz", "ana@example.org", "core_volunteer",
		vmodels.Availability{Weekdays: []time.Weekday{time.Saturday}, Blackouts: []time.Time{blackout}},
		time.Now())
	require.NoError(t, err)
	require.NoError(t, volunteers.Create(ctx, v))

	t.Run("projects the profile", func(t *testing.T) {
		profile, err := adapter.FindProfile(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, v.ID, profile.VolunteerID)
		assert.Equal(t, v.Role, profile.Role)
		assert.Equal(t, "pending", profile.BackgroundCheck)
		assert.Equal(t, []time.Weekday{time.Saturday}, profile.Weekdays)
		assert.Equal(t, []time.Time{blackout}, profile.Blackouts)
		assert.Empty(t, profile.Record.Completed)
	})

	t.Run("unknown volunteer is not_found", func(t *testing.T) {
		_, err := adapter.FindProfile(ctx, id.NewVolunteerID())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
