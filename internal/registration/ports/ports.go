// Package ports defines what registration validation needs from other modules.
package ports

import (
	"context"
	"time"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	audit "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit"
)

// Profile is the slice of a volunteer record that registration reads.
type Profile struct {
	VolunteerID     id.VolunteerID
	Role            models.Role
	Record          models.Record
	BackgroundCheck string
	Weekdays        []time.Weekday
	Blackouts       []time.Time
}

// ProfilePort loads volunteer profiles.
type ProfilePort interface {
	// FindProfile returns a not_found domain error for unknown volunteers.
	FindProfile(ctx context.Context, volunteerID id.VolunteerID) (*Profile, error)
}

// OpsTracker records operational audit events. Track never blocks and never fails.
type OpsTracker interface {
	Track(ctx context.Context, event audit.OpsEvent)
}
