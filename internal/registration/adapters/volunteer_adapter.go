package adapters

import (
	"context"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/registration/ports"
	volunteerService "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/service"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
)

// VolunteerAdapter implements ports.ProfilePort by calling the volunteer
// service in-process.
type VolunteerAdapter struct {
	volunteers *volunteerService.Service
}

// NewVolunteerAdapter creates a new volunteer adapter.
func NewVolunteerAdapter(volunteers *volunteerService.Service) ports.ProfilePort {
	return &VolunteerAdapter{volunteers: volunteers}
}

// FindProfile loads the volunteer and projects the fields registration reads.
func (a *VolunteerAdapter) FindProfile(ctx context.Context, volunteerID id.VolunteerID) (*ports.Profile, error) {
	v, err := a.volunteers.Get(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	availability := v.Availability.Clone()
	return &ports.Profile{
		VolunteerID:     v.ID,
		Role:            v.Role,
		Record:          v.Training.Clone(),
		BackgroundCheck: string(v.BackgroundCheck),
		Weekdays:        availability.Weekdays,
		Blackouts:       availability.Blackouts,
	}, nil
}
