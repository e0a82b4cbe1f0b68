// Package store persists volunteer profiles. Every backend enforces unique ids
// and emails and guards training writes with a version compare-and-swap.
package store

import (
	"context"
	"strings"
	"sync"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	vmodels "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/models"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/sentinel"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/requestcontext"
)

// InMemory is a mutex-guarded store for development and tests.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[id.VolunteerID]*vmodels.Volunteer
	byEmail map[string]id.VolunteerID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:    make(map[id.VolunteerID]*vmodels.Volunteer),
		byEmail: make(map[string]id.VolunteerID),
	}
}

// Create stores a new profile. A taken id or email is sentinel.ErrConflict.
func (s *InMemory) Create(_ context.Context, v *vmodels.Volunteer) error {
	email := strings.ToLower(v.Email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[v.ID]; ok {
		return sentinel.ErrConflict
	}
	if _, ok := s.byEmail[email]; ok {
		return sentinel.ErrConflict
	}
	s.byID[v.ID] = v.Clone()
	s.byEmail[email] = v.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, volunteerID id.VolunteerID) (*vmodels.Volunteer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.byID[volunteerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return v.Clone(), nil
}

// UpdateTraining replaces the training record if the stored version still
// equals expectedVersion, and returns the updated profile.
func (s *InMemory) UpdateTraining(ctx context.Context, volunteerID id.VolunteerID, expectedVersion int64, record models.Record) (*vmodels.Volunteer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.byID[volunteerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if v.Version != expectedVersion {
		return nil, sentinel.ErrConflict
	}
	v.Training = record.Clone()
	v.Version++
	v.UpdatedAt = requestcontext.Now(ctx)
	return v.Clone(), nil
}

// Count returns the number of stored profiles.
func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), nil
}
