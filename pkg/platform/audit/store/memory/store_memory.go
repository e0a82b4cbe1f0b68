// Package memory keeps audit events in process, for the memory and redis
// volunteer backends and for tests.
package memory

import (
	"context"
	"slices"
	"sync"

	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	audit "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit"
)

type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.VolunteerID][]audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.VolunteerID][]audit.Event)}
}

// Append stores event under its volunteer. The category is derived from the
// action, as the Postgres store does.
func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	event.Category = audit.AuditEvent(event.Action).Category()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.VolunteerID] = append(s.events[event.VolunteerID], event)
	return nil
}

// ListByVolunteer returns the volunteer's events, newest first.
func (s *InMemoryStore) ListByVolunteer(_ context.Context, volunteerID id.VolunteerID) ([]audit.Event, error) {
	s.mu.RLock()
	events := slices.Clone(s.events[volunteerID])
	s.mu.RUnlock()

	slices.Reverse(events)
	slices.SortStableFunc(events, func(a, b audit.Event) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return events, nil
}
