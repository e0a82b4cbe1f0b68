// Package domain holds typed identifiers shared across modules.
//
// IDs are parsed at trust boundaries and carried as distinct types afterwards,
// so a volunteer ID can never be passed where an event ID is expected.
package domain

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	dErrors "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain-errors"
)

// VolunteerID identifies a person record.
type VolunteerID uuid.UUID

// EventID identifies a scheduled field event (shift).
type EventID uuid.UUID

// NewVolunteerID returns a fresh random VolunteerID.
func NewVolunteerID() VolunteerID { return VolunteerID(uuid.New()) }

// ParseVolunteerID parses and validates a volunteer identifier.
func ParseVolunteerID(s string) (VolunteerID, error) {
	u, err := parseUUID("volunteer_id", s)
	return VolunteerID(u), err
}

// ParseEventID parses and validates an event identifier.
func ParseEventID(s string) (EventID, error) {
	u, err := parseUUID("event_id", s)
	return EventID(u), err
}

func (v VolunteerID) String() string { return uuid.UUID(v).String() }
func (v VolunteerID) IsNil() bool    { return uuid.UUID(v) == uuid.Nil }

func (e EventID) String() string { return uuid.UUID(e).String() }
func (e EventID) IsNil() bool    { return uuid.UUID(e) == uuid.Nil }

func (v VolunteerID) MarshalJSON() ([]byte, error) { return json.Marshal(v.String()) }

func (v *VolunteerID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "volunteer_id must be a string")
	}
	parsed, err := ParseVolunteerID(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func parseUUID(field, s string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	if len(trimmed) > 64 {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is too long")
	}
	u, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+field)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" cannot be nil")
	}
	return u, nil
}
