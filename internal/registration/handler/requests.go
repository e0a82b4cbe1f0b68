package handler

import (
	"strings"
	"time"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/registration"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	dErrors "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain-errors"
)

// ValidateRequest is the HTTP request body for POST /registrations/validate.
// An omitted event is not a request error: it comes back as a blocking issue.
type ValidateRequest struct {
	VolunteerID string        `json:"volunteer_id"`
	Event       *EventRequest `json:"event"`

	// Parsed values (populated by Validate)
	parsedVolunteerID id.VolunteerID
	parsedTarget      *registration.Target
}

// EventRequest names the shift being registered for. Date is YYYY-MM-DD or RFC 3339.
type EventRequest struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Date      string `json:"date"`
}

// Normalize trims whitespace and lowercases the event type.
func (r *ValidateRequest) Normalize() {
	if r == nil {
		return
	}
	r.VolunteerID = strings.TrimSpace(r.VolunteerID)
	if r.Event != nil {
		r.Event.EventID = strings.TrimSpace(r.Event.EventID)
		r.Event.EventType = strings.ToLower(strings.TrimSpace(r.Event.EventType))
		r.Event.Date = strings.TrimSpace(r.Event.Date)
	}
}

// Validate parses identifiers and the event date.
func (r *ValidateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.VolunteerID != "" {
		volunteerID, err := id.ParseVolunteerID(r.VolunteerID)
		if err != nil {
			return err
		}
		r.parsedVolunteerID = volunteerID
	}
	if r.Event == nil {
		return nil
	}
	if len(r.Event.EventType) > 64 {
		return dErrors.New(dErrors.CodeValidation, "event.event_type must be at most 64 characters")
	}

	target := &registration.Target{EventType: models.EventType(r.Event.EventType)}
	if r.Event.EventID != "" {
		eventID, err := id.ParseEventID(r.Event.EventID)
		if err != nil {
			return err
		}
		target.EventID = eventID
	}
	if r.Event.Date != "" {
		date, err := parseEventDate(r.Event.Date)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, "event.date must be YYYY-MM-DD or RFC 3339")
		}
		target.Date = date
	}
	r.parsedTarget = target
	return nil
}

// ParsedVolunteerID returns the nil ID when the body names no volunteer.
func (r *ValidateRequest) ParsedVolunteerID() id.VolunteerID {
	return r.parsedVolunteerID
}

// ParsedTarget returns nil when the body has no event.
func (r *ValidateRequest) ParsedTarget() *registration.Target {
	return r.parsedTarget
}

// parseEventDate returns the event's calendar date at UTC midnight. An RFC 3339
// timestamp keeps the date in its own offset, so a late-evening shift is not
// moved to the next day.
func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
