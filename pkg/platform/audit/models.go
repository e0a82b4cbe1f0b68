package audit

import (
	"context"
	"time"

	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance: changes to
	// a volunteer's training standing and the records that justify deployment.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers events useful for debugging and operational
	// visibility. These can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category    EventCategory
	Timestamp   time.Time
	VolunteerID id.VolunteerID
	Subject     string
	Action      string
	Decision    string
	Reason      string
	RequestID   string
	// ActorID is set when an admin acts on a volunteer's behalf, e.g. bulk import.
	ActorID string
}

type AuditEvent string

const (
	EventVolunteerImported     AuditEvent = "volunteer_imported"
	EventTrainingUnitCompleted AuditEvent = "training_unit_completed"
	EventCoreVolunteerPromoted AuditEvent = "core_volunteer_promoted"
	EventRegistrationValidated AuditEvent = "registration_validated"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventVolunteerImported:     CategoryCompliance,
	EventTrainingUnitCompleted: CategoryCompliance,
	EventCoreVolunteerPromoted: CategoryCompliance,

	EventRegistrationValidated: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByVolunteer(ctx context.Context, volunteerID id.VolunteerID) ([]Event, error)
}

// ComplianceEvent captures actions requiring guaranteed persistence.
// Use with the compliance publisher for fail-closed semantics.
type ComplianceEvent struct {
	Timestamp   time.Time      // set automatically if zero
	VolunteerID id.VolunteerID // required
	Subject     string         // unit id, import batch, or other subject of the action
	Action      string
	Decision    string
	RequestID   string
	ActorID     string
}

// Category returns CategoryCompliance (always).
func (e ComplianceEvent) Category() EventCategory { return CategoryCompliance }

// ToEvent converts to the stored Event shape.
func (e ComplianceEvent) ToEvent() Event {
	return Event{
		Category:    CategoryCompliance,
		Timestamp:   e.Timestamp,
		VolunteerID: e.VolunteerID,
		Subject:     e.Subject,
		Action:      e.Action,
		Decision:    e.Decision,
		RequestID:   e.RequestID,
		ActorID:     e.ActorID,
	}
}

// OpsEvent captures operational events with minimal overhead.
// Events are fire-and-forget with optional sampling.
type OpsEvent struct {
	Timestamp   time.Time
	VolunteerID id.VolunteerID
	Subject     string
	Action      string
	Decision    string
	Reason      string
	RequestID   string
}

// Category returns CategoryOperations (always).
func (e OpsEvent) Category() EventCategory { return CategoryOperations }

// ToEvent converts to the stored Event shape.
func (e OpsEvent) ToEvent() Event {
	return Event{
		Category:    CategoryOperations,
		Timestamp:   e.Timestamp,
		VolunteerID: e.VolunteerID,
		Subject:     e.Subject,
		Action:      e.Action,
		Decision:    e.Decision,
		Reason:      e.Reason,
		RequestID:   e.RequestID,
	}
}
