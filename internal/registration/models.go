package registration

import (
	"time"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
)

// IssueCode classifies a blocking issue or warning.
type IssueCode string

const (
	IssueMissingRole         IssueCode = "missing_role"
	IssueUnknownRole         IssueCode = "unknown_role"
	IssueMissingAvailability IssueCode = "missing_availability"
	IssueMissingEvent        IssueCode = "missing_event"
	IssueUnknownEventType    IssueCode = "unknown_event_type"

	IssueCoreVolunteerRequired      IssueCode = "core_volunteer_required"
	IssuePrivacyTrainingRequired    IssueCode = "privacy_training_required"
	IssueRecommendedTrainingOverdue IssueCode = "recommended_training_overdue"
	IssueBackgroundCheckNotVerified IssueCode = "background_check_not_verified"
	IssueProgramTrainingRequired    IssueCode = "program_training_required"
	IssueDateUnavailable            IssueCode = "date_unavailable"
	IssueDayNotPreferred            IssueCode = "day_not_preferred"
)

// Issue is one reason in a verdict. Requirement names what is unmet: a unit id,
// a program tag, a date, or the missing input field.
type Issue struct {
	Code        IssueCode `json:"code"`
	Requirement string    `json:"requirement"`
	Message     string    `json:"message"`
}

// Verdict is the outcome of one validation. It is produced per call and never stored.
type Verdict struct {
	CanRegister    bool    `json:"can_register"`
	BlockingIssues []Issue `json:"blocking_issues"`
	Warnings       []Issue `json:"warnings"`
}

// BackgroundCheckStatus is reported by the compliance collaborator.
type BackgroundCheckStatus string

const (
	BackgroundCheckVerified   BackgroundCheckStatus = "verified"
	BackgroundCheckPending    BackgroundCheckStatus = "pending"
	BackgroundCheckNotStarted BackgroundCheckStatus = "not_started"
	BackgroundCheckExpired    BackgroundCheckStatus = "expired"
)

// Compliance is the external compliance record of a person.
type Compliance struct {
	BackgroundCheck BackgroundCheckStatus `json:"background_check"`
}

// Availability is a person's scheduling constraints. An empty Weekdays set
// means no stated preference.
type Availability struct {
	Weekdays  []time.Weekday `json:"weekdays"`
	Blackouts []time.Time    `json:"blackout_dates"`
}

// Target is the event a person is trying to register for.
type Target struct {
	EventID   id.EventID       `json:"event_id"`
	EventType models.EventType `json:"event_type"`
	Date      time.Time        `json:"date"`
}

// Input carries everything a validation needs. Nil Availability or Target is
// malformed input and denies registration.
type Input struct {
	Record       models.Record
	Role         models.Role
	Compliance   Compliance
	Availability *Availability
	Target       *Target
	// AsOf is the instant recommended-training deadlines are checked against.
	// Zero means the event date.
	AsOf time.Time
}
