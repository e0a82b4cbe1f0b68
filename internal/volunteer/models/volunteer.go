// Package models holds the persisted volunteer profile.
package models

import (
	"slices"
	"strings"
	"time"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/progression"
	training "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	dErrors "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain-errors"
)

// Source records how a profile entered the system.
type Source string

const (
	SourcePortal Source = "portal"
	SourceImport Source = "import"
)

// BackgroundCheck is the compliance status kept on the profile.
type BackgroundCheck string

const (
	BackgroundCheckVerified   BackgroundCheck = "verified"
	BackgroundCheckPending    BackgroundCheck = "pending"
	BackgroundCheckNotStarted BackgroundCheck = "not_started"
	BackgroundCheckExpired    BackgroundCheck = "expired"
)

// IsValid checks if the status is one of the supported values.
func (b BackgroundCheck) IsValid() bool {
	switch b {
	case BackgroundCheckVerified, BackgroundCheckPending, BackgroundCheckNotStarted, BackgroundCheckExpired:
		return true
	}
	return false
}

// Availability holds scheduling constraints. Blackouts are calendar dates at
// UTC midnight.
type Availability struct {
	Weekdays  []time.Weekday `json:"weekdays"`
	Blackouts []time.Time    `json:"blackout_dates"`
}

// Clone returns a deep copy.
func (a Availability) Clone() Availability {
	return Availability{
		Weekdays:  slices.Clone(a.Weekdays),
		Blackouts: slices.Clone(a.Blackouts),
	}
}

// Volunteer is a person record. Version increases by one on every training
// write and guards compare-and-swap updates.
type Volunteer struct {
	ID              id.VolunteerID
	Name            string
	Email           string
	Role            training.Role
	Training        training.Record
	BackgroundCheck BackgroundCheck
	Availability    Availability
	Source          Source
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Clone returns a deep copy so stores never hand out shared slices.
func (v *Volunteer) Clone() *Volunteer {
	if v == nil {
		return nil
	}
	out := *v
	out.Training = v.Training.Clone()
	out.Availability = v.Availability.Clone()
	return &out
}

// NewImported builds a profile from bulk-import data. Imported profiles always
// start with no completed units and a pending background check.
func NewImported(volunteerID id.VolunteerID, name, email string, role training.Role, availability Availability, now time.Time) (*Volunteer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "email is invalid")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "name is required")
	}

	return &Volunteer{
		ID:              volunteerID,
		Name:            name,
		Email:           email,
		Role:            role,
		Training:        training.Record{Completed: []training.UnitID{}},
		BackgroundCheck: BackgroundCheckPending,
		Availability:    availability.Clone(),
		Source:          SourceImport,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// ClearanceView is a volunteer's derived standing for display.
type ClearanceView struct {
	Volunteer *Volunteer
	Checklist progression.Checklist
	Gates     training.Gates
}

// CompletionResult reports the outcome of recording one unit.
type CompletionResult struct {
	Volunteer *Volunteer
	// UnitID is the canonical id that was recorded.
	UnitID training.UnitID
	// AlreadyComplete is true when the unit (or an alias of it) was on record.
	AlreadyComplete bool
	Promotion       *training.PromotionEvent
}

// ImportRecord is one row of a bulk import.
type ImportRecord struct {
	Name         string
	Email        string
	Role         training.Role
	Availability Availability
}

// ImportOutcome reports one row of a bulk import. Error is empty on success.
type ImportOutcome struct {
	Index       int
	Email       string
	VolunteerID id.VolunteerID
	Error       string
	Code        dErrors.Code
}

// ImportResult summarises a batch.
type ImportResult struct {
	Imported int
	Failed   int
	Outcomes []ImportOutcome
}

// PromotionMessage is published once per Core Volunteer promotion.
type PromotionMessage struct {
	VolunteerID    id.VolunteerID    `json:"volunteer_id"`
	Role           training.Role     `json:"role"`
	ApprovedAt     time.Time         `json:"approved_at"`
	CompletedUnits []training.UnitID `json:"completed_units"`
	CatalogVersion int               `json:"catalog_version"`
	RequestID      string            `json:"request_id,omitempty"`
}
