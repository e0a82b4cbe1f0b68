// Package models holds the value types shared by the training clearance engine:
// catalog entries, the per-person training record, derived stages and gates.
package models

import (
	"strings"

	dErrors "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain-errors"
)

// UnitID is the stable key of a training unit. Completion records store it
// verbatim, so retired ids stay valid through the catalog alias table.
type UnitID string

func (u UnitID) String() string { return string(u) }

// ParseUnitID trims and validates a unit identifier from untrusted input.
func ParseUnitID(s string) (UnitID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unit_id is required")
	}
	if len(trimmed) > 128 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unit_id must be at most 128 characters")
	}
	return UnitID(trimmed), nil
}

// Tier orders training by how widely it is required.
type Tier int

const (
	// TierOrientation is universal orientation, required of everyone.
	TierOrientation Tier = 1
	// TierBaseline is the baseline operational set that completes Core Volunteer standing.
	TierBaseline Tier = 2
	// TierProgram is program-specific training that clears a deployment context.
	TierProgram Tier = 3
	// TierRecommended is recommended training tracked against a deadline.
	TierRecommended Tier = 4
)

// IsValid checks if the tier is one of the supported values.
func (t Tier) IsValid() bool {
	return t >= TierOrientation && t <= TierRecommended
}

// Format describes how a unit is delivered.
type Format string

const (
	FormatVideo    Format = "video"
	FormatReading  Format = "reading"
	FormatQuiz     Format = "quiz"
	FormatInPerson Format = "in_person"
	FormatExternal Format = "external"
)

// IsValid checks if the format is one of the supported values.
func (f Format) IsValid() bool {
	switch f {
	case FormatVideo, FormatReading, FormatQuiz, FormatInPerson, FormatExternal:
		return true
	}
	return false
}

// Program tags a field-deployment context with its own required-unit list.
type Program string

const (
	ProgramNone                 Program = ""
	ProgramStreetMedicine       Program = "street_medicine"
	ProgramClinic               Program = "clinic"
	ProgramHealthFair           Program = "health_fair"
	ProgramNaloxoneDistribution Program = "naloxone_distribution"
	ProgramOraQuickDistribution Program = "oraquick_distribution"
)

var knownPrograms = []Program{
	ProgramStreetMedicine,
	ProgramClinic,
	ProgramHealthFair,
	ProgramNaloxoneDistribution,
	ProgramOraQuickDistribution,
}

// KnownPrograms returns the fixed program tag set in display order.
func KnownPrograms() []Program {
	return append([]Program(nil), knownPrograms...)
}

// IsValid is true for the fixed tag set. ProgramNone is not a valid tag.
func (p Program) IsValid() bool {
	for _, known := range knownPrograms {
		if p == known {
			return true
		}
	}
	return false
}

func (p Program) String() string { return string(p) }

// ParseProgram validates a program tag from untrusted input.
func ParseProgram(s string) (Program, error) {
	p := Program(strings.TrimSpace(s))
	if p == ProgramNone {
		return ProgramNone, dErrors.New(dErrors.CodeInvalidInput, "program is required")
	}
	if !p.IsValid() {
		return ProgramNone, dErrors.New(dErrors.CodeInvalidInput, "unknown program: "+s)
	}
	return p, nil
}

// Role identifies an entry of the role catalog. The catalog file defines the set.
type Role string

func (r Role) String() string { return string(r) }

// EventType identifies a category of field event. The catalog maps each one to
// the program whose gate it needs, or to ProgramNone for core-only events.
type EventType string

func (e EventType) String() string { return string(e) }

// Unit is an immutable catalog entry.
//
// Invariants (checked at catalog load):
//   - Tier is 1..4
//   - Blocking units carry no deadline (DeadlineDays == 0)
//   - Non-blocking units always carry a deadline (DeadlineDays > 0)
type Unit struct {
	ID           UnitID  `json:"id" yaml:"id"`
	Title        string  `json:"title" yaml:"title"`
	Tier         Tier    `json:"tier" yaml:"tier"`
	Format       Format  `json:"format" yaml:"format"`
	Program      Program `json:"program,omitempty" yaml:"program"`
	Blocking     bool    `json:"blocking" yaml:"blocking"`
	DeadlineDays int     `json:"deadline_days,omitempty" yaml:"deadline_days"`
}

// HasDeadline reports whether the unit is deadline-tracked.
func (u Unit) HasDeadline() bool {
	return u.DeadlineDays > 0
}
