package registration

import (
	"fmt"
	"strings"
	"time"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/catalog"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/completion"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/eligibility"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/progression"
)

// Validator is the single authorization point for shift registration.
// Validate is pure: no I/O, no side effects, safe for concurrent use.
type Validator struct {
	catalog  *catalog.Catalog
	resolver *completion.Resolver
	machine  *progression.Machine
}

func NewValidator(resolver *completion.Resolver, machine *progression.Machine) *Validator {
	return &Validator{
		catalog:  resolver.Catalog(),
		resolver: resolver,
		machine:  machine,
	}
}

// Validate applies the registration rule chain. Rule order:
//  0. Malformed input (fail closed, nothing else is evaluated)
//  1. Core Volunteer standing - blocking
//  2. Privacy training - blocking, always required on its own
//  3. Recommended training past its deadline - warning
//  4. Background check - warning
//  5. Program gate of the target event - blocking
//  6. Blackout date - blocking
//  7. Preferred weekday - warning
func (v *Validator) Validate(in Input) Verdict {
	b := &verdictBuilder{}

	event, ok := v.checkInput(b, in)
	if !ok {
		return b.build()
	}

	clearance := v.machine.Stage(in.Record, in.Role)
	gates := eligibility.Evaluate(clearance)

	// Rule 1: Core Volunteer standing
	if !clearance.CoreVolunteer() {
		b.block(IssueCoreVolunteerRequired, string(models.StageCoreVolunteer),
			fmt.Sprintf("Core Volunteer training must be complete before registering (current stage: %s)", clearance.Universal))
	}

	// Rule 2: privacy training, distinct from tier 2 as a whole
	if privacy := v.catalog.PrivacyUnit(); !v.resolver.IsComplete(in.Record, privacy) {
		b.block(IssuePrivacyTrainingRequired, string(privacy),
			fmt.Sprintf("%s must be complete before working with client data", v.unitTitle(privacy)))
	}

	// Rule 3: overdue recommended units are reported for follow-up
	asOf := in.AsOf
	if asOf.IsZero() {
		asOf = in.Target.Date
	}
	for _, u := range v.machine.Overdue(in.Record, in.Role, asOf) {
		b.warn(IssueRecommendedTrainingOverdue, string(u.ID),
			fmt.Sprintf("%s was due %d days after Core Volunteer approval and is overdue", v.unitTitle(u.ID), u.DeadlineDays))
	}

	// Rule 4: background check is advisory
	if in.Compliance.BackgroundCheck != BackgroundCheckVerified {
		status := string(in.Compliance.BackgroundCheck)
		if status == "" {
			status = string(BackgroundCheckNotStarted)
		}
		b.warn(IssueBackgroundCheckNotVerified, "background_check",
			fmt.Sprintf("background check is %s; a coordinator must confirm before the shift", status))
	}

	// Rule 5: program gate. Core-only events are covered by rule 1.
	if event.Program != models.ProgramNone && !gates.Allows(event.Program) {
		b.block(IssueProgramTrainingRequired, string(event.Program),
			fmt.Sprintf("%s training is required for %s events; currently qualified for: %s",
				v.programTitle(event.Program), event.ID, qualifiedList(gates.QualifiedEventTypes)))
	}

	// Rule 6: explicit blackout date
	day := in.Target.Date.Format(time.DateOnly)
	for _, blackout := range in.Availability.Blackouts {
		if blackout.Format(time.DateOnly) == day {
			b.block(IssueDateUnavailable, day, fmt.Sprintf("%s is marked unavailable", day))
			break
		}
	}

	// Rule 7: preferred weekdays are a soft constraint
	if len(in.Availability.Weekdays) > 0 && !containsWeekday(in.Availability.Weekdays, in.Target.Date.Weekday()) {
		weekday := in.Target.Date.Weekday().String()
		b.warn(IssueDayNotPreferred, strings.ToLower(weekday),
			fmt.Sprintf("%s is not one of the preferred volunteering days", weekday))
	}

	return b.build()
}

// checkInput reports every missing or unresolvable input at once.
func (v *Validator) checkInput(b *verdictBuilder, in Input) (catalog.EventTypeSpec, bool) {
	var event catalog.EventTypeSpec
	switch {
	case strings.TrimSpace(string(in.Role)) == "":
		b.block(IssueMissingRole, "role", "a role is required to register")
	default:
		if _, ok := v.catalog.Role(in.Role); !ok {
			b.block(IssueUnknownRole, string(in.Role), fmt.Sprintf("role %s is not in the role catalog", in.Role))
		}
	}
	if in.Availability == nil {
		b.block(IssueMissingAvailability, "availability", "availability is required to register")
	}
	switch {
	case in.Target == nil || in.Target.Date.IsZero():
		b.block(IssueMissingEvent, "event", "a target event with a date is required")
	default:
		spec, ok := v.catalog.EventType(in.Target.EventType)
		if !ok {
			b.block(IssueUnknownEventType, string(in.Target.EventType),
				fmt.Sprintf("event type %q is not in the event catalog", in.Target.EventType))
		}
		event = spec
	}
	return event, len(b.blocking) == 0
}

func (v *Validator) unitTitle(id models.UnitID) string {
	if u, ok := v.catalog.Unit(id); ok && u.Title != "" {
		return u.Title
	}
	return string(id)
}

func (v *Validator) programTitle(p models.Program) string {
	if spec, ok := v.catalog.Program(p); ok && spec.Title != "" {
		return spec.Title
	}
	return string(p)
}

func qualifiedList(programs []models.Program) string {
	if len(programs) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(programs))
	for _, p := range programs {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, ", ")
}

func containsWeekday(days []time.Weekday, d time.Weekday) bool {
	for _, day := range days {
		if day == d {
			return true
		}
	}
	return false
}

type verdictBuilder struct {
	blocking []Issue
	warnings []Issue
}

func (b *verdictBuilder) block(code IssueCode, requirement, message string) {
	b.blocking = append(b.blocking, Issue{Code: code, Requirement: requirement, Message: message})
}

func (b *verdictBuilder) warn(code IssueCode, requirement, message string) {
	b.warnings = append(b.warnings, Issue{Code: code, Requirement: requirement, Message: message})
}

func (b *verdictBuilder) build() Verdict {
	v := Verdict{
		CanRegister:    len(b.blocking) == 0,
		BlockingIssues: b.blocking,
		Warnings:       b.warnings,
	}
	if v.BlockingIssues == nil {
		v.BlockingIssues = []Issue{}
	}
	if v.Warnings == nil {
		v.Warnings = []Issue{}
	}
	return v
}
