package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	vmodels "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/models"
	dErrors "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain-errors"
	dstrings "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/strings"
)

const (
	maxUnitIDLength = 128
	maxImportRows   = 1000
)

var weekdaysByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// CompleteUnitRequest is the body for POST /volunteers/{id}/completions.
type CompleteUnitRequest struct {
	UnitID string `json:"unit_id"`
}

func (r *CompleteUnitRequest) Normalize() {
	if r != nil {
		r.UnitID = strings.TrimSpace(r.UnitID)
	}
}

func (r *CompleteUnitRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.UnitID == "" {
		return dErrors.New(dErrors.CodeValidation, "unit_id is required")
	}
	if len(r.UnitID) > maxUnitIDLength {
		return dErrors.New(dErrors.CodeValidation, "unit_id is too long")
	}
	return nil
}

// ImportRequest is the body for POST /admin/volunteers/import.
type ImportRequest struct {
	Volunteers []ImportVolunteer `json:"volunteers"`

	// Parsed values (populated by Validate)
	parsed []vmodels.ImportRecord
}

// ImportVolunteer is one row. Weekday names are case-insensitive and blackout
// dates are YYYY-MM-DD.
type ImportVolunteer struct {
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Role         string              `json:"role"`
	Availability AvailabilityRequest `json:"availability"`
}

type AvailabilityRequest struct {
	Weekdays      []string `json:"weekdays"`
	BlackoutDates []string `json:"blackout_dates"`
}

func (r *ImportRequest) Normalize() {
	if r == nil {
		return
	}
	for i := range r.Volunteers {
		v := &r.Volunteers[i]
		v.Name = strings.TrimSpace(v.Name)
		v.Email = strings.TrimSpace(v.Email)
		v.Role = strings.ToLower(strings.TrimSpace(v.Role))
		v.Availability.Weekdays = dstrings.DedupeAndTrimLower(v.Availability.Weekdays)
	}
}

// Validate checks the batch size and parses availability. Row-level domain
// problems such as a bad email or unknown role are left to the service, which
// reports them per row.
func (r *ImportRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Volunteers) == 0 {
		return dErrors.New(dErrors.CodeValidation, "volunteers must not be empty")
	}
	if len(r.Volunteers) > maxImportRows {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("at most %d volunteers per import", maxImportRows))
	}

	parsed := make([]vmodels.ImportRecord, 0, len(r.Volunteers))
	for i, v := range r.Volunteers {
		availability, err := parseAvailability(v.Availability)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("volunteers[%d]: %s", i, err.Error()))
		}
		parsed = append(parsed, vmodels.ImportRecord{
			Name:         v.Name,
			Email:        v.Email,
			Role:         models.Role(v.Role),
			Availability: availability,
		})
	}
	r.parsed = parsed
	return nil
}

// ParsedRecords returns the rows in request order.
func (r *ImportRequest) ParsedRecords() []vmodels.ImportRecord {
	return r.parsed
}

func parseAvailability(in AvailabilityRequest) (vmodels.Availability, error) {
	var out vmodels.Availability
	for _, name := range in.Weekdays {
		day, ok := weekdaysByName[name]
		if !ok {
			return vmodels.Availability{}, fmt.Errorf("unknown weekday %q", name)
		}
		out.Weekdays = append(out.Weekdays, day)
	}
	for _, raw := range in.BlackoutDates {
		date, err := time.Parse(time.DateOnly, strings.TrimSpace(raw))
		if err != nil {
			return vmodels.Availability{}, fmt.Errorf("blackout date %q must be YYYY-MM-DD", raw)
		}
		out.Blackouts = append(out.Blackouts, date)
	}
	return out, nil
}
