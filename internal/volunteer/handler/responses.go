package handler

import (
	"time"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/progression"
	vmodels "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/models"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
)

// ClearanceResponse is the HTTP response for GET /volunteers/{id}/clearance.
type ClearanceResponse struct {
	VolunteerID     string                         `json:"volunteer_id"`
	Name            string                         `json:"name"`
	Role            string                         `json:"role"`
	Stage           string                         `json:"stage"`
	CoreVolunteer   bool                           `json:"core_volunteer"`
	CoreApprovedAt  *time.Time                     `json:"core_approved_at,omitempty"`
	Programs        map[string]string              `json:"programs"`
	NextRequired    []string                       `json:"next_required"`
	Checklist       []progression.ChecklistSection `json:"checklist"`
	Gates           GatesBody                      `json:"gates"`
	BackgroundCheck string                         `json:"background_check"`
	EvaluatedAt     time.Time                      `json:"evaluated_at"`
}

// GatesBody mirrors the deployment flags.
type GatesBody struct {
	CanDeployCore        bool     `json:"can_deploy_core"`
	StreetMedicine       bool     `json:"street_medicine_gate"`
	Clinic               bool     `json:"clinic_gate"`
	HealthFair           bool     `json:"health_fair_gate"`
	NaloxoneDistribution bool     `json:"naloxone_distribution"`
	OraQuickDistribution bool     `json:"oraquick_distribution"`
	QualifiedEventTypes  []string `json:"qualified_event_types"`
}

// GatesResponse is the HTTP response for GET /volunteers/{id}/gates.
type GatesResponse struct {
	VolunteerID string `json:"volunteer_id"`
	GatesBody
}

// CompletionResponse is the HTTP response for POST /volunteers/{id}/completions.
type CompletionResponse struct {
	VolunteerID     string             `json:"volunteer_id"`
	UnitID          string             `json:"unit_id"`
	AlreadyComplete bool               `json:"already_complete"`
	Promoted        bool               `json:"promoted"`
	Promotion       *PromotionResponse `json:"promotion,omitempty"`
	CompletedUnits  []string           `json:"completed_units"`
	Version         int64              `json:"version"`
}

type PromotionResponse struct {
	ApprovedAt     time.Time `json:"approved_at"`
	CompletedUnits []string  `json:"completed_units"`
}

// ImportResponse is the HTTP response for POST /admin/volunteers/import.
type ImportResponse struct {
	Imported int               `json:"imported"`
	Failed   int               `json:"failed"`
	Outcomes []OutcomeResponse `json:"outcomes"`
}

type OutcomeResponse struct {
	Index       int    `json:"index"`
	Email       string `json:"email"`
	VolunteerID string `json:"volunteer_id,omitempty"`
	Error       string `json:"error,omitempty"`
	Code        string `json:"code,omitempty"`
}

// FromClearance converts a clearance view to an HTTP response.
func FromClearance(view *vmodels.ClearanceView, evaluatedAt time.Time) *ClearanceResponse {
	clearance := view.Checklist.Clearance
	programs := make(map[string]string, len(clearance.Programs))
	for p, stage := range clearance.Programs {
		programs[string(p)] = string(stage)
	}
	checklist := view.Checklist.Sections
	if checklist == nil {
		checklist = []progression.ChecklistSection{}
	}
	return &ClearanceResponse{
		VolunteerID:     view.Volunteer.ID.String(),
		Name:            view.Volunteer.Name,
		Role:            string(view.Volunteer.Role),
		Stage:           string(clearance.Universal),
		CoreVolunteer:   clearance.CoreVolunteer(),
		CoreApprovedAt:  view.Volunteer.Training.CoreApprovedAt,
		Programs:        programs,
		NextRequired:    unitStrings(view.Checklist.NextRequired),
		Checklist:       checklist,
		Gates:           fromGates(view.Gates),
		BackgroundCheck: string(view.Volunteer.BackgroundCheck),
		EvaluatedAt:     evaluatedAt,
	}
}

// FromGates converts gates to an HTTP response.
func FromGates(volunteerID id.VolunteerID, gates models.Gates) *GatesResponse {
	return &GatesResponse{
		VolunteerID: volunteerID.String(),
		GatesBody:   fromGates(gates),
	}
}

// FromCompletion converts a completion result to an HTTP response.
func FromCompletion(result *vmodels.CompletionResult) *CompletionResponse {
	resp := &CompletionResponse{
		VolunteerID:     result.Volunteer.ID.String(),
		UnitID:          string(result.UnitID),
		AlreadyComplete: result.AlreadyComplete,
		Promoted:        result.Promotion != nil,
		CompletedUnits:  unitStrings(result.Volunteer.Training.Completed),
		Version:         result.Volunteer.Version,
	}
	if result.Promotion != nil {
		resp.Promotion = &PromotionResponse{
			ApprovedAt:     result.Promotion.ApprovedAt,
			CompletedUnits: unitStrings(result.Promotion.Completed),
		}
	}
	return resp
}

// FromImport converts an import result to an HTTP response.
func FromImport(result *vmodels.ImportResult) *ImportResponse {
	outcomes := make([]OutcomeResponse, 0, len(result.Outcomes))
	for _, o := range result.Outcomes {
		out := OutcomeResponse{
			Index: o.Index,
			Email: o.Email,
			Error: o.Error,
			Code:  string(o.Code),
		}
		if !o.VolunteerID.IsNil() {
			out.VolunteerID = o.VolunteerID.String()
		}
		outcomes = append(outcomes, out)
	}
	return &ImportResponse{
		Imported: result.Imported,
		Failed:   result.Failed,
		Outcomes: outcomes,
	}
}

func fromGates(g models.Gates) GatesBody {
	qualified := make([]string, 0, len(g.QualifiedEventTypes))
	for _, p := range g.QualifiedEventTypes {
		qualified = append(qualified, string(p))
	}
	return GatesBody{
		CanDeployCore:        g.CanDeployCore,
		StreetMedicine:       g.StreetMedicine,
		Clinic:               g.Clinic,
		HealthFair:           g.HealthFair,
		NaloxoneDistribution: g.NaloxoneDistribution,
		OraQuickDistribution: g.OraQuickDistribution,
		QualifiedEventTypes:  qualified,
	}
}

func unitStrings(ids []models.UnitID) []string {
	out := make([]string, 0, len(ids))
	for _, u := range ids {
		out = append(out, string(u))
	}
	return out
}
