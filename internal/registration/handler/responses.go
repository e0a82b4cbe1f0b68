package handler

import (
	"time"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/registration"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
)

// ValidateResponse is the HTTP response for POST /registrations/validate.
type ValidateResponse struct {
	VolunteerID    string          `json:"volunteer_id"`
	EventID        string          `json:"event_id,omitempty"`
	EventType      string          `json:"event_type,omitempty"`
	EventDate      string          `json:"event_date,omitempty"`
	CanRegister    bool            `json:"can_register"`
	BlockingIssues []IssueResponse `json:"blocking_issues"`
	Warnings       []IssueResponse `json:"warnings"`
	EvaluatedAt    time.Time       `json:"evaluated_at"`
}

type IssueResponse struct {
	Code        string `json:"code"`
	Requirement string `json:"requirement"`
	Message     string `json:"message"`
}

// FromVerdict converts a verdict to an HTTP response.
func FromVerdict(volunteerID id.VolunteerID, target *registration.Target, verdict registration.Verdict, evaluatedAt time.Time) *ValidateResponse {
	resp := &ValidateResponse{
		VolunteerID:    volunteerID.String(),
		CanRegister:    verdict.CanRegister,
		BlockingIssues: fromIssues(verdict.BlockingIssues),
		Warnings:       fromIssues(verdict.Warnings),
		EvaluatedAt:    evaluatedAt,
	}
	if target != nil {
		if !target.EventID.IsNil() {
			resp.EventID = target.EventID.String()
		}
		resp.EventType = string(target.EventType)
		if !target.Date.IsZero() {
			resp.EventDate = target.Date.Format(time.DateOnly)
		}
	}
	return resp
}

func fromIssues(issues []registration.Issue) []IssueResponse {
	out := make([]IssueResponse, 0, len(issues))
	for _, issue := range issues {
		out = append(out, IssueResponse{
			Code:        string(issue.Code),
			Requirement: issue.Requirement,
			Message:     issue.Message,
		})
	}
	return out
}
