package models

import (
	"slices"
	"time"
)

// Record is a person's training record. Completed grows monotonically and holds
// raw ids as they were recorded, including retired ones.
type Record struct {
	Completed      []UnitID      `json:"completed_units"`
	CoreVolunteer  bool          `json:"core_volunteer"`
	CoreApprovedAt *time.Time    `json:"core_approved_at,omitempty"`
	Baseline       BaselineGates `json:"baseline_gates"`
}

// BaselineGates are initialized once, by Core Volunteer promotion, and persisted
// as a snapshot of the gates granted at approval. Gate derivation never reads
// them: current gates always come from the clearance of the completed units.
type BaselineGates struct {
	CanDeployCore bool `json:"can_deploy_core"`
	HealthFair    bool `json:"health_fair"`
}

// HasRaw reports whether id was recorded verbatim. It ignores aliases; use the
// completion resolver for "is this unit done".
func (r Record) HasRaw(id UnitID) bool {
	for _, completed := range r.Completed {
		if completed == id {
			return true
		}
	}
	return false
}

// WithCompleted returns a copy of the record with id appended. Appending an id
// that is already recorded verbatim returns an unchanged copy.
func (r Record) WithCompleted(id UnitID) Record {
	out := r.Clone()
	if r.HasRaw(id) {
		return out
	}
	out.Completed = append(out.Completed, id)
	return out
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (r Record) Clone() Record {
	out := r
	out.Completed = slices.Clone(r.Completed)
	if r.CoreApprovedAt != nil {
		t := *r.CoreApprovedAt
		out.CoreApprovedAt = &t
	}
	return out
}

// PromotionEvent is returned exactly once, by the promotion that first sets
// CoreVolunteer.
type PromotionEvent struct {
	ApprovedAt time.Time `json:"approved_at"`
	// Completed is the canonical set that satisfied tier 1 and tier 2.
	Completed []UnitID `json:"completed_units"`
}
