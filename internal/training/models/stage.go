package models

// Stage is the universal clearance stage, derived from completed units.
type Stage string

const (
	StageNew           Stage = "NEW"
	StageTier1Pending  Stage = "TIER1_PENDING"
	StageTier1Complete Stage = "TIER1_COMPLETE"
	StageTier2Pending  Stage = "TIER2_PENDING"
	StageCoreVolunteer Stage = "CORE_VOLUNTEER"
)

// ProgramStage is the per-program projection layered on the universal stage.
type ProgramStage string

const (
	ProgramStagePending ProgramStage = "PROGRAM_PENDING"
	ProgramStageCleared ProgramStage = "PROGRAM_CLEARED"
)

// Clearance is the full derived standing of one person for one role.
// A person can be CORE_VOLUNTEER and PROGRAM_PENDING for some programs at once.
type Clearance struct {
	Universal Stage                    `json:"stage"`
	Programs  map[Program]ProgramStage `json:"programs"`
	// Promoted is true once Core Volunteer promotion has been recorded. It never
	// reverts, even if the catalog later adds baseline units.
	Promoted bool `json:"promoted"`
}

// CoreVolunteer reports Core standing: the derived stage or a recorded promotion.
func (c Clearance) CoreVolunteer() bool {
	return c.Promoted || c.Universal == StageCoreVolunteer
}

// ProgramCleared reports whether the program is cleared in this projection.
func (c Clearance) ProgramCleared(p Program) bool {
	return c.Programs[p] == ProgramStageCleared
}
