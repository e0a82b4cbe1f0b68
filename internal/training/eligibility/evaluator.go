// Package eligibility projects clearance onto per-context deployment gates.
package eligibility

import (
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/catalog"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/progression"
)

// Evaluate turns a clearance into gates. CanDeployCore and every core-cleared
// program follow Core standing; other program flags follow PROGRAM_CLEARED.
// QualifiedEventTypes lists cleared programs in the fixed program order.
func Evaluate(c models.Clearance) models.Gates {
	g := models.Gates{
		CanDeployCore:       c.CoreVolunteer(),
		QualifiedEventTypes: []models.Program{},
	}
	for _, p := range models.KnownPrograms() {
		if c.ProgramCleared(p) || (p == models.ProgramHealthFair && g.CanDeployCore) {
			g.Grant(p)
		}
	}
	return g
}

// Evaluator composes Evaluate with the progression machine.
type Evaluator struct {
	machine *progression.Machine
}

func New(machine *progression.Machine) *Evaluator {
	return &Evaluator{machine: machine}
}

// GatesFor derives the gates of one person for one role.
func (e *Evaluator) GatesFor(record models.Record, role models.Role) models.Gates {
	return Evaluate(e.machine.Stage(record, role))
}

// Catalog exposes the catalog used for evaluation.
func (e *Evaluator) Catalog() *catalog.Catalog { return e.machine.Catalog() }
