package progression

import (
	"time"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/completion"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
)

// Section names of a checklist.
const (
	SectionOrientation = "orientation"
	SectionBaseline    = "baseline"
	SectionProgram     = "program"
	SectionRecommended = "recommended"
)

// ChecklistItem is one unit as the training UI shows it.
type ChecklistItem struct {
	UnitID   models.UnitID `json:"unit_id"`
	Title    string        `json:"title"`
	Tier     models.Tier   `json:"tier"`
	Format   models.Format `json:"format"`
	Blocking bool          `json:"blocking"`
	Done     bool          `json:"done"`
	// DueAt is set for recommended units once the deadline clock has started.
	DueAt   *time.Time `json:"due_at,omitempty"`
	Overdue bool       `json:"overdue"`
}

// ChecklistSection groups items by tier, or by program for tier 3.
type ChecklistSection struct {
	Name     string          `json:"name"`
	Program  models.Program  `json:"program,omitempty"`
	Complete bool            `json:"complete"`
	Items    []ChecklistItem `json:"items"`
}

// Checklist is the complete training picture of a person for a role.
type Checklist struct {
	Clearance    models.Clearance   `json:"clearance"`
	NextRequired []models.UnitID    `json:"next_required"`
	Sections     []ChecklistSection `json:"sections"`
}

// Checklist renders every section that applies to role. Core-cleared programs
// have no units and are not listed; their standing is in Clearance.
func (m *Machine) Checklist(record models.Record, role models.Role, now time.Time) Checklist {
	idx := m.resolver.Index(record)
	out := Checklist{
		Clearance:    m.clearance(idx, record, role),
		NextRequired: m.NextRequired(record, role),
	}

	out.Sections = append(out.Sections,
		m.section(SectionOrientation, models.ProgramNone, m.catalog.TierUnits(models.TierOrientation), idx),
		m.section(SectionBaseline, models.ProgramNone, m.catalog.TierUnits(models.TierBaseline), idx),
	)
	for _, p := range m.catalog.RelevantPrograms(role) {
		if spec, _ := m.catalog.Program(p); spec.ClearedByCore {
			continue
		}
		out.Sections = append(out.Sections, m.section(SectionProgram, p, m.catalog.Requirements(role, p), idx))
	}

	recommended := ChecklistSection{Name: SectionRecommended, Complete: true}
	for _, u := range m.recommendedFor(role) {
		item := ChecklistItem{
			UnitID: u.ID, Title: u.Title, Tier: u.Tier, Format: u.Format,
			Blocking: u.Blocking,
			Done:     idx.Has(u.ID),
		}
		if due, ok := dueAt(record, u); ok {
			item.DueAt = &due
			item.Overdue = !item.Done && now.After(due)
		}
		recommended.Complete = recommended.Complete && item.Done
		recommended.Items = append(recommended.Items, item)
	}
	out.Sections = append(out.Sections, recommended)
	return out
}

func (m *Machine) section(name string, program models.Program, ids []models.UnitID, idx completion.Completion) ChecklistSection {
	s := ChecklistSection{Name: name, Program: program, Complete: true}
	for _, id := range ids {
		u, _ := m.catalog.Unit(id)
		item := ChecklistItem{
			UnitID: id, Title: u.Title, Tier: u.Tier, Format: u.Format,
			Blocking: u.Blocking,
			Done:     idx.Has(id),
		}
		s.Complete = s.Complete && item.Done
		s.Items = append(s.Items, item)
	}
	return s
}

// Overdue returns the recommended units of role whose deadline has passed
// without completion. The clock starts at Core Volunteer approval, so nothing
// is overdue before promotion.
func (m *Machine) Overdue(record models.Record, role models.Role, now time.Time) []models.Unit {
	idx := m.resolver.Index(record)
	var out []models.Unit
	for _, u := range m.recommendedFor(role) {
		due, ok := dueAt(record, u)
		if ok && now.After(due) && !idx.Has(u.ID) {
			out = append(out, u)
		}
	}
	return out
}

// recommendedFor keeps universal tier 4 units and those tied to a program the
// role works.
func (m *Machine) recommendedFor(role models.Role) []models.Unit {
	relevant := make(map[models.Program]bool)
	for _, p := range m.catalog.RelevantPrograms(role) {
		relevant[p] = true
	}
	var out []models.Unit
	for _, u := range m.catalog.Recommended() {
		if u.Program == models.ProgramNone || relevant[u.Program] {
			out = append(out, u)
		}
	}
	return out
}

func dueAt(record models.Record, u models.Unit) (time.Time, bool) {
	if !u.HasDeadline() || record.CoreApprovedAt == nil {
		return time.Time{}, false
	}
	return record.CoreApprovedAt.AddDate(0, 0, u.DeadlineDays), true
}
