// Package catalog holds the immutable Module Catalog: training units by tier,
// program requirement lists, role addenda, event types and the legacy alias table.
//
// A Catalog is assembled once from declarative tables and never mutated, so it
// is safe to share across goroutines. Construction runs the integrity check and
// refuses to return a catalog with dangling references.
package catalog

import (
	"sort"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
)

// ProgramSpec is one program's requirement table.
type ProgramSpec struct {
	ID    models.Program  `json:"id"`
	Title string          `json:"title"`
	Units []models.UnitID `json:"units"`
	// ClearedByCore programs have no units of their own; Core standing clears them.
	ClearedByCore bool `json:"cleared_by_core"`
}

// RoleSpec assigns programs to a role, plus role-specific addendum units.
type RoleSpec struct {
	ID       models.Role                        `json:"id"`
	Title    string                             `json:"title"`
	Programs []models.Program                   `json:"programs"`
	Addenda  map[models.Program][]models.UnitID `json:"addenda,omitempty"`
}

// EventTypeSpec maps an event category to the program gate it needs.
type EventTypeSpec struct {
	ID      models.EventType `json:"id"`
	Title   string           `json:"title"`
	Program models.Program   `json:"program,omitempty"`
}

// Catalog is the validated, read-only rule data.
type Catalog struct {
	version      int
	units        map[models.UnitID]models.Unit
	order        []models.UnitID
	rank         map[models.UnitID]int
	aliases      AliasMap
	byTier       map[models.Tier][]models.UnitID
	privacy      models.UnitID
	programs     map[models.Program]ProgramSpec
	programOrder []models.Program
	roles        map[models.Role]RoleSpec
	roleOrder    []models.Role
	events       map[models.EventType]EventTypeSpec
	eventOrder   []models.EventType
}

// Version is the table version declared by the source file.
func (c *Catalog) Version() int { return c.version }

// Unit looks up a current unit by canonical id.
func (c *Catalog) Unit(id models.UnitID) (models.Unit, bool) {
	u, ok := c.units[id]
	return u, ok
}

// Units returns every unit in declaration order.
func (c *Catalog) Units() []models.Unit {
	out := make([]models.Unit, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.units[id])
	}
	return out
}

// Resolve maps id to its canonical id. Ids outside the alias table come back
// unchanged. The bool is false when the canonical id is not a catalog unit.
func (c *Catalog) Resolve(id models.UnitID) (models.UnitID, bool) {
	canonical := c.aliases.Resolve(id)
	_, ok := c.units[canonical]
	return canonical, ok
}

// IsRetired reports whether id is a legacy alias.
func (c *Catalog) IsRetired(id models.UnitID) bool {
	_, ok := c.aliases[id]
	return ok
}

// RetiredFor lists the historical ids of a current unit.
func (c *Catalog) RetiredFor(id models.UnitID) []models.UnitID {
	return c.aliases.RetiredFor(id)
}

// TierUnits returns the units of one tier in declaration order.
func (c *Catalog) TierUnits(t models.Tier) []models.UnitID {
	return append([]models.UnitID(nil), c.byTier[t]...)
}

// PrivacyUnit is the baseline privacy/data-handling unit. It is always required
// at registration, on top of being part of tier 2.
func (c *Catalog) PrivacyUnit() models.UnitID { return c.privacy }

// Program returns one program's table.
func (c *Catalog) Program(p models.Program) (ProgramSpec, bool) {
	spec, ok := c.programs[p]
	return spec, ok
}

// Programs returns every program in declaration order.
func (c *Catalog) Programs() []ProgramSpec {
	out := make([]ProgramSpec, 0, len(c.programOrder))
	for _, p := range c.programOrder {
		out = append(out, c.programs[p])
	}
	return out
}

// Role returns one role's table.
func (c *Catalog) Role(r models.Role) (RoleSpec, bool) {
	spec, ok := c.roles[r]
	return spec, ok
}

// Roles returns every role in declaration order.
func (c *Catalog) Roles() []RoleSpec {
	out := make([]RoleSpec, 0, len(c.roleOrder))
	for _, r := range c.roleOrder {
		out = append(out, c.roles[r])
	}
	return out
}

// EventType returns one event type's table.
func (c *Catalog) EventType(e models.EventType) (EventTypeSpec, bool) {
	spec, ok := c.events[e]
	return spec, ok
}

// EventTypes returns every event type in declaration order.
func (c *Catalog) EventTypes() []EventTypeSpec {
	out := make([]EventTypeSpec, 0, len(c.eventOrder))
	for _, e := range c.eventOrder {
		out = append(out, c.events[e])
	}
	return out
}

// RelevantPrograms lists the programs projected for a role: every
// core-cleared program, then the role's own programs, in catalog order.
// An unknown role gets only the core-cleared programs.
func (c *Catalog) RelevantPrograms(role models.Role) []models.Program {
	spec := c.roles[role]
	assigned := make(map[models.Program]bool, len(spec.Programs))
	for _, p := range spec.Programs {
		assigned[p] = true
	}
	var out []models.Program
	for _, p := range c.programOrder {
		if c.programs[p].ClearedByCore || assigned[p] {
			out = append(out, p)
		}
	}
	return out
}

// Requirements returns the units a role must complete to clear a program:
// the program's own units plus the role's addendum for it, in catalog order.
func (c *Catalog) Requirements(role models.Role, program models.Program) []models.UnitID {
	spec, ok := c.programs[program]
	if !ok {
		return nil
	}
	ids := append([]models.UnitID(nil), spec.Units...)
	if r, ok := c.roles[role]; ok {
		ids = append(ids, r.Addenda[program]...)
	}
	return c.SortUnits(ids)
}

// Recommended returns every deadline-tracked (non-blocking) unit.
func (c *Catalog) Recommended() []models.Unit {
	var out []models.Unit
	for _, id := range c.order {
		if u := c.units[id]; !u.Blocking {
			out = append(out, u)
		}
	}
	return out
}

// SortUnits dedupes ids and orders them by catalog declaration. Ids that are not
// catalog units sort last, in input order.
func (c *Catalog) SortUnits(ids []models.UnitID) []models.UnitID {
	seen := make(map[models.UnitID]bool, len(ids))
	known := make([]models.UnitID, 0, len(ids))
	var unknown []models.UnitID
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := c.rank[id]; ok {
			known = append(known, id)
		} else {
			unknown = append(unknown, id)
		}
	}
	sort.SliceStable(known, func(i, j int) bool { return c.rank[known[i]] < c.rank[known[j]] })
	return append(known, unknown...)
}
