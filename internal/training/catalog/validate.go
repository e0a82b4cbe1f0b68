package catalog

import (
	"fmt"
	"strings"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	dErrors "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain-errors"
)

// ValidationError lists every integrity problem found in a set of tables.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalog integrity check failed (%d problems): %s",
		len(e.Problems), strings.Join(e.Problems, "; "))
}

// builder collects every problem rather than stopping at the first.
type builder struct {
	cat      *Catalog
	problems []string
}

func (b *builder) fail(format string, args ...any) {
	b.problems = append(b.problems, fmt.Sprintf(format, args...))
}

// New assembles and validates a catalog from tables.
func New(tables Tables) (*Catalog, error) {
	b := &builder{cat: &Catalog{
		version:  tables.Version,
		units:    make(map[models.UnitID]models.Unit),
		rank:     make(map[models.UnitID]int),
		byTier:   make(map[models.Tier][]models.UnitID),
		programs: make(map[models.Program]ProgramSpec),
		roles:    make(map[models.Role]RoleSpec),
		events:   make(map[models.EventType]EventTypeSpec),
	}}

	b.addTiers(tables.Tiers)
	b.addPrograms(tables.Programs)
	b.addRoles(tables.Roles)
	b.addPrivacyUnit(tables.PrivacyUnit)
	b.addEventTypes(tables.EventTypes)

	aliases, aliasProblems := buildAliases(tables.Aliases, b.cat.units)
	b.cat.aliases = aliases
	b.problems = append(b.problems, aliasProblems...)

	if len(b.problems) > 0 {
		return nil, dErrors.Wrap(&ValidationError{Problems: b.problems}, dErrors.CodeInvalidConfig, "invalid training catalog")
	}
	return b.cat, nil
}

func (b *builder) addTiers(tiers []TierTable) {
	seen := make(map[int]bool)
	for _, table := range tiers {
		tier := models.Tier(table.Tier)
		switch {
		case !tier.IsValid():
			b.fail("tier %d is not one of 1-4", table.Tier)
			continue
		case tier == models.TierProgram:
			b.fail("tier 3 units belong under programs, not tiers")
			continue
		case seen[table.Tier]:
			b.fail("tier %d declared twice", table.Tier)
			continue
		}
		seen[table.Tier] = true
		for _, entry := range table.Units {
			program := models.Program(entry.Program)
			if tier != models.TierRecommended && program != models.ProgramNone {
				b.fail("unit %s: tier %d units cannot carry a program", entry.ID, tier)
			}
			b.addUnit(entry, tier, program)
		}
	}
}

func (b *builder) addPrograms(programs []ProgramTable) {
	for _, table := range programs {
		id := models.Program(table.ID)
		if id == models.ProgramNone || !id.IsValid() {
			b.fail("program %q is not a known program tag", table.ID)
			continue
		}
		if _, dup := b.cat.programs[id]; dup {
			b.fail("program %s declared twice", id)
			continue
		}
		spec := ProgramSpec{ID: id, Title: table.Title, ClearedByCore: table.ClearedByCore}
		if table.ClearedByCore && len(table.Units) > 0 {
			b.fail("program %s is cleared by core standing and cannot list units", id)
		}
		if !table.ClearedByCore && len(table.Units) == 0 {
			b.fail("program %s has no units", id)
		}
		for _, entry := range table.Units {
			if entry.Program != "" && entry.Program != table.ID {
				b.fail("unit %s: listed under %s but tagged %s", entry.ID, id, entry.Program)
			}
			if u, ok := b.addUnit(entry, models.TierProgram, id); ok {
				spec.Units = append(spec.Units, u.ID)
			}
		}
		b.cat.programs[id] = spec
		b.cat.programOrder = append(b.cat.programOrder, id)
	}
}

func (b *builder) addRoles(roles []RoleTable) {
	for _, table := range roles {
		id := models.Role(strings.TrimSpace(table.ID))
		if id == "" {
			b.fail("role with empty id")
			continue
		}
		if _, dup := b.cat.roles[id]; dup {
			b.fail("role %s declared twice", id)
			continue
		}
		spec := RoleSpec{ID: id, Title: table.Title}
		assigned := make(map[models.Program]bool)
		for _, raw := range table.Programs {
			p := models.Program(raw)
			if _, ok := b.cat.programs[p]; !ok {
				b.fail("role %s references unknown program %q", id, raw)
				continue
			}
			if b.cat.programs[p].ClearedByCore {
				b.fail("role %s lists %s, which every core volunteer already holds", id, p)
				continue
			}
			if !assigned[p] {
				assigned[p] = true
				spec.Programs = append(spec.Programs, p)
			}
		}
		for _, addendum := range table.Addenda {
			p := models.Program(addendum.Program)
			if !assigned[p] {
				b.fail("role %s has an addendum for %q, which it is not assigned", id, addendum.Program)
				continue
			}
			for _, entry := range addendum.Units {
				if u, ok := b.addUnit(entry, models.TierProgram, p); ok {
					if spec.Addenda == nil {
						spec.Addenda = make(map[models.Program][]models.UnitID)
					}
					spec.Addenda[p] = append(spec.Addenda[p], u.ID)
				}
			}
		}
		b.cat.roles[id] = spec
		b.cat.roleOrder = append(b.cat.roleOrder, id)
	}
}

func (b *builder) addPrivacyUnit(raw string) {
	id := models.UnitID(raw)
	u, ok := b.cat.units[id]
	switch {
	case raw == "":
		b.fail("privacy_unit is required")
	case !ok:
		b.fail("privacy_unit %s is not a catalog unit", id)
	case u.Tier != models.TierBaseline:
		b.fail("privacy_unit %s must be tier 2, got tier %d", id, u.Tier)
	default:
		b.cat.privacy = id
	}
}

func (b *builder) addEventTypes(entries []EventTypeEntry) {
	for _, entry := range entries {
		id := models.EventType(strings.TrimSpace(entry.ID))
		if id == "" {
			b.fail("event type with empty id")
			continue
		}
		if _, dup := b.cat.events[id]; dup {
			b.fail("event type %s declared twice", id)
			continue
		}
		p := models.Program(entry.Program)
		if p != models.ProgramNone {
			if _, ok := b.cat.programs[p]; !ok {
				b.fail("event type %s references unknown program %q", id, entry.Program)
				continue
			}
		}
		b.cat.events[id] = EventTypeSpec{ID: id, Title: entry.Title, Program: p}
		b.cat.eventOrder = append(b.cat.eventOrder, id)
	}
}

func (b *builder) addUnit(entry UnitEntry, tier models.Tier, program models.Program) (models.Unit, bool) {
	id, err := models.ParseUnitID(entry.ID)
	if err != nil {
		b.fail("unit %q: %v", entry.ID, err)
		return models.Unit{}, false
	}
	if _, dup := b.cat.units[id]; dup {
		b.fail("unit %s declared twice", id)
		return models.Unit{}, false
	}
	if program != models.ProgramNone && !program.IsValid() {
		b.fail("unit %s: unknown program %q", id, program)
		return models.Unit{}, false
	}

	format := models.Format(entry.Format)
	if !format.IsValid() {
		b.fail("unit %s: unknown format %q", id, entry.Format)
	}

	blocking := tier != models.TierRecommended
	if entry.Blocking != nil {
		blocking = *entry.Blocking
	}
	switch {
	case blocking && entry.DeadlineDays != 0:
		b.fail("unit %s: blocking units cannot carry a deadline", id)
	case !blocking && entry.DeadlineDays <= 0:
		b.fail("unit %s: non-blocking units need a positive deadline_days", id)
	case !blocking && tier != models.TierRecommended:
		b.fail("unit %s: only tier 4 units may be non-blocking", id)
	}

	u := models.Unit{
		ID:           id,
		Title:        strings.TrimSpace(entry.Title),
		Tier:         tier,
		Format:       format,
		Program:      program,
		Blocking:     blocking,
		DeadlineDays: entry.DeadlineDays,
	}
	b.cat.units[id] = u
	b.cat.rank[id] = len(b.cat.order)
	b.cat.order = append(b.cat.order, id)
	b.cat.byTier[tier] = append(b.cat.byTier[tier], id)
	return u, true
}
