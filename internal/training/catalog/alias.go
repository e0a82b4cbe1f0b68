package catalog

import (
	"fmt"
	"sort"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
)

// AliasMap maps a retired unit id to the id that replaced it.
//
// Invariants (checked at catalog load):
//   - one retired id maps to exactly one current id
//   - no retired id is itself a current catalog id, so there are no chains
//   - every current id exists in the catalog
type AliasMap map[models.UnitID]models.UnitID

// Resolve returns the replacement for a retired id, or id unchanged.
func (m AliasMap) Resolve(id models.UnitID) models.UnitID {
	if current, ok := m[id]; ok {
		return current
	}
	return id
}

// RetiredFor lists the retired ids that resolve to current, sorted.
func (m AliasMap) RetiredFor(current models.UnitID) []models.UnitID {
	var out []models.UnitID
	for retired, target := range m {
		if target == current {
			out = append(out, retired)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func buildAliases(entries []AliasEntry, units map[models.UnitID]models.Unit) (AliasMap, []string) {
	var problems []string
	aliases := make(AliasMap, len(entries))
	for _, entry := range entries {
		retired := models.UnitID(entry.Retired)
		current := models.UnitID(entry.Current)
		switch {
		case retired == "" || current == "":
			problems = append(problems, "alias entries need both retired and current ids")
			continue
		case retired == current:
			problems = append(problems, fmt.Sprintf("alias %s maps to itself", retired))
			continue
		}
		if existing, dup := aliases[retired]; dup {
			problems = append(problems, fmt.Sprintf("alias %s maps to both %s and %s", retired, existing, current))
			continue
		}
		if _, live := units[retired]; live {
			problems = append(problems, fmt.Sprintf("alias %s is also a current catalog id", retired))
		}
		if _, ok := units[current]; !ok {
			problems = append(problems, fmt.Sprintf("alias %s targets unknown unit %s", retired, current))
		}
		aliases[retired] = current
	}
	for retired, current := range aliases {
		if _, chained := aliases[current]; chained {
			problems = append(problems, fmt.Sprintf("alias %s targets retired id %s", retired, current))
		}
	}
	sort.Strings(problems)
	return aliases, problems
}
