package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	dErrors "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain-errors"
)

func boolPtr(b bool) *bool { return &b }

// minimalTables is the smallest set that passes the integrity check.
func minimalTables() Tables {
	return Tables{
		Version:     1,
		PrivacyUnit: "privacy",
		Tiers: []TierTable{
			{Tier: 1, Units: []UnitEntry{{ID: "orientation", Title: "Orientation", Format: "video"}}},
			{Tier: 2, Units: []UnitEntry{
				{ID: "privacy", Title: "Privacy", Format: "quiz"},
				{ID: "baseline", Title: "Baseline", Format: "reading"},
			}},
			{Tier: 4, Units: []UnitEntry{{ID: "recommended", Title: "Recommended", Format: "video", DeadlineDays: 30}}},
		},
		Programs: []ProgramTable{
			{ID: "street_medicine", Title: "Street Medicine", Units: []UnitEntry{{ID: "sm_safety", Format: "in_person"}}},
			{ID: "health_fair", Title: "Health Fair", ClearedByCore: true},
		},
		Roles: []RoleTable{
			{ID: "outreach", Programs: []string{"street_medicine"}, Addenda: []AddendumList{
				{Program: "street_medicine", Units: []UnitEntry{{ID: "sm_lead", Format: "in_person"}}},
			}},
			{ID: "office"},
		},
		Aliases: []AliasEntry{{Retired: "old_privacy", Current: "privacy"}},
		EventTypes: []EventTypeEntry{
			{ID: "outreach_shift", Program: "street_medicine"},
			{ID: "tabling"},
		},
	}
}

func problemsOf(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidConfig))
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr), "expected ValidationError, got %T", err)
	return vErr.Problems
}

func TestLoadDefault(t *testing.T) {
	cat, err := LoadDefault()
	require.NoError(t, err)

	assert.Equal(t, models.UnitID("hipaa_privacy"), cat.PrivacyUnit())
	assert.NotEmpty(t, cat.TierUnits(models.TierOrientation))
	assert.NotEmpty(t, cat.TierUnits(models.TierBaseline))
	assert.Contains(t, cat.TierUnits(models.TierBaseline), cat.PrivacyUnit())

	for _, p := range models.KnownPrograms() {
		_, ok := cat.Program(p)
		assert.True(t, ok, "program %s missing from default catalog", p)
	}
	for _, u := range cat.Recommended() {
		assert.Equal(t, models.TierRecommended, u.Tier)
		assert.True(t, u.HasDeadline())
	}
}

func TestResolve(t *testing.T) {
	cat, err := New(minimalTables())
	require.NoError(t, err)

	t.Run("current id is unchanged", func(t *testing.T) {
		id, ok := cat.Resolve("privacy")
		assert.True(t, ok)
		assert.Equal(t, models.UnitID("privacy"), id)
	})
	t.Run("retired id maps to replacement", func(t *testing.T) {
		id, ok := cat.Resolve("old_privacy")
		assert.True(t, ok)
		assert.Equal(t, models.UnitID("privacy"), id)
		assert.True(t, cat.IsRetired("old_privacy"))
		assert.Equal(t, []models.UnitID{"old_privacy"}, cat.RetiredFor("privacy"))
	})
	t.Run("unknown id is flagged", func(t *testing.T) {
		id, ok := cat.Resolve("never_existed")
		assert.False(t, ok)
		assert.Equal(t, models.UnitID("never_existed"), id)
	})
}

func TestResolveIsIdempotent(t *testing.T) {
	cat, err := LoadDefault()
	require.NoError(t, err)

	var ids []models.UnitID
	for _, u := range cat.Units() {
		ids = append(ids, u.ID)
		ids = append(ids, cat.RetiredFor(u.ID)...)
	}
	ids = append(ids, "not_a_unit", "")

	for _, id := range ids {
		once, okOnce := cat.Resolve(id)
		twice, okTwice := cat.Resolve(once)
		assert.Equal(t, once, twice, "resolve(resolve(%q))", id)
		assert.Equal(t, okOnce, okTwice, "resolve(%q) known flag", id)
	}
}

func TestRequirementsAndPrograms(t *testing.T) {
	cat, err := New(minimalTables())
	require.NoError(t, err)

	assert.Equal(t, []models.UnitID{"sm_safety", "sm_lead"}, cat.Requirements("outreach", models.ProgramStreetMedicine))
	assert.Equal(t, []models.UnitID{"sm_safety"}, cat.Requirements("office", models.ProgramStreetMedicine))
	assert.Empty(t, cat.Requirements("outreach", models.ProgramHealthFair))
	assert.Nil(t, cat.Requirements("outreach", models.ProgramClinic))

	assert.Equal(t, []models.Program{models.ProgramStreetMedicine, models.ProgramHealthFair}, cat.RelevantPrograms("outreach"))
	assert.Equal(t, []models.Program{models.ProgramHealthFair}, cat.RelevantPrograms("office"))
	assert.Equal(t, []models.Program{models.ProgramHealthFair}, cat.RelevantPrograms("unknown"))

	ev, ok := cat.EventType("tabling")
	require.True(t, ok)
	assert.Equal(t, models.ProgramNone, ev.Program)

	sm, ok := cat.Unit("sm_lead")
	require.True(t, ok)
	assert.Equal(t, models.TierProgram, sm.Tier)
	assert.Equal(t, models.ProgramStreetMedicine, sm.Program)
	assert.True(t, sm.Blocking)

	rec, ok := cat.Unit("recommended")
	require.True(t, ok)
	assert.False(t, rec.Blocking)
}

func TestSortUnits(t *testing.T) {
	cat, err := New(minimalTables())
	require.NoError(t, err)

	got := cat.SortUnits([]models.UnitID{"zzz", "baseline", "orientation", "baseline", "aaa"})
	assert.Equal(t, []models.UnitID{"orientation", "baseline", "zzz", "aaa"}, got)
}

func TestIntegrityCheck(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Tables)
		problem string
	}{
		{
			name:    "alias target missing",
			mutate:  func(tb *Tables) { tb.Aliases = append(tb.Aliases, AliasEntry{Retired: "x", Current: "ghost"}) },
			problem: "alias x targets unknown unit ghost",
		},
		{
			name: "alias chain",
			mutate: func(tb *Tables) {
				tb.Aliases = append(tb.Aliases, AliasEntry{Retired: "older_privacy", Current: "old_privacy"})
			},
			problem: "alias older_privacy targets retired id old_privacy",
		},
		{
			name:    "alias key is a live id",
			mutate:  func(tb *Tables) { tb.Aliases = append(tb.Aliases, AliasEntry{Retired: "baseline", Current: "privacy"}) },
			problem: "alias baseline is also a current catalog id",
		},
		{
			name: "alias mapped twice",
			mutate: func(tb *Tables) {
				tb.Aliases = append(tb.Aliases, AliasEntry{Retired: "old_privacy", Current: "baseline"})
			},
			problem: "alias old_privacy maps to both privacy and baseline",
		},
		{
			name:    "privacy unit missing",
			mutate:  func(tb *Tables) { tb.PrivacyUnit = "ghost" },
			problem: "privacy_unit ghost is not a catalog unit",
		},
		{
			name:    "privacy unit wrong tier",
			mutate:  func(tb *Tables) { tb.PrivacyUnit = "orientation" },
			problem: "privacy_unit orientation must be tier 2, got tier 1",
		},
		{
			name: "duplicate unit",
			mutate: func(tb *Tables) {
				tb.Tiers[0].Units = append(tb.Tiers[0].Units, UnitEntry{ID: "baseline", Format: "video"})
			},
			problem: "unit baseline declared twice",
		},
		{
			name:    "invalid tier",
			mutate:  func(tb *Tables) { tb.Tiers = append(tb.Tiers, TierTable{Tier: 7}) },
			problem: "tier 7 is not one of 1-4",
		},
		{
			name:    "unknown format",
			mutate:  func(tb *Tables) { tb.Tiers[0].Units[0].Format = "hologram" },
			problem: `unit orientation: unknown format "hologram"`,
		},
		{
			name:    "blocking with deadline",
			mutate:  func(tb *Tables) { tb.Tiers[1].Units[1].DeadlineDays = 10 },
			problem: "unit baseline: blocking units cannot carry a deadline",
		},
		{
			name:    "recommended without deadline",
			mutate:  func(tb *Tables) { tb.Tiers[2].Units[0].DeadlineDays = 0 },
			problem: "unit recommended: non-blocking units need a positive deadline_days",
		},
		{
			name: "non-blocking outside tier 4",
			mutate: func(tb *Tables) {
				tb.Tiers[1].Units[1].Blocking = boolPtr(false)
				tb.Tiers[1].Units[1].DeadlineDays = 30
			},
			problem: "unit baseline: only tier 4 units may be non-blocking",
		},
		{
			name:    "unknown program tag",
			mutate:  func(tb *Tables) { tb.Programs = append(tb.Programs, ProgramTable{ID: "juggling"}) },
			problem: `program "juggling" is not a known program tag`,
		},
		{
			name:    "role references unknown program",
			mutate:  func(tb *Tables) { tb.Roles[1].Programs = []string{"clinic"} },
			problem: `role office references unknown program "clinic"`,
		},
		{
			name: "addendum for unassigned program",
			mutate: func(tb *Tables) {
				tb.Roles[1].Addenda = []AddendumList{{Program: "street_medicine", Units: []UnitEntry{{ID: "extra", Format: "video"}}}}
			},
			problem: `role office has an addendum for "street_medicine", which it is not assigned`,
		},
		{
			name:    "event type references unknown program",
			mutate:  func(tb *Tables) { tb.EventTypes[0].Program = "clinic" },
			problem: `event type outreach_shift references unknown program "clinic"`,
		},
		{
			name:    "core-cleared program with units",
			mutate:  func(tb *Tables) { tb.Programs[1].Units = []UnitEntry{{ID: "hf", Format: "video"}} },
			problem: "program health_fair is cleared by core standing and cannot list units",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tables := minimalTables()
			tc.mutate(&tables)

			cat, err := New(tables)
			assert.Nil(t, cat)
			assert.Contains(t, problemsOf(t, err), tc.problem)
		})
	}
}

func TestIntegrityCheckReportsEveryProblem(t *testing.T) {
	tables := minimalTables()
	tables.PrivacyUnit = ""
	tables.Aliases = append(tables.Aliases, AliasEntry{Retired: "x", Current: "ghost"})
	tables.EventTypes[0].Program = "clinic"

	problems := problemsOf(t, func() error { _, err := New(tables); return err }())
	assert.Len(t, problems, 3)
}

func TestParse(t *testing.T) {
	t.Run("rejects unknown keys", func(t *testing.T) {
		_, err := Parse([]byte("version: 1\nprivacy_units: hipaa\n"))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidConfig))
	})
	t.Run("rejects empty document", func(t *testing.T) {
		_, err := Parse(nil)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidConfig))
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("empty path uses embedded catalog", func(t *testing.T) {
		cat, err := LoadFile("  ")
		require.NoError(t, err)
		assert.Equal(t, models.UnitID("hipaa_privacy"), cat.PrivacyUnit())
	})
	t.Run("reads override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		doc := `
version: 9
privacy_unit: p
tiers:
  - tier: 1
    units: [{id: o, format: video}]
  - tier: 2
    units: [{id: p, format: quiz}]
`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		cat, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 9, cat.Version())
		assert.Equal(t, []models.UnitID{"o"}, cat.TierUnits(models.TierOrientation))
	})
	t.Run("missing file is a config error", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidConfig))
	})
}
