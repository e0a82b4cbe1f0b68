// Package progression derives clearance stages from completed training and
// owns the single state change of the engine, Core Volunteer promotion.
package progression

import (
	"log/slog"
	"time"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/catalog"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/completion"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/metrics"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
)

// Machine is the progression state machine. Stage, NextRequired and Checklist
// are pure; TryPromote returns a new record instead of mutating its input.
type Machine struct {
	catalog  *catalog.Catalog
	resolver *completion.Resolver
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Machine)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Machine) {
		m.metrics = mt
	}
}

// New creates a Machine over the resolver's catalog.
func New(resolver *completion.Resolver, opts ...Option) *Machine {
	m := &Machine{
		catalog:  resolver.Catalog(),
		resolver: resolver,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Catalog exposes the catalog the machine evaluates against.
func (m *Machine) Catalog() *catalog.Catalog { return m.catalog }

// Resolver exposes the completion resolver the machine reads records through.
func (m *Machine) Resolver() *completion.Resolver { return m.resolver }

// Stage derives the universal stage and the per-program projection for role.
func (m *Machine) Stage(record models.Record, role models.Role) models.Clearance {
	c := m.clearance(m.resolver.Index(record), record, role)
	m.metrics.IncrementStage(string(c.Universal))
	return c
}

func (m *Machine) clearance(idx completion.Completion, record models.Record, role models.Role) models.Clearance {
	c := models.Clearance{
		Universal: m.universal(idx, record, role),
		Programs:  make(map[models.Program]models.ProgramStage),
		Promoted:  record.CoreVolunteer,
	}
	core := c.CoreVolunteer()
	for _, p := range m.catalog.RelevantPrograms(role) {
		spec, _ := m.catalog.Program(p)
		cleared := idx.HasAll(m.catalog.Requirements(role, p))
		if spec.ClearedByCore {
			cleared = core
		}
		if cleared {
			c.Programs[p] = models.ProgramStageCleared
		} else {
			c.Programs[p] = models.ProgramStagePending
		}
	}
	return c
}

// universal applies the tier rules in order. A recorded promotion wins over
// the derivation so Core standing never reverts when the catalog grows.
func (m *Machine) universal(idx completion.Completion, record models.Record, role models.Role) models.Stage {
	if record.CoreVolunteer {
		return models.StageCoreVolunteer
	}
	if role == "" {
		return models.StageNew
	}
	if !idx.HasAll(m.catalog.TierUnits(models.TierOrientation)) {
		return models.StageTier1Pending
	}
	tier2 := m.catalog.TierUnits(models.TierBaseline)
	if !idx.HasAll(tier2) {
		if idx.HasAny(tier2) {
			return models.StageTier2Pending
		}
		return models.StageTier1Complete
	}
	return models.StageCoreVolunteer
}

// NextRequired lists the units still owed for the next stage: missing tier 1
// first, then missing tier 2, then every unmet program requirement of the role.
func (m *Machine) NextRequired(record models.Record, role models.Role) []models.UnitID {
	idx := m.resolver.Index(record)
	if missing := idx.Missing(m.catalog.TierUnits(models.TierOrientation)); len(missing) > 0 {
		return missing
	}
	if !record.CoreVolunteer {
		if missing := idx.Missing(m.catalog.TierUnits(models.TierBaseline)); len(missing) > 0 {
			return missing
		}
	}
	var out []models.UnitID
	for _, p := range m.catalog.RelevantPrograms(role) {
		out = append(out, idx.Missing(m.catalog.Requirements(role, p))...)
	}
	return m.catalog.SortUnits(out)
}

// TryPromote fires Core Volunteer promotion the first time tier 1 and tier 2 are
// complete. It is idempotent: an already promoted record, or one that does not
// qualify yet, comes back unchanged with a nil event.
func (m *Machine) TryPromote(record models.Record, now time.Time) (models.Record, *models.PromotionEvent) {
	if record.CoreVolunteer {
		return record, nil
	}
	idx := m.resolver.Index(record)
	if !idx.HasAll(m.catalog.TierUnits(models.TierOrientation)) || !idx.HasAll(m.catalog.TierUnits(models.TierBaseline)) {
		return record, nil
	}

	approvedAt := now.UTC()
	promoted := record.Clone()
	promoted.CoreVolunteer = true
	promoted.CoreApprovedAt = &approvedAt
	promoted.Baseline = models.BaselineGates{CanDeployCore: true, HealthFair: true}

	if m.logger != nil {
		m.logger.Info("core volunteer promotion",
			"approved_at", approvedAt,
			"completed_units", len(idx.Canonical()),
		)
	}
	return promoted, &models.PromotionEvent{
		ApprovedAt: approvedAt,
		Completed:  idx.Canonical(),
	}
}
