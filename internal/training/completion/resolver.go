// Package completion answers "has this person finished unit X" over raw
// completion records, treating retired ids and their replacements as one unit.
package completion

import (
	"context"
	"log/slog"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/catalog"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/metrics"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/requestcontext"
)

// Resolver derives canonical completion from raw records. It holds no mutable
// state and is safe for concurrent use.
type Resolver struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for data-quality warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// New creates a Resolver over an immutable catalog.
func New(cat *catalog.Catalog, opts ...Option) *Resolver {
	r := &Resolver{catalog: cat}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog exposes the catalog the resolver was built from.
func (r *Resolver) Catalog() *catalog.Catalog { return r.catalog }

// Completion is the canonical view of one record, computed once and reused for
// several queries.
type Completion struct {
	catalog   *catalog.Catalog
	canonical map[models.UnitID]bool
	unknown   []models.UnitID
}

// Index canonicalizes every raw id of the record. Ids unknown to both the
// catalog and the alias table are kept aside, never fatal.
func (r *Resolver) Index(record models.Record) Completion {
	c := Completion{
		catalog:   r.catalog,
		canonical: make(map[models.UnitID]bool, len(record.Completed)),
	}
	for _, raw := range record.Completed {
		canonical, known := r.catalog.Resolve(raw)
		if !known {
			c.unknown = append(c.unknown, raw)
			r.metrics.IncrementUnknownUnit()
			continue
		}
		if canonical != raw {
			r.metrics.IncrementRetiredUnit()
		}
		c.canonical[canonical] = true
	}
	return c
}

// ReportUnknown logs every raw id of the record that matches neither a unit
// nor an alias, and returns them. Callers run it once per request.
func (r *Resolver) ReportUnknown(ctx context.Context, record models.Record) []models.UnitID {
	unknown := r.Index(record).Unknown()
	if r.logger == nil {
		return unknown
	}
	for _, raw := range unknown {
		r.logger.WarnContext(ctx, "data quality: unknown training unit",
			"unit_id", string(raw),
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return unknown
}

// Has reports whether unitID, itself canonicalized, is among the completed units.
func (c Completion) Has(unitID models.UnitID) bool {
	canonical, known := c.catalog.Resolve(unitID)
	if !known {
		return false
	}
	return c.canonical[canonical]
}

// HasAll is the conjunction of Has over unitIDs. An empty list is trivially done.
func (c Completion) HasAll(unitIDs []models.UnitID) bool {
	for _, id := range unitIDs {
		if !c.Has(id) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one of unitIDs is done.
func (c Completion) HasAny(unitIDs []models.UnitID) bool {
	for _, id := range unitIDs {
		if c.Has(id) {
			return true
		}
	}
	return false
}

// Missing returns the units of unitIDs not yet done, deduped, in catalog order.
func (c Completion) Missing(unitIDs []models.UnitID) []models.UnitID {
	var out []models.UnitID
	for _, id := range unitIDs {
		if !c.Has(id) {
			canonical, _ := c.catalog.Resolve(id)
			out = append(out, canonical)
		}
	}
	return c.catalog.SortUnits(out)
}

// Canonical lists the completed catalog units in catalog order.
func (c Completion) Canonical() []models.UnitID {
	out := make([]models.UnitID, 0, len(c.canonical))
	for id := range c.canonical {
		out = append(out, id)
	}
	return c.catalog.SortUnits(out)
}

// Unknown lists the raw ids that matched nothing, in record order.
func (c Completion) Unknown() []models.UnitID {
	return append([]models.UnitID(nil), c.unknown...)
}

// IsComplete reports whether the record satisfies unitID, directly or through
// an alias in either direction.
func (r *Resolver) IsComplete(record models.Record, unitID models.UnitID) bool {
	return r.Index(record).Has(unitID)
}

// AreAllComplete reports whether every unit of unitIDs is complete.
func (r *Resolver) AreAllComplete(record models.Record, unitIDs []models.UnitID) bool {
	return r.Index(record).HasAll(unitIDs)
}

// Missing returns the incomplete units of unitIDs in catalog order.
func (r *Resolver) Missing(record models.Record, unitIDs []models.UnitID) []models.UnitID {
	return r.Index(record).Missing(unitIDs)
}

// CanonicalIDs derives the canonical completed set of a record.
func (r *Resolver) CanonicalIDs(record models.Record) []models.UnitID {
	return r.Index(record).Canonical()
}
