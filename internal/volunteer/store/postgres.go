package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	vmodels "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/models"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/sentinel"
	txcontext "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/tx"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/requestcontext"
)

// PostgresStore persists profiles in the volunteers table. Writes join the
// transaction carried by ctx.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed volunteer store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const volunteerColumns = `
	id, name, email, role, completed_units, core_volunteer, core_approved_at,
	can_deploy_core, health_fair, background_check, weekdays, blackout_dates,
	source, version, created_at, updated_at`

// Create stores a new profile. A taken id or email is sentinel.ErrConflict.
func (s *PostgresStore) Create(ctx context.Context, v *vmodels.Volunteer) error {
	query := `
		INSERT INTO volunteers (` + volunteerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT DO NOTHING
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(v.ID),
		v.Name,
		v.Email,
		string(v.Role),
		pq.Array(unitStrings(v.Training.Completed)),
		v.Training.CoreVolunteer,
		nullTime(v.Training.CoreApprovedAt),
		v.Training.Baseline.CanDeployCore,
		v.Training.Baseline.HealthFair,
		string(v.BackgroundCheck),
		pq.Array(weekdayInts(v.Availability.Weekdays)),
		pq.Array(dateStrings(v.Availability.Blackouts)),
		string(v.Source),
		v.Version,
		v.CreatedAt,
		v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert volunteer: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert volunteer: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, volunteerID id.VolunteerID) (*vmodels.Volunteer, error) {
	query := `SELECT ` + volunteerColumns + ` FROM volunteers WHERE id = $1`
	v, err := scanVolunteer(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(volunteerID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find volunteer by id: %w", err)
	}
	return v, nil
}

// UpdateTraining replaces the training record if the stored version still
// equals expectedVersion, and returns the updated profile.
func (s *PostgresStore) UpdateTraining(ctx context.Context, volunteerID id.VolunteerID, expectedVersion int64, record models.Record) (*vmodels.Volunteer, error) {
	query := `
		UPDATE volunteers
		SET completed_units = $3,
			core_volunteer = $4,
			core_approved_at = $5,
			can_deploy_core = $6,
			health_fair = $7,
			version = version + 1,
			updated_at = $8
		WHERE id = $1 AND version = $2
		RETURNING ` + volunteerColumns
	v, err := scanVolunteer(s.execer(ctx).QueryRowContext(ctx, query,
		uuid.UUID(volunteerID),
		expectedVersion,
		pq.Array(unitStrings(record.Completed)),
		record.CoreVolunteer,
		nullTime(record.CoreApprovedAt),
		record.Baseline.CanDeployCore,
		record.Baseline.HealthFair,
		requestcontext.Now(ctx),
	))
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update volunteer training: %w", err)
	}

	// No row matched: either the id is unknown or the version moved.
	if _, findErr := s.FindByID(ctx, volunteerID); findErr != nil {
		return nil, findErr
	}
	return nil, sentinel.ErrConflict
}

// Count returns the number of stored profiles.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.execer(ctx).QueryRowContext(ctx, `SELECT count(*) FROM volunteers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count volunteers: %w", err)
	}
	return n, nil
}

func scanVolunteer(row *sql.Row) (*vmodels.Volunteer, error) {
	var (
		v           vmodels.Volunteer
		volunteerID uuid.UUID
		role        string
		units       []string
		approvedAt  sql.NullTime
		background  string
		weekdays    []int64
		blackouts   []string
		source      string
	)
	err := row.Scan(
		&volunteerID,
		&v.Name,
		&v.Email,
		&role,
		pq.Array(&units),
		&v.Training.CoreVolunteer,
		&approvedAt,
		&v.Training.Baseline.CanDeployCore,
		&v.Training.Baseline.HealthFair,
		&background,
		pq.Array(&weekdays),
		pq.Array(&blackouts),
		&source,
		&v.Version,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.ID = id.VolunteerID(volunteerID)
	v.Role = models.Role(role)
	v.BackgroundCheck = vmodels.BackgroundCheck(background)
	v.Source = vmodels.Source(source)
	v.Training.Completed = make([]models.UnitID, 0, len(units))
	for _, u := range units {
		v.Training.Completed = append(v.Training.Completed, models.UnitID(u))
	}
	if approvedAt.Valid {
		t := approvedAt.Time.UTC()
		v.Training.CoreApprovedAt = &t
	}
	for _, d := range weekdays {
		v.Availability.Weekdays = append(v.Availability.Weekdays, time.Weekday(d))
	}
	for _, d := range blackouts {
		day, err := time.Parse(time.DateOnly, d)
		if err != nil {
			return nil, fmt.Errorf("parse blackout date %q: %w", d, err)
		}
		v.Availability.Blackouts = append(v.Availability.Blackouts, day)
	}
	return &v, nil
}

func unitStrings(ids []models.UnitID) []string {
	out := make([]string, 0, len(ids))
	for _, u := range ids {
		out = append(out, string(u))
	}
	return out
}

func weekdayInts(days []time.Weekday) []int64 {
	out := make([]int64, 0, len(days))
	for _, d := range days {
		out = append(out, int64(d))
	}
	return out
}

func dateStrings(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(time.DateOnly))
	}
	return out
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
