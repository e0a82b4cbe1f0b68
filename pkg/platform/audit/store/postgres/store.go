// Package postgres stores audit events in the audit_events table.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	audit "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit"
	txcontext "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/tx"
)

const (
	insertEvent = `
		INSERT INTO audit_events (
			id, category, timestamp, volunteer_id, subject, action,
			decision, reason, request_id, actor_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	selectByVolunteer = `
		SELECT category, timestamp, volunteer_id, subject, action,
		       decision, reason, request_id, actor_id
		FROM audit_events
		WHERE volunteer_id = $1
		ORDER BY timestamp DESC, id`
)

// Store implements audit.Store. Appends made inside a tx.SQLRunner unit of
// work commit or roll back with the training write they describe.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) conn(ctx context.Context) execer {
	if sqlTx, ok := txcontext.From(ctx); ok {
		return sqlTx
	}
	return s.db
}

// Append writes one event. The category column is derived from the action.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	ts := event.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}
	var volunteerID uuid.NullUUID
	if !event.VolunteerID.IsNil() {
		volunteerID = uuid.NullUUID{UUID: uuid.UUID(event.VolunteerID), Valid: true}
	}

	_, err := s.conn(ctx).ExecContext(ctx, insertEvent,
		uuid.New(),
		string(audit.AuditEvent(event.Action).Category()),
		ts.UTC(),
		volunteerID,
		event.Subject,
		event.Action,
		event.Decision,
		event.Reason,
		event.RequestID,
		event.ActorID,
	)
	if err != nil {
		return fmt.Errorf("insert audit event %s: %w", event.Action, err)
	}
	return nil
}

// ListByVolunteer returns a volunteer's events, newest first.
func (s *Store) ListByVolunteer(ctx context.Context, volunteerID id.VolunteerID) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, selectByVolunteer, uuid.UUID(volunteerID))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}

func scanEvent(rows *sql.Rows) (audit.Event, error) {
	var (
		event       audit.Event
		category    string
		volunteerID uuid.NullUUID
	)
	if err := rows.Scan(
		&category, &event.Timestamp, &volunteerID, &event.Subject, &event.Action,
		&event.Decision, &event.Reason, &event.RequestID, &event.ActorID,
	); err != nil {
		return audit.Event{}, fmt.Errorf("scan audit event: %w", err)
	}
	event.Category = audit.EventCategory(category)
	if volunteerID.Valid {
		event.VolunteerID = id.VolunteerID(volunteerID.UUID)
	}
	return event, nil
}
