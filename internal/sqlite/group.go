package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/coachboard/internal/domain/entity"
	"github.com/rpggio/coachboard/internal/repository"
)

// GroupRepository implements repository.GroupRepository for SQLite
type GroupRepository struct {
	db *DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// ListSessions returns every group session
func (r *GroupRepository) ListSessions(ctx context.Context) ([]entity.GroupSession, error) {
	query := `
		SELECT id, session_date, coach_id, coach_email, coach_name, session_type, topic
		FROM group_sessions
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list group sessions: %w", err)
	}
	defer rows.Close()

	sessions := []entity.GroupSession{}
	for rows.Next() {
		var g entity.GroupSession
		var coach userRefColumns
		dest := []any{&g.RecordID, &g.Date}
		dest = append(dest, coach.dest()...)
		dest = append(dest, &g.SessionType, &g.Topic)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan group session: %w", err)
		}
		g.Coach = coach.ref()
		sessions = append(sessions, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group sessions: %w", err)
	}

	return sessions, nil
}

// CreateSession inserts a group session. A zero RecordID is assigned.
func (r *GroupRepository) CreateSession(ctx context.Context, g *entity.GroupSession) error {
	query := `
		INSERT INTO group_sessions (id, session_date, coach_id, coach_email, coach_name, session_type, topic)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	args := []any{recordID(g.RecordID), g.Date}
	args = append(args, userRefArgs(g.Coach)...)
	args = append(args, g.SessionType, g.Topic)

	result, err := r.db.ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create group session: %w", err)
	}

	if g.RecordID == 0 {
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read group session id: %w", err)
		}
		g.RecordID = int(id)
	}

	return nil
}

// SaveSession creates the session when RecordID is zero and updates it otherwise
func (r *GroupRepository) SaveSession(ctx context.Context, g *entity.GroupSession) error {
	if g.RecordID == 0 {
		return r.CreateSession(ctx, g)
	}

	query := `
		UPDATE group_sessions SET
			session_date = ?, coach_id = ?, coach_email = ?, coach_name = ?,
			session_type = ?, topic = ?
		WHERE id = ?
	`

	args := []any{g.Date}
	args = append(args, userRefArgs(g.Coach)...)
	args = append(args, g.SessionType, g.Topic, g.RecordID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update group session: %w", err)
	}
	return affectedOne(result, "group session")
}

// DeleteSession removes a group session. Its attendee rows are left in
// place, matching the system of record.
func (r *GroupRepository) DeleteSession(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM group_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group session: %w", err)
	}
	return affectedOne(result, "group session")
}

// ListAttendees returns every group attendee row
func (r *GroupRepository) ListAttendees(ctx context.Context) ([]entity.GroupAttendee, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, group_session, related_week
		FROM group_attendees
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list group attendees: %w", err)
	}
	defer rows.Close()

	attendees := []entity.GroupAttendee{}
	for rows.Next() {
		var a entity.GroupAttendee
		if err := rows.Scan(&a.RecordID, &a.GroupSession, &a.RelatedWeek); err != nil {
			return nil, fmt.Errorf("failed to scan group attendee: %w", err)
		}
		attendees = append(attendees, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group attendees: %w", err)
	}

	return attendees, nil
}

// CreateAttendee inserts an attendee row. A zero RecordID is assigned.
func (r *GroupRepository) CreateAttendee(ctx context.Context, a *entity.GroupAttendee) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO group_attendees (id, group_session, related_week) VALUES (?, ?, ?)`,
		recordID(a.RecordID), a.GroupSession, a.RelatedWeek)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create group attendee: %w", err)
	}

	if a.RecordID == 0 {
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read group attendee id: %w", err)
		}
		a.RecordID = int(id)
	}

	return nil
}

// SaveAttendee creates the row when RecordID is zero and updates it otherwise
func (r *GroupRepository) SaveAttendee(ctx context.Context, a *entity.GroupAttendee) error {
	if a.RecordID == 0 {
		return r.CreateAttendee(ctx, a)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE group_attendees SET group_session = ?, related_week = ? WHERE id = ?`,
		a.GroupSession, a.RelatedWeek, a.RecordID)
	if err != nil {
		return fmt.Errorf("failed to update group attendee: %w", err)
	}
	return affectedOne(result, "group attendee")
}

// DeleteAttendee removes an attendee row
func (r *GroupRepository) DeleteAttendee(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM group_attendees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group attendee: %w", err)
	}
	return affectedOne(result, "group attendee")
}
