package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/coachboard/internal/domain/entity"
	"github.com/rpggio/coachboard/internal/repository"
)

// ActivityRepository implements repository.ActivityRepository for SQLite.
// It stores the per-week activity: assignments and private calls.
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// ListAssignments returns every assignment
func (r *ActivityRepository) ListAssignments(ctx context.Context) ([]entity.Assignment, error) {
	query := `
		SELECT id, related_week, rating, assignment_type,
			corrector_id, corrector_email, corrector_name, notes
		FROM assignments
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	assignments := []entity.Assignment{}
	for rows.Next() {
		var a entity.Assignment
		var corrector userRefColumns
		dest := []any{&a.RecordID, &a.RelatedWeek, &a.Rating, &a.AssignmentType}
		dest = append(dest, corrector.dest()...)
		dest = append(dest, &a.Notes)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.HomeworkCorrector = corrector.ref()
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	return assignments, nil
}

// CreateAssignment inserts an assignment. A zero RecordID is assigned.
func (r *ActivityRepository) CreateAssignment(ctx context.Context, a *entity.Assignment) error {
	query := `
		INSERT INTO assignments (
			id, related_week, rating, assignment_type,
			corrector_id, corrector_email, corrector_name, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	args := []any{recordID(a.RecordID), a.RelatedWeek, a.Rating, a.AssignmentType}
	args = append(args, userRefArgs(a.HomeworkCorrector)...)
	args = append(args, a.Notes)

	result, err := r.db.ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	if a.RecordID == 0 {
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read assignment id: %w", err)
		}
		a.RecordID = int(id)
	}

	return nil
}

// SaveAssignment creates the assignment when RecordID is zero and updates it otherwise
func (r *ActivityRepository) SaveAssignment(ctx context.Context, a *entity.Assignment) error {
	if a.RecordID == 0 {
		return r.CreateAssignment(ctx, a)
	}

	query := `
		UPDATE assignments SET
			related_week = ?, rating = ?, assignment_type = ?,
			corrector_id = ?, corrector_email = ?, corrector_name = ?, notes = ?
		WHERE id = ?
	`

	args := []any{a.RelatedWeek, a.Rating, a.AssignmentType}
	args = append(args, userRefArgs(a.HomeworkCorrector)...)
	args = append(args, a.Notes, a.RecordID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	return affectedOne(result, "assignment")
}

// DeleteAssignment removes an assignment
func (r *ActivityRepository) DeleteAssignment(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return affectedOne(result, "assignment")
}

// ListPrivateCalls returns every private call
func (r *ActivityRepository) ListPrivateCalls(ctx context.Context) ([]entity.PrivateCall, error) {
	query := `
		SELECT id, related_week, rating, call_date,
			caller_id, caller_email, caller_name, notes
		FROM private_calls
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list private calls: %w", err)
	}
	defer rows.Close()

	calls := []entity.PrivateCall{}
	for rows.Next() {
		var c entity.PrivateCall
		var caller userRefColumns
		dest := []any{&c.RecordID, &c.RelatedWeek, &c.Rating, &c.Date}
		dest = append(dest, caller.dest()...)
		dest = append(dest, &c.Notes)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan private call: %w", err)
		}
		c.Caller = caller.ref()
		calls = append(calls, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate private calls: %w", err)
	}

	return calls, nil
}

// CreatePrivateCall inserts a private call. A zero RecordID is assigned.
func (r *ActivityRepository) CreatePrivateCall(ctx context.Context, c *entity.PrivateCall) error {
	query := `
		INSERT INTO private_calls (
			id, related_week, rating, call_date,
			caller_id, caller_email, caller_name, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	args := []any{recordID(c.RecordID), c.RelatedWeek, c.Rating, c.Date}
	args = append(args, userRefArgs(c.Caller)...)
	args = append(args, c.Notes)

	result, err := r.db.ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create private call: %w", err)
	}

	if c.RecordID == 0 {
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read private call id: %w", err)
		}
		c.RecordID = int(id)
	}

	return nil
}

// SavePrivateCall creates the call when RecordID is zero and updates it otherwise
func (r *ActivityRepository) SavePrivateCall(ctx context.Context, c *entity.PrivateCall) error {
	if c.RecordID == 0 {
		return r.CreatePrivateCall(ctx, c)
	}

	query := `
		UPDATE private_calls SET
			related_week = ?, rating = ?, call_date = ?,
			caller_id = ?, caller_email = ?, caller_name = ?, notes = ?
		WHERE id = ?
	`

	args := []any{c.RelatedWeek, c.Rating, c.Date}
	args = append(args, userRefArgs(c.Caller)...)
	args = append(args, c.Notes, c.RecordID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update private call: %w", err)
	}
	return affectedOne(result, "private call")
}

// DeletePrivateCall removes a private call
func (r *ActivityRepository) DeletePrivateCall(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM private_calls WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete private call: %w", err)
	}
	return affectedOne(result, "private call")
}
