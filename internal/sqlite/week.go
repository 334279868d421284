package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rpggio/coachboard/internal/domain/entity"
	"github.com/rpggio/coachboard/internal/repository"
)

// WeekRepository implements repository.WeekRepository for SQLite
type WeekRepository struct {
	db *DB
}

// NewWeekRepository creates a new WeekRepository
func NewWeekRepository(db *DB) *WeekRepository {
	return &WeekRepository{db: db}
}

const weekColumns = `
	id, related_membership, week_name, week_starts, week_ends, level,
	hold_week, records_complete, current_lesson, notes,
	membership_course_has_group_calls, membership_course_weekly_private_calls, membership_on_hold
`

type scanner interface {
	Scan(dest ...any) error
}

func scanWeek(s scanner) (entity.Week, error) {
	var w entity.Week
	err := s.Scan(
		&w.RecordID,
		&w.RelatedMembership,
		&w.WeekName,
		&w.WeekStarts,
		&w.WeekEnds,
		&w.Level,
		&w.HoldWeek,
		&w.RecordsComplete,
		&w.CurrentLesson,
		&w.Notes,
		&w.MembershipCourseHasGroupCalls,
		&w.MembershipCourseWeeklyPrivateCalls,
		&w.MembershipOnHold,
	)
	return w, err
}

// ListRange returns weeks starting within [from, to]. An empty bound is open.
func (r *WeekRepository) ListRange(ctx context.Context, from, to string) ([]entity.Week, error) {
	query := `SELECT ` + weekColumns + ` FROM weeks`

	args := []any{}
	conditions := []string{}
	if from != "" {
		conditions = append(conditions, "week_starts >= ?")
		args = append(args, from)
	}
	if to != "" {
		conditions = append(conditions, "week_starts <= ?")
		args = append(args, to)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY week_starts, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list weeks: %w", err)
	}
	defer rows.Close()

	weeks := []entity.Week{}
	for rows.Next() {
		w, err := scanWeek(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan week: %w", err)
		}
		weeks = append(weeks, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weeks: %w", err)
	}

	return weeks, nil
}

// Get retrieves a week by ID
func (r *WeekRepository) Get(ctx context.Context, id int) (*entity.Week, error) {
	query := `SELECT ` + weekColumns + ` FROM weeks WHERE id = ?`

	w, err := scanWeek(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get week: %w", err)
	}

	return &w, nil
}

// Create inserts a week. A zero RecordID is assigned; an explicit one must be unused.
func (r *WeekRepository) Create(ctx context.Context, w *entity.Week) error {
	query := `
		INSERT INTO weeks (` + weekColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		recordID(w.RecordID),
		w.RelatedMembership,
		w.WeekName,
		w.WeekStarts,
		w.WeekEnds,
		w.Level,
		w.HoldWeek,
		w.RecordsComplete,
		w.CurrentLesson,
		w.Notes,
		w.MembershipCourseHasGroupCalls,
		w.MembershipCourseWeeklyPrivateCalls,
		w.MembershipOnHold,
	)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create week: %w", err)
	}

	if w.RecordID == 0 {
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read week id: %w", err)
		}
		w.RecordID = int(id)
	}

	return nil
}

// Update replaces an existing week
func (r *WeekRepository) Update(ctx context.Context, w *entity.Week) error {
	query := `
		UPDATE weeks SET
			related_membership = ?,
			week_name = ?,
			week_starts = ?,
			week_ends = ?,
			level = ?,
			hold_week = ?,
			records_complete = ?,
			current_lesson = ?,
			notes = ?,
			membership_course_has_group_calls = ?,
			membership_course_weekly_private_calls = ?,
			membership_on_hold = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		w.RelatedMembership,
		w.WeekName,
		w.WeekStarts,
		w.WeekEnds,
		w.Level,
		w.HoldWeek,
		w.RecordsComplete,
		w.CurrentLesson,
		w.Notes,
		w.MembershipCourseHasGroupCalls,
		w.MembershipCourseWeeklyPrivateCalls,
		w.MembershipOnHold,
		w.RecordID,
	)
	if err != nil {
		return fmt.Errorf("failed to update week: %w", err)
	}

	return affectedOne(result, "week")
}

// Save creates the week when RecordID is zero and updates it otherwise
func (r *WeekRepository) Save(ctx context.Context, w *entity.Week) error {
	if w.RecordID == 0 {
		return r.Create(ctx, w)
	}
	return r.Update(ctx, w)
}

// Delete removes a week
func (r *WeekRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM weeks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete week: %w", err)
	}
	return affectedOne(result, "week")
}
