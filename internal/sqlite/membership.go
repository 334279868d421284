package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/coachboard/internal/domain/entity"
)

// MembershipRepository implements repository.MembershipRepository for SQLite
type MembershipRepository struct {
	db *DB
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// List returns every membership
func (r *MembershipRepository) List(ctx context.Context) ([]entity.Membership, error) {
	query := `
		SELECT id, related_student, related_course, start_date, end_date, on_hold
		FROM memberships
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	memberships := []entity.Membership{}
	for rows.Next() {
		var m entity.Membership
		if err := rows.Scan(&m.RecordID, &m.RelatedStudent, &m.RelatedCourse, &m.StartDate, &m.EndDate, &m.OnHold); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}

	return memberships, nil
}

// Save inserts or replaces a membership. A zero RecordID is assigned.
func (r *MembershipRepository) Save(ctx context.Context, m *entity.Membership) error {
	query := `
		INSERT INTO memberships (id, related_student, related_course, start_date, end_date, on_hold)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			related_student = excluded.related_student,
			related_course = excluded.related_course,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			on_hold = excluded.on_hold
	`

	result, err := r.db.ExecContext(ctx, query,
		recordID(m.RecordID),
		m.RelatedStudent,
		m.RelatedCourse,
		m.StartDate,
		m.EndDate,
		m.OnHold,
	)
	if err != nil {
		return fmt.Errorf("failed to save membership: %w", err)
	}

	if m.RecordID == 0 {
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read membership id: %w", err)
		}
		m.RecordID = int(id)
	}

	return nil
}
