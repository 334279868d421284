package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/coachboard/internal/domain/entity"
)

// StudentRepository implements repository.StudentRepository for SQLite
type StudentRepository struct {
	db *DB
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// ListStudents returns every student
func (r *StudentRepository) ListStudents(ctx context.Context) ([]entity.Student, error) {
	query := `
		SELECT id, full_name, email, primary_coach_id, primary_coach_email, primary_coach_name
		FROM students
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	students := []entity.Student{}
	for rows.Next() {
		var s entity.Student
		var coach userRefColumns
		dest := append([]any{&s.RecordID, &s.FullName, &s.Email}, coach.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		s.PrimaryCoach = coach.ref()
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate students: %w", err)
	}

	return students, nil
}

// SaveStudent inserts or replaces a student. A zero RecordID is assigned.
func (r *StudentRepository) SaveStudent(ctx context.Context, s *entity.Student) error {
	query := `
		INSERT INTO students (id, full_name, email, primary_coach_id, primary_coach_email, primary_coach_name)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			full_name = excluded.full_name,
			email = excluded.email,
			primary_coach_id = excluded.primary_coach_id,
			primary_coach_email = excluded.primary_coach_email,
			primary_coach_name = excluded.primary_coach_name
	`

	args := append([]any{recordID(s.RecordID), s.FullName, s.Email}, userRefArgs(s.PrimaryCoach)...)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save student: %w", err)
	}

	if s.RecordID == 0 {
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read student id: %w", err)
		}
		s.RecordID = int(id)
	}

	return nil
}

// ListCoaches returns every coach
func (r *StudentRepository) ListCoaches(ctx context.Context) ([]entity.Coach, error) {
	query := `
		SELECT id, user_id, user_email, user_name, active
		FROM coaches
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list coaches: %w", err)
	}
	defer rows.Close()

	coaches := []entity.Coach{}
	for rows.Next() {
		var c entity.Coach
		if err := rows.Scan(&c.RecordID, &c.User.ID, &c.User.Email, &c.User.Name, &c.Active); err != nil {
			return nil, fmt.Errorf("failed to scan coach: %w", err)
		}
		coaches = append(coaches, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate coaches: %w", err)
	}

	return coaches, nil
}

// SaveCoach inserts or replaces a coach. A zero RecordID is assigned.
func (r *StudentRepository) SaveCoach(ctx context.Context, c *entity.Coach) error {
	query := `
		INSERT INTO coaches (id, user_id, user_email, user_name, active)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			user_email = excluded.user_email,
			user_name = excluded.user_name,
			active = excluded.active
	`

	result, err := r.db.ExecContext(ctx, query,
		recordID(c.RecordID),
		c.User.ID,
		c.User.Email,
		c.User.Name,
		c.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to save coach: %w", err)
	}

	if c.RecordID == 0 {
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read coach id: %w", err)
		}
		c.RecordID = int(id)
	}

	return nil
}
