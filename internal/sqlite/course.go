package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/coachboard/internal/domain/entity"
)

// CourseRepository implements repository.CourseRepository for SQLite
type CourseRepository struct {
	db *DB
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns every course
func (r *CourseRepository) List(ctx context.Context) ([]entity.Course, error) {
	query := `
		SELECT id, name, weekly_private_calls, has_group_calls
		FROM courses
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := []entity.Course{}
	for rows.Next() {
		var c entity.Course
		if err := rows.Scan(&c.RecordID, &c.Name, &c.WeeklyPrivateCalls, &c.HasGroupCalls); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}

	return courses, nil
}

// Save inserts or replaces a course. A zero RecordID is assigned.
func (r *CourseRepository) Save(ctx context.Context, c *entity.Course) error {
	query := `
		INSERT INTO courses (id, name, weekly_private_calls, has_group_calls)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			weekly_private_calls = excluded.weekly_private_calls,
			has_group_calls = excluded.has_group_calls
	`

	result, err := r.db.ExecContext(ctx, query,
		recordID(c.RecordID),
		c.Name,
		c.WeeklyPrivateCalls,
		c.HasGroupCalls,
	)
	if err != nil {
		return fmt.Errorf("failed to save course: %w", err)
	}

	if c.RecordID == 0 {
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read course id: %w", err)
		}
		c.RecordID = int(id)
	}

	return nil
}
