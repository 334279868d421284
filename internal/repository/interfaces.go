package repository

import (
	"context"

	"github.com/rpggio/coachboard/internal/domain/entity"
)

// StudentRepository manages students and coaches
type StudentRepository interface {
	ListStudents(ctx context.Context) ([]entity.Student, error)
	SaveStudent(ctx context.Context, s *entity.Student) error
	ListCoaches(ctx context.Context) ([]entity.Coach, error)
	SaveCoach(ctx context.Context, c *entity.Coach) error
}

// CourseRepository manages courses
type CourseRepository interface {
	List(ctx context.Context) ([]entity.Course, error)
	Save(ctx context.Context, c *entity.Course) error
}

// MembershipRepository manages memberships
type MembershipRepository interface {
	List(ctx context.Context) ([]entity.Membership, error)
	Save(ctx context.Context, m *entity.Membership) error
}

// WeekRepository manages weeks
type WeekRepository interface {
	ListRange(ctx context.Context, from, to string) ([]entity.Week, error)
	Get(ctx context.Context, id int) (*entity.Week, error)
	Save(ctx context.Context, w *entity.Week) error
	Delete(ctx context.Context, id int) error
}

// ActivityRepository manages per-week activity: assignments and private calls
type ActivityRepository interface {
	ListAssignments(ctx context.Context) ([]entity.Assignment, error)
	SaveAssignment(ctx context.Context, a *entity.Assignment) error
	DeleteAssignment(ctx context.Context, id int) error
	ListPrivateCalls(ctx context.Context) ([]entity.PrivateCall, error)
	SavePrivateCall(ctx context.Context, c *entity.PrivateCall) error
	DeletePrivateCall(ctx context.Context, id int) error
}

// GroupRepository manages group sessions and their attendees
type GroupRepository interface {
	ListSessions(ctx context.Context) ([]entity.GroupSession, error)
	SaveSession(ctx context.Context, g *entity.GroupSession) error
	DeleteSession(ctx context.Context, id int) error
	ListAttendees(ctx context.Context) ([]entity.GroupAttendee, error)
	SaveAttendee(ctx context.Context, a *entity.GroupAttendee) error
	DeleteAttendee(ctx context.Context, id int) error
}

// APIKeyRepository resolves bearer tokens to client labels
type APIKeyRepository interface {
	Create(ctx context.Context, token, label string) error
	Resolve(ctx context.Context, token string) (string, error)
}
