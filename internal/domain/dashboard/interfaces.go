package dashboard

import (
	"context"

	"github.com/rpggio/coachboard/internal/domain/entity"
	"github.com/rpggio/coachboard/internal/domain/refdate"
)

// Feed loads whole collections from the system of record.
type Feed interface {
	Weeks(ctx context.Context, r refdate.Range) ([]entity.Week, error)
	Memberships(ctx context.Context) ([]entity.Membership, error)
	Students(ctx context.Context) ([]entity.Student, error)
	Coaches(ctx context.Context) ([]entity.Coach, error)
	Courses(ctx context.Context) ([]entity.Course, error)
	Assignments(ctx context.Context) ([]entity.Assignment, error)
	PrivateCalls(ctx context.Context) ([]entity.PrivateCall, error)
	GroupSessions(ctx context.Context) ([]entity.GroupSession, error)
	GroupAttendees(ctx context.Context) ([]entity.GroupAttendee, error)
}

// Mutator writes to the system of record. Save creates when RecordID is
// zero and sets the assigned id; otherwise it updates.
type Mutator interface {
	SaveWeek(ctx context.Context, w *entity.Week) error
	DeleteWeek(ctx context.Context, id int) error
	SaveAssignment(ctx context.Context, a *entity.Assignment) error
	DeleteAssignment(ctx context.Context, id int) error
	SavePrivateCall(ctx context.Context, c *entity.PrivateCall) error
	DeletePrivateCall(ctx context.Context, id int) error
	SaveGroupSession(ctx context.Context, g *entity.GroupSession) error
	DeleteGroupSession(ctx context.Context, id int) error
	SaveGroupAttendee(ctx context.Context, a *entity.GroupAttendee) error
	DeleteGroupAttendee(ctx context.Context, id int) error
}
