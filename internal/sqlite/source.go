package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/coachboard/internal/domain/entity"
	"github.com/rpggio/coachboard/internal/domain/refdate"
	"github.com/rpggio/coachboard/internal/domain/store"
)

// Source serves every collection from one database. It satisfies both
// dashboard.Feed and dashboard.Mutator.
type Source struct {
	students    *StudentRepository
	courses     *CourseRepository
	memberships *MembershipRepository
	weeks       *WeekRepository
	activity    *ActivityRepository
	groups      *GroupRepository
}

// NewSource wires the repositories over db
func NewSource(db *DB) *Source {
	return &Source{
		students:    NewStudentRepository(db),
		courses:     NewCourseRepository(db),
		memberships: NewMembershipRepository(db),
		weeks:       NewWeekRepository(db),
		activity:    NewActivityRepository(db),
		groups:      NewGroupRepository(db),
	}
}

func (s *Source) Weeks(ctx context.Context, r refdate.Range) ([]entity.Week, error) {
	return s.weeks.ListRange(ctx, r.From, r.To)
}

func (s *Source) Memberships(ctx context.Context) ([]entity.Membership, error) {
	return s.memberships.List(ctx)
}

func (s *Source) Students(ctx context.Context) ([]entity.Student, error) {
	return s.students.ListStudents(ctx)
}

func (s *Source) Coaches(ctx context.Context) ([]entity.Coach, error) {
	return s.students.ListCoaches(ctx)
}

func (s *Source) Courses(ctx context.Context) ([]entity.Course, error) {
	return s.courses.List(ctx)
}

func (s *Source) Assignments(ctx context.Context) ([]entity.Assignment, error) {
	return s.activity.ListAssignments(ctx)
}

func (s *Source) PrivateCalls(ctx context.Context) ([]entity.PrivateCall, error) {
	return s.activity.ListPrivateCalls(ctx)
}

func (s *Source) GroupSessions(ctx context.Context) ([]entity.GroupSession, error) {
	return s.groups.ListSessions(ctx)
}

func (s *Source) GroupAttendees(ctx context.Context) ([]entity.GroupAttendee, error) {
	return s.groups.ListAttendees(ctx)
}

func (s *Source) SaveWeek(ctx context.Context, w *entity.Week) error {
	return s.weeks.Save(ctx, w)
}

func (s *Source) DeleteWeek(ctx context.Context, id int) error {
	return s.weeks.Delete(ctx, id)
}

func (s *Source) SaveAssignment(ctx context.Context, a *entity.Assignment) error {
	return s.activity.SaveAssignment(ctx, a)
}

func (s *Source) DeleteAssignment(ctx context.Context, id int) error {
	return s.activity.DeleteAssignment(ctx, id)
}

func (s *Source) SavePrivateCall(ctx context.Context, c *entity.PrivateCall) error {
	return s.activity.SavePrivateCall(ctx, c)
}

func (s *Source) DeletePrivateCall(ctx context.Context, id int) error {
	return s.activity.DeletePrivateCall(ctx, id)
}

func (s *Source) SaveGroupSession(ctx context.Context, g *entity.GroupSession) error {
	return s.groups.SaveSession(ctx, g)
}

func (s *Source) DeleteGroupSession(ctx context.Context, id int) error {
	return s.groups.DeleteSession(ctx, id)
}

func (s *Source) SaveGroupAttendee(ctx context.Context, a *entity.GroupAttendee) error {
	return s.groups.SaveAttendee(ctx, a)
}

func (s *Source) DeleteGroupAttendee(ctx context.Context, id int) error {
	return s.groups.DeleteAttendee(ctx, id)
}

// Import writes a full dataset, keeping every record id. Reference rows are
// upserted; activity rows must not already exist.
func (s *Source) Import(ctx context.Context, c store.Collections) error {
	for i := range c.Students {
		if err := s.students.SaveStudent(ctx, &c.Students[i]); err != nil {
			return fmt.Errorf("importing student %d: %w", c.Students[i].RecordID, err)
		}
	}
	for i := range c.Coaches {
		if err := s.students.SaveCoach(ctx, &c.Coaches[i]); err != nil {
			return fmt.Errorf("importing coach %d: %w", c.Coaches[i].RecordID, err)
		}
	}
	for i := range c.Courses {
		if err := s.courses.Save(ctx, &c.Courses[i]); err != nil {
			return fmt.Errorf("importing course %d: %w", c.Courses[i].RecordID, err)
		}
	}
	for i := range c.Memberships {
		if err := s.memberships.Save(ctx, &c.Memberships[i]); err != nil {
			return fmt.Errorf("importing membership %d: %w", c.Memberships[i].RecordID, err)
		}
	}
	for i := range c.Weeks {
		if err := s.weeks.Create(ctx, &c.Weeks[i]); err != nil {
			return fmt.Errorf("importing week %d: %w", c.Weeks[i].RecordID, err)
		}
	}
	for i := range c.Assignments {
		if err := s.activity.CreateAssignment(ctx, &c.Assignments[i]); err != nil {
			return fmt.Errorf("importing assignment %d: %w", c.Assignments[i].RecordID, err)
		}
	}
	for i := range c.PrivateCalls {
		if err := s.activity.CreatePrivateCall(ctx, &c.PrivateCalls[i]); err != nil {
			return fmt.Errorf("importing private call %d: %w", c.PrivateCalls[i].RecordID, err)
		}
	}
	for i := range c.GroupSessions {
		if err := s.groups.CreateSession(ctx, &c.GroupSessions[i]); err != nil {
			return fmt.Errorf("importing group session %d: %w", c.GroupSessions[i].RecordID, err)
		}
	}
	for i := range c.GroupAttendees {
		if err := s.groups.CreateAttendee(ctx, &c.GroupAttendees[i]); err != nil {
			return fmt.Errorf("importing group attendee %d: %w", c.GroupAttendees[i].RecordID, err)
		}
	}
	return nil
}
