package mocks

import (
	"context"

	"github.com/rpggio/coachboard/internal/domain/entity"
	"github.com/rpggio/coachboard/internal/domain/refdate"
	"github.com/stretchr/testify/mock"
)

// Feed is a mock for dashboard.Feed.
type Feed struct {
	mock.Mock
}

func (m *Feed) Weeks(ctx context.Context, r refdate.Range) ([]entity.Week, error) {
	args := m.Called(ctx, r)
	if list, ok := args.Get(0).([]entity.Week); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Feed) Memberships(ctx context.Context) ([]entity.Membership, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]entity.Membership); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Feed) Students(ctx context.Context) ([]entity.Student, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]entity.Student); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Feed) Coaches(ctx context.Context) ([]entity.Coach, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]entity.Coach); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Feed) Courses(ctx context.Context) ([]entity.Course, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]entity.Course); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Feed) Assignments(ctx context.Context) ([]entity.Assignment, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]entity.Assignment); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Feed) PrivateCalls(ctx context.Context) ([]entity.PrivateCall, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]entity.PrivateCall); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Feed) GroupSessions(ctx context.Context) ([]entity.GroupSession, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]entity.GroupSession); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Feed) GroupAttendees(ctx context.Context) ([]entity.GroupAttendee, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]entity.GroupAttendee); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Mutator is a mock for dashboard.Mutator.
type Mutator struct {
	mock.Mock
}

func (m *Mutator) SaveWeek(ctx context.Context, w *entity.Week) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *Mutator) DeleteWeek(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Mutator) SaveAssignment(ctx context.Context, a *entity.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *Mutator) DeleteAssignment(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Mutator) SavePrivateCall(ctx context.Context, c *entity.PrivateCall) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *Mutator) DeletePrivateCall(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Mutator) SaveGroupSession(ctx context.Context, g *entity.GroupSession) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *Mutator) DeleteGroupSession(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Mutator) SaveGroupAttendee(ctx context.Context, a *entity.GroupAttendee) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *Mutator) DeleteGroupAttendee(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
