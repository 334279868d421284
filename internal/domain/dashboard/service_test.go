package dashboard_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rpggio/coachboard/internal/domain/dashboard"
	"github.com/rpggio/coachboard/internal/domain/entity"
	"github.com/rpggio/coachboard/internal/domain/filter"
	"github.com/rpggio/coachboard/internal/domain/refdate"
	"github.com/rpggio/coachboard/internal/metrics"
	"github.com/rpggio/coachboard/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 12, 25, 15, 0, 0, 0, time.UTC)

func testConfig() dashboard.Config {
	return dashboard.Config{
		WeeksBack: 3,
		Now:       func() time.Time { return fixedNow },
	}
}

func loadedFeed() *mocks.Feed {
	feed := &mocks.Feed{}
	feed.On("Weeks", mock.Anything, refdate.Range{From: "2024-12-08", To: "2025-01-04"}).Return([]entity.Week{
		{RecordID: 30, RelatedMembership: 20, WeekName: "W1", WeekStarts: "2024-12-22", WeekEnds: "2024-12-28", Level: "Standard", Notes: "good progress"},
		{RecordID: 31, RelatedMembership: 21, WeekName: "W2", WeekStarts: "2024-12-22", WeekEnds: "2024-12-28", Level: "Advanced"},
		{RecordID: 32, RelatedMembership: 20, WeekName: "W0", WeekStarts: "2024-12-15", WeekEnds: "2024-12-21", Level: "Standard", RecordsComplete: true},
	}, nil)
	feed.On("Memberships", mock.Anything).Return([]entity.Membership{
		{RecordID: 20, RelatedStudent: 1, RelatedCourse: 5},
		{RecordID: 21, RelatedStudent: 2, RelatedCourse: 6},
	}, nil)
	feed.On("Students", mock.Anything).Return([]entity.Student{
		{RecordID: 1, FullName: "Sam Smith", Email: "sam@example.com", PrimaryCoach: &entity.UserRef{ID: 100}},
		{RecordID: 2, FullName: "Lee Park", Email: "lee@example.com"},
	}, nil)
	feed.On("Coaches", mock.Anything).Return([]entity.Coach{
		{RecordID: 10, User: entity.UserRef{ID: 100, Name: "Zed"}, Active: true},
		{RecordID: 11, User: entity.UserRef{ID: 101, Name: "Ann"}, Active: true},
		{RecordID: 12, User: entity.UserRef{ID: 102, Name: "Old"}, Active: false},
	}, nil)
	feed.On("Courses", mock.Anything).Return([]entity.Course{
		{RecordID: 5, Name: "Standard"},
		{RecordID: 6, Name: "Advanced"},
	}, nil)
	feed.On("Assignments", mock.Anything).Return([]entity.Assignment{
		{RecordID: 40, RelatedWeek: 30, AssignmentType: "essay"},
		{RecordID: 41, RelatedWeek: 30, AssignmentType: "quiz"},
	}, nil)
	feed.On("PrivateCalls", mock.Anything).Return([]entity.PrivateCall{
		{RecordID: 50, RelatedWeek: 30, Date: "2024-12-23"},
	}, nil)
	feed.On("GroupSessions", mock.Anything).Return([]entity.GroupSession{
		{RecordID: 60, Date: "2024-12-24", SessionType: "review"},
	}, nil)
	feed.On("GroupAttendees", mock.Anything).Return([]entity.GroupAttendee{
		{RecordID: 70, GroupSession: 60, RelatedWeek: 30},
	}, nil)
	return feed
}

func readyService(t *testing.T, mutator dashboard.Mutator) *dashboard.Service {
	t.Helper()
	svc := dashboard.NewService(loadedFeed(), mutator, testConfig(), nil, nil)
	require.NoError(t, svc.Refresh(context.Background()))
	return svc
}

func TestService_NotReadyBeforeRefresh(t *testing.T) {
	ctx := context.Background()
	svc := dashboard.NewService(&mocks.Feed{}, nil, testConfig(), nil, nil)

	_, err := svc.Weeks(ctx, filter.DefaultState())
	require.ErrorIs(t, err, dashboard.ErrNotReady)

	_, err = svc.Week(ctx, 30)
	require.ErrorIs(t, err, dashboard.ErrNotReady)

	_, err = svc.Options(ctx)
	require.ErrorIs(t, err, dashboard.ErrNotReady)

	require.False(t, svc.Status().Ready)
}

func TestService_Refresh(t *testing.T) {
	reg := prometheus.NewRegistry()
	feed := loadedFeed()
	svc := dashboard.NewService(feed, nil, testConfig(), metrics.New(reg), nil)

	require.NoError(t, svc.Refresh(context.Background()))
	feed.AssertExpectations(t)

	status := svc.Status()
	require.True(t, status.Ready)
	require.NotEmpty(t, status.Version)
	require.Equal(t, 3, status.Counts["weeks"])
	require.Equal(t, 1, status.Counts["groupAttendees"])
}

func TestService_RefreshFailureKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	svc := readyService(t, nil)
	before := svc.Status().Version

	failing := &mocks.Feed{}
	failing.On("Weeks", mock.Anything, mock.Anything).Return([]entity.Week{}, nil)
	failing.On("Memberships", mock.Anything).Return(nil, errors.New("upstream down"))
	failing.On("Students", mock.Anything).Return([]entity.Student{}, nil).Maybe()
	failing.On("Coaches", mock.Anything).Return([]entity.Coach{}, nil).Maybe()
	failing.On("Courses", mock.Anything).Return([]entity.Course{}, nil).Maybe()
	failing.On("Assignments", mock.Anything).Return([]entity.Assignment{}, nil).Maybe()
	failing.On("PrivateCalls", mock.Anything).Return([]entity.PrivateCall{}, nil).Maybe()
	failing.On("GroupSessions", mock.Anything).Return([]entity.GroupSession{}, nil).Maybe()
	failing.On("GroupAttendees", mock.Anything).Return([]entity.GroupAttendee{}, nil).Maybe()

	broken := dashboard.NewService(failing, nil, testConfig(), nil, nil)
	err := broken.Refresh(ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "loading memberships")
	require.False(t, broken.Status().Ready)

	// A healthy service keeps serving its snapshot across refreshes.
	require.Equal(t, before, svc.Status().Version)
	_, err = svc.Weeks(ctx, filter.DefaultState())
	require.NoError(t, err)
}

// gatedFeed serves weeks from a function so tests can hold a load open.
type gatedFeed struct {
	*mocks.Feed
	weeks func() []entity.Week
}

func (f *gatedFeed) Weeks(context.Context, refdate.Range) ([]entity.Week, error) {
	return f.weeks(), nil
}

func TestService_OverlappingRefreshKeepsNewest(t *testing.T) {
	ctx := context.Background()
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	feed := &gatedFeed{Feed: loadedFeed(), weeks: func() []entity.Week {
		if calls.Add(1) == 1 {
			close(entered)
			<-release
			return []entity.Week{{RecordID: 30, RelatedMembership: 20, WeekName: "old", WeekStarts: "2024-12-22"}}
		}
		return []entity.Week{{RecordID: 30, RelatedMembership: 20, WeekName: "new", WeekStarts: "2024-12-22"}}
	}}
	svc := dashboard.NewService(feed, nil, testConfig(), nil, nil)

	done := make(chan error, 1)
	go func() { done <- svc.Refresh(ctx) }()
	<-entered

	require.NoError(t, svc.Refresh(ctx))
	close(release)
	require.NoError(t, <-done)

	detail, err := svc.Week(ctx, 30)
	require.NoError(t, err)
	require.Equal(t, "new", detail.Week.WeekName)
}

func TestService_Weeks_Default(t *testing.T) {
	svc := readyService(t, nil)

	result, err := svc.Weeks(context.Background(), svc.DefaultState())
	require.NoError(t, err)

	// Week 31's student has no coach; week 32 is complete.
	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	require.Equal(t, 30, row.Week.RecordID)
	require.NotNil(t, row.Student)
	require.Equal(t, "Sam Smith", row.Student.FullName)
	require.NotNil(t, row.Coach)
	require.Equal(t, 10, row.Coach.RecordID)
	require.NotNil(t, row.Course)
	require.Equal(t, "Standard", row.Course.Name)
	require.Equal(t, 2, row.Assignments)
	require.Equal(t, 1, row.PrivateCalls)
	require.Equal(t, 1, row.GroupSessions)
	require.Equal(t, svc.Status().Version, result.Version)
}

func TestService_Weeks_PassThroughSortsAndLeavesMissingJoinsNil(t *testing.T) {
	svc := readyService(t, nil)

	result, err := svc.Weeks(context.Background(), filter.PassThrough())
	require.NoError(t, err)
	require.Equal(t, 3, result.Total)

	ids := make([]int, 0, len(result.Rows))
	for _, row := range result.Rows {
		ids = append(ids, row.Week.RecordID)
	}
	require.Equal(t, []int{31, 32, 30}, ids)

	require.Nil(t, result.Rows[0].Coach)
	require.NotNil(t, result.Rows[0].Student)
	require.Equal(t, 0, result.Rows[0].Assignments)
}

func TestService_Weeks_DateRange(t *testing.T) {
	svc := readyService(t, nil)
	dates := svc.ReferenceDates(0)
	require.Equal(t, "2024-12-22", dates.ThisWeek)

	st := filter.PassThrough()
	st.DateRange = dates.LastWeek
	result, err := svc.Weeks(context.Background(), st)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	require.Equal(t, 32, result.Rows[0].Week.RecordID)
}

func TestService_Week(t *testing.T) {
	svc := readyService(t, nil)

	detail, err := svc.Week(context.Background(), 30)
	require.NoError(t, err)
	require.NotNil(t, detail.Membership)
	require.Equal(t, 20, detail.Membership.RecordID)
	require.Len(t, detail.Assignments, 2)
	require.Len(t, detail.PrivateCalls, 1)
	require.Len(t, detail.GroupSessions, 1)
	require.Equal(t, 60, detail.GroupSessions[0].RecordID)

	detail, err = svc.Week(context.Background(), 31)
	require.NoError(t, err)
	require.Nil(t, detail.Coach)
	require.NotNil(t, detail.Assignments)
	require.Empty(t, detail.Assignments)

	_, err = svc.Week(context.Background(), 9999999)
	require.ErrorIs(t, err, dashboard.ErrWeekNotFound)
}

func TestService_Options(t *testing.T) {
	svc := readyService(t, nil)

	opts, err := svc.Options(context.Background())
	require.NoError(t, err)
	require.Len(t, opts.Coaches, 2)
	require.Equal(t, "Ann", opts.Coaches[0].User.Name)
	require.Equal(t, "Zed", opts.Coaches[1].User.Name)
	require.Len(t, opts.Courses, 2)
	require.Equal(t, "Advanced", opts.Courses[0].Name)
}

func TestService_SaveWeek(t *testing.T) {
	ctx := context.Background()
	mutator := &mocks.Mutator{}
	svc := readyService(t, mutator)
	before := svc.Status().Version

	w := &entity.Week{RelatedMembership: 20, WeekName: "W3", WeekStarts: "2024-12-29", WeekEnds: "2025-01-04"}
	mutator.On("SaveWeek", ctx, w).Return(nil)

	require.NoError(t, svc.SaveWeek(ctx, w))
	mutator.AssertExpectations(t)
	require.NotEqual(t, before, svc.Status().Version)
}

func TestService_SaveRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	mutator := &mocks.Mutator{}
	svc := readyService(t, mutator)

	err := svc.SaveWeek(ctx, &entity.Week{WeekName: "missing membership"})
	require.ErrorIs(t, err, entity.ErrInvalidInput)

	err = svc.SaveGroupAttendee(ctx, &entity.GroupAttendee{GroupSession: 60})
	require.ErrorIs(t, err, entity.ErrInvalidInput)

	err = svc.DeleteAssignment(ctx, 0)
	require.ErrorIs(t, err, entity.ErrInvalidInput)

	mutator.AssertNotCalled(t, "SaveWeek", mock.Anything, mock.Anything)
	mutator.AssertNotCalled(t, "SaveGroupAttendee", mock.Anything, mock.Anything)
	mutator.AssertNotCalled(t, "DeleteAssignment", mock.Anything, mock.Anything)
}

func TestService_MutatorError(t *testing.T) {
	ctx := context.Background()
	mutator := &mocks.Mutator{}
	svc := readyService(t, mutator)
	boom := errors.New("boom")

	mutator.On("DeletePrivateCall", ctx, 50).Return(boom)
	err := svc.DeletePrivateCall(ctx, 50)
	require.ErrorIs(t, err, boom)
}

func TestService_ReadOnly(t *testing.T) {
	svc := readyService(t, nil)

	err := svc.SaveAssignment(context.Background(), &entity.Assignment{RelatedWeek: 30, AssignmentType: "essay"})
	require.ErrorIs(t, err, dashboard.ErrReadOnly)
}

func TestService_DeleteEachEntity(t *testing.T) {
	ctx := context.Background()
	mutator := &mocks.Mutator{}
	svc := readyService(t, mutator)

	mutator.On("DeleteWeek", ctx, 30).Return(nil)
	mutator.On("DeleteAssignment", ctx, 40).Return(nil)
	mutator.On("DeleteGroupSession", ctx, 60).Return(nil)
	mutator.On("DeleteGroupAttendee", ctx, 70).Return(nil)

	require.NoError(t, svc.DeleteWeek(ctx, 30))
	require.NoError(t, svc.DeleteAssignment(ctx, 40))
	require.NoError(t, svc.DeleteGroupSession(ctx, 60))
	require.NoError(t, svc.DeleteGroupAttendee(ctx, 70))
	mutator.AssertExpectations(t)
}
