package testserver

import (
	"github.com/rpggio/coachboard/internal/domain/entity"
	"github.com/rpggio/coachboard/internal/domain/store"
)

// Fixture is a small dataset covering two coaches, two courses and the weeks
// around Now.
//
//   - week 300: Jane Doe, this week, incomplete, coach Alice, Standard
//   - week 301: Jane Doe, last week, complete
//   - week 302: Bob Ray, this week, hold week, coach Carl, 1-Month Challenge
//   - week 303: Nia Park, this week, no primary coach
func Fixture() store.Collections {
	alice := entity.UserRef{ID: 900, Email: "alice@example.com", Name: "Alice Moss"}
	carl := entity.UserRef{ID: 901, Email: "carl@example.com", Name: "Carl Hu"}

	return store.Collections{
		Students: []entity.Student{
			{RecordID: 1, FullName: "Jane Doe", Email: "j.smith@example.com", PrimaryCoach: &alice},
			{RecordID: 2, FullName: "Bob Ray", Email: "bob@example.com", PrimaryCoach: &carl},
			{RecordID: 3, FullName: "Nia Park", Email: "nia@example.com"},
		},
		Coaches: []entity.Coach{
			{RecordID: 10, User: alice, Active: true},
			{RecordID: 11, User: carl, Active: true},
			{RecordID: 12, User: entity.UserRef{ID: 902, Name: "Old Coach"}, Active: false},
		},
		Courses: []entity.Course{
			{RecordID: 5, Name: "Standard", WeeklyPrivateCalls: 1, HasGroupCalls: true},
			{RecordID: 6, Name: "1-Month Challenge", WeeklyPrivateCalls: 2},
		},
		Memberships: []entity.Membership{
			{RecordID: 20, RelatedStudent: 1, RelatedCourse: 5, StartDate: "2024-10-01"},
			{RecordID: 21, RelatedStudent: 2, RelatedCourse: 6, StartDate: "2024-12-01"},
			{RecordID: 22, RelatedStudent: 3, RelatedCourse: 5, StartDate: "2024-11-01"},
		},
		Weeks: []entity.Week{
			{RecordID: 300, RelatedMembership: 20, WeekName: "Jane W12", WeekStarts: "2024-12-22", WeekEnds: "2024-12-28", Level: "Standard", MembershipCourseHasGroupCalls: true, MembershipCourseWeeklyPrivateCalls: 1},
			{RecordID: 301, RelatedMembership: 20, WeekName: "Jane W11", WeekStarts: "2024-12-15", WeekEnds: "2024-12-21", Level: "Standard", RecordsComplete: true},
			{RecordID: 302, RelatedMembership: 21, WeekName: "Bob W4", WeekStarts: "2024-12-22", WeekEnds: "2024-12-28", Level: "1-Month Challenge", HoldWeek: true},
			{RecordID: 303, RelatedMembership: 22, WeekName: "Nia W8", WeekStarts: "2024-12-22", WeekEnds: "2024-12-28", Level: "Standard"},
		},
		Assignments: []entity.Assignment{
			{RecordID: 400, RelatedWeek: 300, AssignmentType: "Essay", Rating: "Good", HomeworkCorrector: &alice},
			{RecordID: 401, RelatedWeek: 300, AssignmentType: "Listening"},
		},
		PrivateCalls: []entity.PrivateCall{
			{RecordID: 500, RelatedWeek: 300, Date: "2024-12-23", Caller: &alice},
		},
		GroupSessions: []entity.GroupSession{
			{RecordID: 600, Date: "2024-12-24", Coach: &carl, SessionType: "Conversation", Topic: "Holidays"},
		},
		GroupAttendees: []entity.GroupAttendee{
			{RecordID: 700, GroupSession: 600, RelatedWeek: 300},
		},
	}
}
