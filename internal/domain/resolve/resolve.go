// Package resolve turns foreign keys into the records they point at.
//
// Every function is a pure read of a store snapshot. A scalar miss returns the
// zero value and false; a plural miss returns an empty, non-nil slice. Nothing
// here panics or returns an error because a reference is dangling.
package resolve

import (
	"github.com/rpggio/coachboard/internal/domain/entity"
	"github.com/rpggio/coachboard/internal/domain/store"
)

// StudentFromMembership follows membership.relatedStudent.
func StudentFromMembership(s *store.Store, membershipID int) (entity.Student, bool) {
	m, ok := s.Membership(membershipID)
	if !ok {
		return entity.Student{}, false
	}
	return s.Student(m.RelatedStudent)
}

// CourseFromMembership follows membership.relatedCourse.
func CourseFromMembership(s *store.Store, membershipID int) (entity.Course, bool) {
	m, ok := s.Membership(membershipID)
	if !ok {
		return entity.Course{}, false
	}
	return s.Course(m.RelatedCourse)
}

// CoachFromMembership follows membership -> student -> primaryCoach.id and
// matches that user id against coach.user.id.
func CoachFromMembership(s *store.Store, membershipID int) (entity.Coach, bool) {
	student, ok := StudentFromMembership(s, membershipID)
	if !ok {
		return entity.Coach{}, false
	}
	return CoachForStudent(s, student)
}

// CoachForStudent resolves a student's primary coach.
func CoachForStudent(s *store.Store, student entity.Student) (entity.Coach, bool) {
	if student.PrimaryCoach == nil || student.PrimaryCoach.ID <= 0 {
		return entity.Coach{}, false
	}
	return s.CoachByUserID(student.PrimaryCoach.ID)
}

// MembershipFromWeek follows week.relatedMembership.
func MembershipFromWeek(s *store.Store, weekID int) (entity.Membership, bool) {
	w, ok := s.Week(weekID)
	if !ok {
		return entity.Membership{}, false
	}
	return s.Membership(w.RelatedMembership)
}

// AssignmentsFromWeek returns every assignment pointing at weekID.
func AssignmentsFromWeek(s *store.Store, weekID int) []entity.Assignment {
	return s.AssignmentsForWeek(weekID)
}

// PrivateCallsFromWeek returns every private call pointing at weekID.
func PrivateCallsFromWeek(s *store.Store, weekID int) []entity.PrivateCall {
	return s.PrivateCallsForWeek(weekID)
}

// GroupSessionsFromWeek follows week <- attendee.student, attendee.groupSession
// -> group session. Sessions come back in attendee order, each at most once;
// attendees pointing at an unloaded session are skipped.
func GroupSessionsFromWeek(s *store.Store, weekID int) []entity.GroupSession {
	attendees := s.AttendeesForWeek(weekID)
	out := make([]entity.GroupSession, 0, len(attendees))
	seen := make(map[int]bool, len(attendees))
	for _, a := range attendees {
		if seen[a.GroupSession] {
			continue
		}
		gs, ok := s.GroupSession(a.GroupSession)
		if !ok {
			continue
		}
		seen[a.GroupSession] = true
		out = append(out, gs)
	}
	return out
}

// AttendeesFromGroupSession returns the attendee rows of one group session.
func AttendeesFromGroupSession(s *store.Store, groupSessionID int) []entity.GroupAttendee {
	return s.AttendeesForGroupSession(groupSessionID)
}

// AttendeeWeeksFromGroupSession resolves each attendee of a group session to
// its week. Attendees whose week is not loaded are skipped.
func AttendeeWeeksFromGroupSession(s *store.Store, groupSessionID int) []entity.Week {
	attendees := s.AttendeesForGroupSession(groupSessionID)
	out := make([]entity.Week, 0, len(attendees))
	for _, a := range attendees {
		if w, ok := s.Week(a.RelatedWeek); ok {
			out = append(out, w)
		}
	}
	return out
}
