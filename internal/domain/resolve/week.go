package resolve

import (
	"github.com/rpggio/coachboard/internal/domain/entity"
	"github.com/rpggio/coachboard/internal/domain/store"
)

// Week-rooted joins. They start from a week value rather than an id so the
// filter stages can use them on rows that are not in the snapshot.

// StudentFromWeek resolves week -> membership -> student.
func StudentFromWeek(s *store.Store, w entity.Week) (entity.Student, bool) {
	return StudentFromMembership(s, w.RelatedMembership)
}

// CourseFromWeek resolves week -> membership -> course.
func CourseFromWeek(s *store.Store, w entity.Week) (entity.Course, bool) {
	return CourseFromMembership(s, w.RelatedMembership)
}

// CoachFromWeek resolves week -> membership -> student -> coach.
func CoachFromWeek(s *store.Store, w entity.Week) (entity.Coach, bool) {
	return CoachFromMembership(s, w.RelatedMembership)
}

// WeekByID returns a loaded week.
func WeekByID(s *store.Store, weekID int) (entity.Week, bool) {
	return s.Week(weekID)
}

// CoachByUserID returns the coach record for a user id.
func CoachByUserID(s *store.Store, userID int) (entity.Coach, bool) {
	if userID <= 0 {
		return entity.Coach{}, false
	}
	return s.CoachByUserID(userID)
}
