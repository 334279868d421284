// Package store holds one immutable, indexed load of every collection the
// dashboard joins across.
package store

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/coachboard/internal/domain/entity"
)

// Collections is the raw batch handed over by the fetch layer.
type Collections struct {
	Weeks          []entity.Week          `json:"weeks"`
	Memberships    []entity.Membership    `json:"memberships"`
	Students       []entity.Student       `json:"students"`
	Coaches        []entity.Coach         `json:"coaches"`
	Courses        []entity.Course        `json:"courses"`
	Assignments    []entity.Assignment    `json:"assignments"`
	PrivateCalls   []entity.PrivateCall   `json:"privateCalls"`
	GroupSessions  []entity.GroupSession  `json:"groupSessions"`
	GroupAttendees []entity.GroupAttendee `json:"groupAttendees"`
}

// Store is a read-only snapshot. Indexes map record ids to slice positions
// and are built once in New.
type Store struct {
	version  string
	loadedAt time.Time

	weeks          []entity.Week
	memberships    []entity.Membership
	students       []entity.Student
	coaches        []entity.Coach
	courses        []entity.Course
	assignments    []entity.Assignment
	privateCalls   []entity.PrivateCall
	groupSessions  []entity.GroupSession
	groupAttendees []entity.GroupAttendee

	weekByID         map[int]int
	membershipByID   map[int]int
	studentByID      map[int]int
	coachByID        map[int]int
	coachByUserID    map[int]int
	courseByID       map[int]int
	groupSessionByID map[int]int

	assignmentsByWeek  map[int][]int
	privateCallsByWeek map[int][]int
	attendeesByWeek    map[int][]int
	attendeesBySession map[int][]int
}

// New copies the collections and builds every index. When a record id
// repeats, lookups return the first row carrying it.
func New(c Collections) *Store {
	s := &Store{
		version:  uuid.NewString(),
		loadedAt: time.Now().UTC(),

		weeks:          slices.Clone(c.Weeks),
		memberships:    slices.Clone(c.Memberships),
		students:       slices.Clone(c.Students),
		coaches:        slices.Clone(c.Coaches),
		courses:        slices.Clone(c.Courses),
		assignments:    slices.Clone(c.Assignments),
		privateCalls:   slices.Clone(c.PrivateCalls),
		groupSessions:  slices.Clone(c.GroupSessions),
		groupAttendees: slices.Clone(c.GroupAttendees),
	}

	s.weekByID = indexBy(s.weeks, func(w entity.Week) int { return w.RecordID })
	s.membershipByID = indexBy(s.memberships, func(m entity.Membership) int { return m.RecordID })
	s.studentByID = indexBy(s.students, func(st entity.Student) int { return st.RecordID })
	s.coachByID = indexBy(s.coaches, func(co entity.Coach) int { return co.RecordID })
	s.coachByUserID = indexBy(s.coaches, func(co entity.Coach) int { return co.User.ID })
	s.courseByID = indexBy(s.courses, func(co entity.Course) int { return co.RecordID })
	s.groupSessionByID = indexBy(s.groupSessions, func(g entity.GroupSession) int { return g.RecordID })

	s.assignmentsByWeek = groupBy(s.assignments, func(a entity.Assignment) int { return a.RelatedWeek })
	s.privateCallsByWeek = groupBy(s.privateCalls, func(p entity.PrivateCall) int { return p.RelatedWeek })
	s.attendeesByWeek = groupBy(s.groupAttendees, func(a entity.GroupAttendee) int { return a.RelatedWeek })
	s.attendeesBySession = groupBy(s.groupAttendees, func(a entity.GroupAttendee) int { return a.GroupSession })

	return s
}

func indexBy[T any](rows []T, key func(T) int) map[int]int {
	idx := make(map[int]int, len(rows))
	for i, row := range rows {
		k := key(row)
		if _, seen := idx[k]; seen {
			continue
		}
		idx[k] = i
	}
	return idx
}

func groupBy[T any](rows []T, key func(T) int) map[int][]int {
	idx := make(map[int][]int)
	for i, row := range rows {
		k := key(row)
		idx[k] = append(idx[k], i)
	}
	return idx
}

// Version identifies this load.
func (s *Store) Version() string { return s.version }

// LoadedAt is when the snapshot was built.
func (s *Store) LoadedAt() time.Time { return s.loadedAt }

// Counts reports the number of rows per collection.
func (s *Store) Counts() map[Collection]int {
	return map[Collection]int{
		CollectionWeeks:          len(s.weeks),
		CollectionMemberships:    len(s.memberships),
		CollectionStudents:       len(s.students),
		CollectionCoaches:        len(s.coaches),
		CollectionCourses:        len(s.courses),
		CollectionAssignments:    len(s.assignments),
		CollectionPrivateCalls:   len(s.privateCalls),
		CollectionGroupSessions:  len(s.groupSessions),
		CollectionGroupAttendees: len(s.groupAttendees),
	}
}

func (s *Store) Weeks() []entity.Week                 { return slices.Clone(s.weeks) }
func (s *Store) Memberships() []entity.Membership     { return slices.Clone(s.memberships) }
func (s *Store) Students() []entity.Student           { return slices.Clone(s.students) }
func (s *Store) Coaches() []entity.Coach              { return slices.Clone(s.coaches) }
func (s *Store) Courses() []entity.Course             { return slices.Clone(s.courses) }
func (s *Store) Assignments() []entity.Assignment     { return slices.Clone(s.assignments) }
func (s *Store) PrivateCalls() []entity.PrivateCall   { return slices.Clone(s.privateCalls) }
func (s *Store) GroupSessions() []entity.GroupSession { return slices.Clone(s.groupSessions) }
func (s *Store) GroupAttendees() []entity.GroupAttendee {
	return slices.Clone(s.groupAttendees)
}

// Week returns the week with the given record id.
func (s *Store) Week(id int) (entity.Week, bool) {
	return lookup(s.weeks, s.weekByID, id)
}

// Membership returns the membership with the given record id.
func (s *Store) Membership(id int) (entity.Membership, bool) {
	return lookup(s.memberships, s.membershipByID, id)
}

// Student returns the student with the given record id.
func (s *Store) Student(id int) (entity.Student, bool) {
	return lookup(s.students, s.studentByID, id)
}

// Coach returns the coach with the given record id.
func (s *Store) Coach(id int) (entity.Coach, bool) {
	return lookup(s.coaches, s.coachByID, id)
}

// CoachByUserID returns the coach whose user has the given id.
func (s *Store) CoachByUserID(userID int) (entity.Coach, bool) {
	return lookup(s.coaches, s.coachByUserID, userID)
}

// Course returns the course with the given record id.
func (s *Store) Course(id int) (entity.Course, bool) {
	return lookup(s.courses, s.courseByID, id)
}

// GroupSession returns the group session with the given record id.
func (s *Store) GroupSession(id int) (entity.GroupSession, bool) {
	return lookup(s.groupSessions, s.groupSessionByID, id)
}

// AssignmentsForWeek returns assignments referencing weekID in load order.
func (s *Store) AssignmentsForWeek(weekID int) []entity.Assignment {
	return gather(s.assignments, s.assignmentsByWeek[weekID])
}

// PrivateCallsForWeek returns private calls referencing weekID in load order.
func (s *Store) PrivateCallsForWeek(weekID int) []entity.PrivateCall {
	return gather(s.privateCalls, s.privateCallsByWeek[weekID])
}

// AttendeesForWeek returns attendee rows whose week reference is weekID.
func (s *Store) AttendeesForWeek(weekID int) []entity.GroupAttendee {
	return gather(s.groupAttendees, s.attendeesByWeek[weekID])
}

// AttendeesForGroupSession returns attendee rows of one group session.
func (s *Store) AttendeesForGroupSession(groupSessionID int) []entity.GroupAttendee {
	return gather(s.groupAttendees, s.attendeesBySession[groupSessionID])
}

func lookup[T any](rows []T, idx map[int]int, id int) (T, bool) {
	i, ok := idx[id]
	if !ok {
		var zero T
		return zero, false
	}
	return rows[i], true
}

func gather[T any](rows []T, positions []int) []T {
	out := make([]T, 0, len(positions))
	for _, i := range positions {
		out = append(out, rows[i])
	}
	return out
}
