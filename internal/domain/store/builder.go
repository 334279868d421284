package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rpggio/coachboard/internal/domain/entity"
)

// ErrNotReady indicates some collections have not arrived yet.
var ErrNotReady = errors.New("data not ready")

// Collection names one of the fetched collections.
type Collection string

const (
	CollectionWeeks          Collection = "weeks"
	CollectionMemberships    Collection = "memberships"
	CollectionStudents       Collection = "students"
	CollectionCoaches        Collection = "coaches"
	CollectionCourses        Collection = "courses"
	CollectionAssignments    Collection = "assignments"
	CollectionPrivateCalls   Collection = "privateCalls"
	CollectionGroupSessions  Collection = "groupSessions"
	CollectionGroupAttendees Collection = "groupAttendees"
)

// AllCollections lists every collection required before a snapshot can be built.
var AllCollections = []Collection{
	CollectionWeeks,
	CollectionMemberships,
	CollectionStudents,
	CollectionCoaches,
	CollectionCourses,
	CollectionAssignments,
	CollectionPrivateCalls,
	CollectionGroupSessions,
	CollectionGroupAttendees,
}

// Builder accumulates collections as they arrive. It is safe for concurrent use.
type Builder struct {
	mu     sync.Mutex
	c      Collections
	loaded map[Collection]bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{loaded: make(map[Collection]bool, len(AllCollections))}
}

func (b *Builder) mark(c Collection, set func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	set()
	b.loaded[c] = true
}

func (b *Builder) SetWeeks(v []entity.Week) {
	b.mark(CollectionWeeks, func() { b.c.Weeks = v })
}

func (b *Builder) SetMemberships(v []entity.Membership) {
	b.mark(CollectionMemberships, func() { b.c.Memberships = v })
}

func (b *Builder) SetStudents(v []entity.Student) {
	b.mark(CollectionStudents, func() { b.c.Students = v })
}

func (b *Builder) SetCoaches(v []entity.Coach) {
	b.mark(CollectionCoaches, func() { b.c.Coaches = v })
}

func (b *Builder) SetCourses(v []entity.Course) {
	b.mark(CollectionCourses, func() { b.c.Courses = v })
}

func (b *Builder) SetAssignments(v []entity.Assignment) {
	b.mark(CollectionAssignments, func() { b.c.Assignments = v })
}

func (b *Builder) SetPrivateCalls(v []entity.PrivateCall) {
	b.mark(CollectionPrivateCalls, func() { b.c.PrivateCalls = v })
}

func (b *Builder) SetGroupSessions(v []entity.GroupSession) {
	b.mark(CollectionGroupSessions, func() { b.c.GroupSessions = v })
}

func (b *Builder) SetGroupAttendees(v []entity.GroupAttendee) {
	b.mark(CollectionGroupAttendees, func() { b.c.GroupAttendees = v })
}

// Loaded reports whether a collection has arrived. An empty collection counts.
func (b *Builder) Loaded(c Collection) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded[c]
}

// Missing lists the collections still outstanding, in AllCollections order.
func (b *Builder) Missing() []Collection {
	b.mu.Lock()
	defer b.mu.Unlock()
	var missing []Collection
	for _, c := range AllCollections {
		if !b.loaded[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// Ready is the conjunction of every collection's load state.
func (b *Builder) Ready() bool {
	return len(b.Missing()) == 0
}

// Build returns a snapshot once every collection has arrived.
func (b *Builder) Build() (*Store, error) {
	missing := b.Missing()
	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, c := range missing {
			names = append(names, string(c))
		}
		return nil, fmt.Errorf("%w: missing %s", ErrNotReady, strings.Join(names, ", "))
	}

	b.mu.Lock()
	c := b.c
	b.mu.Unlock()
	return New(c), nil
}
