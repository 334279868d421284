package dashboard

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rpggio/coachboard/internal/domain/entity"
	"github.com/rpggio/coachboard/internal/domain/filter"
	"github.com/rpggio/coachboard/internal/domain/refdate"
	"github.com/rpggio/coachboard/internal/domain/resolve"
	"github.com/rpggio/coachboard/internal/domain/store"
	"github.com/rpggio/coachboard/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// Service owns the current snapshot and answers dashboard queries against it.
type Service struct {
	feed     Feed
	mutator  Mutator
	cfg      Config
	metrics  *metrics.Metrics
	logger   *slog.Logger
	snapshot atomic.Pointer[store.Store]

	// loads numbers each Refresh at start; storedAt is the number of the
	// load behind the current snapshot. A load only replaces a snapshot
	// that came from an earlier-started load.
	loads    atomic.Uint64
	storeMu  sync.Mutex
	storedAt uint64
}

// NewService creates a new dashboard service. mutator may be nil, in which
// case every write returns ErrReadOnly.
func NewService(
	feed Feed,
	mutator Mutator,
	cfg Config,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		feed:    feed,
		mutator: mutator,
		cfg:     cfg.withDefaults(),
		metrics: m,
		logger:  logger,
	}
}

// ReferenceDates returns the reference dates for the service clock.
func (s *Service) ReferenceDates(weeks int) refdate.Dates {
	if weeks <= 0 {
		weeks = s.cfg.WeeksBack
	}
	return refdate.Compute(s.cfg.Now(), weeks)
}

// DefaultState returns the initial filter state with the configured
// excluded level.
func (s *Service) DefaultState() filter.State {
	st := filter.DefaultState()
	st.ExcludedLevel = s.cfg.ExcludedLevel
	return st
}

// Refresh loads every collection and replaces the snapshot. When any
// collection fails the previous snapshot stays in place. Overlapping
// refreshes never replace a snapshot with data from a load that started
// earlier.
func (s *Service) Refresh(ctx context.Context) error {
	seq := s.loads.Add(1)
	start := time.Now()
	snap, err := s.load(ctx)
	s.metrics.ObserveRefresh(time.Since(start), err)
	if err != nil {
		s.logger.Warn("snapshot refresh failed", "error", err)
		return err
	}

	if !s.publish(seq, snap) {
		s.logger.Debug("snapshot refresh superseded", "load", seq, "duration", time.Since(start))
		return nil
	}
	counts := make(map[string]int, len(store.AllCollections))
	for c, n := range snap.Counts() {
		counts[string(c)] = n
	}
	s.metrics.SetSnapshotRows(counts)
	s.logger.Info("snapshot refreshed",
		"version", snap.Version(),
		"weeks", counts[string(store.CollectionWeeks)],
		"duration", time.Since(start))
	return nil
}

func (s *Service) publish(seq uint64, snap *store.Store) bool {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()
	if seq < s.storedAt {
		return false
	}
	s.storedAt = seq
	s.snapshot.Store(snap)
	return true
}

func (s *Service) load(ctx context.Context) (*store.Store, error) {
	rng := s.ReferenceDates(s.cfg.WeeksBack).Range()
	b := store.NewBuilder()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		v, err := s.feed.Weeks(ctx, rng)
		if err != nil {
			return fmt.Errorf("loading weeks: %w", err)
		}
		b.SetWeeks(v)
		return nil
	})
	g.Go(func() error {
		v, err := s.feed.Memberships(ctx)
		if err != nil {
			return fmt.Errorf("loading memberships: %w", err)
		}
		b.SetMemberships(v)
		return nil
	})
	g.Go(func() error {
		v, err := s.feed.Students(ctx)
		if err != nil {
			return fmt.Errorf("loading students: %w", err)
		}
		b.SetStudents(v)
		return nil
	})
	g.Go(func() error {
		v, err := s.feed.Coaches(ctx)
		if err != nil {
			return fmt.Errorf("loading coaches: %w", err)
		}
		b.SetCoaches(v)
		return nil
	})
	g.Go(func() error {
		v, err := s.feed.Courses(ctx)
		if err != nil {
			return fmt.Errorf("loading courses: %w", err)
		}
		b.SetCourses(v)
		return nil
	})
	g.Go(func() error {
		v, err := s.feed.Assignments(ctx)
		if err != nil {
			return fmt.Errorf("loading assignments: %w", err)
		}
		b.SetAssignments(v)
		return nil
	})
	g.Go(func() error {
		v, err := s.feed.PrivateCalls(ctx)
		if err != nil {
			return fmt.Errorf("loading private calls: %w", err)
		}
		b.SetPrivateCalls(v)
		return nil
	})
	g.Go(func() error {
		v, err := s.feed.GroupSessions(ctx)
		if err != nil {
			return fmt.Errorf("loading group sessions: %w", err)
		}
		b.SetGroupSessions(v)
		return nil
	})
	g.Go(func() error {
		v, err := s.feed.GroupAttendees(ctx)
		if err != nil {
			return fmt.Errorf("loading group attendees: %w", err)
		}
		b.SetGroupAttendees(v)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return b.Build()
}

// Snapshot returns the current store, or ErrNotReady before the first
// successful refresh.
func (s *Service) Snapshot() (*store.Store, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNotReady
	}
	return snap, nil
}

// Status reports whether a snapshot is loaded and what it holds.
func (s *Service) Status() Status {
	snap := s.snapshot.Load()
	if snap == nil {
		return Status{}
	}
	counts := make(map[string]int, len(store.AllCollections))
	for c, n := range snap.Counts() {
		counts[string(c)] = n
	}
	return Status{
		Ready:    true,
		Version:  snap.Version(),
		LoadedAt: snap.LoadedAt(),
		Counts:   counts,
	}
}

// Weeks runs the filter pipeline over the snapshot and projects table rows.
func (s *Service) Weeks(ctx context.Context, st filter.State) (*Result, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	if st.ExcludedLevel == "" {
		st.ExcludedLevel = s.cfg.ExcludedLevel
	}

	start := time.Now()
	weeks := filter.Weeks(snap, snap.Weeks(), st)
	s.metrics.ObserveFilter(time.Since(start), len(weeks))

	rows := make([]Row, 0, len(weeks))
	for _, w := range weeks {
		rows = append(rows, project(snap, w))
	}
	s.logger.DebugContext(ctx, "weeks filtered", "rows", len(rows), "version", snap.Version())

	return &Result{
		Rows:     rows,
		Total:    len(rows),
		Version:  snap.Version(),
		LoadedAt: snap.LoadedAt(),
	}, nil
}

func project(snap *store.Store, w entity.Week) Row {
	row := Row{
		Week:          w,
		Assignments:   len(resolve.AssignmentsFromWeek(snap, w.RecordID)),
		PrivateCalls:  len(resolve.PrivateCallsFromWeek(snap, w.RecordID)),
		GroupSessions: len(resolve.GroupSessionsFromWeek(snap, w.RecordID)),
	}
	if v, ok := resolve.StudentFromWeek(snap, w); ok {
		row.Student = &v
	}
	if v, ok := resolve.CoachFromWeek(snap, w); ok {
		row.Coach = &v
	}
	if v, ok := resolve.CourseFromWeek(snap, w); ok {
		row.Course = &v
	}
	return row
}

// Week returns one week with every related record.
func (s *Service) Week(ctx context.Context, id int) (*Detail, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	w, ok := resolve.WeekByID(snap, id)
	if !ok {
		return nil, ErrWeekNotFound
	}

	d := &Detail{
		Week:          w,
		Assignments:   resolve.AssignmentsFromWeek(snap, w.RecordID),
		PrivateCalls:  resolve.PrivateCallsFromWeek(snap, w.RecordID),
		GroupSessions: resolve.GroupSessionsFromWeek(snap, w.RecordID),
		Version:       snap.Version(),
	}
	if v, ok := resolve.MembershipFromWeek(snap, w.RecordID); ok {
		d.Membership = &v
	}
	if v, ok := resolve.StudentFromWeek(snap, w); ok {
		d.Student = &v
	}
	if v, ok := resolve.CoachFromWeek(snap, w); ok {
		d.Coach = &v
	}
	if v, ok := resolve.CourseFromWeek(snap, w); ok {
		d.Course = &v
	}
	return d, nil
}

// Options lists active coaches and all courses, each sorted by name.
func (s *Service) Options(ctx context.Context) (*Options, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	coaches := slices.DeleteFunc(snap.Coaches(), func(c entity.Coach) bool { return !c.Active })
	slices.SortStableFunc(coaches, func(a, b entity.Coach) int {
		return cmp.Or(cmp.Compare(a.User.Name, b.User.Name), cmp.Compare(a.RecordID, b.RecordID))
	})
	courses := snap.Courses()
	slices.SortStableFunc(courses, func(a, b entity.Course) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.RecordID, b.RecordID))
	})

	return &Options{Coaches: coaches, Courses: courses}, nil
}
