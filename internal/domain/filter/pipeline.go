// Package filter narrows and orders a list of weeks for the dashboard table.
//
// Each stage takes the previous stage's output and returns a freshly
// allocated slice; input slices are never written to.
package filter

import (
	"slices"
	"strings"

	"github.com/rpggio/coachboard/internal/domain/entity"
	"github.com/rpggio/coachboard/internal/domain/refdate"
	"github.com/rpggio/coachboard/internal/domain/resolve"
	"github.com/rpggio/coachboard/internal/domain/store"
	"golang.org/x/text/cases"
)

// Stage is one step of the pipeline.
type Stage struct {
	Name  string
	Apply func(s *store.Store, weeks []entity.Week, st State) []entity.Week
}

// Stages returns the pipeline in execution order. Later stages run on
// smaller inputs, and Coachless reads the coach selection that Coach applies.
func Stages() []Stage {
	return []Stage{
		{Name: "coachless", Apply: Coachless},
		{Name: "dateRange", Apply: DateRange},
		{Name: "oneMonthChallenge", Apply: OneMonthChallenge},
		{Name: "course", Apply: Course},
		{Name: "holdWeeks", Apply: HoldWeeks},
		{Name: "completion", Apply: CompletionStage},
		{Name: "coach", Apply: Coach},
		{Name: "search", Apply: Search},
	}
}

// Weeks runs every stage and sorts the result. The same weeks and state
// always produce the same output in the same order.
func Weeks(s *store.Store, weeks []entity.Week, st State) []entity.Week {
	out := weeks
	for _, stage := range Stages() {
		out = stage.Apply(s, out, st)
	}
	return Sort(out)
}

func keep(weeks []entity.Week, pred func(entity.Week) bool) []entity.Week {
	out := make([]entity.Week, 0, len(weeks))
	for _, w := range weeks {
		if pred(w) {
			out = append(out, w)
		}
	}
	return out
}

// Coachless drops weeks without a resolvable coach, unless a coach is
// explicitly selected.
func Coachless(s *store.Store, weeks []entity.Week, st State) []entity.Week {
	if !st.FilterCoachless || st.CoachID != 0 {
		return slices.Clone(weeks)
	}
	return keep(weeks, func(w entity.Week) bool {
		_, ok := resolve.CoachFromWeek(s, w)
		return ok
	})
}

// DateRange keeps weeks starting on the selected reference date.
func DateRange(_ *store.Store, weeks []entity.Week, st State) []entity.Week {
	if st.DateRange == "" || st.DateRange == refdate.All {
		return slices.Clone(weeks)
	}
	return keep(weeks, func(w entity.Week) bool {
		return w.WeekStarts == st.DateRange
	})
}

// OneMonthChallenge drops weeks whose snapshot level is the excluded label.
func OneMonthChallenge(_ *store.Store, weeks []entity.Week, st State) []entity.Week {
	if !st.FilterOneMonthChallenge {
		return slices.Clone(weeks)
	}
	excluded := st.ExcludedLevel
	if excluded == "" {
		excluded = DefaultExcludedLevel
	}
	return keep(weeks, func(w entity.Week) bool {
		return w.Level != excluded
	})
}

// Course keeps weeks whose live course is the selected one.
func Course(s *store.Store, weeks []entity.Week, st State) []entity.Week {
	if st.CourseID == 0 {
		return slices.Clone(weeks)
	}
	return keep(weeks, func(w entity.Week) bool {
		c, ok := resolve.CourseFromWeek(s, w)
		return ok && c.RecordID == st.CourseID
	})
}

// HoldWeeks drops hold weeks when enabled.
func HoldWeeks(_ *store.Store, weeks []entity.Week, st State) []entity.Week {
	if !st.FilterHoldWeeks {
		return slices.Clone(weeks)
	}
	return keep(weeks, func(w entity.Week) bool {
		return !w.HoldWeek
	})
}

// CompletionStage applies the tri-state completion filter.
func CompletionStage(_ *store.Store, weeks []entity.Week, st State) []entity.Week {
	switch st.Completion {
	case IncompleteOnly:
		return keep(weeks, func(w entity.Week) bool { return !w.RecordsComplete })
	case CompleteOnly:
		return keep(weeks, func(w entity.Week) bool { return w.RecordsComplete })
	default:
		return slices.Clone(weeks)
	}
}

// Coach keeps weeks whose resolved coach is the selected coach record.
func Coach(s *store.Store, weeks []entity.Week, st State) []entity.Week {
	if st.CoachID == 0 {
		return slices.Clone(weeks)
	}
	return keep(weeks, func(w entity.Week) bool {
		c, ok := resolve.CoachFromWeek(s, w)
		return ok && c.RecordID == st.CoachID
	})
}

// Search matches the term against the student's name and email and the
// week's notes, ignoring case.
func Search(s *store.Store, weeks []entity.Week, st State) []entity.Week {
	term := strings.TrimSpace(st.Search)
	if term == "" {
		return slices.Clone(weeks)
	}
	fold := cases.Fold()
	needle := fold.String(term)
	contains := func(v string) bool {
		return v != "" && strings.Contains(fold.String(v), needle)
	}

	return keep(weeks, func(w entity.Week) bool {
		if contains(w.Notes) {
			return true
		}
		student, ok := resolve.StudentFromWeek(s, w)
		if !ok {
			return false
		}
		return contains(student.FullName) || contains(student.Email)
	})
}

// Sort orders by level, then week name. Equal keys keep their input order.
func Sort(weeks []entity.Week) []entity.Week {
	out := slices.Clone(weeks)
	slices.SortStableFunc(out, func(a, b entity.Week) int {
		if c := strings.Compare(a.Level, b.Level); c != 0 {
			return c
		}
		return strings.Compare(a.WeekName, b.WeekName)
	})
	return out
}
