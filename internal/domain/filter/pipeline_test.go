package filter_test

import (
	"math/rand"
	"testing"

	"github.com/rpggio/coachboard/internal/domain/entity"
	"github.com/rpggio/coachboard/internal/domain/filter"
	"github.com/rpggio/coachboard/internal/domain/store"
	"github.com/stretchr/testify/require"
)

// Memberships 1..3 resolve to coached students; membership 4's student has
// no coach; membership 5 is not loaded.
func fixture() *store.Store {
	return store.New(store.Collections{
		Students: []entity.Student{
			{RecordID: 1, FullName: "Jane Doe", Email: "j.smith@example.com", PrimaryCoach: &entity.UserRef{ID: 100}},
			{RecordID: 2, FullName: "Émile Zola", Email: "emile@example.com", PrimaryCoach: &entity.UserRef{ID: 200}},
			{RecordID: 3, FullName: "Ravi Kumar", Email: "ravi@example.com", PrimaryCoach: &entity.UserRef{ID: 100}},
			{RecordID: 4, FullName: "Solo Learner", Email: "solo@example.com"},
		},
		Coaches: []entity.Coach{
			{RecordID: 10, User: entity.UserRef{ID: 100, Name: "Ana"}},
			{RecordID: 20, User: entity.UserRef{ID: 200, Name: "Ben"}},
		},
		Courses: []entity.Course{
			{RecordID: 1, Name: "Standard"},
			{RecordID: 2, Name: "Premium"},
		},
		Memberships: []entity.Membership{
			{RecordID: 1, RelatedStudent: 1, RelatedCourse: 1},
			{RecordID: 2, RelatedStudent: 2, RelatedCourse: 2},
			{RecordID: 3, RelatedStudent: 3, RelatedCourse: 1},
			{RecordID: 4, RelatedStudent: 4, RelatedCourse: 2},
		},
	})
}

func weeks() []entity.Week {
	return []entity.Week{
		{RecordID: 1, RelatedMembership: 1, WeekName: "w1", WeekStarts: "2024-03-10", Level: "Standard"},
		{RecordID: 2, RelatedMembership: 2, WeekName: "w2", WeekStarts: "2024-03-10", Level: "Premium", RecordsComplete: true},
		{RecordID: 3, RelatedMembership: 3, WeekName: "w3", WeekStarts: "2024-03-03", Level: "1-Month Challenge"},
		{RecordID: 4, RelatedMembership: 4, WeekName: "w4", WeekStarts: "2024-03-10", Level: "Premium", Notes: "Needs SMITH workbook"},
		{RecordID: 5, RelatedMembership: 5, WeekName: "w5", WeekStarts: "2024-03-10", Level: "Standard", HoldWeek: true},
		{RecordID: 6, RelatedMembership: 1, WeekName: "w6", WeekStarts: "2024-03-03", Level: "Standard", HoldWeek: true, RecordsComplete: true},
	}
}

func ids(ws []entity.Week) []int {
	out := make([]int, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.RecordID)
	}
	return out
}

func TestStages_Individually(t *testing.T) {
	s := fixture()

	tests := []struct {
		name  string
		apply func(*store.Store, []entity.Week, filter.State) []entity.Week
		state func(*filter.State)
		want  []int
	}{
		{"coachless on", filter.Coachless, func(st *filter.State) { st.FilterCoachless = true }, []int{1, 2, 3, 6}},
		{"coachless off", filter.Coachless, func(st *filter.State) {}, []int{1, 2, 3, 4, 5, 6}},
		{"coachless overridden by coach selection", filter.Coachless, func(st *filter.State) {
			st.FilterCoachless = true
			st.CoachID = 10
		}, []int{1, 2, 3, 4, 5, 6}},
		{"date range", filter.DateRange, func(st *filter.State) { st.DateRange = "2024-03-03" }, []int{3, 6}},
		{"date range all", filter.DateRange, func(st *filter.State) {}, []int{1, 2, 3, 4, 5, 6}},
		{"one month challenge", filter.OneMonthChallenge, func(st *filter.State) { st.FilterOneMonthChallenge = true }, []int{1, 2, 4, 5, 6}},
		{"one month challenge custom label", filter.OneMonthChallenge, func(st *filter.State) {
			st.FilterOneMonthChallenge = true
			st.ExcludedLevel = "Premium"
		}, []int{1, 3, 5, 6}},
		{"course", filter.Course, func(st *filter.State) { st.CourseID = 2 }, []int{2, 4}},
		{"course not loaded matches nothing", filter.Course, func(st *filter.State) { st.CourseID = 99 }, []int{}},
		{"hold weeks", filter.HoldWeeks, func(st *filter.State) { st.FilterHoldWeeks = true }, []int{1, 2, 3, 4}},
		{"incomplete only", filter.CompletionStage, func(st *filter.State) { st.Completion = filter.IncompleteOnly }, []int{1, 3, 4, 5}},
		{"complete only", filter.CompletionStage, func(st *filter.State) { st.Completion = filter.CompleteOnly }, []int{2, 6}},
		{"unknown completion is a no-op", filter.CompletionStage, func(st *filter.State) { st.Completion = "bogus" }, []int{1, 2, 3, 4, 5, 6}},
		{"coach", filter.Coach, func(st *filter.State) { st.CoachID = 10 }, []int{1, 3, 6}},
		{"search email or notes", filter.Search, func(st *filter.State) { st.Search = "smith" }, []int{1, 4, 6}},
		{"search unicode name", filter.Search, func(st *filter.State) { st.Search = "ÉMILE" }, []int{2}},
		{"search blank", filter.Search, func(st *filter.State) { st.Search = "   " }, []int{1, 2, 3, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := filter.PassThrough()
			tt.state(&st)
			require.Equal(t, tt.want, ids(tt.apply(s, weeks(), st)))
		})
	}
}

func TestStages_PassThroughKeepsEverything(t *testing.T) {
	s := fixture()
	for _, stage := range filter.Stages() {
		t.Run(stage.Name, func(t *testing.T) {
			require.Equal(t, weeks(), stage.Apply(s, weeks(), filter.PassThrough()))
		})
	}
}

func TestWeeks_DefaultState(t *testing.T) {
	got := filter.Weeks(fixture(), weeks(), filter.DefaultState())
	// 4 and 5 coachless, 2 complete, 6 hold; sorted by level.
	require.Equal(t, []int{3, 1}, ids(got))
}

func TestWeeks_CoachSelectionOverridesCoachless(t *testing.T) {
	st := filter.DefaultState()
	st.CoachID = 20
	st.Completion = filter.AllRecords
	require.Equal(t, []int{2}, ids(filter.Weeks(fixture(), weeks(), st)))
}

func TestWeeks_HoldWeekToggle(t *testing.T) {
	s := store.New(store.Collections{})
	in := []entity.Week{{RecordID: 1, HoldWeek: true, RecordsComplete: false}}

	st := filter.DefaultState()
	st.FilterCoachless = false
	require.Empty(t, filter.Weeks(s, in, st))

	st.FilterHoldWeeks = false
	require.Equal(t, []int{1}, ids(filter.Weeks(s, in, st)))
}

func TestWeeks_SearchMatchesEmail(t *testing.T) {
	st := filter.PassThrough()
	st.Search = "smith"
	got := filter.Weeks(fixture(), weeks()[:1], st)
	require.Len(t, got, 1)
	require.Equal(t, 1, got[0].RecordID)
}

func TestSort_LevelThenWeekName(t *testing.T) {
	in := []entity.Week{
		{RecordID: 1, Level: "B", WeekName: "w2"},
		{RecordID: 2, Level: "A", WeekName: "w1"},
		{RecordID: 3, Level: "A", WeekName: "w3"},
	}
	require.Equal(t, []int{2, 3, 1}, ids(filter.Sort(in)))
}

func TestSort_StableForEqualKeys(t *testing.T) {
	in := []entity.Week{
		{RecordID: 1, Level: "A", WeekName: "w"},
		{RecordID: 2, Level: "A", WeekName: "w"},
		{RecordID: 3, Level: "A", WeekName: "w"},
	}
	require.Equal(t, []int{1, 2, 3}, ids(filter.Sort(in)))
}

func TestWeeks_DoesNotMutateInput(t *testing.T) {
	in := weeks()
	before := weeks()
	_ = filter.Weeks(fixture(), in, filter.DefaultState())
	require.Equal(t, before, in)
}

func TestParseCompletion(t *testing.T) {
	require.Equal(t, filter.IncompleteOnly, filter.ParseCompletion("incompleteOnly"))
	require.Equal(t, filter.CompleteOnly, filter.ParseCompletion(" completeOnly "))
	require.Equal(t, filter.AllRecords, filter.ParseCompletion("allRecords"))
	require.Equal(t, filter.AllRecords, filter.ParseCompletion("whatever"))
}

// randomWeeks builds a reproducible mix of weeks over the fixture's memberships.
func randomWeeks(seed int64, n int) []entity.Week {
	r := rand.New(rand.NewSource(seed))
	levels := []string{"Standard", "Premium", "1-Month Challenge", ""}
	starts := []string{"2024-03-03", "2024-03-10", "2024-03-17"}
	out := make([]entity.Week, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, entity.Week{
			RecordID:          i + 1,
			RelatedMembership: r.Intn(6),
			WeekName:          []string{"w1", "w2", "w3"}[r.Intn(3)],
			WeekStarts:        starts[r.Intn(len(starts))],
			Level:             levels[r.Intn(len(levels))],
			HoldWeek:          r.Intn(4) == 0,
			RecordsComplete:   r.Intn(2) == 0,
		})
	}
	return out
}

func randomStates(seed int64, n int) []filter.State {
	r := rand.New(rand.NewSource(seed))
	completions := []filter.Completion{filter.IncompleteOnly, filter.CompleteOnly, filter.AllRecords, "junk"}
	ranges := []string{"all", "2024-03-10", "2024-03-03"}
	searches := []string{"", "smith", "example", "zzz"}
	out := []filter.State{filter.DefaultState(), filter.PassThrough()}
	for i := 0; i < n; i++ {
		out = append(out, filter.State{
			FilterCoachless:         r.Intn(2) == 0,
			DateRange:               ranges[r.Intn(len(ranges))],
			FilterOneMonthChallenge: r.Intn(2) == 0,
			CourseID:                r.Intn(3),
			FilterHoldWeeks:         r.Intn(2) == 0,
			Completion:              completions[r.Intn(len(completions))],
			CoachID:                 []int{0, 10, 20}[r.Intn(3)],
			Search:                  searches[r.Intn(len(searches))],
		})
	}
	return out
}

func TestWeeks_Properties(t *testing.T) {
	s := fixture()
	in := randomWeeks(7, 60)
	inIDs := make(map[int]entity.Week, len(in))
	for _, w := range in {
		inIDs[w.RecordID] = w
	}

	for i, st := range randomStates(11, 40) {
		once := filter.Weeks(s, in, st)

		for _, w := range once {
			orig, ok := inIDs[w.RecordID]
			require.True(t, ok, "state %d fabricated week %d", i, w.RecordID)
			require.Equal(t, orig, w)
		}

		require.Equal(t, once, filter.Weeks(s, once, st), "state %d not idempotent", i)
		require.Equal(t, once, filter.Weeks(s, in, st), "state %d not deterministic", i)
	}
}

func TestCompletion_Partition(t *testing.T) {
	s := fixture()
	in := randomWeeks(3, 50)

	st := filter.PassThrough()
	st.Completion = filter.IncompleteOnly
	incomplete := filter.CompletionStage(s, in, st)
	st.Completion = filter.CompleteOnly
	complete := filter.CompletionStage(s, in, st)
	st.Completion = filter.AllRecords
	all := filter.CompletionStage(s, in, st)

	seen := map[int]bool{}
	for _, w := range incomplete {
		seen[w.RecordID] = true
	}
	for _, w := range complete {
		require.False(t, seen[w.RecordID], "week %d in both partitions", w.RecordID)
		seen[w.RecordID] = true
	}
	require.Len(t, seen, len(all))
	for _, w := range all {
		require.True(t, seen[w.RecordID])
	}
}
