package filter

import (
	"strings"

	"github.com/rpggio/coachboard/internal/domain/refdate"
)

// Completion selects weeks by their recordsComplete flag.
type Completion string

const (
	IncompleteOnly Completion = "incompleteOnly"
	CompleteOnly   Completion = "completeOnly"
	AllRecords     Completion = "allRecords"
)

// DefaultExcludedLevel is the course label hidden by the one-month-challenge stage.
const DefaultExcludedLevel = "1-Month Challenge"

// State is every filter control the dashboard exposes. Zero ids mean "any".
type State struct {
	FilterCoachless         bool       `json:"filterCoachless"`
	DateRange               string     `json:"dateRange"`
	FilterOneMonthChallenge bool       `json:"filterOneMonthChallenge"`
	ExcludedLevel           string     `json:"excludedLevel,omitempty"`
	CourseID                int        `json:"courseId,omitempty"`
	FilterHoldWeeks         bool       `json:"filterHoldWeeks"`
	Completion              Completion `json:"filterByCompletion"`
	CoachID                 int        `json:"coachId,omitempty"`
	Search                  string     `json:"search,omitempty"`
}

// DefaultState hides hold weeks, coachless weeks and completed weeks and
// leaves every other stage passing through.
func DefaultState() State {
	return State{
		FilterCoachless:         true,
		DateRange:               refdate.All,
		FilterOneMonthChallenge: false,
		ExcludedLevel:           DefaultExcludedLevel,
		FilterHoldWeeks:         true,
		Completion:              IncompleteOnly,
	}
}

// PassThrough turns every stage into a no-op.
func PassThrough() State {
	return State{
		DateRange:  refdate.All,
		Completion: AllRecords,
	}
}

// ParseCompletion normalizes external input. Unknown values select AllRecords.
func ParseCompletion(v string) Completion {
	switch Completion(strings.TrimSpace(v)) {
	case IncompleteOnly:
		return IncompleteOnly
	case CompleteOnly:
		return CompleteOnly
	default:
		return AllRecords
	}
}
