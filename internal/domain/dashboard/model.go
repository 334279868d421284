package dashboard

import (
	"time"

	"github.com/rpggio/coachboard/internal/domain/entity"
)

// Row is one line of the weeks table. Joins that miss are nil.
type Row struct {
	Week          entity.Week     `json:"week"`
	Student       *entity.Student `json:"student,omitempty"`
	Coach         *entity.Coach   `json:"coach,omitempty"`
	Course        *entity.Course  `json:"course,omitempty"`
	Assignments   int             `json:"assignments"`
	PrivateCalls  int             `json:"privateCalls"`
	GroupSessions int             `json:"groupSessions"`
}

// Result is a filtered, sorted weeks table.
type Result struct {
	Rows     []Row     `json:"rows"`
	Total    int       `json:"total"`
	Version  string    `json:"version"`
	LoadedAt time.Time `json:"loadedAt"`
}

// Detail is everything the dashboard knows about one week.
type Detail struct {
	Week          entity.Week           `json:"week"`
	Membership    *entity.Membership    `json:"membership,omitempty"`
	Student       *entity.Student       `json:"student,omitempty"`
	Coach         *entity.Coach         `json:"coach,omitempty"`
	Course        *entity.Course        `json:"course,omitempty"`
	Assignments   []entity.Assignment   `json:"assignments"`
	PrivateCalls  []entity.PrivateCall  `json:"privateCalls"`
	GroupSessions []entity.GroupSession `json:"groupSessions"`
	Version       string                `json:"version"`
}

// Options lists the values the filter controls offer.
type Options struct {
	Coaches []entity.Coach  `json:"coaches"`
	Courses []entity.Course `json:"courses"`
}

// Status describes the current snapshot.
type Status struct {
	Ready    bool           `json:"ready"`
	Version  string         `json:"version,omitempty"`
	LoadedAt time.Time      `json:"loadedAt,omitzero"`
	Counts   map[string]int `json:"counts,omitempty"`
}
