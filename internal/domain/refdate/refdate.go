// Package refdate computes the Sunday-anchored dates the dashboard uses to
// name weeks ("this week", "last week", ...).
package refdate

import (
	"fmt"
	"time"
)

// Layout is the ISO date format used on the wire.
const Layout = "2006-01-02"

// All bypasses the date-range filter.
const All = "all"

// Labels accepted by Resolve.
const (
	LabelThisWeek    = "thisWeek"
	LabelLastWeek    = "lastWeek"
	LabelTwoWeeksAgo = "twoWeeksAgo"
	LabelNextWeek    = "nextWeek"
)

// Dates are ISO week-start dates relative to a fixed instant.
type Dates struct {
	ThisWeek    string   `json:"thisWeek"`
	LastWeek    string   `json:"lastWeek"`
	TwoWeeksAgo string   `json:"twoWeeksAgo"`
	NextWeek    string   `json:"nextWeek"`
	Recent      []string `json:"recent"`
}

// Range is an inclusive date window.
type Range struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MaxWeeks caps the number of recent Sundays Compute lists.
const MaxWeeks = 520

// Compute returns the reference dates for now. weeks is the number of
// Sundays listed in Recent, starting at ThisWeek and going back, clamped
// to [1, MaxWeeks].
func Compute(now time.Time, weeks int) Dates {
	weeks = min(max(weeks, 1), MaxWeeks)

	sunday := MostRecentSunday(now)
	d := Dates{
		ThisWeek:    format(sunday),
		LastWeek:    format(sunday.AddDate(0, 0, -7)),
		TwoWeeksAgo: format(sunday.AddDate(0, 0, -14)),
		NextWeek:    format(sunday.AddDate(0, 0, 7)),
		Recent:      make([]string, 0, weeks),
	}
	for i := 0; i < weeks; i++ {
		d.Recent = append(d.Recent, format(sunday.AddDate(0, 0, -7*i)))
	}
	return d
}

// MostRecentSunday returns midnight UTC of the Sunday on or before t.
func MostRecentSunday(t time.Time) time.Time {
	u := t.UTC()
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// Range covers the oldest recent Sunday through the Saturday closing next week.
func (d Dates) Range() Range {
	from := d.ThisWeek
	if len(d.Recent) > 0 {
		from = d.Recent[len(d.Recent)-1]
	}
	to := d.NextWeek
	if next, err := time.Parse(Layout, d.NextWeek); err == nil {
		to = format(next.AddDate(0, 0, 6))
	}
	return Range{From: from, To: to}
}

// Resolve maps a label, "all", an empty string, or an ISO date to a value for
// the date-range filter. Empty input means All.
func (d Dates) Resolve(value string) (string, error) {
	switch value {
	case "", All:
		return All, nil
	case LabelThisWeek:
		return d.ThisWeek, nil
	case LabelLastWeek:
		return d.LastWeek, nil
	case LabelTwoWeeksAgo:
		return d.TwoWeeksAgo, nil
	case LabelNextWeek:
		return d.NextWeek, nil
	}
	if _, err := time.Parse(Layout, value); err != nil {
		return "", fmt.Errorf("unknown date range %q", value)
	}
	return value, nil
}

func format(t time.Time) string {
	return t.Format(Layout)
}
