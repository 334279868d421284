package mcp

// FilterWeeksParams are the filter_weeks tool arguments. Unset fields keep the
// dashboard's default filter state.
type FilterWeeksParams struct {
	Coachless         *bool  `json:"coachless,omitempty" jsonschema:"Hide weeks whose student has no primary coach"`
	Range             string `json:"range,omitempty" jsonschema:"Week start date (YYYY-MM-DD), a label (thisWeek, lastWeek, twoWeeksAgo, nextWeek) or all"`
	OneMonthChallenge *bool  `json:"one_month_challenge,omitempty" jsonschema:"Hide one-month-challenge weeks"`
	CourseID          int    `json:"course_id,omitempty" jsonschema:"Keep weeks whose membership is in this course"`
	HoldWeeks         *bool  `json:"hold_weeks,omitempty" jsonschema:"Hide weeks marked as hold weeks"`
	Completion        string `json:"completion,omitempty" jsonschema:"incompleteOnly, completeOnly or allRecords"`
	CoachID           int    `json:"coach_id,omitempty" jsonschema:"Keep weeks whose student's primary coach has this coach record id"`
	Query             string `json:"query,omitempty" jsonschema:"Case-insensitive match on student name or email"`
	Limit             int    `json:"limit,omitempty" jsonschema:"Maximum rows to return (0 for all)"`
}

// GetWeekParams are the get_week tool arguments.
type GetWeekParams struct {
	WeekID int `json:"week_id" jsonschema:"Week record id"`
}

// ReferenceDatesParams are the reference_dates tool arguments.
type ReferenceDatesParams struct {
	Weeks int `json:"weeks,omitempty" jsonschema:"Number of recent Sundays to list (defaults to the server setting)"`
}

// EmptyParams is used by tools without arguments.
type EmptyParams struct{}

// WeekRow is the condensed week row returned by filter_weeks.
type WeekRow struct {
	WeekID          int    `json:"week_id"`
	WeekName        string `json:"week_name"`
	WeekStarts      string `json:"week_starts"`
	Level           string `json:"level,omitempty"`
	Student         string `json:"student"`
	Coach           string `json:"coach"`
	Course          string `json:"course"`
	RecordsComplete bool   `json:"records_complete"`
	HoldWeek        bool   `json:"hold_week"`
	Assignments     int    `json:"assignments"`
	PrivateCalls    int    `json:"private_calls"`
	GroupSessions   int    `json:"group_sessions"`
}

// FilterWeeksResult is the filter_weeks response.
type FilterWeeksResult struct {
	Rows      []WeekRow `json:"rows"`
	Total     int       `json:"total"`
	Truncated bool      `json:"truncated,omitempty"`
	Version   string    `json:"version"`
}
