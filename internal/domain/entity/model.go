package entity

// UserRef is the user embedded on students, coaches, calls and sessions.
type UserRef struct {
	ID    int    `json:"id" validate:"gt=0"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Student is an enrolled learner.
type Student struct {
	RecordID     int      `json:"recordId"`
	FullName     string   `json:"fullName"`
	Email        string   `json:"email"`
	PrimaryCoach *UserRef `json:"primaryCoach,omitempty"`
}

// Coach is matched to Student.PrimaryCoach by User.ID, not by RecordID.
type Coach struct {
	RecordID int     `json:"recordId"`
	User     UserRef `json:"user"`
	Active   bool    `json:"active"`
}

// Course is the program a membership enrolls into.
type Course struct {
	RecordID           int    `json:"recordId"`
	Name               string `json:"name"`
	WeeklyPrivateCalls int    `json:"weeklyPrivateCalls"`
	HasGroupCalls      bool   `json:"hasGroupCalls"`
}

// Membership links a Student to a Course for a bounded period.
type Membership struct {
	RecordID       int    `json:"recordId"`
	RelatedStudent int    `json:"relatedStudent"`
	RelatedCourse  int    `json:"relatedCourse"`
	StartDate      string `json:"startDate,omitempty"`
	EndDate        string `json:"endDate,omitempty"`
	OnHold         bool   `json:"onHold"`
}

// Week is one week of coaching activity for a membership.
//
// Level, MembershipCourseHasGroupCalls, MembershipCourseWeeklyPrivateCalls and
// MembershipOnHold are copied from the membership and course when the week is
// created. They are not kept in sync with the live records.
type Week struct {
	RecordID                           int    `json:"recordId"`
	RelatedMembership                  int    `json:"relatedMembership" validate:"gt=0"`
	WeekName                           string `json:"weekName"`
	WeekStarts                         string `json:"weekStarts" validate:"required,datetime=2006-01-02"`
	WeekEnds                           string `json:"weekEnds" validate:"required,datetime=2006-01-02"`
	Level                              string `json:"level"`
	HoldWeek                           bool   `json:"holdWeek"`
	RecordsComplete                    bool   `json:"recordsComplete"`
	CurrentLesson                      string `json:"currentLesson,omitempty"`
	Notes                              string `json:"notes,omitempty"`
	MembershipCourseHasGroupCalls      bool   `json:"membershipCourseHasGroupCalls"`
	MembershipCourseWeeklyPrivateCalls int    `json:"membershipCourseWeeklyPrivateCalls" validate:"gte=0"`
	MembershipOnHold                   bool   `json:"membershipOnHold"`
}

// Assignment is homework submitted during a week.
type Assignment struct {
	RecordID          int      `json:"recordId"`
	RelatedWeek       int      `json:"relatedWeek" validate:"gt=0"`
	Rating            string   `json:"rating,omitempty"`
	AssignmentType    string   `json:"assignmentType" validate:"required"`
	HomeworkCorrector *UserRef `json:"homeworkCorrector,omitempty"`
	Notes             string   `json:"notes,omitempty"`
}

// PrivateCall is a one-on-one call held during a week.
type PrivateCall struct {
	RecordID    int      `json:"recordId"`
	RelatedWeek int      `json:"relatedWeek" validate:"gt=0"`
	Rating      string   `json:"rating,omitempty"`
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	Caller      *UserRef `json:"caller,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// GroupSession is a group call. It is reached from a week only through
// GroupAttendee rows.
type GroupSession struct {
	RecordID    int      `json:"recordId"`
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	Coach       *UserRef `json:"coach,omitempty"`
	SessionType string   `json:"sessionType"`
	Topic       string   `json:"topic,omitempty"`
}

// GroupAttendee records that a week attended a group session.
//
// The system-of-record names the week reference "student"; it has always held
// a Week record id. The wire name is kept, the Go name says what it holds.
type GroupAttendee struct {
	RecordID     int `json:"recordId"`
	GroupSession int `json:"groupSession" validate:"gt=0"`
	RelatedWeek  int `json:"student" validate:"gt=0"`
}
