package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `coachboard answers questions about weekly coaching activity.

Model:
- Week: one week of a student's membership. Carries a level, hold flag and recordsComplete flag.
- Membership links a student to a course. Students have a primary coach.
- Assignments and private calls hang off a week. Group sessions are reached through attendee rows.

Workflow:
1) Call reference_dates to learn which Sunday starts this week.
2) Call list_filter_options for coach and course ids.
3) Call filter_weeks. With no arguments it returns the default view: incomplete weeks, no hold weeks, no coachless weeks.
4) Call get_week for the full record set of one week.
5) Call refresh_snapshot only when the data is known to have changed.

Docs:
- coachboard://docs/filters
- coachboard://docs/dates
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "coachboard://docs/filters",
		Name:        "docs_filters",
		Title:       "Filter pipeline",
		Description: "Order and meaning of every filter_weeks argument.",
		Content: `# Filter pipeline

Filters run in a fixed order. Each stage only narrows the set.

1. ` + "`coachless`" + `: drop weeks without a resolvable coach. Skipped when ` + "`coach_id`" + ` is set.
2. ` + "`range`" + `: keep weeks starting on the given Sunday. ` + "`all`" + ` disables the stage.
3. ` + "`one_month_challenge`" + `: drop weeks at the one-month-challenge level.
4. ` + "`course_id`" + `: keep weeks whose membership is in the course.
5. ` + "`hold_weeks`" + `: drop hold weeks.
6. ` + "`completion`" + `: ` + "`incompleteOnly`" + `, ` + "`completeOnly`" + ` or ` + "`allRecords`" + `. Unknown values mean ` + "`allRecords`" + `.
7. ` + "`coach_id`" + `: keep weeks whose resolved coach is this coach record.
8. ` + "`query`" + `: case-insensitive substring of week notes, student name or student email.

Results are sorted by level, then week name.
Names that cannot be resolved are shown as ` + "`Unknown`" + `.
`,
	},
	{
		URI:         "coachboard://docs/dates",
		Name:        "docs_dates",
		Title:       "Reference dates",
		Description: "How week-start labels map to dates.",
		Content: `# Reference dates

Weeks start on Sunday. ` + "`thisWeek`" + ` is the most recent Sunday on or before today.
` + "`lastWeek`" + `, ` + "`twoWeeksAgo`" + ` and ` + "`nextWeek`" + ` step by seven days.

The ` + "`range`" + ` argument of filter_weeks accepts any of these labels, an ISO date (YYYY-MM-DD) or ` + "`all`" + `.
The snapshot only holds weeks inside the configured look-back window.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
