package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/coachboard/internal/domain/dashboard"
	"github.com/rpggio/coachboard/internal/domain/entity"
	"github.com/rpggio/coachboard/internal/domain/filter"
	"github.com/rpggio/coachboard/internal/domain/refdate"
)

const unknown = "Unknown"

func registerTools(server *sdkmcp.Server, d Dashboard) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "filter_weeks",
		Description: "Run the dashboard filters over the current snapshot and return matching weeks, sorted by level and then week name. Omitted arguments keep the default view.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in FilterWeeksParams) (*sdkmcp.CallToolResult, any, error) {
		st, err := stateFromParams(d.DefaultState(), d.ReferenceDates(0), in)
		if err != nil {
			return errorResult(err), nil, nil
		}
		res, err := d.Weeks(ctx, st)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(condense(res, in.Limit))
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_week",
		Description: "Get one week with its membership, student, coach, course, assignments, private calls and group sessions.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetWeekParams) (*sdkmcp.CallToolResult, any, error) {
		if in.WeekID <= 0 {
			return errorResult(fmt.Errorf("%w: week_id is required", entity.ErrInvalidInput)), nil, nil
		}
		detail, err := d.Week(ctx, in.WeekID)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(detail)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_filter_options",
		Description: "List active coaches and courses with the record ids accepted by filter_weeks.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, any, error) {
		opts, err := d.Options(ctx)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(opts)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reference_dates",
		Description: "Return this week's Sunday, the neighbouring week starts and a list of recent Sundays.",
	}, func(_ context.Context, _ *sdkmcp.CallToolRequest, in ReferenceDatesParams) (*sdkmcp.CallToolResult, any, error) {
		if in.Weeks < 0 || in.Weeks > refdate.MaxWeeks {
			return errorResult(fmt.Errorf("%w: weeks must be between 0 and %d", entity.ErrInvalidInput, refdate.MaxWeeks)), nil, nil
		}
		return jsonResult(d.ReferenceDates(in.Weeks))
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "refresh_snapshot",
		Description: "Reload every collection from the source and report the new snapshot status.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, any, error) {
		if err := d.Refresh(ctx); err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(d.Status())
	})
}

func stateFromParams(base filter.State, dates refdate.Dates, in FilterWeeksParams) (filter.State, error) {
	st := base
	if in.Coachless != nil {
		st.FilterCoachless = *in.Coachless
	}
	if in.OneMonthChallenge != nil {
		st.FilterOneMonthChallenge = *in.OneMonthChallenge
	}
	if in.HoldWeeks != nil {
		st.FilterHoldWeeks = *in.HoldWeeks
	}
	if in.CourseID < 0 || in.CoachID < 0 {
		return st, fmt.Errorf("%w: record ids must not be negative", entity.ErrInvalidInput)
	}
	st.CourseID = in.CourseID
	st.CoachID = in.CoachID
	if in.Range != "" {
		resolved, err := dates.Resolve(in.Range)
		if err != nil {
			return st, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
		}
		st.DateRange = resolved
	}
	if in.Completion != "" {
		st.Completion = filter.ParseCompletion(in.Completion)
	}
	st.Search = strings.TrimSpace(in.Query)
	return st, nil
}

func condense(res *dashboard.Result, limit int) FilterWeeksResult {
	out := FilterWeeksResult{
		Rows:    make([]WeekRow, 0, len(res.Rows)),
		Total:   res.Total,
		Version: res.Version,
	}
	for i, r := range res.Rows {
		if limit > 0 && i >= limit {
			out.Truncated = true
			break
		}
		row := WeekRow{
			WeekID:          r.Week.RecordID,
			WeekName:        r.Week.WeekName,
			WeekStarts:      r.Week.WeekStarts,
			Level:           r.Week.Level,
			Student:         unknown,
			Coach:           unknown,
			Course:          unknown,
			RecordsComplete: r.Week.RecordsComplete,
			HoldWeek:        r.Week.HoldWeek,
			Assignments:     r.Assignments,
			PrivateCalls:    r.PrivateCalls,
			GroupSessions:   r.GroupSessions,
		}
		if r.Student != nil {
			row.Student = r.Student.FullName
		}
		if r.Coach != nil {
			row.Coach = r.Coach.User.Name
		}
		if r.Course != nil {
			row.Course = r.Course.Name
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding tool result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func errorResult(err error) *sdkmcp.CallToolResult {
	apiErr := MapError(err)
	data, _ := json.Marshal(apiErr)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}
