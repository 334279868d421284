package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/coachboard/internal/domain/dashboard"
	"github.com/rpggio/coachboard/internal/domain/entity"
	"github.com/rpggio/coachboard/internal/domain/filter"
	"github.com/rpggio/coachboard/internal/domain/refdate"
	"github.com/rpggio/coachboard/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 12, 25, 12, 0, 0, 0, time.UTC)

func testFeed() *mocks.Feed {
	feed := &mocks.Feed{}
	feed.On("Weeks", mock.Anything, mock.Anything).Return([]entity.Week{
		{RecordID: 30, RelatedMembership: 20, WeekName: "W1", WeekStarts: "2024-12-22", WeekEnds: "2024-12-28", Level: "Standard"},
		{RecordID: 31, RelatedMembership: 21, WeekName: "W0", WeekStarts: "2024-12-15", WeekEnds: "2024-12-21", Level: "Standard"},
	}, nil)
	feed.On("Memberships", mock.Anything).Return([]entity.Membership{
		{RecordID: 20, RelatedStudent: 1, RelatedCourse: 5},
		{RecordID: 21, RelatedStudent: 2, RelatedCourse: 5},
	}, nil)
	feed.On("Students", mock.Anything).Return([]entity.Student{
		{RecordID: 1, FullName: "Sam Smith", PrimaryCoach: &entity.UserRef{ID: 100}},
		{RecordID: 2, FullName: "Ana Lopez"},
	}, nil)
	feed.On("Coaches", mock.Anything).Return([]entity.Coach{{RecordID: 10, User: entity.UserRef{ID: 100, Name: "Zed"}, Active: true}}, nil)
	feed.On("Courses", mock.Anything).Return([]entity.Course{{RecordID: 5, Name: "Standard"}}, nil)
	feed.On("Assignments", mock.Anything).Return([]entity.Assignment{{RecordID: 40, RelatedWeek: 30, AssignmentType: "Essay"}}, nil)
	feed.On("PrivateCalls", mock.Anything).Return([]entity.PrivateCall{}, nil)
	feed.On("GroupSessions", mock.Anything).Return([]entity.GroupSession{}, nil)
	feed.On("GroupAttendees", mock.Anything).Return([]entity.GroupAttendee{}, nil)
	return feed
}

func newDashboard(t *testing.T, refresh bool) *dashboard.Service {
	t.Helper()
	svc := dashboard.NewService(testFeed(), nil, dashboard.Config{
		WeeksBack: 3,
		Now:       func() time.Time { return testNow },
	}, nil, nil)
	if refresh {
		require.NoError(t, svc.Refresh(context.Background()))
	}
	return svc
}

func connect(t *testing.T, cfg Config) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	server := NewServer(cfg)
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

func callTool(t *testing.T, cs *sdkmcp.ClientSession, name string, args any) (*sdkmcp.CallToolResult, string) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return res, text.Text
}

func TestServer_ListTools(t *testing.T) {
	cs := connect(t, Config{Dashboard: newDashboard(t, true), TransportMode: "stdio"})

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"filter_weeks", "get_week", "list_filter_options", "reference_dates", "refresh_snapshot",
	}, names)
}

func TestServer_FilterWeeks(t *testing.T) {
	cs := connect(t, Config{Dashboard: newDashboard(t, true), TransportMode: "stdio"})

	res, text := callTool(t, cs, "filter_weeks", map[string]any{})
	require.False(t, res.IsError)
	var out FilterWeeksResult
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	require.Equal(t, 1, out.Total)
	require.Equal(t, 30, out.Rows[0].WeekID)
	require.Equal(t, "Sam Smith", out.Rows[0].Student)
	require.Equal(t, "Zed", out.Rows[0].Coach)
	require.Equal(t, "Standard", out.Rows[0].Course)
	require.Equal(t, 1, out.Rows[0].Assignments)

	_, text = callTool(t, cs, "filter_weeks", map[string]any{"coachless": false, "limit": 1})
	out = FilterWeeksResult{}
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	require.Equal(t, 2, out.Total)
	require.Len(t, out.Rows, 1)
	require.True(t, out.Rows[0].WeekID > 0)
	require.True(t, out.Truncated)

	_, text = callTool(t, cs, "filter_weeks", map[string]any{"coachless": false, "range": "lastWeek"})
	out = FilterWeeksResult{}
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	require.Len(t, out.Rows, 1)
	require.Equal(t, 31, out.Rows[0].WeekID)
	require.Equal(t, unknown, out.Rows[0].Coach)
}

func TestServer_FilterWeeksInvalidRange(t *testing.T) {
	cs := connect(t, Config{Dashboard: newDashboard(t, true), TransportMode: "stdio"})

	res, text := callTool(t, cs, "filter_weeks", map[string]any{"range": "someday"})
	require.True(t, res.IsError)
	var apiErr APIError
	require.NoError(t, json.Unmarshal([]byte(text), &apiErr))
	require.Equal(t, "INVALID_INPUT", apiErr.Code)
}

func TestServer_GetWeek(t *testing.T) {
	cs := connect(t, Config{Dashboard: newDashboard(t, true), TransportMode: "stdio"})

	res, text := callTool(t, cs, "get_week", map[string]any{"week_id": 30})
	require.False(t, res.IsError)
	var detail dashboard.Detail
	require.NoError(t, json.Unmarshal([]byte(text), &detail))
	require.Equal(t, 30, detail.Week.RecordID)
	require.NotNil(t, detail.Student)
	require.Len(t, detail.Assignments, 1)

	res, text = callTool(t, cs, "get_week", map[string]any{"week_id": 999})
	require.True(t, res.IsError)
	require.Contains(t, text, "WEEK_NOT_FOUND")
}

func TestServer_NotReady(t *testing.T) {
	cs := connect(t, Config{Dashboard: newDashboard(t, false), TransportMode: "stdio"})

	res, text := callTool(t, cs, "list_filter_options", map[string]any{})
	require.True(t, res.IsError)
	require.Contains(t, text, "NOT_READY")

	res, text = callTool(t, cs, "refresh_snapshot", map[string]any{})
	require.False(t, res.IsError)
	var status dashboard.Status
	require.NoError(t, json.Unmarshal([]byte(text), &status))
	require.True(t, status.Ready)
	require.Equal(t, 2, status.Counts["weeks"])

	res, _ = callTool(t, cs, "list_filter_options", map[string]any{})
	require.False(t, res.IsError)
}

func TestServer_ReferenceDates(t *testing.T) {
	cs := connect(t, Config{Dashboard: newDashboard(t, false), TransportMode: "stdio"})

	_, text := callTool(t, cs, "reference_dates", map[string]any{"weeks": 2})
	var dates refdate.Dates
	require.NoError(t, json.Unmarshal([]byte(text), &dates))
	require.Equal(t, "2024-12-22", dates.ThisWeek)
	require.Equal(t, []string{"2024-12-22", "2024-12-15"}, dates.Recent)

	res, text := callTool(t, cs, "reference_dates", map[string]any{"weeks": 1 << 40})
	require.True(t, res.IsError)
	var apiErr APIError
	require.NoError(t, json.Unmarshal([]byte(text), &apiErr))
	require.Equal(t, "INVALID_INPUT", apiErr.Code)
}

func TestServer_ToolDescriptions(t *testing.T) {
	cs := connect(t, Config{Dashboard: newDashboard(t, false), TransportMode: "stdio"})

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)
	var filterTool *sdkmcp.Tool
	for _, tool := range res.Tools {
		if tool.Name == "filter_weeks" {
			filterTool = tool
		}
	}
	require.NotNil(t, filterTool)
	require.Contains(t, filterTool.Description, "sorted by level and then week name")

	raw, err := json.Marshal(filterTool.InputSchema)
	require.NoError(t, err)
	require.Contains(t, string(raw), "Hide weeks marked as hold weeks")
	require.NotContains(t, string(raw), "memberships on hold")
}

func TestServer_DocResources(t *testing.T) {
	cs := connect(t, Config{Dashboard: newDashboard(t, false), TransportMode: "stdio"})

	res, err := cs.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "coachboard://docs/filters"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "Filter pipeline")
}

type stubResolver map[string]string

func (r stubResolver) ResolveToken(_ context.Context, token string) (string, error) {
	client, ok := r[token]
	if !ok {
		return "", errors.New("unknown token")
	}
	return client, nil
}

type headerTransport struct {
	token string
	base  http.RoundTripper
}

func (h headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+h.token)
	return h.base.RoundTrip(req)
}

func connectHTTP(t *testing.T, token string) *sdkmcp.ClientSession {
	t.Helper()
	server := NewServer(Config{
		Dashboard:     newDashboard(t, true),
		Resolver:      stubResolver{"secret": "ops"},
		AuthEnabled:   true,
		TransportMode: "http",
	})
	handler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server { return server }, nil)
	httpServer := httptest.NewServer(handler)
	t.Cleanup(httpServer.Close)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test", Version: "0.0.1"}, nil)
	cs, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   httpServer.URL,
		HTTPClient: &http.Client{Transport: headerTransport{token: token, base: http.DefaultTransport}},
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

func TestServer_HTTPAuth(t *testing.T) {
	cs := connectHTTP(t, "secret")
	res, _ := callTool(t, cs, "reference_dates", map[string]any{})
	require.False(t, res.IsError)

	cs = connectHTTP(t, "wrong")
	_, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: "reference_dates", Arguments: map[string]any{}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unauthorized")
}

func TestStateFromParams(t *testing.T) {
	dates := refdate.Compute(testNow, 4)
	no := false

	st, err := stateFromParams(filter.DefaultState(), dates, FilterWeeksParams{
		HoldWeeks:  &no,
		Range:      "thisWeek",
		Completion: "bogus",
		CoachID:    10,
		Query:      "  sam ",
	})
	require.NoError(t, err)
	require.False(t, st.FilterHoldWeeks)
	require.True(t, st.FilterCoachless)
	require.Equal(t, "2024-12-22", st.DateRange)
	require.Equal(t, filter.AllRecords, st.Completion)
	require.Equal(t, 10, st.CoachID)
	require.Equal(t, "sam", st.Search)

	_, err = stateFromParams(filter.DefaultState(), dates, FilterWeeksParams{CourseID: -1})
	require.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Equal(t, "NOT_READY", MapError(dashboard.ErrNotReady).Code)
	require.Equal(t, "WEEK_NOT_FOUND", MapError(dashboard.ErrWeekNotFound).Code)
	require.Equal(t, "INTERNAL", MapError(errors.New("boom")).Code)
}

func TestFormatPayload(t *testing.T) {
	require.Equal(t, "<nil>", formatPayload(nil))
	require.Equal(t, `{"a":1}`, formatPayload(map[string]int{"a": 1}))

	long := formatPayload(strings.Repeat("x", maxLoggedPayload*2))
	require.True(t, strings.HasSuffix(long, fmt.Sprintf("(%d bytes)", maxLoggedPayload*2+2)))
}
