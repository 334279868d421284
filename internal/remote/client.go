// Package remote reads and writes the coaching collections over the system
// of record's REST API.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/rpggio/coachboard/internal/domain/entity"
	"github.com/rpggio/coachboard/internal/domain/refdate"
	"github.com/rpggio/coachboard/internal/repository"
)

// Collection paths.
const (
	PathWeeks          = "/weeks"
	PathMemberships    = "/memberships"
	PathStudents       = "/students"
	PathCoaches        = "/coaches"
	PathCourses        = "/courses"
	PathAssignments    = "/assignments"
	PathPrivateCalls   = "/private-calls"
	PathGroupSessions  = "/group-sessions"
	PathGroupAttendees = "/group-attendees"
)

// Options configures a Client.
type Options struct {
	BaseURL     string
	Token       string
	Timeout     time.Duration
	MaxRetries  int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
	Logger      *slog.Logger
}

// Client satisfies dashboard.Feed and dashboard.Mutator over HTTP.
type Client struct {
	http   *resty.Client
	opts   Options
	logger *slog.Logger
}

// StatusError is a non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Unwrap reports server-side failures as repository.ErrUnavailable.
func (e *StatusError) Unwrap() error {
	if e.Status >= 500 {
		return repository.ErrUnavailable
	}
	return nil
}

// NewClient creates a new Client.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("remote: base URL is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = 200 * time.Millisecond
	}
	if opts.MaxBackoff <= 0 {
		opts.MaxBackoff = 5 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := resty.New().
		SetBaseURL(opts.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(opts.Timeout)
	if opts.Token != "" {
		c.SetAuthToken(opts.Token)
	}

	return &Client{http: c, opts: opts, logger: logger}, nil
}

func (c *Client) newBackoff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.opts.BaseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = c.opts.MaxBackoff
	exp.MaxElapsedTime = 0
	exp.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(c.opts.MaxRetries)), ctx)
}

// do sends one request. Transport errors and 5xx are retried for reads;
// writes are sent once.
func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	attempt := func() error {
		req := c.http.R().SetContext(ctx)
		if query != nil {
			req.SetQueryParams(query)
		}
		if body != nil {
			req.SetBody(body)
		}

		resp, err := req.Execute(method, path)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("%s %s: %w: %v", method, path, repository.ErrUnavailable, err)
		}

		status := resp.StatusCode()
		switch {
		case status == http.StatusNotFound:
			return backoff.Permanent(fmt.Errorf("%s %s: %w", method, path, repository.ErrNotFound))
		case status == http.StatusConflict:
			return backoff.Permanent(fmt.Errorf("%s %s: %w", method, path, repository.ErrConflict))
		case status >= 500:
			return &StatusError{Method: method, Path: path, Status: status, Body: resp.String()}
		case status >= 400:
			return backoff.Permanent(&StatusError{Method: method, Path: path, Status: status, Body: resp.String()})
		}

		if out == nil || len(resp.Body()) == 0 {
			return nil
		}
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return backoff.Permanent(fmt.Errorf("%s %s: decode response: %w", method, path, err))
		}
		return nil
	}

	if method != http.MethodGet {
		err := attempt()
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			return perm.Err
		}
		return err
	}

	return backoff.RetryNotify(attempt, c.newBackoff(ctx), func(err error, wait time.Duration) {
		c.logger.Warn("remote request failed, retrying", "method", method, "path", path, "wait", wait, "error", err)
	})
}

func list[T any](ctx context.Context, c *Client, path string, query map[string]string) ([]T, error) {
	out := []T{}
	if err := c.do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// save POSTs new records and PUTs existing ones. The response body, when
// present, replaces v so server-assigned ids flow back.
func save(ctx context.Context, c *Client, path string, id int, v any) error {
	if id == 0 {
		return c.do(ctx, http.MethodPost, path, nil, v, v)
	}
	return c.do(ctx, http.MethodPut, path+"/"+strconv.Itoa(id), nil, v, v)
}

func (c *Client) remove(ctx context.Context, path string, id int) error {
	return c.do(ctx, http.MethodDelete, path+"/"+strconv.Itoa(id), nil, nil, nil)
}

func (c *Client) Weeks(ctx context.Context, r refdate.Range) ([]entity.Week, error) {
	query := map[string]string{}
	if r.From != "" {
		query["from"] = r.From
	}
	if r.To != "" {
		query["to"] = r.To
	}
	return list[entity.Week](ctx, c, PathWeeks, query)
}

func (c *Client) Memberships(ctx context.Context) ([]entity.Membership, error) {
	return list[entity.Membership](ctx, c, PathMemberships, nil)
}

func (c *Client) Students(ctx context.Context) ([]entity.Student, error) {
	return list[entity.Student](ctx, c, PathStudents, nil)
}

func (c *Client) Coaches(ctx context.Context) ([]entity.Coach, error) {
	return list[entity.Coach](ctx, c, PathCoaches, nil)
}

func (c *Client) Courses(ctx context.Context) ([]entity.Course, error) {
	return list[entity.Course](ctx, c, PathCourses, nil)
}

func (c *Client) Assignments(ctx context.Context) ([]entity.Assignment, error) {
	return list[entity.Assignment](ctx, c, PathAssignments, nil)
}

func (c *Client) PrivateCalls(ctx context.Context) ([]entity.PrivateCall, error) {
	return list[entity.PrivateCall](ctx, c, PathPrivateCalls, nil)
}

func (c *Client) GroupSessions(ctx context.Context) ([]entity.GroupSession, error) {
	return list[entity.GroupSession](ctx, c, PathGroupSessions, nil)
}

func (c *Client) GroupAttendees(ctx context.Context) ([]entity.GroupAttendee, error) {
	return list[entity.GroupAttendee](ctx, c, PathGroupAttendees, nil)
}

func (c *Client) SaveWeek(ctx context.Context, w *entity.Week) error {
	return save(ctx, c, PathWeeks, w.RecordID, w)
}

func (c *Client) DeleteWeek(ctx context.Context, id int) error {
	return c.remove(ctx, PathWeeks, id)
}

func (c *Client) SaveAssignment(ctx context.Context, a *entity.Assignment) error {
	return save(ctx, c, PathAssignments, a.RecordID, a)
}

func (c *Client) DeleteAssignment(ctx context.Context, id int) error {
	return c.remove(ctx, PathAssignments, id)
}

func (c *Client) SavePrivateCall(ctx context.Context, pc *entity.PrivateCall) error {
	return save(ctx, c, PathPrivateCalls, pc.RecordID, pc)
}

func (c *Client) DeletePrivateCall(ctx context.Context, id int) error {
	return c.remove(ctx, PathPrivateCalls, id)
}

func (c *Client) SaveGroupSession(ctx context.Context, g *entity.GroupSession) error {
	return save(ctx, c, PathGroupSessions, g.RecordID, g)
}

func (c *Client) DeleteGroupSession(ctx context.Context, id int) error {
	return c.remove(ctx, PathGroupSessions, id)
}

func (c *Client) SaveGroupAttendee(ctx context.Context, a *entity.GroupAttendee) error {
	return save(ctx, c, PathGroupAttendees, a.RecordID, a)
}

func (c *Client) DeleteGroupAttendee(ctx context.Context, id int) error {
	return c.remove(ctx, PathGroupAttendees, id)
}
