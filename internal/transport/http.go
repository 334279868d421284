package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpggio/coachboard/internal/domain/dashboard"
	"github.com/rpggio/coachboard/internal/domain/entity"
	"github.com/rpggio/coachboard/internal/domain/filter"
	"github.com/rpggio/coachboard/internal/domain/refdate"
)

// Dashboard is the service surface the HTTP API exposes.
type Dashboard interface {
	Weeks(ctx context.Context, st filter.State) (*dashboard.Result, error)
	Week(ctx context.Context, id int) (*dashboard.Detail, error)
	Options(ctx context.Context) (*dashboard.Options, error)
	ReferenceDates(weeks int) refdate.Dates
	DefaultState() filter.State
	Refresh(ctx context.Context) error
	Status() dashboard.Status

	SaveWeek(ctx context.Context, w *entity.Week) error
	DeleteWeek(ctx context.Context, id int) error
	SaveAssignment(ctx context.Context, a *entity.Assignment) error
	DeleteAssignment(ctx context.Context, id int) error
	SavePrivateCall(ctx context.Context, c *entity.PrivateCall) error
	DeletePrivateCall(ctx context.Context, id int) error
	SaveGroupSession(ctx context.Context, g *entity.GroupSession) error
	DeleteGroupSession(ctx context.Context, id int) error
	SaveGroupAttendee(ctx context.Context, a *entity.GroupAttendee) error
	DeleteGroupAttendee(ctx context.Context, id int) error
}

// Config wires the HTTP server.
type Config struct {
	Dashboard Dashboard
	// Auth guards /api. Nil leaves it open.
	Auth func(http.Handler) http.Handler
	// MCP is mounted at /mcp when set. It authenticates on its own.
	MCP http.Handler
	// Metrics serves /metrics; defaults to the global Prometheus registry.
	Metrics http.Handler
	Logger  *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	dash Dashboard
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(cfg.Logger))

	srv := &Server{dash: cfg.Dashboard}

	r.Get("/health", srv.handleHealth)

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metrics)

	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	r.Route("/api", func(r chi.Router) {
		if cfg.Auth != nil {
			r.Use(cfg.Auth)
		}

		r.Get("/status", srv.handleStatus)
		r.Get("/weeks", srv.handleWeeks)
		r.Get("/weeks/{id}", srv.handleWeek)
		r.Get("/options", srv.handleOptions)
		r.Get("/reference-dates", srv.handleReferenceDates)
		r.Post("/refresh", srv.handleRefresh)

		mutationRoutes(r, "/weeks",
			func(w *entity.Week, id int) { w.RecordID = id },
			srv.dash.SaveWeek, srv.dash.DeleteWeek)
		mutationRoutes(r, "/assignments",
			func(a *entity.Assignment, id int) { a.RecordID = id },
			srv.dash.SaveAssignment, srv.dash.DeleteAssignment)
		mutationRoutes(r, "/private-calls",
			func(c *entity.PrivateCall, id int) { c.RecordID = id },
			srv.dash.SavePrivateCall, srv.dash.DeletePrivateCall)
		mutationRoutes(r, "/group-sessions",
			func(g *entity.GroupSession, id int) { g.RecordID = id },
			srv.dash.SaveGroupSession, srv.dash.DeleteGroupSession)
		mutationRoutes(r, "/group-attendees",
			func(a *entity.GroupAttendee, id int) { a.RecordID = id },
			srv.dash.SaveGroupAttendee, srv.dash.DeleteGroupAttendee)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, s.dash.Status())
}

func (s *Server) handleWeeks(w http.ResponseWriter, r *http.Request) {
	st, err := ParseState(r.URL.Query(), s.dash.DefaultState(), s.dash.ReferenceDates(0))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	result, err := s.dash.Weeks(r.Context(), st)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	detail, err := s.dash.Week(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, detail)
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.dash.Options(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, opts)
}

func (s *Server) handleReferenceDates(w http.ResponseWriter, r *http.Request) {
	weeks := 0
	if v := r.URL.Query().Get("weeks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > refdate.MaxWeeks {
			WriteError(w, http.StatusBadRequest, CodeInvalidInput,
				fmt.Sprintf("weeks must be an integer between 1 and %d", refdate.MaxWeeks))
			return
		}
		weeks = n
	}
	WriteJSON(w, http.StatusOK, s.dash.ReferenceDates(weeks))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.dash.Refresh(r.Context()); err != nil {
		WriteError(w, http.StatusBadGateway, CodeInternal, "refresh failed; the previous snapshot is still served")
		return
	}
	WriteJSON(w, http.StatusOK, s.dash.Status())
}

func mutationRoutes[T any](
	r chi.Router,
	path string,
	setID func(*T, int),
	save func(context.Context, *T) error,
	remove func(context.Context, int) error,
) {
	r.Post(path, func(w http.ResponseWriter, r *http.Request) {
		var v T
		if err := decodeBody(r, &v); err != nil {
			WriteServiceError(w, err)
			return
		}
		setID(&v, 0)
		if err := save(r.Context(), &v); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, v)
	})

	r.Put(path+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		var v T
		if err := decodeBody(r, &v); err != nil {
			WriteServiceError(w, err)
			return
		}
		setID(&v, id)
		if err := save(r.Context(), &v); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, v)
	})

	r.Delete(path+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		if err := remove(r.Context(), id); err != nil {
			WriteServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}
	return nil
}

func pathID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", entity.ErrInvalidInput, raw)
	}
	return id, nil
}

// ParseState overlays query parameters on base. Absent parameters keep
// their base value; "range" accepts reference-date labels or ISO dates.
func ParseState(q map[string][]string, base filter.State, dates refdate.Dates) (filter.State, error) {
	st := base
	get := func(key string) (string, bool) {
		v, ok := q[key]
		if !ok || len(v) == 0 {
			return "", false
		}
		return strings.TrimSpace(v[0]), true
	}

	flags := []struct {
		key string
		dst *bool
	}{
		{"coachless", &st.FilterCoachless},
		{"one_month_challenge", &st.FilterOneMonthChallenge},
		{"hold_weeks", &st.FilterHoldWeeks},
	}
	for _, f := range flags {
		if v, ok := get(f.key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return st, fmt.Errorf("%w: %s must be a boolean", entity.ErrInvalidInput, f.key)
			}
			*f.dst = b
		}
	}

	ids := []struct {
		key string
		dst *int
	}{
		{"course", &st.CourseID},
		{"coach", &st.CoachID},
	}
	for _, f := range ids {
		if v, ok := get(f.key); ok {
			if v == "" {
				*f.dst = 0
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return st, fmt.Errorf("%w: %s must be a record id", entity.ErrInvalidInput, f.key)
			}
			*f.dst = n
		}
	}

	if v, ok := get("range"); ok {
		resolved, err := dates.Resolve(v)
		if err != nil {
			return st, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
		}
		st.DateRange = resolved
	}
	if v, ok := get("completion"); ok {
		st.Completion = filter.ParseCompletion(v)
	}
	if v, ok := get("q"); ok {
		st.Search = v
	}

	return st, nil
}
