package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/coachboard/internal/domain/dashboard"
	"github.com/rpggio/coachboard/internal/domain/filter"
	"github.com/rpggio/coachboard/internal/domain/refdate"
)

// Dashboard defines the dashboard operations needed by MCP.
type Dashboard interface {
	Weeks(ctx context.Context, st filter.State) (*dashboard.Result, error)
	Week(ctx context.Context, id int) (*dashboard.Detail, error)
	Options(ctx context.Context) (*dashboard.Options, error)
	ReferenceDates(weeks int) refdate.Dates
	DefaultState() filter.State
	Refresh(ctx context.Context) error
	Status() dashboard.Status
}

// Config contains server configuration.
type Config struct {
	Dashboard     Dashboard
	Resolver      TokenResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Version       string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "coachboard",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio is local-only and never authenticates.
	if cfg.TransportMode == "stdio" || !cfg.AuthEnabled {
		server.AddReceivingMiddleware(noAuthMiddleware("local"))
	} else {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Dashboard)

	return server
}
