package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpggio/coachboard/internal/domain/dashboard"
	"github.com/rpggio/coachboard/internal/mcp"
	"github.com/rpggio/coachboard/internal/metrics"
	"github.com/rpggio/coachboard/internal/sqlite"
	"github.com/rpggio/coachboard/internal/transport"
	"github.com/stretchr/testify/require"
)

// Now is the clock every test server runs on. It falls inside the fixture weeks.
var Now = time.Date(2024, 12, 25, 12, 0, 0, 0, time.UTC)

type TestServer struct {
	Server    *httptest.Server
	DB        *sqlite.DB
	Source    *sqlite.Source
	Dashboard *dashboard.Service
	Registry  *prometheus.Registry
	Token     string
}

// New starts the full HTTP stack over an in-memory database seeded with
// Fixture and an API key for token.
func New(t *testing.T, token string) *TestServer {
	t.Helper()
	ctx := context.Background()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	source := sqlite.NewSource(db)
	require.NoError(t, source.Import(ctx, Fixture()))

	keys := sqlite.NewAPIKeyRepository(db)
	require.NoError(t, keys.Create(ctx, token, "test"))
	resolver := transport.TokenResolverFunc(keys.Resolve)

	reg := prometheus.NewRegistry()
	svc := dashboard.NewService(source, source, dashboard.Config{
		WeeksBack: 4,
		Now:       func() time.Time { return Now },
	}, metrics.New(reg), nil)
	require.NoError(t, svc.Refresh(ctx))

	mcpServer := mcp.NewServer(mcp.Config{
		Dashboard:     svc,
		Resolver:      resolver,
		AuthEnabled:   true,
		TransportMode: "http",
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		nil,
	)

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Dashboard: svc,
		Auth:      transport.AuthMiddleware(resolver),
		MCP:       mcpHandler,
		Metrics:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}))

	ts := &TestServer{
		Server:    server,
		DB:        db,
		Source:    source,
		Dashboard: svc,
		Registry:  reg,
		Token:     token,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// URL joins path onto the server address.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}

// Connect opens an MCP client session over streamable HTTP using token.
func (ts *TestServer) Connect(t *testing.T, token string) *sdkmcp.ClientSession {
	t.Helper()
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	cs, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.URL("/mcp"),
		HTTPClient: &http.Client{Transport: bearer{token: token, base: http.DefaultTransport}},
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

type bearer struct {
	token string
	base  http.RoundTripper
}

func (b bearer) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return b.base.RoundTrip(req)
}
