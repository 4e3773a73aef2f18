package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/resolve-mcp/internal/platform/branding"
	"github.com/louisbranch/resolve-mcp/internal/platform/otel"
	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/louisbranch/resolve-mcp/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// serverVersion identifies the MCP server version.
const serverVersion = "0.1.0"

const tracerName = "github.com/louisbranch/resolve-mcp/internal/services/mcp/service"

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	// HTTPAddr is the listen address for HTTP transport. Defaults to
	// localhost:8081.
	HTTPAddr string
	// AllowedHosts extends the loopback hosts accepted in Host and Origin
	// headers.
	AllowedHosts []string
	// AuthToken, when set, is required as a bearer token on /mcp.
	AuthToken string
	// LuaPreflight compiles scripts locally before execute_lua sends them.
	LuaPreflight bool
	// ReconnectInterval controls how often a disconnected connector retries
	// while serving HTTP. Zero uses defaultReconnectInterval.
	ReconnectInterval time.Duration
	Logger            *zerolog.Logger
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	conn      *resolve.Connector
	logger    zerolog.Logger
}

// New creates an MCP server whose tools and resources forward to conn.
func New(conn *resolve.Connector, cfg Config) (*Server, error) {
	if conn == nil {
		return nil, fmt.Errorf("connector is required")
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	logger = logger.With().Str("component", "mcp").Logger()

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: branding.ServerName, Version: serverVersion}, &mcp.ServerOptions{
		CompletionHandler:  completionHandler,
		SubscribeHandler:   resourceSubscribeHandler,
		UnsubscribeHandler: resourceUnsubscribeHandler,
	})
	mcpServer.AddReceivingMiddleware(requestLoggingMiddleware(logger, otel.Tracer(tracerName)))

	resourceNotifier := func(ctx context.Context, uri string) {
		if strings.TrimSpace(uri) == "" {
			return
		}
		if ctx == nil {
			ctx = context.Background()
		}
		if err := mcpServer.ResourceUpdated(ctx, &mcp.ResourceUpdatedNotificationParams{URI: uri}); err != nil {
			logger.Warn().Err(err).Str("uri", uri).Msg("resource updated notify failed")
		}
	}

	var scriptCheck domain.ScriptCheck
	if cfg.LuaPreflight {
		scriptCheck = domain.CheckLuaSyntax
	}

	for _, module := range newMCPRegistrationModules(conn, resourceNotifier, scriptCheck) {
		if err := module.register(mcpServerRegistrationAdapter{server: mcpServer}); err != nil {
			return nil, fmt.Errorf("register MCP module %q: %w", module.name, err)
		}
		logger.Debug().Str("module", module.name).Str("kind", module.kind.String()).Msg("registered MCP module")
	}

	return &Server{mcpServer: mcpServer, conn: conn, logger: logger}, nil
}

func (k mcpRegistrationKind) String() string {
	switch k {
	case mcpRegistrationKindTools:
		return "tools"
	case mcpRegistrationKindResources:
		return "resources"
	default:
		return "unknown"
	}
}

// requestLoggingMiddleware traces and logs every inbound MCP method.
func requestLoggingMiddleware(logger zerolog.Logger, tracer trace.Tracer) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			toolName := ""
			if call, isCall := req.(*mcp.CallToolRequest); isCall && call.Params != nil {
				toolName = call.Params.Name
			}
			ctx, span := tracer.Start(ctx, "mcp "+method, trace.WithAttributes(
				attribute.String("mcp.method", method),
				attribute.String("mcp.tool", toolName),
			))
			defer span.End()

			start := time.Now()
			result, err := next(ctx, method, req)

			event := logger.Debug()
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				event = logger.Warn().Err(err)
			}
			if toolName != "" {
				event = event.Str("tool", toolName)
			}
			event.Str("method", method).Dur("elapsed", time.Since(start)).Msg("mcp request")
			return result, err
		}
	}
}

// Close releases the application connection held by the server.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
