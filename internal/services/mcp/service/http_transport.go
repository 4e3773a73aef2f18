package service

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/louisbranch/resolve-mcp/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

var listenTCP = net.Listen

// defaultHTTPAddr keeps the HTTP transport local unless configured otherwise.
const defaultHTTPAddr = "localhost:8081"

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	Addr         string
	AllowedHosts []string
	AuthToken    string
	Logger       *zerolog.Logger
}

// HTTPTransport serves MCP over streamable HTTP on /mcp, with a plain health
// check on /mcp/health. Every request passes the host guard first; /mcp also
// requires the bearer token when one is configured.
type HTTPTransport struct {
	addr       string
	guard      hostGuard
	authToken  string
	server     *mcp.Server
	logger     zerolog.Logger
	httpServer *http.Server
}

// NewHTTPTransport creates a transport serving server. An empty address
// binds localhost:8081.
func NewHTTPTransport(server *mcp.Server, cfg HTTPConfig) *HTTPTransport {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		addr = defaultHTTPAddr
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &HTTPTransport{
		addr:      addr,
		guard:     newHostGuard(cfg.AllowedHosts),
		authToken: strings.TrimSpace(cfg.AuthToken),
		server:    server,
		logger:    logger.With().Str("transport", "http").Logger(),
	}
}

// Handler returns the HTTP routes of the transport.
func (t *HTTPTransport) Handler() http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return t.server
	}, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if err := t.guard.check(r); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !t.authorizeRequest(w, r) {
			return
		}
		streamable.ServeHTTP(w, r)
	})
	mux.HandleFunc("/mcp/health", t.handleHealth)
	return mux
}

// Start listens on the configured address and serves until ctx ends, then
// shuts down gracefully.
func (t *HTTPTransport) Start(ctx context.Context) error {
	if t.server == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	listener, err := listenTCP("tcp", t.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", t.addr, err)
	}
	return t.serve(ctx, listener)
}

func (t *HTTPTransport) serve(ctx context.Context, listener net.Listener) error {
	t.httpServer = &http.Server{
		Handler:           t.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	t.logger.Info().Str("addr", listener.Addr().String()).Msg("starting MCP HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := t.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		t.logger.Info().Msg("shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := t.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	case err := <-errChan:
		return fmt.Errorf("HTTP server error: %w", err)
	}
}
