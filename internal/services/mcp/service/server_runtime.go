package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// defaultReconnectInterval is how often a long-lived HTTP server retries a
// lost application connection.
const defaultReconnectInterval = 30 * time.Second

// completionHandler answers completion/complete with no suggestions. Only
// fixed resources are exposed, so there is nothing to complete.
func completionHandler(ctx context.Context, req *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	return &mcp.CompleteResult{
		Completion: mcp.CompletionResultDetails{
			Values: []string{},
		},
	}, nil
}

// resourceSubscribeHandler accepts resource subscriptions with a valid URI.
func resourceSubscribeHandler(_ context.Context, req *mcp.SubscribeRequest) error {
	if req == nil || req.Params == nil || strings.TrimSpace(req.Params.URI) == "" {
		return fmt.Errorf("resource uri is required")
	}
	return nil
}

// resourceUnsubscribeHandler accepts resource unsubscriptions with a valid URI.
func resourceUnsubscribeHandler(_ context.Context, req *mcp.UnsubscribeRequest) error {
	if req == nil || req.Params == nil || strings.TrimSpace(req.Params.URI) == "" {
		return fmt.Errorf("resource uri is required")
	}
	return nil
}

// Run is the service entrypoint for MCP and blocks until context
// cancellation or, on stdio, until the client goes away. The connector is
// closed on return.
func Run(ctx context.Context, conn *resolve.Connector, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	server, err := New(conn, cfg)
	if err != nil {
		return err
	}

	switch cfg.Transport {
	case TransportStdio:
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return server.serveHTTP(ctx, cfg)
	default:
		_ = server.Close()
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// serveHTTP serves the MCP server over streamable HTTP and keeps retrying
// the application connection while it runs.
func (s *Server) serveHTTP(ctx context.Context, cfg Config) error {
	defer s.Close()

	monitorCtx, monitorCancel := context.WithCancel(ctx)
	defer monitorCancel()
	go s.monitorConnection(monitorCtx, cfg.ReconnectInterval)

	httpTransport := NewHTTPTransport(s.mcpServer, HTTPConfig{
		Addr:         cfg.HTTPAddr,
		AllowedHosts: cfg.AllowedHosts,
		AuthToken:    cfg.AuthToken,
		Logger:       &s.logger,
	})
	return httpTransport.Start(ctx)
}

// monitorConnection periodically refreshes the connector. A connector
// without an application handle redials, so restarting Resolve recovers
// without restarting the server.
func (s *Server) monitorConnection(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultReconnectInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.conn.IsConnected() {
				continue
			}
			s.conn.Refresh(ctx)
			if s.conn.IsConnected() {
				s.logger.Info().Msg("reconnected to Resolve")
			} else {
				s.logger.Debug().Msg("Resolve still unreachable")
			}
		}
	}
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport runs the MCP server on transport and closes the
// connector on the way out.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close Resolve connection: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close Resolve connection: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
