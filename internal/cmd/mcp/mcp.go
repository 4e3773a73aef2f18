// Package mcp parses MCP command flags, connects to Resolve and selects
// stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"os"
	"time"

	entrypoint "github.com/louisbranch/resolve-mcp/internal/platform/cmd"
	"github.com/louisbranch/resolve-mcp/internal/platform/logging"
	"github.com/louisbranch/resolve-mcp/internal/platform/timeouts"
	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/louisbranch/resolve-mcp/internal/resolve/pybridge"
	"github.com/louisbranch/resolve-mcp/internal/services/mcp/service"
	"github.com/rs/zerolog"
)

// Config holds MCP command configuration.
type Config struct {
	ScriptPath   string        `env:"RESOLVE_SCRIPT_PATH"`
	ScriptAPI    string        `env:"RESOLVE_SCRIPT_API"`
	ScriptLib    string        `env:"RESOLVE_SCRIPT_LIB"`
	Python       string        `env:"RESOLVE_MCP_PYTHON"        envDefault:"python3"`
	Transport    string        `env:"RESOLVE_MCP_TRANSPORT"     envDefault:"stdio"`
	HTTPAddr     string        `env:"RESOLVE_MCP_HTTP_ADDR"     envDefault:"localhost:8081"`
	AllowedHosts []string      `env:"RESOLVE_MCP_ALLOWED_HOSTS" envSeparator:","`
	AuthToken    string        `env:"RESOLVE_MCP_AUTH_TOKEN"`
	LogLevel     string        `env:"RESOLVE_MCP_LOG_LEVEL"     envDefault:"info"`
	CallTimeout  time.Duration `env:"RESOLVE_MCP_CALL_TIMEOUT"  envDefault:"30s"`
	LuaPreflight bool          `env:"RESOLVE_MCP_LUA_PREFLIGHT" envDefault:"true"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.ScriptPath, "script-path", cfg.ScriptPath, "Directory holding the Resolve scripting module (overrides the OS search)")
	fs.StringVar(&cfg.ScriptAPI, "script-api", cfg.ScriptAPI, "Resolve scripting API directory passed to the helper")
	fs.StringVar(&cfg.ScriptLib, "script-lib", cfg.ScriptLib, "Resolve scripting library passed to the helper")
	fs.StringVar(&cfg.Python, "python", cfg.Python, "Python interpreter used to run the helper")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.DurationVar(&cfg.CallTimeout, "call-timeout", cfg.CallTimeout, "Upper bound for a single call into Resolve")
	fs.BoolVar(&cfg.LuaPreflight, "lua-preflight", cfg.LuaPreflight, "Compile Lua scripts locally before sending them to Fusion")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = timeouts.ScriptCall
	}
	return cfg, nil
}

// Run connects to Resolve and serves MCP until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	logger := logging.New(os.Stderr, cfg.LogLevel)
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceMCP, entrypoint.RunOptions{Logger: &logger}, func(ctx context.Context) error {
		conn := newConnector(cfg, logger)
		conn.Connect(ctx)
		if conn.IsConnected() {
			logger.Info().Str("module_path", conn.ModulePath()).Msg("connected to Resolve")
		} else {
			logger.Warn().Msg("Resolve is not reachable; tools will report it until it is")
		}

		return service.Run(ctx, conn, serviceConfig(cfg, logger))
	})
}

func newConnector(cfg Config, logger zerolog.Logger) *resolve.Connector {
	dialer := pybridge.NewDialer(pybridge.Config{
		Python:    cfg.Python,
		ScriptAPI: cfg.ScriptAPI,
		ScriptLib: cfg.ScriptLib,
		Logger:    &logger,
	})
	return resolve.New(resolve.Config{
		Dialer:      dialer,
		Locator:     resolve.DefaultLocator(cfg.ScriptPath),
		Logger:      &logger,
		CallTimeout: cfg.CallTimeout,
	})
}

func serviceConfig(cfg Config, logger zerolog.Logger) service.Config {
	return service.Config{
		Transport:    service.TransportKind(cfg.Transport),
		HTTPAddr:     cfg.HTTPAddr,
		AllowedHosts: cfg.AllowedHosts,
		AuthToken:    cfg.AuthToken,
		LuaPreflight: cfg.LuaPreflight,
		Logger:       &logger,
	}
}
