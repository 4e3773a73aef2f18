package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type bridgeConfig struct {
	ScriptPath string `env:"CMD_TEST_SCRIPT_PATH"`
	Transport  string `env:"CMD_TEST_TRANSPORT" envDefault:"stdio"`
}

func (c *bridgeConfig) bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ScriptPath, "script-path", c.ScriptPath, "script path")
	fs.StringVar(&c.Transport, "transport", c.Transport, "transport")
}

func TestParseConfigThenFlagsOverride(t *testing.T) {
	t.Setenv("CMD_TEST_SCRIPT_PATH", "/env/modules")

	var cfg bridgeConfig
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("load env: %v", err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.bind(fs)
	if err := ParseArgs(fs, []string{"-transport", "http"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.ScriptPath != "/env/modules" {
		t.Fatalf("expected env script path, got %q", cfg.ScriptPath)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected flag transport, got %q", cfg.Transport)
	}
}

func TestParseConfigFromArgsKeepsEnvWhenFlagAbsent(t *testing.T) {
	t.Setenv("CMD_TEST_TRANSPORT", "http")

	var cfg bridgeConfig
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.StringVar(&cfg.ScriptPath, "script-path", "", "script path")
	if err := ParseConfigFromArgs(&cfg, fs, []string{"-script-path", "/flag/modules"}); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfg.ScriptPath != "/flag/modules" {
		t.Fatalf("expected flag script path, got %q", cfg.ScriptPath)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected env transport, got %q", cfg.Transport)
	}
}

func TestParseRejectsMissingTargets(t *testing.T) {
	if err := ParseConfig[bridgeConfig](nil); err == nil {
		t.Fatal("expected nil config to be rejected")
	}
	if err := ParseArgs(nil, nil); err == nil {
		t.Fatal("expected nil flag set to be rejected")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), " ", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceMCP, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("RESOLVE_MCP_OTEL_ENDPOINT", "")

	boom := errors.New("resolve unreachable")
	called := false
	err := RunWithTelemetry(context.Background(), ServiceMCP, func(context.Context) error {
		called = true
		return boom
	})
	if !called {
		t.Fatal("expected run to be called")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected run error, got %v", err)
	}
}
