package pybridge

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/resolve-mcp/internal/platform/timeouts"
	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/rs/zerolog"
)

//go:embed helper.py
var helperScript string

// DefaultPython is the interpreter used when Config.Python is empty.
const DefaultPython = "python3"

// Config controls how the helper process is started.
type Config struct {
	// Python is the interpreter to run. Defaults to DefaultPython.
	Python string
	// ScriptAPI and ScriptLib are passed through as RESOLVE_SCRIPT_API and
	// RESOLVE_SCRIPT_LIB when set.
	ScriptAPI string
	ScriptLib string
	// StartTimeout bounds the wait for the ready line.
	StartTimeout time.Duration
	Logger       *zerolog.Logger
}

// Dialer starts one helper per Dial.
type Dialer struct {
	cfg    Config
	logger zerolog.Logger
}

var _ resolve.Dialer = (*Dialer)(nil)

// NewDialer returns a Dialer for cfg.
func NewDialer(cfg Config) *Dialer {
	if cfg.Python == "" {
		cfg.Python = DefaultPython
	}
	if cfg.StartTimeout <= 0 {
		cfg.StartTimeout = timeouts.HelperStart
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Dialer{cfg: cfg, logger: logger.With().Str("component", "pybridge").Logger()}
}

// Dial starts the helper with modulePath on its import path and waits until
// it has attached to Resolve. The returned application closes the helper on
// Close.
func (d *Dialer) Dial(ctx context.Context, modulePath string) (resolve.Application, error) {
	// The helper outlives the dial context, so it is not bound to ctx.
	cmd := exec.Command(d.cfg.Python, "-u", "-c", helperScript)
	cmd.Env = d.environ(modulePath)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start helper: %w", err)
	}
	go d.logStderr(stderr)

	client := NewClient(stdout, stdin, d.logger)
	proc := &process{cmd: cmd, client: client, logger: d.logger}

	readyCtx, cancel := context.WithTimeout(ctx, d.cfg.StartTimeout)
	defer cancel()
	if err := client.AwaitReady(readyCtx); err != nil {
		_ = proc.stop()
		return nil, err
	}
	d.logger.Debug().Int("pid", cmd.Process.Pid).Msg("helper ready")
	return NewApplication(client, proc.stop), nil
}

func (d *Dialer) environ(modulePath string) []string {
	env := os.Environ()
	pythonPath := modulePath
	if existing := os.Getenv("PYTHONPATH"); existing != "" {
		pythonPath = modulePath + string(filepath.ListSeparator) + existing
	}
	env = append(env, "PYTHONPATH="+pythonPath, "PYTHONUNBUFFERED=1")
	if d.cfg.ScriptAPI != "" {
		env = append(env, "RESOLVE_SCRIPT_API="+d.cfg.ScriptAPI)
	}
	if d.cfg.ScriptLib != "" {
		env = append(env, "RESOLVE_SCRIPT_LIB="+d.cfg.ScriptLib)
	}
	return env
}

func (d *Dialer) logStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		d.logger.Debug().Str("stream", "stderr").Msg(text)
	}
}

// process owns a running helper.
type process struct {
	cmd    *exec.Cmd
	client *Client
	logger zerolog.Logger

	once sync.Once
	err  error
}

// stop closes the request stream so the helper exits on EOF, and kills it
// if it is still running after timeouts.HelperStop. Later calls return the
// first result.
func (p *process) stop() error {
	p.once.Do(func() {
		p.err = p.terminate()
	})
	return p.err
}

func (p *process) terminate() error {
	if p.cmd == nil || p.cmd.Process == nil {
		return nil
	}
	_ = p.client.closeInput()

	ctx, cancel := context.WithTimeout(context.Background(), timeouts.HelperStop)
	defer cancel()
	// Wait closes stdout, so the read loop has to finish first.
	if err := p.client.drain(ctx); err != nil {
		p.kill()
		_ = p.client.drain(context.Background())
		_ = p.cmd.Wait()
		return nil
	}

	waitDone := make(chan error, 1)
	go func() {
		waitDone <- p.cmd.Wait()
	}()
	select {
	case err := <-waitDone:
		return err
	case <-ctx.Done():
		p.kill()
		<-waitDone
		return nil
	}
}

func (p *process) kill() {
	p.logger.Warn().Int("pid", p.cmd.Process.Pid).Msg("helper did not exit, killing")
	_ = p.cmd.Process.Kill()
}
