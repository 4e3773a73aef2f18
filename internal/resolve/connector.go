// Package resolve is the single point of contact with a running DaVinci
// Resolve. The Connector discovers the scripting module, dials the
// application and exposes one accessor per capability. Accessors never
// return Go errors; they return a Result whose Status tells a missing handle
// apart from a rejected or failed call.
package resolve

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	apperrors "github.com/louisbranch/resolve-mcp/internal/platform/errors"
	"github.com/louisbranch/resolve-mcp/internal/platform/otel"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/resolve-mcp/internal/resolve"

// Dialer opens the root application handle given the module directory.
type Dialer interface {
	Dial(ctx context.Context, modulePath string) (Application, error)
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(ctx context.Context, modulePath string) (Application, error)

// Dial calls f.
func (f DialerFunc) Dial(ctx context.Context, modulePath string) (Application, error) {
	return f(ctx, modulePath)
}

// Config wires a Connector.
type Config struct {
	Dialer  Dialer
	Locator Locator
	Logger  *zerolog.Logger
	// CallTimeout bounds every forwarded call. Zero means no bound beyond
	// the request context.
	CallTimeout time.Duration
	Tracer      trace.Tracer
}

// Connector holds the application handle and the handles derived from it.
// All methods are safe for concurrent use; calls are serialised.
type Connector struct {
	mu sync.Mutex

	dialer      Dialer
	locator     Locator
	logger      zerolog.Logger
	tracer      trace.Tracer
	callTimeout time.Duration

	modulePath     string
	app            Application
	projectManager ProjectManager
	currentProject Project
	mediaStorage   MediaStorage
	fusion         Fusion
	mediaPool      MediaPool
}

// New builds a disconnected Connector. Call Connect to dial.
func New(cfg Config) *Connector {
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &Connector{
		dialer:      cfg.Dialer,
		locator:     cfg.Locator,
		logger:      logger.With().Str("component", "connector").Logger(),
		tracer:      tracer,
		callTimeout: cfg.CallTimeout,
	}
}

// Connect discovers the scripting module, dials the application and derives
// the second-level handles. Failures are logged and leave the connector
// disconnected.
func (c *Connector) Connect(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connectLocked(ctx)
}

func (c *Connector) connectLocked(ctx context.Context) {
	modulePath, err := c.locator.Find()
	if err != nil {
		c.logger.Error().Err(err).Msg("no valid Resolve scripting module path found")
		return
	}
	c.modulePath = modulePath
	if c.dialer == nil {
		c.logger.Error().Msg("no dialer configured")
		return
	}
	app, err := c.dialer.Dial(ctx, modulePath)
	if err != nil {
		c.logger.Error().Err(err).Str("module_path", modulePath).Msg("failed to connect to Resolve")
		c.app = nil
		return
	}
	if app == nil {
		c.logger.Error().Str("module_path", modulePath).Msg("Resolve is not running")
		return
	}
	c.app = app
	c.logger.Info().Str("module_path", modulePath).Msg("connected to Resolve")
	c.deriveLocked(ctx)
}

// deriveLocked re-reads every cached handle from the application handle.
func (c *Connector) deriveLocked(ctx context.Context) {
	c.projectManager = forward(ctx, c, "GetProjectManager", c.app.GetProjectManager).Value
	c.currentProject = nil
	if c.projectManager != nil {
		c.currentProject = forward(ctx, c, "GetCurrentProject", c.projectManager.GetCurrentProject).Value
	}
	c.mediaStorage = forward(ctx, c, "GetMediaStorage", c.app.GetMediaStorage).Value
	c.fusion = forward(ctx, c, "Fusion", c.app.Fusion).Value
	c.mediaPool = nil
	if c.currentProject != nil {
		c.mediaPool = forward(ctx, c, "GetMediaPool", c.currentProject.GetMediaPool).Value
	}
}

// Refresh re-derives all cached handles, reconnecting first when there is
// no application handle. Calling it repeatedly with no outside change
// yields the same handles.
func (c *Connector) Refresh(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.app == nil {
		c.connectLocked(ctx)
		return
	}
	c.deriveLocked(ctx)
	c.logger.Debug().Msg("refreshed Resolve state")
}

// IsConnected reports whether an application handle is held.
func (c *Connector) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.app != nil
}

// ModulePath returns the discovered module directory, empty before a
// successful discovery.
func (c *Connector) ModulePath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modulePath
}

// Close drops every handle and closes the application handle when it owns
// a process.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	app := c.app
	c.app = nil
	c.projectManager = nil
	c.currentProject = nil
	c.mediaStorage = nil
	c.fusion = nil
	c.mediaPool = nil
	if closer, isCloser := app.(io.Closer); isCloser {
		return closer.Close()
	}
	return nil
}

// ProductInfo returns the product name and version, e.g.
// "DaVinci Resolve Studio 19.0.1".
func (c *Connector) ProductInfo(ctx context.Context) Result[string] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.app == nil {
		return notConnected[string]()
	}
	name := forward(ctx, c, "GetProductName", c.app.GetProductName)
	if !name.OK() {
		return name
	}
	version := forward(ctx, c, "GetVersionString", c.app.GetVersionString)
	if !version.OK() {
		return version
	}
	if version.Value == "" {
		return ok(name.Value)
	}
	return ok(name.Value + " " + version.Value)
}

// managerLocked re-derives the project manager from the application handle.
func (c *Connector) managerLocked(ctx context.Context) Result[ProjectManager] {
	if c.app == nil {
		return notConnected[ProjectManager]()
	}
	res := present("no project manager", forward(ctx, c, "GetProjectManager", c.app.GetProjectManager))
	if res.Status != StatusFailed {
		c.projectManager = res.Value
	}
	return res
}

// storageLocked re-derives the media storage from the application handle.
func (c *Connector) storageLocked(ctx context.Context) Result[MediaStorage] {
	if c.app == nil {
		return notConnected[MediaStorage]()
	}
	res := present("no media storage", forward(ctx, c, "GetMediaStorage", c.app.GetMediaStorage))
	if res.Status != StatusFailed {
		c.mediaStorage = res.Value
	}
	return res
}

// fusionLocked re-derives the Fusion handle from the application handle.
func (c *Connector) fusionLocked(ctx context.Context) Result[Fusion] {
	if c.app == nil {
		return notConnected[Fusion]()
	}
	res := present("no Fusion", forward(ctx, c, "Fusion", c.app.Fusion))
	if res.Status != StatusFailed {
		c.fusion = res.Value
	}
	return res
}

// projectLocked re-derives the current project from the project manager.
func (c *Connector) projectLocked(ctx context.Context) Result[Project] {
	manager := c.managerLocked(ctx)
	if !manager.OK() {
		return propagate[Project](manager)
	}
	res := present("no project open", forward(ctx, c, "GetCurrentProject", manager.Value.GetCurrentProject))
	if res.Status != StatusFailed {
		c.currentProject = res.Value
	}
	return res
}

// mediaPoolLocked re-derives the media pool from the current project.
func (c *Connector) mediaPoolLocked(ctx context.Context) Result[MediaPool] {
	project := c.projectLocked(ctx)
	if !project.OK() {
		return propagate[MediaPool](project)
	}
	res := present("no media pool", forward(ctx, c, "GetMediaPool", project.Value.GetMediaPool))
	if res.Status != StatusFailed {
		c.mediaPool = res.Value
	}
	return res
}

// timelineLocked fetches the current timeline; timelines are never cached.
func (c *Connector) timelineLocked(ctx context.Context) Result[Timeline] {
	project := c.projectLocked(ctx)
	if !project.OK() {
		return propagate[Timeline](project)
	}
	return present("no timeline open", forward(ctx, c, "GetCurrentTimeline", project.Value.GetCurrentTimeline))
}

// currentItemLocked fetches the video item under the playhead.
func (c *Connector) currentItemLocked(ctx context.Context) Result[TimelineItem] {
	timeline := c.timelineLocked(ctx)
	if !timeline.OK() {
		return propagate[TimelineItem](timeline)
	}
	return present("no current clip", forward(ctx, c, "GetCurrentVideoItem", timeline.Value.GetCurrentVideoItem))
}

func missing[T any](what string) Result[T] {
	return absent[T](apperrors.CodeNotFound, what)
}

func invalid[T any](what string) Result[T] {
	return Result[T]{Status: StatusAbsent, Err: apperrors.New(apperrors.CodeInvalidArgument, what)}
}

// IsNotConnected reports whether a result failed because no application
// handle is held.
func IsNotConnected(err error) bool {
	return errors.Is(err, apperrors.New(apperrors.CodeNotConnected, ""))
}
