// Package resolvetest provides an in-memory stand-in for the Resolve
// scripting surface. Every handle records the calls made on it into a shared
// Recorder as "Type.Method", and any method can be made to raise.
package resolvetest

import (
	"context"
	"errors"
	"sync"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
)

// Recorder collects calls across all handles of one fake application.
type Recorder struct {
	mu     sync.Mutex
	calls  []string
	errs   map[string]error
	panics map[string]any
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{errs: map[string]error{}, panics: map[string]any{}}
}

func (r *Recorder) record(name string) error {
	r.mu.Lock()
	r.calls = append(r.calls, name)
	err := r.errs[name]
	p, shouldPanic := r.panics[name]
	r.mu.Unlock()
	if shouldPanic {
		panic(p)
	}
	return err
}

// Fail makes every later call to method (e.g. "Timeline.AddMarker") raise err.
func (r *Recorder) Fail(method string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.errs, method)
		return
	}
	r.errs[method] = err
}

// Panic makes every later call to method panic with v.
func (r *Recorder) Panic(method string, v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panics[method] = v
}

// Calls returns a copy of the recorded calls in order.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Called reports how many times method was called.
func (r *Recorder) Called(method string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c == method {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls; injected errors stay.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// ErrRaised is a convenient error to inject.
var ErrRaised = errors.New("scripting call raised")

// Dialer returns a dialer that hands out app, recording the module path it
// was given.
func Dialer(app *App) resolve.Dialer {
	return resolve.DialerFunc(func(_ context.Context, modulePath string) (resolve.Application, error) {
		if app == nil {
			return nil, nil
		}
		app.ModulePath = modulePath
		return app, nil
	})
}

// FailingDialer returns a dialer that always fails with err.
func FailingDialer(err error) resolve.Dialer {
	return resolve.DialerFunc(func(context.Context, string) (resolve.Application, error) {
		return nil, err
	})
}

// Locator returns a linux locator that finds exactly the given paths.
func Locator(existing ...string) resolve.Locator {
	set := map[string]bool{}
	for _, p := range existing {
		set[p] = true
	}
	return resolve.Locator{
		GOOS:    "linux",
		Getenv:  func(string) string { return "" },
		HomeDir: func() (string, error) { return "/home/test", nil },
		Exists:  func(p string) bool { return set[p] },
	}
}

// LinuxModulePath is the path Locator finds by default on linux.
const LinuxModulePath = "/opt/resolve/Developer/Scripting/Modules"

var (
	_ resolve.Application    = (*App)(nil)
	_ resolve.ProjectManager = (*ProjectManager)(nil)
	_ resolve.Project        = (*Project)(nil)
	_ resolve.MediaStorage   = (*MediaStorage)(nil)
	_ resolve.MediaPool      = (*MediaPool)(nil)
	_ resolve.Folder         = (*Folder)(nil)
	_ resolve.MediaPoolItem  = (*MediaPoolItem)(nil)
	_ resolve.Timeline       = (*Timeline)(nil)
	_ resolve.TimelineItem   = (*TimelineItem)(nil)
	_ resolve.NodeGraph      = (*NodeGraph)(nil)
	_ resolve.ColorNode      = (*ColorNode)(nil)
	_ resolve.Fusion         = (*Fusion)(nil)
	_ resolve.Composition    = (*Composition)(nil)
	_ resolve.FusionTool     = (*FusionTool)(nil)
	_ resolve.Gallery        = (*Gallery)(nil)
	_ resolve.GalleryAlbum   = (*GalleryAlbum)(nil)
)
