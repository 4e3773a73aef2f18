package pybridge

import (
	"context"
	"io"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
)

var (
	_ resolve.Application = (*application)(nil)
	_ io.Closer           = (*application)(nil)
)

// application is handle 0, the object returned by scriptapp("Resolve").
type application struct {
	Object
	close func() error
}

// NewApplication returns the root handle served by client. closeFn runs on
// Close and may be nil.
func NewApplication(client *Client, closeFn func() error) resolve.Application {
	return &application{Object: Object{client: client, handle: 0}, close: closeFn}
}

func (a *application) GetProjectManager(ctx context.Context) (resolve.ProjectManager, error) {
	o, err := a.child(ctx, "GetProjectManager")
	return wrap(o, err, newProjectManager)
}

func (a *application) GetMediaStorage(ctx context.Context) (resolve.MediaStorage, error) {
	o, err := a.child(ctx, "GetMediaStorage")
	return wrap(o, err, newMediaStorage)
}

func (a *application) Fusion(ctx context.Context) (resolve.Fusion, error) {
	o, err := a.child(ctx, "Fusion")
	return wrap(o, err, newFusion)
}

func (a *application) OpenPage(ctx context.Context, page string) (bool, error) {
	return a.boolean(ctx, "OpenPage", page)
}

func (a *application) GetCurrentPage(ctx context.Context) (string, error) {
	return a.str(ctx, "GetCurrentPage")
}

func (a *application) GetProductName(ctx context.Context) (string, error) {
	return a.str(ctx, "GetProductName")
}

func (a *application) GetVersionString(ctx context.Context) (string, error) {
	return a.str(ctx, "GetVersionString")
}

func (a *application) Play(ctx context.Context) error {
	_, err := a.call(ctx, "Play")
	return err
}

func (a *application) Stop(ctx context.Context) error {
	_, err := a.call(ctx, "Stop")
	return err
}

// Close shuts the helper down.
func (a *application) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}
