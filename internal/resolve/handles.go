package resolve

import (
	"context"
	"strings"
)

// Pages lists the application pages OpenPage accepts, in display order.
var Pages = []string{"media", "edit", "fusion", "color", "fairlight", "deliver"}

// ValidPage reports whether page names one of Pages. The match is exact;
// callers fold case first.
func ValidPage(page string) bool {
	for _, p := range Pages {
		if p == page {
			return true
		}
	}
	return false
}

// ProjectManager re-reads the project manager from the application handle.
func (c *Connector) ProjectManager(ctx context.Context) Result[ProjectManager] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.managerLocked(ctx)
}

// CurrentProject re-reads the current project from the project manager.
func (c *Connector) CurrentProject(ctx context.Context) Result[Project] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectLocked(ctx)
}

// MediaStorage re-reads the media storage from the application handle.
func (c *Connector) MediaStorage(ctx context.Context) Result[MediaStorage] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storageLocked(ctx)
}

// MediaPool re-reads the media pool of the current project.
func (c *Connector) MediaPool(ctx context.Context) Result[MediaPool] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mediaPoolLocked(ctx)
}

// Fusion re-reads the Fusion handle from the application handle.
func (c *Connector) Fusion(ctx context.Context) Result[Fusion] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fusionLocked(ctx)
}

// OpenPage switches the application to page. Unknown pages are refused
// without calling the application.
func (c *Connector) OpenPage(ctx context.Context, page string) Result[bool] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.app == nil {
		return notConnected[bool]()
	}
	page = strings.ToLower(page)
	if !ValidPage(page) {
		return invalid[bool]("invalid page " + page)
	}
	return truthy("OpenPage", forward(ctx, c, "OpenPage", func(ctx context.Context) (bool, error) {
		return c.app.OpenPage(ctx, page)
	}))
}

// CurrentPage returns the name of the page on screen.
func (c *Connector) CurrentPage(ctx context.Context) Result[string] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.app == nil {
		return notConnected[string]()
	}
	return forward(ctx, c, "GetCurrentPage", c.app.GetCurrentPage)
}
