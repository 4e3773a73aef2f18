package resolve

import (
	"context"
)

// RenderStatus reports the render queue state of the current project.
type RenderStatus struct {
	InProgress           bool
	CompletionPercentage float64
}

// StartRender starts rendering the current project. A non-empty preset is
// loaded first and a non-empty targetDir becomes the render TargetDir. Only
// the StartRendering answer decides rejection: a preset or settings call
// answering false is ignored, one that raises aborts the render.
func (c *Connector) StartRender(ctx context.Context, preset, targetDir string) Result[bool] {
	c.mu.Lock()
	defer c.mu.Unlock()
	project := c.projectLocked(ctx)
	if !project.OK() {
		return propagate[bool](project)
	}
	p := project.Value
	if preset != "" {
		loaded := forward(ctx, c, "LoadRenderPreset", func(ctx context.Context) (bool, error) {
			return p.LoadRenderPreset(ctx, preset)
		})
		if loaded.Status == StatusFailed {
			return loaded
		}
	}
	if targetDir != "" {
		set := forward(ctx, c, "SetRenderSettings", func(ctx context.Context) (bool, error) {
			return p.SetRenderSettings(ctx, map[string]any{"TargetDir": targetDir})
		})
		if set.Status == StatusFailed {
			return set
		}
	}
	return truthy("StartRendering", forward(ctx, c, "StartRendering", p.StartRendering))
}

// RenderStatus returns whether a render is running and how far it got.
func (c *Connector) RenderStatus(ctx context.Context) Result[RenderStatus] {
	c.mu.Lock()
	defer c.mu.Unlock()
	project := c.projectLocked(ctx)
	if !project.OK() {
		return propagate[RenderStatus](project)
	}
	running := forward(ctx, c, "IsRenderingInProgress", project.Value.IsRenderingInProgress)
	if !running.OK() {
		return propagate[RenderStatus](running)
	}
	progress := forward(ctx, c, "GetRenderingProgress", project.Value.GetRenderingProgress)
	if !progress.OK() {
		return propagate[RenderStatus](progress)
	}
	return ok(RenderStatus{InProgress: running.Value, CompletionPercentage: progress.Value})
}
