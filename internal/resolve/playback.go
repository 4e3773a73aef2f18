package resolve

import (
	"context"
)

// Play starts playback.
func (c *Connector) Play(ctx context.Context) Result[bool] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.app == nil {
		return notConnected[bool]()
	}
	return forward0(ctx, c, "Play", c.app.Play)
}

// Stop stops playback.
func (c *Connector) Stop(ctx context.Context) Result[bool] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.app == nil {
		return notConnected[bool]()
	}
	return forward0(ctx, c, "Stop", c.app.Stop)
}

// CurrentTimecode returns the playhead timecode of the current timeline.
func (c *Connector) CurrentTimecode(ctx context.Context) Result[string] {
	c.mu.Lock()
	defer c.mu.Unlock()
	timeline := c.timelineLocked(ctx)
	if !timeline.OK() {
		return propagate[string](timeline)
	}
	return forward(ctx, c, "GetCurrentTimecode", timeline.Value.GetCurrentTimecode)
}

// SetPlayheadPosition moves the playhead of the current timeline to frame.
func (c *Connector) SetPlayheadPosition(ctx context.Context, frame int) Result[bool] {
	c.mu.Lock()
	defer c.mu.Unlock()
	timeline := c.timelineLocked(ctx)
	if !timeline.OK() {
		return propagate[bool](timeline)
	}
	tl := timeline.Value
	timecode := forward(ctx, c, "GetTimecodeFromFrame", func(ctx context.Context) (string, error) {
		return tl.GetTimecodeFromFrame(ctx, frame)
	})
	if !timecode.OK() {
		return propagate[bool](timecode)
	}
	return truthy("SetCurrentTimecode", forward(ctx, c, "SetCurrentTimecode", func(ctx context.Context) (bool, error) {
		return tl.SetCurrentTimecode(ctx, timecode.Value)
	}))
}
