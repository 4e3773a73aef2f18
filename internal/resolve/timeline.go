package resolve

import (
	"context"
)

// Track types accepted by the track accessors.
const (
	TrackVideo    = "video"
	TrackAudio    = "audio"
	TrackSubtitle = "subtitle"
)

// MarkerDuration is the length in frames of markers added by
// AddTimelineMarker.
const MarkerDuration = 1

// TimelineInfo summarises a timeline.
type TimelineInfo struct {
	Name        string
	StartFrame  int
	EndFrame    int
	VideoTracks int
}

// Duration is the inclusive frame span of the timeline.
func (t TimelineInfo) Duration() int {
	return t.EndFrame - t.StartFrame + 1
}

// CreateTimeline creates an empty timeline in the current media pool.
func (c *Connector) CreateTimeline(ctx context.Context, name string) Result[Timeline] {
	c.mu.Lock()
	defer c.mu.Unlock()
	pool := c.mediaPoolLocked(ctx)
	if !pool.OK() {
		return propagate[Timeline](pool)
	}
	return produced("CreateEmptyTimeline", forward(ctx, c, "CreateEmptyTimeline", func(ctx context.Context) (Timeline, error) {
		return pool.Value.CreateEmptyTimeline(ctx, name)
	}))
}

// CurrentTimeline returns the timeline open in the current project.
func (c *Connector) CurrentTimeline(ctx context.Context) Result[Timeline] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timelineLocked(ctx)
}

// CurrentTimelineInfo returns the name, frame range and video track count
// of the current timeline.
func (c *Connector) CurrentTimelineInfo(ctx context.Context) Result[TimelineInfo] {
	c.mu.Lock()
	defer c.mu.Unlock()
	timeline := c.timelineLocked(ctx)
	if !timeline.OK() {
		return propagate[TimelineInfo](timeline)
	}
	tl := timeline.Value
	name := forward(ctx, c, "GetName", tl.GetName)
	if !name.OK() {
		return propagate[TimelineInfo](name)
	}
	start := forward(ctx, c, "GetStartFrame", tl.GetStartFrame)
	if !start.OK() {
		return propagate[TimelineInfo](start)
	}
	end := forward(ctx, c, "GetEndFrame", tl.GetEndFrame)
	if !end.OK() {
		return propagate[TimelineInfo](end)
	}
	tracks := forward(ctx, c, "GetTrackCount", func(ctx context.Context) (int, error) {
		return tl.GetTrackCount(ctx, TrackVideo)
	})
	if !tracks.OK() {
		return propagate[TimelineInfo](tracks)
	}
	return ok(TimelineInfo{Name: name.Value, StartFrame: start.Value, EndFrame: end.Value, VideoTracks: tracks.Value})
}

// TimelineName returns the name of timeline.
func (c *Connector) TimelineName(ctx context.Context, timeline Timeline) Result[string] {
	if timeline == nil {
		return missing[string]("no timeline")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return forward(ctx, c, "GetName", timeline.GetName)
}

// TimelineCount returns the number of timelines in the current project.
func (c *Connector) TimelineCount(ctx context.Context) Result[int] {
	c.mu.Lock()
	defer c.mu.Unlock()
	project := c.projectLocked(ctx)
	if !project.OK() {
		return propagate[int](project)
	}
	return forward(ctx, c, "GetTimelineCount", project.Value.GetTimelineCount)
}

// TimelineByIndex returns the timeline at a 1-based index.
func (c *Connector) TimelineByIndex(ctx context.Context, index int) Result[Timeline] {
	c.mu.Lock()
	defer c.mu.Unlock()
	project := c.projectLocked(ctx)
	if !project.OK() {
		return propagate[Timeline](project)
	}
	return present("no timeline at index", forward(ctx, c, "GetTimelineByIndex", func(ctx context.Context) (Timeline, error) {
		return project.Value.GetTimelineByIndex(ctx, index)
	}))
}

// Timelines returns every timeline of the current project in index order.
func (c *Connector) Timelines(ctx context.Context) Result[[]Timeline] {
	c.mu.Lock()
	defer c.mu.Unlock()
	project := c.projectLocked(ctx)
	if !project.OK() {
		return propagate[[]Timeline](project)
	}
	count := forward(ctx, c, "GetTimelineCount", project.Value.GetTimelineCount)
	if !count.OK() {
		return propagate[[]Timeline](count)
	}
	timelines := make([]Timeline, 0, count.Value)
	for i := 1; i <= count.Value; i++ {
		tl := forward(ctx, c, "GetTimelineByIndex", func(ctx context.Context) (Timeline, error) {
			return project.Value.GetTimelineByIndex(ctx, i)
		})
		if !tl.OK() {
			return propagate[[]Timeline](tl)
		}
		if tl.Value != nil {
			timelines = append(timelines, tl.Value)
		}
	}
	return ok(timelines)
}

// SetCurrentTimeline makes timeline the current one.
func (c *Connector) SetCurrentTimeline(ctx context.Context, timeline Timeline) Result[bool] {
	if timeline == nil {
		return missing[bool]("no timeline")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	project := c.projectLocked(ctx)
	if !project.OK() {
		return propagate[bool](project)
	}
	return truthy("SetCurrentTimeline", forward(ctx, c, "SetCurrentTimeline", func(ctx context.Context) (bool, error) {
		return project.Value.SetCurrentTimeline(ctx, timeline)
	}))
}

// TimelineItems lists the items on one track of the current timeline.
// A falsy answer becomes an empty list.
func (c *Connector) TimelineItems(ctx context.Context, trackType string, trackIndex int) Result[[]TimelineItem] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timelineItemsLocked(ctx, trackType, trackIndex)
}

func (c *Connector) timelineItemsLocked(ctx context.Context, trackType string, trackIndex int) Result[[]TimelineItem] {
	timeline := c.timelineLocked(ctx)
	if !timeline.OK() {
		return propagate[[]TimelineItem](timeline)
	}
	res := forward(ctx, c, "GetItemListInTrack", func(ctx context.Context) ([]TimelineItem, error) {
		return timeline.Value.GetItemListInTrack(ctx, trackType, trackIndex)
	})
	if res.OK() && res.Value == nil {
		res.Value = []TimelineItem{}
	}
	return res
}

// AllTimelineItems lists the items of every video track and then every
// audio track of the current timeline, in track order.
func (c *Connector) AllTimelineItems(ctx context.Context) Result[[]TimelineItem] {
	c.mu.Lock()
	defer c.mu.Unlock()
	timeline := c.timelineLocked(ctx)
	if !timeline.OK() {
		return propagate[[]TimelineItem](timeline)
	}
	var items []TimelineItem
	for _, trackType := range []string{TrackVideo, TrackAudio} {
		count := forward(ctx, c, "GetTrackCount", func(ctx context.Context) (int, error) {
			return timeline.Value.GetTrackCount(ctx, trackType)
		})
		if !count.OK() {
			return propagate[[]TimelineItem](count)
		}
		for i := 1; i <= count.Value; i++ {
			track := forward(ctx, c, "GetItemListInTrack", func(ctx context.Context) ([]TimelineItem, error) {
				return timeline.Value.GetItemListInTrack(ctx, trackType, i)
			})
			if !track.OK() {
				return propagate[[]TimelineItem](track)
			}
			items = append(items, track.Value...)
		}
	}
	if items == nil {
		items = []TimelineItem{}
	}
	return ok(items)
}

// TrackCount returns the number of tracks of a type on the current timeline.
func (c *Connector) TrackCount(ctx context.Context, trackType string) Result[int] {
	c.mu.Lock()
	defer c.mu.Unlock()
	timeline := c.timelineLocked(ctx)
	if !timeline.OK() {
		return propagate[int](timeline)
	}
	return forward(ctx, c, "GetTrackCount", func(ctx context.Context) (int, error) {
		return timeline.Value.GetTrackCount(ctx, trackType)
	})
}

// AddTrack appends a track of trackType to the current timeline.
func (c *Connector) AddTrack(ctx context.Context, trackType string) Result[bool] {
	return c.onTimeline(ctx, "AddTrack", func(ctx context.Context, tl Timeline) (bool, error) {
		return tl.AddTrack(ctx, trackType)
	})
}

// SetTrackName renames a track of the current timeline.
func (c *Connector) SetTrackName(ctx context.Context, trackType string, trackIndex int, name string) Result[bool] {
	return c.onTimeline(ctx, "SetTrackName", func(ctx context.Context, tl Timeline) (bool, error) {
		return tl.SetTrackName(ctx, trackType, trackIndex, name)
	})
}

// EnableTrack enables or disables a track of the current timeline.
func (c *Connector) EnableTrack(ctx context.Context, trackType string, trackIndex int, enabled bool) Result[bool] {
	return c.onTimeline(ctx, "SetTrackEnable", func(ctx context.Context, tl Timeline) (bool, error) {
		return tl.SetTrackEnable(ctx, trackType, trackIndex, enabled)
	})
}

// SetTrackVolume sets the volume of an audio track of the current timeline.
func (c *Connector) SetTrackVolume(ctx context.Context, trackIndex int, volume float64) Result[bool] {
	return c.onTimeline(ctx, "SetTrackVolume", func(ctx context.Context, tl Timeline) (bool, error) {
		return tl.SetTrackVolume(ctx, TrackAudio, trackIndex, volume)
	})
}

// AddTimelineMarker adds a one-frame marker to the current timeline.
func (c *Connector) AddTimelineMarker(ctx context.Context, frame int, color, name, note string) Result[bool] {
	if color == "" {
		color = "Blue"
	}
	return c.onTimeline(ctx, "AddMarker", func(ctx context.Context, tl Timeline) (bool, error) {
		return tl.AddMarker(ctx, frame, color, name, note, MarkerDuration)
	})
}

// onTimeline forwards a boolean call to the current timeline.
func (c *Connector) onTimeline(ctx context.Context, op string, fn func(context.Context, Timeline) (bool, error)) Result[bool] {
	c.mu.Lock()
	defer c.mu.Unlock()
	timeline := c.timelineLocked(ctx)
	if !timeline.OK() {
		return propagate[bool](timeline)
	}
	return truthy(op, forward(ctx, c, op, func(ctx context.Context) (bool, error) {
		return fn(ctx, timeline.Value)
	}))
}
