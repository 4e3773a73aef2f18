package resolve

import (
	"context"
)

// DefaultVersionType is the version kind used when none is named.
const DefaultVersionType = "color"

// ItemName returns the name of a timeline item.
func (c *Connector) ItemName(ctx context.Context, item TimelineItem) Result[string] {
	if item == nil {
		return missing[string]("no clip")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return forward(ctx, c, "GetName", item.GetName)
}

// SetClipProperty sets one property (Pan, ZoomX, ...) of a timeline item.
func (c *Connector) SetClipProperty(ctx context.Context, item TimelineItem, key string, value any) Result[bool] {
	return c.onItem(ctx, item, "SetProperty", func(ctx context.Context) (bool, error) {
		return item.SetProperty(ctx, key, value)
	})
}

// ClipMetadata returns the metadata of a media pool clip.
func (c *Connector) ClipMetadata(ctx context.Context, clip MediaPoolItem) Result[map[string]string] {
	if clip == nil {
		return missing[map[string]string]("no clip")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	res := forward(ctx, c, "GetMetadata", clip.GetMetadata)
	if res.OK() && res.Value == nil {
		res.Value = map[string]string{}
	}
	return res
}

// AudioVolume returns the audio level of a timeline item.
func (c *Connector) AudioVolume(ctx context.Context, item TimelineItem) Result[float64] {
	if item == nil {
		return missing[float64]("no clip")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return forward(ctx, c, "GetAudioVolume", item.GetAudioVolume)
}

// SetAudioVolume sets the audio level of a timeline item.
func (c *Connector) SetAudioVolume(ctx context.Context, item TimelineItem, volume float64) Result[bool] {
	return c.onItem(ctx, item, "SetAudioVolume", func(ctx context.Context) (bool, error) {
		return item.SetAudioVolume(ctx, volume)
	})
}

// VersionCount returns how many versions of versionType the item has.
func (c *Connector) VersionCount(ctx context.Context, item TimelineItem, versionType string) Result[int] {
	if item == nil {
		return missing[int]("no clip")
	}
	if versionType == "" {
		versionType = DefaultVersionType
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return forward(ctx, c, "GetVersionCount", func(ctx context.Context) (int, error) {
		return item.GetVersionCount(ctx, versionType)
	})
}

// SetCurrentVersion switches the item to the 0-based version index.
func (c *Connector) SetCurrentVersion(ctx context.Context, item TimelineItem, index int, versionType string) Result[bool] {
	if versionType == "" {
		versionType = DefaultVersionType
	}
	return c.onItem(ctx, item, "SetCurrentVersion", func(ctx context.Context) (bool, error) {
		return item.SetCurrentVersion(ctx, index, versionType)
	})
}

func (c *Connector) onItem(ctx context.Context, item TimelineItem, op string, fn func(context.Context) (bool, error)) Result[bool] {
	if item == nil {
		return missing[bool]("no clip")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return truthy(op, forward(ctx, c, op, fn))
}
