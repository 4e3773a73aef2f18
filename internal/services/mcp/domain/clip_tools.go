package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func versionType(t string) string {
	if t == "" {
		return resolve.DefaultVersionType
	}
	return fold(t)
}

// SetClipPropertyTool defines the MCP tool schema for timeline clip properties.
func SetClipPropertyTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_clip_property",
		Description: "Set a property of a timeline clip found by name",
	}
}

// SetClipPropertyHandler sets a property on a timeline clip.
func SetClipPropertyHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[ClipPropertyInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input ClipPropertyInput) (string, []string) {
		item, miss := findTimelineItem(ctx, conn, input.ClipName)
		if item == nil {
			return miss, nil
		}
		return reply(conn.SetClipProperty(ctx, item, input.Property, input.Value),
			done[bool](fmt.Sprintf("Set %s of '%s' to %v.", input.Property, input.ClipName, input.Value)),
			fmt.Sprintf("Failed to set %s of '%s'.", input.Property, input.ClipName)), nil
	})
}

// GetClipMetadataTool defines the MCP tool schema for media pool clip metadata.
func GetClipMetadataTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_clip_metadata",
		Description: "Show the metadata of a clip in the current media pool folder",
	}
}

// GetClipMetadataHandler renders clip metadata as sorted key: value lines.
func GetClipMetadataHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[ClipInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input ClipInput) (string, []string) {
		clip, miss := findMediaPoolClip(ctx, conn, input.ClipName)
		if clip == nil {
			return miss, nil
		}
		return reply(conn.ClipMetadata(ctx, clip), func(metadata map[string]string) string {
			return lines(keyValueLines(metadata), fmt.Sprintf("No metadata for '%s'.", input.ClipName))
		}, fmt.Sprintf("Failed to read metadata of '%s'.", input.ClipName)), nil
	})
}

// GetAudioVolumeTool defines the MCP tool schema for reading clip volume.
func GetAudioVolumeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_audio_volume",
		Description: "Show the audio volume of a timeline clip",
	}
}

// GetAudioVolumeHandler reports a timeline clip's volume.
func GetAudioVolumeHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[ClipInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input ClipInput) (string, []string) {
		item, miss := findTimelineItem(ctx, conn, input.ClipName)
		if item == nil {
			return miss, nil
		}
		return reply(conn.AudioVolume(ctx, item), func(volume float64) string {
			return fmt.Sprintf("Volume of '%s': %g", input.ClipName, volume)
		}, fmt.Sprintf("Failed to read volume of '%s'.", input.ClipName)), nil
	})
}

// SetAudioVolumeTool defines the MCP tool schema for changing clip volume.
func SetAudioVolumeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_audio_volume",
		Description: "Set the audio volume of a timeline clip",
	}
}

// SetAudioVolumeHandler sets a timeline clip's volume.
func SetAudioVolumeHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[ClipVolumeInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input ClipVolumeInput) (string, []string) {
		item, miss := findTimelineItem(ctx, conn, input.ClipName)
		if item == nil {
			return miss, nil
		}
		return reply(conn.SetAudioVolume(ctx, item, input.Volume),
			done[bool](fmt.Sprintf("Set volume of '%s' to %g.", input.ClipName, input.Volume)),
			fmt.Sprintf("Failed to set volume of '%s'.", input.ClipName)), nil
	})
}

// GetVersionCountTool defines the MCP tool schema for counting clip versions.
func GetVersionCountTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_version_count",
		Description: "Count the color or Fusion versions of a timeline clip",
	}
}

// GetVersionCountHandler counts versions of a timeline clip.
func GetVersionCountHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[VersionTypeInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input VersionTypeInput) (string, []string) {
		item, miss := findTimelineItem(ctx, conn, input.ClipName)
		if item == nil {
			return miss, nil
		}
		kind := versionType(input.VersionType)
		return reply(conn.VersionCount(ctx, item, kind), func(count int) string {
			return fmt.Sprintf("'%s' has %d %s versions.", input.ClipName, count, kind)
		}, fmt.Sprintf("Failed to count versions of '%s'.", input.ClipName)), nil
	})
}

// SetCurrentVersionTool defines the MCP tool schema for switching clip versions.
func SetCurrentVersionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_current_version",
		Description: "Switch a timeline clip to another color or Fusion version",
	}
}

// SetCurrentVersionHandler switches the version of a timeline clip.
func SetCurrentVersionHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[VersionInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input VersionInput) (string, []string) {
		item, miss := findTimelineItem(ctx, conn, input.ClipName)
		if item == nil {
			return miss, nil
		}
		kind := versionType(input.VersionType)
		return reply(conn.SetCurrentVersion(ctx, item, input.VersionIndex, kind),
			done[bool](fmt.Sprintf("Switched '%s' to %s version %d.", input.ClipName, kind, input.VersionIndex)),
			fmt.Sprintf("Failed to switch '%s' to %s version %d.", input.ClipName, kind, input.VersionIndex)), nil
	})
}
