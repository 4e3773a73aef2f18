package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var trackTypes = []string{resolve.TrackVideo, resolve.TrackAudio, resolve.TrackSubtitle}

// InvalidTrackTypeText is returned for a track type outside trackTypes.
var InvalidTrackTypeText = "Invalid track type. Use: " + strings.Join(trackTypes, ", ")

var timelineURIs = []string{SystemStatusURI, CurrentProjectURI, CurrentTimelineURI, TimelineItemsURI}

// trackType folds t and reports whether it names a track type.
func trackType(t string) (string, bool) {
	t = fold(t)
	for _, known := range trackTypes {
		if t == known {
			return t, true
		}
	}
	return t, false
}

func checkTrackType(t string) string {
	if _, valid := trackType(t); !valid {
		return InvalidTrackTypeText
	}
	return ""
}

// CreateTimelineTool defines the MCP tool schema for creating timelines.
func CreateTimelineTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_timeline",
		Description: "Create a new timeline in the current project",
	}
}

// CreateTimelineHandler creates an empty timeline.
func CreateTimelineHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[NameInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input NameInput) (string, []string) {
		res := conn.CreateTimeline(ctx, input.Name)
		text := reply(res,
			done[resolve.Timeline](fmt.Sprintf("Timeline '%s' created.", input.Name)),
			fmt.Sprintf("Failed to create '%s'.", input.Name))
		return text, updatedIf(res.OK(), timelineURIs...)
	})
}

// ListTimelinesTool defines the MCP tool schema for listing timelines.
func ListTimelinesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_timelines",
		Description: "List the timelines of the current project",
	}
}

// ListTimelinesHandler lists timeline names in project order.
func ListTimelinesHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[EmptyInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, _ EmptyInput) (string, []string) {
		timelines := conn.Timelines(ctx)
		if !timelines.OK() {
			return reply(timelines, nil, "Failed to list timelines."), nil
		}
		var names []string
		for _, timeline := range timelines.Value {
			if name := conn.TimelineName(ctx, timeline); name.OK() {
				names = append(names, name.Value)
			}
		}
		return lines(names, "No timelines in the current project."), nil
	})
}

// SetCurrentTimelineTool defines the MCP tool schema for switching timelines.
func SetCurrentTimelineTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_current_timeline",
		Description: "Make the named timeline current",
	}
}

// SetCurrentTimelineHandler switches to a timeline by name.
func SetCurrentTimelineHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[NameInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input NameInput) (string, []string) {
		timeline, miss := findTimeline(ctx, conn, input.Name)
		if timeline == nil {
			return miss, nil
		}
		res := conn.SetCurrentTimeline(ctx, timeline)
		text := reply(res,
			done[bool](fmt.Sprintf("Timeline '%s' is now current.", input.Name)),
			fmt.Sprintf("Failed to switch to '%s'.", input.Name))
		return text, updatedIf(res.OK(), timelineURIs...)
	})
}

// AppendToTimelineTool defines the MCP tool schema for appending clips.
func AppendToTimelineTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "append_to_timeline",
		Description: "Append media pool clips to the end of the current timeline",
	}
}

// AppendToTimelineHandler resolves clip names in the current media pool
// folder and appends them.
func AppendToTimelineHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[ClipNamesInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input ClipNamesInput) (string, []string) {
		clips, miss := findMediaPoolClips(ctx, conn, input.ClipNames)
		if clips == nil {
			return miss, nil
		}
		res := conn.AppendToTimeline(ctx, clips)
		text := reply(res,
			done[bool](fmt.Sprintf("Appended %d clips to the timeline.", len(clips))),
			"Failed to append clips.")
		return text, updatedIf(res.OK(), CurrentTimelineURI, TimelineItemsURI)
	})
}

// CreateTimelineFromClipsTool defines the MCP tool schema for building a timeline from clips.
func CreateTimelineFromClipsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_timeline_from_clips",
		Description: "Create a timeline made of the named media pool clips",
	}
}

// CreateTimelineFromClipsHandler builds a new timeline from clip names.
func CreateTimelineFromClipsHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[TimelineFromClipsInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input TimelineFromClipsInput) (string, []string) {
		clips, miss := findMediaPoolClips(ctx, conn, input.ClipNames)
		if clips == nil {
			return miss, nil
		}
		res := conn.CreateTimelineFromClips(ctx, input.Name, clips)
		text := reply(res,
			done[resolve.Timeline](fmt.Sprintf("Timeline '%s' created from %d clips.", input.Name, len(clips))),
			fmt.Sprintf("Failed to create '%s'.", input.Name))
		return text, updatedIf(res.OK(), timelineURIs...)
	})
}

// ImportTimelineFromFileTool defines the MCP tool schema for importing timelines.
func ImportTimelineFromFileTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "import_timeline_from_file",
		Description: "Import a timeline from an AAF, EDL, XML, FCPXML or OTIO file",
	}
}

// ImportTimelineFromFileHandler imports a timeline file.
func ImportTimelineFromFileHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[FilePathInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input FilePathInput) (string, []string) {
		res := conn.ImportTimelineFromFile(ctx, input.FilePath)
		failure := fmt.Sprintf("Failed to import '%s'.", input.FilePath)
		if !res.OK() {
			return reply(res, nil, failure), nil
		}
		text := fmt.Sprintf("Timeline imported from '%s'.", input.FilePath)
		if name := conn.TimelineName(ctx, res.Value); name.OK() {
			text = fmt.Sprintf("Timeline '%s' imported from '%s'.", name.Value, input.FilePath)
		}
		return text, timelineURIs
	})
}

// AddTrackTool defines the MCP tool schema for adding a track.
func AddTrackTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "add_track",
		Description: "Add a video, audio or subtitle track to the current timeline",
	}
}

// AddTrackHandler adds a track of the given type.
func AddTrackHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[TrackTypeInput, any] {
	validate := func(input TrackTypeInput) string { return checkTrackType(input.TrackType) }
	return validatedToolHandler(conn, notify, validate, func(ctx context.Context, input TrackTypeInput) (string, []string) {
		kind, _ := trackType(input.TrackType)
		res := conn.AddTrack(ctx, kind)
		text := reply(res,
			done[bool](fmt.Sprintf("Added %s track.", kind)),
			fmt.Sprintf("Failed to add %s track.", kind))
		return text, updatedIf(res.OK(), CurrentTimelineURI)
	})
}

// SetTrackNameTool defines the MCP tool schema for renaming a track.
func SetTrackNameTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_track_name",
		Description: "Rename a track of the current timeline",
	}
}

// SetTrackNameHandler renames a track.
func SetTrackNameHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[TrackNameInput, any] {
	validate := func(input TrackNameInput) string { return checkTrackType(input.TrackType) }
	return validatedToolHandler(conn, notify, validate, func(ctx context.Context, input TrackNameInput) (string, []string) {
		kind, _ := trackType(input.TrackType)
		return reply(conn.SetTrackName(ctx, kind, input.TrackIndex, input.Name),
			done[bool](fmt.Sprintf("Renamed %s track %d to '%s'.", kind, input.TrackIndex, input.Name)),
			fmt.Sprintf("Failed to rename %s track %d.", kind, input.TrackIndex)), nil
	})
}

// EnableTrackTool defines the MCP tool schema for enabling or disabling a track.
func EnableTrackTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "enable_track",
		Description: "Enable or disable a track of the current timeline",
	}
}

// EnableTrackHandler toggles a track.
func EnableTrackHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[EnableTrackInput, any] {
	validate := func(input EnableTrackInput) string { return checkTrackType(input.TrackType) }
	return validatedToolHandler(conn, notify, validate, func(ctx context.Context, input EnableTrackInput) (string, []string) {
		kind, _ := trackType(input.TrackType)
		verb := "Disabled"
		if input.Enabled {
			verb = "Enabled"
		}
		return reply(conn.EnableTrack(ctx, kind, input.TrackIndex, input.Enabled),
			done[bool](fmt.Sprintf("%s %s track %d.", verb, kind, input.TrackIndex)),
			fmt.Sprintf("Failed to update %s track %d.", kind, input.TrackIndex)), nil
	})
}

// SetTrackVolumeTool defines the MCP tool schema for audio track volume.
func SetTrackVolumeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_track_volume",
		Description: "Set the volume of an audio track of the current timeline",
	}
}

// SetTrackVolumeHandler sets an audio track volume.
func SetTrackVolumeHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[TrackVolumeInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input TrackVolumeInput) (string, []string) {
		return reply(conn.SetTrackVolume(ctx, input.TrackIndex, input.Volume),
			done[bool](fmt.Sprintf("Set audio track %d volume to %g.", input.TrackIndex, input.Volume)),
			fmt.Sprintf("Failed to set volume of audio track %d.", input.TrackIndex)), nil
	})
}

// AddTimelineMarkerTool defines the MCP tool schema for adding markers.
func AddTimelineMarkerTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "add_timeline_marker",
		Description: "Add a one-frame marker to the current timeline",
	}
}

// AddTimelineMarkerHandler adds a marker.
func AddTimelineMarkerHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[MarkerInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input MarkerInput) (string, []string) {
		return reply(conn.AddTimelineMarker(ctx, input.Frame, input.Color, input.Name, input.Note),
			done[bool](fmt.Sprintf("Marker added at frame %d.", input.Frame)),
			fmt.Sprintf("Failed to add marker at frame %d.", input.Frame)), nil
	})
}
