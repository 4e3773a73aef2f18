package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PlayTool defines the MCP tool schema for starting playback.
func PlayTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "play",
		Description: "Start playback",
	}
}

// PlayHandler starts playback.
func PlayHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[EmptyInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, _ EmptyInput) (string, []string) {
		return reply(conn.Play(ctx), done[bool]("Playback started."), "Failed to start playback."), nil
	})
}

// StopTool defines the MCP tool schema for stopping playback.
func StopTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "stop",
		Description: "Stop playback",
	}
}

// StopHandler stops playback.
func StopHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[EmptyInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, _ EmptyInput) (string, []string) {
		return reply(conn.Stop(ctx), done[bool]("Playback stopped."), "Failed to stop playback."), nil
	})
}

// GetCurrentTimecodeTool defines the MCP tool schema for reading the playhead.
func GetCurrentTimecodeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_current_timecode",
		Description: "Show the playhead timecode of the current timeline",
	}
}

// GetCurrentTimecodeHandler reports the playhead timecode.
func GetCurrentTimecodeHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[EmptyInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, _ EmptyInput) (string, []string) {
		return reply(conn.CurrentTimecode(ctx), func(timecode string) string {
			return "Current timecode: " + timecode
		}, "Failed to read the current timecode."), nil
	})
}

// SetPlayheadPositionTool defines the MCP tool schema for moving the playhead.
func SetPlayheadPositionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_playhead_position",
		Description: "Move the playhead of the current timeline to a frame",
	}
}

// SetPlayheadPositionHandler moves the playhead.
func SetPlayheadPositionHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[FrameInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input FrameInput) (string, []string) {
		return reply(conn.SetPlayheadPosition(ctx, input.Frame),
			done[bool](fmt.Sprintf("Playhead moved to frame %d.", input.Frame)),
			fmt.Sprintf("Failed to move playhead to frame %d.", input.Frame)), nil
	})
}
