package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StartRenderTool defines the MCP tool schema for starting a render.
func StartRenderTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "start_render",
		Description: "Start rendering the render queue, optionally loading a preset and target directory first",
	}
}

// StartRenderHandler starts a render.
func StartRenderHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[RenderInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input RenderInput) (string, []string) {
		return reply(conn.StartRender(ctx, input.PresetName, input.RenderPath),
			done[bool]("Render started."), "Failed to start render."), nil
	})
}

// GetRenderStatusTool defines the MCP tool schema for render progress.
func GetRenderStatusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_render_status",
		Description: "Show whether a render is running and its progress",
	}
}

// GetRenderStatusHandler reports render progress.
func GetRenderStatusHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[EmptyInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, _ EmptyInput) (string, []string) {
		return reply(conn.RenderStatus(ctx), func(status resolve.RenderStatus) string {
			running := "No"
			if status.InProgress {
				running = "Yes"
			}
			return fmt.Sprintf("Rendering: %s\nProgress: %.0f%%", running, status.CompletionPercentage)
		}, "Failed to read render status."), nil
	})
}
