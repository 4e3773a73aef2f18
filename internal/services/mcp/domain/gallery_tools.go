package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func albumName(name string) string {
	if name == "" {
		return resolve.DefaultStillAlbum
	}
	return name
}

// SaveStillTool defines the MCP tool schema for grabbing stills.
func SaveStillTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "save_still",
		Description: "Grab a still of the clip under the playhead into a gallery album",
	}
}

// SaveStillHandler grabs a still, creating the album when needed.
func SaveStillHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[AlbumInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input AlbumInput) (string, []string) {
		album := albumName(input.AlbumName)
		res := conn.SaveStill(ctx, album)
		text := reply(res,
			done[resolve.GalleryStill](fmt.Sprintf("Saved still to album '%s'.", album)),
			fmt.Sprintf("Failed to save still to album '%s'.", album))
		return text, updatedIf(res.OK(), GalleryAlbumsURI)
	})
}

// ApplyStillTool defines the MCP tool schema for applying a still's grade.
func ApplyStillTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "apply_still",
		Description: "Apply the grade of a gallery still to a timeline clip",
	}
}

// ApplyStillHandler finds a still by album and label and applies it to the
// named clip, or to the clip under the playhead.
func ApplyStillHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[ApplyStillInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input ApplyStillInput) (string, []string) {
		album, miss := findAlbum(ctx, conn, albumName(input.AlbumName))
		if album == nil {
			return miss, nil
		}
		still, miss := findStill(ctx, conn, album, input.StillLabel)
		if still == nil {
			return miss, nil
		}
		var item resolve.TimelineItem
		if input.ClipName != "" {
			if item, miss = findTimelineItem(ctx, conn, input.ClipName); item == nil {
				return miss, nil
			}
		}
		return reply(conn.ApplyStill(ctx, still, item),
			done[bool](fmt.Sprintf("Applied still '%s'.", input.StillLabel)),
			fmt.Sprintf("Failed to apply still '%s'.", input.StillLabel)), nil
	})
}
