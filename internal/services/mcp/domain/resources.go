package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Resource URIs.
const (
	SystemStatusURI     = "system://status"
	CurrentProjectURI   = "project://current"
	CurrentTimelineURI  = "timeline://current"
	CurrentMediaPoolURI = "mediapool://current"
	GalleryAlbumsURI    = "gallery://albums"
	TimelineItemsURI    = "timeline://items"
)

const textMIMEType = "text/plain"

// SystemStatusResource defines the MCP resource for the connection status.
func SystemStatusResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "system_status",
		Title:       "System status",
		Description: "Connection state, open project and timeline",
		MIMEType:    textMIMEType,
		URI:         SystemStatusURI,
	}
}

// CurrentProjectResource defines the MCP resource for the open project.
func CurrentProjectResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "current_project",
		Title:       "Current project",
		Description: "Name and timeline count of the open project",
		MIMEType:    textMIMEType,
		URI:         CurrentProjectURI,
	}
}

// CurrentTimelineResource defines the MCP resource for the current timeline.
func CurrentTimelineResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "current_timeline",
		Title:       "Current timeline",
		Description: "Name, duration and video track count of the current timeline",
		MIMEType:    textMIMEType,
		URI:         CurrentTimelineURI,
	}
}

// CurrentMediaPoolResource defines the MCP resource for the current media pool folder.
func CurrentMediaPoolResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "current_media_pool_folder",
		Title:       "Current media pool folder",
		Description: "Name and clip count of the current media pool folder",
		MIMEType:    textMIMEType,
		URI:         CurrentMediaPoolURI,
	}
}

// GalleryAlbumsResource defines the MCP resource for gallery still albums.
func GalleryAlbumsResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "gallery_albums",
		Title:       "Gallery albums",
		Description: "Still albums of the current project's gallery",
		MIMEType:    textMIMEType,
		URI:         GalleryAlbumsURI,
	}
}

// TimelineItemsResource defines the MCP resource for the items of the current timeline.
func TimelineItemsResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "timeline_items",
		Title:       "Timeline items",
		Description: "Clips on video track 1 of the current timeline",
		MIMEType:    textMIMEType,
		URI:         TimelineItemsURI,
	}
}

// textResource adapts a render function to a resource handler. render runs
// only while connected.
func textResource(conn *resolve.Connector, uri string, render func(ctx context.Context) string) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		contentURI := uri
		if req != nil && req.Params != nil && req.Params.URI != "" {
			contentURI = req.Params.URI
		}
		text := NotConnectedText
		if conn.IsConnected() {
			text = render(ctx)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      contentURI,
					MIMEType: textMIMEType,
					Text:     text,
				},
			},
		}, nil
	}
}

// SystemStatusResourceHandler renders the connection status.
func SystemStatusResourceHandler(conn *resolve.Connector) mcp.ResourceHandler {
	return textResource(conn, SystemStatusURI, func(ctx context.Context) string {
		projectName := "No project open"
		if project := conn.ProjectName(ctx); project.OK() && project.Value != "" {
			projectName = project.Value
		}
		timelineName := "No timeline open"
		if timeline := conn.CurrentTimeline(ctx); timeline.OK() {
			if name := conn.TimelineName(ctx, timeline.Value); name.OK() {
				timelineName = name.Value
			}
		}
		text := fmt.Sprintf("Connected: Yes\nProject: %s\nTimeline: %s", projectName, timelineName)
		if product := conn.ProductInfo(ctx); product.OK() && product.Value != "" {
			text += "\nProduct: " + product.Value
		}
		return text
	})
}

// CurrentProjectResourceHandler renders the open project.
func CurrentProjectResourceHandler(conn *resolve.Connector) mcp.ResourceHandler {
	return textResource(conn, CurrentProjectURI, func(ctx context.Context) string {
		return reply(conn.ProjectInfo(ctx), func(info resolve.ProjectInfo) string {
			return fmt.Sprintf("Name: %s\nTimelines: %d", info.Name, info.TimelineCount)
		}, "Failed to read the current project.")
	})
}

// CurrentTimelineResourceHandler renders the current timeline.
func CurrentTimelineResourceHandler(conn *resolve.Connector) mcp.ResourceHandler {
	return textResource(conn, CurrentTimelineURI, func(ctx context.Context) string {
		return reply(conn.CurrentTimelineInfo(ctx), func(info resolve.TimelineInfo) string {
			return fmt.Sprintf("Name: %s\nDuration: %d frames\nVideo Tracks: %d", info.Name, info.Duration(), info.VideoTracks)
		}, "Failed to read the current timeline.")
	})
}

// CurrentMediaPoolResourceHandler renders the current media pool folder.
func CurrentMediaPoolResourceHandler(conn *resolve.Connector) mcp.ResourceHandler {
	return textResource(conn, CurrentMediaPoolURI, func(ctx context.Context) string {
		return reply(conn.CurrentFolderInfo(ctx), func(info resolve.FolderInfo) string {
			return fmt.Sprintf("Folder: %s\nClips: %d", info.Name, info.ClipCount)
		}, "Failed to read the media pool.")
	})
}

// GalleryAlbumsResourceHandler lists the still albums, one per line.
func GalleryAlbumsResourceHandler(conn *resolve.Connector) mcp.ResourceHandler {
	return textResource(conn, GalleryAlbumsURI, func(ctx context.Context) string {
		albums := conn.GalleryAlbums(ctx)
		if !albums.OK() {
			return reply(albums, nil, "Failed to read gallery albums.")
		}
		var names []string
		for _, album := range albums.Value {
			if name := conn.AlbumName(ctx, album); name.OK() {
				names = append(names, name.Value)
			}
		}
		return lines(names, "No gallery albums.")
	})
}

// TimelineItemsResourceHandler lists the clips on video track 1.
func TimelineItemsResourceHandler(conn *resolve.Connector) mcp.ResourceHandler {
	return textResource(conn, TimelineItemsURI, func(ctx context.Context) string {
		items := conn.TimelineItems(ctx, resolve.TrackVideo, 1)
		if !items.OK() {
			return reply(items, nil, "Failed to read timeline items.")
		}
		var entries []string
		for _, item := range items.Value {
			if name := conn.ItemName(ctx, item); name.OK() {
				entries = append(entries, fmt.Sprintf("%s:%d %s", resolve.TrackVideo, 1, name.Value))
			}
		}
		return lines(entries, "No items on the current timeline.")
	})
}
