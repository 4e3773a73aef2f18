package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ImportMediaTool defines the MCP tool schema for importing media.
func ImportMediaTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "import_media",
		Description: "Import media files into the current media pool folder",
	}
}

// ImportMediaHandler imports files through media storage.
func ImportMediaHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[FilePathsInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input FilePathsInput) (string, []string) {
		res := conn.AddItemsToMediaPool(ctx, input.FilePaths)
		text := reply(res, func(clips []resolve.MediaPoolItem) string {
			return fmt.Sprintf("Imported %d files.", len(clips))
		}, "Failed to import files.")
		return text, updatedIf(res.OK(), CurrentMediaPoolURI)
	})
}

// ListMediaStorageTool defines the MCP tool schema for browsing media storage.
func ListMediaStorageTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_media_storage",
		Description: "List mounted volumes, or the folders and files under a path",
	}
}

// ListMediaStorageHandler lists volumes when no path is given, otherwise the
// sub-folders and files of path.
func ListMediaStorageHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[PathInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input PathInput) (string, []string) {
		path := strings.TrimSpace(input.Path)
		if path == "" {
			return reply(conn.MountedVolumes(ctx), func(volumes []string) string {
				return lines(volumes, "No mounted volumes.")
			}, "Failed to list volumes."), nil
		}
		failure := fmt.Sprintf("Failed to list '%s'.", path)
		folders := conn.SubFolders(ctx, path)
		if !folders.OK() {
			return reply(folders, nil, failure), nil
		}
		files := conn.Files(ctx, path)
		if !files.OK() {
			return reply(files, nil, failure), nil
		}
		if len(folders.Value) == 0 && len(files.Value) == 0 {
			return fmt.Sprintf("Nothing found at '%s'.", path), nil
		}
		var b strings.Builder
		section(&b, "Folders", folders.Value)
		section(&b, "Files", files.Value)
		return strings.TrimRight(b.String(), "\n"), nil
	})
}

func section(b *strings.Builder, title string, entries []string) {
	if len(entries) == 0 {
		return
	}
	b.WriteString(title + ":\n")
	for _, entry := range entries {
		b.WriteString("  " + entry + "\n")
	}
}

// CreateBinTool defines the MCP tool schema for creating media pool bins.
func CreateBinTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_bin",
		Description: "Create a bin under the media pool root folder",
	}
}

// CreateBinHandler adds a sub-folder to the root folder.
func CreateBinHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[NameInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input NameInput) (string, []string) {
		failure := fmt.Sprintf("Failed to create bin '%s'.", input.Name)
		root := conn.RootFolder(ctx)
		if !root.OK() {
			return reply(root, nil, failure), nil
		}
		return reply(conn.AddSubFolder(ctx, root.Value, input.Name),
			done[resolve.Folder](fmt.Sprintf("Bin '%s' created.", input.Name)), failure), nil
	})
}

// ListBinsTool defines the MCP tool schema for listing media pool bins.
func ListBinsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_bins",
		Description: "List the bins under the media pool root folder",
	}
}

// ListBinsHandler lists the root folder's sub-folders.
func ListBinsHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[EmptyInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, _ EmptyInput) (string, []string) {
		root := conn.RootFolder(ctx)
		if !root.OK() {
			return reply(root, nil, "Failed to list bins."), nil
		}
		folders := conn.FolderSubFolders(ctx, root.Value)
		if !folders.OK() {
			return reply(folders, nil, "Failed to list bins."), nil
		}
		var names []string
		for _, folder := range folders.Value {
			if name := conn.FolderName(ctx, folder); name.OK() {
				names = append(names, name.Value)
			}
		}
		return lines(names, "No bins."), nil
	})
}
