package domain

import (
	"context"
	"fmt"
	"sort"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// projectURIs change whenever a different project becomes current.
var projectURIs = []string{SystemStatusURI, CurrentProjectURI, CurrentTimelineURI, CurrentMediaPoolURI, GalleryAlbumsURI, TimelineItemsURI}

// updatedIf returns uris when changed is true.
func updatedIf(changed bool, uris ...string) []string {
	if !changed {
		return nil
	}
	return uris
}

// CreateProjectTool defines the MCP tool schema for creating projects.
func CreateProjectTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_project",
		Description: "Create a new project in DaVinci Resolve",
	}
}

// CreateProjectHandler creates a project, which becomes the current one.
func CreateProjectHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[NameInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input NameInput) (string, []string) {
		res := conn.CreateProject(ctx, input.Name)
		text := reply(res,
			done[resolve.Project](fmt.Sprintf("Project '%s' created.", input.Name)),
			fmt.Sprintf("Failed to create '%s'.", input.Name))
		return text, updatedIf(res.OK(), projectURIs...)
	})
}

// LoadProjectTool defines the MCP tool schema for loading projects.
func LoadProjectTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "load_project",
		Description: "Load an existing project in DaVinci Resolve",
	}
}

// LoadProjectHandler loads a project by name.
func LoadProjectHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[NameInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input NameInput) (string, []string) {
		res := conn.LoadProject(ctx, input.Name)
		text := reply(res,
			done[resolve.Project](fmt.Sprintf("Project '%s' loaded.", input.Name)),
			fmt.Sprintf("Failed to load '%s'.", input.Name))
		return text, updatedIf(res.OK(), projectURIs...)
	})
}

// SaveProjectTool defines the MCP tool schema for saving the current project.
func SaveProjectTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "save_project",
		Description: "Save the current project",
	}
}

// SaveProjectHandler saves the current project.
func SaveProjectHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[EmptyInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, _ EmptyInput) (string, []string) {
		return reply(conn.SaveProject(ctx), done[bool]("Project saved."), "Failed to save project."), nil
	})
}

// ExportProjectTool defines the MCP tool schema for exporting a project file.
func ExportProjectTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "export_project",
		Description: "Export a project to a .drp file",
	}
}

// ExportProjectHandler exports a project to a file.
func ExportProjectHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[ExportProjectInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input ExportProjectInput) (string, []string) {
		return reply(conn.ExportProject(ctx, input.Name, input.FilePath),
			done[bool](fmt.Sprintf("Project '%s' exported to '%s'.", input.Name, input.FilePath)),
			fmt.Sprintf("Failed to export '%s'.", input.Name)), nil
	})
}

// ImportProjectTool defines the MCP tool schema for importing a project file.
func ImportProjectTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "import_project",
		Description: "Import a project from a .drp file",
	}
}

// ImportProjectHandler imports a project file into the project library.
func ImportProjectHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[FilePathInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input FilePathInput) (string, []string) {
		return reply(conn.ImportProject(ctx, input.FilePath),
			done[bool](fmt.Sprintf("Project imported from '%s'.", input.FilePath)),
			fmt.Sprintf("Failed to import '%s'.", input.FilePath)), nil
	})
}

// ListProjectsTool defines the MCP tool schema for listing projects.
func ListProjectsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_projects",
		Description: "List the projects in the current project library folder",
	}
}

// ListProjectsHandler lists project names, one per line.
func ListProjectsHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[EmptyInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, _ EmptyInput) (string, []string) {
		return reply(conn.ListProjects(ctx), func(names []string) string {
			return lines(names, "No projects found.")
		}, "Failed to list projects."), nil
	})
}

// GetProjectSettingsTool defines the MCP tool schema for reading project settings.
func GetProjectSettingsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_project_settings",
		Description: "Show the settings of the current project",
	}
}

// GetProjectSettingsHandler renders the project settings as sorted key: value lines.
func GetProjectSettingsHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[EmptyInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, _ EmptyInput) (string, []string) {
		return reply(conn.ProjectSettings(ctx), func(settings map[string]string) string {
			return lines(keyValueLines(settings), "No project settings.")
		}, "Failed to read project settings."), nil
	})
}

// SetProjectSettingTool defines the MCP tool schema for changing a project setting.
func SetProjectSettingTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "set_project_setting",
		Description: "Change one setting of the current project",
	}
}

// SetProjectSettingHandler changes a project setting.
func SetProjectSettingHandler(conn *resolve.Connector, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[ProjectSettingInput, any] {
	return toolHandler(conn, notify, func(ctx context.Context, input ProjectSettingInput) (string, []string) {
		res := conn.SetProjectSetting(ctx, input.Key, input.Value)
		text := reply(res,
			done[bool](fmt.Sprintf("Setting '%s' set to '%s'.", input.Key, input.Value)),
			fmt.Sprintf("Failed to set '%s'.", input.Key))
		return text, updatedIf(res.OK(), CurrentTimelineURI)
	})
}

func keyValueLines(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, key+": "+values[key])
	}
	return out
}
