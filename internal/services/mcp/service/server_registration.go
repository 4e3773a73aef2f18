package service

import (
	"fmt"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/louisbranch/resolve-mcp/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mcpRegistrationKind int

const (
	mcpRegistrationKindTools mcpRegistrationKind = iota
	mcpRegistrationKindResources
)

type mcpRegistrationModule struct {
	name     string
	kind     mcpRegistrationKind
	register func(mcpRegistrationTarget) error
}

const (
	mcpProjectToolsModuleName    = "project-tools"
	mcpTimelineToolsModuleName   = "timeline-tools"
	mcpMediaToolsModuleName      = "media-tools"
	mcpPageToolsModuleName       = "page-tools"
	mcpFusionToolsModuleName     = "fusion-tools"
	mcpColorToolsModuleName      = "color-tools"
	mcpClipToolsModuleName       = "clip-tools"
	mcpGalleryToolsModuleName    = "gallery-tools"
	mcpRenderToolsModuleName     = "render-tools"
	mcpPlaybackToolsModuleName   = "playback-tools"
	mcpStatusResourcesModuleName = "status-resources"
)

type mcpServerRegistrationAdapter struct {
	server *mcp.Server
}

func (r mcpServerRegistrationAdapter) AddTool(tool *mcp.Tool, handler any) error {
	return addMCPTool(r.server, tool, handler)
}

func (r mcpServerRegistrationAdapter) AddResource(resource *mcp.Resource, handler mcp.ResourceHandler) {
	r.server.AddResource(resource, handler)
}

type mcpToolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newMCPToolRegistrar[I any]() mcpToolRegistrar {
	return mcpToolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, any])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, any]))
		},
	}
}

// Every tool answers with text content only, so registrars are keyed on the
// input type alone.
var mcpToolRegistrars = []mcpToolRegistrar{
	newMCPToolRegistrar[domain.EmptyInput](),
	newMCPToolRegistrar[domain.NameInput](),
	newMCPToolRegistrar[domain.FilePathInput](),
	newMCPToolRegistrar[domain.ExportProjectInput](),
	newMCPToolRegistrar[domain.ProjectSettingInput](),
	newMCPToolRegistrar[domain.ClipNamesInput](),
	newMCPToolRegistrar[domain.TimelineFromClipsInput](),
	newMCPToolRegistrar[domain.TrackTypeInput](),
	newMCPToolRegistrar[domain.TrackNameInput](),
	newMCPToolRegistrar[domain.EnableTrackInput](),
	newMCPToolRegistrar[domain.TrackVolumeInput](),
	newMCPToolRegistrar[domain.MarkerInput](),
	newMCPToolRegistrar[domain.FilePathsInput](),
	newMCPToolRegistrar[domain.PathInput](),
	newMCPToolRegistrar[domain.PageInput](),
	newMCPToolRegistrar[domain.FusionNodeInput](),
	newMCPToolRegistrar[domain.ScriptInput](),
	newMCPToolRegistrar[domain.ColorNodeInput](),
	newMCPToolRegistrar[domain.ClipInput](),
	newMCPToolRegistrar[domain.ClipPropertyInput](),
	newMCPToolRegistrar[domain.ClipVolumeInput](),
	newMCPToolRegistrar[domain.VersionTypeInput](),
	newMCPToolRegistrar[domain.VersionInput](),
	newMCPToolRegistrar[domain.AlbumInput](),
	newMCPToolRegistrar[domain.ApplyStillInput](),
	newMCPToolRegistrar[domain.RenderInput](),
	newMCPToolRegistrar[domain.FrameInput](),
}

func addMCPTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	for _, registrar := range mcpToolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	toolName := "<nil>"
	if tool != nil {
		toolName = tool.Name
	}
	return fmt.Errorf("mcp registration adapter does not support handler type %T for tool %q", handler, toolName)
}

func newMCPRegistrationModules(
	conn *resolve.Connector,
	notify domain.ResourceUpdateNotifier,
	scriptCheck domain.ScriptCheck,
) []mcpRegistrationModule {
	tools := func(name string, register func(mcpRegistrationTarget, *resolve.Connector, domain.ResourceUpdateNotifier) error) mcpRegistrationModule {
		return mcpRegistrationModule{
			name: name,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return register(registrar, conn, notify)
			},
		}
	}
	return []mcpRegistrationModule{
		tools(mcpProjectToolsModuleName, registerProjectTools),
		tools(mcpTimelineToolsModuleName, registerTimelineTools),
		tools(mcpMediaToolsModuleName, registerMediaTools),
		tools(mcpPageToolsModuleName, registerPageTools),
		{
			name: mcpFusionToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return registerFusionTools(registrar, conn, notify, scriptCheck)
			},
		},
		tools(mcpColorToolsModuleName, registerColorTools),
		tools(mcpClipToolsModuleName, registerClipTools),
		tools(mcpGalleryToolsModuleName, registerGalleryTools),
		tools(mcpRenderToolsModuleName, registerRenderTools),
		tools(mcpPlaybackToolsModuleName, registerPlaybackTools),
		{
			name: mcpStatusResourcesModuleName,
			kind: mcpRegistrationKindResources,
			register: func(registrar mcpRegistrationTarget) error {
				registerStatusResources(registrar, conn)
				return nil
			},
		},
	}
}
