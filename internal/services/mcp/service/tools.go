package service

import (
	"fmt"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/louisbranch/resolve-mcp/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mcpRegistrationTarget interface {
	AddTool(*mcp.Tool, any) error
	AddResource(*mcp.Resource, mcp.ResourceHandler)
}

type toolRegistration struct {
	tool    *mcp.Tool
	handler any
}

func registerTools(registrar mcpRegistrationTarget, registrations []toolRegistration) error {
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

func registerProjectTools(registrar mcpRegistrationTarget, conn *resolve.Connector, notify domain.ResourceUpdateNotifier) error {
	return registerTools(registrar, []toolRegistration{
		{tool: domain.CreateProjectTool(), handler: domain.CreateProjectHandler(conn, notify)},
		{tool: domain.LoadProjectTool(), handler: domain.LoadProjectHandler(conn, notify)},
		{tool: domain.SaveProjectTool(), handler: domain.SaveProjectHandler(conn, notify)},
		{tool: domain.ExportProjectTool(), handler: domain.ExportProjectHandler(conn, notify)},
		{tool: domain.ImportProjectTool(), handler: domain.ImportProjectHandler(conn, notify)},
		{tool: domain.ListProjectsTool(), handler: domain.ListProjectsHandler(conn, notify)},
		{tool: domain.GetProjectSettingsTool(), handler: domain.GetProjectSettingsHandler(conn, notify)},
		{tool: domain.SetProjectSettingTool(), handler: domain.SetProjectSettingHandler(conn, notify)},
	})
}

func registerTimelineTools(registrar mcpRegistrationTarget, conn *resolve.Connector, notify domain.ResourceUpdateNotifier) error {
	return registerTools(registrar, []toolRegistration{
		{tool: domain.CreateTimelineTool(), handler: domain.CreateTimelineHandler(conn, notify)},
		{tool: domain.ListTimelinesTool(), handler: domain.ListTimelinesHandler(conn, notify)},
		{tool: domain.SetCurrentTimelineTool(), handler: domain.SetCurrentTimelineHandler(conn, notify)},
		{tool: domain.AppendToTimelineTool(), handler: domain.AppendToTimelineHandler(conn, notify)},
		{tool: domain.CreateTimelineFromClipsTool(), handler: domain.CreateTimelineFromClipsHandler(conn, notify)},
		{tool: domain.ImportTimelineFromFileTool(), handler: domain.ImportTimelineFromFileHandler(conn, notify)},
		{tool: domain.AddTrackTool(), handler: domain.AddTrackHandler(conn, notify)},
		{tool: domain.SetTrackNameTool(), handler: domain.SetTrackNameHandler(conn, notify)},
		{tool: domain.EnableTrackTool(), handler: domain.EnableTrackHandler(conn, notify)},
		{tool: domain.SetTrackVolumeTool(), handler: domain.SetTrackVolumeHandler(conn, notify)},
		{tool: domain.AddTimelineMarkerTool(), handler: domain.AddTimelineMarkerHandler(conn, notify)},
	})
}

func registerMediaTools(registrar mcpRegistrationTarget, conn *resolve.Connector, notify domain.ResourceUpdateNotifier) error {
	return registerTools(registrar, []toolRegistration{
		{tool: domain.ImportMediaTool(), handler: domain.ImportMediaHandler(conn, notify)},
		{tool: domain.ListMediaStorageTool(), handler: domain.ListMediaStorageHandler(conn, notify)},
		{tool: domain.CreateBinTool(), handler: domain.CreateBinHandler(conn, notify)},
		{tool: domain.ListBinsTool(), handler: domain.ListBinsHandler(conn, notify)},
	})
}

func registerPageTools(registrar mcpRegistrationTarget, conn *resolve.Connector, notify domain.ResourceUpdateNotifier) error {
	if err := registerTool(registrar, domain.OpenPageTool(), domain.OpenPageHandler(conn, notify)); err != nil {
		return err
	}
	return registerTool(registrar, domain.GetCurrentPageTool(), domain.GetCurrentPageHandler(conn, notify))
}

// registerFusionTools registers Fusion tools. check vets Lua scripts before
// they reach Fusion; nil disables the pre-flight.
func registerFusionTools(registrar mcpRegistrationTarget, conn *resolve.Connector, notify domain.ResourceUpdateNotifier, check domain.ScriptCheck) error {
	if err := registerTool(registrar, domain.AddFusionNodeTool(), domain.AddFusionNodeHandler(conn, notify)); err != nil {
		return err
	}
	return registerTool(registrar, domain.ExecuteLuaTool(), domain.ExecuteLuaHandler(conn, notify, check))
}

func registerColorTools(registrar mcpRegistrationTarget, conn *resolve.Connector, notify domain.ResourceUpdateNotifier) error {
	if err := registerTool(registrar, domain.AddColorNodeTool(), domain.AddColorNodeHandler(conn, notify)); err != nil {
		return err
	}
	return registerTool(registrar, domain.ListColorNodesTool(), domain.ListColorNodesHandler(conn, notify))
}

func registerClipTools(registrar mcpRegistrationTarget, conn *resolve.Connector, notify domain.ResourceUpdateNotifier) error {
	return registerTools(registrar, []toolRegistration{
		{tool: domain.SetClipPropertyTool(), handler: domain.SetClipPropertyHandler(conn, notify)},
		{tool: domain.GetClipMetadataTool(), handler: domain.GetClipMetadataHandler(conn, notify)},
		{tool: domain.GetAudioVolumeTool(), handler: domain.GetAudioVolumeHandler(conn, notify)},
		{tool: domain.SetAudioVolumeTool(), handler: domain.SetAudioVolumeHandler(conn, notify)},
		{tool: domain.GetVersionCountTool(), handler: domain.GetVersionCountHandler(conn, notify)},
		{tool: domain.SetCurrentVersionTool(), handler: domain.SetCurrentVersionHandler(conn, notify)},
	})
}

func registerGalleryTools(registrar mcpRegistrationTarget, conn *resolve.Connector, notify domain.ResourceUpdateNotifier) error {
	if err := registerTool(registrar, domain.SaveStillTool(), domain.SaveStillHandler(conn, notify)); err != nil {
		return err
	}
	return registerTool(registrar, domain.ApplyStillTool(), domain.ApplyStillHandler(conn, notify))
}

func registerRenderTools(registrar mcpRegistrationTarget, conn *resolve.Connector, notify domain.ResourceUpdateNotifier) error {
	if err := registerTool(registrar, domain.StartRenderTool(), domain.StartRenderHandler(conn, notify)); err != nil {
		return err
	}
	return registerTool(registrar, domain.GetRenderStatusTool(), domain.GetRenderStatusHandler(conn, notify))
}

func registerPlaybackTools(registrar mcpRegistrationTarget, conn *resolve.Connector, notify domain.ResourceUpdateNotifier) error {
	return registerTools(registrar, []toolRegistration{
		{tool: domain.PlayTool(), handler: domain.PlayHandler(conn, notify)},
		{tool: domain.StopTool(), handler: domain.StopHandler(conn, notify)},
		{tool: domain.GetCurrentTimecodeTool(), handler: domain.GetCurrentTimecodeHandler(conn, notify)},
		{tool: domain.SetPlayheadPositionTool(), handler: domain.SetPlayheadPositionHandler(conn, notify)},
	})
}

func registerTool(registrar mcpRegistrationTarget, tool *mcp.Tool, handler any) error {
	if tool == nil {
		return fmt.Errorf("tool is nil")
	}
	return registrar.AddTool(tool, handler)
}

// registerStatusResources registers the read-only status resources.
func registerStatusResources(registrar mcpRegistrationTarget, conn *resolve.Connector) {
	registrar.AddResource(domain.SystemStatusResource(), domain.SystemStatusResourceHandler(conn))
	registrar.AddResource(domain.CurrentProjectResource(), domain.CurrentProjectResourceHandler(conn))
	registrar.AddResource(domain.CurrentTimelineResource(), domain.CurrentTimelineResourceHandler(conn))
	registrar.AddResource(domain.CurrentMediaPoolResource(), domain.CurrentMediaPoolResourceHandler(conn))
	registrar.AddResource(domain.GalleryAlbumsResource(), domain.GalleryAlbumsResourceHandler(conn))
	registrar.AddResource(domain.TimelineItemsResource(), domain.TimelineItemsResourceHandler(conn))
}
