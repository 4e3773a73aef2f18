package resolve

import "context"

// The interfaces below describe the scripting handles the connector talks
// to. Each one lists only the methods the connector calls. Every method
// crosses into the application's process, so each takes a context and a
// non-nil error means the call raised on the other side.
//
// Methods returning a handle return a nil interface when the application
// answered with nothing (None).

// Application is the root scripting object.
type Application interface {
	GetProjectManager(ctx context.Context) (ProjectManager, error)
	GetMediaStorage(ctx context.Context) (MediaStorage, error)
	Fusion(ctx context.Context) (Fusion, error)
	OpenPage(ctx context.Context, page string) (bool, error)
	GetCurrentPage(ctx context.Context) (string, error)
	GetProductName(ctx context.Context) (string, error)
	GetVersionString(ctx context.Context) (string, error)
	Play(ctx context.Context) error
	Stop(ctx context.Context) error
}

// ProjectManager enumerates, creates and loads projects.
type ProjectManager interface {
	GetCurrentProject(ctx context.Context) (Project, error)
	CreateProject(ctx context.Context, name string) (Project, error)
	LoadProject(ctx context.Context, name string) (Project, error)
	ExportProject(ctx context.Context, name, path string) (bool, error)
	ImportProject(ctx context.Context, path string) (bool, error)
	GetProjectListInCurrentFolder(ctx context.Context) ([]string, error)
}

// Project is an open project.
type Project interface {
	GetName(ctx context.Context) (string, error)
	GetMediaPool(ctx context.Context) (MediaPool, error)
	SaveProject(ctx context.Context) (bool, error)
	GetCurrentTimeline(ctx context.Context) (Timeline, error)
	GetTimelineCount(ctx context.Context) (int, error)
	GetTimelineByIndex(ctx context.Context, index int) (Timeline, error)
	SetCurrentTimeline(ctx context.Context, timeline Timeline) (bool, error)
	GetSetting(ctx context.Context) (map[string]string, error)
	SetSetting(ctx context.Context, key, value string) (bool, error)
	GetGallery(ctx context.Context) (Gallery, error)
	LoadRenderPreset(ctx context.Context, name string) (bool, error)
	SetRenderSettings(ctx context.Context, settings map[string]any) (bool, error)
	StartRendering(ctx context.Context) (bool, error)
	IsRenderingInProgress(ctx context.Context) (bool, error)
	GetRenderingProgress(ctx context.Context) (float64, error)
}

// MediaStorage browses volumes visible to the application.
type MediaStorage interface {
	GetMountedVolumes(ctx context.Context) ([]string, error)
	GetSubFolders(ctx context.Context, path string) ([]string, error)
	GetFiles(ctx context.Context, path string) ([]string, error)
	AddItemsToMediaPool(ctx context.Context, paths []string) ([]MediaPoolItem, error)
}

// MediaPool is the clip and bin hierarchy of a project.
type MediaPool interface {
	GetRootFolder(ctx context.Context) (Folder, error)
	GetCurrentFolder(ctx context.Context) (Folder, error)
	AddSubFolder(ctx context.Context, parent Folder, name string) (Folder, error)
	CreateEmptyTimeline(ctx context.Context, name string) (Timeline, error)
	AppendToTimeline(ctx context.Context, clips []MediaPoolItem) (bool, error)
	CreateTimelineFromClips(ctx context.Context, name string, clips []MediaPoolItem) (Timeline, error)
	ImportTimelineFromFile(ctx context.Context, path string) (Timeline, error)
}

// Folder is a media pool bin.
type Folder interface {
	GetName(ctx context.Context) (string, error)
	GetClips(ctx context.Context) ([]MediaPoolItem, error)
	GetSubFolders(ctx context.Context) ([]Folder, error)
}

// MediaPoolItem is a clip in the media pool.
type MediaPoolItem interface {
	GetName(ctx context.Context) (string, error)
	GetMetadata(ctx context.Context) (map[string]string, error)
}

// Timeline is a sequence of tracks.
type Timeline interface {
	GetName(ctx context.Context) (string, error)
	GetStartFrame(ctx context.Context) (int, error)
	GetEndFrame(ctx context.Context) (int, error)
	GetTrackCount(ctx context.Context, trackType string) (int, error)
	GetItemListInTrack(ctx context.Context, trackType string, index int) ([]TimelineItem, error)
	GetCurrentVideoItem(ctx context.Context) (TimelineItem, error)
	AddTrack(ctx context.Context, trackType string) (bool, error)
	SetTrackName(ctx context.Context, trackType string, index int, name string) (bool, error)
	SetTrackEnable(ctx context.Context, trackType string, index int, enabled bool) (bool, error)
	SetTrackVolume(ctx context.Context, trackType string, index int, volume float64) (bool, error)
	AddMarker(ctx context.Context, frame int, color, name, note string, duration int) (bool, error)
	GetCurrentTimecode(ctx context.Context) (string, error)
	SetCurrentTimecode(ctx context.Context, timecode string) (bool, error)
	GetTimecodeFromFrame(ctx context.Context, frame int) (string, error)
}

// TimelineItem is a clip placed on a timeline track.
type TimelineItem interface {
	GetName(ctx context.Context) (string, error)
	SetProperty(ctx context.Context, key string, value any) (bool, error)
	GetAudioVolume(ctx context.Context) (float64, error)
	SetAudioVolume(ctx context.Context, volume float64) (bool, error)
	GetVersionCount(ctx context.Context, versionType string) (int, error)
	SetCurrentVersion(ctx context.Context, index int, versionType string) (bool, error)
	GetNodeGraph(ctx context.Context) (NodeGraph, error)
	SaveAsStill(ctx context.Context, album GalleryAlbum) (GalleryStill, error)
	ApplyGradeFromStill(ctx context.Context, still GalleryStill) (bool, error)
}

// NodeGraph is the color grade of a timeline item.
type NodeGraph interface {
	GetNodes(ctx context.Context) ([]ColorNode, error)
	AddNode(ctx context.Context, nodeType string) (ColorNode, error)
}

// ColorNode is one node of a grade.
type ColorNode interface {
	GetLabel(ctx context.Context) (string, error)
}

// Fusion is the compositing engine.
type Fusion interface {
	Execute(ctx context.Context, script string) (any, error)
	GetCurrentComp(ctx context.Context) (Composition, error)
}

// Composition is a Fusion composition.
type Composition interface {
	AddTool(ctx context.Context, toolType string, x, y int) (FusionTool, error)
}

// FusionTool is a node inside a composition.
type FusionTool interface {
	SetInput(ctx context.Context, name string, value any) (bool, error)
	GetName(ctx context.Context) (string, error)
}

// Gallery holds the still albums of a project.
type Gallery interface {
	GetGalleryAlbumList(ctx context.Context) ([]GalleryAlbum, error)
	GetAlbum(ctx context.Context, name string) (GalleryAlbum, error)
	CreateEmptyAlbum(ctx context.Context, name string) (GalleryAlbum, error)
	GetAlbumName(ctx context.Context, album GalleryAlbum) (string, error)
}

// GalleryAlbum is a named collection of stills.
type GalleryAlbum interface {
	GetStills(ctx context.Context) ([]GalleryStill, error)
	GetLabel(ctx context.Context, still GalleryStill) (string, error)
}

// GalleryStill is opaque; it is only ever handed back to the application.
type GalleryStill any
