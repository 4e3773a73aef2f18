package pybridge

import (
	"context"
	"fmt"
	"math"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
)

// Typed views over Object, one per capability interface.

type (
	projectManager struct{ Object }
	project        struct{ Object }
	mediaStorage   struct{ Object }
	mediaPool      struct{ Object }
	folder         struct{ Object }
	mediaPoolItem  struct{ Object }
	timeline       struct{ Object }
	timelineItem   struct{ Object }
	nodeGraph      struct{ Object }
	colorNode      struct{ Object }
	fusion         struct{ Object }
	composition    struct{ Object }
	fusionTool     struct{ Object }
	gallery        struct{ Object }
	galleryAlbum   struct{ Object }
	galleryStill   struct{ Object }
)

func newProjectManager(o Object) resolve.ProjectManager { return &projectManager{o} }
func newProject(o Object) resolve.Project { return &project{o} }
func newMediaStorage(o Object) resolve.MediaStorage { return &mediaStorage{o} }
func newMediaPool(o Object) resolve.MediaPool { return &mediaPool{o} }
func newFolder(o Object) resolve.Folder { return &folder{o} }
func newMediaPoolItem(o Object) resolve.MediaPoolItem { return &mediaPoolItem{o} }
func newTimeline(o Object) resolve.Timeline { return &timeline{o} }
func newTimelineItem(o Object) resolve.TimelineItem { return &timelineItem{o} }
func newNodeGraph(o Object) resolve.NodeGraph { return &nodeGraph{o} }
func newColorNode(o Object) resolve.ColorNode { return &colorNode{o} }
func newFusion(o Object) resolve.Fusion { return &fusion{o} }
func newComposition(o Object) resolve.Composition { return &composition{o} }
func newFusionTool(o Object) resolve.FusionTool { return &fusionTool{o} }
func newGallery(o Object) resolve.Gallery { return &gallery{o} }
func newGalleryAlbum(o Object) resolve.GalleryAlbum { return &galleryAlbum{o} }
func newGalleryStill(o Object) resolve.GalleryStill { return &galleryStill{o} }

// ProjectManager

func (m *projectManager) GetCurrentProject(ctx context.Context) (resolve.Project, error) {
	o, err := m.child(ctx, "GetCurrentProject")
	return wrap(o, err, newProject)
}

func (m *projectManager) CreateProject(ctx context.Context, name string) (resolve.Project, error) {
	o, err := m.child(ctx, "CreateProject", name)
	return wrap(o, err, newProject)
}

func (m *projectManager) LoadProject(ctx context.Context, name string) (resolve.Project, error) {
	o, err := m.child(ctx, "LoadProject", name)
	return wrap(o, err, newProject)
}

func (m *projectManager) ExportProject(ctx context.Context, name, path string) (bool, error) {
	return m.boolean(ctx, "ExportProject", name, path)
}

func (m *projectManager) ImportProject(ctx context.Context, path string) (bool, error) {
	return m.boolean(ctx, "ImportProject", path)
}

func (m *projectManager) GetProjectListInCurrentFolder(ctx context.Context) ([]string, error) {
	return m.strings(ctx, "GetProjectListInCurrentFolder")
}

// Project

func (p *project) GetName(ctx context.Context) (string, error) {
	return p.str(ctx, "GetName")
}

func (p *project) GetMediaPool(ctx context.Context) (resolve.MediaPool, error) {
	o, err := p.child(ctx, "GetMediaPool")
	return wrap(o, err, newMediaPool)
}

func (p *project) SaveProject(ctx context.Context) (bool, error) {
	return p.boolean(ctx, "SaveProject")
}

func (p *project) GetCurrentTimeline(ctx context.Context) (resolve.Timeline, error) {
	o, err := p.child(ctx, "GetCurrentTimeline")
	return wrap(o, err, newTimeline)
}

func (p *project) GetTimelineCount(ctx context.Context) (int, error) {
	return p.integer(ctx, "GetTimelineCount")
}

func (p *project) GetTimelineByIndex(ctx context.Context, index int) (resolve.Timeline, error) {
	o, err := p.child(ctx, "GetTimelineByIndex", index)
	return wrap(o, err, newTimeline)
}

func (p *project) SetCurrentTimeline(ctx context.Context, tl resolve.Timeline) (bool, error) {
	ref, err := refOf(tl)
	if err != nil {
		return false, err
	}
	return p.boolean(ctx, "SetCurrentTimeline", ref)
}

func (p *project) GetSetting(ctx context.Context) (map[string]string, error) {
	return p.stringMap(ctx, "GetSetting")
}

func (p *project) SetSetting(ctx context.Context, key, value string) (bool, error) {
	return p.boolean(ctx, "SetSetting", key, value)
}

func (p *project) GetGallery(ctx context.Context) (resolve.Gallery, error) {
	o, err := p.child(ctx, "GetGallery")
	return wrap(o, err, newGallery)
}

func (p *project) LoadRenderPreset(ctx context.Context, name string) (bool, error) {
	return p.boolean(ctx, "LoadRenderPreset", name)
}

func (p *project) SetRenderSettings(ctx context.Context, settings map[string]any) (bool, error) {
	return p.boolean(ctx, "SetRenderSettings", settings)
}

func (p *project) StartRendering(ctx context.Context) (bool, error) {
	return p.boolean(ctx, "StartRendering")
}

func (p *project) IsRenderingInProgress(ctx context.Context) (bool, error) {
	return p.boolean(ctx, "IsRenderingInProgress")
}

func (p *project) GetRenderingProgress(ctx context.Context) (float64, error) {
	return p.float(ctx, "GetRenderingProgress")
}

// MediaStorage

func (s *mediaStorage) GetMountedVolumes(ctx context.Context) ([]string, error) {
	return s.strings(ctx, "GetMountedVolumeList")
}

func (s *mediaStorage) GetSubFolders(ctx context.Context, path string) ([]string, error) {
	return s.strings(ctx, "GetSubFolderList", path)
}

func (s *mediaStorage) GetFiles(ctx context.Context, path string) ([]string, error) {
	return s.strings(ctx, "GetFileList", path)
}

func (s *mediaStorage) AddItemsToMediaPool(ctx context.Context, paths []string) ([]resolve.MediaPoolItem, error) {
	objs, err := s.children(ctx, "AddItemListToMediaPool", paths)
	return wrapAll(objs, err, newMediaPoolItem)
}

// MediaPool

func (m *mediaPool) GetRootFolder(ctx context.Context) (resolve.Folder, error) {
	o, err := m.child(ctx, "GetRootFolder")
	return wrap(o, err, newFolder)
}

func (m *mediaPool) GetCurrentFolder(ctx context.Context) (resolve.Folder, error) {
	o, err := m.child(ctx, "GetCurrentFolder")
	return wrap(o, err, newFolder)
}

func (m *mediaPool) AddSubFolder(ctx context.Context, parent resolve.Folder, name string) (resolve.Folder, error) {
	ref, err := refOf(parent)
	if err != nil {
		return nil, err
	}
	o, err := m.child(ctx, "AddSubFolder", ref, name)
	return wrap(o, err, newFolder)
}

func (m *mediaPool) CreateEmptyTimeline(ctx context.Context, name string) (resolve.Timeline, error) {
	o, err := m.child(ctx, "CreateEmptyTimeline", name)
	return wrap(o, err, newTimeline)
}

func (m *mediaPool) AppendToTimeline(ctx context.Context, clips []resolve.MediaPoolItem) (bool, error) {
	refs, err := refsOf(clips)
	if err != nil {
		return false, err
	}
	return m.boolean(ctx, "AppendToTimeline", refs)
}

func (m *mediaPool) CreateTimelineFromClips(ctx context.Context, name string, clips []resolve.MediaPoolItem) (resolve.Timeline, error) {
	refs, err := refsOf(clips)
	if err != nil {
		return nil, err
	}
	o, err := m.child(ctx, "CreateTimelineFromClips", name, refs)
	return wrap(o, err, newTimeline)
}

func (m *mediaPool) ImportTimelineFromFile(ctx context.Context, path string) (resolve.Timeline, error) {
	o, err := m.child(ctx, "ImportTimelineFromFile", path)
	return wrap(o, err, newTimeline)
}

// Folder

func (f *folder) GetName(ctx context.Context) (string, error) {
	return f.str(ctx, "GetName")
}

func (f *folder) GetClips(ctx context.Context) ([]resolve.MediaPoolItem, error) {
	objs, err := f.children(ctx, "GetClipList")
	return wrapAll(objs, err, newMediaPoolItem)
}

func (f *folder) GetSubFolders(ctx context.Context) ([]resolve.Folder, error) {
	objs, err := f.children(ctx, "GetSubFolderList")
	return wrapAll(objs, err, newFolder)
}

// MediaPoolItem

func (i *mediaPoolItem) GetName(ctx context.Context) (string, error) {
	return i.str(ctx, "GetName")
}

func (i *mediaPoolItem) GetMetadata(ctx context.Context) (map[string]string, error) {
	return i.stringMap(ctx, "GetMetadata")
}

// Timeline

func (t *timeline) GetName(ctx context.Context) (string, error) {
	return t.str(ctx, "GetName")
}

func (t *timeline) GetStartFrame(ctx context.Context) (int, error) {
	return t.integer(ctx, "GetStartFrame")
}

func (t *timeline) GetEndFrame(ctx context.Context) (int, error) {
	return t.integer(ctx, "GetEndFrame")
}

func (t *timeline) GetTrackCount(ctx context.Context, trackType string) (int, error) {
	return t.integer(ctx, "GetTrackCount", trackType)
}

func (t *timeline) GetItemListInTrack(ctx context.Context, trackType string, index int) ([]resolve.TimelineItem, error) {
	objs, err := t.children(ctx, "GetItemListInTrack", trackType, index)
	return wrapAll(objs, err, newTimelineItem)
}

func (t *timeline) GetCurrentVideoItem(ctx context.Context) (resolve.TimelineItem, error) {
	o, err := t.child(ctx, "GetCurrentVideoItem")
	return wrap(o, err, newTimelineItem)
}

func (t *timeline) AddTrack(ctx context.Context, trackType string) (bool, error) {
	return t.boolean(ctx, "AddTrack", trackType)
}

func (t *timeline) SetTrackName(ctx context.Context, trackType string, index int, name string) (bool, error) {
	return t.boolean(ctx, "SetTrackName", trackType, index, name)
}

func (t *timeline) SetTrackEnable(ctx context.Context, trackType string, index int, enabled bool) (bool, error) {
	return t.boolean(ctx, "SetTrackEnable", trackType, index, enabled)
}

func (t *timeline) SetTrackVolume(ctx context.Context, trackType string, index int, volume float64) (bool, error) {
	return t.boolean(ctx, "SetTrackVolume", trackType, index, volume)
}

func (t *timeline) AddMarker(ctx context.Context, frame int, color, name, note string, duration int) (bool, error) {
	return t.boolean(ctx, "AddMarker", frame, color, name, note, duration)
}

func (t *timeline) GetCurrentTimecode(ctx context.Context) (string, error) {
	return t.str(ctx, "GetCurrentTimecode")
}

func (t *timeline) SetCurrentTimecode(ctx context.Context, timecode string) (bool, error) {
	return t.boolean(ctx, "SetCurrentTimecode", timecode)
}

// GetTimecodeFromFrame has no scripting counterpart; it is derived from the
// timeline frame rate setting.
func (t *timeline) GetTimecodeFromFrame(ctx context.Context, frame int) (string, error) {
	rate, err := t.float(ctx, "GetSetting", "timelineFrameRate")
	if err != nil {
		return "", err
	}
	return timecode(frame, rate), nil
}

// TimelineItem

func (i *timelineItem) GetName(ctx context.Context) (string, error) {
	return i.str(ctx, "GetName")
}

func (i *timelineItem) SetProperty(ctx context.Context, key string, value any) (bool, error) {
	return i.boolean(ctx, "SetProperty", key, value)
}

func (i *timelineItem) GetAudioVolume(ctx context.Context) (float64, error) {
	return i.float(ctx, "GetAudioVolume")
}

func (i *timelineItem) SetAudioVolume(ctx context.Context, volume float64) (bool, error) {
	return i.boolean(ctx, "SetAudioVolume", volume)
}

func (i *timelineItem) GetVersionCount(ctx context.Context, versionType string) (int, error) {
	return i.integer(ctx, "GetVersionCount", versionType)
}

func (i *timelineItem) SetCurrentVersion(ctx context.Context, index int, versionType string) (bool, error) {
	return i.boolean(ctx, "SetCurrentVersion", index, versionType)
}

func (i *timelineItem) GetNodeGraph(ctx context.Context) (resolve.NodeGraph, error) {
	o, err := i.child(ctx, "GetNodeGraph")
	return wrap(o, err, newNodeGraph)
}

func (i *timelineItem) SaveAsStill(ctx context.Context, album resolve.GalleryAlbum) (resolve.GalleryStill, error) {
	ref, err := refOf(album)
	if err != nil {
		return nil, err
	}
	o, err := i.child(ctx, "SaveAsStill", ref)
	return wrap(o, err, newGalleryStill)
}

func (i *timelineItem) ApplyGradeFromStill(ctx context.Context, still resolve.GalleryStill) (bool, error) {
	ref, err := refOf(still)
	if err != nil {
		return false, err
	}
	return i.boolean(ctx, "ApplyGradeFromStill", ref)
}

// NodeGraph

func (g *nodeGraph) GetNodes(ctx context.Context) ([]resolve.ColorNode, error) {
	objs, err := g.children(ctx, "GetNodes")
	return wrapAll(objs, err, newColorNode)
}

func (g *nodeGraph) AddNode(ctx context.Context, nodeType string) (resolve.ColorNode, error) {
	o, err := g.child(ctx, "AddNode", nodeType)
	return wrap(o, err, newColorNode)
}

func (n *colorNode) GetLabel(ctx context.Context) (string, error) {
	return n.str(ctx, "GetLabel")
}

// Fusion

func (f *fusion) Execute(ctx context.Context, script string) (any, error) {
	v, err := f.call(ctx, "Execute", script)
	if err != nil {
		return nil, err
	}
	return valueOf(v), nil
}

func (f *fusion) GetCurrentComp(ctx context.Context) (resolve.Composition, error) {
	o, err := f.child(ctx, "GetCurrentComp")
	return wrap(o, err, newComposition)
}

func (c *composition) AddTool(ctx context.Context, toolType string, x, y int) (resolve.FusionTool, error) {
	o, err := c.child(ctx, "AddTool", toolType, x, y)
	return wrap(o, err, newFusionTool)
}

// SetInput answers None on success, so only a raised error is a failure.
func (t *fusionTool) SetInput(ctx context.Context, name string, value any) (bool, error) {
	if _, err := t.call(ctx, "SetInput", name, value); err != nil {
		return false, err
	}
	return true, nil
}

func (t *fusionTool) GetName(ctx context.Context) (string, error) {
	return t.str(ctx, "GetAttrs", "TOOLS_Name")
}

// Gallery

func (g *gallery) GetGalleryAlbumList(ctx context.Context) ([]resolve.GalleryAlbum, error) {
	objs, err := g.children(ctx, "GetGalleryStillAlbums")
	return wrapAll(objs, err, newGalleryAlbum)
}

// GetAlbum looks an album up by name. The scripting API has no direct
// lookup, so the listing is scanned.
func (g *gallery) GetAlbum(ctx context.Context, name string) (resolve.GalleryAlbum, error) {
	albums, err := g.GetGalleryAlbumList(ctx)
	if err != nil {
		return nil, err
	}
	for _, album := range albums {
		albumName, err := g.GetAlbumName(ctx, album)
		if err != nil {
			return nil, err
		}
		if albumName == name {
			return album, nil
		}
	}
	return nil, nil
}

// CreateEmptyAlbum creates a still album and names it.
func (g *gallery) CreateEmptyAlbum(ctx context.Context, name string) (resolve.GalleryAlbum, error) {
	o, err := g.child(ctx, "CreateGalleryStillAlbum")
	album, err := wrap(o, err, newGalleryAlbum)
	if err != nil || album == nil {
		return album, err
	}
	if _, err := g.call(ctx, "SetAlbumName", o.Ref(), name); err != nil {
		return nil, err
	}
	return album, nil
}

func (g *gallery) GetAlbumName(ctx context.Context, album resolve.GalleryAlbum) (string, error) {
	ref, err := refOf(album)
	if err != nil {
		return "", err
	}
	return g.str(ctx, "GetAlbumName", ref)
}

func (a *galleryAlbum) GetStills(ctx context.Context) ([]resolve.GalleryStill, error) {
	objs, err := a.children(ctx, "GetStills")
	return wrapAll(objs, err, newGalleryStill)
}

func (a *galleryAlbum) GetLabel(ctx context.Context, still resolve.GalleryStill) (string, error) {
	ref, err := refOf(still)
	if err != nil {
		return "", err
	}
	return a.str(ctx, "GetLabel", ref)
}

// timecode renders frame as HH:MM:SS:FF at the nominal rate. Drop-frame
// rates are counted at their rounded base.
func timecode(frame int, rate float64) string {
	fps := int(math.Round(rate))
	if fps <= 0 {
		fps = 24
	}
	if frame < 0 {
		frame = 0
	}
	ff := frame % fps
	seconds := frame / fps
	return fmt.Sprintf("%02d:%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60, ff)
}
