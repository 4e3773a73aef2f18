package resolvetest

import (
	"context"
	"path"
	"strconv"
	"strings"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
)

func itoa(n int) string { return strconv.Itoa(n) }

// Project is a fake project with one media pool and one gallery.
type Project struct {
	rec *Recorder

	Name      string
	Pool      *MediaPool
	Gallery   *Gallery
	Timelines []*Timeline
	Current   *Timeline
	Settings  map[string]string
	Saved     int

	// Presets lists the render presets LoadRenderPreset accepts.
	Presets        map[string]bool
	LoadedPreset   string
	RenderSettings map[string]any
	Rendering      bool
	Progress       float64
}

func newProject(rec *Recorder, name string) *Project {
	p := &Project{
		rec:  rec,
		Name: name,
		Settings: map[string]string{
			"timelineFrameRate":        "24",
			"timelineResolutionWidth":  "1920",
			"timelineResolutionHeight": "1080",
		},
		RenderSettings: map[string]any{},
		Presets:        map[string]bool{"YouTube - 1080p": true, "H.264 Master": true},
	}
	root := &Folder{rec: rec, Name: "Master"}
	p.Pool = &MediaPool{rec: rec, project: p, Root: root, Current: root}
	p.Gallery = &Gallery{rec: rec}
	return p
}

// AddTimeline appends a timeline to the project. The first timeline added
// becomes current.
func (p *Project) AddTimeline(name string) *Timeline {
	tl := newTimeline(p.rec, name)
	p.Timelines = append(p.Timelines, tl)
	if p.Current == nil {
		p.Current = tl
	}
	return tl
}

func (p *Project) findTimeline(name string) *Timeline {
	for _, tl := range p.Timelines {
		if tl.Name == name {
			return tl
		}
	}
	return nil
}

func (p *Project) GetName(context.Context) (string, error) {
	return p.Name, p.rec.record("Project.GetName")
}

func (p *Project) GetMediaPool(context.Context) (resolve.MediaPool, error) {
	if err := p.rec.record("Project.GetMediaPool"); err != nil {
		return nil, err
	}
	if p.Pool == nil {
		return nil, nil
	}
	return p.Pool, nil
}

func (p *Project) SaveProject(context.Context) (bool, error) {
	if err := p.rec.record("Project.SaveProject"); err != nil {
		return false, err
	}
	p.Saved++
	return true, nil
}

func (p *Project) GetCurrentTimeline(context.Context) (resolve.Timeline, error) {
	if err := p.rec.record("Project.GetCurrentTimeline"); err != nil {
		return nil, err
	}
	if p.Current == nil {
		return nil, nil
	}
	return p.Current, nil
}

func (p *Project) GetTimelineCount(context.Context) (int, error) {
	return len(p.Timelines), p.rec.record("Project.GetTimelineCount")
}

func (p *Project) GetTimelineByIndex(_ context.Context, index int) (resolve.Timeline, error) {
	if err := p.rec.record("Project.GetTimelineByIndex"); err != nil {
		return nil, err
	}
	if index < 1 || index > len(p.Timelines) {
		return nil, nil
	}
	return p.Timelines[index-1], nil
}

func (p *Project) SetCurrentTimeline(_ context.Context, timeline resolve.Timeline) (bool, error) {
	if err := p.rec.record("Project.SetCurrentTimeline"); err != nil {
		return false, err
	}
	tl, isFake := timeline.(*Timeline)
	if !isFake || p.findTimeline(tl.Name) != tl {
		return false, nil
	}
	p.Current = tl
	return true, nil
}

func (p *Project) GetSetting(context.Context) (map[string]string, error) {
	if err := p.rec.record("Project.GetSetting"); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(p.Settings))
	for k, v := range p.Settings {
		out[k] = v
	}
	return out, nil
}

// SetSetting refuses keys the project does not already have.
func (p *Project) SetSetting(_ context.Context, key, value string) (bool, error) {
	if err := p.rec.record("Project.SetSetting"); err != nil {
		return false, err
	}
	if _, known := p.Settings[key]; !known {
		return false, nil
	}
	p.Settings[key] = value
	return true, nil
}

func (p *Project) GetGallery(context.Context) (resolve.Gallery, error) {
	if err := p.rec.record("Project.GetGallery"); err != nil {
		return nil, err
	}
	if p.Gallery == nil {
		return nil, nil
	}
	return p.Gallery, nil
}

func (p *Project) LoadRenderPreset(_ context.Context, name string) (bool, error) {
	if err := p.rec.record("Project.LoadRenderPreset"); err != nil {
		return false, err
	}
	if !p.Presets[name] {
		return false, nil
	}
	p.LoadedPreset = name
	return true, nil
}

func (p *Project) SetRenderSettings(_ context.Context, settings map[string]any) (bool, error) {
	if err := p.rec.record("Project.SetRenderSettings"); err != nil {
		return false, err
	}
	for k, v := range settings {
		p.RenderSettings[k] = v
	}
	return true, nil
}

// StartRendering refuses to start without a current timeline.
func (p *Project) StartRendering(context.Context) (bool, error) {
	if err := p.rec.record("Project.StartRendering"); err != nil {
		return false, err
	}
	if p.Current == nil {
		return false, nil
	}
	p.Rendering = true
	return true, nil
}

func (p *Project) IsRenderingInProgress(context.Context) (bool, error) {
	return p.Rendering, p.rec.record("Project.IsRenderingInProgress")
}

func (p *Project) GetRenderingProgress(context.Context) (float64, error) {
	return p.Progress, p.rec.record("Project.GetRenderingProgress")
}

// MediaPool is the fake bin hierarchy of a project.
type MediaPool struct {
	rec     *Recorder
	project *Project

	Root    *Folder
	Current *Folder
}

func (m *MediaPool) GetRootFolder(context.Context) (resolve.Folder, error) {
	if err := m.rec.record("MediaPool.GetRootFolder"); err != nil {
		return nil, err
	}
	if m.Root == nil {
		return nil, nil
	}
	return m.Root, nil
}

func (m *MediaPool) GetCurrentFolder(context.Context) (resolve.Folder, error) {
	if err := m.rec.record("MediaPool.GetCurrentFolder"); err != nil {
		return nil, err
	}
	if m.Current == nil {
		return nil, nil
	}
	return m.Current, nil
}

func (m *MediaPool) AddSubFolder(_ context.Context, parent resolve.Folder, name string) (resolve.Folder, error) {
	if err := m.rec.record("MediaPool.AddSubFolder"); err != nil {
		return nil, err
	}
	f, isFake := parent.(*Folder)
	if !isFake || name == "" {
		return nil, nil
	}
	return f.AddFolder(name), nil
}

func (m *MediaPool) CreateEmptyTimeline(_ context.Context, name string) (resolve.Timeline, error) {
	if err := m.rec.record("MediaPool.CreateEmptyTimeline"); err != nil {
		return nil, err
	}
	if name == "" || m.project.findTimeline(name) != nil {
		return nil, nil
	}
	return m.project.AddTimeline(name), nil
}

// AppendToTimeline appends clips to video track 1 of the current timeline.
func (m *MediaPool) AppendToTimeline(_ context.Context, clips []resolve.MediaPoolItem) (bool, error) {
	if err := m.rec.record("MediaPool.AppendToTimeline"); err != nil {
		return false, err
	}
	tl := m.project.Current
	if tl == nil || len(clips) == 0 {
		return false, nil
	}
	for _, clip := range clips {
		item, isFake := clip.(*MediaPoolItem)
		if !isFake {
			return false, nil
		}
		tl.AddVideoItem(1, item.Name)
	}
	return true, nil
}

func (m *MediaPool) CreateTimelineFromClips(_ context.Context, name string, clips []resolve.MediaPoolItem) (resolve.Timeline, error) {
	if err := m.rec.record("MediaPool.CreateTimelineFromClips"); err != nil {
		return nil, err
	}
	if name == "" || len(clips) == 0 || m.project.findTimeline(name) != nil {
		return nil, nil
	}
	tl := m.project.AddTimeline(name)
	for _, clip := range clips {
		if item, isFake := clip.(*MediaPoolItem); isFake {
			tl.AddVideoItem(1, item.Name)
		}
	}
	return tl, nil
}

// ImportTimelineFromFile names the new timeline after the file.
func (m *MediaPool) ImportTimelineFromFile(_ context.Context, filePath string) (resolve.Timeline, error) {
	if err := m.rec.record("MediaPool.ImportTimelineFromFile"); err != nil {
		return nil, err
	}
	base := path.Base(filePath)
	ext := path.Ext(base)
	switch strings.ToLower(ext) {
	case ".edl", ".xml", ".fcpxml", ".aaf", ".otio":
	default:
		return nil, nil
	}
	return m.project.AddTimeline(strings.TrimSuffix(base, ext)), nil
}

// Folder is a fake media pool bin.
type Folder struct {
	rec *Recorder

	Name    string
	Clips   []*MediaPoolItem
	Folders []*Folder
}

// AddClip adds a clip to the folder.
func (f *Folder) AddClip(name string) *MediaPoolItem {
	clip := &MediaPoolItem{rec: f.rec, Name: name, Metadata: map[string]string{"Clip Name": name}}
	f.Clips = append(f.Clips, clip)
	return clip
}

// AddFolder adds a sub-bin.
func (f *Folder) AddFolder(name string) *Folder {
	sub := &Folder{rec: f.rec, Name: name}
	f.Folders = append(f.Folders, sub)
	return sub
}

func (f *Folder) GetName(context.Context) (string, error) {
	return f.Name, f.rec.record("Folder.GetName")
}

func (f *Folder) GetClips(context.Context) ([]resolve.MediaPoolItem, error) {
	if err := f.rec.record("Folder.GetClips"); err != nil {
		return nil, err
	}
	clips := make([]resolve.MediaPoolItem, 0, len(f.Clips))
	for _, c := range f.Clips {
		clips = append(clips, c)
	}
	return clips, nil
}

func (f *Folder) GetSubFolders(context.Context) ([]resolve.Folder, error) {
	if err := f.rec.record("Folder.GetSubFolders"); err != nil {
		return nil, err
	}
	subs := make([]resolve.Folder, 0, len(f.Folders))
	for _, s := range f.Folders {
		subs = append(subs, s)
	}
	return subs, nil
}

// MediaPoolItem is a fake media pool clip.
type MediaPoolItem struct {
	rec *Recorder

	Name     string
	Metadata map[string]string
}

func (i *MediaPoolItem) GetName(context.Context) (string, error) {
	return i.Name, i.rec.record("MediaPoolItem.GetName")
}

func (i *MediaPoolItem) GetMetadata(context.Context) (map[string]string, error) {
	return i.Metadata, i.rec.record("MediaPoolItem.GetMetadata")
}
