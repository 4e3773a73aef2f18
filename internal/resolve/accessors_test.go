package resolve_test

import (
	"context"
	"testing"

	apperrors "github.com/louisbranch/resolve-mcp/internal/platform/errors"
	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/louisbranch/resolve-mcp/internal/resolve/resolvetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectBecomesCurrent(t *testing.T) {
	app := resolvetest.New()
	c := connected(t, app)
	ctx := context.Background()

	res := c.CreateProject(ctx, "Demo")
	require.True(t, res.OK())

	name := c.ProjectName(ctx)
	require.True(t, name.OK())
	assert.Equal(t, "Demo", name.Value)

	pool := c.MediaPool(ctx)
	require.True(t, pool.OK())
	assert.Same(t, app.Manager.Current.Pool, pool.Value)
}

func TestCreateProjectDuplicateIsRejected(t *testing.T) {
	app := resolvetest.New()
	app.AddProject("Demo")
	c := connected(t, app)

	res := c.CreateProject(context.Background(), "Demo")
	assert.Equal(t, resolve.StatusRejected, res.Status)
	assert.Equal(t, apperrors.CodeRejected, res.Code())
}

func TestCurrentProjectIsRederived(t *testing.T) {
	app := resolvetest.New()
	app.OpenProject("First")
	c := connected(t, app)
	ctx := context.Background()

	app.Manager.Current = app.AddProject("Second")
	assert.Equal(t, "Second", c.ProjectName(ctx).Value)

	app.Manager.Current = nil
	res := c.ProjectName(ctx)
	assert.Equal(t, resolve.StatusAbsent, res.Status)
	assert.Equal(t, apperrors.CodeNotFound, res.Code())
}

func TestOpenPage(t *testing.T) {
	app := resolvetest.New()
	c := connected(t, app)
	ctx := context.Background()

	require.True(t, c.OpenPage(ctx, "COLOR").OK())
	assert.Equal(t, "color", app.Page)

	res := c.OpenPage(ctx, "nonexistent")
	assert.Equal(t, apperrors.CodeInvalidArgument, res.Code())
	assert.Equal(t, 1, app.Recorder().Called("Application.OpenPage"))
}

func TestProjectInfoAndTimelines(t *testing.T) {
	app := resolvetest.New()
	p := app.OpenProject("Demo")
	p.AddTimeline("Assembly")
	p.AddTimeline("Fine Cut")
	c := connected(t, app)
	ctx := context.Background()

	info := c.ProjectInfo(ctx)
	require.True(t, info.OK())
	assert.Equal(t, resolve.ProjectInfo{Name: "Demo", TimelineCount: 2}, info.Value)

	timelines := c.Timelines(ctx)
	require.True(t, timelines.OK())
	require.Len(t, timelines.Value, 2)
	assert.Equal(t, "Fine Cut", c.TimelineName(ctx, timelines.Value[1]).Value)

	require.True(t, c.SetCurrentTimeline(ctx, timelines.Value[1]).OK())
	tl := c.CurrentTimelineInfo(ctx)
	require.True(t, tl.OK())
	assert.Equal(t, "Fine Cut", tl.Value.Name)
	assert.Equal(t, 240, tl.Value.Duration())
	assert.Equal(t, 1, tl.Value.VideoTracks)

	assert.Equal(t, resolve.StatusAbsent, c.TimelineByIndex(ctx, 9).Status)
}

func TestAllTimelineItemsScansVideoThenAudio(t *testing.T) {
	app := resolvetest.New()
	tl := app.OpenProject("Demo").AddTimeline("Cut")
	tl.AddAudioItem(1, "Music")
	tl.AddVideoItem(2, "B-Roll")
	tl.AddVideoItem(1, "ClipA")
	c := connected(t, app)
	ctx := context.Background()

	res := c.AllTimelineItems(ctx)
	require.True(t, res.OK())
	var names []string
	for _, item := range res.Value {
		names = append(names, c.ItemName(ctx, item).Value)
	}
	assert.Equal(t, []string{"ClipA", "B-Roll", "Music"}, names)

	empty := c.TimelineItems(ctx, resolve.TrackVideo, 7)
	require.True(t, empty.OK())
	assert.NotNil(t, empty.Value)
	assert.Empty(t, empty.Value)
}

func TestTrackAndMarkerAccessors(t *testing.T) {
	app := resolvetest.New()
	tl := app.OpenProject("Demo").AddTimeline("Cut")
	c := connected(t, app)
	ctx := context.Background()

	require.True(t, c.AddTrack(ctx, resolve.TrackAudio).OK())
	assert.Equal(t, 2, c.TrackCount(ctx, resolve.TrackAudio).Value)
	require.True(t, c.SetTrackName(ctx, resolve.TrackVideo, 1, "Main").OK())
	assert.Equal(t, "Main", tl.TrackNames["video1"])
	require.True(t, c.EnableTrack(ctx, resolve.TrackVideo, 1, false).OK())
	assert.True(t, tl.Disabled["video1"])
	require.True(t, c.SetTrackVolume(ctx, 2, 0.25).OK())
	assert.Equal(t, 0.25, tl.Volumes["audio2"])
	assert.Equal(t, resolve.StatusRejected, c.SetTrackName(ctx, resolve.TrackVideo, 5, "x").Status)

	require.True(t, c.AddTimelineMarker(ctx, 100, "", "Beat", "drop").OK())
	require.Len(t, tl.Markers, 1)
	assert.Equal(t, resolvetest.Marker{Frame: 100, Color: "Blue", Name: "Beat", Note: "drop", Duration: resolve.MarkerDuration}, tl.Markers[0])
	assert.Equal(t, resolve.StatusRejected, c.AddTimelineMarker(ctx, 100, "Red", "", "").Status)
}

func TestMediaAccessors(t *testing.T) {
	app := resolvetest.New()
	app.Storage.Volumes = []string{"/Volumes/Media"}
	app.Storage.Folders["/Volumes/Media"] = []string{"/Volumes/Media/Day1"}
	p := app.OpenProject("Demo")
	p.AddTimeline("Cut")
	c := connected(t, app)
	ctx := context.Background()

	assert.Equal(t, []string{"/Volumes/Media"}, c.MountedVolumes(ctx).Value)
	assert.Equal(t, []string{"/Volumes/Media/Day1"}, c.SubFolders(ctx, "/Volumes/Media").Value)
	files := c.Files(ctx, "/nowhere")
	require.True(t, files.OK())
	assert.Empty(t, files.Value)

	added := c.AddItemsToMediaPool(ctx, []string{"/Volumes/Media/a.mov", "/Volumes/Media/b.mov"})
	require.True(t, added.OK())
	assert.Len(t, added.Value, 2)
	assert.Equal(t, resolve.StatusRejected, c.AddItemsToMediaPool(ctx, nil).Status)

	info := c.CurrentFolderInfo(ctx)
	require.True(t, info.OK())
	assert.Equal(t, resolve.FolderInfo{Name: "Master", ClipCount: 2}, info.Value)

	root := c.RootFolder(ctx)
	require.True(t, root.OK())
	bin := c.AddSubFolder(ctx, root.Value, "Selects")
	require.True(t, bin.OK())
	subs := c.FolderSubFolders(ctx, root.Value)
	require.True(t, subs.OK())
	require.Len(t, subs.Value, 1)
	assert.Equal(t, "Selects", c.FolderName(ctx, subs.Value[0]).Value)

	require.True(t, c.AppendToTimeline(ctx, added.Value).OK())
	assert.Len(t, p.Current.Tracks[resolve.TrackVideo][0], 2)

	fromClips := c.CreateTimelineFromClips(ctx, "Stringout", added.Value)
	require.True(t, fromClips.OK())
	imported := c.ImportTimelineFromFile(ctx, "/tmp/conform.edl")
	require.True(t, imported.OK())
	assert.Equal(t, "conform", c.TimelineName(ctx, imported.Value).Value)
	assert.Equal(t, resolve.StatusRejected, c.ImportTimelineFromFile(ctx, "/tmp/notes.txt").Status)
	assert.Equal(t, resolve.StatusRejected, c.CreateTimeline(ctx, "Cut").Status)
}

func TestCreateFusionNodeSetsInputs(t *testing.T) {
	app := resolvetest.New()
	c := connected(t, app)
	ctx := context.Background()

	res := c.CreateFusionNode(ctx, "Blur", map[string]any{"XBlurSize": 5.0, "Blend": 0.5}, 3, 4)
	require.True(t, res.OK())
	tool := app.Engine.Comp.Tools[0]
	assert.Equal(t, 3, tool.X)
	assert.Equal(t, 4, tool.Y)
	assert.Equal(t, map[string]any{"XBlurSize": 5.0, "Blend": 0.5}, tool.Inputs)
	assert.Equal(t, "Blur1", c.FusionToolName(ctx, res.Value).Value)

	tool2 := c.CreateFusionNode(ctx, "", nil, 0, 0)
	assert.Equal(t, resolve.StatusRejected, tool2.Status)
}

func TestCreateFusionNodeReportsRejectedInput(t *testing.T) {
	app := resolvetest.New()
	c := connected(t, app)
	app.Recorder().Fail("FusionTool.SetInput", resolvetest.ErrRaised)

	res := c.CreateFusionNode(context.Background(), "Blur", map[string]any{"XBlurSize": 5.0}, 0, 0)
	assert.Equal(t, resolve.StatusFailed, res.Status)
	assert.NotNil(t, res.Value)
}

func TestExecuteLuaForwardsScript(t *testing.T) {
	app := resolvetest.New()
	app.Engine.Answer = 42.0
	c := connected(t, app)

	res := c.ExecuteLua(context.Background(), "return 42")
	require.True(t, res.OK())
	assert.Equal(t, 42.0, res.Value)
	assert.Equal(t, []string{"return 42"}, app.Engine.Scripts)
}

func TestColorAccessors(t *testing.T) {
	app := resolvetest.New()
	tl := app.OpenProject("Demo").AddTimeline("Cut")
	tl.AddVideoItem(1, "ClipA")
	c := connected(t, app)
	ctx := context.Background()

	added := c.AddColorNode(ctx, "")
	require.True(t, added.OK())
	assert.Equal(t, "Corrector 2", c.ColorNodeLabel(ctx, added.Value).Value)
	nodes := c.ColorNodes(ctx)
	require.True(t, nodes.OK())
	assert.Len(t, nodes.Value, 2)
	assert.Equal(t, resolve.StatusRejected, c.AddColorNode(ctx, "Bogus").Status)

	tl.CurrentItem = nil
	assert.Equal(t, resolve.StatusAbsent, c.ColorNodes(ctx).Status)
}

func TestStartRender(t *testing.T) {
	app := resolvetest.New()
	p := app.OpenProject("Demo")
	p.AddTimeline("Cut")
	c := connected(t, app)
	ctx := context.Background()

	require.True(t, c.StartRender(ctx, "YouTube - 1080p", "/renders").OK())
	assert.Equal(t, "YouTube - 1080p", p.LoadedPreset)
	assert.Equal(t, "/renders", p.RenderSettings["TargetDir"])

	p.Progress = 42
	status := c.RenderStatus(ctx)
	require.True(t, status.OK())
	assert.Equal(t, resolve.RenderStatus{InProgress: true, CompletionPercentage: 42}, status.Value)
}

func TestStartRenderWithoutOptions(t *testing.T) {
	app := resolvetest.New()
	app.OpenProject("Demo").AddTimeline("Cut")
	c := connected(t, app)

	require.True(t, c.StartRender(context.Background(), "", "").OK())
	assert.Zero(t, app.Recorder().Called("Project.LoadRenderPreset"))
	assert.Zero(t, app.Recorder().Called("Project.SetRenderSettings"))
}

func TestStartRenderIgnoresRefusedPreset(t *testing.T) {
	app := resolvetest.New()
	p := app.OpenProject("Demo")
	p.AddTimeline("Cut")
	c := connected(t, app)

	res := c.StartRender(context.Background(), "Unknown", "/renders")
	require.True(t, res.OK())
	assert.Empty(t, p.LoadedPreset)
	assert.Equal(t, "/renders", p.RenderSettings["TargetDir"])
	assert.Equal(t, 1, app.Recorder().Called("Project.StartRendering"))
	assert.True(t, p.Rendering)
}

func TestStartRenderAbortsWhenSetupRaises(t *testing.T) {
	for _, method := range []string{"Project.LoadRenderPreset", "Project.SetRenderSettings"} {
		t.Run(method, func(t *testing.T) {
			app := resolvetest.New()
			app.OpenProject("Demo").AddTimeline("Cut")
			c := connected(t, app)
			app.Recorder().Fail(method, resolvetest.ErrRaised)

			res := c.StartRender(context.Background(), "YouTube - 1080p", "/renders")
			assert.Equal(t, resolve.StatusFailed, res.Status)
			assert.Zero(t, app.Recorder().Called("Project.StartRendering"))
		})
	}
}

func TestClipAccessors(t *testing.T) {
	app := resolvetest.New()
	tl := app.OpenProject("Demo").AddTimeline("Cut")
	item := tl.AddVideoItem(1, "ClipA")[0]
	item.Versions["color"] = 3
	c := connected(t, app)
	ctx := context.Background()

	require.True(t, c.SetClipProperty(ctx, item, "ZoomX", 1.5).OK())
	assert.Equal(t, 1.5, item.Properties["ZoomX"])
	require.True(t, c.SetAudioVolume(ctx, item, 0.5).OK())
	assert.Equal(t, 0.5, c.AudioVolume(ctx, item).Value)
	assert.Equal(t, 3, c.VersionCount(ctx, item, "").Value)
	require.True(t, c.SetCurrentVersion(ctx, item, 2, "").OK())
	assert.Equal(t, 2, item.CurrentVersion["color"])
	assert.Equal(t, resolve.StatusRejected, c.SetCurrentVersion(ctx, item, 5, "color").Status)

	clip := app.Manager.Current.Pool.Current.AddClip("A001.mov")
	meta := c.ClipMetadata(ctx, clip)
	require.True(t, meta.OK())
	assert.Equal(t, "A001.mov", meta.Value["Clip Name"])
}

func TestGalleryAccessors(t *testing.T) {
	app := resolvetest.New()
	p := app.OpenProject("Demo")
	tl := p.AddTimeline("Cut")
	items := tl.AddVideoItem(1, "ClipA", "ClipB")
	c := connected(t, app)
	ctx := context.Background()

	saved := c.SaveStill(ctx, "")
	require.True(t, saved.OK())
	require.Len(t, p.Gallery.Albums, 1)
	assert.Equal(t, resolve.DefaultStillAlbum, p.Gallery.Albums[0].Name)
	assert.Equal(t, 1, app.Recorder().Called("Gallery.CreateEmptyAlbum"))

	require.True(t, c.SaveStill(ctx, "").OK())
	assert.Equal(t, 1, app.Recorder().Called("Gallery.CreateEmptyAlbum"))

	albums := c.GalleryAlbums(ctx)
	require.True(t, albums.OK())
	require.Len(t, albums.Value, 1)
	assert.Equal(t, "Stills", c.AlbumName(ctx, albums.Value[0]).Value)
	stills := c.AlbumStills(ctx, albums.Value[0])
	require.True(t, stills.OK())
	require.Len(t, stills.Value, 2)
	assert.Equal(t, "1.1.2", c.StillLabel(ctx, albums.Value[0], stills.Value[1]).Value)

	require.True(t, c.ApplyStill(ctx, stills.Value[0], nil).OK())
	assert.Len(t, items[0].Applied, 1)
	require.True(t, c.ApplyStill(ctx, stills.Value[0], items[1]).OK())
	assert.Len(t, items[1].Applied, 1)
}

func TestPlaybackAccessors(t *testing.T) {
	app := resolvetest.New()
	tl := app.OpenProject("Demo").AddTimeline("Cut")
	c := connected(t, app)
	ctx := context.Background()

	require.True(t, c.Play(ctx).OK())
	assert.True(t, app.Playing)
	require.True(t, c.Stop(ctx).OK())
	assert.False(t, app.Playing)

	require.True(t, c.SetPlayheadPosition(ctx, 48).OK())
	assert.Equal(t, resolvetest.Timecode(48), tl.Timecode)
	assert.Equal(t, "00:00:02:00", c.CurrentTimecode(ctx).Value)
}

func TestProductInfoAndPage(t *testing.T) {
	app := resolvetest.New()
	c := connected(t, app)
	ctx := context.Background()

	assert.Equal(t, "DaVinci Resolve 19.0.0", c.ProductInfo(ctx).Value)
	assert.Equal(t, "edit", c.CurrentPage(ctx).Value)
}

func TestProjectLibraryAccessors(t *testing.T) {
	app := resolvetest.New()
	app.AddProject("Archive")
	p := app.OpenProject("Demo")
	c := connected(t, app)
	ctx := context.Background()

	assert.Equal(t, []string{"Archive", "Demo"}, c.ListProjects(ctx).Value)
	require.True(t, c.ExportProject(ctx, "Archive", "/tmp/archive.drp").OK())
	assert.Equal(t, "Archive", app.Manager.Exported["/tmp/archive.drp"])
	require.True(t, c.ImportProject(ctx, "/tmp/incoming.drp").OK())
	assert.Equal(t, resolve.StatusRejected, c.ImportProject(ctx, "/tmp/incoming.zip").Status)

	require.True(t, c.LoadProject(ctx, "Archive").OK())
	assert.Equal(t, "Archive", c.ProjectName(ctx).Value)
	require.True(t, c.LoadProject(ctx, "Demo").OK())

	require.True(t, c.SaveProject(ctx).OK())
	assert.Equal(t, 1, p.Saved)
	require.True(t, c.SetProjectSetting(ctx, "timelineFrameRate", "25").OK())
	assert.Equal(t, "25", c.ProjectSettings(ctx).Value["timelineFrameRate"])
	assert.Equal(t, resolve.StatusRejected, c.SetProjectSetting(ctx, "nope", "1").Status)
}
