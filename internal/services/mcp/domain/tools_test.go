package domain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"github.com/louisbranch/resolve-mcp/internal/resolve/resolvetest"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func connectedTo(t *testing.T, app *resolvetest.App) *resolve.Connector {
	t.Helper()
	conn := resolve.New(resolve.Config{
		Dialer:  resolvetest.Dialer(app),
		Locator: resolvetest.Locator(resolvetest.LinuxModulePath),
	})
	conn.Connect(context.Background())
	if !conn.IsConnected() {
		t.Fatal("expected connector to attach to the stand-in application")
	}
	app.Recorder().Reset()
	return conn
}

func disconnectedFrom(t *testing.T, app *resolvetest.App) *resolve.Connector {
	t.Helper()
	conn := resolve.New(resolve.Config{
		Dialer:  resolvetest.Dialer(app),
		Locator: resolvetest.Locator(),
	})
	conn.Connect(context.Background())
	if conn.IsConnected() {
		t.Fatal("expected connector without a module path to stay disconnected")
	}
	app.Recorder().Reset()
	return conn
}

// editingApp has a project "Demo" with one timeline holding ClipA and ClipB
// on video track 1.
func editingApp() (*resolvetest.App, *resolvetest.Project, *resolvetest.Timeline) {
	app := resolvetest.New()
	project := app.OpenProject("Demo")
	timeline := project.AddTimeline("Edit 1")
	timeline.AddVideoItem(1, "ClipA", "ClipB")
	return app, project, timeline
}

func callTool[In any](t *testing.T, handler mcp.ToolHandlerFor[In, any], input In) *mcp.CallToolResult {
	t.Helper()
	result, _, err := handler(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result == nil {
		t.Fatal("expected tool result")
	}
	return result
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("content entries = %d, want 1", len(result.Content))
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want *mcp.TextContent", result.Content[0])
	}
	return text.Text
}

func callText[In any](t *testing.T, handler mcp.ToolHandlerFor[In, any], input In) string {
	t.Helper()
	return toolText(t, callTool(t, handler, input))
}

type notifications struct {
	uris []string
}

func (n *notifications) notify(_ context.Context, uri string) {
	n.uris = append(n.uris, uri)
}

func (n *notifications) has(uri string) bool {
	for _, u := range n.uris {
		if u == uri {
			return true
		}
	}
	return false
}

func TestOpenPageHandler(t *testing.T) {
	t.Run("matches page names case-insensitively", func(t *testing.T) {
		app := resolvetest.New()
		conn := connectedTo(t, app)

		got := callText(t, OpenPageHandler(conn, nil), PageInput{PageName: "COLOR"})
		if got != "Opened 'COLOR' page." {
			t.Fatalf("text = %q", got)
		}
		if app.Page != "color" {
			t.Fatalf("page = %q, want color", app.Page)
		}
	})

	t.Run("rejects unknown page without calling the application", func(t *testing.T) {
		app := resolvetest.New()
		conn := connectedTo(t, app)

		got := callText(t, OpenPageHandler(conn, nil), PageInput{PageName: "nonexistent"})
		if got != InvalidPageText {
			t.Fatalf("text = %q, want %q", got, InvalidPageText)
		}
		if calls := app.Recorder().Calls(); len(calls) != 0 {
			t.Fatalf("expected no application calls, got %v", calls)
		}
		if app.Page != "edit" {
			t.Fatalf("page = %q, want unchanged edit", app.Page)
		}
	})

	t.Run("rejects unknown page before the connection check", func(t *testing.T) {
		conn := disconnectedFrom(t, resolvetest.New())

		got := callText(t, OpenPageHandler(conn, nil), PageInput{PageName: "timeline"})
		if got != InvalidPageText {
			t.Fatalf("text = %q, want %q", got, InvalidPageText)
		}
	})

	t.Run("reports the rejection", func(t *testing.T) {
		app := resolvetest.New()
		conn := connectedTo(t, app)
		app.Recorder().Fail("Application.OpenPage", errors.New("page locked"))

		got := callText(t, OpenPageHandler(conn, nil), PageInput{PageName: "deliver"})
		if got != "Failed to open 'deliver'." {
			t.Fatalf("text = %q", got)
		}
	})
}

func TestGetCurrentPageHandler(t *testing.T) {
	app := resolvetest.New()
	app.Page = "fairlight"
	conn := connectedTo(t, app)

	got := callText(t, GetCurrentPageHandler(conn, nil), EmptyInput{})
	if got != "Current page: fairlight" {
		t.Fatalf("text = %q", got)
	}
}

func TestSetAudioVolumeHandler(t *testing.T) {
	t.Run("forwards the volume to the named clip", func(t *testing.T) {
		app, _, timeline := editingApp()
		conn := connectedTo(t, app)

		got := callText(t, SetAudioVolumeHandler(conn, nil), ClipVolumeInput{ClipName: "ClipA", Volume: 0.5})
		if got != "Set volume of 'ClipA' to 0.5." {
			t.Fatalf("text = %q", got)
		}
		items := timeline.Tracks[resolve.TrackVideo][0]
		if items[0].Volume != 0.5 {
			t.Fatalf("ClipA volume = %v, want 0.5", items[0].Volume)
		}
		if items[1].Volume != 1 {
			t.Fatalf("ClipB volume = %v, want untouched 1", items[1].Volume)
		}
		if n := app.Recorder().Called("TimelineItem.SetAudioVolume"); n != 1 {
			t.Fatalf("SetAudioVolume calls = %d, want 1", n)
		}
	})

	t.Run("reports an unknown clip without forwarding", func(t *testing.T) {
		app, _, _ := editingApp()
		conn := connectedTo(t, app)

		got := callText(t, SetAudioVolumeHandler(conn, nil), ClipVolumeInput{ClipName: "ClipZ", Volume: 0.5})
		if got != "Clip 'ClipZ' not found." {
			t.Fatalf("text = %q", got)
		}
		if n := app.Recorder().Called("TimelineItem.SetAudioVolume"); n != 0 {
			t.Fatalf("SetAudioVolume calls = %d, want 0", n)
		}
	})

	t.Run("finds clips on audio tracks", func(t *testing.T) {
		app, _, timeline := editingApp()
		timeline.AddAudioItem(1, "Dialog")
		conn := connectedTo(t, app)

		got := callText(t, SetAudioVolumeHandler(conn, nil), ClipVolumeInput{ClipName: "Dialog", Volume: 0.25})
		if got != "Set volume of 'Dialog' to 0.25." {
			t.Fatalf("text = %q", got)
		}
	})

	t.Run("reports a missing timeline", func(t *testing.T) {
		app := resolvetest.New()
		app.OpenProject("Demo")
		conn := connectedTo(t, app)

		got := callText(t, SetAudioVolumeHandler(conn, nil), ClipVolumeInput{ClipName: "ClipA", Volume: 0.5})
		if got != NoTimelineText {
			t.Fatalf("text = %q, want %q", got, NoTimelineText)
		}
	})
}

func TestGetAudioVolumeHandler(t *testing.T) {
	app, _, timeline := editingApp()
	timeline.Tracks[resolve.TrackVideo][0][1].Volume = 0.75
	conn := connectedTo(t, app)

	got := callText(t, GetAudioVolumeHandler(conn, nil), ClipInput{ClipName: "ClipB"})
	if got != "Volume of 'ClipB': 0.75" {
		t.Fatalf("text = %q", got)
	}
}

func TestCreateProjectHandler(t *testing.T) {
	t.Run("disconnected", func(t *testing.T) {
		app := resolvetest.New()
		conn := disconnectedFrom(t, app)

		got := callText(t, CreateProjectHandler(conn, nil), NameInput{Name: "Demo"})
		if got != NotConnectedText {
			t.Fatalf("text = %q, want %q", got, NotConnectedText)
		}
		if calls := app.Recorder().Calls(); len(calls) != 0 {
			t.Fatalf("expected no application calls, got %v", calls)
		}
		if len(app.Manager.Projects) != 0 {
			t.Fatalf("expected no projects, got %d", len(app.Manager.Projects))
		}
	})

	t.Run("created project becomes current", func(t *testing.T) {
		app := resolvetest.New()
		app.OpenProject("Old")
		conn := connectedTo(t, app)
		var sent notifications

		got := callText(t, CreateProjectHandler(conn, sent.notify), NameInput{Name: "Demo"})
		if got != "Project 'Demo' created." {
			t.Fatalf("text = %q", got)
		}

		project := readResource(t, CurrentProjectResourceHandler(conn), CurrentProjectURI)
		if !strings.HasPrefix(project, "Name: Demo\n") {
			t.Fatalf("project resource = %q, want Demo", project)
		}
		for _, uri := range []string{SystemStatusURI, CurrentProjectURI, CurrentTimelineURI} {
			if !sent.has(uri) {
				t.Fatalf("expected update for %s, got %v", uri, sent.uris)
			}
		}
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		app := resolvetest.New()
		app.AddProject("Demo")
		conn := connectedTo(t, app)
		var sent notifications

		got := callText(t, CreateProjectHandler(conn, sent.notify), NameInput{Name: "Demo"})
		if got != "Failed to create 'Demo'." {
			t.Fatalf("text = %q", got)
		}
		if len(sent.uris) != 0 {
			t.Fatalf("expected no updates, got %v", sent.uris)
		}
	})
}

func TestLoadProjectHandler(t *testing.T) {
	app := resolvetest.New()
	app.OpenProject("Old")
	app.AddProject("Feature")
	conn := connectedTo(t, app)

	if got := callText(t, LoadProjectHandler(conn, nil), NameInput{Name: "Feature"}); got != "Project 'Feature' loaded." {
		t.Fatalf("text = %q", got)
	}
	if got := callText(t, LoadProjectHandler(conn, nil), NameInput{Name: "Missing"}); got != "Failed to load 'Missing'." {
		t.Fatalf("text = %q", got)
	}
}

func TestToolResultCarriesInvocationID(t *testing.T) {
	conn := connectedTo(t, resolvetest.New())

	result := callTool(t, GetCurrentPageHandler(conn, nil), EmptyInput{})
	invocationID, ok := result.Meta[InvocationIDKey].(string)
	if !ok || invocationID == "" {
		t.Fatalf("expected invocation id in meta, got %v", result.Meta)
	}

	other := callTool(t, GetCurrentPageHandler(conn, nil), EmptyInput{})
	if other.Meta[InvocationIDKey] == invocationID {
		t.Fatal("expected a fresh invocation id per call")
	}
}

func TestAppendToTimelineHandler(t *testing.T) {
	t.Run("appends pool clips", func(t *testing.T) {
		app, project, _ := editingApp()
		project.Pool.Current.AddClip("Shot1")
		project.Pool.Current.AddClip("Shot2")
		conn := connectedTo(t, app)
		var sent notifications

		got := callText(t, AppendToTimelineHandler(conn, sent.notify), ClipNamesInput{ClipNames: []string{"Shot1", "Shot2"}})
		if got != "Appended 2 clips to the timeline." {
			t.Fatalf("text = %q", got)
		}
		if !sent.has(TimelineItemsURI) {
			t.Fatalf("expected timeline items update, got %v", sent.uris)
		}
	})

	t.Run("stops at the first unknown clip", func(t *testing.T) {
		app, project, _ := editingApp()
		project.Pool.Current.AddClip("Shot1")
		conn := connectedTo(t, app)

		got := callText(t, AppendToTimelineHandler(conn, nil), ClipNamesInput{ClipNames: []string{"Shot1", "Shot9"}})
		if got != "Clip 'Shot9' not found." {
			t.Fatalf("text = %q", got)
		}
		if n := app.Recorder().Called("MediaPool.AppendToTimeline"); n != 0 {
			t.Fatalf("AppendToTimeline calls = %d, want 0", n)
		}
	})
}

func TestTrackToolsValidateTrackType(t *testing.T) {
	app, _, _ := editingApp()
	conn := connectedTo(t, app)

	got := callText(t, AddTrackHandler(conn, nil), TrackTypeInput{TrackType: "midi"})
	if got != InvalidTrackTypeText {
		t.Fatalf("text = %q, want %q", got, InvalidTrackTypeText)
	}
	if calls := app.Recorder().Calls(); len(calls) != 0 {
		t.Fatalf("expected no application calls, got %v", calls)
	}
}

func TestSetTrackVolumeHandler(t *testing.T) {
	app, _, timeline := editingApp()
	conn := connectedTo(t, app)

	callText(t, SetTrackVolumeHandler(conn, nil), TrackVolumeInput{TrackIndex: 1, Volume: -6})
	if got := timeline.Volumes[resolve.TrackAudio+"1"]; got != -6 {
		t.Fatalf("track volume = %v, want -6", got)
	}
}

func TestExecuteLuaHandler(t *testing.T) {
	t.Run("rejects scripts that do not parse", func(t *testing.T) {
		app := resolvetest.New()
		conn := connectedTo(t, app)

		got := callText(t, ExecuteLuaHandler(conn, nil, CheckLuaSyntax), ScriptInput{Script: "local = 1"})
		if !strings.HasPrefix(got, "Invalid Lua script: ") {
			t.Fatalf("text = %q", got)
		}
		if n := app.Recorder().Called("Fusion.Execute"); n != 0 {
			t.Fatalf("Execute calls = %d, want 0", n)
		}
	})

	t.Run("runs valid scripts", func(t *testing.T) {
		app := resolvetest.New()
		conn := connectedTo(t, app)

		script := `comp:AddTool("Blur", 0, 0)`
		got := callText(t, ExecuteLuaHandler(conn, nil, CheckLuaSyntax), ScriptInput{Script: script})
		if got != "Script executed." {
			t.Fatalf("text = %q", got)
		}
		if len(app.Engine.Scripts) != 1 || app.Engine.Scripts[0] != script {
			t.Fatalf("scripts = %v", app.Engine.Scripts)
		}
	})

	t.Run("renders the script answer", func(t *testing.T) {
		app := resolvetest.New()
		app.Engine.Answer = map[string]any{"frames": 48}
		conn := connectedTo(t, app)

		got := callText(t, ExecuteLuaHandler(conn, nil, nil), ScriptInput{Script: "return 1 +"})
		if got != `Script returned: {"frames":48}` {
			t.Fatalf("text = %q", got)
		}
	})
}

func TestApplyStillHandler(t *testing.T) {
	app, project, timeline := editingApp()
	project.Gallery.AddAlbum("Looks").AddStill("1.1.1")
	conn := connectedTo(t, app)

	got := callText(t, ApplyStillHandler(conn, nil), ApplyStillInput{AlbumName: "Looks", StillLabel: "1.1.1", ClipName: "ClipB"})
	if got != "Applied still '1.1.1'." {
		t.Fatalf("text = %q", got)
	}
	if applied := timeline.Tracks[resolve.TrackVideo][0][1].Applied; len(applied) != 1 {
		t.Fatalf("applied stills on ClipB = %d, want 1", len(applied))
	}

	got = callText(t, ApplyStillHandler(conn, nil), ApplyStillInput{AlbumName: "Looks", StillLabel: "9.9.9", ClipName: "ClipB"})
	if got != "Still '9.9.9' not found." {
		t.Fatalf("text = %q", got)
	}
}

func TestRenderHandlers(t *testing.T) {
	app, project, _ := editingApp()
	conn := connectedTo(t, app)

	if got := callText(t, StartRenderHandler(conn, nil), RenderInput{PresetName: "H.264 Master", RenderPath: "/renders"}); got != "Render started." {
		t.Fatalf("text = %q", got)
	}
	if project.LoadedPreset != "H.264 Master" || project.RenderSettings["TargetDir"] != "/renders" {
		t.Fatalf("render setup = %q %v", project.LoadedPreset, project.RenderSettings)
	}

	project.Progress = 42
	if got := callText(t, GetRenderStatusHandler(conn, nil), EmptyInput{}); got != "Rendering: Yes\nProgress: 42%" {
		t.Fatalf("text = %q", got)
	}

	project.LoadedPreset = ""
	if got := callText(t, StartRenderHandler(conn, nil), RenderInput{PresetName: "Unknown"}); got != "Render started." {
		t.Fatalf("text = %q", got)
	}
	if project.LoadedPreset != "" {
		t.Fatalf("loaded preset = %q, want none", project.LoadedPreset)
	}

	project.Current = nil
	if got := callText(t, StartRenderHandler(conn, nil), RenderInput{}); got != "Failed to start render." {
		t.Fatalf("text = %q", got)
	}
}

func TestPlayheadHandlers(t *testing.T) {
	app, _, _ := editingApp()
	conn := connectedTo(t, app)

	if got := callText(t, SetPlayheadPositionHandler(conn, nil), FrameInput{Frame: 86424}); got != "Playhead moved to frame 86424." {
		t.Fatalf("text = %q", got)
	}
	if got := callText(t, GetCurrentTimecodeHandler(conn, nil), EmptyInput{}); got != "Current timecode: 01:00:01:00" {
		t.Fatalf("text = %q", got)
	}
}

func TestPlaybackHandlers(t *testing.T) {
	app := resolvetest.New()
	conn := connectedTo(t, app)

	callText(t, PlayHandler(conn, nil), EmptyInput{})
	if !app.Playing {
		t.Fatal("expected playback to start")
	}
	callText(t, StopHandler(conn, nil), EmptyInput{})
	if app.Playing {
		t.Fatal("expected playback to stop")
	}
}

func TestHandlersWithoutProject(t *testing.T) {
	conn := connectedTo(t, resolvetest.New())

	tests := []struct {
		name string
		call func() string
		want string
	}{
		{"save_project", func() string { return callText(t, SaveProjectHandler(conn, nil), EmptyInput{}) }, NoProjectText},
		{"create_timeline", func() string { return callText(t, CreateTimelineHandler(conn, nil), NameInput{Name: "T"}) }, NoProjectText},
		{"create_bin", func() string { return callText(t, CreateBinHandler(conn, nil), NameInput{Name: "B"}) }, NoProjectText},
		{"get_render_status", func() string { return callText(t, GetRenderStatusHandler(conn, nil), EmptyInput{}) }, NoProjectText},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.call(); got != tc.want {
				t.Fatalf("text = %q, want %q", got, tc.want)
			}
		})
	}
}
