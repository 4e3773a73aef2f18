package domain

// EmptyInput is the input of tools that take no arguments.
type EmptyInput struct{}

// NameInput names a project, timeline or bin.
type NameInput struct {
	Name string `json:"name" jsonschema:"name"`
}

// FilePathInput points at a single file.
type FilePathInput struct {
	FilePath string `json:"file_path" jsonschema:"absolute path of the file"`
}

// ExportProjectInput represents the MCP tool input for project export.
type ExportProjectInput struct {
	Name     string `json:"name" jsonschema:"project name"`
	FilePath string `json:"file_path" jsonschema:"destination .drp path"`
}

// ProjectSettingInput represents the MCP tool input for a project setting change.
type ProjectSettingInput struct {
	Key   string `json:"key" jsonschema:"setting name, e.g. timelineFrameRate"`
	Value string `json:"value" jsonschema:"new setting value"`
}

// ClipNamesInput lists media pool clips by name.
type ClipNamesInput struct {
	ClipNames []string `json:"clip_names" jsonschema:"clip names in the current media pool folder"`
}

// TimelineFromClipsInput represents the MCP tool input for building a timeline from clips.
type TimelineFromClipsInput struct {
	Name      string   `json:"name" jsonschema:"timeline name"`
	ClipNames []string `json:"clip_names" jsonschema:"clip names in the current media pool folder"`
}

// TrackTypeInput selects a track type.
type TrackTypeInput struct {
	TrackType string `json:"track_type" jsonschema:"track type (video, audio, subtitle)"`
}

// TrackNameInput represents the MCP tool input for renaming a track.
type TrackNameInput struct {
	TrackType  string `json:"track_type" jsonschema:"track type (video, audio, subtitle)"`
	TrackIndex int    `json:"track_index" jsonschema:"1-based track index"`
	Name       string `json:"name" jsonschema:"new track name"`
}

// EnableTrackInput represents the MCP tool input for enabling or disabling a track.
type EnableTrackInput struct {
	TrackType  string `json:"track_type" jsonschema:"track type (video, audio, subtitle)"`
	TrackIndex int    `json:"track_index" jsonschema:"1-based track index"`
	Enabled    bool   `json:"enabled" jsonschema:"whether the track is enabled"`
}

// TrackVolumeInput represents the MCP tool input for an audio track volume change.
type TrackVolumeInput struct {
	TrackIndex int     `json:"track_index" jsonschema:"1-based audio track index"`
	Volume     float64 `json:"volume" jsonschema:"track volume"`
}

// MarkerInput represents the MCP tool input for adding a timeline marker.
type MarkerInput struct {
	Frame int    `json:"frame" jsonschema:"frame offset of the marker"`
	Color string `json:"color,omitempty" jsonschema:"marker color (defaults to Blue)"`
	Name  string `json:"name,omitempty" jsonschema:"marker name"`
	Note  string `json:"note,omitempty" jsonschema:"marker note"`
}

// FilePathsInput lists files to import.
type FilePathsInput struct {
	FilePaths []string `json:"file_paths" jsonschema:"absolute paths of the media files"`
}

// PathInput is a media storage path.
type PathInput struct {
	Path string `json:"path,omitempty" jsonschema:"folder to list; empty lists mounted volumes"`
}

// PageInput names an application page.
type PageInput struct {
	PageName string `json:"page_name" jsonschema:"page (media, edit, fusion, color, fairlight, deliver)"`
}

// FusionNodeInput represents the MCP tool input for adding a Fusion node.
type FusionNodeInput struct {
	NodeType string         `json:"node_type" jsonschema:"Fusion tool id, e.g. Blur or Merge"`
	Inputs   map[string]any `json:"inputs,omitempty" jsonschema:"input values to set on the new node"`
	X        int            `json:"x,omitempty" jsonschema:"flow x position"`
	Y        int            `json:"y,omitempty" jsonschema:"flow y position"`
}

// ScriptInput carries a Lua script.
type ScriptInput struct {
	Script string `json:"script" jsonschema:"Lua source to run in Fusion"`
}

// ColorNodeInput represents the MCP tool input for adding a color node.
type ColorNodeInput struct {
	NodeType string `json:"node_type,omitempty" jsonschema:"node type (defaults to Corrector)"`
}

// ClipInput names a clip.
type ClipInput struct {
	ClipName string `json:"clip_name" jsonschema:"clip name"`
}

// ClipPropertyInput represents the MCP tool input for a clip property change.
type ClipPropertyInput struct {
	ClipName string `json:"clip_name" jsonschema:"timeline clip name"`
	Property string `json:"property" jsonschema:"property name, e.g. ZoomX or Opacity"`
	Value    any    `json:"value" jsonschema:"new property value"`
}

// ClipVolumeInput represents the MCP tool input for a clip volume change.
type ClipVolumeInput struct {
	ClipName string  `json:"clip_name" jsonschema:"timeline clip name"`
	Volume   float64 `json:"volume" jsonschema:"audio volume"`
}

// VersionTypeInput represents the MCP tool input for counting clip versions.
type VersionTypeInput struct {
	ClipName    string `json:"clip_name" jsonschema:"timeline clip name"`
	VersionType string `json:"version_type,omitempty" jsonschema:"version type (color or fusion, defaults to color)"`
}

// VersionInput represents the MCP tool input for switching clip versions.
type VersionInput struct {
	ClipName     string `json:"clip_name" jsonschema:"timeline clip name"`
	VersionIndex int    `json:"version_index" jsonschema:"version index"`
	VersionType  string `json:"version_type,omitempty" jsonschema:"version type (color or fusion, defaults to color)"`
}

// AlbumInput names a gallery album.
type AlbumInput struct {
	AlbumName string `json:"album_name,omitempty" jsonschema:"album name (defaults to Stills)"`
}

// ApplyStillInput represents the MCP tool input for applying a still's grade.
type ApplyStillInput struct {
	AlbumName  string `json:"album_name,omitempty" jsonschema:"album name (defaults to Stills)"`
	StillLabel string `json:"still_label" jsonschema:"label of the still"`
	ClipName   string `json:"clip_name,omitempty" jsonschema:"timeline clip to grade (defaults to the current clip)"`
}

// RenderInput represents the MCP tool input for starting a render.
type RenderInput struct {
	PresetName string `json:"preset_name,omitempty" jsonschema:"render preset to load"`
	RenderPath string `json:"render_path,omitempty" jsonschema:"target directory"`
}

// FrameInput is a timeline frame.
type FrameInput struct {
	Frame int `json:"frame" jsonschema:"timeline frame number"`
}
