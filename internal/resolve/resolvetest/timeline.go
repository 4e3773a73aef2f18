package resolvetest

import (
	"context"
	"fmt"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
)

// FrameRate is the rate used to turn frames into timecode.
const FrameRate = 24

// Marker is a marker placed on a fake timeline.
type Marker struct {
	Frame    int
	Color    string
	Name     string
	Note     string
	Duration int
}

// Timeline is a fake timeline with video, audio and subtitle tracks.
type Timeline struct {
	rec *Recorder

	Name       string
	StartFrame int
	EndFrame   int
	Tracks     map[string][][]*TimelineItem
	TrackNames map[string]string
	Disabled   map[string]bool
	Volumes    map[string]float64
	Markers    []Marker
	Timecode   string
	// CurrentItem is the video item under the playhead.
	CurrentItem *TimelineItem
}

func newTimeline(rec *Recorder, name string) *Timeline {
	return &Timeline{
		rec:        rec,
		Name:       name,
		StartFrame: 86400,
		EndFrame:   86400 + 239,
		Tracks: map[string][][]*TimelineItem{
			resolve.TrackVideo: {nil},
			resolve.TrackAudio: {nil},
		},
		TrackNames: map[string]string{},
		Disabled:   map[string]bool{},
		Volumes:    map[string]float64{},
		Timecode:   "01:00:00:00",
	}
}

func trackKey(trackType string, index int) string {
	return fmt.Sprintf("%s%d", trackType, index)
}

func (t *Timeline) addItem(trackType string, track int, names ...string) []*TimelineItem {
	for len(t.Tracks[trackType]) < track {
		t.Tracks[trackType] = append(t.Tracks[trackType], nil)
	}
	var added []*TimelineItem
	for _, name := range names {
		item := newTimelineItem(t.rec, name)
		t.Tracks[trackType][track-1] = append(t.Tracks[trackType][track-1], item)
		added = append(added, item)
	}
	if t.CurrentItem == nil && trackType == resolve.TrackVideo && len(added) > 0 {
		t.CurrentItem = added[0]
	}
	return added
}

// AddVideoItem places named items on a 1-based video track, creating the
// track when needed. The first video item becomes the current item.
func (t *Timeline) AddVideoItem(track int, names ...string) []*TimelineItem {
	return t.addItem(resolve.TrackVideo, track, names...)
}

// AddAudioItem places named items on a 1-based audio track.
func (t *Timeline) AddAudioItem(track int, names ...string) []*TimelineItem {
	return t.addItem(resolve.TrackAudio, track, names...)
}

func (t *Timeline) validTrack(trackType string, index int) bool {
	return index >= 1 && index <= len(t.Tracks[trackType])
}

func (t *Timeline) GetName(context.Context) (string, error) {
	return t.Name, t.rec.record("Timeline.GetName")
}

func (t *Timeline) GetStartFrame(context.Context) (int, error) {
	return t.StartFrame, t.rec.record("Timeline.GetStartFrame")
}

func (t *Timeline) GetEndFrame(context.Context) (int, error) {
	return t.EndFrame, t.rec.record("Timeline.GetEndFrame")
}

func (t *Timeline) GetTrackCount(_ context.Context, trackType string) (int, error) {
	return len(t.Tracks[trackType]), t.rec.record("Timeline.GetTrackCount")
}

func (t *Timeline) GetItemListInTrack(_ context.Context, trackType string, index int) ([]resolve.TimelineItem, error) {
	if err := t.rec.record("Timeline.GetItemListInTrack"); err != nil {
		return nil, err
	}
	if !t.validTrack(trackType, index) {
		return nil, nil
	}
	items := make([]resolve.TimelineItem, 0, len(t.Tracks[trackType][index-1]))
	for _, item := range t.Tracks[trackType][index-1] {
		items = append(items, item)
	}
	return items, nil
}

func (t *Timeline) GetCurrentVideoItem(context.Context) (resolve.TimelineItem, error) {
	if err := t.rec.record("Timeline.GetCurrentVideoItem"); err != nil {
		return nil, err
	}
	if t.CurrentItem == nil {
		return nil, nil
	}
	return t.CurrentItem, nil
}

func (t *Timeline) AddTrack(_ context.Context, trackType string) (bool, error) {
	if err := t.rec.record("Timeline.AddTrack"); err != nil {
		return false, err
	}
	switch trackType {
	case resolve.TrackVideo, resolve.TrackAudio, resolve.TrackSubtitle:
	default:
		return false, nil
	}
	t.Tracks[trackType] = append(t.Tracks[trackType], nil)
	return true, nil
}

func (t *Timeline) SetTrackName(_ context.Context, trackType string, index int, name string) (bool, error) {
	if err := t.rec.record("Timeline.SetTrackName"); err != nil {
		return false, err
	}
	if !t.validTrack(trackType, index) {
		return false, nil
	}
	t.TrackNames[trackKey(trackType, index)] = name
	return true, nil
}

func (t *Timeline) SetTrackEnable(_ context.Context, trackType string, index int, enabled bool) (bool, error) {
	if err := t.rec.record("Timeline.SetTrackEnable"); err != nil {
		return false, err
	}
	if !t.validTrack(trackType, index) {
		return false, nil
	}
	t.Disabled[trackKey(trackType, index)] = !enabled
	return true, nil
}

func (t *Timeline) SetTrackVolume(_ context.Context, trackType string, index int, volume float64) (bool, error) {
	if err := t.rec.record("Timeline.SetTrackVolume"); err != nil {
		return false, err
	}
	if !t.validTrack(trackType, index) {
		return false, nil
	}
	t.Volumes[trackKey(trackType, index)] = volume
	return true, nil
}

// AddMarker refuses a second marker on the same frame.
func (t *Timeline) AddMarker(_ context.Context, frame int, color, name, note string, duration int) (bool, error) {
	if err := t.rec.record("Timeline.AddMarker"); err != nil {
		return false, err
	}
	for _, m := range t.Markers {
		if m.Frame == frame {
			return false, nil
		}
	}
	t.Markers = append(t.Markers, Marker{Frame: frame, Color: color, Name: name, Note: note, Duration: duration})
	return true, nil
}

func (t *Timeline) GetCurrentTimecode(context.Context) (string, error) {
	return t.Timecode, t.rec.record("Timeline.GetCurrentTimecode")
}

func (t *Timeline) SetCurrentTimecode(_ context.Context, timecode string) (bool, error) {
	if err := t.rec.record("Timeline.SetCurrentTimecode"); err != nil {
		return false, err
	}
	t.Timecode = timecode
	return true, nil
}

func (t *Timeline) GetTimecodeFromFrame(_ context.Context, frame int) (string, error) {
	if err := t.rec.record("Timeline.GetTimecodeFromFrame"); err != nil {
		return "", err
	}
	return Timecode(frame), nil
}

// Timecode renders an absolute frame number at FrameRate.
func Timecode(frame int) string {
	ff := frame % FrameRate
	seconds := frame / FrameRate
	return fmt.Sprintf("%02d:%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60, ff)
}

// TimelineItem is a fake clip on a track.
type TimelineItem struct {
	rec *Recorder

	Name           string
	Properties     map[string]any
	Volume         float64
	Versions       map[string]int
	CurrentVersion map[string]int
	Graph          *NodeGraph
	Applied        []*Still
}

func newTimelineItem(rec *Recorder, name string) *TimelineItem {
	return &TimelineItem{
		rec:            rec,
		Name:           name,
		Properties:     map[string]any{},
		Volume:         1,
		Versions:       map[string]int{"color": 1, "fusion": 0},
		CurrentVersion: map[string]int{},
		Graph:          &NodeGraph{rec: rec, Nodes: []*ColorNode{{rec: rec, Label: "", Type: "Corrector"}}},
	}
}

func (i *TimelineItem) GetName(context.Context) (string, error) {
	return i.Name, i.rec.record("TimelineItem.GetName")
}

func (i *TimelineItem) SetProperty(_ context.Context, key string, value any) (bool, error) {
	if err := i.rec.record("TimelineItem.SetProperty"); err != nil {
		return false, err
	}
	if key == "" {
		return false, nil
	}
	i.Properties[key] = value
	return true, nil
}

func (i *TimelineItem) GetAudioVolume(context.Context) (float64, error) {
	return i.Volume, i.rec.record("TimelineItem.GetAudioVolume")
}

func (i *TimelineItem) SetAudioVolume(_ context.Context, volume float64) (bool, error) {
	if err := i.rec.record("TimelineItem.SetAudioVolume"); err != nil {
		return false, err
	}
	i.Volume = volume
	return true, nil
}

func (i *TimelineItem) GetVersionCount(_ context.Context, versionType string) (int, error) {
	return i.Versions[versionType], i.rec.record("TimelineItem.GetVersionCount")
}

func (i *TimelineItem) SetCurrentVersion(_ context.Context, index int, versionType string) (bool, error) {
	if err := i.rec.record("TimelineItem.SetCurrentVersion"); err != nil {
		return false, err
	}
	if index < 0 || index >= i.Versions[versionType] {
		return false, nil
	}
	i.CurrentVersion[versionType] = index
	return true, nil
}

func (i *TimelineItem) GetNodeGraph(context.Context) (resolve.NodeGraph, error) {
	if err := i.rec.record("TimelineItem.GetNodeGraph"); err != nil {
		return nil, err
	}
	if i.Graph == nil {
		return nil, nil
	}
	return i.Graph, nil
}

func (i *TimelineItem) SaveAsStill(_ context.Context, album resolve.GalleryAlbum) (resolve.GalleryStill, error) {
	if err := i.rec.record("TimelineItem.SaveAsStill"); err != nil {
		return nil, err
	}
	a, isFake := album.(*GalleryAlbum)
	if !isFake {
		return nil, nil
	}
	return a.AddStill(fmt.Sprintf("1.1.%d", len(a.Stills)+1)), nil
}

func (i *TimelineItem) ApplyGradeFromStill(_ context.Context, still resolve.GalleryStill) (bool, error) {
	if err := i.rec.record("TimelineItem.ApplyGradeFromStill"); err != nil {
		return false, err
	}
	s, isFake := still.(*Still)
	if !isFake {
		return false, nil
	}
	i.Applied = append(i.Applied, s)
	return true, nil
}

// NodeGraph is a fake color grade.
type NodeGraph struct {
	rec *Recorder

	Nodes []*ColorNode
}

func (g *NodeGraph) GetNodes(context.Context) ([]resolve.ColorNode, error) {
	if err := g.rec.record("NodeGraph.GetNodes"); err != nil {
		return nil, err
	}
	nodes := make([]resolve.ColorNode, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (g *NodeGraph) AddNode(_ context.Context, nodeType string) (resolve.ColorNode, error) {
	if err := g.rec.record("NodeGraph.AddNode"); err != nil {
		return nil, err
	}
	switch nodeType {
	case "Corrector", "Layer", "Parallel", "Outside":
	default:
		return nil, nil
	}
	node := &ColorNode{rec: g.rec, Type: nodeType, Label: fmt.Sprintf("%s %d", nodeType, len(g.Nodes)+1)}
	g.Nodes = append(g.Nodes, node)
	return node, nil
}

// ColorNode is a fake grade node.
type ColorNode struct {
	rec *Recorder

	Label string
	Type  string
}

func (n *ColorNode) GetLabel(context.Context) (string, error) {
	return n.Label, n.rec.record("ColorNode.GetLabel")
}

// Gallery is a fake still gallery.
type Gallery struct {
	rec *Recorder

	Albums []*GalleryAlbum
}

// AddAlbum adds an empty album.
func (g *Gallery) AddAlbum(name string) *GalleryAlbum {
	album := &GalleryAlbum{rec: g.rec, Name: name}
	g.Albums = append(g.Albums, album)
	return album
}

func (g *Gallery) GetGalleryAlbumList(context.Context) ([]resolve.GalleryAlbum, error) {
	if err := g.rec.record("Gallery.GetGalleryAlbumList"); err != nil {
		return nil, err
	}
	albums := make([]resolve.GalleryAlbum, 0, len(g.Albums))
	for _, a := range g.Albums {
		albums = append(albums, a)
	}
	return albums, nil
}

func (g *Gallery) GetAlbum(_ context.Context, name string) (resolve.GalleryAlbum, error) {
	if err := g.rec.record("Gallery.GetAlbum"); err != nil {
		return nil, err
	}
	for _, a := range g.Albums {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, nil
}

func (g *Gallery) CreateEmptyAlbum(_ context.Context, name string) (resolve.GalleryAlbum, error) {
	if err := g.rec.record("Gallery.CreateEmptyAlbum"); err != nil {
		return nil, err
	}
	return g.AddAlbum(name), nil
}

func (g *Gallery) GetAlbumName(_ context.Context, album resolve.GalleryAlbum) (string, error) {
	if err := g.rec.record("Gallery.GetAlbumName"); err != nil {
		return "", err
	}
	if a, isFake := album.(*GalleryAlbum); isFake {
		return a.Name, nil
	}
	return "", nil
}

// GalleryAlbum is a fake still album.
type GalleryAlbum struct {
	rec *Recorder

	Name   string
	Stills []*Still
}

// AddStill adds a still with label.
func (a *GalleryAlbum) AddStill(label string) *Still {
	s := &Still{Label: label}
	a.Stills = append(a.Stills, s)
	return s
}

func (a *GalleryAlbum) GetStills(context.Context) ([]resolve.GalleryStill, error) {
	if err := a.rec.record("GalleryAlbum.GetStills"); err != nil {
		return nil, err
	}
	stills := make([]resolve.GalleryStill, 0, len(a.Stills))
	for _, s := range a.Stills {
		stills = append(stills, s)
	}
	return stills, nil
}

func (a *GalleryAlbum) GetLabel(_ context.Context, still resolve.GalleryStill) (string, error) {
	if err := a.rec.record("GalleryAlbum.GetLabel"); err != nil {
		return "", err
	}
	if s, isFake := still.(*Still); isFake {
		return s.Label, nil
	}
	return "", nil
}

// Still is a fake gallery still.
type Still struct {
	Label string
}
