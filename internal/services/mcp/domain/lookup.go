package domain

import (
	"context"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
	"golang.org/x/text/cases"
)

// fold normalises a user-typed keyword for comparison.
func fold(s string) string {
	return cases.Fold().String(s)
}

// findTimelineItem scans video then audio tracks of the current timeline
// for an item called name. The second return is the sentence to show when
// there is no match.
func findTimelineItem(ctx context.Context, conn *resolve.Connector, name string) (resolve.TimelineItem, string) {
	items := conn.AllTimelineItems(ctx)
	if !items.OK() {
		return nil, reply(items, nil, "Failed to read timeline items.")
	}
	for _, item := range items.Value {
		if itemName := conn.ItemName(ctx, item); itemName.OK() && itemName.Value == name {
			return item, ""
		}
	}
	return nil, notFound("Clip", name)
}

// findMediaPoolClip scans the current media pool folder for a clip called
// name.
func findMediaPoolClip(ctx context.Context, conn *resolve.Connector, name string) (resolve.MediaPoolItem, string) {
	clips := conn.CurrentFolderClips(ctx)
	if !clips.OK() {
		return nil, reply(clips, nil, "Failed to read media pool clips.")
	}
	for _, clip := range clips.Value {
		if clipName := conn.ClipName(ctx, clip); clipName.OK() && clipName.Value == name {
			return clip, ""
		}
	}
	return nil, notFound("Clip", name)
}

// findMediaPoolClips resolves every name, stopping at the first miss.
func findMediaPoolClips(ctx context.Context, conn *resolve.Connector, names []string) ([]resolve.MediaPoolItem, string) {
	clips := make([]resolve.MediaPoolItem, 0, len(names))
	for _, name := range names {
		clip, miss := findMediaPoolClip(ctx, conn, name)
		if clip == nil {
			return nil, miss
		}
		clips = append(clips, clip)
	}
	return clips, ""
}

// findTimeline scans the project's timelines for one called name.
func findTimeline(ctx context.Context, conn *resolve.Connector, name string) (resolve.Timeline, string) {
	timelines := conn.Timelines(ctx)
	if !timelines.OK() {
		return nil, reply(timelines, nil, "Failed to list timelines.")
	}
	for _, timeline := range timelines.Value {
		if timelineName := conn.TimelineName(ctx, timeline); timelineName.OK() && timelineName.Value == name {
			return timeline, ""
		}
	}
	return nil, notFound("Timeline", name)
}

// findAlbum scans the gallery for an album called name.
func findAlbum(ctx context.Context, conn *resolve.Connector, name string) (resolve.GalleryAlbum, string) {
	albums := conn.GalleryAlbums(ctx)
	if !albums.OK() {
		return nil, reply(albums, nil, "Failed to read gallery albums.")
	}
	for _, album := range albums.Value {
		if albumName := conn.AlbumName(ctx, album); albumName.OK() && albumName.Value == name {
			return album, ""
		}
	}
	return nil, notFound("Album", name)
}

// findStill scans album for a still labelled label.
func findStill(ctx context.Context, conn *resolve.Connector, album resolve.GalleryAlbum, label string) (resolve.GalleryStill, string) {
	stills := conn.AlbumStills(ctx, album)
	if !stills.OK() {
		return nil, reply(stills, nil, "Failed to read album stills.")
	}
	for _, still := range stills.Value {
		if stillLabel := conn.StillLabel(ctx, album, still); stillLabel.OK() && stillLabel.Value == label {
			return still, ""
		}
	}
	return nil, notFound("Still", label)
}
