package resolve

import (
	"context"
)

// DefaultStillAlbum is the album SaveStill uses when none is named.
const DefaultStillAlbum = "Stills"

// Gallery returns the gallery of the current project.
func (c *Connector) Gallery(ctx context.Context) Result[Gallery] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.galleryLocked(ctx)
}

func (c *Connector) galleryLocked(ctx context.Context) Result[Gallery] {
	project := c.projectLocked(ctx)
	if !project.OK() {
		return propagate[Gallery](project)
	}
	return present("no gallery", forward(ctx, c, "GetGallery", project.Value.GetGallery))
}

// GalleryAlbums lists the still albums of the current project.
func (c *Connector) GalleryAlbums(ctx context.Context) Result[[]GalleryAlbum] {
	c.mu.Lock()
	defer c.mu.Unlock()
	gallery := c.galleryLocked(ctx)
	if !gallery.OK() {
		return propagate[[]GalleryAlbum](gallery)
	}
	res := forward(ctx, c, "GetGalleryAlbumList", gallery.Value.GetGalleryAlbumList)
	if res.OK() && res.Value == nil {
		res.Value = []GalleryAlbum{}
	}
	return res
}

// AlbumName returns the display name of album.
func (c *Connector) AlbumName(ctx context.Context, album GalleryAlbum) Result[string] {
	if album == nil {
		return missing[string]("no album")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	gallery := c.galleryLocked(ctx)
	if !gallery.OK() {
		return propagate[string](gallery)
	}
	return forward(ctx, c, "GetAlbumName", func(ctx context.Context) (string, error) {
		return gallery.Value.GetAlbumName(ctx, album)
	})
}

// AlbumStills lists the stills in album.
func (c *Connector) AlbumStills(ctx context.Context, album GalleryAlbum) Result[[]GalleryStill] {
	if album == nil {
		return missing[[]GalleryStill]("no album")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	res := forward(ctx, c, "GetStills", album.GetStills)
	if res.OK() && res.Value == nil {
		res.Value = []GalleryStill{}
	}
	return res
}

// StillLabel returns the label of a still within album.
func (c *Connector) StillLabel(ctx context.Context, album GalleryAlbum, still GalleryStill) Result[string] {
	if album == nil || still == nil {
		return missing[string]("no still")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return forward(ctx, c, "GetLabel", func(ctx context.Context) (string, error) {
		return album.GetLabel(ctx, still)
	})
}

// SaveStill grabs the current clip's grade into the named album, creating
// the album when it does not exist.
func (c *Connector) SaveStill(ctx context.Context, albumName string) Result[GalleryStill] {
	if albumName == "" {
		albumName = DefaultStillAlbum
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	gallery := c.galleryLocked(ctx)
	if !gallery.OK() {
		return propagate[GalleryStill](gallery)
	}
	item := c.currentItemLocked(ctx)
	if !item.OK() {
		return propagate[GalleryStill](item)
	}
	album := forward(ctx, c, "GetAlbum", func(ctx context.Context) (GalleryAlbum, error) {
		return gallery.Value.GetAlbum(ctx, albumName)
	})
	if !album.OK() {
		return propagate[GalleryStill](album)
	}
	if album.Value == nil {
		album = produced("CreateEmptyAlbum", forward(ctx, c, "CreateEmptyAlbum", func(ctx context.Context) (GalleryAlbum, error) {
			return gallery.Value.CreateEmptyAlbum(ctx, albumName)
		}))
		if !album.OK() {
			return propagate[GalleryStill](album)
		}
	}
	return produced("SaveAsStill", forward(ctx, c, "SaveAsStill", func(ctx context.Context) (GalleryStill, error) {
		return item.Value.SaveAsStill(ctx, album.Value)
	}))
}

// ApplyStill applies a still's grade to item, or to the clip under the
// playhead when item is nil.
func (c *Connector) ApplyStill(ctx context.Context, still GalleryStill, item TimelineItem) Result[bool] {
	if still == nil {
		return missing[bool]("no still")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if item == nil {
		current := c.currentItemLocked(ctx)
		if !current.OK() {
			return propagate[bool](current)
		}
		item = current.Value
	}
	return truthy("ApplyGradeFromStill", forward(ctx, c, "ApplyGradeFromStill", func(ctx context.Context) (bool, error) {
		return item.ApplyGradeFromStill(ctx, still)
	}))
}
