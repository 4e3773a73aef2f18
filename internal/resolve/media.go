package resolve

import (
	"context"
)

// FolderInfo summarises a media pool folder.
type FolderInfo struct {
	Name      string
	ClipCount int
}

// MountedVolumes lists the volumes visible to media storage.
func (c *Connector) MountedVolumes(ctx context.Context) Result[[]string] {
	return c.onStorage(ctx, "GetMountedVolumes", func(ctx context.Context, s MediaStorage) ([]string, error) {
		return s.GetMountedVolumes(ctx)
	})
}

// SubFolders lists the folders under path in media storage.
func (c *Connector) SubFolders(ctx context.Context, path string) Result[[]string] {
	return c.onStorage(ctx, "GetSubFolders", func(ctx context.Context, s MediaStorage) ([]string, error) {
		return s.GetSubFolders(ctx, path)
	})
}

// Files lists the files under path in media storage.
func (c *Connector) Files(ctx context.Context, path string) Result[[]string] {
	return c.onStorage(ctx, "GetFiles", func(ctx context.Context, s MediaStorage) ([]string, error) {
		return s.GetFiles(ctx, path)
	})
}

func (c *Connector) onStorage(ctx context.Context, op string, fn func(context.Context, MediaStorage) ([]string, error)) Result[[]string] {
	c.mu.Lock()
	defer c.mu.Unlock()
	storage := c.storageLocked(ctx)
	if !storage.OK() {
		return propagate[[]string](storage)
	}
	res := forward(ctx, c, op, func(ctx context.Context) ([]string, error) {
		return fn(ctx, storage.Value)
	})
	if res.OK() && res.Value == nil {
		res.Value = []string{}
	}
	return res
}

// AddItemsToMediaPool imports files into the current media pool folder.
// Both media storage and a media pool are required.
func (c *Connector) AddItemsToMediaPool(ctx context.Context, paths []string) Result[[]MediaPoolItem] {
	c.mu.Lock()
	defer c.mu.Unlock()
	storage := c.storageLocked(ctx)
	if !storage.OK() {
		return propagate[[]MediaPoolItem](storage)
	}
	pool := c.mediaPoolLocked(ctx)
	if !pool.OK() {
		return propagate[[]MediaPoolItem](pool)
	}
	res := forward(ctx, c, "AddItemsToMediaPool", func(ctx context.Context) ([]MediaPoolItem, error) {
		return storage.Value.AddItemsToMediaPool(ctx, paths)
	})
	if res.OK() && len(res.Value) == 0 {
		return rejected[[]MediaPoolItem]("AddItemsToMediaPool")
	}
	return res
}

// RootFolder returns the media pool's root folder.
func (c *Connector) RootFolder(ctx context.Context) Result[Folder] {
	c.mu.Lock()
	defer c.mu.Unlock()
	pool := c.mediaPoolLocked(ctx)
	if !pool.OK() {
		return propagate[Folder](pool)
	}
	return present("no root folder", forward(ctx, c, "GetRootFolder", pool.Value.GetRootFolder))
}

// CurrentFolder returns the media pool folder selected in the UI.
func (c *Connector) CurrentFolder(ctx context.Context) Result[Folder] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentFolderLocked(ctx)
}

func (c *Connector) currentFolderLocked(ctx context.Context) Result[Folder] {
	pool := c.mediaPoolLocked(ctx)
	if !pool.OK() {
		return propagate[Folder](pool)
	}
	return present("no current folder", forward(ctx, c, "GetCurrentFolder", pool.Value.GetCurrentFolder))
}

// CurrentFolderInfo returns the name and clip count of the current folder.
func (c *Connector) CurrentFolderInfo(ctx context.Context) Result[FolderInfo] {
	c.mu.Lock()
	defer c.mu.Unlock()
	folder := c.currentFolderLocked(ctx)
	if !folder.OK() {
		return propagate[FolderInfo](folder)
	}
	clips := forward(ctx, c, "GetClips", folder.Value.GetClips)
	if !clips.OK() {
		return propagate[FolderInfo](clips)
	}
	name := forward(ctx, c, "GetName", folder.Value.GetName)
	if !name.OK() {
		return propagate[FolderInfo](name)
	}
	return ok(FolderInfo{Name: name.Value, ClipCount: len(clips.Value)})
}

// AddSubFolder creates a bin named name under parent.
func (c *Connector) AddSubFolder(ctx context.Context, parent Folder, name string) Result[Folder] {
	if parent == nil {
		return missing[Folder]("no parent folder")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	pool := c.mediaPoolLocked(ctx)
	if !pool.OK() {
		return propagate[Folder](pool)
	}
	return produced("AddSubFolder", forward(ctx, c, "AddSubFolder", func(ctx context.Context) (Folder, error) {
		return pool.Value.AddSubFolder(ctx, parent, name)
	}))
}

// FolderClips lists the clips in folder.
func (c *Connector) FolderClips(ctx context.Context, folder Folder) Result[[]MediaPoolItem] {
	if folder == nil {
		return missing[[]MediaPoolItem]("no folder")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	res := forward(ctx, c, "GetClips", folder.GetClips)
	if res.OK() && res.Value == nil {
		res.Value = []MediaPoolItem{}
	}
	return res
}

// CurrentFolderClips lists the clips in the current media pool folder.
func (c *Connector) CurrentFolderClips(ctx context.Context) Result[[]MediaPoolItem] {
	c.mu.Lock()
	defer c.mu.Unlock()
	folder := c.currentFolderLocked(ctx)
	if !folder.OK() {
		return propagate[[]MediaPoolItem](folder)
	}
	res := forward(ctx, c, "GetClips", folder.Value.GetClips)
	if res.OK() && res.Value == nil {
		res.Value = []MediaPoolItem{}
	}
	return res
}

// FolderName returns the name of folder.
func (c *Connector) FolderName(ctx context.Context, folder Folder) Result[string] {
	if folder == nil {
		return missing[string]("no folder")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return forward(ctx, c, "GetName", folder.GetName)
}

// FolderSubFolders lists the bins directly under folder.
func (c *Connector) FolderSubFolders(ctx context.Context, folder Folder) Result[[]Folder] {
	if folder == nil {
		return missing[[]Folder]("no folder")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	res := forward(ctx, c, "GetSubFolders", folder.GetSubFolders)
	if res.OK() && res.Value == nil {
		res.Value = []Folder{}
	}
	return res
}

// ClipName returns the name of a media pool clip.
func (c *Connector) ClipName(ctx context.Context, clip MediaPoolItem) Result[string] {
	if clip == nil {
		return missing[string]("no clip")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return forward(ctx, c, "GetName", clip.GetName)
}

// AppendToTimeline appends clips to the current timeline.
func (c *Connector) AppendToTimeline(ctx context.Context, clips []MediaPoolItem) Result[bool] {
	c.mu.Lock()
	defer c.mu.Unlock()
	pool := c.mediaPoolLocked(ctx)
	if !pool.OK() {
		return propagate[bool](pool)
	}
	return truthy("AppendToTimeline", forward(ctx, c, "AppendToTimeline", func(ctx context.Context) (bool, error) {
		return pool.Value.AppendToTimeline(ctx, clips)
	}))
}

// CreateTimelineFromClips creates a timeline named name holding clips.
func (c *Connector) CreateTimelineFromClips(ctx context.Context, name string, clips []MediaPoolItem) Result[Timeline] {
	c.mu.Lock()
	defer c.mu.Unlock()
	pool := c.mediaPoolLocked(ctx)
	if !pool.OK() {
		return propagate[Timeline](pool)
	}
	return produced("CreateTimelineFromClips", forward(ctx, c, "CreateTimelineFromClips", func(ctx context.Context) (Timeline, error) {
		return pool.Value.CreateTimelineFromClips(ctx, name, clips)
	}))
}

// ImportTimelineFromFile imports an interchange file (AAF, EDL, XML) as a
// new timeline.
func (c *Connector) ImportTimelineFromFile(ctx context.Context, path string) Result[Timeline] {
	c.mu.Lock()
	defer c.mu.Unlock()
	pool := c.mediaPoolLocked(ctx)
	if !pool.OK() {
		return propagate[Timeline](pool)
	}
	return produced("ImportTimelineFromFile", forward(ctx, c, "ImportTimelineFromFile", func(ctx context.Context) (Timeline, error) {
		return pool.Value.ImportTimelineFromFile(ctx, path)
	}))
}
