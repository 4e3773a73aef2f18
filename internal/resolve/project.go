package resolve

import (
	"context"
)

// ProjectInfo summarises the current project.
type ProjectInfo struct {
	Name          string
	TimelineCount int
}

// CreateProject creates and opens a project. The media pool cache follows
// the new project.
func (c *Connector) CreateProject(ctx context.Context, name string) Result[Project] {
	c.mu.Lock()
	defer c.mu.Unlock()
	manager := c.managerLocked(ctx)
	if !manager.OK() {
		return propagate[Project](manager)
	}
	res := produced("CreateProject", forward(ctx, c, "CreateProject", func(ctx context.Context) (Project, error) {
		return manager.Value.CreateProject(ctx, name)
	}))
	if res.OK() {
		c.adoptProjectLocked(ctx, res.Value)
	}
	return res
}

// LoadProject opens an existing project by name.
func (c *Connector) LoadProject(ctx context.Context, name string) Result[Project] {
	c.mu.Lock()
	defer c.mu.Unlock()
	manager := c.managerLocked(ctx)
	if !manager.OK() {
		return propagate[Project](manager)
	}
	res := produced("LoadProject", forward(ctx, c, "LoadProject", func(ctx context.Context) (Project, error) {
		return manager.Value.LoadProject(ctx, name)
	}))
	if res.OK() {
		c.adoptProjectLocked(ctx, res.Value)
	}
	return res
}

func (c *Connector) adoptProjectLocked(ctx context.Context, project Project) {
	c.currentProject = project
	c.mediaPool = forward(ctx, c, "GetMediaPool", project.GetMediaPool).Value
}

// SaveProject saves the current project.
func (c *Connector) SaveProject(ctx context.Context) Result[bool] {
	c.mu.Lock()
	defer c.mu.Unlock()
	project := c.projectLocked(ctx)
	if !project.OK() {
		return propagate[bool](project)
	}
	return truthy("SaveProject", forward(ctx, c, "SaveProject", project.Value.SaveProject))
}

// ProjectName returns the current project's name.
func (c *Connector) ProjectName(ctx context.Context) Result[string] {
	c.mu.Lock()
	defer c.mu.Unlock()
	project := c.projectLocked(ctx)
	if !project.OK() {
		return propagate[string](project)
	}
	return forward(ctx, c, "GetName", project.Value.GetName)
}

// ProjectInfo returns the name and timeline count of the current project.
func (c *Connector) ProjectInfo(ctx context.Context) Result[ProjectInfo] {
	c.mu.Lock()
	defer c.mu.Unlock()
	project := c.projectLocked(ctx)
	if !project.OK() {
		return propagate[ProjectInfo](project)
	}
	name := forward(ctx, c, "GetName", project.Value.GetName)
	if !name.OK() {
		return propagate[ProjectInfo](name)
	}
	count := forward(ctx, c, "GetTimelineCount", project.Value.GetTimelineCount)
	if !count.OK() {
		return propagate[ProjectInfo](count)
	}
	return ok(ProjectInfo{Name: name.Value, TimelineCount: count.Value})
}

// ExportProject writes the named project to a file.
func (c *Connector) ExportProject(ctx context.Context, name, path string) Result[bool] {
	c.mu.Lock()
	defer c.mu.Unlock()
	manager := c.managerLocked(ctx)
	if !manager.OK() {
		return propagate[bool](manager)
	}
	return truthy("ExportProject", forward(ctx, c, "ExportProject", func(ctx context.Context) (bool, error) {
		return manager.Value.ExportProject(ctx, name, path)
	}))
}

// ImportProject imports a project file into the project library.
func (c *Connector) ImportProject(ctx context.Context, path string) Result[bool] {
	c.mu.Lock()
	defer c.mu.Unlock()
	manager := c.managerLocked(ctx)
	if !manager.OK() {
		return propagate[bool](manager)
	}
	return truthy("ImportProject", forward(ctx, c, "ImportProject", func(ctx context.Context) (bool, error) {
		return manager.Value.ImportProject(ctx, path)
	}))
}

// ListProjects lists the projects in the project manager's current folder.
func (c *Connector) ListProjects(ctx context.Context) Result[[]string] {
	c.mu.Lock()
	defer c.mu.Unlock()
	manager := c.managerLocked(ctx)
	if !manager.OK() {
		return propagate[[]string](manager)
	}
	return forward(ctx, c, "GetProjectListInCurrentFolder", manager.Value.GetProjectListInCurrentFolder)
}

// ProjectSettings returns every setting of the current project.
func (c *Connector) ProjectSettings(ctx context.Context) Result[map[string]string] {
	c.mu.Lock()
	defer c.mu.Unlock()
	project := c.projectLocked(ctx)
	if !project.OK() {
		return propagate[map[string]string](project)
	}
	return forward(ctx, c, "GetSetting", project.Value.GetSetting)
}

// SetProjectSetting changes one setting of the current project.
func (c *Connector) SetProjectSetting(ctx context.Context, key, value string) Result[bool] {
	c.mu.Lock()
	defer c.mu.Unlock()
	project := c.projectLocked(ctx)
	if !project.OK() {
		return propagate[bool](project)
	}
	return truthy("SetSetting", forward(ctx, c, "SetSetting", func(ctx context.Context) (bool, error) {
		return project.Value.SetSetting(ctx, key, value)
	}))
}
