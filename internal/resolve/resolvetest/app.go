package resolvetest

import (
	"context"
	"path"
	"strings"

	"github.com/louisbranch/resolve-mcp/internal/resolve"
)

// App is the fake root application handle.
type App struct {
	rec *Recorder

	Manager *ProjectManager
	Storage *MediaStorage
	Engine  *Fusion

	Page        string
	ProductName string
	Version     string
	Playing     bool
	ModulePath  string
}

// New builds a running application with a project manager, media storage
// and Fusion but no open project.
func New() *App {
	rec := NewRecorder()
	app := &App{
		rec:         rec,
		Page:        "edit",
		ProductName: "DaVinci Resolve",
		Version:     "19.0.0",
	}
	app.Manager = &ProjectManager{rec: rec}
	app.Storage = &MediaStorage{rec: rec, manager: app.Manager, Folders: map[string][]string{}, FilesIn: map[string][]string{}}
	app.Engine = &Fusion{rec: rec, Comp: &Composition{rec: rec}}
	return app
}

// Recorder returns the recorder shared by every handle of app.
func (a *App) Recorder() *Recorder { return a.rec }

// AddProject creates a project in the library without opening it.
func (a *App) AddProject(name string) *Project {
	return a.Manager.add(name)
}

// OpenProject creates a project and makes it current.
func (a *App) OpenProject(name string) *Project {
	p := a.Manager.add(name)
	a.Manager.Current = p
	return p
}

func (a *App) GetProjectManager(context.Context) (resolve.ProjectManager, error) {
	if err := a.rec.record("Application.GetProjectManager"); err != nil {
		return nil, err
	}
	if a.Manager == nil {
		return nil, nil
	}
	return a.Manager, nil
}

func (a *App) GetMediaStorage(context.Context) (resolve.MediaStorage, error) {
	if err := a.rec.record("Application.GetMediaStorage"); err != nil {
		return nil, err
	}
	if a.Storage == nil {
		return nil, nil
	}
	return a.Storage, nil
}

func (a *App) Fusion(context.Context) (resolve.Fusion, error) {
	if err := a.rec.record("Application.Fusion"); err != nil {
		return nil, err
	}
	if a.Engine == nil {
		return nil, nil
	}
	return a.Engine, nil
}

func (a *App) OpenPage(_ context.Context, page string) (bool, error) {
	if err := a.rec.record("Application.OpenPage"); err != nil {
		return false, err
	}
	a.Page = page
	return true, nil
}

func (a *App) GetCurrentPage(context.Context) (string, error) {
	return a.Page, a.rec.record("Application.GetCurrentPage")
}

func (a *App) GetProductName(context.Context) (string, error) {
	return a.ProductName, a.rec.record("Application.GetProductName")
}

func (a *App) GetVersionString(context.Context) (string, error) {
	return a.Version, a.rec.record("Application.GetVersionString")
}

func (a *App) Play(context.Context) error {
	if err := a.rec.record("Application.Play"); err != nil {
		return err
	}
	a.Playing = true
	return nil
}

func (a *App) Stop(context.Context) error {
	if err := a.rec.record("Application.Stop"); err != nil {
		return err
	}
	a.Playing = false
	return nil
}

// ProjectManager is the fake project library.
type ProjectManager struct {
	rec *Recorder

	Projects []*Project
	Current  *Project
	Exported map[string]string
	Imported []string
}

func (m *ProjectManager) add(name string) *Project {
	p := newProject(m.rec, name)
	m.Projects = append(m.Projects, p)
	return p
}

func (m *ProjectManager) find(name string) *Project {
	for _, p := range m.Projects {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (m *ProjectManager) GetCurrentProject(context.Context) (resolve.Project, error) {
	if err := m.rec.record("ProjectManager.GetCurrentProject"); err != nil {
		return nil, err
	}
	if m.Current == nil {
		return nil, nil
	}
	return m.Current, nil
}

// CreateProject answers nothing when the name is taken, like the
// application does.
func (m *ProjectManager) CreateProject(_ context.Context, name string) (resolve.Project, error) {
	if err := m.rec.record("ProjectManager.CreateProject"); err != nil {
		return nil, err
	}
	if name == "" || m.find(name) != nil {
		return nil, nil
	}
	p := m.add(name)
	m.Current = p
	return p, nil
}

func (m *ProjectManager) LoadProject(_ context.Context, name string) (resolve.Project, error) {
	if err := m.rec.record("ProjectManager.LoadProject"); err != nil {
		return nil, err
	}
	p := m.find(name)
	if p == nil {
		return nil, nil
	}
	m.Current = p
	return p, nil
}

func (m *ProjectManager) ExportProject(_ context.Context, name, filePath string) (bool, error) {
	if err := m.rec.record("ProjectManager.ExportProject"); err != nil {
		return false, err
	}
	if m.find(name) == nil {
		return false, nil
	}
	if m.Exported == nil {
		m.Exported = map[string]string{}
	}
	m.Exported[filePath] = name
	return true, nil
}

func (m *ProjectManager) ImportProject(_ context.Context, filePath string) (bool, error) {
	if err := m.rec.record("ProjectManager.ImportProject"); err != nil {
		return false, err
	}
	if !strings.HasSuffix(filePath, ".drp") {
		return false, nil
	}
	m.Imported = append(m.Imported, filePath)
	m.add(strings.TrimSuffix(path.Base(filePath), ".drp"))
	return true, nil
}

func (m *ProjectManager) GetProjectListInCurrentFolder(context.Context) ([]string, error) {
	if err := m.rec.record("ProjectManager.GetProjectListInCurrentFolder"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(m.Projects))
	for _, p := range m.Projects {
		names = append(names, p.Name)
	}
	return names, nil
}

// MediaStorage is the fake volume browser. Imported files land in the
// current project's current folder.
type MediaStorage struct {
	rec     *Recorder
	manager *ProjectManager

	Volumes []string
	Folders map[string][]string
	FilesIn map[string][]string
}

func (s *MediaStorage) GetMountedVolumes(context.Context) ([]string, error) {
	return s.Volumes, s.rec.record("MediaStorage.GetMountedVolumes")
}

func (s *MediaStorage) GetSubFolders(_ context.Context, p string) ([]string, error) {
	return s.Folders[p], s.rec.record("MediaStorage.GetSubFolders")
}

func (s *MediaStorage) GetFiles(_ context.Context, p string) ([]string, error) {
	return s.FilesIn[p], s.rec.record("MediaStorage.GetFiles")
}

func (s *MediaStorage) AddItemsToMediaPool(_ context.Context, paths []string) ([]resolve.MediaPoolItem, error) {
	if err := s.rec.record("MediaStorage.AddItemsToMediaPool"); err != nil {
		return nil, err
	}
	project := s.manager.Current
	if project == nil {
		return nil, nil
	}
	var items []resolve.MediaPoolItem
	for _, p := range paths {
		if p == "" {
			continue
		}
		items = append(items, project.Pool.Current.AddClip(path.Base(p)))
	}
	return items, nil
}

// Fusion is the fake compositing engine.
type Fusion struct {
	rec *Recorder

	Comp    *Composition
	Scripts []string
	// Answer is returned by Execute.
	Answer any
}

func (f *Fusion) Execute(_ context.Context, script string) (any, error) {
	if err := f.rec.record("Fusion.Execute"); err != nil {
		return nil, err
	}
	f.Scripts = append(f.Scripts, script)
	return f.Answer, nil
}

func (f *Fusion) GetCurrentComp(context.Context) (resolve.Composition, error) {
	if err := f.rec.record("Fusion.GetCurrentComp"); err != nil {
		return nil, err
	}
	if f.Comp == nil {
		return nil, nil
	}
	return f.Comp, nil
}

// Composition is a fake Fusion composition.
type Composition struct {
	rec *Recorder

	Tools []*FusionTool
}

func (c *Composition) AddTool(_ context.Context, toolType string, x, y int) (resolve.FusionTool, error) {
	if err := c.rec.record("Composition.AddTool"); err != nil {
		return nil, err
	}
	if toolType == "" {
		return nil, nil
	}
	n := 1
	for _, t := range c.Tools {
		if t.Type == toolType {
			n++
		}
	}
	tool := &FusionTool{rec: c.rec, Type: toolType, Name: toolType + itoa(n), X: x, Y: y, Inputs: map[string]any{}}
	c.Tools = append(c.Tools, tool)
	return tool, nil
}

// FusionTool is a fake Fusion node.
type FusionTool struct {
	rec *Recorder

	Type   string
	Name   string
	X, Y   int
	Inputs map[string]any
	// Locked inputs refuse SetInput.
	Locked map[string]bool
}

func (t *FusionTool) SetInput(_ context.Context, name string, value any) (bool, error) {
	if err := t.rec.record("FusionTool.SetInput"); err != nil {
		return false, err
	}
	if t.Locked[name] {
		return false, nil
	}
	t.Inputs[name] = value
	return true, nil
}

func (t *FusionTool) GetName(context.Context) (string, error) {
	return t.Name, t.rec.record("FusionTool.GetName")
}
