package resolve

import (
	"os"
	"path"
	"runtime"
	"strings"

	apperrors "github.com/louisbranch/resolve-mcp/internal/platform/errors"
)

// ScriptPathEnv overrides the scripting module search.
const ScriptPathEnv = "RESOLVE_SCRIPT_PATH"

const modulesSuffix = "Blackmagic Design/DaVinci Resolve/Developer/Scripting/Modules"

// Locator finds the directory holding the vendor scripting module.
type Locator struct {
	// Override is checked first, usually RESOLVE_SCRIPT_PATH.
	Override string
	// GOOS selects the install layout to search.
	GOOS string
	// Getenv reads PROGRAMDATA on windows.
	Getenv func(string) string
	// HomeDir resolves the per-user macOS install.
	HomeDir func() (string, error)
	// Exists reports whether a path is present on disk.
	Exists func(string) bool
}

// DefaultLocator searches the host filesystem, with override taking
// precedence when it exists.
func DefaultLocator(override string) Locator {
	return Locator{
		Override: override,
		GOOS:     runtime.GOOS,
		Getenv:   os.Getenv,
		HomeDir:  os.UserHomeDir,
		Exists: func(p string) bool {
			_, err := os.Stat(p)
			return err == nil
		},
	}
}

// Candidates lists the install paths for the locator's OS, in search order.
// The override is not included.
func (l Locator) Candidates() []string {
	switch l.GOOS {
	case "windows":
		programData := ""
		if l.Getenv != nil {
			programData = l.Getenv("PROGRAMDATA")
		}
		if programData == "" {
			programData = `C:\ProgramData`
		}
		parts := []string{strings.TrimRight(programData, `\`), "Blackmagic Design", "DaVinci Resolve", "Support", "Developer", "Scripting", "Modules"}
		return []string{strings.Join(parts, `\`)}
	case "darwin":
		paths := []string{path.Join("/Library/Application Support", modulesSuffix)}
		if l.HomeDir != nil {
			if home, err := l.HomeDir(); err == nil && home != "" {
				paths = append(paths, path.Join(home, "Library/Application Support", modulesSuffix))
			}
		}
		return paths
	case "linux":
		return []string{"/opt/resolve/Developer/Scripting/Modules"}
	default:
		return nil
	}
}

// Find returns the first existing module directory. A missing module is a
// MODULE_NOT_FOUND error; callers report it rather than abort.
func (l Locator) Find() (string, error) {
	exists := l.Exists
	if exists == nil {
		exists = func(string) bool { return false }
	}
	if l.Override != "" && exists(l.Override) {
		return l.Override, nil
	}
	for _, candidate := range l.Candidates() {
		if exists(candidate) {
			return candidate, nil
		}
	}
	return "", apperrors.WithMetadata(apperrors.CodeModuleNotFound,
		"no valid Resolve scripting module path found",
		map[string]string{"os": l.GOOS})
}
