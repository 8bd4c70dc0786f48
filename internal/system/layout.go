package system

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	BinDir          = "Applications"
	ApplicationsDir = ".local/share/applications"
	IconsDir        = ".local/share/icons/Applications"
)

// Layout holds the three per-user directories a registration is spread over.
type Layout struct {
	BinDir          string // installed bundles
	ApplicationsDir string // menu entry files
	IconsDir        string // icons extracted from bundles
}

// LayoutAt returns the layout rooted at home.
func LayoutAt(home string) Layout {
	return Layout{
		BinDir:          filepath.Join(home, BinDir),
		ApplicationsDir: filepath.Join(home, ApplicationsDir),
		IconsDir:        filepath.Join(home, IconsDir),
	}
}

// Ensure creates the layout directories if they don't exist.
func (l Layout) Ensure() error {
	for _, dir := range []string{l.ApplicationsDir, l.IconsDir, l.BinDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// BinaryPath returns where a bundle with the given basename is installed.
func (l Layout) BinaryPath(basename string) string {
	return filepath.Join(l.BinDir, filepath.Base(basename))
}

// OwnsIcon reports whether path lies inside the dedicated icon directory.
// Theme icon names and files elsewhere are never owned.
func (l Layout) OwnsIcon(path string) bool {
	if path == "" || !filepath.IsAbs(path) {
		return false
	}
	dir := filepath.Clean(l.IconsDir) + string(filepath.Separator)
	return strings.HasPrefix(filepath.Clean(path), dir)
}
