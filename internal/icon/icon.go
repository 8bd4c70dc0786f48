// Package icon finds the icon an extracted bundle declares.
package icon

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/dsaleh/appimage-installer/internal/log"
)

const (
	// DirIcon is the conventional default icon at the root of an AppImage.
	DirIcon = ".DirIcon"

	themeDir = "usr/share/icons/hicolor"
)

// Resolve returns the best icon file under root for the declared icon name.
// Candidates, first match wins:
//  1. a file directly under root named name or name.<ext> (entry files excluded)
//  2. usr/share/icons/hicolor/*/apps/name.<ext>
//  3. root/.DirIcon
//
// Symlinks are resolved, and a link leaving root is not a candidate.
func Resolve(root, name string) (string, bool) {
	if name != "" {
		if path, ok := direct(root, name); ok {
			log.Debug(log.CatIcon, "icon found at root", "name", name, "path", path)
			return path, true
		}
		if path, ok := themed(root, name); ok {
			log.Debug(log.CatIcon, "icon found in theme", "name", name, "path", path)
			return path, true
		}
	}
	if path, ok := regular(root, filepath.Join(root, DirIcon)); ok {
		log.Debug(log.CatIcon, "using "+DirIcon, "name", name, "path", path)
		return path, true
	}
	return "", false
}

// Ext returns the extension to keep when the icon at path is copied.
// Dot-files such as .DirIcon have none.
func Ext(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}
	return ext
}

func direct(root, name string) (string, bool) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		fn := e.Name()
		if e.IsDir() || filepath.Ext(fn) == ".desktop" {
			continue
		}
		if fn != name && strings.TrimSuffix(fn, Ext(fn)) != name {
			continue
		}
		if path, ok := regular(root, filepath.Join(root, fn)); ok {
			return path, true
		}
	}
	return "", false
}

func themed(root, name string) (string, bool) {
	pattern := themeDir + "/*/apps/" + escapeMeta(name) + ".*"
	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		log.Debug(log.CatIcon, "theme glob failed", "pattern", pattern, "error", err)
		return "", false
	}
	for _, m := range matches {
		if path, ok := regular(root, filepath.Join(root, filepath.FromSlash(m))); ok {
			return path, true
		}
	}
	return "", false
}

// regular resolves path and reports whether it is a regular file inside root.
func regular(root, path string) (string, bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", false
	}
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", false
	}
	if !strings.HasPrefix(resolved, realRoot+string(filepath.Separator)) {
		return "", false
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return resolved, true
}

func escapeMeta(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`*?[]{}\`, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
