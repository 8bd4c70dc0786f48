// Package registration re-derives what was installed for a bundle.
//
// Nothing is recorded at install time. A bundle's menu entry is found by
// scanning every entry file for an Exec command equal to the installed binary
// path, and its icon is read from that same entry.
package registration

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dsaleh/appimage-installer/internal/desktop"
	"github.com/dsaleh/appimage-installer/internal/log"
	"github.com/dsaleh/appimage-installer/internal/system"
)

// Registration is the set of files belonging to one installed bundle.
type Registration struct {
	Binary string
	Entry  string // empty when no entry file launches Binary
	Icon   string // empty unless the entry's icon lies inside the icons dir
	Name   string // Name from the entry, if any
}

// Locate finds the registration of the bundle installed under basename.
// It reports false when no binary is installed under that name, which includes
// names such as "." or ".." that resolve to a directory. A missing
// entry file is not an error: the returned registration just has no Entry.
//
// Entry files are scanned in name order and the first match wins.
func Locate(layout system.Layout, basename string) (Registration, bool) {
	reg := Registration{Binary: layout.BinaryPath(basename)}
	if !system.IsFile(reg.Binary) {
		return reg, false
	}

	for _, path := range entryFiles(layout) {
		e, err := desktop.ParseFile(path)
		if err != nil {
			log.Warn(log.CatLocate, "skipping unreadable entry", "path", path, "error", err)
			continue
		}
		if desktop.Command(e.Exec) != reg.Binary {
			continue
		}
		fill(&reg, layout, path, e)
		log.Debug(log.CatLocate, "entry matched", "binary", reg.Binary, "entry", path, "icon", reg.Icon)
		return reg, true
	}

	log.Debug(log.CatLocate, "no entry launches binary", "binary", reg.Binary)
	return reg, true
}

// List returns the registration of every bundle in the binaries dir, sorted
// by binary name.
func List(layout system.Layout) ([]Registration, error) {
	bins, err := os.ReadDir(layout.BinDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	byCommand := map[string]Registration{}
	for _, path := range entryFiles(layout) {
		e, err := desktop.ParseFile(path)
		if err != nil {
			log.Debug(log.CatLocate, "skipping unreadable entry", "path", path, "error", err)
			continue
		}
		cmd := desktop.Command(e.Exec)
		if _, seen := byCommand[cmd]; seen || cmd == "" {
			continue
		}
		var reg Registration
		fill(&reg, layout, path, e)
		byCommand[cmd] = reg
	}

	var regs []Registration
	for _, b := range bins {
		if b.IsDir() {
			continue
		}
		bin := layout.BinaryPath(b.Name())
		reg := byCommand[bin]
		reg.Binary = bin
		regs = append(regs, reg)
	}
	return regs, nil
}

func fill(reg *Registration, layout system.Layout, path string, e *desktop.Entry) {
	reg.Entry = path
	reg.Name = e.Name
	if layout.OwnsIcon(e.Icon) {
		reg.Icon = e.Icon
	}
}

// entryFiles returns the *.desktop files in the applications dir in name order.
func entryFiles(layout system.Layout) []string {
	entries, err := os.ReadDir(layout.ApplicationsDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn(log.CatLocate, "cannot read applications dir", "dir", layout.ApplicationsDir, "error", err)
		}
		return nil
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".desktop" {
			continue
		}
		paths = append(paths, filepath.Join(layout.ApplicationsDir, e.Name()))
	}
	return paths
}
