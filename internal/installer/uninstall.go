package installer

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dsaleh/appimage-installer/internal/log"
	"github.com/dsaleh/appimage-installer/internal/registration"
	"github.com/dsaleh/appimage-installer/internal/system"
)

// UninstallResult describes what Uninstall removed.
type UninstallResult struct {
	Binary       string
	NotInstalled bool     // no binary was installed under the name; nothing was done
	Removed      []string // in removal order: binary, entry, icon
	Warnings     []string
}

// Uninstall removes the binary installed under bundle's basename together with
// the menu entry that launches it and the icon that entry points to. Each file
// is removed independently, and files already gone are skipped.
func Uninstall(bundle string, opts Options) (*UninstallResult, error) {
	name := filepath.Base(bundle)
	reg, installed := registration.Locate(opts.Layout, name)
	res := &UninstallResult{Binary: reg.Binary}
	if !installed {
		log.Info(log.CatUninstall, "not installed", "binary", reg.Binary)
		res.NotInstalled = true
		return res, nil
	}

	if reg.Entry == "" {
		msg := "could not find a matching .desktop entry for this AppImage"
		log.Warn(log.CatUninstall, msg, "binary", reg.Binary)
		res.Warnings = append(res.Warnings, msg)
	}

	var errs []error
	for _, path := range []string{reg.Binary, reg.Entry, ownedIcon(opts.Layout, reg.Icon)} {
		if path == "" {
			continue
		}
		opts.progress(StepRemoving, path)
		removed, err := system.RemoveIfExists(path)
		if err != nil {
			log.Error(log.CatUninstall, "remove failed", "path", path, "error", err)
			errs = append(errs, err)
			continue
		}
		if removed {
			res.Removed = append(res.Removed, path)
		}
	}

	log.Info(log.CatUninstall, "uninstalled", "binary", reg.Binary, "removed", len(res.Removed))
	if len(res.Removed) > 0 {
		opts.notify("AppImage Uninstaller", fmt.Sprintf("Successfully removed %s", name))
	}
	return res, errors.Join(errs...)
}

// ownedIcon returns path if it may be deleted, i.e. it lies inside the icons dir.
func ownedIcon(layout system.Layout, path string) string {
	if !layout.OwnsIcon(path) {
		return ""
	}
	return path
}
