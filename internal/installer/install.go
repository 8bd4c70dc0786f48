package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dsaleh/appimage-installer/internal/desktop"
	"github.com/dsaleh/appimage-installer/internal/extractor"
	"github.com/dsaleh/appimage-installer/internal/icon"
	"github.com/dsaleh/appimage-installer/internal/log"
	"github.com/dsaleh/appimage-installer/internal/system"
)

// InstallResult describes what Install wrote.
type InstallResult struct {
	Name     string // application name from the entry
	Binary   string
	Entry    string
	Icon     string // empty when no icon was found and the binary is used instead
	Updated  bool   // a binary with the same name was replaced
	Warnings []string
}

func (r *InstallResult) warn(msg string, fields ...any) {
	log.Warn(log.CatInstall, msg, fields...)
	r.Warnings = append(r.Warnings, msg)
}

// Install copies bundle into the binaries dir and registers it in the
// application menu. Installing the same bundle again overwrites the previous
// files, so a failed install is repaired by running it again; nothing is
// rolled back on failure.
func Install(ctx context.Context, bundle string, opts Options) (*InstallResult, error) {
	src, err := filepath.Abs(bundle)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(src)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, src)
	}

	res := &InstallResult{Binary: opts.Layout.BinaryPath(filepath.Base(src))}
	log.Info(log.CatInstall, "installing", "bundle", src)

	opts.progress(StepExtracting, src)
	err = extractor.Scoped(ctx, src, func(root string) error {
		return place(root, src, res, opts)
	})
	if err != nil {
		log.ErrorErr(log.CatInstall, "install failed", err, "bundle", src)
		return nil, err
	}

	log.Info(log.CatInstall, "installed", "name", res.Name, "binary", res.Binary, "entry", res.Entry, "icon", res.Icon)
	opts.notify("AppImage Installer", fmt.Sprintf("Successfully installed %s!", res.Name))
	return res, nil
}

// place runs the install steps that need the extracted tree. The binary is
// written first so it is usable even if a later step fails.
func place(root, src string, res *InstallResult, opts Options) error {
	entryPath, err := findEntry(root, res)
	if err != nil {
		return err
	}
	entry, err := desktop.ParseFile(entryPath)
	if err != nil {
		return err
	}
	res.Name = entry.Name

	if err := opts.Layout.Ensure(); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	res.Updated = system.Exists(res.Binary)
	opts.progress(StepCopyingBinary, res.Binary)
	if err := system.CopyFile(src, res.Binary, 0755); err != nil {
		return err
	}

	iconValue := res.Binary
	if iconSrc, ok := icon.Resolve(root, entry.Icon); ok {
		res.Icon = filepath.Join(opts.Layout.IconsDir, filepath.Base(res.Binary)+icon.Ext(iconSrc))
		opts.progress(StepCopyingIcon, res.Icon)
		if err := system.CopyFile(iconSrc, res.Icon, 0644); err != nil {
			return err
		}
		iconValue = res.Icon
	} else {
		res.warn("no icon found in bundle, the AppImage itself is used as icon", "icon", entry.Icon)
	}

	lines := desktop.Rewrite(entry.Lines, desktop.Substitution{Exec: res.Binary, Icon: iconValue})
	res.Entry = filepath.Join(opts.Layout.ApplicationsDir, filepath.Base(entryPath))
	opts.progress(StepWritingEntry, res.Entry)
	return writeEntry(res.Entry, desktop.JoinLines(lines))
}

// findEntry returns the first *.desktop file directly under root in name order.
func findEntry(root string, res *InstallResult) (string, error) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("read extracted bundle: %w", err)
	}
	var found []string
	for _, e := range dirEntries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".desktop" {
			found = append(found, filepath.Join(root, e.Name()))
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w: no .desktop file found inside bundle", desktop.ErrFormat)
	case 1:
	default:
		res.warn(fmt.Sprintf("bundle has %d .desktop files, using %s", len(found), filepath.Base(found[0])))
	}
	return found[0], nil
}

func writeEntry(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	// WriteFile keeps the mode of a file it overwrites.
	if err := os.Chmod(path, 0755); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}
