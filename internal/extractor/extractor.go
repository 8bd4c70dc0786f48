package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dsaleh/appimage-installer/internal/log"
)

const (
	// ExtractFlag makes a type 2 AppImage unpack itself into the working directory.
	ExtractFlag = "--appimage-extract"
	// RootDir is the directory the bundle unpacks into.
	RootDir = "squashfs-root"
)

// ErrExtraction is returned when a bundle cannot be unpacked.
var ErrExtraction = errors.New("extraction failed")

// Scoped unpacks bundle into a fresh temporary directory and calls fn with the
// extracted root. The temporary directory is removed when Scoped returns,
// whether extraction, fn, or neither failed.
func Scoped(ctx context.Context, bundle string, fn func(root string) error) error {
	bundle, err := filepath.Abs(bundle)
	if err != nil {
		return err
	}

	scratch, err := os.MkdirTemp("", "appimage-installer-*")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() {
		if err := removeTree(scratch); err != nil {
			log.Warn(log.CatExtract, "could not remove scratch dir", "dir", scratch, "error", err)
		}
	}()

	root, err := extract(ctx, bundle, scratch)
	if err != nil {
		return err
	}
	return fn(root)
}

func extract(ctx context.Context, bundle, dir string) (string, error) {
	log.Debug(log.CatExtract, "extracting", "bundle", bundle, "dir", dir)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bundle, ExtractFlag)
	cmd.Dir = dir
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "is it a valid, executable AppImage?"
		}
		return "", fmt.Errorf("%w: %s: %v: %s", ErrExtraction, filepath.Base(bundle), err, msg)
	}

	root := filepath.Join(dir, RootDir)
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s produced no %s directory", ErrExtraction, filepath.Base(bundle), RootDir)
	}
	return root, nil
}

// removeTree deletes dir, first making every directory writable so that
// read-only trees unpacked from squashfs images can be removed.
func removeTree(dir string) error {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && d.IsDir() {
			_ = os.Chmod(path, 0700)
		}
		return nil
	})
	return os.RemoveAll(dir)
}
