package system

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	cp "github.com/otiai10/copy"
)

// CopyFile copies src to dst, replacing dst if it exists, and sets mode on the result.
// Symlinks at src are followed. Copying a file onto itself only sets the mode.
func CopyFile(src, dst string, mode os.FileMode) error {
	if sameFile(src, dst) {
		return os.Chmod(dst, mode)
	}
	opts := cp.Options{
		OnSymlink:     func(string) cp.SymlinkAction { return cp.Deep },
		PreserveTimes: true,
	}
	if err := cp.Copy(src, dst, opts); err != nil {
		return fmt.Errorf("copy %s -> %s: %w", src, dst, err)
	}
	if err := os.Chmod(dst, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", dst, err)
	}
	return nil
}

// Exists reports whether anything exists at path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsFile reports whether something other than a directory exists at path.
// Symlinks are not followed.
func IsFile(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && !info.IsDir()
}

// RemoveIfExists deletes path and reports whether it was there.
func RemoveIfExists(path string) (bool, error) {
	err := os.Remove(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("remove %s: %w", path, err)
	}
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
