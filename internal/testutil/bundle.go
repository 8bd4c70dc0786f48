// Package testutil builds fake self-extracting bundles for tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// Tree writes files (relative path -> content) into a new temporary directory
// and returns it. Content prefixed with "->" creates a symlink to the rest.
func Tree(t testing.TB, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if len(content) > 2 && content[:2] == "->" {
			if err := os.Symlink(content[2:], path); err != nil {
				t.Fatalf("symlink: %v", err)
			}
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return dir
}

// Bundle writes an executable script at dir/name that behaves like an AppImage:
// run with --appimage-extract it copies tree to ./squashfs-root.
func Bundle(t testing.TB, dir, name, tree string) string {
	t.Helper()
	script := fmt.Sprintf(`#!/bin/sh
[ "$1" = "--appimage-extract" ] || exit 64
cp -R '%s' squashfs-root
`, tree)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("write bundle: %v", err)
	}
	return path
}

// Script writes an executable shell script at dir/name with the given body.
func Script(t testing.TB, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}
