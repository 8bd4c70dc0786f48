package tui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dsaleh/appimage-installer/internal/installer"
	"github.com/dsaleh/appimage-installer/internal/registration"
	"github.com/dsaleh/appimage-installer/tui"
)

func TestInstallReport(t *testing.T) {
	out := tui.InstallReport(&installer.InstallResult{
		Name:     "Foo",
		Binary:   "/home/u/Applications/Foo.AppImage",
		Updated:  true,
		Warnings: []string{"no icon found"},
	})
	assert.Contains(t, out, "Updated existing file: Foo.AppImage")
	assert.Contains(t, out, "Warning: no icon found")
	assert.Contains(t, out, "Check your application menu for 'Foo'.")
}

func TestUninstallReport(t *testing.T) {
	out := tui.UninstallReport(&installer.UninstallResult{
		Binary:       "/home/u/Applications/Foo.AppImage",
		NotInstalled: true,
	})
	assert.Contains(t, out, "'Foo.AppImage' is not installed in /home/u/Applications")

	out = tui.UninstallReport(&installer.UninstallResult{Binary: "/b", Removed: []string{"/b", "/e.desktop"}})
	assert.Contains(t, out, "  - /b\n")
	assert.Contains(t, out, "  - /e.desktop\n")

	out = tui.UninstallReport(&installer.UninstallResult{Binary: "/b"})
	assert.Contains(t, out, "Nothing was removed.")
}

func TestProgress(t *testing.T) {
	out := tui.Progress(installer.ProgressMsg{Step: installer.StepCopyingIcon, Path: "/i.png"})
	assert.Contains(t, out, "Copying icon to: /i.png")
}

func TestError(t *testing.T) {
	assert.Contains(t, tui.Error(errors.New("boom")), "Error: boom")
}

func TestList(t *testing.T) {
	out := tui.List([]registration.Registration{
		{
			Binary: "/home/u/Applications/Foo.AppImage",
			Entry:  "/home/u/.local/share/applications/foo.desktop",
			Name:   "Foo",
		},
		{Binary: "/home/u/Applications/Bar.AppImage"},
	}, "/home/u")
	assert.Contains(t, out, "Foo.AppImage")
	assert.Contains(t, out, "~/.local/share/applications/foo.desktop")
	assert.Contains(t, out, "Bar.AppImage")

	assert.Contains(t, tui.List(nil, "/home/u"), "No AppImages installed.")
}
