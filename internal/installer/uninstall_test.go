package installer_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsaleh/appimage-installer/internal/installer"
	"github.com/dsaleh/appimage-installer/internal/testutil"
)

func TestUninstall_notInstalled(t *testing.T) {
	opts, rec := setup(t)

	res, err := installer.Uninstall("/somewhere/Ghost.AppImage", opts)
	require.NoError(t, err)
	assert.True(t, res.NotInstalled)
	assert.Empty(t, res.Removed)
	assert.Empty(t, rec.sent)
}

func TestUninstall_acceptsPath(t *testing.T) {
	opts, rec := setup(t)
	bundle := testutil.Bundle(t, t.TempDir(), "App.AppImage", fooTree(t))
	_, err := installer.Install(context.Background(), bundle, opts)
	require.NoError(t, err)
	rec.sent = nil

	res, err := installer.Uninstall(bundle, opts)
	require.NoError(t, err)
	assert.Len(t, res.Removed, 3)
	assert.Equal(t, []notification{{"AppImage Uninstaller", "Successfully removed App.AppImage"}}, rec.sent)
}

func TestUninstall_binaryOnlyWhenNoEntry(t *testing.T) {
	opts, _ := setup(t)
	l := opts.Layout
	require.NoError(t, l.Ensure())
	bin := l.BinaryPath("Lonely.AppImage")
	require.NoError(t, os.WriteFile(bin, []byte("x"), 0755))
	other := filepath.Join(l.ApplicationsDir, "other.desktop")
	require.NoError(t, os.WriteFile(other, []byte("[Desktop Entry]\nExec="+bin+"-2\n"), 0644))

	res, err := installer.Uninstall("Lonely.AppImage", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{bin}, res.Removed)
	assert.Len(t, res.Warnings, 1)
	assert.FileExists(t, other)
}

func TestUninstall_neverDeletesForeignIcon(t *testing.T) {
	opts, _ := setup(t)
	l := opts.Layout
	require.NoError(t, l.Ensure())

	foreign := filepath.Join(t.TempDir(), "shared-icon.png")
	require.NoError(t, os.WriteFile(foreign, []byte("png"), 0644))
	bin := l.BinaryPath("App.AppImage")
	require.NoError(t, os.WriteFile(bin, []byte("x"), 0755))
	entry := filepath.Join(l.ApplicationsDir, "app.desktop")
	require.NoError(t, os.WriteFile(entry, []byte("[Desktop Entry]\nExec="+bin+" %u\nIcon="+foreign+"\n"), 0755))

	res, err := installer.Uninstall("App.AppImage", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{bin, entry}, res.Removed)
	assert.FileExists(t, foreign)
}

func TestUninstall_missingIconIsSkipped(t *testing.T) {
	opts, _ := setup(t)
	bundle := testutil.Bundle(t, t.TempDir(), "App.AppImage", fooTree(t))
	ires, err := installer.Install(context.Background(), bundle, opts)
	require.NoError(t, err)
	require.NoError(t, os.Remove(ires.Icon))

	res, err := installer.Uninstall("App.AppImage", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{ires.Binary, ires.Entry}, res.Removed)
}

func TestUninstall_thenReinstall(t *testing.T) {
	opts, _ := setup(t)
	bundle := testutil.Bundle(t, t.TempDir(), "App.AppImage", fooTree(t))

	_, err := installer.Install(context.Background(), bundle, opts)
	require.NoError(t, err)
	_, err = installer.Uninstall("App.AppImage", opts)
	require.NoError(t, err)

	res, err := installer.Install(context.Background(), bundle, opts)
	require.NoError(t, err)
	assert.False(t, res.Updated)
	assert.Len(t, snapshot(t, opts.Layout), 3)
}

func TestUninstall_directoryNamesAreNotInstalled(t *testing.T) {
	opts, rec := setup(t)
	bundle := testutil.Bundle(t, t.TempDir(), "App.AppImage", fooTree(t))
	_, err := installer.Install(context.Background(), bundle, opts)
	require.NoError(t, err)
	rec.sent = nil

	for _, name := range []string{".", "..", "/", "./", ""} {
		res, err := installer.Uninstall(name, opts)
		require.NoError(t, err, name)
		assert.True(t, res.NotInstalled, name)
		assert.Empty(t, res.Removed, name)
	}
	assert.DirExists(t, opts.Layout.BinDir)
	assert.FileExists(t, opts.Layout.BinaryPath("App.AppImage"))
	assert.Empty(t, rec.sent)
}

func TestUninstall_failedRemovalDoesNotStopOthers(t *testing.T) {
	opts, _ := setup(t)
	l := opts.Layout
	require.NoError(t, l.Ensure())

	bin := l.BinaryPath("App.AppImage")
	require.NoError(t, os.WriteFile(bin, []byte("x"), 0755))
	// a non-empty directory cannot be removed with os.Remove, even by root
	icon := filepath.Join(l.IconsDir, "App.AppImage.png")
	require.NoError(t, os.MkdirAll(filepath.Join(icon, "keep"), 0755))
	entry := filepath.Join(l.ApplicationsDir, "app.desktop")
	require.NoError(t, os.WriteFile(entry, []byte("[Desktop Entry]\nExec="+bin+"\nIcon="+icon+"\n"), 0755))

	res, err := installer.Uninstall("App.AppImage", opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), icon)
	assert.Equal(t, []string{bin, entry}, res.Removed)
	assert.NoFileExists(t, bin)
	assert.NoFileExists(t, entry)
}

func TestUninstall_undeletableEntryStillRemovesRest(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not apply to root")
	}
	opts, _ := setup(t)
	bundle := testutil.Bundle(t, t.TempDir(), "App.AppImage", fooTree(t))
	ires, err := installer.Install(context.Background(), bundle, opts)
	require.NoError(t, err)

	require.NoError(t, os.Chmod(opts.Layout.ApplicationsDir, 0555))
	t.Cleanup(func() { _ = os.Chmod(opts.Layout.ApplicationsDir, 0755) })

	res, err := installer.Uninstall("App.AppImage", opts)
	require.ErrorIs(t, err, fs.ErrPermission)
	assert.Equal(t, []string{ires.Binary, ires.Icon}, res.Removed)
	assert.NoFileExists(t, ires.Binary)
	assert.NoFileExists(t, ires.Icon)
	assert.FileExists(t, ires.Entry)
}
