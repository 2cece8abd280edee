package probe

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(t *testing.T, dir string) []string {
	t.Helper()
	list, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, e := range list {
		names = append(names, e.Name())
	}
	return names
}

func TestFS_CreateTempFolderAndFile_LeaveNothingBehind(t *testing.T) {
	// Given: an empty working directory
	dir := t.TempDir()
	fs := NewFS(dir)

	// When: probing folder and file creation
	assert.True(t, fs.CreateTempFolder())
	assert.True(t, fs.CreateTempFile())

	// Then: the directory is empty again
	assert.Empty(t, entries(t, dir))
}

func TestFS_ReadOnlyDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })
	fs := NewFS(dir)

	assert.False(t, fs.CreateTempFolder())
	assert.False(t, fs.CreateTempFile())
	assert.False(t, fs.PathWritable(dir))
}

func TestFS_PathWritable(t *testing.T) {
	dir := t.TempDir()
	fs := NewFS(dir)

	assert.True(t, fs.PathWritable(dir))
	assert.False(t, fs.PathWritable(filepath.Join(dir, "missing")))
	assert.False(t, fs.PathWritable(""))
}

func TestFS_SymlinkRoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	// Given: a working directory
	dir := t.TempDir()
	fs := NewFS(dir)

	// When: creating a relative link and removing it
	require.True(t, fs.CreateSymlink(".", ".installcheck-symlink-test"))
	target, err := os.Readlink(filepath.Join(dir, ".installcheck-symlink-test"))
	require.NoError(t, err)
	assert.Equal(t, ".", target)

	// Then: a second create fails while the link exists, and remove clears it
	assert.False(t, fs.CreateSymlink(".", ".installcheck-symlink-test"))
	require.NoError(t, fs.Remove(".installcheck-symlink-test"))
	assert.Empty(t, entries(t, dir))
	assert.Error(t, fs.Remove(".installcheck-symlink-test"))
}

func TestNewFS_DefaultsToCurrentDirectory(t *testing.T) {
	assert.Equal(t, ".", NewFS("").Dir())
}
