package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackup_NothingToBackUp(t *testing.T) {
	path, err := Backup(filepath.Join(t.TempDir(), ".installcheck.yaml"))

	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestBackup_CopiesContent(t *testing.T) {
	// Given: an existing config
	path := filepath.Join(t.TempDir(), ".installcheck.yaml")
	writeFile(t, path, "version: 1\n")

	// When: backing it up
	backup, err := Backup(path)
	require.NoError(t, err)

	// Then: the backup holds the same bytes
	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(data))

	list, err := ListBackups(path)
	require.NoError(t, err)
	assert.Equal(t, []string{backup}, list)
}

func TestBackup_KeepsOnlyNewest(t *testing.T) {
	// Given: more old backups than the limit
	dir := t.TempDir()
	path := filepath.Join(dir, ".installcheck.yaml")
	writeFile(t, path, "version: 1\n")
	for i := 1; i <= MaxBackups+1; i++ {
		writeFile(t, fmt.Sprintf("%s%s.2020010%d-000000.000", path, BackupSuffix, i), "old")
	}

	// When: taking a new backup
	newest, err := Backup(path)
	require.NoError(t, err)

	// Then: only MaxBackups remain and the new one is first
	list, err := ListBackups(path)
	require.NoError(t, err)
	require.Len(t, list, MaxBackups)
	assert.Equal(t, newest, list[0])
	assert.NoFileExists(t, path+BackupSuffix+".20200101-000000.000")
}

func TestListBackups_MissingDir(t *testing.T) {
	list, err := ListBackups(filepath.Join(t.TempDir(), "missing", "config.yaml"))

	require.NoError(t, err)
	assert.Empty(t, list)
}
