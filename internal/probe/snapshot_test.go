package probe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierrors "github.com/Aman-CERP/installcheck/internal/errors"
	"github.com/Aman-CERP/installcheck/internal/preflight"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Version:    "8.2.12",
		Extensions: []string{"Core", "Phar", "curl", "gd", "dom", "intl", "xmlreader"},
		Functions:  []string{"curl_init", "shell_exec", "proc_open", "symlink", "exec", "gd_info"},
		Classes:    []string{"Phar", "XMLReader", "DOMDocument"},
		Constants:  map[string]string{"GD_VERSION": "2.3.3", "PHP_OS": "Linux"},
		INI: map[string]string{
			"allow_url_fopen":   "1",
			"safe_mode":         "",
			"disable_functions": "exec, passthru",
			"memory_limit":      "128M",
		},
		TempDir: "/tmp",
	}
}

func TestSnapshot_Lookups_AreCaseInsensitive(t *testing.T) {
	snap := testSnapshot()

	assert.Equal(t, "8.2.12", snap.RuntimeVersion())
	assert.True(t, snap.ExtensionLoaded("phar"))
	assert.True(t, snap.ExtensionLoaded("XMLReader"))
	assert.False(t, snap.ExtensionLoaded("xcache"))
	assert.True(t, snap.ClassAvailable("domdocument"))
	assert.False(t, snap.ClassAvailable("Imagick"))
}

func TestSnapshot_RuntimeVersion_PrefersFullVersion(t *testing.T) {
	// Given: a release candidate runtime
	snap := testSnapshot()
	snap.Version = "5.6.0"
	snap.FullVersion = "5.6.0RC1"

	// Then: the pre-release tag is visible to version checks
	assert.Equal(t, "5.6.0RC1", snap.RuntimeVersion())
	assert.False(t, preflight.VersionAtLeast(snap.RuntimeVersion(), "5.6.0"))

	// And: snapshots without PHP_VERSION fall back to the release version
	snap.FullVersion = ""
	assert.Equal(t, "5.6.0", snap.RuntimeVersion())
}

func TestSnapshot_DisabledFunctions(t *testing.T) {
	// Given: exec is defined but listed in disable_functions
	snap := testSnapshot()
	snap.INI["suhosin.executor.func.blacklist"] = "Shell_Exec"

	// Then: disabled functions are not callable
	assert.True(t, snap.FunctionDisabled("exec"))
	assert.True(t, snap.FunctionDisabled("passthru"))
	assert.True(t, snap.FunctionDisabled("shell_exec"))
	assert.False(t, snap.FunctionCallable("exec"))
	assert.False(t, snap.FunctionCallable("shell_exec"))
	assert.True(t, snap.FunctionCallable("curl_init"))
	assert.False(t, snap.FunctionCallable("passthru"), "disabled and undefined")
	assert.False(t, snap.FunctionCallable("apc_fetch"))
}

func TestSnapshot_ConfigFlag(t *testing.T) {
	snap := testSnapshot()
	snap.INI["display_errors"] = "0"
	snap.INI["short_open_tag"] = "1"
	snap.INI["html_errors"] = "Off"

	assert.True(t, snap.ConfigFlag("allow_url_fopen"))
	assert.True(t, snap.ConfigFlag("short_open_tag"))
	assert.False(t, snap.ConfigFlag("safe_mode"))
	assert.False(t, snap.ConfigFlag("display_errors"))
	assert.False(t, snap.ConfigFlag("not_registered"))
	// A non-empty string other than "0" is truthy in PHP.
	assert.True(t, snap.ConfigFlag("html_errors"))

	v, ok := snap.ConfigValue("memory_limit")
	assert.True(t, ok)
	assert.Equal(t, "128M", v)
	_, ok = snap.ConfigValue("suhosin.executor.include.whitelist")
	assert.False(t, ok)

	gd, ok := snap.Constant("GD_VERSION")
	assert.True(t, ok)
	assert.Equal(t, "2.3.3", gd)
}

func TestDecodeSnapshot_IgnoresSurroundingNoise(t *testing.T) {
	// Given: runtime output with a startup warning before the JSON
	out := []byte("PHP Warning:  Module 'x' already loaded in Unknown on line 0\n" +
		`{"version":"7.4.33","extensions":["Core"],"functions":[],"classes":[],"constants":{},"ini":{"safe_mode":null},"temp_dir":"/tmp"}`)

	// When: decoding
	snap, err := DecodeSnapshot(out)

	// Then: the snapshot is parsed and null ini values become empty
	require.NoError(t, err)
	assert.Equal(t, "7.4.33", snap.Version)
	v, ok := snap.ConfigValue("safe_mode")
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestDecodeSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no object", "Segmentation fault"},
		{"broken json", `{"version": "8.1.0",`},
		{"truncated", `{"version": }`},
		{"missing version", `{"extensions": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSnapshot([]byte(tt.data))
			require.Error(t, err)
			assert.Equal(t, ierrors.ErrCodeSnapshotDecode, ierrors.GetCode(err))
		})
	}
}

func TestSnapshot_WriteAndLoadYAML(t *testing.T) {
	// Given: a snapshot written to disk
	path := filepath.Join(t.TempDir(), "php.yaml")
	orig := testSnapshot()
	orig.Binary = "/usr/bin/php8.2"
	require.NoError(t, orig.WriteYAML(path))

	// When: loading it back
	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)

	// Then: lookups behave the same
	assert.Equal(t, orig.Binary, loaded.Binary)
	assert.Equal(t, orig.Version, loaded.Version)
	assert.True(t, loaded.ExtensionLoaded("phar"))
	assert.True(t, loaded.FunctionDisabled("exec"))
	assert.Equal(t, "/tmp", loaded.RuntimeTempDir())
}

func TestLoadSnapshot_AcceptsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "php.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": "5.6.40", "extensions": ["Phar"]}`), 0o644))

	snap, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, "5.6.40", snap.Version)
	assert.True(t, snap.ExtensionLoaded("phar"))
}

func TestLoadSnapshot_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadSnapshot(filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, ierrors.ErrCodeFileNotFound, ierrors.GetCode(err))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("version: [unclosed"), 0o644))
	_, err = LoadSnapshot(bad)
	assert.Equal(t, ierrors.ErrCodeSnapshotDecode, ierrors.GetCode(err))

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("extensions: [Core]\n"), 0o644))
	_, err = LoadSnapshot(empty)
	assert.Equal(t, ierrors.ErrCodeSnapshotDecode, ierrors.GetCode(err))
}

func TestSnapshot_WriteYAML_BadPath(t *testing.T) {
	err := testSnapshot().WriteYAML(filepath.Join(t.TempDir(), "missing", "dir", "php.yaml"))
	assert.Equal(t, ierrors.ErrCodeSnapshotWrite, ierrors.GetCode(err))
}
