package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/installcheck/internal/probe"
)

// isolate runs the test in an empty directory with no user config, no
// overrides and colors off.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	for _, name := range []string{
		"INSTALLCHECK_PHP_BINARY", "INSTALLCHECK_TIMEOUT", "INSTALLCHECK_PARALLELISM",
		"INSTALLCHECK_WORK_DIR", "INSTALLCHECK_PM_MIN_VERSION", "INSTALLCHECK_RUNTIME_MIN_VERSION",
		"INSTALLCHECK_EVALUATORS", "INSTALLCHECK_LOG_LEVEL",
	} {
		t.Setenv(name, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

// healthySnapshot satisfies every package-manager and runtime check.
func healthySnapshot(t *testing.T) *probe.Snapshot {
	t.Helper()
	return &probe.Snapshot{
		Binary:     "/usr/bin/php8.2",
		Version:    "8.2.12",
		Extensions: []string{"Core", "Phar", "curl", "gd", "dom", "intl", "xmlreader", "posix"},
		Functions:  []string{"curl_init", "shell_exec", "proc_open", "symlink", "gd_info", "posix_getpwuid"},
		Classes:    []string{"Phar", "DOMDocument", "XMLReader"},
		Constants:  map[string]string{"GD_VERSION": "2.3.3"},
		INI:        map[string]string{"allow_url_fopen": "1"},
		TempDir:    t.TempDir(),
	}
}

func writeSnapshot(t *testing.T, snap *probe.Snapshot) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "php.yaml")
	require.NoError(t, snap.WriteYAML(path))
	return path
}

func execute(args ...string) (string, string, error) {
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
