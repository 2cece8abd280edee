package probe

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/installcheck/internal/preflight"
)

func TestHost_EvaluatesBothVerdicts(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink probe needs privileges on windows")
	}

	// Given: a healthy snapshot whose temp dir is writable
	snap := testSnapshot()
	snap.TempDir = t.TempDir()
	snap.Functions = append(snap.Functions, "posix_getpwuid")
	snap.INI["suhosin.executor.include.whitelist"] = "phar"
	host := NewHost(snap, t.TempDir())

	// When: running both evaluators
	pm := preflight.EvaluatePackageManager(host, preflight.DefaultRequirements())
	rt := preflight.EvaluateRuntime(host, preflight.DefaultRequirements())

	// Then: both pass
	assert.True(t, pm.Verdict, "failed: %v", pm.Failed())
	assert.True(t, rt.Verdict, "failed: %v", rt.Failed())
	assert.Equal(t, snap.TempDir, host.TempDir())
}

func TestHost_RuntimeFailsOnOldVersion(t *testing.T) {
	snap := testSnapshot()
	snap.Version = "5.5.38"
	host := NewHost(snap, t.TempDir())

	rt := preflight.EvaluateRuntime(host, preflight.DefaultRequirements())

	assert.False(t, rt.Verdict)
	require.Len(t, rt.Results, 1)
	assert.Equal(t, preflight.CheckRuntimeVersion, rt.Results[0].Name)
}

func TestHost_PreReleaseRuntimeDoesNotMeetMinimum(t *testing.T) {
	// Given: a release candidate of the minimum runtime version
	snap := testSnapshot()
	snap.Version = "5.6.0"
	snap.FullVersion = "5.6.0RC1"
	host := NewHost(snap, t.TempDir())

	// When: evaluating against a 5.6.0 minimum
	rt := preflight.EvaluateRuntime(host, preflight.Requirements{RuntimeMinVersion: "5.6.0"})

	// Then: the chain stops at the version check
	assert.False(t, rt.Verdict)
	require.Len(t, rt.Results, 1)
	assert.Equal(t, preflight.CheckRuntimeVersion, rt.Results[0].Name)
	assert.Equal(t, "found 5.6.0RC1", rt.Results[0].Detail)
}
