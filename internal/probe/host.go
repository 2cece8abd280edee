package probe

import "github.com/Aman-CERP/installcheck/internal/preflight"

// Host answers preflight.Probe from a runtime snapshot and a working
// directory. Registry questions go to the snapshot, filesystem effects run
// as the current process.
type Host struct {
	*Snapshot
	*FS
}

var _ preflight.Probe = (*Host)(nil)

// NewHost combines a snapshot with filesystem probes in workDir.
func NewHost(snap *Snapshot, workDir string) *Host {
	return &Host{Snapshot: snap, FS: NewFS(workDir)}
}

// TempDir returns the runtime's temporary directory.
func (h *Host) TempDir() string {
	return h.Snapshot.RuntimeTempDir()
}
