package preflight

// Blocker names the condition that keeps the process from creating files.
type Blocker string

const (
	// BlockerNone means file creation may proceed.
	BlockerNone Blocker = ""
	// BlockerSafeMode means the legacy safe_mode flag is on.
	BlockerSafeMode Blocker = "safe_mode is enabled"
	// BlockerIntrospection means posix_getpwuid is disabled, so ownership
	// cannot be inspected.
	BlockerIntrospection Blocker = "posix_getpwuid is disabled"
	// BlockerFolder means a temporary folder could not be created.
	BlockerFolder Blocker = "cannot create folders"
	// BlockerFile means a temporary file could not be created.
	BlockerFile Blocker = "cannot create files"
)

const (
	iniSafeMode         = "safe_mode"
	fnUserIntrospection = "posix_getpwuid"
)

// FilePermissionBlocker walks the file permission chain and returns the
// first condition that blocks file creation. The file probe only runs when
// the folder probe succeeded.
func FilePermissionBlocker(p Probe) Blocker {
	if p.ConfigFlag(iniSafeMode) {
		return BlockerSafeMode
	}
	if p.FunctionDisabled(fnUserIntrospection) {
		return BlockerIntrospection
	}
	if !p.CreateTempFolder() {
		return BlockerFolder
	}
	if !p.CreateTempFile() {
		return BlockerFile
	}
	return BlockerNone
}

// CheckFilePermissions returns true if file creation is blocked.
func CheckFilePermissions(p Probe) bool {
	return FilePermissionBlocker(p) != BlockerNone
}
