package preflight

// Default version thresholds.
const (
	DefaultPackageManagerMinVersion = "5.3.4"
	DefaultRuntimeMinVersion        = "5.6.0"
	DefaultGDMinVersion             = "2.0.1"
)

// Requirements holds the tunable thresholds of both evaluators.
type Requirements struct {
	// PackageManagerMinVersion is the lowest runtime version Composer accepts.
	PackageManagerMinVersion string
	// RuntimeMinVersion is the lowest runtime version the application accepts.
	RuntimeMinVersion string
	// GDMinVersion must be strictly exceeded by the GD library version.
	GDMinVersion string
	// SymlinkTarget is what the symlink probe points at. Defaults to ".".
	SymlinkTarget string
}

// DefaultRequirements returns the stock thresholds.
func DefaultRequirements() Requirements {
	return Requirements{
		PackageManagerMinVersion: DefaultPackageManagerMinVersion,
		RuntimeMinVersion:        DefaultRuntimeMinVersion,
		GDMinVersion:             DefaultGDMinVersion,
	}
}

func (r Requirements) withDefaults() Requirements {
	def := DefaultRequirements()
	if r.PackageManagerMinVersion == "" {
		r.PackageManagerMinVersion = def.PackageManagerMinVersion
	}
	if r.RuntimeMinVersion == "" {
		r.RuntimeMinVersion = def.RuntimeMinVersion
	}
	if r.GDMinVersion == "" {
		r.GDMinVersion = def.GDMinVersion
	}
	if r.SymlinkTarget == "" {
		r.SymlinkTarget = "."
	}
	return r
}
