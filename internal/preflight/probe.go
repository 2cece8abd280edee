package preflight

// Probe answers primitive questions about the host runtime and filesystem.
//
// Implementations never fail. A question that cannot be answered is
// answered conservatively with false (or an empty value), so every check
// always produces a definite boolean.
type Probe interface {
	// RuntimeVersion returns the dotted runtime version, e.g. "8.2.12".
	RuntimeVersion() string
	// ExtensionLoaded reports whether the named extension is loaded.
	ExtensionLoaded(name string) bool
	// FunctionCallable reports whether the named function exists and is not disabled.
	FunctionCallable(name string) bool
	// FunctionDisabled reports whether the named function is disabled by policy.
	FunctionDisabled(name string) bool
	// ClassAvailable reports whether the named class is declared.
	ClassAvailable(name string) bool
	// Constant returns the string value of a runtime constant.
	Constant(name string) (string, bool)
	// ConfigValue returns a runtime configuration value. The boolean is false
	// when the directive is not registered at all.
	ConfigValue(name string) (string, bool)
	// ConfigFlag reports whether a configuration directive is enabled.
	ConfigFlag(name string) bool
	// TempDir returns the runtime's temporary directory.
	TempDir() string
	// PathWritable reports whether the process may write to path.
	PathWritable(path string) bool
	// CreateTempFolder creates and removes a uniquely named folder.
	CreateTempFolder() bool
	// CreateTempFile creates and removes a uniquely named file.
	CreateTempFile() bool
	// CreateSymlink creates link pointing at target.
	CreateSymlink(target, link string) bool
	// Remove deletes path. Callers probing for capabilities may ignore the error.
	Remove(path string) error
}
