package preflight

import (
	"fmt"
)

// Runtime check names, in evaluation order. CheckRuntimeVersion is shared
// with the package manager profile.
const (
	CheckGraphics        = "graphics"
	CheckDOM             = "dom"
	CheckIntl            = "intl"
	CheckTempDirWritable = "temp_dir_writable"
	CheckSymlinkFunction = "symlink_function"
	CheckSymlinkCreation = "symlink_creation"
	CheckXMLReader       = "xml_reader"
)

// SymlinkProbeLink is the fixed path, relative to the probe work directory,
// where the symlink probe creates its link.
const SymlinkProbeLink = ".installcheck-symlink-test"

const (
	fnGDInfo     = "gd_info"
	fnSymlink    = "symlink"
	constGD      = "GD_VERSION"
	classImagick = "Imagick"
	classGmagick = "Gmagick"
	extDOM       = "dom"
	extIntl      = "intl"
	extXMLReader = "xmlreader"
)

// RuntimeChecks returns the application runtime checks in chain order.
func RuntimeChecks(req Requirements) []Check {
	req = req.withDefaults()

	return []Check{
		{
			Name:        CheckRuntimeVersion,
			Description: fmt.Sprintf("PHP %s or later", req.RuntimeMinVersion),
			Hint:        fmt.Sprintf("The application requires at least PHP %s.", req.RuntimeMinVersion),
			Run: func(p Probe) bool {
				return VersionAtLeast(p.RuntimeVersion(), req.RuntimeMinVersion)
			},
			Detail: func(p Probe) string {
				return "found " + p.RuntimeVersion()
			},
		},
		{
			Name:        CheckGraphics,
			Description: "GD, Imagick or Gmagick available",
			Hint:        fmt.Sprintf("Install GD newer than %s, Imagick or Gmagick.", req.GDMinVersion),
			Run: func(p Probe) bool {
				return graphicsBackend(p, req.GDMinVersion) != ""
			},
			Detail: func(p Probe) string {
				return graphicsBackend(p, req.GDMinVersion)
			},
		},
		{
			Name:        CheckDOM,
			Description: "DOM extension loaded",
			Hint:        "Enable the PHP DOM extension.",
			Run: func(p Probe) bool {
				return p.ExtensionLoaded(extDOM)
			},
		},
		{
			Name:        CheckIntl,
			Description: "intl extension loaded",
			Hint:        "Enable the PHP intl extension.",
			Run: func(p Probe) bool {
				return p.ExtensionLoaded(extIntl)
			},
		},
		{
			Name:        CheckTempDirWritable,
			Description: "system temp directory writable",
			Hint:        "Make the directory returned by sys_get_temp_dir() writable for the PHP process.",
			Run: func(p Probe) bool {
				dir := p.TempDir()
				return dir != "" && p.PathWritable(dir)
			},
			Detail: func(p Probe) string {
				return p.TempDir()
			},
		},
		{
			Name:        CheckSymlinkFunction,
			Description: "symlink() available",
			Hint:        "Remove symlink from disable_functions.",
			Run: func(p Probe) bool {
				return p.FunctionCallable(fnSymlink)
			},
		},
		{
			Name:        CheckSymlinkCreation,
			Description: "symlinks can be created",
			Hint:        "The file system or hosting policy does not allow symbolic links.",
			Run: func(p Probe) bool {
				return canCreateSymlink(p, req.SymlinkTarget)
			},
		},
		{
			Name:        CheckXMLReader,
			Description: "xmlreader extension loaded",
			Hint:        "Enable the PHP xmlreader extension.",
			Run: func(p Probe) bool {
				return p.ExtensionLoaded(extXMLReader)
			},
		},
	}
}

// EvaluateRuntime runs the runtime checks as a fail-fast chain.
func EvaluateRuntime(p Probe, req Requirements) Report {
	return Evaluate(p, FailFast, RuntimeChecks(req))
}

// graphicsBackend returns the first usable image library, or "" if none is.
func graphicsBackend(p Probe, gdMin string) string {
	if p.FunctionCallable(fnGDInfo) {
		if v, ok := p.Constant(constGD); ok && VersionGreaterThan(v, gdMin) {
			return "gd"
		}
	}
	if p.ClassAvailable(classImagick) {
		return "imagick"
	}
	if p.ClassAvailable(classGmagick) {
		return "gmagick"
	}
	return ""
}

// The link may be left over from an earlier run or may not exist at all,
// so both removals ignore their errors.
func canCreateSymlink(p Probe, target string) bool {
	_ = p.Remove(SymlinkProbeLink)
	ok := p.CreateSymlink(target, SymlinkProbeLink)
	_ = p.Remove(SymlinkProbeLink)
	return ok
}
