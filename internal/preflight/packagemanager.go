package preflight

import (
	"fmt"
	"slices"
	"strings"
)

// Package manager check names, in evaluation order.
const (
	CheckRuntimeVersion            = "runtime_version"
	CheckArchiveSupport            = "archive_support"
	CheckDeprecatedAccelerator     = "deprecated_accelerator"
	CheckHTTPClient                = "http_client"
	CheckLegacyCache               = "legacy_cache"
	CheckRestrictedExecutionPolicy = "restricted_execution_policy"
	CheckURLFopen                  = "url_fopen"
	CheckFileCreation              = "file_creation"

	CheckShellExecution  = "shell_execution"
	CheckProcessSpawning = "process_spawning"
)

const (
	extPhar    = "Phar"
	extXCache  = "XCache"
	extAPC     = "apc"
	extAPCu    = "apcu"
	fnCurlInit = "curl_init"
	fnShell    = "shell_exec"
	fnProcOpen = "proc_open"

	iniAllowURLFopen = "allow_url_fopen"

	// IniIncludeWhitelist is the Suhosin directive listing stream wrappers
	// that include/require may use.
	IniIncludeWhitelist = "suhosin.executor.include.whitelist"
)

// archiveAllowEntries are the allow-list spellings that grant the phar wrapper.
var archiveAllowEntries = []string{"phar", "phar://"}

// ParseAllowList splits a comma-separated allow-list and trims each entry.
func ParseAllowList(value string) []string {
	parts := strings.Split(value, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

// AllowsArchiveAccess reports whether an include allow-list permits the phar
// wrapper. Only exact entries count; "phar." or "phar-x" do not.
func AllowsArchiveAccess(value string) bool {
	for _, entry := range ParseAllowList(value) {
		if slices.Contains(archiveAllowEntries, entry) {
			return true
		}
	}
	return false
}

// PackageManagerChecks returns the Composer checks in evaluation order. The
// file_creation check reports the precomputed blocker instead of probing again.
func PackageManagerChecks(req Requirements, blocker Blocker) []Check {
	req = req.withDefaults()

	return []Check{
		{
			Name:        CheckRuntimeVersion,
			Description: fmt.Sprintf("PHP %s or later", req.PackageManagerMinVersion),
			Hint:        fmt.Sprintf("Composer requires at least PHP %s.", req.PackageManagerMinVersion),
			Run: func(p Probe) bool {
				return VersionAtLeast(p.RuntimeVersion(), req.PackageManagerMinVersion)
			},
			Detail: func(p Probe) string {
				return "found " + p.RuntimeVersion()
			},
		},
		{
			Name:        CheckArchiveSupport,
			Description: "Phar extension loaded",
			Hint:        "Enable the PHP Phar extension; Composer is distributed as a phar archive.",
			Run: func(p Probe) bool {
				return p.ExtensionLoaded(extPhar)
			},
		},
		{
			Name:        CheckDeprecatedAccelerator,
			Description: "XCache extension not loaded",
			Hint:        "Disable the XCache extension; it breaks phar archives.",
			FailsWhen:   true,
			Run: func(p Probe) bool {
				return p.ExtensionLoaded(extXCache)
			},
		},
		{
			Name:        CheckHTTPClient,
			Description: "cURL available",
			Hint:        "Enable the PHP cURL extension; Composer downloads packages over HTTP.",
			Run: func(p Probe) bool {
				return p.FunctionCallable(fnCurlInit)
			},
		},
		{
			Name:        CheckLegacyCache,
			Description: "APC without APCu not loaded",
			Hint:        "Replace the APC extension with APCu.",
			FailsWhen:   true,
			Run:         hasLegacyCache,
		},
		{
			Name:        CheckRestrictedExecutionPolicy,
			Description: "Suhosin allows phar includes",
			Hint:        `Add "phar" to ` + IniIncludeWhitelist + ".",
			FailsWhen:   true,
			Run:         hasRestrictedExecutionPolicy,
			Detail: func(p Probe) string {
				if value, ok := p.ConfigValue(IniIncludeWhitelist); ok {
					return IniIncludeWhitelist + " = " + value
				}
				return ""
			},
		},
		{
			Name:        CheckURLFopen,
			Description: "allow_url_fopen enabled",
			Hint:        "Set allow_url_fopen = On in php.ini.",
			Run: func(p Probe) bool {
				return p.ConfigFlag(iniAllowURLFopen)
			},
		},
		{
			Name:        CheckFileCreation,
			Description: "PHP process can create files",
			Hint:        "The PHP process must be allowed to create files and folders in the installation directory.",
			Run: func(Probe) bool {
				return blocker == BlockerNone
			},
			Detail: func(Probe) string {
				return string(blocker)
			},
		},
		{
			Name:          CheckShellExecution,
			Description:   "shell_exec available",
			Informational: true,
			Run: func(p Probe) bool {
				return p.FunctionCallable(fnShell)
			},
		},
		{
			Name:          CheckProcessSpawning,
			Description:   "proc_open available",
			Informational: true,
			Run: func(p Probe) bool {
				return p.FunctionCallable(fnProcOpen)
			},
		},
	}
}

// EvaluatePackageManager runs the Composer checks with the accumulate-all
// policy. The file permission chain runs once, before the first check.
func EvaluatePackageManager(p Probe, req Requirements) Report {
	blocker := FilePermissionBlocker(p)
	return Evaluate(p, AccumulateAll, PackageManagerChecks(req, blocker))
}

// APCu replaces APC, so APC alone is the problem.
func hasLegacyCache(p Probe) bool {
	return p.ExtensionLoaded(extAPC) && !p.ExtensionLoaded(extAPCu)
}

func hasRestrictedExecutionPolicy(p Probe) bool {
	value, ok := p.ConfigValue(IniIncludeWhitelist)
	if !ok {
		return false
	}
	return !AllowsArchiveAccess(value)
}
