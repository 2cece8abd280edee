// Package version reports which installcheck build produced a report or a
// snapshot. Release builds stamp the values with -ldflags -X; everything
// else reports "dev".
package version

import (
	"fmt"
	"runtime"
)

// Version is the release tag, for example "v0.3.1":
// -X github.com/Aman-CERP/installcheck/pkg/version.Version=$(VERSION)
var Version = "dev"

var (
	// Commit is the short git hash the release was cut from.
	Commit = "unknown"

	// Date is the build time in RFC3339.
	Date = "unknown"

	// GoVersion is the toolchain that compiled the binary.
	GoVersion = runtime.Version()
)

// BuildInfo is the `installcheck version --json` document.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// String is the one-line banner printed by `installcheck version`.
func String() string {
	return fmt.Sprintf("installcheck %s (commit: %s, built: %s, go: %s, %s/%s)",
		Version, Commit, Date, GoVersion, runtime.GOOS, runtime.GOARCH)
}

// Short returns the release tag alone, for scripts that compare versions.
func Short() string {
	return Version
}

// GetInfo returns the build stamp with the platform installcheck runs on.
func GetInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
