package preflight

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-version"
)

// phpVersion picks the first dotted numeric run out of strings such as
// "7.4.3-1ubuntu4" or "bundled (2.1.0 compatible)", together with a PHP
// pre-release tag such as "RC1", "beta2" or "-dev" directly after it.
var phpVersion = regexp.MustCompile(`(\d+(?:\.\d+)*)(?:[-_.+]?(?i:(dev|alpha|a|beta|b|rc))\.?(\d*)(?:[^A-Za-z]|$))?`)

// preReleaseRank orders PHP pre-release tags: dev < alpha < beta < RC.
var preReleaseRank = map[string]int{
	"dev":   0,
	"alpha": 1,
	"a":     1,
	"beta":  2,
	"b":     2,
	"rc":    3,
}

// parseVersion turns a PHP version string into a comparable version. A
// pre-release tag sorts below its release, so "5.6.0RC1" < "5.6.0".
// Distribution suffixes like "-1ubuntu4" are ignored and count as the release.
func parseVersion(s string) (*version.Version, bool) {
	m := phpVersion.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}

	raw := m[1]
	if tag := strings.ToLower(m[2]); tag != "" {
		// The rank leads so go-version compares tags numerically.
		raw = fmt.Sprintf("%s-%d.%s", raw, preReleaseRank[tag], tag)
		if m[3] != "" {
			raw += "." + m[3]
		}
	}

	v, err := version.NewVersion(raw)
	if err != nil {
		return nil, false
	}
	return v, true
}

// VersionAtLeast reports whether actual >= minimum. Segments compare
// numerically, so "5.10.0" is newer than "5.3.4". Unparsable input never
// satisfies the requirement.
func VersionAtLeast(actual, minimum string) bool {
	a, ok := parseVersion(actual)
	if !ok {
		return false
	}
	m, ok := parseVersion(minimum)
	if !ok {
		return false
	}
	return a.GreaterThanOrEqual(m)
}

// VersionGreaterThan reports whether actual > minimum.
func VersionGreaterThan(actual, minimum string) bool {
	a, ok := parseVersion(actual)
	if !ok {
		return false
	}
	m, ok := parseVersion(minimum)
	if !ok {
		return false
	}
	return a.GreaterThan(m)
}

// ValidVersion reports whether s contains a comparable version.
func ValidVersion(s string) bool {
	_, ok := parseVersion(s)
	return ok
}
