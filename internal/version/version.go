// Package version resolves the semantic version reported by the CLI.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Parse strips a leading "v" and parses the version string.
func Parse(version string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return v, nil
}

// Resolve returns the version the CLI reports. A valid semver override
// (usually injected with -ldflags) wins over the packaged version. Placeholder
// overrides such as "dev" fall back to the packaged version, which is
// returned verbatim if it does not parse either.
func Resolve(override, packaged string) string {
	if v, err := Parse(override); err == nil {
		return v.String()
	}
	if v, err := Parse(packaged); err == nil {
		return v.String()
	}
	return packaged
}
