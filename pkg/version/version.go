// Package version provides Thread version parsing and daemon build info.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Build information, set at build time via ldflags.
var (
	Version   = "0.1.0"
	BuildDate = "dev"
	GitCommit = "unknown"
)

// ThreadVersion represents a parsed Thread protocol version as advertised
// in a border agent's "tv" TXT record, e.g. "1.3.0".
type ThreadVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" or "major.minor.patch" version string. The
// patch component is accepted and discarded.
func Parse(s string) (ThreadVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 && len(parts) != 3 {
		return ThreadVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return ThreadVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return ThreadVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return ThreadVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

// String returns the version as "major.minor".
func (v ThreadVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
