package domain

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// VersionStatus is the result of comparing a detected version against a requirement.
type VersionStatus string

const (
	// VersionSatisfied indicates the detected version satisfies the requirement.
	VersionSatisfied VersionStatus = "Satisfied"
	// VersionUpgradeRequired indicates the detected version does not match the requirement.
	VersionUpgradeRequired VersionStatus = "UpgradeRequired"
	// VersionNotInstalled indicates no version was detected at all.
	VersionNotInstalled VersionStatus = "NotInstalled"
)

// Version is a dotted numeric version with an optional non-numeric build tag
// (e.g. "2.7.0+cu128"). Missing components default to zero, but the number of
// components the author actually wrote is retained: a requirement of "2.7"
// constrains only major and minor.
type Version struct {
	core      *semver.Version
	specified int
	build     string
	raw       string
}

// ParseVersion parses a version string such as "2.7", "2.7.0" or "2.7.0+cu128".
// Everything after the first character that is neither a digit nor a dot is
// treated as the build tag and excluded from numeric comparison.
func ParseVersion(s string) (Version, error) {
	raw := strings.TrimSpace(s)
	trimmed := strings.TrimPrefix(raw, "v")

	cut := len(trimmed)
	for i, r := range trimmed {
		if (r < '0' || r > '9') && r != '.' {
			cut = i
			break
		}
	}
	numeric := strings.Trim(trimmed[:cut], ".")
	build := strings.TrimLeft(trimmed[cut:], "+-_ ")

	if numeric == "" {
		return Version{}, zerr.With(ErrInvalidVersion, "input", s)
	}

	fields := strings.Split(numeric, ".")
	specified := len(fields)
	if specified > 3 {
		// Components beyond the patch level carry no comparison weight.
		fields = fields[:3]
		specified = 3
	}

	var parts [3]uint64
	for i, f := range fields {
		n, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return Version{}, zerr.With(zerr.Wrap(err, ErrInvalidVersion.Error()), "input", s)
		}
		parts[i] = n
	}

	return Version{
		core:      semver.New(parts[0], parts[1], parts[2], "", build),
		specified: specified,
		build:     build,
		raw:       raw,
	}, nil
}

// MustParseVersion is ParseVersion that panics on error. For tests and constants.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the original version string.
func (v Version) String() string { return v.raw }

// Build returns the non-numeric build tag, if any (e.g. "cu128").
func (v Version) Build() string { return v.build }

// Specified returns how many numeric components the original string carried (1..3).
func (v Version) Specified() int { return v.specified }

// Major returns the major component.
func (v Version) Major() uint64 { return v.core.Major() }

// Minor returns the minor component.
func (v Version) Minor() uint64 { return v.core.Minor() }

// Patch returns the patch component.
func (v Version) Patch() uint64 { return v.core.Patch() }

// IsZero reports whether v is the zero Version (never parsed).
func (v Version) IsZero() bool { return v.core == nil }

// Compare orders two versions numerically, ignoring build tags.
// It returns -1, 0 or 1.
func (v Version) Compare(o Version) int {
	return v.core.Compare(o.core)
}

// Satisfies reports whether v meets the requirement using token-wise prefix
// semantics: only the components the requirement actually specifies are
// compared, so "2.7.0" satisfies "2.7" while "2.70.1" does not.
func (v Version) Satisfies(required Version) bool {
	if v.Major() != required.Major() {
		return false
	}
	if required.specified >= 2 && v.Minor() != required.Minor() {
		return false
	}
	if required.specified >= 3 && v.Patch() != required.Patch() {
		return false
	}
	return true
}

// EvaluateVersion classifies a detected version against a requirement.
// A nil detected version means the import probe failed.
func EvaluateVersion(detected *Version, required Version) VersionStatus {
	if detected == nil || detected.IsZero() {
		return VersionNotInstalled
	}
	if detected.Satisfies(required) {
		return VersionSatisfied
	}
	return VersionUpgradeRequired
}
