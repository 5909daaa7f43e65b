// Package version implements the semantic version algebra (major.minor.patch)
// that the loader uses to compare mod, host and loader versions.
//
// The grammar is intentionally narrower than full SemVer: a version is three
// non-negative integer components, with an optional leading "v" tolerated on
// parse. There is no prerelease or build metadata; this keeps comparisons a
// pure tuple order, which the dependency resolver in internal/resolve relies
// on for determinism.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// SemanticVersion is an immutable (major, minor, patch) triple.
type SemanticVersion struct {
	Major, Minor, Patch int
}

// Ordering is the result of comparing two versions.
type Ordering int

const (
	Less Ordering = iota - 1
	Equal
	Greater
)

// Parse parses s into a SemanticVersion.
//
// One optional leading "v" is stripped. The remainder is split on ".";
// between one and three parts are accepted, each a non-empty run of decimal
// digits. Missing trailing components default to zero.
func Parse(s string) (SemanticVersion, error) {
	original := s
	s = strings.TrimSpace(s)
	if s == "" {
		return SemanticVersion{}, &InvalidVersionError{Input: original, Reason: "empty version string"}
	}
	s = strings.TrimPrefix(s, "v")
	if s == "" {
		return SemanticVersion{}, &InvalidVersionError{Input: original, Reason: "empty version string after stripping 'v'"}
	}

	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return SemanticVersion{}, &InvalidVersionError{Input: original, Reason: "more than three version components"}
	}

	var comps [3]int
	for i, p := range parts {
		if p == "" {
			return SemanticVersion{}, &InvalidVersionError{Input: original, Reason: "empty version component"}
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return SemanticVersion{}, &InvalidVersionError{Input: original, Reason: fmt.Sprintf("non-numeric version component %q", p)}
			}
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return SemanticVersion{}, &InvalidVersionError{Input: original, Reason: fmt.Sprintf("version component %q overflows", p)}
		}
		comps[i] = n
	}

	return SemanticVersion{Major: comps[0], Minor: comps[1], Patch: comps[2]}, nil
}

// MustParse parses s and panics on failure. Intended for tests and
// compile-time-known constants, never for manifest-derived input.
func MustParse(s string) SemanticVersion {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String renders the version back as "major.minor.patch".
func (v SemanticVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// canonical renders v the way golang.org/x/mod/semver expects: a leading
// "v" and exactly major.minor.patch, never any prerelease or build
// metadata since the grammar above forbids both.
func (v SemanticVersion) canonical() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns the tuple-order relation of v to other, delegating the
// actual comparison to golang.org/x/mod/semver rather than hand-rolling
// integer tuple comparison.
func (v SemanticVersion) Compare(other SemanticVersion) Ordering {
	switch semver.Compare(v.canonical(), other.canonical()) {
	case -1:
		return Less
	case 1:
		return Greater
	default:
		return Equal
	}
}

// Less reports whether v sorts strictly before other.
func (v SemanticVersion) Less(other SemanticVersion) bool { return v.Compare(other) == Less }

// Equals reports whether v and other are tuple-equal.
func (v SemanticVersion) Equals(other SemanticVersion) bool { return v.Compare(other) == Equal }
