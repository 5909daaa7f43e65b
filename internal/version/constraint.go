package version

import "strings"

// ConstraintKind enumerates the recognized constraint shapes from spec §3.
type ConstraintKind int

const (
	Any ConstraintKind = iota
	EqualsKind
	Gte
	Gt
	Lte
	Lt
	Caret
	Tilde
)

// VersionConstraint is one parsed dependency-version requirement.
// The zero value has Kind Any and so is satisfied by every version, the
// same constraint AnyConstraint returns; other kinds come from
// ParseConstraint or a composite literal.
type VersionConstraint struct {
	Kind    ConstraintKind
	Version SemanticVersion
}

// AnyConstraint returns the "*" constraint, satisfied by every version.
func AnyConstraint() VersionConstraint { return VersionConstraint{Kind: Any} }

// orderedPrefixes must be checked in this order: ">=", "<=" need to be
// tested before their single-character prefixes ">", "<" or the shorter
// prefix would swallow the "=" and misparse the version.
var orderedPrefixes = []struct {
	prefix string
	kind   ConstraintKind
}{
	{">=", Gte},
	{"<=", Lte},
	{">", Gt},
	{"<", Lt},
	{"^", Caret},
	{"~", Tilde},
	{"=", EqualsKind},
}

// ParseConstraint parses a dependency version-constraint string per spec §4.1:
// recognized prefixes in order ">=", "<=", ">", "<", "^", "~", "="; the bare
// literal "*" or the empty string yields Any; anything else is treated as an
// equality version (no prefix).
func ParseConstraint(s string) (VersionConstraint, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == "*" {
		return AnyConstraint(), nil
	}

	for _, p := range orderedPrefixes {
		if strings.HasPrefix(trimmed, p.prefix) {
			rest := strings.TrimSpace(trimmed[len(p.prefix):])
			v, err := Parse(rest)
			if err != nil {
				return VersionConstraint{}, &InvalidConstraintError{Input: s, Reason: err.Error()}
			}
			return VersionConstraint{Kind: p.kind, Version: v}, nil
		}
	}

	// No recognized prefix: treat the remainder as an equality version.
	v, err := Parse(trimmed)
	if err != nil {
		return VersionConstraint{}, &InvalidConstraintError{Input: s, Reason: err.Error()}
	}
	return VersionConstraint{Kind: EqualsKind, Version: v}, nil
}

// Satisfies reports whether version satisfies c, per spec §3:
//   - Any: always true
//   - Equals/Gte/Gt/Lte/Lt: plain tuple-order comparisons
//   - Caret: same major, version >= c.Version
//   - Tilde: same major and minor, version >= c.Version
func Satisfies(v SemanticVersion, c VersionConstraint) bool {
	switch c.Kind {
	case Any:
		return true
	case EqualsKind:
		return v.Equals(c.Version)
	case Gte:
		return v.Compare(c.Version) != Less
	case Gt:
		return v.Compare(c.Version) == Greater
	case Lte:
		return v.Compare(c.Version) != Greater
	case Lt:
		return v.Compare(c.Version) == Less
	case Caret:
		return v.Major == c.Version.Major && v.Compare(c.Version) != Less
	case Tilde:
		return v.Major == c.Version.Major && v.Minor == c.Version.Minor && v.Compare(c.Version) != Less
	default:
		return false
	}
}

// Satisfies is a convenience method mirroring the free function above.
func (c VersionConstraint) Satisfies(v SemanticVersion) bool { return Satisfies(v, c) }

// String renders c back to its canonical textual form.
func (c VersionConstraint) String() string {
	switch c.Kind {
	case Any:
		return "*"
	case Gte:
		return ">=" + c.Version.String()
	case Gt:
		return ">" + c.Version.String()
	case Lte:
		return "<=" + c.Version.String()
	case Lt:
		return "<" + c.Version.String()
	case Caret:
		return "^" + c.Version.String()
	case Tilde:
		return "~" + c.Version.String()
	default:
		return c.Version.String()
	}
}
