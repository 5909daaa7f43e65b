// Package resolve implements the dependency resolver (spec §4.3): component
// C3. Given a candidate set and the host/loader versions, Resolve produces a
// topologically ordered load list or a ResolutionError enumerating every
// offending id (spec §7: "Message must enumerate all offending ids").
package resolve

import (
	"fmt"
	"strings"
)

// Violation is one failure surfaced by Resolve. Concrete types below mirror
// the taxonomy in spec §4.3 and §7 exactly.
type Violation interface {
	error
	violation()
}

// DuplicateID reports a candidate id declared by more than one archive.
type DuplicateID struct {
	ID    string
	Count int
}

func (e *DuplicateID) Error() string {
	return fmt.Sprintf("duplicate mod id %q declared by %d candidates", e.ID, e.Count)
}
func (*DuplicateID) violation() {}

// HostIncompatible reports a mod whose declared host or loader constraint
// rejects the running host/loader version.
type HostIncompatible struct {
	ModID      string
	ReservedID string // the reserved id that was checked: hostID or loaderID
	Constraint string
	Actual     string
}

func (e *HostIncompatible) Error() string {
	return fmt.Sprintf("mod %q requires %s %s, but actual is %s", e.ModID, e.ReservedID, e.Constraint, e.Actual)
}
func (*HostIncompatible) violation() {}

// MissingDependency reports a dependency id with no matching candidate.
type MissingDependency struct {
	RequestedBy string
	MissingID   string
	Constraint  string
}

func (e *MissingDependency) Error() string {
	return fmt.Sprintf("mod %q requires %q %s, but no such mod was found", e.RequestedBy, e.MissingID, e.Constraint)
}
func (*MissingDependency) violation() {}

// VersionMismatch reports a present dependency whose version does not
// satisfy the requesting mod's constraint.
type VersionMismatch struct {
	RequestedBy  string
	DependencyID string
	Constraint   string
	Actual       string
}

func (e *VersionMismatch) Error() string {
	return fmt.Sprintf("mod %q requires %q %s, but found version %s", e.RequestedBy, e.DependencyID, e.Constraint, e.Actual)
}
func (*VersionMismatch) violation() {}

// BreaksViolation reports a SPEC_FULL-supplemented "breaks" constraint
// (§ SPEC_FULL "soft/optional dependencies") matched by a present candidate.
type BreaksViolation struct {
	RequestedBy string
	BrokenID    string
	Constraint  string
	Actual      string
}

func (e *BreaksViolation) Error() string {
	return fmt.Sprintf("mod %q declares incompatibility with %q %s, but found version %s", e.RequestedBy, e.BrokenID, e.Constraint, e.Actual)
}
func (*BreaksViolation) violation() {}

// CircularDependency reports a cycle discovered during topological sort.
// Cycle is any one recovered rotation of the cycle's participant ids.
type CircularDependency struct {
	Cycle []string
}

func (e *CircularDependency) Error() string {
	return fmt.Sprintf("circular dependency detected: %s", strings.Join(e.Cycle, " -> "))
}
func (*CircularDependency) violation() {}

// ResolutionError aggregates every Violation found during one Resolve call.
// It is the single error type Resolve ever returns (spec §7: "a single
// diagnostic block naming the offending mod(s)").
type ResolutionError struct {
	Violations []Violation
}

func (e *ResolutionError) Error() string {
	if len(e.Violations) == 1 {
		return e.Violations[0].Error()
	}
	lines := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		lines[i] = v.Error()
	}
	return fmt.Sprintf("resolution failed with %d problems:\n  - %s", len(e.Violations), strings.Join(lines, "\n  - "))
}
