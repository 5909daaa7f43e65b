package version

import "fmt"

// InvalidVersionError is raised by Parse when the input does not match the
// grammar described in the package doc comment.
type InvalidVersionError struct {
	Input  string
	Reason string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Reason)
}

// InvalidConstraintError is raised by ParseConstraint.
type InvalidConstraintError struct {
	Input  string
	Reason string
}

func (e *InvalidConstraintError) Error() string {
	return fmt.Sprintf("invalid version constraint %q: %s", e.Input, e.Reason)
}
