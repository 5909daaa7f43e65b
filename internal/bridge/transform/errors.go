package transform

import (
	"errors"
	"fmt"
)

// errTruncatedSwitch is returned while walking a method body whose
// tableswitch/lookupswitch/wide operands run past the end of the code
// array, and while parsing a Code attribute body that is itself cut
// short. Instruction-walk failures reach callers wrapped in CodeWalkError;
// a truncated Code attribute is returned unwrapped.
var errTruncatedSwitch = errors.New("truncated switch or wide instruction")

// CodeWalkError reports a failure to walk a method's instruction stream,
// almost always a malformed or unsupported bytecode sequence.
type CodeWalkError struct {
	Class      string
	Method     string
	Descriptor string
	Cause      error
}

func (e *CodeWalkError) Error() string {
	return fmt.Sprintf("transform: failed to walk %s.%s%s: %v", e.Class, e.Method, e.Descriptor, e.Cause)
}

func (e *CodeWalkError) Unwrap() error { return e.Cause }

// SiteConflictError reports two registered sites that cannot coexist.
type SiteConflictError struct {
	Reason string
}

func (e *SiteConflictError) Error() string {
	return fmt.Sprintf("transform: %s", e.Reason)
}

// AlreadyTransformedError is returned by RegisterSite once Transform has
// already run: the set of sites is frozen at first transformation (spec
// §4.5 "no new sites after first transform").
type AlreadyTransformedError struct{}

func (e *AlreadyTransformedError) Error() string {
	return "transform: cannot register a new site after transformation has started"
}

// BeforeCallTargetNotFoundError reports that an InjectionBeforeCall site's
// InvokedMethod was never found in the target method's constant-pool
// references.
type BeforeCallTargetNotFoundError struct {
	Class, Method, InvokedMethod string
}

func (e *BeforeCallTargetNotFoundError) Error() string {
	return fmt.Sprintf("transform: %s.%s never calls %s", e.Class, e.Method, e.InvokedMethod)
}
