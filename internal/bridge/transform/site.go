// Package transform implements the runtime bridge's bytecode transformation
// layer (component C5, spec §4.5): mods declare TransformationSites against
// host classes/methods, and a Transformer weaves a call to each site's
// bridge method into the target, with a declared policy for how a
// cancellable bridge-method result is translated into host control flow.
package transform

// InjectionPoint names where in a target method a bridge call is spliced.
type InjectionPoint int

const (
	// InjectionEntry splices the bridge call as the first instruction of
	// the target method, before any of its original body runs.
	InjectionEntry InjectionPoint = iota
	// InjectionReturn splices the bridge call immediately before every
	// return instruction in the target method.
	InjectionReturn
	// InjectionBeforeCall splices the bridge call immediately before a
	// named invoke instruction inside the target method's body.
	InjectionBeforeCall
)

func (p InjectionPoint) String() string {
	switch p {
	case InjectionEntry:
		return "ENTRY"
	case InjectionReturn:
		return "RETURN"
	case InjectionBeforeCall:
		return "BEFORE_CALL"
	default:
		return "UNKNOWN"
	}
}

// CancellationPolicy says how the target method's control flow reacts to a
// cancellable bridge method's outcome (spec §4.5).
type CancellationPolicy int

const (
	// NonCancellable means the bridge call's return value is discarded;
	// the target method's original body always runs to completion.
	NonCancellable CancellationPolicy = iota
	// ReturnIfTrue means the target method returns immediately (with its
	// zero value, for non-void descriptors) if the bridge call returns
	// true.
	ReturnIfTrue
	// ReturnValueIfNonNull means the target method returns the bridge
	// call's result in place of its own, when that result is non-null.
	ReturnValueIfNonNull
)

func (p CancellationPolicy) String() string {
	switch p {
	case NonCancellable:
		return "NON_CANCELLABLE"
	case ReturnIfTrue:
		return "RETURN_IF_TRUE"
	case ReturnValueIfNonNull:
		return "RETURN_VALUE_IF_NON_NULL"
	default:
		return "UNKNOWN"
	}
}

// TransformationSite declares one weave point: a bridge method to invoke
// at InjectionPoint inside TargetClass.TargetMethod, and how a cancellable
// outcome should redirect the target's control flow.
type TransformationSite struct {
	DeclaringModID     string
	TargetClass        string
	TargetMethod       string
	TargetDescriptor   string
	InjectionPoint      InjectionPoint
	BridgeClass        string
	BridgeMethod       string
	CancellationPolicy CancellationPolicy
	// InvokedMethod is required when InjectionPoint is InjectionBeforeCall:
	// it names the method whose invoke instruction the bridge call is
	// spliced ahead of.
	InvokedMethod string
}

func (s TransformationSite) key() siteKey {
	return siteKey{class: s.TargetClass, method: s.TargetMethod, descriptor: s.TargetDescriptor}
}

type siteKey struct {
	class      string
	method     string
	descriptor string
}
