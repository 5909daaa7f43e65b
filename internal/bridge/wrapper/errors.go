package wrapper

import "fmt"

// BridgeError reports that a façade operation could not be carried out
// against the host engine, distinguishing which façade operation failed
// from which host-side call it was translated into.
type BridgeError struct {
	FacadeOp string
	HostClass string
	HostOp   string
	Cause    error
}

func (e *BridgeError) Error() string {
	return fmt.Sprintf("bridge: %s (host %s.%s): %v", e.FacadeOp, e.HostClass, e.HostOp, e.Cause)
}

func (e *BridgeError) Unwrap() error { return e.Cause }
