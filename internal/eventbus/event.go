// Package eventbus implements the typed publish/subscribe registry (spec
// §3, §4.4): component C4. Events are modeled as a tagged family per the
// design note in spec §9: each concrete event carries a dotted tag path
// ("block.break.natural"), and a subscription registered at any prefix of
// that path ("block", "block.break") is invoked for it — the Go stand-in
// for the "supertype" dispatch rule.
package eventbus

// Event is any value fired through the bus. Tag identifies the event's
// position in the tagged family: subscribers registered at Tag or at any
// dot-separated prefix of it receive the event.
type Event interface {
	Tag() string
}

// Cancellable is implemented by events that carry a mutable cancelled flag
// (spec §3). Handlers observe and set it through these methods rather than
// a public field, so MONITOR-priority handlers' writes can be discarded
// (spec §4.4).
type Cancellable interface {
	Event
	Cancelled() bool
	SetCancelled(bool)
}

// BaseEvent is an embeddable helper implementing Cancellable. Concrete event
// types that are cancellable embed it; non-cancellable events simply don't.
type BaseEvent struct {
	cancelled bool
}

// Cancelled reports whether a prior handler has cancelled this event.
func (b *BaseEvent) Cancelled() bool { return b.cancelled }

// SetCancelled sets the cancellation flag. Bus.Fire intercepts writes made
// by MONITOR-priority handlers and reverts them (spec §4.4 property 5).
func (b *BaseEvent) SetCancelled(c bool) { b.cancelled = c }
