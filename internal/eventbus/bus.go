package eventbus

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/alloy-modding/alloy-loader/internal/logging"
)

// Bus is a synchronous, priority-ordered, tag-prefix-dispatching event bus.
// It is safe for concurrent Register/Unregister/Fire calls from any
// goroutine (spec §5), though handlers that touch host world state remain
// responsible for hopping back to the game thread themselves.
type Bus struct {
	mu   sync.RWMutex
	tags map[string][]*entry // registration tag -> subscriptions, insertion order
	seq  uint64
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{tags: make(map[string][]*entry)}
}

// handlerIdentity returns a stable, comparable identity for a Handler value,
// used to dedupe repeat registrations and to locate a handler on Unregister.
// Handler is a func value; Go func values are only comparable to nil, so we
// fall back to the underlying code pointer via reflect, the conventional
// technique for treating function values as map keys.
func handlerIdentity(h Handler) uintptr {
	return reflect.ValueOf(h).Pointer()
}

// Register adds a subscription for eventTag (an exact tag or a prefix of
// the tag family, spec §9) at the given priority. Re-registering the same
// (eventTag, handler) pair is a no-op (spec §4.4 idempotence).
func (b *Bus) Register(eventTag string, handler Handler, priority Priority, ignoreCancelled bool, declaringModID string) {
	if handler == nil {
		return
	}
	key := handlerIdentity(handler)

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, e := range b.tags[eventTag] {
		if e.key == key {
			return // already registered: idempotent
		}
	}

	b.seq++
	b.tags[eventTag] = append(b.tags[eventTag], &entry{
		sub: Subscription{
			Handler:         handler,
			Priority:        priority,
			IgnoreCancelled: ignoreCancelled,
			DeclaringModID:  declaringModID,
		},
		handler: handler,
		key:     key,
		seq:     b.seq,
	})
}

// Unregister removes a prior registration for (eventTag, handler); a no-op
// if no such registration exists.
func (b *Bus) Unregister(eventTag string, handler Handler) {
	if handler == nil {
		return
	}
	key := handlerIdentity(handler)

	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.tags[eventTag]
	for i, e := range entries {
		if e.key == key {
			b.tags[eventTag] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

// UnregisterAll removes every subscription owned by owner, across every
// registered tag.
func (b *Bus) UnregisterAll(owner string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for tag, entries := range b.tags {
		filtered := entries[:0:0]
		for _, e := range entries {
			if e.sub.DeclaringModID != owner {
				filtered = append(filtered, e)
			}
		}
		if len(filtered) == 0 {
			delete(b.tags, tag)
		} else {
			b.tags[tag] = filtered
		}
	}
}

// Fire synchronously dispatches event to every subscriber registered at
// event.Tag() or at any dot-separated prefix of it, in priority order
// (LOWEST..HIGHEST, then MONITOR), breaking ties by registration order
// (spec §4.4, §8 property 3).
//
// Fire snapshots the matching subscriber list before invoking any handler,
// so registrations/unregistrations made by a re-entrant handler never
// perturb the dispatch in progress (spec §4.4 "Re-entrancy").
func (b *Bus) Fire(event Event) Event {
	snapshot := b.snapshotFor(event.Tag())
	sort.SliceStable(snapshot, func(i, j int) bool {
		if snapshot[i].sub.Priority != snapshot[j].sub.Priority {
			return snapshot[i].sub.Priority < snapshot[j].sub.Priority
		}
		return snapshot[i].seq < snapshot[j].seq
	})

	cancellable, isCancellable := event.(Cancellable)

	for _, e := range snapshot {
		if isCancellable && cancellable.Cancelled() && e.sub.IgnoreCancelled {
			continue
		}

		var preState bool
		if isCancellable && e.sub.Priority == Monitor {
			preState = cancellable.Cancelled()
		}

		invoke(e.sub.Handler, event, e.sub.DeclaringModID)

		if isCancellable && e.sub.Priority == Monitor {
			// MONITOR handlers observe only; discard any mutation they made.
			cancellable.SetCancelled(preState)
		}
	}

	return event
}

// invoke calls handler with event, isolating the bus from a panicking
// handler (spec §4.4 "Exception isolation"): the panic is recovered,
// attributed to owner, logged, and dispatch continues with the next
// handler.
func invoke(handler Handler, event Event, owner string) {
	defer func() {
		if r := recover(); r != nil {
			logging.Errorf("EventBus: handler owned by %q panicked while handling %q: %v", owner, event.Tag(), r)
		}
	}()
	handler(event)
}

// snapshotFor collects every subscription registered at tag or at a
// dot-separated prefix of tag, copying the underlying slices so later
// mutation of b.tags cannot affect the returned snapshot.
func (b *Bus) snapshotFor(tag string) []*entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []*entry
	for _, prefix := range prefixesOf(tag) {
		out = append(out, b.tags[prefix]...)
	}
	return out
}

// prefixesOf returns every dot-separated prefix of tag, including tag
// itself: prefixesOf("block.break.natural") == ["block", "block.break",
// "block.break.natural"].
func prefixesOf(tag string) []string {
	parts := strings.Split(tag, ".")
	prefixes := make([]string, 0, len(parts))
	for i := range parts {
		prefixes = append(prefixes, strings.Join(parts[:i+1], "."))
	}
	return prefixes
}
