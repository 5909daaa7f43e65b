// Package wrapper implements the runtime bridge's reflective façade layer
// (component C5, spec §4.5): typed, mod-facing wrappers over host engine
// objects the loader never constructs directly. Façades are resolved
// lazily and memoized by host identity, so two mods handed the "same"
// host object always see the same façade instance.
package wrapper

import "sync"

// HostHandle is the opaque identity of a host engine object (a player, a
// world, the server) that a façade wraps. The bridge never interprets
// HostID itself; it is whatever stable string the host adapter uses to
// name the object (an entity UUID, a world registry key, and so on).
type HostHandle interface {
	HostID() string
}

// Cache lazily constructs and memoizes façades of type T, keyed by the
// wrapped host object's identity. Concurrent Resolve calls for the same
// handle block on each other rather than racing to construct duplicate
// façades.
type Cache[T any] struct {
	mu       sync.Mutex
	resolved map[string]T
	resolve  func(HostHandle) (T, error)
}

// NewCache returns a Cache that builds a T via resolve the first time a
// given handle is seen, and returns the memoized value on every later
// call for that handle.
func NewCache[T any](resolve func(HostHandle) (T, error)) *Cache[T] {
	return &Cache[T]{resolved: make(map[string]T), resolve: resolve}
}

// Resolve returns the façade for handle, constructing and memoizing it on
// first use.
func (c *Cache[T]) Resolve(handle HostHandle) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.resolved[handle.HostID()]; ok {
		return existing, nil
	}

	built, err := c.resolve(handle)
	if err != nil {
		var zero T
		return zero, err
	}

	c.resolved[handle.HostID()] = built
	return built, nil
}

// Forget drops the memoized façade for handle, if any, so the next
// Resolve call rebuilds it. The bridge uses this when a host object's
// underlying identity is retired (a player disconnects, a world unloads)
// rather than on every tick.
func (c *Cache[T]) Forget(handle HostHandle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.resolved, handle.HostID())
}

// Len reports how many façades are currently memoized, for diagnostics.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.resolved)
}
