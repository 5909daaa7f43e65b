package hooks

import "context"

// gameThreadKey marks a context as originating from the host's single
// game thread. Go has no portable way to inspect "which goroutine is
// this", so the bridge relies on the host wrapping its game-loop context
// with WithGameThread once, and callers passing that same context (or a
// context.Context derived from it) down through packet handling.
type gameThreadKey struct{}

// WithGameThread returns a context marked as running on the game thread.
// The host's tick loop should call this exactly once per tick and thread
// the result through everything it invokes that turn.
func WithGameThread(ctx context.Context) context.Context {
	return context.WithValue(ctx, gameThreadKey{}, true)
}

// IsGameThread reports whether ctx was derived from WithGameThread.
func IsGameThread(ctx context.Context) bool {
	marked, _ := ctx.Value(gameThreadKey{}).(bool)
	return marked
}
