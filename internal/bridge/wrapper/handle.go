package wrapper

// handle is the trivial HostHandle implementation façades themselves use
// internally: a bare string identity.
type handle string

func (h handle) HostID() string { return string(h) }

// Handle wraps a raw host identity string as a HostHandle, for callers
// (hooks, commands) that only have the id, not an existing façade.
func Handle(id string) HostHandle { return handle(id) }
