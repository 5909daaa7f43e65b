package wrapper

// WorldFacade wraps a single loaded world/dimension.
type WorldFacade struct {
	id      string
	adapter HostAdapter
}

// NewWorldCache returns a façade cache backed by adapter.
func NewWorldCache(adapter HostAdapter) *Cache[*WorldFacade] {
	return NewCache(func(h HostHandle) (*WorldFacade, error) {
		return &WorldFacade{id: h.HostID(), adapter: adapter}, nil
	})
}

// HostID returns the world's stable host identity (Identity operation).
func (w *WorldFacade) HostID() string { return w.id }

// Name returns the world's registry name (Read operation).
func (w *WorldFacade) Name() (string, error) {
	name, err := w.adapter.WorldName(w.id)
	if err != nil {
		return "", &BridgeError{FacadeOp: "WorldFacade.Name", HostClass: "World", HostOp: "WorldName", Cause: err}
	}
	return name, nil
}

// BlockAt returns the block id at the given coordinates (Read operation).
func (w *WorldFacade) BlockAt(x, y, z int) (string, error) {
	block, err := w.adapter.BlockAt(w.id, x, y, z)
	if err != nil {
		return "", &BridgeError{FacadeOp: "WorldFacade.BlockAt", HostClass: "World", HostOp: "BlockAt", Cause: err}
	}
	return block, nil
}

// SetBlockAt sets the block id at the given coordinates (Mutate
// operation; must run on the game thread).
func (w *WorldFacade) SetBlockAt(x, y, z int, blockID string) error {
	if err := w.adapter.SetBlockAt(w.id, x, y, z, blockID); err != nil {
		return &BridgeError{FacadeOp: "WorldFacade.SetBlockAt", HostClass: "World", HostOp: "SetBlockAt", Cause: err}
	}
	return nil
}
