package wrapper

// PlayerFacade wraps a single online player's host identity. Mods never
// hold the host engine's own player object; they hold one of these,
// resolved and memoized through a Cache[*PlayerFacade].
type PlayerFacade struct {
	id      string
	adapter HostAdapter
}

// NewPlayerCache returns a façade cache backed by adapter, suitable for
// passing to Cache.Resolve as mods request player façades by handle.
func NewPlayerCache(adapter HostAdapter) *Cache[*PlayerFacade] {
	return NewCache(func(h HostHandle) (*PlayerFacade, error) {
		return &PlayerFacade{id: h.HostID(), adapter: adapter}, nil
	})
}

// HostID returns the player's stable host identity (Identity operation).
func (p *PlayerFacade) HostID() string { return p.id }

// Name returns the player's current display name (Read operation).
func (p *PlayerFacade) Name() (string, error) {
	name, err := p.adapter.PlayerName(p.id)
	if err != nil {
		return "", &BridgeError{FacadeOp: "PlayerFacade.Name", HostClass: "Player", HostOp: "PlayerName", Cause: err}
	}
	return name, nil
}

// Health returns the player's current health (Read operation).
func (p *PlayerFacade) Health() (float64, error) {
	health, err := p.adapter.PlayerHealth(p.id)
	if err != nil {
		return 0, &BridgeError{FacadeOp: "PlayerFacade.Health", HostClass: "Player", HostOp: "PlayerHealth", Cause: err}
	}
	return health, nil
}

// SetHealth sets the player's health (Mutate operation; must run on the
// game thread).
func (p *PlayerFacade) SetHealth(value float64) error {
	if err := p.adapter.SetPlayerHealth(p.id, value); err != nil {
		return &BridgeError{FacadeOp: "PlayerFacade.SetHealth", HostClass: "Player", HostOp: "SetPlayerHealth", Cause: err}
	}
	return nil
}
