// Package hooks implements the bridge-method responsibilities woven into
// the host engine (component C5, spec §4.5): server lifecycle, the
// per-tick scheduler drive, player join/quit, packet handling, and
// block/entity mutation events. Every exported method here is the kind of
// thing a TransformationSite's BridgeMethod points at.
package hooks

import "github.com/alloy-modding/alloy-loader/internal/eventbus"

// ServerUpgradedEvent fires once, after the host server object has been
// upgraded with loader state (spec §4.5 "server lifecycle upgrade").
type ServerUpgradedEvent struct {
	eventbus.BaseEvent
}

func (ServerUpgradedEvent) Tag() string { return "server.upgraded" }

// ServerRevertedEvent fires once, when the loader detaches from a server
// instance (e.g. on shutdown or integrated-server world unload).
type ServerRevertedEvent struct {
	eventbus.BaseEvent
}

func (ServerRevertedEvent) Tag() string { return "server.reverted" }

// PlayerJoinEvent fires when a player completes login.
type PlayerJoinEvent struct {
	eventbus.BaseEvent
	PlayerID string
}

func (PlayerJoinEvent) Tag() string { return "player.join" }

// PlayerQuitEvent fires when a player disconnects.
type PlayerQuitEvent struct {
	eventbus.BaseEvent
	PlayerID string
}

func (PlayerQuitEvent) Tag() string { return "player.quit" }

// BlockBreakEvent fires before a block is removed from the world; it is
// cancellable (spec §4.5 "block/entity mutation events with cancellation
// policy application").
type BlockBreakEvent struct {
	eventbus.BaseEvent
	WorldID  string
	X, Y, Z  int
	PlayerID string
	BlockID  string
}

func (BlockBreakEvent) Tag() string { return "block.break" }

// EntityDamageEvent fires before damage is applied to an entity; it is
// cancellable.
type EntityDamageEvent struct {
	eventbus.BaseEvent
	EntityID string
	Amount   float64
}

func (EntityDamageEvent) Tag() string { return "entity.damage" }

// ContainerClickEvent fires when a player clicks a slot in a tracked
// custom inventory or custom menu instance (spec §4.5.2 "Custom inventory
// tracking"); it is cancellable. Handle is the open-inventory/open-menu
// bookkeeping handle the click landed on.
type ContainerClickEvent struct {
	eventbus.BaseEvent
	PlayerID string
	Handle   string
	Slot     int
	Button   int
}

func (ContainerClickEvent) Tag() string { return "container.click" }
