package hooks

import (
	"context"
	"sync"

	"github.com/alloy-modding/alloy-loader/internal/bridge/wrapper"
	"github.com/alloy-modding/alloy-loader/internal/eventbus"
	"github.com/alloy-modding/alloy-loader/internal/logging"
	"github.com/alloy-modding/alloy-loader/internal/scheduler"
)

// Context is the live state the runtime bridge threads through every
// woven bridge method call: the event bus mods subscribe to, the
// scheduler driving runLater/runPeriodic/runAsync, façade caches, and the
// bookkeeping maps the loader design note calls for keeping off of
// ambient globals (open inventories, the upgraded-server flag).
type Context struct {
	Bus       *eventbus.Bus
	Scheduler *scheduler.Scheduler
	Players   *wrapper.Cache[*wrapper.PlayerFacade]
	Worlds    *wrapper.Cache[*wrapper.WorldFacade]
	Server    *wrapper.ServerFacade

	mu            sync.Mutex
	serverUpgraded bool
	openInventories map[string]string // playerID -> inventory handle id
	openMenus       map[string]string // playerID -> menu handle id
}

// NewContext builds a bridge Context around adapter, wiring up façade
// caches and a fresh scheduler with the given async concurrency limit.
func NewContext(adapter wrapper.HostAdapter, asyncConcurrency int) *Context {
	return &Context{
		Bus:             eventbus.New(),
		Scheduler:       scheduler.New(asyncConcurrency),
		Players:         wrapper.NewPlayerCache(adapter),
		Worlds:          wrapper.NewWorldCache(adapter),
		Server:          wrapper.NewServerFacade(adapter),
		openInventories: make(map[string]string),
		openMenus:       make(map[string]string),
	}
}

// UpgradeServer marks the host server as upgraded and fires
// ServerUpgradedEvent; calling it again is a no-op (spec §4.5: the
// upgrade happens once per server instance).
func (c *Context) UpgradeServer() {
	c.mu.Lock()
	if c.serverUpgraded {
		c.mu.Unlock()
		return
	}
	c.serverUpgraded = true
	c.mu.Unlock()

	c.Bus.Fire(&ServerUpgradedEvent{})
}

// RevertServer clears the upgraded flag and the open-inventory/open-menu
// bookkeeping, and fires ServerRevertedEvent; the memoized façades in
// Players and Worlds are left in place. Called at shutdown or integrated-server
// world unload; there is no hot-reload path back into an upgraded state
// (spec non-goal).
func (c *Context) RevertServer() {
	c.mu.Lock()
	if !c.serverUpgraded {
		c.mu.Unlock()
		return
	}
	c.serverUpgraded = false
	c.openInventories = make(map[string]string)
	c.openMenus = make(map[string]string)
	c.mu.Unlock()

	c.Bus.Fire(&ServerRevertedEvent{})
}

// IsServerUpgraded reports whether UpgradeServer has run since the last
// RevertServer.
func (c *Context) IsServerUpgraded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serverUpgraded
}

// Tick drives the scheduler and should be woven into the host's main game
// loop once per tick, inside a WithGameThread-marked context.
func (c *Context) Tick() {
	c.Scheduler.Tick()
}

// PlayerJoin fires PlayerJoinEvent for a newly logged-in player.
func (c *Context) PlayerJoin(playerID string) {
	c.Bus.Fire(&PlayerJoinEvent{PlayerID: playerID})
}

// PlayerQuit fires PlayerQuitEvent and forgets the player's memoized
// façade and any open-inventory/menu bookkeeping, since the host's player
// object is about to become invalid.
func (c *Context) PlayerQuit(playerID string) {
	c.Bus.Fire(&PlayerQuitEvent{PlayerID: playerID})
	c.Players.Forget(wrapper.Handle(playerID))

	c.mu.Lock()
	delete(c.openInventories, playerID)
	delete(c.openMenus, playerID)
	c.mu.Unlock()
}

// PacketHandler processes one inbound packet. Off the game thread (the
// common case: packets arrive on I/O threads) it defers the real work to
// the next tick via runLater rather than touching host state directly;
// on the game thread it runs handle inline.
func (c *Context) PacketHandler(ctx context.Context, handle func()) {
	if IsGameThread(ctx) {
		handle()
		return
	}
	c.Scheduler.RunLater(0, handle)
}

// BlockBreak fires BlockBreakEvent and reports whether the break was
// cancelled by a handler.
func (c *Context) BlockBreak(worldID string, x, y, z int, playerID, blockID string) bool {
	ev := &BlockBreakEvent{WorldID: worldID, X: x, Y: y, Z: z, PlayerID: playerID, BlockID: blockID}
	result := c.Bus.Fire(ev)
	return result.(eventbus.Cancellable).Cancelled()
}

// EntityDamage fires EntityDamageEvent and reports whether the damage was
// cancelled by a handler.
func (c *Context) EntityDamage(entityID string, amount float64) bool {
	ev := &EntityDamageEvent{EntityID: entityID, Amount: amount}
	result := c.Bus.Fire(ev)
	return result.(eventbus.Cancellable).Cancelled()
}

// OpenInventory records that playerID has inventoryHandle open, so later
// bridge calls (and mods) can look up what a player is currently viewing
// without reaching into host UI internals.
func (c *Context) OpenInventory(playerID, inventoryHandle string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openInventories[playerID] = inventoryHandle
	logging.Debugf("bridge: player %s opened inventory %s", playerID, inventoryHandle)
}

// CloseInventory clears playerID's open-inventory bookkeeping.
func (c *Context) CloseInventory(playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.openInventories, playerID)
}

// OpenInventoryOf reports the inventory handle playerID currently has
// open, if any.
func (c *Context) OpenInventoryOf(playerID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.openInventories[playerID]
	return h, ok
}

// OpenMenu records that playerID has a custom menu open.
func (c *Context) OpenMenu(playerID, menuHandle string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openMenus[playerID] = menuHandle
}

// CloseMenu clears playerID's open-menu bookkeeping.
func (c *Context) CloseMenu(playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.openMenus, playerID)
}

// OpenMenuOf reports the menu handle playerID currently has open, if any.
func (c *Context) OpenMenuOf(playerID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.openMenus[playerID]
	return h, ok
}

// ContainerClick is the container-click packet bridge (spec §4.5.2
// "Custom inventory tracking"). It consults the open-inventory/open-menu
// bookkeeping for playerID; if neither map has an entry the click landed
// in a plain vanilla container the loader has no stake in, and
// ContainerClick is a no-op returning false. Otherwise it fires
// ContainerClickEvent and resynchronizes the client by calling the host's
// menu-resync method, since every tracked inventory/menu is by
// definition custom and the client has already applied the click
// optimistically. It reports whether the click was cancelled.
func (c *Context) ContainerClick(playerID string, slot, button int) bool {
	c.mu.Lock()
	handle, open := c.openMenus[playerID]
	if !open {
		handle, open = c.openInventories[playerID]
	}
	c.mu.Unlock()

	if !open {
		return false
	}

	ev := &ContainerClickEvent{PlayerID: playerID, Handle: handle, Slot: slot, Button: button}
	result := c.Bus.Fire(ev)
	cancelled := result.(eventbus.Cancellable).Cancelled()

	if err := c.Server.ResyncMenu(playerID); err != nil {
		logging.Errorf("bridge: resyncing menu for player %s: %v", playerID, err)
	}

	return cancelled
}
