// Package loaderapi defines the contract a mod's entrypoint implements
// and the surface the loader hands it at init time (spec §6.3): the event
// bus, command registry, scheduler, server façade, and a per-mod
// diagnostic logger. Mods depend only on this package, never on the
// loader's internals.
package loaderapi

import (
	"github.com/alloy-modding/alloy-loader/internal/bridge/commands"
	"github.com/alloy-modding/alloy-loader/internal/bridge/wrapper"
	"github.com/alloy-modding/alloy-loader/internal/eventbus"
	"github.com/alloy-modding/alloy-loader/internal/logging"
	"github.com/alloy-modding/alloy-loader/internal/scheduler"
)

// Initializer is the contract every mod entrypoint implements (spec §6.3:
// "C2 Mod Discovery & Metadata" names Entrypoint as a manifest field; this
// is the Go type that field's named value must satisfy).
type Initializer interface {
	// OnInitialize runs once, after dependency resolution succeeds and
	// before the host server is upgraded, in resolver topological order
	// (spec §4.3). It must not block.
	OnInitialize(env *Environment)
}

// Environment is the host integration surface handed to every mod's
// OnInitialize (spec §6.3). Mods should hold onto the fields they need
// and otherwise not retain Environment itself, since its Server facade
// usefully only after the host upgrade event a mod subscribes to.
type Environment struct {
	ModID     string
	Bus       *eventbus.Bus
	Commands  *commands.Registry
	Scheduler *scheduler.Scheduler
	Server    *wrapper.ServerFacade
	Players   *wrapper.Cache[*wrapper.PlayerFacade]
	Worlds    *wrapper.Cache[*wrapper.WorldFacade]
	Log       *logging.ModLogger
}
