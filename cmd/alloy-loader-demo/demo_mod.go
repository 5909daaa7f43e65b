package main

import (
	"github.com/alloy-modding/alloy-loader/internal/bridge/hooks"
	"github.com/alloy-modding/alloy-loader/internal/eventbus"
	"github.com/alloy-modding/alloy-loader/internal/loader"
	"github.com/alloy-modding/alloy-loader/internal/loaderapi"
)

// greeterMod is a minimal entrypoint demonstrating the surface a real mod
// implements: it greets joining players and adds a "hello" command.
// Registered under the "demo:greeter" entrypoint name so a manifest
// declaring that entrypoint would run it (no archive ships one in this
// demo; init() registration alone is enough to show the idiom).
type greeterMod struct{}

func (greeterMod) OnInitialize(env *loaderapi.Environment) {
	env.Bus.Register("player.join", func(e eventbus.Event) {
		join := e.(*hooks.PlayerJoinEvent)
		env.Log.Infof("welcoming player %s", join.PlayerID)
	}, eventbus.Normal, false, env.ModID)

	if err := env.Commands.Register("hello", env.ModID, func(args []string, senderID string) (string, error) {
		return "hello from alloy-loader!", nil
	}); err != nil {
		env.Log.Errorf("registering command: %v", err)
	}
}

func init() {
	loader.RegisterEntrypoint("demo:greeter", func() loaderapi.Initializer {
		return greeterMod{}
	})
}
