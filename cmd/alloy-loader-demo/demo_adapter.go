package main

import (
	"fmt"
	"sort"
	"sync"
)

// demoAdapter is an in-memory wrapper.HostAdapter standing in for a real
// game engine embedding, so this binary can drive the bridge end to end
// without linking against any particular host.
type demoAdapter struct {
	mu         sync.Mutex
	players    map[string]*demoPlayer
	worlds     map[string]*demoWorld
	motd       string
	dataDir    string
	broadcasts []string
}

type demoPlayer struct {
	name   string
	health float64
}

type demoWorld struct {
	name   string
	blocks map[[3]int]string
}

func newDemoAdapter() *demoAdapter {
	return &demoAdapter{
		players: map[string]*demoPlayer{
			"p1": {name: "Steve", health: 20},
			"p2": {name: "Alex", health: 20},
		},
		worlds: map[string]*demoWorld{
			"overworld": {name: "overworld", blocks: map[[3]int]string{}},
		},
		motd:    "an alloy-loader demo server",
		dataDir: "./demo-data",
	}
}

func (a *demoAdapter) PlayerName(id string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.players[id]
	if !ok {
		return "", fmt.Errorf("demo: unknown player %q", id)
	}
	return p.name, nil
}

func (a *demoAdapter) PlayerHealth(id string) (float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.players[id]
	if !ok {
		return 0, fmt.Errorf("demo: unknown player %q", id)
	}
	return p.health, nil
}

func (a *demoAdapter) SetPlayerHealth(id string, value float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.players[id]
	if !ok {
		return fmt.Errorf("demo: unknown player %q", id)
	}
	p.health = value
	return nil
}

func (a *demoAdapter) OnlinePlayerIDs() ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	ids := make([]string, 0, len(a.players))
	for id := range a.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (a *demoAdapter) WorldName(id string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	w, ok := a.worlds[id]
	if !ok {
		return "", fmt.Errorf("demo: unknown world %q", id)
	}
	return w.name, nil
}

func (a *demoAdapter) BlockAt(worldID string, x, y, z int) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	w, ok := a.worlds[worldID]
	if !ok {
		return "", fmt.Errorf("demo: unknown world %q", worldID)
	}
	if id, ok := w.blocks[[3]int{x, y, z}]; ok {
		return id, nil
	}
	return "minecraft:air", nil
}

func (a *demoAdapter) SetBlockAt(worldID string, x, y, z int, blockID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	w, ok := a.worlds[worldID]
	if !ok {
		return fmt.Errorf("demo: unknown world %q", worldID)
	}
	w.blocks[[3]int{x, y, z}] = blockID
	return nil
}

func (a *demoAdapter) ServerMOTD() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.motd, nil
}

func (a *demoAdapter) SetServerMOTD(value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.motd = value
	return nil
}

func (a *demoAdapter) ServerDataDirectory() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dataDir, nil
}

func (a *demoAdapter) BroadcastMessage(message string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.broadcasts = append(a.broadcasts, message)
	return nil
}

func (a *demoAdapter) ResyncMenu(playerID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.players[playerID]; !ok {
		return fmt.Errorf("demo: unknown player %q", playerID)
	}
	return nil
}
