package wrapper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdapter struct {
	playerNames   map[string]string
	playerHealths map[string]float64
	worldNames    map[string]string
	motd          string
	dataDir       string
	broadcasts    []string
	failPlayer    bool
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		playerNames:   map[string]string{"p1": "Steve"},
		playerHealths: map[string]float64{"p1": 20},
		worldNames:    map[string]string{"overworld": "minecraft:overworld"},
		motd:          "Welcome",
		dataDir:       "/srv/alloy",
	}
}

func (a *fakeAdapter) PlayerName(id string) (string, error) {
	if a.failPlayer {
		return "", errors.New("host lookup failed")
	}
	return a.playerNames[id], nil
}
func (a *fakeAdapter) PlayerHealth(id string) (float64, error) { return a.playerHealths[id], nil }
func (a *fakeAdapter) SetPlayerHealth(id string, value float64) error {
	a.playerHealths[id] = value
	return nil
}
func (a *fakeAdapter) OnlinePlayerIDs() ([]string, error) { return []string{"p1"}, nil }
func (a *fakeAdapter) WorldName(id string) (string, error) { return a.worldNames[id], nil }
func (a *fakeAdapter) BlockAt(worldID string, x, y, z int) (string, error) { return "minecraft:stone", nil }
func (a *fakeAdapter) SetBlockAt(worldID string, x, y, z int, blockID string) error { return nil }
func (a *fakeAdapter) ServerMOTD() (string, error)      { return a.motd, nil }
func (a *fakeAdapter) SetServerMOTD(value string) error { a.motd = value; return nil }
func (a *fakeAdapter) ServerDataDirectory() (string, error) { return a.dataDir, nil }
func (a *fakeAdapter) BroadcastMessage(message string) error {
	a.broadcasts = append(a.broadcasts, message)
	return nil
}
func (a *fakeAdapter) ResyncMenu(playerID string) error { return nil }

func TestPlayerCacheMemoizesByIdentity(t *testing.T) {
	cache := NewPlayerCache(newFakeAdapter())

	first, err := cache.Resolve(Handle("p1"))
	require.NoError(t, err)
	second, err := cache.Resolve(Handle("p1"))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Len())
}

func TestPlayerFacadeReadsAndMutates(t *testing.T) {
	adapter := newFakeAdapter()
	cache := NewPlayerCache(adapter)

	player, err := cache.Resolve(Handle("p1"))
	require.NoError(t, err)

	name, err := player.Name()
	require.NoError(t, err)
	assert.Equal(t, "Steve", name)

	require.NoError(t, player.SetHealth(10))
	health, err := player.Health()
	require.NoError(t, err)
	assert.Equal(t, 10.0, health)
}

func TestPlayerFacadeWrapsHostErrors(t *testing.T) {
	adapter := newFakeAdapter()
	adapter.failPlayer = true
	cache := NewPlayerCache(adapter)

	player, err := cache.Resolve(Handle("p1"))
	require.NoError(t, err)

	_, err = player.Name()
	require.Error(t, err)
	var bridgeErr *BridgeError
	require.ErrorAs(t, err, &bridgeErr)
	assert.Equal(t, "PlayerFacade.Name", bridgeErr.FacadeOp)
}

func TestCacheForgetEvictsMemoizedFacade(t *testing.T) {
	cache := NewPlayerCache(newFakeAdapter())

	first, err := cache.Resolve(Handle("p1"))
	require.NoError(t, err)
	cache.Forget(Handle("p1"))
	second, err := cache.Resolve(Handle("p1"))
	require.NoError(t, err)

	assert.NotSame(t, first, second)
}

func TestServerFacadeReadsAndMutates(t *testing.T) {
	adapter := newFakeAdapter()
	server := NewServerFacade(adapter)

	motd, err := server.MOTD()
	require.NoError(t, err)
	assert.Equal(t, "Welcome", motd)

	require.NoError(t, server.SetMOTD("New MOTD"))
	motd, err = server.MOTD()
	require.NoError(t, err)
	assert.Equal(t, "New MOTD", motd)

	players, err := server.OnlinePlayers()
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, players)

	dir, err := server.DataDirectory()
	require.NoError(t, err)
	assert.Equal(t, "/srv/alloy", dir)

	require.NoError(t, server.Broadcast("hello world"))
	assert.Equal(t, []string{"hello world"}, adapter.broadcasts)

	require.NoError(t, server.ResyncMenu("p1"))
}

func TestWorldFacadeReadsAndMutates(t *testing.T) {
	adapter := newFakeAdapter()
	cache := NewWorldCache(adapter)

	world, err := cache.Resolve(Handle("overworld"))
	require.NoError(t, err)

	name, err := world.Name()
	require.NoError(t, err)
	assert.Equal(t, "minecraft:overworld", name)

	block, err := world.BlockAt(0, 64, 0)
	require.NoError(t, err)
	assert.Equal(t, "minecraft:stone", block)

	require.NoError(t, world.SetBlockAt(0, 64, 0, "minecraft:dirt"))
}
