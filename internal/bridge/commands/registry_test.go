package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHostDispatcher struct {
	calls []string
}

func (f *fakeHostDispatcher) Dispatch(name string, args []string, senderID string) (string, error) {
	f.calls = append(f.calls, name)
	return "host:" + name, nil
}

func TestDispatchRoutesToRegisteredHandler(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register("heal", "mod-a", func(args []string, senderID string) (string, error) {
		return "healed " + senderID, nil
	}))

	out, err := r.Dispatch("heal", "p1")
	require.NoError(t, err)
	assert.Equal(t, "healed p1", out)
}

func TestDispatchFallsBackToHostDispatcher(t *testing.T) {
	fallback := &fakeHostDispatcher{}
	r := NewRegistry(fallback)

	out, err := r.Dispatch("gamemode creative", "p1")
	require.NoError(t, err)
	assert.Equal(t, "host:gamemode", out)
	assert.Equal(t, []string{"gamemode"}, fallback.calls)
}

func TestDispatchWithoutFallbackReturnsUnknownCommand(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Dispatch("nope", "p1")
	require.Error(t, err)
	var unknown *UnknownCommandError
	require.ErrorAs(t, err, &unknown)
}

func TestRegisterConflictBetweenDifferentMods(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register("heal", "mod-a", func([]string, string) (string, error) { return "", nil }))

	err := r.Register("heal", "mod-b", func([]string, string) (string, error) { return "", nil })
	require.Error(t, err)
	var conflict *CommandConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestRegisterSameModReRegistersWithoutConflict(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register("heal", "mod-a", func([]string, string) (string, error) { return "v1", nil }))
	require.NoError(t, r.Register("heal", "mod-a", func([]string, string) (string, error) { return "v2", nil }))

	out, err := r.Dispatch("heal", "p1")
	require.NoError(t, err)
	assert.Equal(t, "v2", out)
}

func TestUnregisterAllRemovesOwnedCommands(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register("heal", "mod-a", func([]string, string) (string, error) { return "", nil }))
	require.NoError(t, r.Register("tp", "mod-b", func([]string, string) (string, error) { return "", nil }))

	r.UnregisterAll("mod-a")

	assert.Equal(t, []string{"tp"}, r.Names())
}

func TestDispatchEmptyLineIsNoop(t *testing.T) {
	r := NewRegistry(nil)
	out, err := r.Dispatch("", "p1")
	require.NoError(t, err)
	assert.Empty(t, out)
}
