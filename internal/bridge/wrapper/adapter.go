package wrapper

// HostAdapter is the narrow surface the host engine implements for the
// bridge to call into (spec §4.5; host engine internals are explicitly
// out of scope, so the loader only ever talks to this interface, never a
// concrete engine type). A real embedding only needs to satisfy this
// contract to get façades, events, and the scheduler for free.
type HostAdapter interface {
	PlayerName(id string) (string, error)
	PlayerHealth(id string) (float64, error)
	SetPlayerHealth(id string, value float64) error
	OnlinePlayerIDs() ([]string, error)

	WorldName(id string) (string, error)
	BlockAt(worldID string, x, y, z int) (string, error)
	SetBlockAt(worldID string, x, y, z int, blockID string) error

	ServerMOTD() (string, error)
	SetServerMOTD(value string) error
	ServerDataDirectory() (string, error)
	BroadcastMessage(message string) error
	ResyncMenu(playerID string) error
}
