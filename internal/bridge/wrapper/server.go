package wrapper

// ServerFacade wraps the single running server instance. Unlike player
// and world façades there is only ever one, so ServerFacade is not
// memoized through a Cache — the bridge constructs it once, when its
// Context is created, and hands every mod the same pointer.
type ServerFacade struct {
	adapter HostAdapter
}

// NewServerFacade wraps adapter as the server façade.
func NewServerFacade(adapter HostAdapter) *ServerFacade {
	return &ServerFacade{adapter: adapter}
}

// MOTD returns the server's message of the day (Read operation).
func (s *ServerFacade) MOTD() (string, error) {
	motd, err := s.adapter.ServerMOTD()
	if err != nil {
		return "", &BridgeError{FacadeOp: "ServerFacade.MOTD", HostClass: "Server", HostOp: "ServerMOTD", Cause: err}
	}
	return motd, nil
}

// SetMOTD sets the server's message of the day (Mutate operation; must
// run on the game thread).
func (s *ServerFacade) SetMOTD(value string) error {
	if err := s.adapter.SetServerMOTD(value); err != nil {
		return &BridgeError{FacadeOp: "ServerFacade.SetMOTD", HostClass: "Server", HostOp: "SetServerMOTD", Cause: err}
	}
	return nil
}

// OnlinePlayers returns the host ids of every currently-online player
// (Read operation).
func (s *ServerFacade) OnlinePlayers() ([]string, error) {
	ids, err := s.adapter.OnlinePlayerIDs()
	if err != nil {
		return nil, &BridgeError{FacadeOp: "ServerFacade.OnlinePlayers", HostClass: "Server", HostOp: "OnlinePlayerIDs", Cause: err}
	}
	return ids, nil
}

// DataDirectory returns the host's data directory path (Read operation).
func (s *ServerFacade) DataDirectory() (string, error) {
	dir, err := s.adapter.ServerDataDirectory()
	if err != nil {
		return "", &BridgeError{FacadeOp: "ServerFacade.DataDirectory", HostClass: "Server", HostOp: "ServerDataDirectory", Cause: err}
	}
	return dir, nil
}

// Broadcast sends message to every connected player (Mutate operation;
// must run on the game thread).
func (s *ServerFacade) Broadcast(message string) error {
	if err := s.adapter.BroadcastMessage(message); err != nil {
		return &BridgeError{FacadeOp: "ServerFacade.Broadcast", HostClass: "Server", HostOp: "BroadcastMessage", Cause: err}
	}
	return nil
}

// ResyncMenu forces the host to re-send playerID's current menu/inventory
// contents to their client (Mutate operation; must run on the game
// thread). Needed after a custom-inventory click is cancelled or handled
// by a mod, since the client has already applied the click optimistically
// and would otherwise drift from host-side state.
func (s *ServerFacade) ResyncMenu(playerID string) error {
	if err := s.adapter.ResyncMenu(playerID); err != nil {
		return &BridgeError{FacadeOp: "ServerFacade.ResyncMenu", HostClass: "Server", HostOp: "ResyncMenu", Cause: err}
	}
	return nil
}
