package temika

// ConnState represents the externally observable state of the instrument
// session. Reconnect attempts are synchronous and sequential, so there is no
// intermediate connecting state.
type ConnState uint32

const (
	// DisconnectedState indicates that the TCP connection to the instrument
	// server is not established.
	DisconnectedState ConnState = iota
	// ConnectedState indicates that the TCP connection is established and the
	// handshake opening the outer command scope has been sent.
	ConnectedState
)

// IsConnected returns if the current state is connected.
func (cs ConnState) IsConnected() bool { return cs == ConnectedState }

// String returns string representation of the current state.
func (cs ConnState) String() string {
	switch cs {
	case DisconnectedState:
		return "disconnected"
	case ConnectedState:
		return "connected"
	default:
		return "unknown"
	}
}
