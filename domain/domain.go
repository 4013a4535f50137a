package domain

// GlobalRoom is created at startup and exists for the lifetime of the
// process. The current protocol only ever populates this room.
const GlobalRoom = "global"

// PresenceKind is the frame type used for presence notifications.
type PresenceKind string

const (
	PresenceOnline  PresenceKind = "user_online"
	PresenceOffline PresenceKind = "user_offline"
)

// Connection is a non-owning handle to a transport-level duplex channel.
// The transport layer owns the socket; the gateway only keeps references
// keyed by user identity.
type Connection interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// Registry maps a logical user to the connection that most recently
// registered it.
type Registry interface {
	Register(userID string, conn Connection)
	Lookup(userID string) (Connection, bool)
	UnregisterByConnection(conn Connection) (string, bool)
	Send(userID string, payload any)
}

// Rooms tracks named member sets used for broadcast fan-out.
type Rooms interface {
	EnsureRoom(name string)
	Join(room, userID string)
	Leave(room, userID string)
	LeaveAll(userID string)
	Members(room string) []string
}

// Presence broadcasts online/offline changes to a room, excluding the
// subject itself.
type Presence interface {
	Broadcast(room, subject string, kind PresenceKind)
}

// MessageHandler receives each inbound frame from a connection's read loop.
type MessageHandler interface {
	Handle(conn Connection, data []byte)
}

// DisconnectHandler is invoked when a connection's transport closes or
// errors.
type DisconnectHandler interface {
	ConnectionClosed(conn Connection)
}
