package hub

import (
	"log/slog"

	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/domain"
)

// Lifecycle reconciles registry and room state when a connection's
// transport closes or errors. Transport errors take the same path as a
// normal close.
type Lifecycle struct {
	registry domain.Registry
	rooms    domain.Rooms
	presence domain.Presence
}

func NewLifecycle(registry domain.Registry, rooms domain.Rooms, presence domain.Presence) *Lifecycle {
	return &Lifecycle{registry: registry, rooms: rooms, presence: presence}
}

func (l *Lifecycle) ConnectionClosed(conn domain.Connection) {
	// Registry removal comes first: once the entry is gone the user is no
	// longer addressable, even while room cleanup is still in flight.
	userID, ok := l.registry.UnregisterByConnection(conn)
	if !ok {
		// Never registered; nothing to reconcile.
		slog.Debug("unregistered connection closed", "connId", conn.ID())
		return
	}

	l.rooms.LeaveAll(userID)
	l.presence.Broadcast(domain.GlobalRoom, userID, domain.PresenceOffline)
	slog.Info("user disconnected", "userId", userID, "connId", conn.ID())
}
