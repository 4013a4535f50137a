package hub

import (
	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/domain"
	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/protocol"
)

// Presence broadcasts online/offline changes to the other members of a
// room. Best-effort: a failed send to one member never blocks the rest.
type Presence struct {
	rooms    domain.Rooms
	registry domain.Registry
}

func NewPresence(rooms domain.Rooms, registry domain.Registry) *Presence {
	return &Presence{rooms: rooms, registry: registry}
}

func (p *Presence) Broadcast(room, subject string, kind domain.PresenceKind) {
	frame := protocol.PresenceFrame{Type: string(kind), Username: subject}
	for _, member := range p.rooms.Members(room) {
		if member == subject {
			continue
		}
		p.registry.Send(member, frame)
	}
}
