package notify

import (
	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/domain"
)

// Bridge is the one surface offered to the rest of the backend for pushing
// a payload to a connected user without speaking the chat protocol, e.g.
// "someone commented on your page". Same best-effort semantics as
// Registry.Send: an offline user is a logged no-op, never an error.
type Bridge struct {
	registry domain.Registry
}

func NewBridge(registry domain.Registry) *Bridge {
	return &Bridge{registry: registry}
}

func (b *Bridge) DeliverToUser(userID string, payload any) {
	b.registry.Send(userID, payload)
}
