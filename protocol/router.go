package protocol

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/domain"
	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/metric"
)

// Router parses inbound frames and dispatches them to registration, direct
// delivery, or room broadcast. Nothing it does ever closes the sender's
// connection.
type Router struct {
	registry domain.Registry
	rooms    domain.Rooms
	presence domain.Presence
	metrics  *metric.Metrics
}

func NewRouter(registry domain.Registry, rooms domain.Rooms, presence domain.Presence, m *metric.Metrics) *Router {
	return &Router{
		registry: registry,
		rooms:    rooms,
		presence: presence,
		metrics:  m,
	}
}

func (r *Router) Handle(conn domain.Connection, data []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("frame handler panic", "connId", conn.ID(), "panic", rec)
			r.sendError(conn, "internal error", "")
		}
	}()

	frame, err := Parse(data)
	if err != nil {
		r.metrics.ProtocolErrors.Inc()
		slog.Warn("unparseable frame", "connId", conn.ID(), "error", err)
		r.sendError(conn, "invalid message format", err.Error())
		return
	}

	switch f := frame.(type) {
	case Register:
		r.metrics.FramesReceived.WithLabelValues(TypeRegister).Inc()
		r.registry.Register(f.UserID, conn)
		r.rooms.Join(domain.GlobalRoom, f.UserID)
		r.presence.Broadcast(domain.GlobalRoom, f.UserID, domain.PresenceOnline)

	case PrivateMessage:
		r.metrics.FramesReceived.WithLabelValues(TypePrivateMessage).Inc()
		now := time.Now().UTC()
		r.registry.Send(f.To, PrivateDelivery{
			Type: TypePrivateMessage,
			Data: PrivateMessageData{
				ID:               now.UnixMilli(),
				SenderUsername:   f.From,
				ReceiverUsername: f.To,
				Message:          f.Message,
				CreatedAt:        now.Format(time.RFC3339),
			},
		})

	case GlobalMessage:
		r.metrics.FramesReceived.WithLabelValues(TypeGlobalMessage).Inc()
		now := time.Now().UTC()
		delivery := GlobalDelivery{
			Type: TypeGlobalMessage,
			Data: GlobalMessageData{
				ID:        now.UnixMilli(),
				Username:  f.From,
				Message:   f.Message,
				CreatedAt: now.Format(time.RFC3339),
			},
		}
		for _, member := range r.rooms.Members(domain.GlobalRoom) {
			if member == f.From {
				continue
			}
			r.registry.Send(member, delivery)
		}

	case Invalid:
		// Dropped without an error frame; only unparseable JSON gets one.
		r.metrics.FramesReceived.WithLabelValues(f.Type).Inc()
		slog.Warn("frame missing required field", "connId", conn.ID(), "type", f.Type, "missing", f.Missing)

	case Unknown:
		r.metrics.FramesReceived.WithLabelValues("unknown").Inc()
		slog.Warn("unrecognized frame type", "connId", conn.ID(), "type", f.Type)
	}
}

func (r *Router) sendError(conn domain.Connection, message, detail string) {
	data, err := json.Marshal(ErrorFrame{Type: TypeError, Message: message, Error: detail})
	if err != nil {
		return
	}
	if err := conn.Send(data); err != nil {
		slog.Warn("error frame send failed", "connId", conn.ID(), "error", err)
	}
}
