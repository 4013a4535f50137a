package hub

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/domain"
	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/metric"
)

// Registry maps each user to the connection that most recently registered
// it. Registration is last-writer-wins: a second register for the same user
// overwrites the entry and leaves the superseded connection open but
// unaddressable.
type Registry struct {
	conns   map[string]domain.Connection
	mu      sync.RWMutex
	metrics *metric.Metrics
}

func NewRegistry(m *metric.Metrics) *Registry {
	return &Registry{
		conns:   make(map[string]domain.Connection),
		metrics: m,
	}
}

func (r *Registry) Register(userID string, conn domain.Connection) {
	r.mu.Lock()
	prev, replaced := r.conns[userID]
	r.conns[userID] = conn
	count := len(r.conns)
	r.mu.Unlock()

	r.metrics.UsersRegistered.Set(float64(count))
	if replaced {
		slog.Info("user re-registered", "userId", userID, "connId", conn.ID(), "supersededConnId", prev.ID())
		return
	}
	slog.Info("user registered", "userId", userID, "connId", conn.ID(), "users", count)
}

func (r *Registry) Lookup(userID string) (domain.Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.conns[userID]
	return conn, ok
}

// UnregisterByConnection finds which user currently maps to this exact
// connection and removes the entry. Close events arrive keyed by
// connection, not by identity, so this is a linear scan.
func (r *Registry) UnregisterByConnection(conn domain.Connection) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for userID, c := range r.conns {
		if c == conn {
			delete(r.conns, userID)
			r.metrics.UsersRegistered.Set(float64(len(r.conns)))
			return userID, true
		}
	}
	return "", false
}

// Send serializes payload and writes it to the user's connection.
// A missing user or a failed write is a normal condition (recipient
// offline): logged at warn, never an error to the caller.
func (r *Registry) Send(userID string, payload any) {
	r.mu.RLock()
	conn, ok := r.conns[userID]
	r.mu.RUnlock()

	if !ok {
		r.metrics.DeliveryFailures.Inc()
		slog.Warn("delivery skipped, user not connected", "userId", userID)
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		r.metrics.DeliveryFailures.Inc()
		slog.Warn("payload marshal failed", "userId", userID, "error", err)
		return
	}

	if err := conn.Send(data); err != nil {
		r.metrics.DeliveryFailures.Inc()
		slog.Warn("delivery failed", "userId", userID, "connId", conn.ID(), "error", err)
		return
	}
	r.metrics.MessagesDelivered.Inc()
}

// Count returns the number of registered users.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
