package notify_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/hub"
	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/metric"
	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/notify"
)

type mockConn struct {
	id   string
	sent [][]byte
	mu   sync.Mutex
}

func (m *mockConn) ID() string { return m.id }

func (m *mockConn) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, data)
	return nil
}

func (m *mockConn) Close() error { return nil }

func (m *mockConn) getSent() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent
}

func TestBridge_DeliverToConnectedUser(t *testing.T) {
	registry := hub.NewRegistry(metric.New())
	bridge := notify.NewBridge(registry)
	conn := &mockConn{id: "c1"}
	registry.Register("alice", conn)

	bridge.DeliverToUser("alice", map[string]any{
		"type": "comment",
		"page": "alice/garden",
	})

	sent := conn.getSent()
	require.Len(t, sent, 1)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(sent[0], &payload))
	assert.Equal(t, "comment", payload["type"])
	assert.Equal(t, "alice/garden", payload["page"])
}

func TestBridge_DeliverToOfflineUser(t *testing.T) {
	registry := hub.NewRegistry(metric.New())
	bridge := notify.NewBridge(registry)

	// Offline recipient is a logged no-op, same as Registry.Send.
	bridge.DeliverToUser("ghost", map[string]any{"type": "comment"})
}

func TestBridge_RawPayloadPassesThrough(t *testing.T) {
	registry := hub.NewRegistry(metric.New())
	bridge := notify.NewBridge(registry)
	conn := &mockConn{id: "c1"}
	registry.Register("alice", conn)

	raw := json.RawMessage(`{"type":"follow","follower":"bob"}`)
	bridge.DeliverToUser("alice", raw)

	sent := conn.getSent()
	require.Len(t, sent, 1)
	assert.JSONEq(t, string(raw), string(sent[0]))
}
