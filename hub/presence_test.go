package hub

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/domain"
	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/metric"
)

func decodeFrame(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var frame map[string]any
	require.NoError(t, json.Unmarshal(data, &frame))
	return frame
}

func TestPresence_BroadcastExcludesSubject(t *testing.T) {
	registry := NewRegistry(metric.New())
	rooms := NewRooms()
	presence := NewPresence(rooms, registry)

	alice := &mockConn{id: "a"}
	bob := &mockConn{id: "b"}
	carol := &mockConn{id: "c"}
	for user, conn := range map[string]*mockConn{"alice": alice, "bob": bob, "carol": carol} {
		registry.Register(user, conn)
		rooms.Join(domain.GlobalRoom, user)
	}

	presence.Broadcast(domain.GlobalRoom, "alice", domain.PresenceOnline)

	assert.Empty(t, alice.getSent())

	for _, conn := range []*mockConn{bob, carol} {
		sent := conn.getSent()
		require.Len(t, sent, 1)
		frame := decodeFrame(t, sent[0])
		assert.Equal(t, "user_online", frame["type"])
		assert.Equal(t, "alice", frame["username"])
	}
}

func TestPresence_OfflineKind(t *testing.T) {
	registry := NewRegistry(metric.New())
	rooms := NewRooms()
	presence := NewPresence(rooms, registry)

	bob := &mockConn{id: "b"}
	registry.Register("bob", bob)
	rooms.Join(domain.GlobalRoom, "bob")
	rooms.Join(domain.GlobalRoom, "alice")

	presence.Broadcast(domain.GlobalRoom, "alice", domain.PresenceOffline)

	sent := bob.getSent()
	require.Len(t, sent, 1)
	assert.Equal(t, "user_offline", decodeFrame(t, sent[0])["type"])
}

func TestPresence_SendFailureDoesNotStopBroadcast(t *testing.T) {
	registry := NewRegistry(metric.New())
	rooms := NewRooms()
	presence := NewPresence(rooms, registry)

	broken := &mockConn{id: "broken", sendErr: assert.AnError}
	bob := &mockConn{id: "b"}
	registry.Register("broken", broken)
	registry.Register("bob", bob)
	for _, user := range []string{"broken", "bob", "alice"} {
		rooms.Join(domain.GlobalRoom, user)
	}

	presence.Broadcast(domain.GlobalRoom, "alice", domain.PresenceOnline)

	assert.Len(t, bob.getSent(), 1)
}

func TestPresence_EmptyRoom(t *testing.T) {
	registry := NewRegistry(metric.New())
	rooms := NewRooms()
	presence := NewPresence(rooms, registry)

	presence.Broadcast(domain.GlobalRoom, "alice", domain.PresenceOnline)
	presence.Broadcast("nowhere", "alice", domain.PresenceOnline)
}
