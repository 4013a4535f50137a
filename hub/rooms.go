package hub

import (
	"log/slog"
	"sync"

	"github.com/desarrolladores-de-pila-completa/app-desacoplada-sub002/domain"
)

// Rooms maps a room name to its member set. The "global" room is created at
// construction and never removed.
type Rooms struct {
	rooms map[string]map[string]struct{}
	mu    sync.RWMutex
}

func NewRooms() *Rooms {
	r := &Rooms{rooms: make(map[string]map[string]struct{})}
	r.EnsureRoom(domain.GlobalRoom)
	return r
}

// EnsureRoom creates the room if it does not exist.
func (r *Rooms) EnsureRoom(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rooms[name]; !exists {
		r.rooms[name] = make(map[string]struct{})
	}
}

// Join adds userID to the room's member set. Joining a room that does not
// exist is a no-op; the current protocol never does it.
func (r *Rooms) Join(room, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, exists := r.rooms[room]
	if !exists {
		slog.Warn("join to unknown room ignored", "room", room, "userId", userID)
		return
	}
	members[userID] = struct{}{}
}

func (r *Rooms) Leave(room, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if members, exists := r.rooms[room]; exists {
		delete(members, userID)
	}
}

// LeaveAll removes userID from every room. Used only by disconnect
// handling; cost is proportional to room count, which stays small.
func (r *Rooms) LeaveAll(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, members := range r.rooms {
		delete(members, userID)
	}
}

// Members returns a snapshot of the room's member set, safe to iterate
// while sends mutate registry or room state.
func (r *Rooms) Members(room string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, exists := r.rooms[room]
	if !exists {
		return nil
	}
	out := make([]string, 0, len(members))
	for userID := range members {
		out = append(out, userID)
	}
	return out
}

// RoomCount returns the number of rooms.
func (r *Rooms) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
