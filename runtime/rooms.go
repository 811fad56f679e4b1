package runtime

import (
	"sync"

	"chat-relay/contract"
	"chat-relay/domain"
)

// Rooms is the room manager: it maps room ids to the set of connection
// handles currently subscribed. Membership is a set per handle, so a
// connection may subscribe to several rooms at once; leaving is explicit.
//
// A handle appears in a room's subscriber set if and only if it joined the
// room and has not since left or disconnected. The double index keeps
// disconnect teardown O(rooms of the handle) instead of a full scan.
type Rooms struct {
	mu      sync.RWMutex
	members map[domain.RoomID]map[string]*contract.Conn // room -> handle id -> connection
	byConn  map[string]map[domain.RoomID]struct{}       // handle id -> subscribed rooms
}

func NewRooms() *Rooms {
	return &Rooms{
		members: make(map[domain.RoomID]map[string]*contract.Conn),
		byConn:  make(map[string]map[domain.RoomID]struct{}),
	}
}

// Join subscribes a handle to a room. Idempotent: joining an already-joined
// room changes no observable state.
func (r *Rooms) Join(c *contract.Conn, roomID domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[roomID]; !ok {
		r.members[roomID] = make(map[string]*contract.Conn)
	}
	r.members[roomID][c.ID] = c

	if _, ok := r.byConn[c.ID]; !ok {
		r.byConn[c.ID] = make(map[domain.RoomID]struct{})
	}
	r.byConn[c.ID][roomID] = struct{}{}
}

// Leave removes a handle from a room. Idempotent removal; empty rooms are
// deleted so the map does not leak over time.
func (r *Rooms) Leave(handleID string, roomID domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(handleID, roomID)
}

// SubscribersOf returns the handles currently subscribed to a room.
func (r *Rooms) SubscribersOf(roomID domain.RoomID) []*contract.Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handles, ok := r.members[roomID]
	if !ok {
		return nil
	}
	conns := make([]*contract.Conn, 0, len(handles))
	for _, c := range handles {
		conns = append(conns, c)
	}
	return conns
}

// RoomsOf returns the rooms a handle is currently subscribed to.
func (r *Rooms) RoomsOf(handleID string) []domain.RoomID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subscribed, ok := r.byConn[handleID]
	if !ok {
		return nil
	}
	rooms := make([]domain.RoomID, 0, len(subscribed))
	for roomID := range subscribed {
		rooms = append(rooms, roomID)
	}
	return rooms
}

// OnUnregister is called by connection teardown. It removes the handle from
// every room it was subscribed to, not just the most recent one; missing that
// is the classic source of delivery to dead handles.
func (r *Rooms) OnUnregister(handleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for roomID := range r.byConn[handleID] {
		r.leaveLocked(handleID, roomID)
	}
}

func (r *Rooms) leaveLocked(handleID string, roomID domain.RoomID) {
	if handles, ok := r.members[roomID]; ok {
		delete(handles, handleID)
		if len(handles) == 0 {
			delete(r.members, roomID)
		}
	}
	if subscribed, ok := r.byConn[handleID]; ok {
		delete(subscribed, roomID)
		if len(subscribed) == 0 {
			delete(r.byConn, handleID)
		}
	}
}
