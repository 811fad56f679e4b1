// Package runtime owns the live routing state of the engine: which handle
// belongs to which user, which handles subscribe to which room, and the
// per-room ordered delivery pipeline. It contains no business rules.
package runtime

import (
	"sync"

	"chat-relay/contract"
)

// Registry is the connection registry: it maps logical users to their live
// connection handles. A user may hold zero, one, or several handles at once;
// multi-tab and reconnect races are first-class cases, not errors.
//
// The registry exclusively owns the handle→user mapping. Room membership is
// the room manager's concern and is never cached here.
type Registry struct {
	mu     sync.RWMutex
	conns  map[string]*contract.Conn            // handle id -> connection
	owners map[string]string                    // handle id -> user id
	byUser map[string]map[string]*contract.Conn // user id -> handle id -> connection
}

func NewRegistry() *Registry {
	return &Registry{
		conns:  make(map[string]*contract.Conn),
		owners: make(map[string]string),
		byUser: make(map[string]map[string]*contract.Conn),
	}
}

// Register adds a freshly accepted connection. The owning user is unknown
// until the first join event assigns it.
func (r *Registry) Register(c *contract.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[c.ID] = c
}

// AssignOwner binds a handle to its logical user. Re-assigning the same user
// is a no-op; assigning a different user re-indexes the handle.
func (r *Registry) AssignOwner(handleID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.conns[handleID]
	if !ok {
		return
	}

	if previous, owned := r.owners[handleID]; owned {
		if previous == userID {
			return
		}
		r.dropUserIndexLocked(handleID, previous)
	}

	r.owners[handleID] = userID
	if _, ok := r.byUser[userID]; !ok {
		r.byUser[userID] = make(map[string]*contract.Conn)
	}
	r.byUser[userID][handleID] = c
}

// Unregister removes a handle from the registry. Removal is idempotent:
// repeated disconnect signals for an already-absent handle are no-ops.
func (r *Registry) Unregister(handleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[handleID]; !ok {
		return
	}
	delete(r.conns, handleID)

	if userID, owned := r.owners[handleID]; owned {
		delete(r.owners, handleID)
		r.dropUserIndexLocked(handleID, userID)
	}
}

// OwnerOf returns the user owning a handle, if a join has assigned one.
func (r *Registry) OwnerOf(handleID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	userID, ok := r.owners[handleID]
	return userID, ok
}

// ConnectionsFor returns every live handle owned by a user. May be empty:
// a user with zero connections simply gets no live push.
func (r *Registry) ConnectionsFor(userID string) []*contract.Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handles, ok := r.byUser[userID]
	if !ok {
		return nil
	}
	conns := make([]*contract.Conn, 0, len(handles))
	for _, c := range handles {
		conns = append(conns, c)
	}
	return conns
}

// AllConnections returns every live handle. Used as the fallback lookup when
// a visible user is connected but not subscribed to the delivery room.
func (r *Registry) AllConnections() []*contract.Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]*contract.Conn, 0, len(r.conns))
	for _, c := range r.conns {
		conns = append(conns, c)
	}
	return conns
}

// dropUserIndexLocked removes a handle from the per-user index and cleans up
// empty sets so the map does not grow with churned users.
func (r *Registry) dropUserIndexLocked(handleID, userID string) {
	handles, ok := r.byUser[userID]
	if !ok {
		return
	}
	delete(handles, handleID)
	if len(handles) == 0 {
		delete(r.byUser, userID)
	}
}
