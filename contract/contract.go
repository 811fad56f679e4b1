//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"chat-relay/domain"
	"chat-relay/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is the outbound side of one live connection.
// Consume must never block indefinitely: a slow or dead connection drops
// events instead of stalling delivery to the rest of the room.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// Conn is one live transport session. A user may own several at once;
// the owning user is assigned by the registry on the first join event.
type Conn struct {
	ID   string
	Sink EventSink
}

// IConnectionRegistry owns the handle→user mapping and nothing else.
type IConnectionRegistry interface {
	Register(c *Conn)
	AssignOwner(handleID, userID string)
	Unregister(handleID string)
	OwnerOf(handleID string) (string, bool)
	ConnectionsFor(userID string) []*Conn
	AllConnections() []*Conn
}

// IRoomManager owns the room→subscribers mapping and nothing else.
type IRoomManager interface {
	Join(c *Conn, roomID domain.RoomID)
	Leave(handleID string, roomID domain.RoomID)
	SubscribersOf(roomID domain.RoomID) []*Conn
	RoomsOf(handleID string) []domain.RoomID
	OnUnregister(handleID string)
}

// IDispatcher accepts a message for per-room ordered delivery.
type IDispatcher interface {
	Dispatch(roomID domain.RoomID, message domain.Message)
}
