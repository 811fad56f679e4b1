package workers_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/mocks"
	"chat-relay/observability"
	"chat-relay/repositories"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
)

// captureSink records every consumed event, one slice per connection.
type captureSink struct {
	mu     sync.Mutex
	events []event.DomainEvent
}

func (s *captureSink) Consume(_ context.Context, e event.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *captureSink) received() []event.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]event.DomainEvent(nil), s.events...)
}

type failingSink struct{}

func (failingSink) Consume(_ context.Context, _ event.DomainEvent) error {
	return fmt.Errorf("connection gone")
}

type fixture struct {
	registry *runtime.Registry
	rooms    *runtime.Rooms
	worker   *workers.DeliveryWorker
	store    *mocks.MockIMessageRepository
	metrics  *observability.DeliveryMetrics
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockIMessageRepository(ctrl)
	registry := runtime.NewRegistry()
	rooms := runtime.NewRooms()
	metrics := &observability.DeliveryMetrics{}
	worker := workers.NewDeliveryWorker(slog.Default(), nil, registry, rooms, store, metrics)
	return fixture{registry: registry, rooms: rooms, worker: worker, store: store, metrics: metrics}
}

// connect registers a connection for a user; join also subscribes it to the room.
func (f fixture) connect(userID string) (*contract.Conn, *captureSink) {
	s := &captureSink{}
	c := &contract.Conn{ID: uuid.NewString(), Sink: s}
	f.registry.Register(c)
	f.registry.AssignOwner(c.ID, userID)
	return c, s
}

func (f fixture) join(userID string, roomID domain.RoomID) (*contract.Conn, *captureSink) {
	c, s := f.connect(userID)
	f.rooms.Join(c, roomID)
	return c, s
}

func groupMessage(sender string, mentions []string) domain.Message {
	return domain.Message{
		ID:        uuid.New(),
		Kind:      domain.KindGroup,
		SenderID:  sender,
		TargetID:  "g1",
		Body:      "hello",
		CreatedAt: time.Now().UTC(),
		Mentions:  mentions,
		VisibleTo: domain.ComputeVisibility(sender, mentions),
	}
}

func TestDeliveryWorker_Broadcast_ExactlyOncePerConnection(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	roomID := domain.GroupRoom("g1")

	// Given bob holding two tabs in the room and carol one
	_, alice := f.join("alice", roomID)
	_, tab1 := f.join("bob", roomID)
	_, tab2 := f.join("bob", roomID)
	_, carol := f.join("carol", roomID)

	f.store.EXPECT().StoreMessage(gomock.Any()).Return(nil).Times(1)

	// When alice broadcasts ("all" visibility)
	f.worker.Handle(context.Background(), workers.DeliverCommand{Room: roomID, Message: groupMessage("alice", nil)})

	// Then every connection got exactly one copy, tabs included
	req.Len(alice.received(), 1)
	req.Len(tab1.received(), 1)
	req.Len(tab2.received(), 1)
	req.Len(carol.received(), 1)
	req.EqualValues(4, f.metrics.Delivered.Load())
}

func TestDeliveryWorker_Mention_RestrictsToSenderAndMentioned(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	roomID := domain.GroupRoom("g1")

	// Given alice, bob, and carol all subscribed
	_, alice := f.join("alice", roomID)
	_, bob := f.join("bob", roomID)
	_, carol := f.join("carol", roomID)

	f.store.EXPECT().StoreMessage(gomock.Any()).Return(nil).Times(1)

	// When alice mentions bob
	f.worker.Handle(context.Background(), workers.DeliverCommand{Room: roomID, Message: groupMessage("alice", []string{"bob"})})

	// Then the delivered set is exactly {alice, bob}; carol gets nothing
	req.Len(alice.received(), 1)
	req.Len(bob.received(), 1)
	req.Empty(carol.received())
}

func TestDeliveryWorker_Mention_EachConnectionOfRecipientGetsOneCopy(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	roomID := domain.GroupRoom("g1")

	_, alice := f.join("alice", roomID)
	_, tab1 := f.join("bob", roomID)
	_, tab2 := f.join("bob", roomID)

	f.store.EXPECT().StoreMessage(gomock.Any()).Return(nil).Times(1)

	f.worker.Handle(context.Background(), workers.DeliverCommand{Room: roomID, Message: groupMessage("alice", []string{"bob"})})

	req.Len(alice.received(), 1)
	req.Len(tab1.received(), 1)
	req.Len(tab2.received(), 1)
}

func TestDeliveryWorker_Mention_GlobalFallbackReachesUnsubscribedUser(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	roomID := domain.GroupRoom("g1")

	// Given carol connected to the service but browsing another room
	_, alice := f.join("alice", roomID)
	_, carol := f.connect("carol")

	f.store.EXPECT().StoreMessage(gomock.Any()).Return(nil).Times(1)

	// When alice mentions carol
	f.worker.Handle(context.Background(), workers.DeliverCommand{Room: roomID, Message: groupMessage("alice", []string{"carol"})})

	// Then carol is reached through the global registry fallback
	req.Len(alice.received(), 1)
	req.Len(carol.received(), 1)
	req.EqualValues(1, f.metrics.FallbackDelivered.Load())
}

func TestDeliveryWorker_Mention_OfflineUserGetsNothingLive(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	roomID := domain.GroupRoom("g1")

	// Given bob has zero live connections
	_, alice := f.join("alice", roomID)

	f.store.EXPECT().StoreMessage(gomock.Any()).Return(nil).Times(1)

	f.worker.Handle(context.Background(), workers.DeliverCommand{Room: roomID, Message: groupMessage("alice", []string{"bob"})})

	// The sender still gets the echo; bob will see the message on replay
	req.Len(alice.received(), 1)
}

func TestDeliveryWorker_StoreFailure_DeliversDegraded(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	roomID := domain.GroupRoom("g1")

	_, alice := f.join("alice", roomID)

	// Given the durable store is unavailable
	f.store.EXPECT().StoreMessage(gomock.Any()).Return(fmt.Errorf("store down")).Times(1)

	f.worker.Handle(context.Background(), workers.DeliverCommand{Room: roomID, Message: groupMessage("alice", nil)})

	// Then live delivery still happens, flagged as degraded
	received := alice.received()
	req.Len(received, 1)
	msg, ok := received[0].(event.MessageGroup)
	req.True(ok)
	req.True(msg.Degraded)
	req.EqualValues(1, f.metrics.StoreFailures.Load())
}

func TestDeliveryWorker_OneDeadHandleDoesNotAbortTheBatch(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	roomID := domain.GroupRoom("g1")

	// Given one subscriber whose sink always fails
	dead := &contract.Conn{ID: uuid.NewString(), Sink: failingSink{}}
	f.registry.Register(dead)
	f.registry.AssignOwner(dead.ID, "zed")
	f.rooms.Join(dead, roomID)

	_, alice := f.join("alice", roomID)
	_, bob := f.join("bob", roomID)

	f.store.EXPECT().StoreMessage(gomock.Any()).Return(nil).Times(1)

	f.worker.Handle(context.Background(), workers.DeliverCommand{Room: roomID, Message: groupMessage("alice", nil)})

	// Then the remaining handles were still served
	req.Len(alice.received(), 1)
	req.Len(bob.received(), 1)
	req.EqualValues(1, f.metrics.DroppedPushes.Load())
}

func TestDeliveryWorker_DisconnectedHandleNeverTargeted(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	roomID := domain.GroupRoom("g1")

	_, alice := f.join("alice", roomID)
	gone, goneSink := f.join("bob", roomID)

	// Given bob's handle disconnected before the send
	f.rooms.OnUnregister(gone.ID)
	f.registry.Unregister(gone.ID)

	f.store.EXPECT().StoreMessage(gomock.Any()).Return(nil).Times(1)

	f.worker.Handle(context.Background(), workers.DeliverCommand{Room: roomID, Message: groupMessage("alice", nil)})

	req.Len(alice.received(), 1)
	req.Empty(goneSink.received())
}

func TestDeliveryWorker_MessagePersistedWithVisibility(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	roomID := domain.GroupRoom("g1")
	f.join("alice", roomID)

	message := groupMessage("alice", []string{"bob"})
	f.store.EXPECT().StoreMessage(gomock.Any()).DoAndReturn(func(disk repositories.DiskMessage) error {
		req.Equal(string(roomID), disk.Room)
		req.ElementsMatch([]string{"alice", "bob"}, disk.VisibleTo)
		return nil
	}).Times(1)

	f.worker.Handle(context.Background(), workers.DeliverCommand{Room: roomID, Message: message})
}
