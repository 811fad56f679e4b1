package workers

import (
	"context"
	"log/slog"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/observability"
	"chat-relay/repositories"
)

// DeliverCommand asks for one message to be persisted and fanned out to its
// room. Commands for the same room always land on the same worker, which is
// what gives each room FIFO delivery.
type DeliverCommand struct {
	Room    domain.RoomID
	Message domain.Message
}

// DeliveryWorker drains one shard of deliver commands.
//
// For every command it first attempts the durable write, then fans the
// message out. A failed write never blocks live delivery: the message goes
// out flagged as degraded and the sender's client can warn that it may not
// survive a restart.
//
// Fan-out is two-phase for restricted messages: room subscribers whose owner
// is visible come first, then the global registry fallback covers visible
// users connected somewhere else (another view, another tab). Room
// subscription and "is this user online at all" are independent facts.
type DeliveryWorker struct {
	log      *slog.Logger
	commands <-chan DeliverCommand
	registry contract.IConnectionRegistry
	rooms    contract.IRoomManager
	store    repositories.IMessageRepository
	metrics  *observability.DeliveryMetrics
}

func NewDeliveryWorker(log *slog.Logger, commands <-chan DeliverCommand,
	registry contract.IConnectionRegistry, rooms contract.IRoomManager,
	store repositories.IMessageRepository, metrics *observability.DeliveryMetrics) *DeliveryWorker {
	return &DeliveryWorker{
		log:      log,
		commands: commands,
		registry: registry,
		rooms:    rooms,
		store:    store,
		metrics:  metrics,
	}
}

func (w *DeliveryWorker) Run(ctx context.Context) error {
	for {
		select {
		case cmd := <-w.commands:
			w.Handle(ctx, cmd)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping delivery worker")
			return nil
		}
	}
}

// Handle processes a single deliver command. Exposed so the fan-out rules are
// testable without starting the worker loop.
func (w *DeliveryWorker) Handle(ctx context.Context, cmd DeliverCommand) {
	degraded := false
	if err := w.store.StoreMessage(repositories.FromDomain(cmd.Message, cmd.Room)); err != nil {
		degraded = true
		w.metrics.StoreFailures.Add(1)
		w.log.Warn("Durable write failed, delivering degraded",
			"room", cmd.Room, "message_id", cmd.Message.ID, "error", err)
	}

	evt := event.NewMessageEvent(cmd.Message, degraded)
	subscribers := w.rooms.SubscribersOf(cmd.Room)

	if !cmd.Message.Restricted() {
		for _, c := range subscribers {
			w.push(ctx, c, evt, false)
		}
		return
	}

	// Phase one: subscribers of the room, filtered by owning user.
	reached := make(map[string]struct{})
	for _, c := range subscribers {
		owner, ok := w.registry.OwnerOf(c.ID)
		if !ok || !cmd.Message.VisibleBy(owner) {
			continue
		}
		w.push(ctx, c, evt, false)
		reached[owner] = struct{}{}
	}

	// Phase two: visible users not reached through the room. A user with no
	// live connection gets the message on their next history replay.
	for _, userID := range cmd.Message.VisibleTo {
		if _, ok := reached[userID]; ok {
			continue
		}
		for _, c := range w.registry.ConnectionsFor(userID) {
			w.push(ctx, c, evt, true)
		}
	}
}

// push is fire-and-forget per handle: one unreachable connection must not
// abort delivery to the remaining ones.
func (w *DeliveryWorker) push(ctx context.Context, c *contract.Conn, evt event.DomainEvent, fallback bool) {
	if err := c.Sink.Consume(ctx, evt); err != nil {
		w.metrics.DroppedPushes.Add(1)
		w.log.Debug("Push failed, skipping handle", "handle", c.ID, "error", err)
		return
	}
	if fallback {
		w.metrics.FallbackDelivered.Add(1)
		return
	}
	w.metrics.Delivered.Add(1)
}
