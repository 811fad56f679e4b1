package sink

import (
	"context"
	"log/slog"

	"chat-relay/domain/event"
)

// ConnectionSink buffers outbound events for one live connection.
// The transport's write loop drains Events and serializes them on the wire.
type ConnectionSink struct {
	log    *slog.Logger
	events chan event.DomainEvent
}

func NewConnectionSink(log *slog.Logger, bufferSize int) *ConnectionSink {
	return &ConnectionSink{log: log, events: make(chan event.DomainEvent, bufferSize)}
}

// Events exposes the outbound queue to the transport write loop.
func (s *ConnectionSink) Events() <-chan event.DomainEvent {
	return s.events
}

// Consume implements contract.EventSink.
// A full buffer drops the event rather than blocking the delivery fan-out:
// one slow connection must not stall the rest of the room.
func (s *ConnectionSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		s.log.Debug("Connection sink full, dropping event", "event", e.EventName())
		return nil
	}
}
