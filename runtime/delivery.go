package runtime

import (
	"hash/fnv"
	"log/slog"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/observability"
	"chat-relay/repositories"
	"chat-relay/runtime/workers"
)

// Delivery is the delivery engine. It shards deliver commands by room id over
// a fixed pool of workers: every message for a given room flows through the
// same shard, so each room keeps FIFO ordering while unrelated rooms never
// serialize on each other.
type Delivery struct {
	log     *slog.Logger
	metrics *observability.DeliveryMetrics
	shards  []chan workers.DeliverCommand
	workers []contract.Worker
}

func NewDelivery(log *slog.Logger, registry contract.IConnectionRegistry,
	rooms contract.IRoomManager, store repositories.IMessageRepository,
	metrics *observability.DeliveryMetrics, numWorkers, bufferSize int) *Delivery {
	if numWorkers < 1 {
		numWorkers = 1
	}
	d := &Delivery{
		log:     log,
		metrics: metrics,
		shards:  make([]chan workers.DeliverCommand, numWorkers),
		workers: make([]contract.Worker, numWorkers),
	}
	for i := range d.shards {
		d.shards[i] = make(chan workers.DeliverCommand, bufferSize)
		d.workers[i] = workers.NewDeliveryWorker(log, d.shards[i], registry, rooms, store, metrics)
	}
	return d
}

// Workers exposes the shard workers for supervisor registration.
func (d *Delivery) Workers() []contract.Worker {
	return d.workers
}

// Dispatch routes a message to its room shard. A full shard drops the
// command with a diagnostic rather than blocking the connection task.
func (d *Delivery) Dispatch(roomID domain.RoomID, message domain.Message) {
	shard := d.shards[shardIndex(roomID, len(d.shards))]
	select {
	case shard <- workers.DeliverCommand{Room: roomID, Message: message}:
	default:
		d.metrics.DroppedCommands.Add(1)
		d.log.Warn("Delivery shard full, dropping command", "room", roomID)
	}
}

func shardIndex(roomID domain.RoomID, shards int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(roomID))
	return int(h.Sum32() % uint32(shards))
}
