// Package observability aggregates live delivery telemetry.
// Counters are atomic so every connection task can report without locking.
package observability

import "sync/atomic"

// DeliveryMetrics counts what the delivery engine actually did.
type DeliveryMetrics struct {
	Delivered         atomic.Uint64 // events pushed through a room subscription
	FallbackDelivered atomic.Uint64 // events pushed through the global registry fallback
	DroppedPushes     atomic.Uint64 // pushes refused by a sink (full buffer, dead conn)
	DroppedCommands   atomic.Uint64 // deliver commands refused by a full shard
	StoreFailures     atomic.Uint64 // durable writes that failed (degraded deliveries)
	Replayed          atomic.Uint64 // messages returned by history replay
}

// Snapshot is a point-in-time copy suitable for logging or serialization.
type Snapshot struct {
	Delivered         uint64 `json:"delivered"`
	FallbackDelivered uint64 `json:"fallback_delivered"`
	DroppedPushes     uint64 `json:"dropped_pushes"`
	DroppedCommands   uint64 `json:"dropped_commands"`
	StoreFailures     uint64 `json:"store_failures"`
	Replayed          uint64 `json:"replayed"`
}

func (m *DeliveryMetrics) Snapshot() Snapshot {
	return Snapshot{
		Delivered:         m.Delivered.Load(),
		FallbackDelivered: m.FallbackDelivered.Load(),
		DroppedPushes:     m.DroppedPushes.Load(),
		DroppedCommands:   m.DroppedCommands.Load(),
		StoreFailures:     m.StoreFailures.Load(),
		Replayed:          m.Replayed.Load(),
	}
}
