package workers

import (
	"context"
	"log/slog"
	"time"

	"chat-relay/observability"
)

// Reporter periodically logs a snapshot of the delivery counters.
// Observability only; it never touches routing state.
type Reporter struct {
	log      *slog.Logger
	metrics  *observability.DeliveryMetrics
	interval time.Duration
}

func NewReporter(log *slog.Logger, metrics *observability.DeliveryMetrics, interval time.Duration) *Reporter {
	return &Reporter{log: log, metrics: metrics, interval: interval}
}

func (r *Reporter) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			snapshot := r.metrics.Snapshot()
			r.log.Info("Delivery stats",
				"delivered", snapshot.Delivered,
				"fallback_delivered", snapshot.FallbackDelivered,
				"dropped_pushes", snapshot.DroppedPushes,
				"dropped_commands", snapshot.DroppedCommands,
				"store_failures", snapshot.StoreFailures,
				"replayed", snapshot.Replayed)
		case <-ctx.Done():
			return nil
		}
	}
}
