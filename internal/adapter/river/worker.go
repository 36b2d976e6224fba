package river

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"
)

// EventWorker processes domain event jobs from the River queue.
// For now it logs the event; future versions will dispatch to email or
// push notification channels for tenants and admins.
type EventWorker struct {
	river.WorkerDefaults[EventJobArgs]
}

// Work processes a single event job.
func (w *EventWorker) Work(ctx context.Context, job *river.Job[EventJobArgs]) error {
	slog.InfoContext(ctx, "processing event",
		"event", job.Args.Event,
		"stay_id", job.Args.StayID,
		"entity_id", job.Args.EntityID,
		"tenant_id", job.Args.TenantID,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)
	return nil
}
