package async

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gallery/internal/domain"
)

// EventLog is a bus listener that writes an audit line for every event off
// the dispatching goroutine. It never blocks the dispatch: when its pool is
// full or closed the line is dropped with a warning.
type EventLog struct {
	pool *WorkerPool
	log  *zap.Logger
}

var _ domain.Listener = (*EventLog)(nil)

func NewEventLog(pool *WorkerPool, log *zap.Logger) *EventLog {
	return &EventLog{pool: pool, log: log}
}

func (l *EventLog) Name() string { return "async.event_log" }

func (l *EventLog) ReceiveEvent(ctx context.Context, e domain.Event) error {
	name := e.EventName()
	kind := fmt.Sprintf("%T", e)
	viewer := domain.ViewerFrom(ctx)
	queued := l.pool.TrySubmit(func(_ context.Context) {
		l.log.Info("domain_event",
			zap.String("type", name),
			zap.String("go_type", kind),
			zap.Int64("viewer", viewer.ID),
		)
	})
	if !queued {
		l.log.Warn("event log queue full, event dropped", zap.String("type", name))
	}
	return nil
}
