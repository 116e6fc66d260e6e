package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Sink receives events in emission order.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher fans events out to its sinks. Delivery is fail-open: a failing
// sink is logged and skipped so one slow observer cannot block registry
// mutations. Mutation events are ordered because they are emitted under the
// registry's write lock; concurrent scans emit under the read lock, so
// potential_match events from overlapping scans may interleave.
type Publisher struct {
	sinks  []Sink
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger, sinks ...Sink) *Publisher {
	return &Publisher{sinks: sinks, logger: logger}
}

// Emit stamps the event and delivers it to every sink.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	for _, sink := range p.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			p.logger.ErrorContext(ctx, "event sink publish failed",
				"event_id", event.ID,
				"event_type", event.Type,
				"error", err,
			)
		}
	}
}
