package outbox

import (
	"context"
	"time"

	"github.com/Skotchmaster/ecommerce/pkg/logging"
)

type Record struct {
	ID      int64
	EventID string
	Topic   string
	Key     string
	Payload []byte
}

type Store interface {
	FetchPending(ctx context.Context, limit int) ([]Record, error)
	MarkSent(ctx context.Context, id int64) error
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, value []byte) error
}

// Relay moves committed outbox rows to the broker. Delivery is at least
// once: a row is marked sent only after the broker acknowledged it.
type Relay struct {
	Store     Store
	Publisher Publisher
	Interval  time.Duration
	BatchSize int
}

func (r *Relay) Run(ctx context.Context) {
	l := logging.FromContext(ctx).With("component", "outbox.relay")

	interval := r.Interval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if n, err := r.RunOnce(ctx); err != nil {
			l.Warn("relay_error", "sent", n, "error", err)
		} else if n > 0 {
			l.Info("relay_sent", "sent", n)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce publishes one batch and stops at the first failure so that
// ordering per key is preserved.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	batch := r.BatchSize
	if batch <= 0 {
		batch = 100
	}

	records, err := r.Store.FetchPending(ctx, batch)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, rec := range records {
		if err := r.Publisher.Publish(ctx, rec.Topic, rec.Key, rec.Payload); err != nil {
			return sent, err
		}
		if err := r.Store.MarkSent(ctx, rec.ID); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}
