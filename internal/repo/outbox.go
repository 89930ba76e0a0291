package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/pkg/outbox"
)

// InsertOutbox stores an event in the same transaction as the state change
// it describes. The relay publishes it later.
func (r *GormRepo) InsertOutbox(ctx context.Context, topic, key string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}
	ev := models.OutboxEvent{
		EventID:   uuid.NewString(),
		Topic:     topic,
		Key:       key,
		Payload:   string(b),
		CreatedAt: time.Now().UTC(),
	}
	if err := r.DB.WithContext(ctx).Create(&ev).Error; err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

func (r *GormRepo) FetchPending(ctx context.Context, limit int) ([]outbox.Record, error) {
	var rows []models.OutboxEvent
	err := r.DB.WithContext(ctx).
		Where("sent_at IS NULL").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch pending outbox: %w", err)
	}
	out := make([]outbox.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, outbox.Record{
			ID:      row.ID,
			EventID: row.EventID,
			Topic:   row.Topic,
			Key:     row.Key,
			Payload: []byte(row.Payload),
		})
	}
	return out, nil
}

func (r *GormRepo) MarkSent(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	return r.DB.WithContext(ctx).
		Model(&models.OutboxEvent{}).
		Where("id = ?", id).
		Update("sent_at", &now).Error
}
