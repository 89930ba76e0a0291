package models

import "time"

// OutboxEvent is an event committed with the change it describes and not
// yet necessarily published.
type OutboxEvent struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	EventID   string     `gorm:"size:64;uniqueIndex;not null"`
	Topic     string     `gorm:"size:128;not null"`
	Key       string     `gorm:"size:128;not null"`
	Payload   string     `gorm:"type:text;not null"`
	CreatedAt time.Time  `gorm:"not null"`
	SentAt    *time.Time `gorm:"index"`
}
