// Package outboxrepo implements the notification outbox table. Rows are written in the
// transaction of the state change they announce and drained by the relay job.
package outboxrepo

import (
	"context"
	"fmt"
	"time"

	"tailoring/internal/core/domain/model/notification"
	"tailoring/internal/core/ports"
	"tailoring/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificationDTO keeps the encoded wire payload as text so the published bytes
// are exactly the bytes that were queued.
type NotificationDTO struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	AggregateID string     `gorm:"type:varchar(64);not null;index"`
	Payload     string     `gorm:"type:text;not null"`
	CreatedAt   time.Time  `gorm:"not null"`
	PublishedAt *time.Time `gorm:"index"`
}

func (NotificationDTO) TableName() string {
	return "notification_outbox"
}

type GormNotificationOutbox struct {
	db *gorm.DB
}

func NewGormNotificationOutbox(db *gorm.DB) *GormNotificationOutbox {
	return &GormNotificationOutbox{db: db}
}

func (r *GormNotificationOutbox) Enqueue(ctx context.Context, aggregateID string, msg notification.Message) error {
	if aggregateID == "" {
		return errs.NewValueIsRequiredError("aggregate id")
	}

	payload, err := msg.Encode()
	if err != nil {
		return err
	}

	dto := NotificationDTO{
		AggregateID: aggregateID,
		Payload:     string(payload),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetPending locks the returned rows FOR UPDATE, so a second relay waits rather than
// publishing the same rows out of order.
func (r *GormNotificationOutbox) GetPending(ctx context.Context, limit int) ([]ports.PendingNotification, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("published_at IS NULL").
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	pending := make([]ports.PendingNotification, 0, len(dtos))
	for _, dto := range dtos {
		msg, err := notification.Decode([]byte(dto.Payload))
		if err != nil {
			return nil, fmt.Errorf("outbox row %d: %w", dto.ID, err)
		}
		pending = append(pending, ports.PendingNotification{
			ID:          dto.ID,
			AggregateID: dto.AggregateID,
			Message:     msg,
			CreatedAt:   dto.CreatedAt,
		})
	}
	return pending, nil
}

func (r *GormNotificationOutbox) MarkPublished(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ? AND published_at IS NULL", id).
		Update("published_at", at.UTC()).Error
}
