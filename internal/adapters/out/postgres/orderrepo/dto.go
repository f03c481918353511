// Package orderrepo maps order aggregates to the orders table.
package orderrepo

import (
	"time"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row layout of an order. The stage is stored by name so the table
// stays readable for the audit queries and for operators.
type OrderDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PersonID    int64      `gorm:"not null;index"`
	Fabric      string     `gorm:"type:varchar(100);not null"`
	Stage       string     `gorm:"type:varchar(20);not null"`
	TailorID    int64      `gorm:"not null;index"`
	Completed   bool       `gorm:"not null;index"`
	AcceptedAt  time.Time  `gorm:"not null"`
	CompletedAt *time.Time `gorm:"index"`
	StageInTime time.Time  `gorm:"not null;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	var completedAt *time.Time
	if at := o.CompletedAt(); at != nil {
		utc := at.UTC()
		completedAt = &utc
	}
	return OrderDTO{
		ID:          o.ID().Google(),
		PersonID:    o.PersonID(),
		Fabric:      o.Fabric(),
		Stage:       o.Stage().String(),
		TailorID:    o.TailorID(),
		Completed:   o.IsCompleted(),
		AcceptedAt:  o.AcceptedAt().UTC(),
		CompletedAt: completedAt,
		StageInTime: o.StageInTime().UTC(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	stage, err := order.ParseStage(dto.Stage)
	if err != nil {
		return nil, err
	}

	var completedAt *time.Time
	if dto.CompletedAt != nil {
		utc := dto.CompletedAt.UTC()
		completedAt = &utc
	}

	return order.RestoreOrder(
		id,
		dto.PersonID,
		dto.Fabric,
		stage,
		dto.TailorID,
		dto.Completed,
		dto.AcceptedAt.UTC(),
		completedAt,
		dto.StageInTime.UTC(),
	)
}
