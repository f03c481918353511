// Package tailorrepo maps tailors to the tailors table. The assigned_order_id column
// is the single source of truth for whether a tailor is busy.
package tailorrepo

import (
	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/tailor"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type TailorDTO struct {
	ID              int64          `gorm:"primaryKey;autoIncrement:false"`
	Name            string         `gorm:"type:varchar(100);not null"`
	Fabrics         pq.StringArray `gorm:"type:text[]"`
	AssignedOrderID *uuid.UUID     `gorm:"type:uuid;uniqueIndex"`
	ManagerID       int64          `gorm:"not null;index"`
}

func (TailorDTO) TableName() string {
	return "tailors"
}

func fromDomain(t *tailor.Tailor) TailorDTO {
	var assigned *uuid.UUID
	if id := t.AssignedOrderID(); id != nil {
		raw := id.Google()
		assigned = &raw
	}
	return TailorDTO{
		ID:              t.ID(),
		Name:            t.Name(),
		Fabrics:         pq.StringArray(t.Fabrics()),
		AssignedOrderID: assigned,
		ManagerID:       t.ManagerID(),
	}
}

func toDomain(dto TailorDTO) (*tailor.Tailor, error) {
	var assigned *kernel.UUID
	if dto.AssignedOrderID != nil {
		id, err := kernel.UUIDFromGoogle(*dto.AssignedOrderID)
		if err != nil {
			return nil, err
		}
		assigned = &id
	}
	return tailor.RestoreTailor(dto.ID, dto.Name, []string(dto.Fabrics), dto.ManagerID, assigned)
}
