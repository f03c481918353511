package tailorrepo

import (
	"context"
	"errors"
	"fmt"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/tailor"
	"tailoring/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTailorRepository implements ports.TailorRepository using GORM.
type GormTailorRepository struct {
	db *gorm.DB
}

func NewGormTailorRepository(db *gorm.DB) *GormTailorRepository {
	return &GormTailorRepository{db: db}
}

func (r *GormTailorRepository) Add(ctx context.Context, t *tailor.Tailor) error {
	if err := t.Validate(); err != nil {
		return err
	}
	dto := fromDomain(t)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormTailorRepository) Get(ctx context.Context, id int64) (*tailor.Tailor, error) {
	var dto TailorDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tailor", id)
		}
		return nil, err
	}
	return toDomain(dto)
}

// GetAllFree locks the free rows it returns with FOR UPDATE. A concurrent intake waits
// for those locks and, once the holder commits, sees only the tailors still free.
// Rows are locked in id order so intakes cannot deadlock each other. Outside a
// transaction the lock is released as soon as the statement ends.
func (r *GormTailorRepository) GetAllFree(ctx context.Context) ([]*tailor.Tailor, error) {
	var dtos []TailorDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("assigned_order_id IS NULL").
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	tailors := make([]*tailor.Tailor, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tailors = append(tailors, t)
	}
	return tailors, nil
}

// Occupy writes t's assignment only if the row is free or already holds the same order.
func (r *GormTailorRepository) Occupy(ctx context.Context, t *tailor.Tailor) error {
	if err := t.Validate(); err != nil {
		return err
	}

	orderID := t.AssignedOrderID()
	if orderID == nil {
		return errs.NewValueIsRequiredError("assigned order id")
	}

	result := r.db.WithContext(ctx).
		Model(&TailorDTO{}).
		Where("id = ? AND (assigned_order_id IS NULL OR assigned_order_id = ?)", t.ID(), orderID.Google()).
		Update("assigned_order_id", orderID.Google())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	if _, err := r.Get(ctx, t.ID()); err != nil {
		return err
	}
	return fmt.Errorf("%w: tailor %d", tailor.ErrTailorIsOccupied, t.ID())
}

// Release clears the assignment if the tailor still holds orderID; otherwise it does nothing.
func (r *GormTailorRepository) Release(ctx context.Context, tailorID int64, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&TailorDTO{}).
		Where("id = ? AND assigned_order_id = ?", tailorID, orderID.Google()).
		Update("assigned_order_id", gorm.Expr("NULL")).Error
}
