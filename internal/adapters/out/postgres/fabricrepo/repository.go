// Package fabricrepo stores the fabric catalog.
package fabricrepo

import (
	"context"
	"strings"

	"tailoring/internal/core/domain/model/fabric"
	"tailoring/internal/pkg/errs"

	"gorm.io/gorm"
)

type FabricDTO struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

func (FabricDTO) TableName() string {
	return "fabrics"
}

type GormFabricRepository struct {
	db *gorm.DB
}

func NewGormFabricRepository(db *gorm.DB) *GormFabricRepository {
	return &GormFabricRepository{db: db}
}

func (r *GormFabricRepository) Add(ctx context.Context, f fabric.Fabric) error {
	dto := FabricDTO{ID: f.ID(), Name: f.Name()}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormFabricRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, errs.NewValueIsRequiredError("fabric name")
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&FabricDTO{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
