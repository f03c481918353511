package personrepo

import (
	"context"
	"errors"

	"tailoring/internal/core/domain/model/person"
	"tailoring/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormPersonRepository struct {
	db *gorm.DB
}

func NewGormPersonRepository(db *gorm.DB) *GormPersonRepository {
	return &GormPersonRepository{db: db}
}

func (r *GormPersonRepository) Add(ctx context.Context, p *person.Person) error {
	if err := p.Validate(); err != nil {
		return err
	}
	dto := fromDomain(p)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormPersonRepository) Get(ctx context.Context, id int64) (*person.Person, error) {
	var dto PersonDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("person", id)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormPersonRepository) GetAllByRole(ctx context.Context, role person.Role) ([]*person.Person, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	var dtos []PersonDTO
	if err := r.db.WithContext(ctx).Where("role = ?", string(role)).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	people := make([]*person.Person, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, nil
}
