// Package personrepo maps people (owners, managers and customers) to the persons table.
package personrepo

import (
	"tailoring/internal/core/domain/model/person"
)

type PersonDTO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Email     string `gorm:"type:varchar(255);not null"`
	Role      string `gorm:"type:varchar(20);not null;index"`
}

func (PersonDTO) TableName() string {
	return "persons"
}

func fromDomain(p *person.Person) PersonDTO {
	return PersonDTO{
		ID:        p.ID(),
		FirstName: p.FirstName(),
		LastName:  p.LastName(),
		Email:     p.Email(),
		Role:      string(p.Role()),
	}
}

func toDomain(dto PersonDTO) (*person.Person, error) {
	return person.NewPerson(dto.ID, dto.FirstName, dto.LastName, dto.Email, person.Role(dto.Role))
}
