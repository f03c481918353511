package ports

import (
	"context"

	"tailoring/internal/core/domain/model/person"
)

type PersonRepository interface {
	Add(ctx context.Context, p *person.Person) error

	// Get returns the person or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id int64) (*person.Person, error)

	// GetAllByRole returns everyone holding role, id ascending.
	GetAllByRole(ctx context.Context, role person.Role) ([]*person.Person, error)
}
