package ports

import (
	"context"

	"tailoring/internal/core/domain/model/fabric"
)

type FabricRepository interface {
	Add(ctx context.Context, f fabric.Fabric) error

	// ExistsByName matches catalog names ignoring case.
	ExistsByName(ctx context.Context, name string) (bool, error)
}
