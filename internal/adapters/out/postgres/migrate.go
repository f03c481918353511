package postgres

import (
	"tailoring/internal/adapters/out/postgres/fabricrepo"
	"tailoring/internal/adapters/out/postgres/orderrepo"
	"tailoring/internal/adapters/out/postgres/outboxrepo"
	"tailoring/internal/adapters/out/postgres/personrepo"
	"tailoring/internal/adapters/out/postgres/tailorrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&personrepo.PersonDTO{},
		&fabricrepo.FabricDTO{},
		&tailorrepo.TailorDTO{},
		&orderrepo.OrderDTO{},
		&outboxrepo.NotificationDTO{},
	)
}
