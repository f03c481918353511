// Package commands contains the write side of the tailoring service: order intake,
// stage transitions, audit reports and the notification relay.
// Every command follows the same pattern: constructor-guarded input, a handler
// that opens a unit of work, and a single commit.
package commands

import (
	"context"

	"tailoring/internal/core/ports"
)

// Unit of Work interfaces give handlers only the repositories they touch.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	TailorRepoFactory interface {
		TailorRepository() ports.TailorRepository
	}

	PersonRepoFactory interface {
		PersonRepository() ports.PersonRepository
	}

	FabricRepoFactory interface {
		FabricRepository() ports.FabricRepository
	}

	OutboxFactory interface {
		NotificationOutbox() ports.NotificationOutbox
	}

	// UoW spans every catalog repository. Used by intake and recovery.
	UoW interface {
		TxManager
		OrderRepoFactory
		TailorRepoFactory
		PersonRepoFactory
		FabricRepoFactory
		OutboxFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	// StageUoW covers one stage transition: the order row, the tailor release
	// on dispatch and the notification announcing the new stage.
	StageUoW interface {
		TxManager
		OrderRepoFactory
		TailorRepoFactory
		OutboxFactory
	}

	StageUoWFactory interface {
		Create() StageUoW
	}

	// AuditUoW is used by the report and alert jobs.
	AuditUoW interface {
		TxManager
		PersonRepoFactory
		OutboxFactory
	}

	AuditUoWFactory interface {
		Create() AuditUoW
	}

	// OutboxUoW is used by the notification relay.
	OutboxUoW interface {
		TxManager
		OutboxFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
