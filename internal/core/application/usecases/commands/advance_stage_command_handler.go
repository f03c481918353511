package commands

import (
	"context"
	"errors"

	"tailoring/internal/core/domain/model/kernel"
)

// ErrStageAlreadyReached is returned when the order, in memory or as persisted, is already
// at or past the target stage. Another run is driving the order; the caller drops its copy.
var ErrStageAlreadyReached = errors.New("order has already reached the stage")

// AdvanceStageCommandHandler performs one stage transition. The order row, the tailor
// release on DISPATCHED and the notification for the owner are written in a single
// transaction; the notification leaves the outbox after commit. The persisted stage is
// read first, so a stale copy of the order can never write a stage twice.
//
// Example:
//
//	next, _ := sc.Order.Stage().Next()
//	cmd, _ := NewAdvanceStageCommand(sc, next)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrStageAlreadyReached) {
//	    // a previous run already got here
//	}
type AdvanceStageCommandHandler struct {
	uowFactory StageUoWFactory
	clock      kernel.Clock
}

func NewAdvanceStageCommandHandler(uowFactory StageUoWFactory, clock kernel.Clock) AdvanceStageCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock
	}
	return AdvanceStageCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle advances the order carried by the command. On success the in-memory order and tailor
// of the stage context reflect the persisted state. On failure they must be discarded.
func (h AdvanceStageCommandHandler) Handle(ctx context.Context, cmd AdvanceStageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	sc := cmd.StageContext()
	target := cmd.Target()

	if sc.Order.HasReached(target) {
		return ErrStageAlreadyReached
	}

	msg, err := StageNotification(target, sc.Order.ID(), sc.OwnerEmail)
	if err != nil {
		return err
	}

	if err = sc.Order.Advance(target, h.clock()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()

	persisted, err := orders.Get(ctx, sc.Order.ID())
	if err != nil {
		return err
	}
	if persisted.HasReached(target) {
		return ErrStageAlreadyReached
	}

	if err = orders.Save(ctx, sc.Order); err != nil {
		return err
	}

	if target.IsTerminal() {
		if err = sc.Tailor.Release(sc.Order.ID()); err != nil {
			return err
		}
		if err = uow.TailorRepository().Release(ctx, sc.Tailor.ID(), sc.Order.ID()); err != nil {
			return err
		}
	}

	if err = uow.NotificationOutbox().Enqueue(ctx, sc.Order.ID().String(), msg); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
