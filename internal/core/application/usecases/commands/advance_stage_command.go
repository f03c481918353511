package commands

import (
	"errors"

	"tailoring/internal/core/domain/model/order"
	"tailoring/internal/pkg/guard"
)

var ErrAdvanceStageCommandIsNotConstructed = errors.New(
	"AdvanceStageCommand must be created via NewAdvanceStageCommand constructor",
)

// AdvanceStageCommand moves one order into its target stage.
type AdvanceStageCommand struct { //nolint:recvcheck //using for validation
	stageContext StageContext
	target       order.Stage

	guard guard.ConstructorGuard
}

func NewAdvanceStageCommand(sc StageContext, target order.Stage) (AdvanceStageCommand, error) {
	if err := errors.Join(sc.Validate(), target.Validate()); err != nil {
		return AdvanceStageCommand{}, err
	}

	return AdvanceStageCommand{
		stageContext: sc,
		target:       target,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceStageCommand) StageContext() StageContext {
	return c.stageContext
}

func (c AdvanceStageCommand) Target() order.Stage {
	return c.target
}

func (c AdvanceStageCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStageCommandIsNotConstructed)
}
