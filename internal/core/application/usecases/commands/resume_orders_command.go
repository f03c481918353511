package commands

import (
	"errors"

	"tailoring/internal/pkg/guard"
)

var ErrResumeOrdersCommandIsNotConstructed = errors.New(
	"ResumeOrdersCommand must be created via NewResumeOrdersCommand constructor",
)

// ResumeOrdersCommand re-submits every uncompleted order to the orchestrator.
// It is issued once on start so orders halted by a failure or a restart continue
// from their persisted stage.
type ResumeOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewResumeOrdersCommand() ResumeOrdersCommand {
	return ResumeOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c ResumeOrdersCommand) Validate() error {
	return c.guard.Validate(ErrResumeOrdersCommandIsNotConstructed)
}
