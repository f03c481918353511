package commands

import (
	"context"
	"errors"
	"fmt"
)

// ResumeOrdersCommandHandler rebuilds the stage context of each uncompleted order
// from the catalog and submits it. Orders whose tailor or customer can no longer be
// loaded are skipped; their errors are joined into the returned error.
type ResumeOrdersCommandHandler struct {
	uowFactory UoWFactory
	submitter  StageSubmitter
}

func NewResumeOrdersCommandHandler(uowFactory UoWFactory, submitter StageSubmitter) ResumeOrdersCommandHandler {
	return ResumeOrdersCommandHandler{
		uowFactory: uowFactory,
		submitter:  submitter,
	}
}

// Handle returns the number of orders submitted.
func (h ResumeOrdersCommandHandler) Handle(ctx context.Context, cmd ResumeOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()

	pending, err := uow.OrderRepository().GetAllUncompleted(ctx)
	if err != nil {
		return 0, err
	}

	var (
		submitted int
		failures  error
	)

	for _, o := range pending {
		assigned, err := uow.TailorRepository().Get(ctx, o.TailorID())
		if err != nil {
			failures = errors.Join(failures, fmt.Errorf("order %s: load tailor: %w", o.ID(), err))
			continue
		}

		customer, err := uow.PersonRepository().Get(ctx, o.PersonID())
		if err != nil {
			failures = errors.Join(failures, fmt.Errorf("order %s: load person: %w", o.ID(), err))
			continue
		}

		if err = h.submitter.Submit(ctx, StageContext{
			Order:      o,
			Tailor:     assigned,
			OwnerEmail: customer.Email(),
		}); err != nil {
			return submitted, errors.Join(failures, err)
		}

		submitted++
	}

	return submitted, failures
}
