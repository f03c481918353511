package commands

import (
	"context"
	"errors"
	"fmt"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"
	"tailoring/internal/core/domain/services"
	"tailoring/internal/pkg/errs"
)

// Intake rejection reasons. The error text is returned to the customer as is.
var (
	ErrPersonNotFound    = errors.New("Person with this id does not exist") //nolint:staticcheck,revive // user facing text
	ErrFabricNotFound    = errors.New("This fabric does not exist")         //nolint:staticcheck,revive // user facing text
	ErrNoTailorAvailable = errors.New("No Tailor is Available Now")         //nolint:staticcheck,revive // user facing text
	ErrNoTailorForFabric = errors.New("No tailor have this fabric")         //nolint:staticcheck,revive // user facing text
)

// IsIntakeRejection reports whether err is one of the intake rejection reasons.
func IsIntakeRejection(err error) bool {
	return errors.Is(err, ErrPersonNotFound) ||
		errors.Is(err, ErrFabricNotFound) ||
		errors.Is(err, ErrNoTailorAvailable) ||
		errors.Is(err, ErrNoTailorForFabric)
}

// PlaceOrderResult describes an accepted order.
type PlaceOrderResult struct {
	OrderID kernel.UUID
}

// PlaceOrderCommandHandler validates an intake request against the catalog, allocates a tailor
// and persists the new order. The free tailor rows are locked for the duration of the
// transaction and the assignment is written with a conditional update, so two concurrent
// intakes can never end up holding the same tailor.
//
// Once the transaction commits, the order is handed to the stage orchestrator. The caller
// gets the result back without waiting for any stage to run.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	allocator  services.TailorAllocator
	submitter  StageSubmitter
	clock      kernel.Clock
}

func NewPlaceOrderCommandHandler(
	uowFactory UoWFactory,
	submitter StageSubmitter,
	clock kernel.Clock,
) PlaceOrderCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock
	}
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		allocator:  services.NewTailorAllocator(),
		submitter:  submitter,
		clock:      clock,
	}
}

// Handle runs the intake checks in order, stopping at the first failure:
// person exists, fabric exists, some tailor is free, a free tailor works with the fabric.
// A rejection is returned as one of the Err* reasons above; any other error is an
// infrastructure failure and nothing has been persisted.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlaceOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customer, err := uow.PersonRepository().Get(ctx, cmd.PersonID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return PlaceOrderResult{}, ErrPersonNotFound
	}
	if err != nil {
		return PlaceOrderResult{}, err
	}

	if cmd.Fabric() == "" {
		return PlaceOrderResult{}, ErrFabricNotFound
	}

	exists, err := uow.FabricRepository().ExistsByName(ctx, cmd.Fabric())
	if err != nil {
		return PlaceOrderResult{}, err
	}
	if !exists {
		return PlaceOrderResult{}, ErrFabricNotFound
	}

	tailorRepo := uow.TailorRepository()

	free, err := tailorRepo.GetAllFree(ctx)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	orderID := kernel.NewUUID()

	chosen, err := h.allocator.Allocate(orderID, cmd.Fabric(), free)
	switch {
	case errors.Is(err, services.ErrNoTailorAvailable):
		return PlaceOrderResult{}, ErrNoTailorAvailable
	case errors.Is(err, services.ErrNoTailorForFabric):
		return PlaceOrderResult{}, ErrNoTailorForFabric
	case err != nil:
		return PlaceOrderResult{}, err
	}

	placed, err := order.NewOrder(orderID, customer.ID(), cmd.Fabric(), chosen.ID(), h.clock())
	if err != nil {
		return PlaceOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return PlaceOrderResult{}, err
	}

	if err = tailorRepo.Occupy(ctx, chosen); err != nil {
		return PlaceOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	result := PlaceOrderResult{OrderID: orderID}

	// The order is already committed; if the hand-off fails it is picked up again
	// by ResumeOrders on the next start.
	if err = h.submitter.Submit(ctx, StageContext{
		Order:      placed,
		Tailor:     chosen,
		OwnerEmail: customer.Email(),
	}); err != nil {
		return result, fmt.Errorf("hand off order %s: %w", orderID, err)
	}

	return result, nil
}
