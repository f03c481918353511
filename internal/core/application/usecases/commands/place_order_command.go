package commands

import (
	"errors"
	"strings"

	"tailoring/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand is a customer's request for a garment in a given fabric.
// Existence of the person and the fabric is checked by the handler against the catalog.
// A blank fabric is accepted here and rejected by the handler after the person check.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(1, "Cotton")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoTailorForFabric):
//	    // tell the customer no tailor works with cotton
//	case err != nil:
//	    return err
//	}
//	fmt.Println(result.OrderID)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	personID int64
	fabric   string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates an intake request. The fabric name is trimmed.
func NewPlaceOrderCommand(personID int64, fabric string) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		personID: personID,
		guard:    guard.NewConstructorGuard(),
	}

	cmd.setFabric(fabric)

	return cmd, nil
}

func (c PlaceOrderCommand) PersonID() int64 {
	return c.personID
}

func (c PlaceOrderCommand) Fabric() string {
	return c.fabric
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c *PlaceOrderCommand) setFabric(fabric string) {
	c.fabric = strings.TrimSpace(fabric)
}
