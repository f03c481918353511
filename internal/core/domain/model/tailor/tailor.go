// Package tailor models the workers that orders are allocated to.
//
// A tailor holds at most one order at a time. Occupy and Release are the only
// mutators of that assignment; intake calls Occupy, dispatch calls Release.
package tailor

import (
	"errors"
	"fmt"
	"strings"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/pkg/errs"
)

var (
	ErrTailorIsNotConstructed = errors.New("Tailor must be created via NewTailor constructor")
	ErrTailorIsOccupied       = errors.New("tailor is already assigned to an order")
	ErrTailorNotAssigned      = errors.New("tailor is not assigned to this order")
)

type Tailor struct {
	id              int64
	name            string
	fabrics         []string
	assignedOrderID *kernel.UUID
	managerID       int64

	isConstructed bool
}

// NewTailor creates a free tailor able to work the given fabrics.
func NewTailor(id int64, name string, fabrics []string, managerID int64) (*Tailor, error) {
	return RestoreTailor(id, name, fabrics, managerID, nil)
}

// RestoreTailor rebuilds a tailor read from storage, including its current assignment.
func RestoreTailor(
	id int64,
	name string,
	fabrics []string,
	managerID int64,
	assignedOrderID *kernel.UUID,
) (*Tailor, error) {
	t := &Tailor{isConstructed: true}

	if err := errors.Join(
		t.setID(id),
		t.setName(name),
		t.setManagerID(managerID),
		t.setAssignedOrderID(assignedOrderID),
	); err != nil {
		return nil, err
	}
	t.fabrics = append([]string(nil), fabrics...)

	return t, nil
}

func (t *Tailor) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTailorIsNotConstructed
	}
	return nil
}

func (t *Tailor) ID() int64        { return t.id }
func (t *Tailor) Name() string     { return t.name }
func (t *Tailor) ManagerID() int64 { return t.managerID }

// Fabrics returns a copy of the fabric names the tailor can work with.
func (t *Tailor) Fabrics() []string {
	return append([]string(nil), t.fabrics...)
}

// AssignedOrderID is nil while the tailor is free.
func (t *Tailor) AssignedOrderID() *kernel.UUID {
	if t.assignedOrderID == nil {
		return nil
	}
	id := *t.assignedOrderID
	return &id
}

func (t *Tailor) IsFree() bool {
	return t.assignedOrderID == nil
}

// CanWork reports whether fabric matches one of the tailor's fabrics, ignoring case.
func (t *Tailor) CanWork(fabric string) bool {
	fabric = strings.TrimSpace(fabric)
	for _, f := range t.fabrics {
		if strings.EqualFold(f, fabric) {
			return true
		}
	}
	return false
}

// Occupy assigns orderID to a free tailor.
func (t *Tailor) Occupy(orderID kernel.UUID) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	if !t.IsFree() {
		return fmt.Errorf("%w: tailor %d holds order %s", ErrTailorIsOccupied, t.id, t.assignedOrderID)
	}
	t.assignedOrderID = &orderID
	return nil
}

// Release frees the tailor from orderID. Releasing an already free tailor is a no-op
// so a replayed dispatch step stays harmless; releasing someone else's order is an error.
func (t *Tailor) Release(orderID kernel.UUID) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.IsFree() {
		return nil
	}
	if !t.assignedOrderID.IsEqual(orderID) {
		return fmt.Errorf("%w: tailor %d holds order %s, not %s",
			ErrTailorNotAssigned, t.id, t.assignedOrderID, orderID)
	}
	t.assignedOrderID = nil
	return nil
}

func (t *Tailor) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("tailor id", fmt.Errorf("%d is not greater than 0", id))
	}
	t.id = id
	return nil
}

func (t *Tailor) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("tailor name")
	}
	t.name = name
	return nil
}

func (t *Tailor) setManagerID(managerID int64) error {
	if managerID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("manager id", fmt.Errorf("%d is not greater than 0", managerID))
	}
	t.managerID = managerID
	return nil
}

func (t *Tailor) setAssignedOrderID(orderID *kernel.UUID) error {
	if orderID == nil {
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	id := *orderID
	t.assignedOrderID = &id
	return nil
}
