package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/pkg/errs"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of a tailoring request.
//
// It is created in PLACED by intake, mutated only by stage transitions and never deleted.
// Related entities (owner, tailor) are referenced by id.
type Order struct {
	id          kernel.UUID
	personID    int64
	fabric      string
	stage       Stage
	tailorID    int64
	completed   bool
	acceptedAt  time.Time
	completedAt *time.Time
	stageInTime time.Time

	isConstructed bool
}

// NewOrder creates an accepted order in PLACED, stamping acceptance and stage-entry time with now.
func NewOrder(id kernel.UUID, personID int64, fabric string, tailorID int64, now time.Time) (*Order, error) {
	o := &Order{
		stage:         Placed,
		acceptedAt:    now,
		stageInTime:   now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setPersonID(personID),
		o.setFabric(fabric),
		o.setTailorID(tailorID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order read back from storage and re-checks its invariants.
func RestoreOrder(
	id kernel.UUID,
	personID int64,
	fabric string,
	stage Stage,
	tailorID int64,
	completed bool,
	acceptedAt time.Time,
	completedAt *time.Time,
	stageInTime time.Time,
) (*Order, error) {
	o := &Order{
		completed:     completed,
		acceptedAt:    acceptedAt,
		completedAt:   completedAt,
		stageInTime:   stageInTime,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setPersonID(personID),
		o.setFabric(fabric),
		o.setStage(stage),
		o.setTailorID(tailorID),
	); err != nil {
		return nil, err
	}

	if err := o.validateCompletion(); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID         { return o.id }
func (o *Order) PersonID() int64         { return o.personID }
func (o *Order) Fabric() string          { return o.fabric }
func (o *Order) Stage() Stage            { return o.stage }
func (o *Order) TailorID() int64         { return o.tailorID }
func (o *Order) IsCompleted() bool       { return o.completed }
func (o *Order) AcceptedAt() time.Time   { return o.acceptedAt }
func (o *Order) StageInTime() time.Time  { return o.stageInTime }
func (o *Order) CompletedAt() *time.Time { return o.completedAt }

// Advance moves the order into target, which must be the immediate successor of
// the current stage. Entering DISPATCHED completes the order.
func (o *Order) Advance(target Stage, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.stage.ValidateTransition(target); err != nil {
		return err
	}

	o.stage = target
	o.stageInTime = now

	if target.IsTerminal() {
		completedAt := now
		o.completed = true
		o.completedAt = &completedAt
	}

	return nil
}

// HasReached reports whether the order is already at or past stage.
func (o *Order) HasReached(stage Stage) bool {
	return o.stage >= stage
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setPersonID(personID int64) error {
	if personID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("person id", fmt.Errorf("%d is not greater than 0", personID))
	}
	o.personID = personID
	return nil
}

func (o *Order) setFabric(fabric string) error {
	if strings.TrimSpace(fabric) == "" {
		return errs.NewValueIsRequiredError("fabric")
	}
	o.fabric = fabric
	return nil
}

func (o *Order) setStage(stage Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	o.stage = stage
	return nil
}

func (o *Order) setTailorID(tailorID int64) error {
	if tailorID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("tailor id", fmt.Errorf("%d is not greater than 0", tailorID))
	}
	o.tailorID = tailorID
	return nil
}

func (o *Order) validateCompletion() error {
	if o.completed != o.stage.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"completed",
			fmt.Errorf("completed=%t does not match stage %s", o.completed, o.stage),
		)
	}
	if o.completed != (o.completedAt != nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"completed at",
			fmt.Errorf("completed=%t requires completion time to be set accordingly", o.completed),
		)
	}
	return nil
}
