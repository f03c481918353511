package order

import (
	"fmt"
	"strings"

	"tailoring/internal/pkg/errs"
)

// Stage is the production step an order is in.
//
//	PLACED ──> CONFIRM ──> FABRIC_CUT ──> STITCHING ──> QUALITY_CHECK ──> DISPATCHED
//
// Values are ordered, so a later stage always compares greater than an earlier one.
type Stage int

const (
	// Unknown catches uninitialised Stage values.
	Unknown Stage = iota
	Placed
	Confirm
	FabricCut
	Stitching
	QualityCheck
	Dispatched
)

func getStageNames() map[Stage]string {
	return map[Stage]string{
		Placed:       "PLACED",
		Confirm:      "CONFIRM",
		FabricCut:    "FABRIC_CUT",
		Stitching:    "STITCHING",
		QualityCheck: "QUALITY_CHECK",
		Dispatched:   "DISPATCHED",
	}
}

// Stages lists every valid stage in production order.
func Stages() []Stage {
	return []Stage{Placed, Confirm, FabricCut, Stitching, QualityCheck, Dispatched}
}

// ParseStage maps the persisted/wire name back to a Stage. Matching ignores case.
func ParseStage(name string) (Stage, error) {
	for stage, stageName := range getStageNames() {
		if strings.EqualFold(stageName, strings.TrimSpace(name)) {
			return stage, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a known stage", name))
}

func (s Stage) String() string {
	if name, ok := getStageNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s Stage) Validate() error {
	if _, ok := getStageNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// IsTerminal reports whether no transition leaves s.
func (s Stage) IsTerminal() bool {
	return s == Dispatched
}

// Next returns the stage that directly follows s.
// DISPATCHED and invalid stages have no successor.
func (s Stage) Next() (Stage, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"stage",
			fmt.Errorf("%s is terminal", s),
		)
	}
	return s + 1, nil
}

// ValidateTransition checks that target is the immediate successor of s.
func (s Stage) ValidateTransition(target Stage) error {
	next, err := s.Next()
	if err != nil {
		return err
	}
	if target != next {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage",
			fmt.Errorf("%s cannot follow %s", target, s),
		)
	}
	return nil
}
