package services

import (
	"errors"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/tailor"
)

var (
	// ErrNoTailorAvailable is returned when every tailor is occupied.
	ErrNoTailorAvailable = errors.New("no tailor is available")

	// ErrNoTailorForFabric is returned when free tailors exist but none works the fabric.
	ErrNoTailorForFabric = errors.New("no free tailor works this fabric")
)

// TailorAllocator picks a tailor for a new order and marks it occupied.
//
// Business rules:
//   - Only free tailors are candidates
//   - The first candidate in catalog order whose fabrics match (case-insensitive) wins
//   - An empty candidate list and a list without a match are distinct failures
//
// Example usage:
//
//	allocator := services.NewTailorAllocator()
//	chosen, err := allocator.Allocate(orderID, "Cotton", freeTailors)
//	switch {
//	case errors.Is(err, services.ErrNoTailorAvailable):
//	    // everyone is busy
//	case errors.Is(err, services.ErrNoTailorForFabric):
//	    // nobody free can sew cotton
//	}
type TailorAllocator struct{}

func NewTailorAllocator() TailorAllocator {
	return TailorAllocator{}
}

// Allocate returns the chosen tailor already occupied with orderID.
// The caller persists the tailor together with the order in one transaction.
func (a TailorAllocator) Allocate(orderID kernel.UUID, fabric string, free []*tailor.Tailor) (*tailor.Tailor, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	chosen, err := a.findTailor(fabric, free)
	if err != nil {
		return nil, err
	}

	if err = chosen.Occupy(orderID); err != nil {
		return nil, err
	}

	return chosen, nil
}

func (a TailorAllocator) findTailor(fabric string, free []*tailor.Tailor) (*tailor.Tailor, error) {
	candidates := 0
	for _, t := range free {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		// a stale read may hand us an occupied tailor; never double-book it
		if !t.IsFree() {
			continue
		}
		candidates++

		if t.CanWork(fabric) {
			return t, nil
		}
	}

	if candidates == 0 {
		return nil, ErrNoTailorAvailable
	}
	return nil, ErrNoTailorForFabric
}
