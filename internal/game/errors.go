package game

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownResource means an id was referenced that the catalog does
	// not define; a data or programming defect, not a gameplay outcome.
	ErrUnknownResource = errors.New("unknown resource")

	// ErrUnknownUpgrade means an upgrade id was referenced that the
	// catalog does not define.
	ErrUnknownUpgrade = errors.New("unknown upgrade")

	// ErrNotEligible is the expected, recoverable outcome of asking to
	// buy an upgrade whose gates are not all open.
	ErrNotEligible = errors.New("upgrade not eligible")

	// ErrInsufficient is the expected, recoverable outcome of a purchase
	// or event choice the player cannot afford.
	ErrInsufficient = errors.New("insufficient resource")

	// ErrUnknownChoice means an event choice id does not exist on the
	// pending event.
	ErrUnknownChoice = errors.New("unknown event choice")

	// ErrNoPendingEvent means an event choice was submitted while no
	// event was waiting for a decision.
	ErrNoPendingEvent = errors.New("no pending event")
)

// InsufficientError names the first unaffordable resource, in cost-list
// order, so callers can report exactly what was short.
type InsufficientError struct {
	Resource string
	Need     float64
	Have     float64
}

func (e *InsufficientError) Error() string {
	return fmt.Sprintf("insufficient resource %q: need %.2f, have %.2f", e.Resource, e.Need, e.Have)
}

func (e *InsufficientError) Unwrap() error {
	return ErrInsufficient
}
