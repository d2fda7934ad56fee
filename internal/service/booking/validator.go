package booking

import (
	"fmt"

	"github.com/Domenick1991/roombooking/internal/domain"
	"github.com/Domenick1991/roombooking/internal/slotclock"
)

// Validator decides whether a candidate slot range may be admitted as a new
// pending request given the live requests already on the books.
type Validator struct {
	clock *slotclock.Clock
}

func NewValidator(clock *slotclock.Clock) *Validator {
	return &Validator{clock: clock}
}

// Validate checks the candidate range [start, end) against every live
// (pending or approved) request in existing. existing must be in creation
// order; the first overlapping live request is reported so repeated calls
// name the same blocker.
func (v *Validator) Validate(existing []domain.BookingRequest, start, end int) error {
	if start >= end {
		return fmt.Errorf("range [%d, %d): %w", start, end, domain.ErrInvalidRange)
	}
	if start < 0 || end > v.clock.SlotCount() {
		return fmt.Errorf("range [%d, %d) outside [0, %d): %w", start, end, v.clock.SlotCount(), domain.ErrInvalidRange)
	}
	for _, r := range existing {
		if !r.Status.Live() {
			continue
		}
		if start < r.EndSlot && r.StartSlot < end {
			return &domain.ConflictError{WithRequestID: r.ID}
		}
	}
	return nil
}
