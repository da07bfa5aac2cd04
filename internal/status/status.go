// Package status is the single source of truth for legal order fulfillment
// transitions. The persisted status lives in the order store; every
// status-change request must pass through ApplyTransition first.
package status

import (
	"fmt"

	"snackpos/internal/models"
)

// InvalidTransitionError reports a status change requested from a state that
// does not allow it.
type InvalidTransitionError struct {
	From   models.OrderStatus
	To     models.OrderStatus
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("status: cannot transition %s -> %s: %s", e.From, e.To, e.Reason)
}

// Terminal reports whether no further transition is permitted out of s.
func Terminal(s models.OrderStatus) bool {
	return s == models.StatusDelivered || s == models.StatusCancelled
}

// ApplyTransition returns the order with the requested status applied.
// Re-setting the current status is a no-op success. The progression
// pending -> preparing -> ready -> delivered may skip forward steps and may
// divert to cancelled at any point before delivery; the only forbidden move
// is out of a terminal state.
func ApplyTransition(o models.Order, requested models.OrderStatus) (models.Order, error) {
	if o.Status == requested {
		return o, nil
	}
	if Terminal(o.Status) {
		return models.Order{}, &InvalidTransitionError{From: o.Status, To: requested, Reason: "terminal state"}
	}
	o.Status = requested
	return o, nil
}
