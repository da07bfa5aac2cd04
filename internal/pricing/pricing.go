// Package pricing derives line and order totals from cart contents. It is
// pure integer arithmetic over millime amounts; the same formula previews
// totals client-side and re-validates them at ingestion.
package pricing

import (
	"fmt"

	"snackpos/internal/models"
)

// ValidationError reports a cart or order payload the calculator refuses to
// price: a non-positive quantity, or a stored total that disagrees with a
// fresh recomputation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "pricing: " + e.Reason
}

// ComputeLineTotal prices one line: (unitPrice + Σ supplement price×quantity)
// × quantity. Supplement cost is per base unit, so a doubled item doubles its
// supplement cost too.
func ComputeLineTotal(unitPrice int64, quantity int, supplements []models.Supplement) (int64, error) {
	if quantity < 1 {
		return 0, &ValidationError{Reason: fmt.Sprintf("quantity must be at least 1, got %d", quantity)}
	}

	perUnit := unitPrice
	for _, s := range supplements {
		if s.Quantity < 1 {
			return 0, &ValidationError{Reason: fmt.Sprintf("supplement %q quantity must be at least 1, got %d", s.Name, s.Quantity)}
		}
		perUnit += s.UnitPrice * int64(s.Quantity)
	}

	return perUnit * int64(quantity), nil
}

// ComputeOrderTotal sums the line totals of an order, recomputing each line
// and rejecting any line whose stored total disagrees. This is the
// server-side check against tampered client payloads.
func ComputeOrderTotal(lines []models.OrderLine) (int64, error) {
	var total int64
	for i, line := range lines {
		lineTotal, err := ComputeLineTotal(line.UnitPrice, line.Quantity, line.Supplements)
		if err != nil {
			return 0, err
		}
		if lineTotal != line.LineTotal {
			return 0, &ValidationError{
				Reason: fmt.Sprintf("line %d (%s): declared total %d does not match computed %d", i, line.Name, line.LineTotal, lineTotal),
			}
		}
		total += lineTotal
	}
	return total, nil
}
