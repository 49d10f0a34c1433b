package order

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// Status represents whether an order still needs a shipping label.
//
// State transitions:
//
//	Pending ──> Shipped
//
// Shipped is final. Status values are persisted as integers.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending orders have no tracking number and may be selected for a run.
	Pending

	// Shipped orders carry a tracking number.
	Shipped
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "Unknown",
		Pending: "Pending",
		Shipped: "Shipped",
	}
}

// Validate checks if the Status value is Pending or Shipped.
func (s Status) Validate() error {
	if s != Pending && s != Shipped {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
//
// Example:
//
//	fmt.Println(order.Status()) // Output: "Pending"
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Ship transitions the status to Shipped.
//
// Valid transitions:
//   - Pending -> Shipped
//
// Invalid transitions:
//   - Shipped -> Shipped (a second label for the same order)
//   - Unknown -> Shipped
func (s Status) Ship() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to ship", s.String()),
		)
	}

	return Shipped, nil
}
