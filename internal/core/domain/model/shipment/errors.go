package shipment

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRatesAvailable is recorded when the aggregator returns an empty offer list.
	ErrNoRatesAvailable = errors.New("No hay tarifas disponibles") //nolint:staticcheck // shown verbatim to merchants
	// ErrRateTokenConsumed is returned when a rate token is used a second time.
	ErrRateTokenConsumed = errors.New("rate token already consumed")
	// ErrRateNotChosen is returned when generation needs a rate nobody picked yet.
	ErrRateNotChosen = errors.New("no rate has been chosen")
)

// QuoteError records why one order could not be quoted. Its message is the
// underlying cause, so the review screen shows "No hay tarifas disponibles" or the
// aggregator's own failure text.
type QuoteError struct {
	OrderNumber string
	Cause       error
}

// NewQuoteError creates a QuoteError; a nil cause means the offer list was empty.
func NewQuoteError(orderNumber string, cause error) *QuoteError {
	if cause == nil {
		cause = ErrNoRatesAvailable
	}
	return &QuoteError{OrderNumber: orderNumber, Cause: cause}
}

func (e *QuoteError) Error() string {
	if e.Cause == nil {
		return ErrNoRatesAvailable.Error()
	}
	return e.Cause.Error()
}

func (e *QuoteError) Unwrap() error {
	return e.Cause
}

// GenerationError records a failed LabelIssuer call for one order. The order keeps
// no tracking number and is not retried.
type GenerationError struct {
	OrderNumber string
	Cause       error
}

func NewGenerationError(orderNumber string, cause error) *GenerationError {
	return &GenerationError{OrderNumber: orderNumber, Cause: cause}
}

// Error formats the message as "Orden {order_number}: {message}".
func (e *GenerationError) Error() string {
	msg := "error desconocido"
	if e.Cause != nil {
		msg = e.Cause.Error()
	}
	return fmt.Sprintf("Orden %s: %s", e.OrderNumber, msg)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
