package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrOpenSingleOrderRunCommandIsNotConstructed = errors.New(
	"OpenSingleOrderRunCommand must be created via NewOpenSingleOrderRunCommand constructor",
)

// OpenSingleOrderRunCommand opens a one-order run with a user chosen origin.
//
// Example:
//
//	cmd, err := NewOpenSingleOrderRunCommand(orderID, "05001000", true)
//	if err != nil {
//	    return err
//	}
//	runID, err := handler.Handle(ctx, cmd)
type OpenSingleOrderRunCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	originCode     string
	cashOnDelivery bool

	guard guard.ConstructorGuard
}

// NewOpenSingleOrderRunCommand validates the order id and the origin code.
// With cashOnDelivery the carrier collects the order's declared value.
func NewOpenSingleOrderRunCommand(
	orderID kernel.UUID,
	originCode string,
	cashOnDelivery bool,
) (OpenSingleOrderRunCommand, error) {
	cmd := OpenSingleOrderRunCommand{
		cashOnDelivery: cashOnDelivery,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOriginCode(originCode),
	); err != nil {
		return OpenSingleOrderRunCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OpenSingleOrderRunCommand) Validate() error {
	return c.guard.Validate(ErrOpenSingleOrderRunCommandIsNotConstructed)
}

func (c OpenSingleOrderRunCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c OpenSingleOrderRunCommand) OriginCode() string {
	return c.originCode
}

func (c OpenSingleOrderRunCommand) CashOnDelivery() bool {
	return c.cashOnDelivery
}

func (c *OpenSingleOrderRunCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *OpenSingleOrderRunCommand) setOriginCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("originCode")
	}
	c.originCode = code
	return nil
}
