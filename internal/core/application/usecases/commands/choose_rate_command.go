package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrChooseRateCommandIsNotConstructed = errors.New(
	"ChooseRateCommand must be created via NewChooseRateCommand constructor",
)

// ChooseRateCommand records the human pick of a single-order run in REVIEW.
type ChooseRateCommand struct { //nolint:recvcheck //using for validation
	runID     kernel.UUID
	orderID   kernel.UUID
	rateToken string

	guard guard.ConstructorGuard
}

func NewChooseRateCommand(runID, orderID kernel.UUID, rateToken string) (ChooseRateCommand, error) {
	cmd := ChooseRateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRunID(runID),
		cmd.setOrderID(orderID),
		cmd.setRateToken(rateToken),
	); err != nil {
		return ChooseRateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChooseRateCommand) Validate() error {
	return c.guard.Validate(ErrChooseRateCommandIsNotConstructed)
}

func (c ChooseRateCommand) RunID() kernel.UUID {
	return c.runID
}

func (c ChooseRateCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChooseRateCommand) RateToken() string {
	return c.rateToken
}

func (c *ChooseRateCommand) setRunID(runID kernel.UUID) error {
	if err := runID.Validate(); err != nil {
		return err
	}
	c.runID = runID
	return nil
}

func (c *ChooseRateCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChooseRateCommand) setRateToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errs.NewValueIsRequiredError("rateToken")
	}
	c.rateToken = token
	return nil
}
