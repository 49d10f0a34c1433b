package commands

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrChangeSelectionCommandIsNotConstructed = errors.New(
	"ChangeSelectionCommand must be created via NewChangeSelectionCommand constructor",
)

// SelectionAction is the edit applied to a run's selection.
type SelectionAction int

const (
	ToggleOrder SelectionAction = iota + 1
	SelectAll
	DeselectAll
)

// ChangeSelectionCommand edits the selection of a batch run in SELECT.
//
// Example:
//
//	cmd, err := NewChangeSelectionCommand(runID, ToggleOrder, orderID)
//	all, err := NewChangeSelectionCommand(runID, SelectAll, kernel.UUID{})
type ChangeSelectionCommand struct { //nolint:recvcheck //using for validation
	runID   kernel.UUID
	action  SelectionAction
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewChangeSelectionCommand validates the command. orderID is only read for ToggleOrder.
func NewChangeSelectionCommand(
	runID kernel.UUID,
	action SelectionAction,
	orderID kernel.UUID,
) (ChangeSelectionCommand, error) {
	cmd := ChangeSelectionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRunID(runID),
		cmd.setAction(action, orderID),
	); err != nil {
		return ChangeSelectionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeSelectionCommand) Validate() error {
	return c.guard.Validate(ErrChangeSelectionCommandIsNotConstructed)
}

func (c ChangeSelectionCommand) RunID() kernel.UUID {
	return c.runID
}

func (c ChangeSelectionCommand) Action() SelectionAction {
	return c.action
}

func (c ChangeSelectionCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *ChangeSelectionCommand) setRunID(runID kernel.UUID) error {
	if err := runID.Validate(); err != nil {
		return err
	}
	c.runID = runID
	return nil
}

func (c *ChangeSelectionCommand) setAction(action SelectionAction, orderID kernel.UUID) error {
	switch action {
	case ToggleOrder:
		if err := orderID.Validate(); err != nil {
			return err
		}
		c.orderID = orderID
	case SelectAll, DeselectAll:
	default:
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a selection action", action))
	}
	c.action = action
	return nil
}
