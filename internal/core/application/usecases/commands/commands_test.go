package commands_test

import (
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenSingleOrderRunCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewOpenSingleOrderRunCommand(id, " 05001000 ", true)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, "05001000", cmd.OriginCode())
	assert.True(t, cmd.CashOnDelivery())
	assert.NoError(t, cmd.Validate())
}

func TestNewOpenSingleOrderRunCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewOpenSingleOrderRunCommand(kernel.UUID{}, "  ", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "originCode")
}

func TestNewChangeSelectionCommand(t *testing.T) {
	runID := kernel.NewUUID()

	t.Run("toggle needs an order", func(t *testing.T) {
		_, err := commands.NewChangeSelectionCommand(runID, commands.ToggleOrder, kernel.UUID{})
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("select all ignores the order", func(t *testing.T) {
		cmd, err := commands.NewChangeSelectionCommand(runID, commands.SelectAll, kernel.UUID{})
		require.NoError(t, err)
		assert.Equal(t, commands.SelectAll, cmd.Action())
		assert.Equal(t, runID, cmd.RunID())
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := commands.NewChangeSelectionCommand(runID, commands.SelectionAction(42), kernel.UUID{})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing run", func(t *testing.T) {
		_, err := commands.NewChangeSelectionCommand(kernel.UUID{}, commands.DeselectAll, kernel.UUID{})
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestNewChooseRateCommand(t *testing.T) {
	runID, orderID := kernel.NewUUID(), kernel.NewUUID()

	cmd, err := commands.NewChooseRateCommand(runID, orderID, " tok-1 ")
	require.NoError(t, err)
	assert.Equal(t, runID, cmd.RunID())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, "tok-1", cmd.RateToken())

	_, err = commands.NewChooseRateCommand(runID, orderID, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestRunCommands_RequireRunID(t *testing.T) {
	_, err := commands.NewStartQuotingCommand(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	_, err = commands.NewConfirmGenerationCommand(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	_, err = commands.NewCancelRunCommand(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	id := kernel.NewUUID()
	cmd, err := commands.NewCancelRunCommand(id)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.RunID())
}

func TestCommands_ZeroValueIsNotConstructed(t *testing.T) {
	assert.ErrorIs(t, commands.OpenBatchRunCommand{}.Validate(), commands.ErrOpenBatchRunCommandIsNotConstructed)
	assert.ErrorIs(t, commands.OpenSingleOrderRunCommand{}.Validate(),
		commands.ErrOpenSingleOrderRunCommandIsNotConstructed)
	assert.ErrorIs(t, commands.ChangeSelectionCommand{}.Validate(), commands.ErrChangeSelectionCommandIsNotConstructed)
	assert.ErrorIs(t, commands.StartQuotingCommand{}.Validate(), commands.ErrStartQuotingCommandIsNotConstructed)
	assert.ErrorIs(t, commands.ConfirmGenerationCommand{}.Validate(),
		commands.ErrConfirmGenerationCommandIsNotConstructed)
	assert.ErrorIs(t, commands.CancelRunCommand{}.Validate(), commands.ErrCancelRunCommandIsNotConstructed)
	assert.ErrorIs(t, commands.ChooseRateCommand{}.Validate(), commands.ErrChooseRateCommandIsNotConstructed)
}
