package commands_test

import (
	"testing"

	"tailoring/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlaceOrderCommand(t *testing.T) {
	cmd, err := commands.NewPlaceOrderCommand(3, "  Cotton ")

	require.NoError(t, err)
	assert.Equal(t, int64(3), cmd.PersonID())
	assert.Equal(t, "Cotton", cmd.Fabric())
	assert.NoError(t, cmd.Validate())
}

func TestNewPlaceOrderCommand_BlankFabricIsLeftToTheHandler(t *testing.T) {
	cmd, err := commands.NewPlaceOrderCommand(3, "   ")

	require.NoError(t, err)
	assert.Empty(t, cmd.Fabric())
	assert.NoError(t, cmd.Validate())
}

func TestPlaceOrderCommand_ZeroValueIsRejected(t *testing.T) {
	var cmd commands.PlaceOrderCommand

	assert.ErrorIs(t, cmd.Validate(), commands.ErrPlaceOrderCommandIsNotConstructed)
}
