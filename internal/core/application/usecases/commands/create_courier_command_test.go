package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateCourierCommand(t *testing.T) {
	t.Run("should create command with valid name", func(t *testing.T) {
		cmd, err := commands.NewCreateCourierCommand("John Doe")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "John Doe", cmd.Name())
		assert.NoError(t, cmd.CourierID().Validate())
	})

	t.Run("should return error for empty name", func(t *testing.T) {
		_, err := commands.NewCreateCourierCommand("")

		require.ErrorIs(t, err, commands.ErrNameIsRequired)
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var cmd commands.CreateCourierCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateCourierCommandIsNotConstructed)
	})
}
