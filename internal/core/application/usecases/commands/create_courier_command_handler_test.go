package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCourierCommandHandler_Handle(t *testing.T) {
	t.Run("should persist a new courier", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCreateCourierCommand("John Doe")
		require.NoError(t, err)

		mockRepo := new(MockCourierRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockCourierUoWFactory)

		mock.InOrder(
			mockUoW.On("Begin", ctx).Return(nil).Once(),
			mockUoW.On("CourierRepository").Return(mockRepo).Once(),
			mockRepo.On("Add", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Once(),
			mockUoW.On("Commit", ctx).Return(nil).Once(),
			mockUoW.On("Rollback", ctx).Return(nil).Once(),
		)
		mockFactory.On("Create").Return(mockUoW).Once()

		handler := commands.NewCreateCourierCommandHandler(mockFactory)

		require.NoError(t, handler.Handle(ctx, cmd))
		mockFactory.AssertExpectations(t)
		mockUoW.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})

	t.Run("should roll back when the repository fails", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCreateCourierCommand("John Doe")
		require.NoError(t, err)

		repoErr := errors.New("insert failed")
		mockRepo := new(MockCourierRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockCourierUoWFactory)

		mockUoW.On("Begin", ctx).Return(nil).Once()
		mockUoW.On("CourierRepository").Return(mockRepo).Once()
		mockRepo.On("Add", ctx, mock.AnythingOfType("*courier.Courier")).Return(repoErr).Once()
		mockUoW.On("Rollback", ctx).Return(nil).Once()
		mockFactory.On("Create").Return(mockUoW).Once()

		handler := commands.NewCreateCourierCommandHandler(mockFactory)

		require.ErrorIs(t, handler.Handle(ctx, cmd), repoErr)
		mockUoW.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("should reject an unconstructed command", func(t *testing.T) {
		handler := commands.NewCreateCourierCommandHandler(new(MockCourierUoWFactory))

		var cmd commands.CreateCourierCommand
		require.ErrorIs(t, handler.Handle(t.Context(), cmd), commands.ErrCreateCourierCommandIsNotConstructed)
	})
}
