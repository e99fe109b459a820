package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	courierID := kernel.NewUUID()
	cmd, err := commands.NewCreateCourierCommand(courierID, "Jane Smith")
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	uow := new(MockCourierUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Add", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateCourierCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	added, ok := courierRepo.Calls[0].Arguments[1].(*courier.Courier)
	require.True(t, ok)
	assert.Equal(t, "Jane Smith", added.Name())
	assert.Equal(t, courier.Offline, added.Availability())
}

func TestCreateCourierCommand_NameIsRequired(t *testing.T) {
	_, err := commands.NewCreateCourierCommand(kernel.NewUUID(), "")
	require.ErrorIs(t, err, courier.ErrNameIsRequired)
}
