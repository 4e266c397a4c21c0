package commands_test

import (
	"testing"

	"fueldelivery/internal/core/application/usecases/commands"
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignDriverCommandHandler_Handle(t *testing.T) {
	t.Run("should assign a known driver", func(t *testing.T) {
		store := newMemOrderStore()
		placed := placeInStore(t, store)
		driverID := kernel.NewUUID()
		directory := new(MockAccountDirectory)
		directory.On("UserExists", mock.Anything, driverID).Return(true, nil).Once()
		h := commands.NewAssignDriverCommandHandler(memOrderUoWFactory{store}, directory)
		v := int64(1)
		cmd, err := commands.NewAssignDriverCommand(placed.ID(), driverID, &v)
		require.NoError(t, err)

		details, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		require.NotNil(t, details.DriverID)
		assert.True(t, details.DriverID.IsEqual(driverID))
		assert.Equal(t, int64(2), details.Version)
		assert.True(t, store.snapshot(placed.ID()).spec.DriverID.IsEqual(driverID))
	})

	t.Run("should fail for an unknown driver", func(t *testing.T) {
		store := newMemOrderStore()
		placed := placeInStore(t, store)
		directory := new(MockAccountDirectory)
		directory.On("UserExists", mock.Anything, mock.Anything).Return(false, nil).Once()
		h := commands.NewAssignDriverCommandHandler(memOrderUoWFactory{store}, directory)
		cmd, err := commands.NewAssignDriverCommand(placed.ID(), kernel.NewUUID(), nil)
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should refuse terminal orders", func(t *testing.T) {
		store := newMemOrderStore()
		placed := placeInStore(t, store)
		require.NoError(t, placed.Cancel(placed.UpdatedAt()))
		require.NoError(t, store.Update(t.Context(), placed))

		directory := new(MockAccountDirectory)
		directory.On("UserExists", mock.Anything, mock.Anything).Return(true, nil).Once()
		h := commands.NewAssignDriverCommandHandler(memOrderUoWFactory{store}, directory)
		cmd, err := commands.NewAssignDriverCommand(placed.ID(), kernel.NewUUID(), nil)
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
		assert.Equal(t, order.Cancelled, store.snapshot(placed.ID()).status)
	})
}
