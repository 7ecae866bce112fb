package order_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allActions = []order.Action{
	order.ActionReopen,
	order.ActionStartPreparing,
	order.ActionMarkReady,
	order.ActionAssignDeliveryPerson,
	order.ActionReleaseDeliveryPerson,
	order.ActionPickUp,
	order.ActionDeliver,
	order.ActionCustomerCancel,
	order.ActionOwnerCancel,
}

type edge struct {
	from   order.Status
	action order.Action
}

// allowed lists every legal edge; anything else must be rejected.
var allowed = map[edge]order.Status{
	{order.Pending, order.ActionReopen}:                       order.Pending,
	{order.Preparing, order.ActionReopen}:                     order.Pending,
	{order.ReadyForDelivery, order.ActionReopen}:              order.Pending,
	{order.Pending, order.ActionStartPreparing}:               order.Preparing,
	{order.Preparing, order.ActionStartPreparing}:             order.Preparing,
	{order.ReadyForDelivery, order.ActionStartPreparing}:      order.Preparing,
	{order.Pending, order.ActionMarkReady}:                    order.ReadyForDelivery,
	{order.Preparing, order.ActionMarkReady}:                  order.ReadyForDelivery,
	{order.ReadyForDelivery, order.ActionMarkReady}:           order.ReadyForDelivery,
	{order.ReadyForDelivery, order.ActionAssignDeliveryPerson}: order.WaitingCourier,
	{order.WaitingCourier, order.ActionReleaseDeliveryPerson}: order.ReadyForDelivery,
	{order.WaitingCourier, order.ActionPickUp}:                order.Delivering,
	{order.Delivering, order.ActionDeliver}:                   order.Delivered,
	{order.Pending, order.ActionCustomerCancel}:               order.Cancelled,
	{order.Preparing, order.ActionCustomerCancel}:             order.Cancelled,
	{order.Pending, order.ActionOwnerCancel}:                  order.Cancelled,
	{order.Preparing, order.ActionOwnerCancel}:                order.Cancelled,
	{order.ReadyForDelivery, order.ActionOwnerCancel}:         order.Cancelled,
	{order.WaitingCourier, order.ActionOwnerCancel}:           order.Cancelled,
}

func TestStatus_Apply_CrossProduct(t *testing.T) {
	for _, s := range append([]order.Status{order.Unknown}, allStatuses...) {
		for _, a := range allActions {
			t.Run(s.String()+"/"+a.String(), func(t *testing.T) {
				next, err := s.Apply(a)

				want, ok := allowed[edge{s, a}]
				if !ok {
					require.ErrorIs(t, err, order.ErrTransitionNotAllowed)
					assert.Equal(t, s, next, "rejected transition must not move the status")
					assert.False(t, s.Can(a))

					var te *order.TransitionError
					require.ErrorAs(t, err, &te)
					assert.Equal(t, s, te.From)
					assert.Equal(t, a, te.Action)
					return
				}

				require.NoError(t, err)
				assert.Equal(t, want, next)
				assert.True(t, s.Can(a))
			})
		}
	}
}

func TestStatus_Apply_OnlyReadyForDeliveryCanBeAssigned(t *testing.T) {
	for _, s := range allStatuses {
		_, err := s.Apply(order.ActionAssignDeliveryPerson)
		if s == order.ReadyForDelivery {
			require.NoError(t, err)
			continue
		}
		require.ErrorIs(t, err, order.ErrTransitionNotAllowed, s.String())
	}
}

func TestStatus_Apply_TerminalStatusesAcceptNothing(t *testing.T) {
	for _, s := range []order.Status{order.Delivered, order.Cancelled} {
		for _, a := range allActions {
			_, err := s.Apply(a)
			require.Error(t, err)
		}
	}
}

func TestStatus_Apply_UnknownAction(t *testing.T) {
	_, err := order.Pending.Apply(order.Action(100))
	require.ErrorIs(t, err, order.ErrTransitionNotAllowed)
	assert.Contains(t, err.Error(), "action(100)")
}

func TestOwnerActionFor(t *testing.T) {
	tests := []struct {
		target order.Status
		action order.Action
	}{
		{order.Pending, order.ActionReopen},
		{order.Preparing, order.ActionStartPreparing},
		{order.ReadyForDelivery, order.ActionMarkReady},
		{order.Cancelled, order.ActionOwnerCancel},
	}
	for _, tt := range tests {
		a, err := order.OwnerActionFor(tt.target)
		require.NoError(t, err)
		assert.Equal(t, tt.action, a)
	}

	for _, target := range []order.Status{order.Unknown, order.WaitingCourier, order.Delivering, order.Delivered} {
		_, err := order.OwnerActionFor(target)
		require.ErrorIs(t, err, order.ErrStatusNotOwnerSettable, target.String())
	}
}
