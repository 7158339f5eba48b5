package dispatch

import (
	"testing"

	"healthybowl-service/internal/domain/order"

	"github.com/stretchr/testify/assert"
)

func TestTriggerForHalfReadyBooksScheduled(t *testing.T) {
	bookingType, ok := TriggerFor(order.StatusPreparing, order.StatusHalfReady)

	assert.True(t, ok)
	assert.Equal(t, TypeScheduled, bookingType)
}

func TestTriggerForOutForDeliveryBooksExpress(t *testing.T) {
	bookingType, ok := TriggerFor(order.StatusHalfReady, order.StatusOutForDelivery)

	assert.True(t, ok)
	assert.Equal(t, TypeExpress, bookingType)
}

func TestTriggerForSameStatusBooksNothing(t *testing.T) {
	_, ok := TriggerFor(order.StatusHalfReady, order.StatusHalfReady)
	assert.False(t, ok, "re-applying a status must not double-book")

	_, ok = TriggerFor(order.StatusOutForDelivery, order.StatusOutForDelivery)
	assert.False(t, ok)
}

func TestTriggerForOtherTransitionsBookNothing(t *testing.T) {
	for _, to := range []order.Status{
		order.StatusConfirmed, order.StatusPreparing, order.StatusDelivered, order.StatusCancelled,
	} {
		_, ok := TriggerFor(order.StatusPending, to)
		assert.False(t, ok, "transition to %s should not book", to)
	}
}

func TestMapCourierStatus(t *testing.T) {
	cases := map[string]order.Status{
		"new":         order.StatusOutForDelivery,
		"accepted":    order.StatusOutForDelivery,
		"picked_up":   order.StatusOutForDelivery,
		"in_progress": order.StatusOutForDelivery,
		"delivered":   order.StatusDelivered,
		"cancelled":   order.StatusCancelled,
		"failed":      order.StatusCancelled,
	}
	for courierStatus, want := range cases {
		assert.Equal(t, want, MapCourierStatus(courierStatus), "courier status %q", courierStatus)
	}
}

func TestMapCourierStatusUnknownIsInTransit(t *testing.T) {
	assert.Equal(t, order.StatusOutForDelivery, MapCourierStatus("warehouse_hold"))
	assert.Equal(t, order.StatusOutForDelivery, MapCourierStatus(""))
}
