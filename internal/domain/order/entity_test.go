package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionForwardOnly(t *testing.T) {
	assert.True(t, StatusPending.CanTransition(StatusConfirmed))
	assert.True(t, StatusConfirmed.CanTransition(StatusPreparing))
	assert.True(t, StatusPreparing.CanTransition(StatusHalfReady))
	assert.True(t, StatusHalfReady.CanTransition(StatusOutForDelivery))
	assert.True(t, StatusOutForDelivery.CanTransition(StatusDelivered))

	assert.False(t, StatusOutForDelivery.CanTransition(StatusPreparing))
	assert.False(t, StatusDelivered.CanTransition(StatusPending))
}

func TestCanTransitionSkipsAllowed(t *testing.T) {
	// The kitchen may jump stages, e.g. straight to out for delivery
	assert.True(t, StatusPending.CanTransition(StatusOutForDelivery))
	assert.True(t, StatusConfirmed.CanTransition(StatusDelivered))
}

func TestCanTransitionCancellation(t *testing.T) {
	assert.True(t, StatusPending.CanTransition(StatusCancelled))
	assert.True(t, StatusHalfReady.CanTransition(StatusCancelled))
	assert.True(t, StatusOutForDelivery.CanTransition(StatusCancelled))

	assert.False(t, StatusDelivered.CanTransition(StatusCancelled))
	assert.False(t, StatusCancelled.CanTransition(StatusCancelled))
}

func TestCanTransitionTerminalStates(t *testing.T) {
	for _, next := range []Status{StatusPending, StatusConfirmed, StatusOutForDelivery, StatusDelivered} {
		assert.False(t, StatusDelivered.CanTransition(next))
		assert.False(t, StatusCancelled.CanTransition(next))
	}
}

func TestCanTransitionSameStatus(t *testing.T) {
	// Re-applying the current status is a no-op transition, not an error
	assert.True(t, StatusHalfReady.CanTransition(StatusHalfReady))
	assert.True(t, StatusPending.CanTransition(StatusPending))
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.False(t, StatusPending.CanTransition(Status("shipped")))
	assert.False(t, Status("shipped").CanTransition(StatusConfirmed))
}

func TestTimestampColumn(t *testing.T) {
	cases := map[Status]string{
		StatusConfirmed:      "confirmed_at",
		StatusPreparing:      "preparing_at",
		StatusHalfReady:      "half_ready_at",
		StatusOutForDelivery: "out_for_delivery_at",
		StatusDelivered:      "delivered_at",
		StatusCancelled:      "cancelled_at",
	}
	for status, want := range cases {
		col, ok := status.TimestampColumn()
		assert.True(t, ok)
		assert.Equal(t, want, col)
	}

	_, ok := StatusPending.TimestampColumn()
	assert.False(t, ok, "pending has no audit column, created_at covers it")
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusOutForDelivery.IsTerminal())
}
