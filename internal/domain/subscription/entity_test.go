package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggled(t *testing.T) {
	assert.Equal(t, StatusActive, StatusPaused.Toggled())
	assert.Equal(t, StatusPaused, StatusActive.Toggled())

	// The raw flip pauses anything not paused; the service layer rejects
	// toggling a cancelled subscription before this is ever consulted.
	assert.Equal(t, StatusPaused, StatusCancelled.Toggled())
}
