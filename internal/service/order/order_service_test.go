package order

import (
	"strings"
	"testing"
	"time"

	orderDomain "healthybowl-service/internal/domain/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderNumberFormat(t *testing.T) {
	now := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)
	number := NewOrderNumber(now)

	parts := strings.Split(number, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "HB", parts[0])
	assert.Equal(t, "20260831", parts[1])
	assert.Len(t, parts[2], 4)
}

func TestNewOrderNumberUnique(t *testing.T) {
	seen := make(map[string]bool)
	now := time.Now()
	for i := 0; i < 100; i++ {
		n := NewOrderNumber(now)
		assert.False(t, seen[n], "duplicate order number %s", n)
		seen[n] = true
	}
}

func TestTotalsAppliesGST(t *testing.T) {
	items := []orderDomain.ItemInput{
		{Name: "Fruit Bowl", Quantity: 2, Price: 100},
		{Name: "Sprout Bowl", Quantity: 1, Price: 50},
	}

	subtotal, gst, total := Totals(items)

	assert.Equal(t, 250.0, subtotal)
	assert.InDelta(t, 45.0, gst, 1e-9)
	assert.InDelta(t, 295.0, total, 1e-9)
}

func TestTotalsEmpty(t *testing.T) {
	subtotal, gst, total := Totals(nil)

	assert.Zero(t, subtotal)
	assert.Zero(t, gst)
	assert.Zero(t, total)
}

func TestDropoffFromOrder(t *testing.T) {
	o := &orderDomain.Order{
		CustomerFirstName: "Asha",
		CustomerLastName:  "Kumar",
		CustomerPhone:     "+919812345678",
		BillingAddress: map[string]interface{}{
			"address":      "12 Hill Road",
			"city":         "Mumbai",
			"lat":          19.05,
			"lng":          72.83,
			"instructions": "Ring twice",
		},
	}

	d := dropoffFromOrder(o)

	assert.Equal(t, "12 Hill Road", d.Street)
	assert.Equal(t, "Mumbai", d.City)
	assert.Equal(t, 19.05, d.Lat)
	assert.Equal(t, 72.83, d.Lng)
	assert.Equal(t, "Asha Kumar", d.ContactName)
	assert.Equal(t, "+919812345678", d.ContactPhone)
	assert.Equal(t, "Ring twice", d.Instructions)
}

func TestDropoffFromOrderFallbackKeys(t *testing.T) {
	o := &orderDomain.Order{
		CustomerFirstName: "Ravi",
		BillingAddress: map[string]interface{}{
			"line1": "Flat 4, Sea View",
			"city":  "Mumbai",
		},
	}

	d := dropoffFromOrder(o)

	assert.Equal(t, "Flat 4, Sea View", d.Street)
	assert.Equal(t, "Ravi", d.ContactName)
	assert.Zero(t, d.Lat)
	assert.Zero(t, d.Lng)
}
