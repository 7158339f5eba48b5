package pricing

import (
	"testing"

	"healthybowl-service/internal/domain/catalog"

	"github.com/stretchr/testify/assert"
)

func TestBuildDeliveryPricing(t *testing.T) {
	fruits := &catalog.PricingInfo{CostPerBox: 30, PricePerBox: 50}
	sprouts := &catalog.PricingInfo{CostPerBox: 20, PricePerBox: 50}

	p := BuildDeliveryPricing(fruits, sprouts, 2, 1)

	assert.Equal(t, 60.0, p.FruitsCost)
	assert.Equal(t, 20.0, p.SproutsCost)
	assert.Equal(t, 100.0, p.FruitsPrice)
	assert.Equal(t, 50.0, p.SproutsPrice)
	assert.Equal(t, 80.0, p.TotalCost)
	assert.Equal(t, 150.0, p.TotalPrice)
	assert.Equal(t, 70.0, p.Margin)
}

func TestQuotePlanMonthlyDiscount(t *testing.T) {
	quote := QuotePlan(100, "Monthly", 26)

	assert.Equal(t, 90.0, quote.PricePerDelivery)
	assert.Equal(t, 2340.0, quote.CycleTotal)
	assert.Equal(t, 260.0, quote.Savings)
}

func TestQuotePlanWeeklyNoDiscount(t *testing.T) {
	quote := QuotePlan(100, "Weekly", 6)

	assert.Equal(t, 100.0, quote.PricePerDelivery)
	assert.Equal(t, 600.0, quote.CycleTotal)
	assert.Equal(t, 0.0, quote.Savings)
}

func TestQuotePlanRoundsPerDeliveryPrice(t *testing.T) {
	// 10% off 155 is 139.5, which rounds to 140 before the cycle total
	quote := QuotePlan(155, "Monthly", 26)

	assert.Equal(t, 140.0, quote.PricePerDelivery)
	assert.Equal(t, 140.0*26, quote.CycleTotal)
}

func TestDiscountFor(t *testing.T) {
	assert.Equal(t, 0.1, DiscountFor("Monthly"))
	assert.Equal(t, 0.0, DiscountFor("Weekly"))
	assert.Equal(t, 0.0, DiscountFor("Trial"))
	assert.Equal(t, 0.0, DiscountFor(""))
}
