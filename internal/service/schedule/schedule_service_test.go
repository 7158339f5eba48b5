package schedule

import (
	"testing"
	"time"

	"healthybowl-service/internal/domain/delivery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildSlotsCount(t *testing.T) {
	for _, n := range []int{1, 4, 12, 26} {
		slots := BuildSlots(date(2026, time.September, 1), n)
		assert.Len(t, slots, n)
	}
}

func TestBuildSlotsSkipsSundays(t *testing.T) {
	slots := BuildSlots(date(2026, time.September, 1), 30)
	for _, slot := range slots {
		assert.NotEqual(t, time.Sunday, slot.Weekday(), "slot on %s", slot)
	}
}

func TestBuildSlotsAscending(t *testing.T) {
	slots := BuildSlots(date(2026, time.September, 2), 20)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i].After(slots[i-1]))
	}
}

func TestBuildSlotsWeekdayStartKeepsStartDate(t *testing.T) {
	// 2026-09-02 is a Wednesday
	start := date(2026, time.September, 2)
	slots := BuildSlots(start, 5)
	require.NotEmpty(t, slots)
	assert.Equal(t, start, slots[0])
}

func TestBuildSlotsSaturdayStartAnchorsToNextMonday(t *testing.T) {
	// 2026-09-05 is a Saturday; first slot must be Monday 2026-09-07
	slots := BuildSlots(date(2026, time.September, 5), 3)
	require.NotEmpty(t, slots)
	assert.Equal(t, date(2026, time.September, 7), slots[0])
	assert.Equal(t, time.Monday, slots[0].Weekday())
}

func TestBuildSlotsSundayStartAnchorsToNextMonday(t *testing.T) {
	// 2026-09-06 is a Sunday; first slot must be Monday 2026-09-07
	slots := BuildSlots(date(2026, time.September, 6), 3)
	require.NotEmpty(t, slots)
	assert.Equal(t, date(2026, time.September, 7), slots[0])
}

func TestBuildSlotsConsecutiveWeekdays(t *testing.T) {
	// Monday start: 6 slots should be Mon-Sat of the same week
	slots := BuildSlots(date(2026, time.September, 7), 7)
	require.Len(t, slots, 7)
	assert.Equal(t, date(2026, time.September, 12), slots[5], "sixth slot is Saturday")
	// seventh slot skips Sunday and lands on the following Monday
	assert.Equal(t, date(2026, time.September, 14), slots[6])
}

func TestGroupByRoute(t *testing.T) {
	stops := []delivery.RouteStop{
		{CustomerName: "Asha", Pincode: "400001"},
		{CustomerName: "Ravi", Pincode: "400052"},
		{CustomerName: "Meera", Pincode: "400001"},
	}

	groups := GroupByRoute(stops)

	require.Len(t, groups, 2)
	require.Len(t, groups["400001"], 2)
	assert.Equal(t, "Asha", groups["400001"][0].CustomerName)
	assert.Equal(t, "Meera", groups["400001"][1].CustomerName)
	assert.Equal(t, "Ravi", groups["400052"][0].CustomerName)
}

func TestGroupByRouteEmpty(t *testing.T) {
	assert.Empty(t, GroupByRoute(nil))
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds(time.Date(2026, time.September, 2, 14, 30, 0, 0, time.UTC))

	assert.Equal(t, date(2026, time.September, 2), start)
	assert.Equal(t, 23, end.Hour())
	assert.True(t, end.Before(date(2026, time.September, 3)))
}
