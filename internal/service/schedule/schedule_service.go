package schedule

import (
	"context"
	"fmt"
	"time"

	"healthybowl-service/internal/domain/delivery"
	"healthybowl-service/internal/repository/postgres"

	"go.uber.org/zap"
)

// Sunday is the weekly rest day; no deliveries are ever scheduled on it.
const restDay = time.Sunday

type ScheduleService struct {
	deliveryRepo *postgres.DeliveryRepository
	db           *postgres.DB
	logger       *zap.Logger
}

func NewScheduleService(deliveryRepo *postgres.DeliveryRepository, db *postgres.DB, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		deliveryRepo: deliveryRepo,
		db:           db,
		logger:       logger,
	}
}

// GenerateDeliverySchedule expands a subscription start date into its first
// cycle of deliveries and persists them as one atomic batch. Box counts are
// zero at generation time and filled in by a later sync from the
// subscription mix.
func (s *ScheduleService) GenerateDeliverySchedule(ctx context.Context, subscriptionID int64, startDate time.Time, deliveriesPerCycle int) error {
	if deliveriesPerCycle < 1 {
		return fmt.Errorf("deliveries per cycle must be at least 1")
	}

	slots := BuildSlots(startDate, deliveriesPerCycle)

	deliveries := make([]delivery.Delivery, 0, len(slots))
	for _, slot := range slots {
		deliveries = append(deliveries, delivery.Delivery{
			SubscriptionID: subscriptionID,
			ScheduledFor:   slot,
			Status:         delivery.StatusScheduled,
			FruitsBoxes:    0,
			SproutsBoxes:   0,
		})
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.deliveryRepo.BulkInsert(ctx, tx, deliveries); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delivery schedule: %w", err)
	}

	s.logger.Info("delivery schedule generated",
		zap.Int64("subscription_id", subscriptionID),
		zap.Int("deliveries", len(deliveries)),
	)
	return nil
}

// BuildSlots walks the calendar forward from the start date and emits n
// delivery dates, skipping the rest day. A weekend start first advances to
// the Monday of the following week, so a Saturday start never yields a
// Saturday first delivery.
func BuildSlots(start time.Time, n int) []time.Time {
	current := start
	if isWeekend(current) {
		current = nextMonday(current)
	}

	slots := make([]time.Time, 0, n)
	for len(slots) < n {
		if current.Weekday() != restDay {
			slots = append(slots, current)
		}
		current = current.AddDate(0, 0, 1)
	}
	return slots
}

// GroupByRoute partitions a day's delivery stops by pincode for route
// planning. Input order is preserved within each group.
func GroupByRoute(stops []delivery.RouteStop) map[string][]delivery.RouteStop {
	groups := make(map[string][]delivery.RouteStop)
	for _, stop := range stops {
		groups[stop.Pincode] = append(groups[stop.Pincode], stop)
	}
	return groups
}

// DeliveriesForDate returns all scheduled stops within the given calendar day.
func (s *ScheduleService) DeliveriesForDate(ctx context.Context, date time.Time) ([]delivery.RouteStop, error) {
	dayStart, dayEnd := DayBounds(date)
	return s.deliveryRepo.ListStopsForDate(ctx, dayStart, dayEnd)
}

// RouteGroupsForDate returns the day's stops partitioned by pincode.
func (s *ScheduleService) RouteGroupsForDate(ctx context.Context, date time.Time) (map[string][]delivery.RouteStop, error) {
	stops, err := s.DeliveriesForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return GroupByRoute(stops), nil
}

// DayBounds returns the inclusive start and end of the calendar day.
func DayBounds(date time.Time) (time.Time, time.Time) {
	year, month, day := date.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, date.Location())
	end := time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), date.Location())
	return start, end
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// nextMonday returns the Monday of the week after t.
func nextMonday(t time.Time) time.Time {
	for {
		t = t.AddDate(0, 0, 1)
		if t.Weekday() == time.Monday {
			return t
		}
	}
}
