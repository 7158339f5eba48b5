package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthybowl-service/internal/domain/delivery"
	xerrors "healthybowl-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DeliveryRepository struct {
	db *pgxpool.Pool
}

func NewDeliveryRepository(db *pgxpool.Pool) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

// BulkInsert writes a whole batch of deliveries inside the given
// transaction. Either all rows land or none do.
func (r *DeliveryRepository) BulkInsert(ctx context.Context, tx pgx.Tx, deliveries []delivery.Delivery) error {
	if len(deliveries) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(deliveries))
	for _, d := range deliveries {
		rows = append(rows, []interface{}{
			d.SubscriptionID, d.ScheduledFor, d.Status, d.FruitsBoxes, d.SproutsBoxes,
		})
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"deliveries"},
		[]string{"subscription_id", "scheduled_for", "status", "fruits_boxes", "sprouts_boxes"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert deliveries: %w", err)
	}
	return nil
}

// FindNextScheduled returns the earliest SCHEDULED delivery for a
// subscription dated at or after the given time.
func (r *DeliveryRepository) FindNextScheduled(ctx context.Context, subscriptionID int64, from time.Time) (*delivery.Delivery, error) {
	query := `
		SELECT id, subscription_id, scheduled_for, status, fruits_boxes, sprouts_boxes, created_at, updated_at
		FROM deliveries
		WHERE subscription_id = $1 AND status = 'SCHEDULED' AND scheduled_for >= $2
		ORDER BY scheduled_for ASC
		LIMIT 1
	`

	var d delivery.Delivery
	err := r.db.QueryRow(ctx, query, subscriptionID, from).Scan(
		&d.ID, &d.SubscriptionID, &d.ScheduledFor, &d.Status,
		&d.FruitsBoxes, &d.SproutsBoxes, &d.CreatedAt, &d.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find next scheduled delivery: %w", err)
	}
	return &d, nil
}

// FindByID retrieves a delivery by ID.
func (r *DeliveryRepository) FindByID(ctx context.Context, id int64) (*delivery.Delivery, error) {
	query := `
		SELECT id, subscription_id, scheduled_for, status, fruits_boxes, sprouts_boxes, created_at, updated_at
		FROM deliveries
		WHERE id = $1
	`

	var d delivery.Delivery
	err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.SubscriptionID, &d.ScheduledFor, &d.Status,
		&d.FruitsBoxes, &d.SproutsBoxes, &d.CreatedAt, &d.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find delivery: %w", err)
	}
	return &d, nil
}

// UpdateStatus sets a delivery's status.
func (r *DeliveryRepository) UpdateStatus(ctx context.Context, id int64, status delivery.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE deliveries SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update delivery status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// UpdateScheduledFor overwrites a delivery's scheduled date.
func (r *DeliveryRepository) UpdateScheduledFor(ctx context.Context, id int64, newDate time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE deliveries SET scheduled_for = $1, updated_at = NOW() WHERE id = $2`,
		newDate, id,
	)
	if err != nil {
		return fmt.Errorf("failed to reschedule delivery: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ListUpcoming retrieves the next scheduled deliveries for a subscription.
func (r *DeliveryRepository) ListUpcoming(ctx context.Context, subscriptionID int64, from time.Time, limit int) ([]delivery.Delivery, error) {
	query := `
		SELECT id, subscription_id, scheduled_for, status, fruits_boxes, sprouts_boxes, created_at, updated_at
		FROM deliveries
		WHERE subscription_id = $1 AND status = 'SCHEDULED' AND scheduled_for >= $2
		ORDER BY scheduled_for ASC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, subscriptionID, from, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming deliveries: %w", err)
	}
	defer rows.Close()

	return collectDeliveries(rows)
}

// ListStopsForDate retrieves all scheduled deliveries within a day, joined
// with customer and address details, ordered by time.
func (r *DeliveryRepository) ListStopsForDate(ctx context.Context, dayStart, dayEnd time.Time) ([]delivery.RouteStop, error) {
	query := `
		SELECT d.id, d.subscription_id, d.scheduled_for, d.status, d.fruits_boxes, d.sprouts_boxes,
		       d.created_at, d.updated_at,
		       u.name, u.email, a.line1, a.city, a.pincode
		FROM deliveries d
		JOIN subscriptions s ON s.id = d.subscription_id
		JOIN users u ON u.id = s.user_id
		JOIN addresses a ON a.id = s.address_id
		WHERE d.scheduled_for >= $1 AND d.scheduled_for <= $2 AND d.status = 'SCHEDULED'
		ORDER BY d.scheduled_for ASC
	`

	rows, err := r.db.Query(ctx, query, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries for date: %w", err)
	}
	defer rows.Close()

	var stops []delivery.RouteStop
	for rows.Next() {
		var st delivery.RouteStop
		if err := rows.Scan(
			&st.Delivery.ID, &st.Delivery.SubscriptionID, &st.Delivery.ScheduledFor, &st.Delivery.Status,
			&st.Delivery.FruitsBoxes, &st.Delivery.SproutsBoxes,
			&st.Delivery.CreatedAt, &st.Delivery.UpdatedAt,
			&st.CustomerName, &st.CustomerEmail, &st.Line1, &st.City, &st.Pincode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan route stop: %w", err)
		}
		stops = append(stops, st)
	}
	return stops, rows.Err()
}

// CountScheduledBetween counts scheduled deliveries within a time window.
func (r *DeliveryRepository) CountScheduledBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM deliveries WHERE scheduled_for >= $1 AND scheduled_for <= $2 AND status = 'SCHEDULED'`,
		from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count deliveries: %w", err)
	}
	return count, nil
}

func collectDeliveries(rows pgx.Rows) ([]delivery.Delivery, error) {
	var deliveries []delivery.Delivery
	for rows.Next() {
		var d delivery.Delivery
		if err := rows.Scan(
			&d.ID, &d.SubscriptionID, &d.ScheduledFor, &d.Status,
			&d.FruitsBoxes, &d.SproutsBoxes, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan delivery: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}
