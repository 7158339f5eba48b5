package postgres

import (
	"context"
	"errors"
	"fmt"

	"healthybowl-service/internal/domain/subscription"
	xerrors "healthybowl-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const subscriptionColumns = `
	id, user_id, plan_id, address_id, start_date, status,
	size_ml, mix_fruits, mix_sprouts, price_per_delivery,
	next_billing_date, cancelled_at, cancellation_reason,
	created_at, updated_at
`

type SubscriptionRepository struct {
	db *pgxpool.Pool
}

func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func scanSubscription(row pgx.Row) (*subscription.Subscription, error) {
	var s subscription.Subscription
	err := row.Scan(
		&s.ID, &s.UserID, &s.PlanID, &s.AddressID, &s.StartDate, &s.Status,
		&s.SizeML, &s.MixFruits, &s.MixSprouts, &s.PricePerDelivery,
		&s.NextBillingDate, &s.CancelledAt, &s.CancellationReason,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan subscription: %w", err)
	}
	return &s, nil
}

// Create inserts a subscription, optionally inside a transaction.
func (r *SubscriptionRepository) Create(ctx context.Context, tx pgx.Tx, s *subscription.Subscription) error {
	query := `
		INSERT INTO subscriptions (
			user_id, plan_id, address_id, start_date, status,
			size_ml, mix_fruits, mix_sprouts, price_per_delivery, next_billing_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	args := []interface{}{
		s.UserID, s.PlanID, s.AddressID, s.StartDate, s.Status,
		s.SizeML, s.MixFruits, s.MixSprouts, s.PricePerDelivery, s.NextBillingDate,
	}

	var err error
	if tx != nil {
		err = tx.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	} else {
		err = r.db.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	}
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

// FindByIDForUser retrieves a subscription only if it belongs to the user.
// A subscription owned by someone else is indistinguishable from a missing one.
func (r *SubscriptionRepository) FindByIDForUser(ctx context.Context, id, userID int64) (*subscription.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1 AND user_id = $2`
	return scanSubscription(r.db.QueryRow(ctx, query, id, userID))
}

// FindCurrentByUser retrieves the user's active or paused subscription.
func (r *SubscriptionRepository) FindCurrentByUser(ctx context.Context, userID int64) (*subscription.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE user_id = $1 AND status IN ('ACTIVE', 'PAUSED')
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanSubscription(r.db.QueryRow(ctx, query, userID))
}

// UpdateStatus sets the subscription status. Last write wins.
func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, id int64, status subscription.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE subscriptions SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// UpdatePricePerDelivery backfills the per-delivery price after checkout.
func (r *SubscriptionRepository) UpdatePricePerDelivery(ctx context.Context, id int64, price float64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE subscriptions SET price_per_delivery = $1, updated_at = NOW() WHERE id = $2`,
		price, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription price: %w", err)
	}
	return nil
}

// Cancel marks the subscription cancelled with a reason. Rows are never
// deleted, only status-transitioned.
func (r *SubscriptionRepository) Cancel(ctx context.Context, id int64, reason string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE subscriptions
		SET status = 'CANCELLED', cancelled_at = NOW(), cancellation_reason = $1, updated_at = NOW()
		WHERE id = $2
	`, reason, id)
	if err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// CountByStatus counts subscriptions in a given status.
func (r *SubscriptionRepository) CountByStatus(ctx context.Context, status subscription.Status) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM subscriptions WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return count, nil
}
