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

type PlanRepository struct {
	db *pgxpool.Pool
}

func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{db: db}
}

// FindByID retrieves a subscription plan by ID.
func (r *PlanRepository) FindByID(ctx context.Context, id int64) (*subscription.Plan, error) {
	query := `
		SELECT id, name, deliveries_per_cycle, cycle_days, active, created_at
		FROM subscription_plans
		WHERE id = $1
	`

	var p subscription.Plan
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.DeliveriesPerCycle, &p.CycleDays, &p.Active, &p.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find plan: %w", err)
	}
	return &p, nil
}

// ListActive retrieves all plans open for signup.
func (r *PlanRepository) ListActive(ctx context.Context) ([]subscription.Plan, error) {
	query := `
		SELECT id, name, deliveries_per_cycle, cycle_days, active, created_at
		FROM subscription_plans
		WHERE active = true
		ORDER BY cycle_days ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []subscription.Plan
	for rows.Next() {
		var p subscription.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.DeliveriesPerCycle, &p.CycleDays, &p.Active, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}
