package postgres

import (
	"context"
	"errors"
	"fmt"

	"healthybowl-service/internal/domain/catalog"
	xerrors "healthybowl-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PricingRepository struct {
	db *pgxpool.Pool
}

func NewPricingRepository(db *pgxpool.Pool) *PricingRepository {
	return &PricingRepository{db: db}
}

// CurrentForProduct returns the latest effective pricing for an active
// product identified by name and box size.
func (r *PricingRepository) CurrentForProduct(ctx context.Context, productName string, sizeML int) (*catalog.PricingInfo, error) {
	query := `
		SELECT pr.cost_per_box, pr.price_per_box
		FROM pricing pr
		JOIN products p ON p.id = pr.product_id
		WHERE p.name = $1 AND p.size_ml = $2 AND p.active = true
		  AND pr.effective_from <= NOW()
		ORDER BY pr.effective_from DESC
		LIMIT 1
	`

	var info catalog.PricingInfo
	err := r.db.QueryRow(ctx, query, productName, sizeML).Scan(&info.CostPerBox, &info.PricePerBox)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find current pricing: %w", err)
	}
	return &info, nil
}

// Create appends a new pricing row effective immediately. Historical rows
// are never overwritten.
func (r *PricingRepository) Create(ctx context.Context, p *catalog.Pricing) error {
	query := `
		INSERT INTO pricing (product_id, cost_per_box, price_per_box, effective_from)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, effective_from, created_at
	`

	err := r.db.QueryRow(ctx, query, p.ProductID, p.CostPerBox, p.PricePerBox).
		Scan(&p.ID, &p.EffectiveFrom, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create pricing: %w", err)
	}
	return nil
}

// ListCurrent retrieves all effective pricing rows with their products.
func (r *PricingRepository) ListCurrent(ctx context.Context) ([]catalog.Pricing, error) {
	query := `
		SELECT DISTINCT ON (pr.product_id)
		       pr.id, pr.product_id, pr.cost_per_box, pr.price_per_box, pr.effective_from, pr.created_at,
		       p.id, p.name, p.size_ml, p.active, p.created_at
		FROM pricing pr
		JOIN products p ON p.id = pr.product_id
		WHERE pr.effective_from <= NOW()
		ORDER BY pr.product_id, pr.effective_from DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing: %w", err)
	}
	defer rows.Close()

	var result []catalog.Pricing
	for rows.Next() {
		var pr catalog.Pricing
		var p catalog.Product
		if err := rows.Scan(
			&pr.ID, &pr.ProductID, &pr.CostPerBox, &pr.PricePerBox, &pr.EffectiveFrom, &pr.CreatedAt,
			&p.ID, &p.Name, &p.SizeML, &p.Active, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pricing: %w", err)
		}
		pr.Product = &p
		result = append(result, pr)
	}
	return result, rows.Err()
}
