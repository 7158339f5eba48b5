package postgres

import (
	"context"
	"fmt"
	"time"

	"healthybowl-service/internal/domain/billing"

	"github.com/jackc/pgx/v5/pgxpool"
)

type InvoiceRepository struct {
	db *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create inserts an invoice.
func (r *InvoiceRepository) Create(ctx context.Context, inv *billing.Invoice) error {
	query := `
		INSERT INTO invoices (subscription_id, amount, currency, paid, gateway, gateway_ref)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		inv.SubscriptionID, inv.Amount, inv.Currency, inv.Paid, inv.Gateway, inv.GatewayRef,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// UpdateAmount backfills the invoice amount once pricing is resolved.
func (r *InvoiceRepository) UpdateAmount(ctx context.Context, id int64, amount float64) error {
	_, err := r.db.Exec(ctx, `UPDATE invoices SET amount = $1 WHERE id = $2`, amount, id)
	if err != nil {
		return fmt.Errorf("failed to update invoice amount: %w", err)
	}
	return nil
}

// SumPaidBetween totals paid invoice amounts inside a time window.
func (r *InvoiceRepository) SumPaidBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM invoices
		WHERE paid = true AND created_at >= $1 AND created_at <= $2
	`, from, to).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum invoices: %w", err)
	}
	return total, nil
}
