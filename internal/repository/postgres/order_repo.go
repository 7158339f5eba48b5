package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"healthybowl-service/internal/domain/order"
	xerrors "healthybowl-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const orderColumns = `
	id, order_number, user_id,
	customer_email, customer_first_name, customer_last_name, customer_phone,
	billing_address, subtotal, gst_amount, total_amount,
	status, payment_status,
	confirmed_at, preparing_at, half_ready_at, out_for_delivery_at, delivered_at, cancelled_at,
	courier_order_id, tracking_url, courier_status, courier_status_text, estimated_delivery,
	created_at, updated_at
`

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var o order.Order
	var billingJSON []byte

	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID,
		&o.CustomerEmail, &o.CustomerFirstName, &o.CustomerLastName, &o.CustomerPhone,
		&billingJSON, &o.Subtotal, &o.GSTAmount, &o.TotalAmount,
		&o.Status, &o.PaymentStatus,
		&o.ConfirmedAt, &o.PreparingAt, &o.HalfReadyAt, &o.OutForDeliveryAt, &o.DeliveredAt, &o.CancelledAt,
		&o.CourierOrderID, &o.TrackingURL, &o.CourierStatus, &o.CourierStatusText, &o.EstimatedDelivery,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	if len(billingJSON) > 0 {
		if err := json.Unmarshal(billingJSON, &o.BillingAddress); err != nil {
			return nil, fmt.Errorf("failed to unmarshal billing address: %w", err)
		}
	}
	return &o, nil
}

// CreateWithItems inserts an order and its items in a single transaction,
// the composite insert the storefront relies on. No partial order is ever
// visible to readers.
func (r *OrderRepository) CreateWithItems(ctx context.Context, tx pgx.Tx, o *order.Order) error {
	billingJSON, err := json.Marshal(o.BillingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal billing address: %w", err)
	}

	query := `
		INSERT INTO orders (
			order_number, user_id,
			customer_email, customer_first_name, customer_last_name, customer_phone,
			billing_address, subtotal, gst_amount, total_amount,
			status, payment_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		o.OrderNumber, o.UserID,
		o.CustomerEmail, o.CustomerFirstName, o.CustomerLastName, o.CustomerPhone,
		billingJSON, o.Subtotal, o.GSTAmount, o.TotalAmount,
		o.Status, o.PaymentStatus,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, name, size, period, quantity, price, fruit_mix, fruit_mix_name)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, item.OrderID, item.Name, item.Size, item.Period, item.Quantity, item.Price, item.FruitMix, item.FruitMixName,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}
	return nil
}

// FindByID retrieves an order with its items.
func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// FindByCourierOrderID retrieves the order a courier callback refers to.
func (r *OrderRepository) FindByCourierOrderID(ctx context.Context, courierOrderID string) (*order.Order, error) {
	return scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE courier_order_id = $1`, courierOrderID))
}

// UpdateStatus sets the order status and stamps the matching audit column.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status order.Status, at time.Time) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`
	args := []interface{}{status, id}

	if col, ok := status.TimestampColumn(); ok {
		query = fmt.Sprintf(
			`UPDATE orders SET status = $1, %s = $2, updated_at = NOW() WHERE id = $3`, col)
		args = []interface{}{status, at, id}
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// UpdateCourierMetadata records a successful courier booking on the order.
func (r *OrderRepository) UpdateCourierMetadata(ctx context.Context, id int64, courierOrderID, trackingURL, status, statusText, estimatedDelivery string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE orders
		SET courier_order_id = $1, tracking_url = $2, courier_status = $3,
		    courier_status_text = $4, estimated_delivery = $5, updated_at = NOW()
		WHERE id = $6
	`, courierOrderID, trackingURL, status, statusText, estimatedDelivery, id)
	if err != nil {
		return fmt.Errorf("failed to update courier metadata: %w", err)
	}
	return nil
}

// UpdateCourierStatus records a courier status push against the order.
func (r *OrderRepository) UpdateCourierStatus(ctx context.Context, id int64, courierStatus, statusText string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE orders
		SET courier_status = $1, courier_status_text = $2, updated_at = NOW()
		WHERE id = $3
	`, courierStatus, statusText, id)
	if err != nil {
		return fmt.Errorf("failed to update courier status: %w", err)
	}
	return nil
}

// List retrieves orders matching the admin dashboard filters, newest first.
func (r *OrderRepository) List(ctx context.Context, filters *order.ListFilters) ([]order.Order, int64, error) {
	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	where := `WHERE 1=1`
	args := []interface{}{}
	argn := 1

	if len(filters.Statuses) > 0 {
		where += fmt.Sprintf(` AND status = ANY($%d)`, argn)
		args = append(args, pq.Array(filters.Statuses))
		argn++
	}
	if filters.Search != "" {
		where += fmt.Sprintf(` AND (order_number ILIKE $%d OR customer_email ILIKE $%d)`, argn, argn)
		args = append(args, "%"+filters.Search+"%")
		argn++
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM orders %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, argn, argn+1,
	)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, total, rows.Err()
}

func (r *OrderRepository) loadItems(ctx context.Context, o *order.Order) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, name, size, period, quantity, price, fruit_mix, fruit_mix_name
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, o.ID)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item order.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.Name, &item.Size, &item.Period,
			&item.Quantity, &item.Price, &item.FruitMix, &item.FruitMixName,
		); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}
