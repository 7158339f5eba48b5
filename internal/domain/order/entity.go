package order

import (
	"database/sql"
	"time"
)

type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusHalfReady      Status = "half_ready"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// forwardOrder defines the happy-path progression of a storefront order.
var forwardOrder = map[Status]int{
	StatusPending:        0,
	StatusConfirmed:      1,
	StatusPreparing:      2,
	StatusHalfReady:      3,
	StatusOutForDelivery: 4,
	StatusDelivered:      5,
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether an order may move from s to next.
// Cancelled is reachable from any non-terminal state; otherwise only
// forward moves (or a repeated set of the same status) are allowed.
func (s Status) CanTransition(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	from, okFrom := forwardOrder[s]
	to, okTo := forwardOrder[next]
	if !okFrom || !okTo {
		return false
	}
	return to >= from
}

// timestampColumns maps each status onto the column stamped when the order
// enters it. Explicit table rather than building column names from strings.
var timestampColumns = map[Status]string{
	StatusConfirmed:      "confirmed_at",
	StatusPreparing:      "preparing_at",
	StatusHalfReady:      "half_ready_at",
	StatusOutForDelivery: "out_for_delivery_at",
	StatusDelivered:      "delivered_at",
	StatusCancelled:      "cancelled_at",
}

// TimestampColumn returns the audit column for a status, if any.
func (s Status) TimestampColumn() (string, bool) {
	col, ok := timestampColumns[s]
	return col, ok
}

type Order struct {
	ID          int64         `json:"id" db:"id"`
	OrderNumber string        `json:"order_number" db:"order_number"`
	UserID      sql.NullInt64 `json:"user_id,omitempty" db:"user_id"`

	CustomerEmail     string `json:"customer_email" db:"customer_email"`
	CustomerFirstName string `json:"customer_first_name" db:"customer_first_name"`
	CustomerLastName  string `json:"customer_last_name" db:"customer_last_name"`
	CustomerPhone     string `json:"customer_phone" db:"customer_phone"`

	BillingAddress map[string]interface{} `json:"billing_address" db:"billing_address"`

	Subtotal    float64 `json:"subtotal" db:"subtotal"`
	GSTAmount   float64 `json:"gst_amount" db:"gst_amount"`
	TotalAmount float64 `json:"total_amount" db:"total_amount"`

	Status        Status `json:"status" db:"status"`
	PaymentStatus string `json:"payment_status" db:"payment_status"`

	ConfirmedAt      sql.NullTime `json:"confirmed_at,omitempty" db:"confirmed_at"`
	PreparingAt      sql.NullTime `json:"preparing_at,omitempty" db:"preparing_at"`
	HalfReadyAt      sql.NullTime `json:"half_ready_at,omitempty" db:"half_ready_at"`
	OutForDeliveryAt sql.NullTime `json:"out_for_delivery_at,omitempty" db:"out_for_delivery_at"`
	DeliveredAt      sql.NullTime `json:"delivered_at,omitempty" db:"delivered_at"`
	CancelledAt      sql.NullTime `json:"cancelled_at,omitempty" db:"cancelled_at"`

	// Courier metadata, absent until a booking succeeds
	CourierOrderID    sql.NullString `json:"courier_order_id,omitempty" db:"courier_order_id"`
	TrackingURL       sql.NullString `json:"tracking_url,omitempty" db:"tracking_url"`
	CourierStatus     sql.NullString `json:"courier_status,omitempty" db:"courier_status"`
	CourierStatusText sql.NullString `json:"courier_status_text,omitempty" db:"courier_status_text"`
	EstimatedDelivery sql.NullString `json:"estimated_delivery,omitempty" db:"estimated_delivery"`

	Items []OrderItem `json:"items,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type OrderItem struct {
	ID          int64   `json:"id" db:"id"`
	OrderID     int64   `json:"order_id" db:"order_id"`
	Name        string  `json:"name" db:"name"`
	Size        string  `json:"size" db:"size"`
	Period      string  `json:"period" db:"period"`
	Quantity    int     `json:"quantity" db:"quantity"`
	Price       float64 `json:"price" db:"price"`
	FruitMix    string  `json:"fruit_mix" db:"fruit_mix"`
	FruitMixName string `json:"fruit_mix_name" db:"fruit_mix_name"`
}
