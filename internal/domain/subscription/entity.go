package subscription

import (
	"database/sql"
	"time"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusPaused    Status = "PAUSED"
	StatusCancelled Status = "CANCELLED"
)

type Plan struct {
	ID                 int64     `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	DeliveriesPerCycle int       `json:"deliveries_per_cycle" db:"deliveries_per_cycle"`
	CycleDays          int       `json:"cycle_days" db:"cycle_days"`
	Active             bool      `json:"active" db:"active"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

type Subscription struct {
	ID        int64 `json:"id" db:"id"`
	UserID    int64 `json:"user_id" db:"user_id"`
	PlanID    int64 `json:"plan_id" db:"plan_id"`
	AddressID int64 `json:"address_id" db:"address_id"`

	StartDate time.Time `json:"start_date" db:"start_date"`
	Status    Status    `json:"status" db:"status"`

	// Box mix snapshotted from the plan builder
	SizeML     int `json:"size_ml" db:"size_ml"`
	MixFruits  int `json:"mix_fruits" db:"mix_fruits"`
	MixSprouts int `json:"mix_sprouts" db:"mix_sprouts"`

	PricePerDelivery   float64        `json:"price_per_delivery" db:"price_per_delivery"`
	NextBillingDate    sql.NullTime   `json:"next_billing_date,omitempty" db:"next_billing_date"`
	CancelledAt        sql.NullTime   `json:"cancelled_at,omitempty" db:"cancelled_at"`
	CancellationReason sql.NullString `json:"cancellation_reason,omitempty" db:"cancellation_reason"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Toggled returns the status after a pause/resume flip. The dashboard exposes
// a single toggle: PAUSED goes back to ACTIVE, anything else becomes PAUSED.
func (s Status) Toggled() Status {
	if s == StatusPaused {
		return StatusActive
	}
	return StatusPaused
}
