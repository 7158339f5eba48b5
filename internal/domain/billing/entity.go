package billing

import "time"

type Invoice struct {
	ID             int64     `json:"id" db:"id"`
	SubscriptionID int64     `json:"subscription_id" db:"subscription_id"`
	Amount         float64   `json:"amount" db:"amount"`
	Currency       string    `json:"currency" db:"currency"`
	Paid           bool      `json:"paid" db:"paid"`
	Gateway        string    `json:"gateway" db:"gateway"`
	GatewayRef     string    `json:"gateway_ref" db:"gateway_ref"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
