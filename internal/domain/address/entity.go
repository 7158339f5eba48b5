package address

import (
	"database/sql"
	"time"
)

type Address struct {
	ID        int64           `json:"id" db:"id"`
	UserID    int64           `json:"user_id" db:"user_id"`
	Line1     string          `json:"line1" db:"line1"`
	Line2     string          `json:"line2,omitempty" db:"line2"`
	City      string          `json:"city" db:"city"`
	State     string          `json:"state" db:"state"`
	Pincode   string          `json:"pincode" db:"pincode"`
	Landmark  string          `json:"landmark,omitempty" db:"landmark"`
	Lat       sql.NullFloat64 `json:"lat,omitempty" db:"lat"`
	Lng       sql.NullFloat64 `json:"lng,omitempty" db:"lng"`
	IsDefault bool            `json:"is_default" db:"is_default"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// Input is the address shape accepted at checkout.
type Input struct {
	Line1   string `json:"line1" binding:"required"`
	Line2   string `json:"line2"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Pincode string `json:"pincode" binding:"required"`
}
