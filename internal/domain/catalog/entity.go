package catalog

import "time"

type Product struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	SizeML    int       `json:"size_ml" db:"size_ml"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Pricing struct {
	ID            int64     `json:"id" db:"id"`
	ProductID     int64     `json:"product_id" db:"product_id"`
	CostPerBox    float64   `json:"cost_per_box" db:"cost_per_box"`
	PricePerBox   float64   `json:"price_per_box" db:"price_per_box"`
	EffectiveFrom time.Time `json:"effective_from" db:"effective_from"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	Product *Product `json:"product,omitempty" db:"-"`
}

// PricingInfo is the per-box price pair currently in effect for a product.
type PricingInfo struct {
	CostPerBox  float64 `json:"cost_per_box"`
	PricePerBox float64 `json:"price_per_box"`
}
