package catalog

type UpdatePricingRequest struct {
	ProductID   int64   `json:"product_id" binding:"required"`
	CostPerBox  float64 `json:"cost_per_box" binding:"required,min=0"`
	PricePerBox float64 `json:"price_per_box" binding:"required,min=0"`
}
