package order

type ItemInput struct {
	Name         string  `json:"name" binding:"required"`
	Size         string  `json:"size"`
	Period       string  `json:"period"`
	Quantity     int     `json:"quantity" binding:"required,min=1"`
	Price        float64 `json:"price" binding:"required,min=0"`
	FruitMix     string  `json:"fruit_mix"`
	FruitMixName string  `json:"fruit_mix_name"`
}

type CreateOrderRequest struct {
	CustomerEmail     string                 `json:"customer_email" binding:"required,email"`
	CustomerFirstName string                 `json:"customer_first_name" binding:"required"`
	CustomerLastName  string                 `json:"customer_last_name"`
	CustomerPhone     string                 `json:"customer_phone" binding:"required"`
	BillingAddress    map[string]interface{} `json:"billing_address" binding:"required"`
	Items             []ItemInput            `json:"items" binding:"required,min=1,dive"`
	PaymentStatus     string                 `json:"payment_status"`
}

type CreateOrderResponse struct {
	OrderID     int64   `json:"order_id"`
	OrderNumber string  `json:"order_number"`
	TotalAmount float64 `json:"total_amount"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}

type ListFilters struct {
	Statuses []string `form:"status"`
	Search   string   `form:"search"`
	Page     int      `form:"page"`
	PageSize int      `form:"page_size"`
}

type ListResponse struct {
	Orders   []Order `json:"orders"`
	Total    int64   `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}
