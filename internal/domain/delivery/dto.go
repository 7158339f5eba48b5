package delivery

import "time"

type SkipRequest struct {
	SubscriptionID int64 `json:"subscription_id" binding:"required"`
}

type RescheduleRequest struct {
	NewDate time.Time `json:"new_date" binding:"required"`
}

// RouteStop is one delivery joined with the customer and drop-off details
// the route planner needs.
type RouteStop struct {
	Delivery      Delivery `json:"delivery"`
	CustomerName  string   `json:"customer_name"`
	CustomerEmail string   `json:"customer_email"`
	Line1         string   `json:"line1"`
	City          string   `json:"city"`
	Pincode       string   `json:"pincode"`
}
