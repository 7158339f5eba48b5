package subscription

import (
	"healthybowl-service/internal/domain/address"
	"healthybowl-service/internal/domain/delivery"
)

type ToggleRequest struct {
	SubscriptionID int64 `json:"subscription_id" binding:"required"`
}

type ToggleResponse struct {
	SubscriptionID int64  `json:"subscription_id"`
	Status         Status `json:"status"`
}

type CancelRequest struct {
	SubscriptionID int64  `json:"subscription_id" binding:"required"`
	Reason         string `json:"reason"`
}

// Overview is the dashboard payload: the subscription with its plan, address
// and the next upcoming deliveries.
type Overview struct {
	Subscription       *Subscription       `json:"subscription"`
	Plan               *Plan               `json:"plan,omitempty"`
	Address            *address.Address    `json:"address,omitempty"`
	UpcomingDeliveries []delivery.Delivery `json:"upcoming_deliveries"`
}
