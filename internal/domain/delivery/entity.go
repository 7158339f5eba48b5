package delivery

import "time"

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusSkipped   Status = "SKIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

type Delivery struct {
	ID             int64     `json:"id" db:"id"`
	SubscriptionID int64     `json:"subscription_id" db:"subscription_id"`
	ScheduledFor   time.Time `json:"scheduled_for" db:"scheduled_for"`
	Status         Status    `json:"status" db:"status"`

	// Box counts snapshotted from the subscription mix
	FruitsBoxes  int `json:"fruits_boxes" db:"fruits_boxes"`
	SproutsBoxes int `json:"sprouts_boxes" db:"sprouts_boxes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
