package dispatch

import "healthybowl-service/internal/domain/order"

// BookingType selects how the courier schedules the pickup.
type BookingType string

const (
	// TypeScheduled books a pickup ~20 minutes ahead, used when the order
	// is half ready.
	TypeScheduled BookingType = "scheduled"
	// TypeExpress books an immediate pickup, used when the order leaves
	// the kitchen.
	TypeExpress BookingType = "express"
)

// ContactPerson mirrors the courier API contact shape.
type ContactPerson struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// PointAddress mirrors the courier API address shape. Raw street text, no
// geocoding; default coordinates are used when none supplied.
type PointAddress struct {
	Street string  `json:"street"`
	House  string  `json:"house"`
	City   string  `json:"city"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

// Point is one stop on the courier route.
type Point struct {
	Type          string        `json:"type"`
	Address       PointAddress  `json:"address"`
	ContactPerson ContactPerson `json:"contact_person"`
	Note          string        `json:"note,omitempty"`
}

// BookingRequest is the payload posted to the courier orders endpoint.
type BookingRequest struct {
	Type          BookingType `json:"type"`
	Matter        string      `json:"matter"`
	VehicleTypeID int         `json:"vehicle_type_id"`
	ScheduledAt   string      `json:"scheduled_at,omitempty"`
	Points        []Point     `json:"points"`

	ClientNotification        bool `json:"is_client_notification_enabled"`
	ContactPersonNotification bool `json:"is_contact_person_notification_enabled"`
	RouteOptimizer            bool `json:"is_route_optimizer_enabled"`

	CallbackURL string `json:"callback_url"`

	MotoboxRequired   bool    `json:"is_motobox_required"`
	InsuranceRequired bool    `json:"is_insurance_required"`
	PaymentMethod     string  `json:"payment_method"`
	CODMoneyToCollect float64 `json:"cod_money_to_collect"`
}

// Booking is the courier's answer to a booking request.
type Booking struct {
	OrderID           string `json:"order_id"`
	TrackingURL       string `json:"tracking_url"`
	EstimatedDelivery string `json:"estimated_delivery_time"`
}

// Dropoff carries the customer-side details of a booking.
type Dropoff struct {
	Street       string
	House        string
	City         string
	Lat          float64
	Lng          float64
	ContactName  string
	ContactPhone string
	Instructions string
}

// Callback is the asynchronous status push from the courier.
type Callback struct {
	OrderID    string `json:"order_id"`
	Status     string `json:"status"`
	StatusText string `json:"status_text"`
	Timestamp  string `json:"timestamp"`
}

// courierStatuses maps the partner status vocabulary onto local order
// statuses. Every in-transit variant collapses to out_for_delivery.
var courierStatuses = map[string]order.Status{
	"new":         order.StatusOutForDelivery,
	"accepted":    order.StatusOutForDelivery,
	"picked_up":   order.StatusOutForDelivery,
	"in_progress": order.StatusOutForDelivery,
	"delivered":   order.StatusDelivered,
	"cancelled":   order.StatusCancelled,
	"failed":      order.StatusCancelled,
}

// MapCourierStatus translates a courier status into the local order status.
// Unknown statuses are treated as in transit.
func MapCourierStatus(courierStatus string) order.Status {
	if s, ok := courierStatuses[courierStatus]; ok {
		return s
	}
	return order.StatusOutForDelivery
}

// TriggerFor decides which booking, if any, a status transition fires.
// Entering half_ready books a scheduled pickup; entering out_for_delivery
// from any other status books an express pickup. Re-entering the same
// status fires nothing.
func TriggerFor(from, to order.Status) (BookingType, bool) {
	if from == to {
		return "", false
	}
	switch to {
	case order.StatusHalfReady:
		return TypeScheduled, true
	case order.StatusOutForDelivery:
		return TypeExpress, true
	}
	return "", false
}
