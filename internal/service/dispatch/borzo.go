package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"healthybowl-service/internal/config"
	"healthybowl-service/internal/domain/dispatch"
	xerrors "healthybowl-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	// Scheduled pickups are booked this far ahead of the half-ready mark.
	scheduledPickupLead = 20 * time.Minute

	vehicleBike = 1
)

// Client books last-mile deliveries with the Borzo courier API. All calls go
// through a circuit breaker so a flapping partner does not pile up requests.
type Client struct {
	cfg        config.BorzoConfig
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*dispatch.Booking]
	logger     *zap.Logger
}

func NewClient(cfg config.BorzoConfig, logger *zap.Logger) *Client {
	settings := gobreaker.Settings{
		Name:    "borzo",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		breaker: gobreaker.NewCircuitBreaker[*dispatch.Booking](settings),
		logger:  logger,
	}
}

// BookScheduled books a pickup ~20 minutes ahead, used when an order
// reaches half ready.
func (c *Client) BookScheduled(ctx context.Context, orderNumber string, dropoff *dispatch.Dropoff) (*dispatch.Booking, error) {
	req := c.buildRequest(dispatch.TypeScheduled, orderNumber, dropoff)
	req.ScheduledAt = time.Now().Add(scheduledPickupLead).UTC().Format(time.RFC3339)
	req.Points[0].Note = fmt.Sprintf("Order #%s - Fresh fruits and sprouts", orderNumber)
	return c.createBooking(ctx, req)
}

// BookExpress books an immediate pickup, used when an order goes out for
// delivery.
func (c *Client) BookExpress(ctx context.Context, orderNumber string, dropoff *dispatch.Dropoff) (*dispatch.Booking, error) {
	req := c.buildRequest(dispatch.TypeExpress, orderNumber, dropoff)
	req.Points[0].Note = fmt.Sprintf("Order #%s - Fresh fruits and sprouts - READY FOR PICKUP", orderNumber)
	return c.createBooking(ctx, req)
}

// Cancel cancels an existing courier booking.
func (c *Client) Cancel(ctx context.Context, courierOrderID string) error {
	url := fmt.Sprintf("%s/api/orders/%s/cancel", c.cfg.BaseURL, courierOrderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build cancel request: %w", err)
	}
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("courier cancel failed: %w", xerrors.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("courier cancel returned %d: %w", resp.StatusCode, xerrors.ErrUpstream)
	}
	return nil
}

// VerifyCallbackToken checks the shared token on incoming status pushes.
func (c *Client) VerifyCallbackToken(token string) bool {
	return c.cfg.CallbackToken != "" && token == c.cfg.CallbackToken
}

func (c *Client) buildRequest(bookingType dispatch.BookingType, orderNumber string, dropoff *dispatch.Dropoff) *dispatch.BookingRequest {
	// Default to the pickup coordinates when the drop-off was never geocoded.
	lat, lng := dropoff.Lat, dropoff.Lng
	if lat == 0 && lng == 0 {
		lat, lng = c.cfg.PickupLat, c.cfg.PickupLng
	}
	city := dropoff.City
	if city == "" {
		city = c.cfg.PickupCity
	}
	note := dropoff.Instructions
	if note == "" {
		note = "Please handle with care - fresh fruits"
	}

	return &dispatch.BookingRequest{
		Type:          bookingType,
		Matter:        "HealthyBowl Order Delivery",
		VehicleTypeID: vehicleBike,
		Points: []dispatch.Point{
			{
				Type: "pickup",
				Address: dispatch.PointAddress{
					Street: c.cfg.PickupStreet,
					House:  c.cfg.PickupHouse,
					City:   c.cfg.PickupCity,
					Lat:    c.cfg.PickupLat,
					Lng:    c.cfg.PickupLng,
				},
				ContactPerson: dispatch.ContactPerson{
					Name:  c.cfg.PickupName,
					Phone: c.cfg.PickupPhone,
				},
			},
			{
				Type: "dropoff",
				Address: dispatch.PointAddress{
					Street: dropoff.Street,
					House:  dropoff.House,
					City:   city,
					Lat:    lat,
					Lng:    lng,
				},
				ContactPerson: dispatch.ContactPerson{
					Name:  dropoff.ContactName,
					Phone: dropoff.ContactPhone,
				},
				Note: note,
			},
		},
		ClientNotification:        true,
		ContactPersonNotification: true,
		RouteOptimizer:            true,
		CallbackURL:               c.cfg.CallbackURL,
		PaymentMethod:             "non_cash",
	}
}

func (c *Client) createBooking(ctx context.Context, bookingReq *dispatch.BookingRequest) (*dispatch.Booking, error) {
	booking, err := c.breaker.Execute(func() (*dispatch.Booking, error) {
		return c.postBooking(ctx, bookingReq)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (c *Client) postBooking(ctx context.Context, bookingReq *dispatch.BookingRequest) (*dispatch.Booking, error) {
	body, err := json.Marshal(bookingReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal booking request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build booking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("courier booking failed: %w", xerrors.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("courier rejected booking",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		return nil, fmt.Errorf("courier returned %d: %w", resp.StatusCode, xerrors.ErrUpstream)
	}

	var booking dispatch.Booking
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		return nil, fmt.Errorf("failed to decode courier booking: %w", err)
	}
	return &booking, nil
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("X-DV-Auth-Token", c.cfg.APIKey)
}
