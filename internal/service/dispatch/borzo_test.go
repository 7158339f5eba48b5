package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"healthybowl-service/internal/config"
	"healthybowl-service/internal/domain/dispatch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(baseURL string) config.BorzoConfig {
	return config.BorzoConfig{
		BaseURL:       baseURL,
		APIKey:        "test-key",
		CallbackURL:   "https://example.com/callback",
		CallbackToken: "cb-token",
		PickupStreet:  "HealthyBowl Kitchen",
		PickupCity:    "Mumbai",
		PickupLat:     19.0760,
		PickupLng:     72.8777,
		PickupName:    "HealthyBowl Team",
		PickupPhone:   "+919876543210",
	}
}

func testDropoff() *dispatch.Dropoff {
	return &dispatch.Dropoff{
		Street:       "12 Hill Road",
		City:         "Mumbai",
		Lat:          19.05,
		Lng:          72.83,
		ContactName:  "Asha Kumar",
		ContactPhone: "+919812345678",
	}
}

func TestBookScheduledSetsPickupTime(t *testing.T) {
	var got dispatch.BookingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.Equal(t, "test-key", r.Header.Get("X-DV-Auth-Token"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(dispatch.Booking{
			OrderID:     "bz-123",
			TrackingURL: "https://track.example/bz-123",
		})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), zap.NewNop())

	booking, err := c.BookScheduled(context.Background(), "HB-20260831-AB12", testDropoff())
	require.NoError(t, err)
	assert.Equal(t, "bz-123", booking.OrderID)

	assert.Equal(t, dispatch.TypeScheduled, got.Type)
	require.NotEmpty(t, got.ScheduledAt)

	scheduledAt, err := time.Parse(time.RFC3339, got.ScheduledAt)
	require.NoError(t, err)
	lead := time.Until(scheduledAt)
	assert.Greater(t, lead, 18*time.Minute)
	assert.Less(t, lead, 22*time.Minute)

	require.Len(t, got.Points, 2)
	assert.Equal(t, "pickup", got.Points[0].Type)
	assert.Equal(t, "dropoff", got.Points[1].Type)
	assert.Contains(t, got.Points[0].Note, "HB-20260831-AB12")
}

func TestBookExpressHasNoPickupTime(t *testing.T) {
	var got dispatch.BookingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(dispatch.Booking{OrderID: "bz-456"})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), zap.NewNop())

	_, err := c.BookExpress(context.Background(), "HB-20260831-CD34", testDropoff())
	require.NoError(t, err)

	assert.Equal(t, dispatch.TypeExpress, got.Type)
	assert.Empty(t, got.ScheduledAt)
	assert.Contains(t, got.Points[0].Note, "READY FOR PICKUP")
}

func TestBookingDefaultsMissingCoordinatesToPickup(t *testing.T) {
	var got dispatch.BookingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(dispatch.Booking{OrderID: "bz-789"})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), zap.NewNop())

	dropoff := testDropoff()
	dropoff.Lat, dropoff.Lng = 0, 0
	dropoff.City = ""

	_, err := c.BookExpress(context.Background(), "HB-20260831-EF56", dropoff)
	require.NoError(t, err)

	require.Len(t, got.Points, 2)
	assert.Equal(t, 19.0760, got.Points[1].Address.Lat)
	assert.Equal(t, 72.8777, got.Points[1].Address.Lng)
	assert.Equal(t, "Mumbai", got.Points[1].Address.City)
}

func TestBookingUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), zap.NewNop())

	_, err := c.BookExpress(context.Background(), "HB-20260831-GH78", testDropoff())
	assert.Error(t, err)
}

func TestVerifyCallbackToken(t *testing.T) {
	c := NewClient(testConfig("https://example.invalid"), zap.NewNop())

	assert.True(t, c.VerifyCallbackToken("cb-token"))
	assert.False(t, c.VerifyCallbackToken("wrong"))
	assert.False(t, c.VerifyCallbackToken(""))
}

func TestVerifyCallbackTokenUnsetNeverMatches(t *testing.T) {
	cfg := testConfig("https://example.invalid")
	cfg.CallbackToken = ""
	c := NewClient(cfg, zap.NewNop())

	assert.False(t, c.VerifyCallbackToken(""))
	assert.False(t, c.VerifyCallbackToken("anything"))
}
