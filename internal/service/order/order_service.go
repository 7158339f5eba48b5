package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"healthybowl-service/internal/domain/dispatch"
	"healthybowl-service/internal/domain/order"
	xerrors "healthybowl-service/internal/pkg/errors"
	"healthybowl-service/internal/repository/postgres"
	borzo "healthybowl-service/internal/service/dispatch"
	"healthybowl-service/internal/ws"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// GST applied on storefront order subtotals.
const gstRate = 0.18

type OrderService struct {
	db        *postgres.DB
	orderRepo *postgres.OrderRepository
	courier   *borzo.Client
	hub       *ws.Hub
	logger    *zap.Logger
}

func NewOrderService(
	db *postgres.DB,
	orderRepo *postgres.OrderRepository,
	courier *borzo.Client,
	hub *ws.Hub,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		db:        db,
		orderRepo: orderRepo,
		courier:   courier,
		hub:       hub,
		logger:    logger,
	}
}

// NewOrderNumber builds a human-readable order number, date plus a short
// random suffix, e.g. HB-20260831-4R2K.
func NewOrderNumber(now time.Time) string {
	id := ulid.Make().String()
	return fmt.Sprintf("HB-%s-%s", now.Format("20060102"), id[len(id)-4:])
}

// Totals computes subtotal, GST and grand total for a set of items.
func Totals(items []order.ItemInput) (subtotal, gst, total float64) {
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	gst = subtotal * gstRate
	total = subtotal + gst
	return subtotal, gst, total
}

// CreateOrder inserts the order and its line items atomically. Readers never
// see an order without its items.
func (s *OrderService) CreateOrder(ctx context.Context, req *order.CreateOrderRequest) (*order.CreateOrderResponse, error) {
	subtotal, gst, total := Totals(req.Items)

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = "pending"
	}

	o := &order.Order{
		OrderNumber:       NewOrderNumber(time.Now()),
		CustomerEmail:     strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		CustomerFirstName: req.CustomerFirstName,
		CustomerLastName:  req.CustomerLastName,
		CustomerPhone:     req.CustomerPhone,
		BillingAddress:    req.BillingAddress,
		Subtotal:          subtotal,
		GSTAmount:         gst,
		TotalAmount:       total,
		Status:            order.StatusPending,
		PaymentStatus:     paymentStatus,
	}
	for _, item := range req.Items {
		o.Items = append(o.Items, order.OrderItem{
			Name:         item.Name,
			Size:         item.Size,
			Period:       item.Period,
			Quantity:     item.Quantity,
			Price:        item.Price,
			FruitMix:     item.FruitMix,
			FruitMixName: item.FruitMixName,
		})
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.orderRepo.CreateWithItems(ctx, tx, o); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	s.logger.Info("order created",
		zap.Int64("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.Float64("total", total),
	)
	s.hub.Broadcast("order.created", o)

	return &order.CreateOrderResponse{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		TotalAmount: total,
	}, nil
}

// Get loads a single order with its items.
func (s *OrderService) Get(ctx context.Context, id int64) (*order.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// List retrieves orders for the admin dashboard.
func (s *OrderService) List(ctx context.Context, filters *order.ListFilters) (*order.ListResponse, error) {
	orders, total, err := s.orderRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return &order.ListResponse{
		Orders:   orders,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// UpdateStatus moves an order through its workflow and, where the transition
// calls for it, books a courier pickup. The status update itself is
// authoritative; a failed booking is reported as a warning, never rolled
// back, and a later retry of the same transition books nothing.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, next order.Status) (*order.Order, string, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	if !o.Status.CanTransition(next) {
		return nil, "", fmt.Errorf("cannot move order from %s to %s: %w", o.Status, next, xerrors.ErrConflict)
	}

	previous := o.Status
	if err := s.orderRepo.UpdateStatus(ctx, id, next, time.Now()); err != nil {
		return nil, "", err
	}
	o.Status = next

	var warning string
	if bookingType, ok := dispatch.TriggerFor(previous, next); ok {
		if err := s.bookCourier(ctx, o, bookingType); err != nil {
			s.logger.Warn("courier booking failed",
				zap.Int64("order_id", o.ID),
				zap.String("booking_type", string(bookingType)),
				zap.Error(err),
			)
			warning = "status updated but courier booking failed"
		}
	}

	s.hub.Broadcast("order.status_changed", map[string]interface{}{
		"order_id":     o.ID,
		"order_number": o.OrderNumber,
		"from":         previous,
		"to":           next,
	})

	return o, warning, nil
}

// HandleCourierCallback applies an asynchronous courier status push to the
// matching order.
func (s *OrderService) HandleCourierCallback(ctx context.Context, token string, cb *dispatch.Callback) error {
	if !s.courier.VerifyCallbackToken(token) {
		return fmt.Errorf("invalid callback token: %w", xerrors.ErrUnauthorized)
	}

	o, err := s.orderRepo.FindByCourierOrderID(ctx, cb.OrderID)
	if err != nil {
		return fmt.Errorf("no order for courier callback %s: %w", cb.OrderID, err)
	}

	if err := s.orderRepo.UpdateCourierStatus(ctx, o.ID, cb.Status, cb.StatusText); err != nil {
		return err
	}

	mapped := dispatch.MapCourierStatus(cb.Status)
	if mapped != o.Status && o.Status.CanTransition(mapped) {
		if err := s.orderRepo.UpdateStatus(ctx, o.ID, mapped, time.Now()); err != nil {
			return err
		}
		s.hub.Broadcast("order.status_changed", map[string]interface{}{
			"order_id":     o.ID,
			"order_number": o.OrderNumber,
			"from":         o.Status,
			"to":           mapped,
		})
	}

	s.logger.Info("courier callback applied",
		zap.Int64("order_id", o.ID),
		zap.String("courier_status", cb.Status),
		zap.String("mapped", string(mapped)),
	)
	return nil
}

func (s *OrderService) bookCourier(ctx context.Context, o *order.Order, bookingType dispatch.BookingType) error {
	dropoff := dropoffFromOrder(o)

	var booking *dispatch.Booking
	var err error
	switch bookingType {
	case dispatch.TypeScheduled:
		booking, err = s.courier.BookScheduled(ctx, o.OrderNumber, dropoff)
	case dispatch.TypeExpress:
		booking, err = s.courier.BookExpress(ctx, o.OrderNumber, dropoff)
	default:
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.orderRepo.UpdateCourierMetadata(ctx, o.ID,
		booking.OrderID, booking.TrackingURL, "booked", "", booking.EstimatedDelivery,
	); err != nil {
		// Booking exists either way; the callback will reconcile.
		s.logger.Warn("failed to persist courier metadata",
			zap.Int64("order_id", o.ID), zap.Error(err))
	}
	return nil
}

func dropoffFromOrder(o *order.Order) *dispatch.Dropoff {
	return &dispatch.Dropoff{
		Street:       billingField(o.BillingAddress, "address", "line1", "street"),
		House:        billingField(o.BillingAddress, "house", "line2"),
		City:         billingField(o.BillingAddress, "city"),
		Lat:          billingFloat(o.BillingAddress, "lat"),
		Lng:          billingFloat(o.BillingAddress, "lng"),
		ContactName:  strings.TrimSpace(o.CustomerFirstName + " " + o.CustomerLastName),
		ContactPhone: o.CustomerPhone,
		Instructions: billingField(o.BillingAddress, "instructions"),
	}
}

func billingField(addr map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := addr[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func billingFloat(addr map[string]interface{}, key string) float64 {
	if v, ok := addr[key].(float64); ok {
		return v
	}
	return 0
}
