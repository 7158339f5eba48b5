package order

import (
	"net/http"
	"strconv"

	dispatchDomain "healthybowl-service/internal/domain/dispatch"
	orderDomain "healthybowl-service/internal/domain/order"
	"healthybowl-service/internal/pkg/response"
	orderUsecase "healthybowl-service/internal/service/order"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orderService *orderUsecase.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService *orderUsecase.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// Create handles storefront order creation
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderDomain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	resp, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create order",
			zap.String("email", req.CustomerEmail),
			zap.Error(err),
		)
		response.FromError(c, "failed to create order", err)
		return
	}

	response.Success(c, http.StatusCreated, "order created", resp)
}

// Get returns a single order with its items
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid order id", err)
		return
	}

	o, err := h.orderService.Get(c.Request.Context(), orderID)
	if err != nil {
		response.FromError(c, "failed to load order", err)
		return
	}

	response.Success(c, http.StatusOK, "order retrieved", o)
}

// List returns orders for the admin dashboard with filters and pagination
func (h *OrderHandler) List(c *gin.Context) {
	var filters orderDomain.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	resp, err := h.orderService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list orders", err)
		return
	}

	response.Success(c, http.StatusOK, "orders retrieved", resp)
}

// UpdateStatus moves an order through its workflow. A failed courier booking
// is surfaced as a warning on an otherwise successful response.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid order id", err)
		return
	}

	var req orderDomain.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	o, warning, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		response.FromError(c, "failed to update order status", err)
		return
	}

	if warning != "" {
		response.SuccessWithWarning(c, http.StatusOK, "order status updated", warning, o)
		return
	}
	response.Success(c, http.StatusOK, "order status updated", o)
}

// CourierCallback receives asynchronous status pushes from the courier
// partner. Authenticated by the shared callback token, not a JWT.
func (h *OrderHandler) CourierCallback(c *gin.Context) {
	token := c.GetHeader("X-Callback-Token")

	var cb dispatchDomain.Callback
	if err := c.ShouldBindJSON(&cb); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid callback", err)
		return
	}

	if err := h.orderService.HandleCourierCallback(c.Request.Context(), token, &cb); err != nil {
		h.logger.Warn("courier callback rejected",
			zap.String("courier_order_id", cb.OrderID),
			zap.Error(err),
		)
		response.FromError(c, "callback rejected", err)
		return
	}

	response.Success(c, http.StatusOK, "callback processed", nil)
}
