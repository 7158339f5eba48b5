package dashboard

import (
	"net/http"

	deliveryDomain "healthybowl-service/internal/domain/delivery"
	subscriptionDomain "healthybowl-service/internal/domain/subscription"
	"healthybowl-service/internal/middleware"
	"healthybowl-service/internal/pkg/response"
	deliveryUsecase "healthybowl-service/internal/service/delivery"
	subscriptionUsecase "healthybowl-service/internal/service/subscription"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardHandler serves the customer dashboard: the current subscription
// and the self-service actions on it.
type DashboardHandler struct {
	subscriptionService *subscriptionUsecase.SubscriptionService
	deliveryService     *deliveryUsecase.DeliveryService
	logger              *zap.Logger
}

func NewDashboardHandler(
	subscriptionService *subscriptionUsecase.SubscriptionService,
	deliveryService *deliveryUsecase.DeliveryService,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		subscriptionService: subscriptionService,
		deliveryService:     deliveryService,
		logger:              logger,
	}
}

// Overview returns the customer's subscription with plan, address and
// upcoming deliveries
func (h *DashboardHandler) Overview(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	overview, err := h.subscriptionService.Overview(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load dashboard",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		response.FromError(c, "failed to load dashboard", err)
		return
	}

	response.Success(c, http.StatusOK, "dashboard retrieved", overview)
}

// TogglePause flips the subscription between active and paused
func (h *DashboardHandler) TogglePause(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	var req subscriptionDomain.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	resp, err := h.subscriptionService.TogglePause(c.Request.Context(), userID, req.SubscriptionID)
	if err != nil {
		response.FromError(c, "failed to update subscription", err)
		return
	}

	response.Success(c, http.StatusOK, "subscription updated", resp)
}

// Cancel cancels the subscription with an optional reason
func (h *DashboardHandler) Cancel(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	var req subscriptionDomain.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.subscriptionService.Cancel(c.Request.Context(), userID, &req); err != nil {
		response.FromError(c, "failed to cancel subscription", err)
		return
	}

	response.Success(c, http.StatusOK, "subscription cancelled", nil)
}

// SkipNext marks the next scheduled delivery as skipped
func (h *DashboardHandler) SkipNext(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	var req deliveryDomain.SkipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	d, err := h.deliveryService.SkipNext(c.Request.Context(), userID, req.SubscriptionID)
	if err != nil {
		response.FromError(c, "failed to skip delivery", err)
		return
	}

	response.Success(c, http.StatusOK, "delivery skipped", d)
}
