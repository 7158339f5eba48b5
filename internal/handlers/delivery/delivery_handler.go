package delivery

import (
	"net/http"
	"strconv"

	deliveryDomain "healthybowl-service/internal/domain/delivery"
	"healthybowl-service/internal/pkg/response"
	deliveryUsecase "healthybowl-service/internal/service/delivery"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DeliveryHandler exposes the admin-side delivery actions.
type DeliveryHandler struct {
	deliveryService *deliveryUsecase.DeliveryService
	logger          *zap.Logger
}

func NewDeliveryHandler(deliveryService *deliveryUsecase.DeliveryService, logger *zap.Logger) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryService: deliveryService,
		logger:          logger,
	}
}

// Reschedule moves a delivery to a new date
func (h *DeliveryHandler) Reschedule(c *gin.Context) {
	deliveryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid delivery id", err)
		return
	}

	var req deliveryDomain.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	d, err := h.deliveryService.Reschedule(c.Request.Context(), deliveryID, req.NewDate)
	if err != nil {
		response.FromError(c, "failed to reschedule delivery", err)
		return
	}

	response.Success(c, http.StatusOK, "delivery rescheduled", d)
}

// Complete marks a delivery as delivered
func (h *DeliveryHandler) Complete(c *gin.Context) {
	deliveryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid delivery id", err)
		return
	}

	if err := h.deliveryService.Complete(c.Request.Context(), deliveryID); err != nil {
		response.FromError(c, "failed to complete delivery", err)
		return
	}

	response.Success(c, http.StatusOK, "delivery completed", nil)
}
