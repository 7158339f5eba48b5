package pricing

import (
	"net/http"

	"healthybowl-service/internal/domain/catalog"
	"healthybowl-service/internal/pkg/response"
	pricingUsecase "healthybowl-service/internal/service/pricing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PricingHandler struct {
	pricingService *pricingUsecase.PricingService
	logger         *zap.Logger
}

func NewPricingHandler(pricingService *pricingUsecase.PricingService, logger *zap.Logger) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
		logger:         logger,
	}
}

type quoteRequest struct {
	PlanID     int64 `json:"plan_id" binding:"required"`
	SizeML     int   `json:"size_ml" binding:"required"`
	MixFruits  int   `json:"mix_fruits" binding:"required,min=1"`
	MixSprouts int   `json:"mix_sprouts" binding:"required,min=1"`
}

// Quote prices a plan configuration before checkout (public endpoint)
func (h *PricingHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	quote, err := h.pricingService.CalculateSubscriptionPricing(
		c.Request.Context(), req.PlanID, req.SizeML, req.MixFruits, req.MixSprouts)
	if err != nil {
		response.FromError(c, "failed to calculate pricing", err)
		return
	}

	response.Success(c, http.StatusOK, "pricing calculated", quote)
}

// ListCurrent returns the current per-box pricing for every product
func (h *PricingHandler) ListCurrent(c *gin.Context) {
	pricings, err := h.pricingService.ListCurrent(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list pricing", err)
		return
	}

	response.Success(c, http.StatusOK, "pricing retrieved", pricings)
}

// Update appends a new pricing row for a product (admin only)
func (h *PricingHandler) Update(c *gin.Context) {
	var req catalog.UpdatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	p, err := h.pricingService.UpdatePricing(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("failed to update pricing",
			zap.Int64("product_id", req.ProductID),
			zap.Error(err),
		)
		response.FromError(c, "failed to update pricing", err)
		return
	}

	response.Success(c, http.StatusOK, "pricing updated", p)
}
