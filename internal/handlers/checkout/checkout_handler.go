package checkout

import (
	"net/http"

	"healthybowl-service/internal/domain/checkout"
	"healthybowl-service/internal/middleware"
	"healthybowl-service/internal/pkg/response"
	checkoutUsecase "healthybowl-service/internal/service/checkout"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	checkoutService *checkoutUsecase.CheckoutService
	logger          *zap.Logger
}

func NewCheckoutHandler(checkoutService *checkoutUsecase.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// CreateSession opens a payment gateway order for a new subscription
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	var req checkout.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	resp, err := h.checkoutService.CreateSession(c.Request.Context(), userID, &req)
	if err != nil {
		h.logger.Error("failed to create checkout session",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		response.FromError(c, "failed to create checkout session", err)
		return
	}

	response.Success(c, http.StatusCreated, "checkout session created", resp)
}

// Verify checks the payment signature and activates the subscription
func (h *CheckoutHandler) Verify(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	var req checkout.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	resp, err := h.checkoutService.Verify(c.Request.Context(), userID, &req)
	if err != nil {
		response.FromError(c, "payment verification failed", err)
		return
	}

	response.Success(c, http.StatusOK, "payment verified", resp)
}
