package plan

import (
	"net/http"

	"healthybowl-service/internal/pkg/response"
	"healthybowl-service/internal/repository/postgres"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PlanHandler struct {
	planRepo *postgres.PlanRepository
	logger   *zap.Logger
}

func NewPlanHandler(planRepo *postgres.PlanRepository, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{
		planRepo: planRepo,
		logger:   logger,
	}
}

// List returns the active subscription plans (public endpoint)
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.planRepo.ListActive(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list plans", zap.Error(err))
		response.FromError(c, "failed to list plans", err)
		return
	}

	response.Success(c, http.StatusOK, "plans retrieved", plans)
}
