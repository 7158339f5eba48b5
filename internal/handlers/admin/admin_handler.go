package admin

import (
	"net/http"
	"time"

	"healthybowl-service/internal/pkg/response"
	scheduleUsecase "healthybowl-service/internal/service/schedule"
	statsUsecase "healthybowl-service/internal/service/stats"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the admin dashboard aggregates and route planning.
type AdminHandler struct {
	statsService    *statsUsecase.StatsService
	scheduleService *scheduleUsecase.ScheduleService
	logger          *zap.Logger
}

func NewAdminHandler(
	statsService *statsUsecase.StatsService,
	scheduleService *scheduleUsecase.ScheduleService,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		statsService:    statsService,
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// Stats returns the dashboard summary card
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.Dashboard(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to compute stats", zap.Error(err))
		response.FromError(c, "failed to compute stats", err)
		return
	}

	response.Success(c, http.StatusOK, "stats retrieved", stats)
}

// TodayDeliveries lists the scheduled stops for a given date (default today)
func (h *AdminHandler) TodayDeliveries(c *gin.Context) {
	date, err := dateParam(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", err)
		return
	}

	stops, err := h.scheduleService.DeliveriesForDate(c.Request.Context(), date)
	if err != nil {
		response.FromError(c, "failed to list deliveries", err)
		return
	}

	response.Success(c, http.StatusOK, "deliveries retrieved", stops)
}

// RouteGroups lists the day's stops grouped by pincode for route planning
func (h *AdminHandler) RouteGroups(c *gin.Context) {
	date, err := dateParam(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", err)
		return
	}

	groups, err := h.scheduleService.RouteGroupsForDate(c.Request.Context(), date)
	if err != nil {
		response.FromError(c, "failed to group deliveries", err)
		return
	}

	response.Success(c, http.StatusOK, "routes retrieved", groups)
}

func dateParam(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", raw)
}
