package app

import (
	"healthybowl-service/internal/domain/user"
	adminHandler "healthybowl-service/internal/handlers/admin"
	authHandler "healthybowl-service/internal/handlers/auth"
	checkoutHandler "healthybowl-service/internal/handlers/checkout"
	dashboardHandler "healthybowl-service/internal/handlers/dashboard"
	deliveryHandler "healthybowl-service/internal/handlers/delivery"
	orderHandler "healthybowl-service/internal/handlers/order"
	planHandler "healthybowl-service/internal/handlers/plan"
	pricingHandler "healthybowl-service/internal/handlers/pricing"
	wsHandler "healthybowl-service/internal/handlers/websocket"
	"healthybowl-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthHandler      *authHandler.AuthHandler
	PlanHandler      *planHandler.PlanHandler
	PricingHandler   *pricingHandler.PricingHandler
	CheckoutHandler  *checkoutHandler.CheckoutHandler
	DashboardHandler *dashboardHandler.DashboardHandler
	DeliveryHandler  *deliveryHandler.DeliveryHandler
	OrderHandler     *orderHandler.OrderHandler
	AdminHandler     *adminHandler.AdminHandler
	WSHandler        *wsHandler.WSHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/register", h.AuthHandler.Register)
		authPublic.POST("/login", h.AuthHandler.Login)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.GET("/me", h.AuthHandler.Me)
	}

	// ==================== Plans & Pricing (public) ====================
	api.GET("/plans", h.PlanHandler.List)
	api.POST("/pricing/quote", h.PricingHandler.Quote)

	// ==================== Checkout ====================
	checkout := api.Group("/checkout")
	checkout.Use(h.AuthMiddleware.Auth())
	{
		checkout.POST("/session", h.CheckoutHandler.CreateSession)
		checkout.POST("/verify", h.CheckoutHandler.Verify)
	}

	// ==================== Customer Dashboard ====================
	dashboard := api.Group("/dashboard")
	dashboard.Use(h.AuthMiddleware.Auth())
	{
		dashboard.GET("", h.DashboardHandler.Overview)
		dashboard.POST("/subscription/toggle", h.DashboardHandler.TogglePause)
		dashboard.POST("/subscription/cancel", h.DashboardHandler.Cancel)
		dashboard.POST("/delivery/skip", h.DashboardHandler.SkipNext)
	}

	// ==================== Storefront Orders ====================
	api.POST("/orders", h.OrderHandler.Create)

	// Courier status pushes, authenticated by the shared callback token
	api.POST("/courier/callback", h.OrderHandler.CourierCallback)

	// ==================== Admin ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RequireRole(user.RoleAdmin))
	{
		admin.GET("/stats", h.AdminHandler.Stats)
		admin.GET("/deliveries", h.AdminHandler.TodayDeliveries)
		admin.GET("/deliveries/routes", h.AdminHandler.RouteGroups)
		admin.PUT("/deliveries/:id/reschedule", h.DeliveryHandler.Reschedule)
		admin.PUT("/deliveries/:id/complete", h.DeliveryHandler.Complete)

		admin.GET("/orders", h.OrderHandler.List)
		admin.GET("/orders/:id", h.OrderHandler.Get)
		admin.PUT("/orders/:id/status", h.OrderHandler.UpdateStatus)

		admin.GET("/pricing", h.PricingHandler.ListCurrent)
		admin.PUT("/pricing", h.PricingHandler.Update)

		// Live order feed for the dashboard
		admin.GET("/ws", h.WSHandler.Serve)
	}
}
