package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"healthybowl-service/internal/config"
	"healthybowl-service/internal/db"
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
	"healthybowl-service/internal/pkg/jwt"
	"healthybowl-service/internal/pkg/ratelimit"
	"healthybowl-service/internal/repository/postgres"
	authUsecase "healthybowl-service/internal/service/auth"
	checkoutUsecase "healthybowl-service/internal/service/checkout"
	deliveryUsecase "healthybowl-service/internal/service/delivery"
	"healthybowl-service/internal/service/dispatch"
	"healthybowl-service/internal/service/email"
	orderUsecase "healthybowl-service/internal/service/order"
	"healthybowl-service/internal/service/payment"
	pricingUsecase "healthybowl-service/internal/service/pricing"
	scheduleUsecase "healthybowl-service/internal/service/schedule"
	statsUsecase "healthybowl-service/internal/service/stats"
	subscriptionUsecase "healthybowl-service/internal/service/subscription"
	"healthybowl-service/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg         config.AppConfig
	engine      *gin.Engine
	logger      *zap.Logger
	authService *authUsecase.AuthService
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.Default()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- JWT Manager -----
	jwtManager, err := jwt.NewManager(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to build JWT manager: %w", err)
	}

	// ----- Rate Limiter -----
	limiter := ratelimit.NewLimiter(redisClient)

	// ----- Email -----
	emailSender := email.NewEmailSender(
		s.cfg.SMTPHost,
		s.cfg.SMTPPort,
		s.cfg.SMTPUser,
		s.cfg.SMTPPass,
		s.cfg.SMTPFromName,
		s.cfg.SMTPSecure,
	)

	// ----- External clients -----
	razorpayClient := payment.NewClient(
		s.cfg.RazorpayKeyID,
		s.cfg.RazorpayKeySecret,
		s.cfg.RazorpayBaseURL,
		logger,
	)
	borzoClient := dispatch.NewClient(s.cfg.Borzo, logger)

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(pool)
	userRepo := postgres.NewUserRepository(pool)
	addressRepo := postgres.NewAddressRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	pricingRepo := postgres.NewPricingRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)

	// ----- WebSocket Hub -----
	hub := ws.NewHub(logger)
	go hub.Run()

	// ----- Services (Usecases) -----
	authService := authUsecase.NewAuthService(userRepo, jwtManager, limiter, logger)
	s.authService = authService

	pricingService := pricingUsecase.NewPricingService(pricingRepo, planRepo, logger)
	scheduleService := scheduleUsecase.NewScheduleService(deliveryRepo, dbWrapper, logger)
	subscriptionService := subscriptionUsecase.NewSubscriptionService(
		subscriptionRepo,
		deliveryRepo,
		planRepo,
		addressRepo,
		logger,
	)
	deliveryService := deliveryUsecase.NewDeliveryService(deliveryRepo, subscriptionRepo, logger)
	checkoutService := checkoutUsecase.NewCheckoutService(
		userRepo,
		addressRepo,
		planRepo,
		subscriptionRepo,
		invoiceRepo,
		pricingService,
		scheduleService,
		razorpayClient,
		emailSender,
		logger,
	)
	orderService := orderUsecase.NewOrderService(dbWrapper, orderRepo, borzoClient, hub, logger)
	statsService := statsUsecase.NewStatsService(
		subscriptionRepo,
		userRepo,
		deliveryRepo,
		invoiceRepo,
		redisClient,
		logger,
	)

	// ----- Initialize Admin -----
	if err := s.initializeAdmin(); err != nil {
		logger.Error("failed to initialize admin", zap.Error(err))
		// Don't fail startup, just log the error
	}

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(authService, logger)
	planHandlerInst := planHandler.NewPlanHandler(planRepo, logger)
	pricingHandlerInst := pricingHandler.NewPricingHandler(pricingService, logger)
	checkoutHandlerInst := checkoutHandler.NewCheckoutHandler(checkoutService, logger)
	dashboardHandlerInst := dashboardHandler.NewDashboardHandler(subscriptionService, deliveryService, logger)
	deliveryHandlerInst := deliveryHandler.NewDeliveryHandler(deliveryService, logger)
	orderHandlerInst := orderHandler.NewOrderHandler(orderService, logger)
	adminHandlerInst := adminHandler.NewAdminHandler(statsService, scheduleService, logger)
	wsHandlerInst := wsHandler.NewWSHandler(hub, logger)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(authService)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORS(),
	)

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:      authHandlerInst,
		PlanHandler:      planHandlerInst,
		PricingHandler:   pricingHandlerInst,
		CheckoutHandler:  checkoutHandlerInst,
		DashboardHandler: dashboardHandlerInst,
		DeliveryHandler:  deliveryHandlerInst,
		OrderHandler:     orderHandlerInst,
		AdminHandler:     adminHandlerInst,
		WSHandler:        wsHandlerInst,
		AuthMiddleware:   authMiddleware,
	}
	SetupRouter(s.engine, logger, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}

// initializeAdmin creates the admin account if it doesn't exist
func (s *Server) initializeAdmin() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminName := os.Getenv("ADMIN_NAME")

	if adminEmail == "" {
		adminEmail = "admin@healthybowl.in"
		s.logger.Warn("ADMIN_EMAIL not set, using default", zap.String("email", adminEmail))
	}
	if adminPassword == "" {
		s.logger.Warn("ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}
	if adminName == "" {
		adminName = "HealthyBowl Admin"
	}

	if len(adminPassword) < 8 {
		return fmt.Errorf("admin password must be at least 8 characters")
	}

	if err := s.authService.EnsureAdminExists(ctx, adminEmail, adminPassword, adminName); err != nil {
		return fmt.Errorf("failed to ensure admin exists: %w", err)
	}
	return nil
}
