package stats

import (
	"context"
	"encoding/json"
	"time"

	"healthybowl-service/internal/domain/subscription"
	"healthybowl-service/internal/domain/user"
	"healthybowl-service/internal/repository/postgres"
	"healthybowl-service/internal/service/schedule"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	cacheKey = "admin:stats"
	cacheTTL = 60 * time.Second
)

// DashboardStats is the admin dashboard summary card.
type DashboardStats struct {
	ActiveSubscriptions int64   `json:"active_subscriptions"`
	TotalCustomers      int64   `json:"total_customers"`
	DeliveriesToday     int64   `json:"deliveries_today"`
	MonthlyRevenue      float64 `json:"monthly_revenue"`
	GeneratedAt         string  `json:"generated_at"`
}

type StatsService struct {
	subscriptionRepo *postgres.SubscriptionRepository
	userRepo         *postgres.UserRepository
	deliveryRepo     *postgres.DeliveryRepository
	invoiceRepo      *postgres.InvoiceRepository
	cache            *redis.Client
	logger           *zap.Logger
}

func NewStatsService(
	subscriptionRepo *postgres.SubscriptionRepository,
	userRepo *postgres.UserRepository,
	deliveryRepo *postgres.DeliveryRepository,
	invoiceRepo *postgres.InvoiceRepository,
	cache *redis.Client,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		deliveryRepo:     deliveryRepo,
		invoiceRepo:      invoiceRepo,
		cache:            cache,
		logger:           logger,
	}
}

// Dashboard computes the admin summary, served from a short-lived cache so
// a busy dashboard does not hammer the aggregate queries.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	if cached, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
		var stats DashboardStats
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &stats, nil
		}
	} else if err != redis.Nil {
		s.logger.Warn("stats cache unavailable", zap.Error(err))
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, cacheKey, payload, cacheTTL).Err(); err != nil {
			s.logger.Warn("failed to cache stats", zap.Error(err))
		}
	}
	return stats, nil
}

func (s *StatsService) compute(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()

	active, err := s.subscriptionRepo.CountByStatus(ctx, subscription.StatusActive)
	if err != nil {
		return nil, err
	}

	customers, err := s.userRepo.CountByRole(ctx, user.RoleCustomer)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := schedule.DayBounds(now)
	deliveriesToday, err := s.deliveryRepo.CountScheduledBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	revenue, err := s.invoiceRepo.SumPaidBetween(ctx, monthStart, now)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		ActiveSubscriptions: active,
		TotalCustomers:      customers,
		DeliveriesToday:     deliveriesToday,
		MonthlyRevenue:      revenue,
		GeneratedAt:         now.UTC().Format(time.RFC3339),
	}, nil
}
