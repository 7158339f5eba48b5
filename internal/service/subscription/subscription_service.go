package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthybowl-service/internal/domain/address"
	"healthybowl-service/internal/domain/delivery"
	"healthybowl-service/internal/domain/subscription"
	xerrors "healthybowl-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// SubscriptionRepository is the slice of the subscription store this service
// needs.
type SubscriptionRepository interface {
	FindByIDForUser(ctx context.Context, id, userID int64) (*subscription.Subscription, error)
	FindCurrentByUser(ctx context.Context, userID int64) (*subscription.Subscription, error)
	UpdateStatus(ctx context.Context, id int64, status subscription.Status) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// DeliveryRepository lists upcoming deliveries for the dashboard.
type DeliveryRepository interface {
	ListUpcoming(ctx context.Context, subscriptionID int64, from time.Time, limit int) ([]delivery.Delivery, error)
}

// PlanRepository resolves the subscription's plan.
type PlanRepository interface {
	FindByID(ctx context.Context, id int64) (*subscription.Plan, error)
}

// AddressRepository resolves the subscription's delivery address.
type AddressRepository interface {
	FindByID(ctx context.Context, id int64) (*address.Address, error)
}

type SubscriptionService struct {
	subscriptionRepo SubscriptionRepository
	deliveryRepo     DeliveryRepository
	planRepo         PlanRepository
	addressRepo      AddressRepository
	logger           *zap.Logger
}

func NewSubscriptionService(
	subscriptionRepo SubscriptionRepository,
	deliveryRepo DeliveryRepository,
	planRepo PlanRepository,
	addressRepo AddressRepository,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		deliveryRepo:     deliveryRepo,
		planRepo:         planRepo,
		addressRepo:      addressRepo,
		logger:           logger,
	}
}

// TogglePause flips a subscription between ACTIVE and PAUSED. The dashboard
// exposes a single toggle, so a paused subscription resumes and an active one
// pauses. A cancelled subscription stays cancelled. Only the owner may
// toggle; a subscription owned by another user reads as not found.
func (s *SubscriptionService) TogglePause(ctx context.Context, userID, subscriptionID int64) (*subscription.ToggleResponse, error) {
	sub, err := s.subscriptionRepo.FindByIDForUser(ctx, subscriptionID, userID)
	if err != nil {
		return nil, fmt.Errorf("subscription not found: %w", err)
	}
	if sub.Status == subscription.StatusCancelled {
		return nil, fmt.Errorf("subscription is cancelled: %w", xerrors.ErrConflict)
	}

	newStatus := sub.Status.Toggled()
	if err := s.subscriptionRepo.UpdateStatus(ctx, sub.ID, newStatus); err != nil {
		return nil, err
	}

	s.logger.Info("subscription toggled",
		zap.Int64("subscription_id", sub.ID),
		zap.String("status", string(newStatus)),
	)

	return &subscription.ToggleResponse{
		SubscriptionID: sub.ID,
		Status:         newStatus,
	}, nil
}

// Cancel marks the user's subscription cancelled. The row is retained with
// its cancellation metadata.
func (s *SubscriptionService) Cancel(ctx context.Context, userID int64, req *subscription.CancelRequest) error {
	sub, err := s.subscriptionRepo.FindByIDForUser(ctx, req.SubscriptionID, userID)
	if err != nil {
		return fmt.Errorf("subscription not found: %w", err)
	}
	if sub.Status == subscription.StatusCancelled {
		return fmt.Errorf("subscription already cancelled: %w", xerrors.ErrConflict)
	}

	if err := s.subscriptionRepo.Cancel(ctx, sub.ID, req.Reason); err != nil {
		return err
	}

	s.logger.Info("subscription cancelled",
		zap.Int64("subscription_id", sub.ID),
		zap.String("reason", req.Reason),
	)
	return nil
}

// Overview loads the user's current subscription with its plan, address and
// the next upcoming deliveries for the dashboard.
func (s *SubscriptionService) Overview(ctx context.Context, userID int64) (*subscription.Overview, error) {
	sub, err := s.subscriptionRepo.FindCurrentByUser(ctx, userID)
	if errors.Is(err, xerrors.ErrNotFound) {
		// No subscription is a valid dashboard state, not an error.
		return &subscription.Overview{}, nil
	}
	if err != nil {
		return nil, err
	}

	overview := &subscription.Overview{Subscription: sub}

	if plan, err := s.planRepo.FindByID(ctx, sub.PlanID); err == nil {
		overview.Plan = plan
	} else {
		s.logger.Warn("failed to load plan for overview", zap.Error(err))
	}

	if addr, err := s.addressRepo.FindByID(ctx, sub.AddressID); err == nil {
		overview.Address = addr
	} else {
		s.logger.Warn("failed to load address for overview", zap.Error(err))
	}

	upcoming, err := s.deliveryRepo.ListUpcoming(ctx, sub.ID, time.Now(), 10)
	if err != nil {
		return nil, err
	}
	overview.UpcomingDeliveries = upcoming

	return overview, nil
}
