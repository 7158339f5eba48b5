package delivery

import (
	"context"
	"fmt"
	"time"

	"healthybowl-service/internal/domain/delivery"
	"healthybowl-service/internal/domain/subscription"

	"go.uber.org/zap"
)

// DeliveryRepository is the slice of the delivery store this service needs.
type DeliveryRepository interface {
	FindNextScheduled(ctx context.Context, subscriptionID int64, from time.Time) (*delivery.Delivery, error)
	FindByID(ctx context.Context, id int64) (*delivery.Delivery, error)
	UpdateStatus(ctx context.Context, id int64, status delivery.Status) error
	UpdateScheduledFor(ctx context.Context, id int64, newDate time.Time) error
}

// SubscriptionRepository resolves subscription ownership.
type SubscriptionRepository interface {
	FindByIDForUser(ctx context.Context, id, userID int64) (*subscription.Subscription, error)
}

type DeliveryService struct {
	deliveryRepo     DeliveryRepository
	subscriptionRepo SubscriptionRepository
	logger           *zap.Logger
}

func NewDeliveryService(
	deliveryRepo DeliveryRepository,
	subscriptionRepo SubscriptionRepository,
	logger *zap.Logger,
) *DeliveryService {
	return &DeliveryService{
		deliveryRepo:     deliveryRepo,
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// SkipNext marks the earliest upcoming scheduled delivery of the user's
// subscription as skipped. Exactly one delivery is affected per call; a
// second call skips the next remaining one. With no upcoming scheduled
// delivery the call fails and nothing is written.
func (s *DeliveryService) SkipNext(ctx context.Context, userID, subscriptionID int64) (*delivery.Delivery, error) {
	sub, err := s.subscriptionRepo.FindByIDForUser(ctx, subscriptionID, userID)
	if err != nil {
		return nil, fmt.Errorf("subscription not found: %w", err)
	}

	next, err := s.deliveryRepo.FindNextScheduled(ctx, sub.ID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("no upcoming delivery found: %w", err)
	}

	if err := s.deliveryRepo.UpdateStatus(ctx, next.ID, delivery.StatusSkipped); err != nil {
		return nil, err
	}
	next.Status = delivery.StatusSkipped

	s.logger.Info("delivery skipped",
		zap.Int64("subscription_id", sub.ID),
		zap.Int64("delivery_id", next.ID),
	)
	return next, nil
}

// Reschedule overwrites a delivery's scheduled date. No conflict check
// against other deliveries is performed.
func (s *DeliveryService) Reschedule(ctx context.Context, deliveryID int64, newDate time.Time) (*delivery.Delivery, error) {
	if err := s.deliveryRepo.UpdateScheduledFor(ctx, deliveryID, newDate); err != nil {
		return nil, err
	}

	d, err := s.deliveryRepo.FindByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("delivery rescheduled",
		zap.Int64("delivery_id", deliveryID),
		zap.Time("new_date", newDate),
	)
	return d, nil
}

// Complete marks a delivery as delivered. No automatic progression to the
// next cycle happens here.
func (s *DeliveryService) Complete(ctx context.Context, deliveryID int64) error {
	if err := s.deliveryRepo.UpdateStatus(ctx, deliveryID, delivery.StatusDelivered); err != nil {
		return err
	}
	s.logger.Info("delivery completed", zap.Int64("delivery_id", deliveryID))
	return nil
}
