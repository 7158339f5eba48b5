package delivery

import (
	"context"
	"testing"
	"time"

	"healthybowl-service/internal/domain/delivery"
	"healthybowl-service/internal/domain/subscription"
	xerrors "healthybowl-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSubscriptionRepo struct {
	sub *subscription.Subscription
	err error
}

func (f *fakeSubscriptionRepo) FindByIDForUser(_ context.Context, id, _ int64) (*subscription.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sub, nil
}

type statusUpdate struct {
	deliveryID int64
	status     delivery.Status
}

type fakeDeliveryRepo struct {
	next    *delivery.Delivery
	nextErr error

	updates []statusUpdate
}

func (f *fakeDeliveryRepo) FindNextScheduled(_ context.Context, _ int64, _ time.Time) (*delivery.Delivery, error) {
	if f.nextErr != nil {
		return nil, f.nextErr
	}
	return f.next, nil
}

func (f *fakeDeliveryRepo) FindByID(_ context.Context, id int64) (*delivery.Delivery, error) {
	return &delivery.Delivery{ID: id}, nil
}

func (f *fakeDeliveryRepo) UpdateStatus(_ context.Context, id int64, status delivery.Status) error {
	f.updates = append(f.updates, statusUpdate{deliveryID: id, status: status})
	return nil
}

func (f *fakeDeliveryRepo) UpdateScheduledFor(_ context.Context, _ int64, _ time.Time) error {
	return nil
}

func activeSub() *subscription.Subscription {
	return &subscription.Subscription{ID: 11, UserID: 1, Status: subscription.StatusActive}
}

func TestSkipNextMarksExactlyOne(t *testing.T) {
	deliveryRepo := &fakeDeliveryRepo{
		next: &delivery.Delivery{ID: 7, SubscriptionID: 11, Status: delivery.StatusScheduled},
	}
	svc := NewDeliveryService(deliveryRepo, &fakeSubscriptionRepo{sub: activeSub()}, zap.NewNop())

	skipped, err := svc.SkipNext(context.Background(), 1, 11)

	require.NoError(t, err)
	assert.Equal(t, delivery.StatusSkipped, skipped.Status)
	require.Len(t, deliveryRepo.updates, 1)
	assert.Equal(t, statusUpdate{deliveryID: 7, status: delivery.StatusSkipped}, deliveryRepo.updates[0])
}

func TestSkipNextNoUpcomingDeliveryWritesNothing(t *testing.T) {
	deliveryRepo := &fakeDeliveryRepo{nextErr: xerrors.ErrNotFound}
	svc := NewDeliveryService(deliveryRepo, &fakeSubscriptionRepo{sub: activeSub()}, zap.NewNop())

	_, err := svc.SkipNext(context.Background(), 1, 11)

	assert.ErrorIs(t, err, xerrors.ErrNotFound)
	assert.Empty(t, deliveryRepo.updates, "nothing may be mutated when there is no upcoming delivery")
}

func TestSkipNextUnknownSubscription(t *testing.T) {
	deliveryRepo := &fakeDeliveryRepo{}
	svc := NewDeliveryService(deliveryRepo, &fakeSubscriptionRepo{err: xerrors.ErrNotFound}, zap.NewNop())

	_, err := svc.SkipNext(context.Background(), 1, 99)

	assert.ErrorIs(t, err, xerrors.ErrNotFound)
	assert.Empty(t, deliveryRepo.updates)
}
