package subscription

import (
	"context"
	"testing"

	"healthybowl-service/internal/domain/subscription"
	xerrors "healthybowl-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSubscriptionRepo struct {
	sub *subscription.Subscription
	err error

	statusUpdates []subscription.Status
	cancelled     bool
}

func (f *fakeSubscriptionRepo) FindByIDForUser(_ context.Context, _, _ int64) (*subscription.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sub, nil
}

func (f *fakeSubscriptionRepo) FindCurrentByUser(_ context.Context, _ int64) (*subscription.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sub, nil
}

func (f *fakeSubscriptionRepo) UpdateStatus(_ context.Context, _ int64, status subscription.Status) error {
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

func (f *fakeSubscriptionRepo) Cancel(_ context.Context, _ int64, _ string) error {
	f.cancelled = true
	return nil
}

func newToggleService(repo *fakeSubscriptionRepo) *SubscriptionService {
	return NewSubscriptionService(repo, nil, nil, nil, zap.NewNop())
}

func TestTogglePauseActivePauses(t *testing.T) {
	repo := &fakeSubscriptionRepo{
		sub: &subscription.Subscription{ID: 5, Status: subscription.StatusActive},
	}

	resp, err := newToggleService(repo).TogglePause(context.Background(), 1, 5)

	require.NoError(t, err)
	assert.Equal(t, subscription.StatusPaused, resp.Status)
	require.Len(t, repo.statusUpdates, 1)
	assert.Equal(t, subscription.StatusPaused, repo.statusUpdates[0])
}

func TestTogglePausePausedResumes(t *testing.T) {
	repo := &fakeSubscriptionRepo{
		sub: &subscription.Subscription{ID: 5, Status: subscription.StatusPaused},
	}

	resp, err := newToggleService(repo).TogglePause(context.Background(), 1, 5)

	require.NoError(t, err)
	assert.Equal(t, subscription.StatusActive, resp.Status)
}

func TestTogglePauseCancelledStaysCancelled(t *testing.T) {
	repo := &fakeSubscriptionRepo{
		sub: &subscription.Subscription{ID: 5, Status: subscription.StatusCancelled},
	}

	_, err := newToggleService(repo).TogglePause(context.Background(), 1, 5)

	assert.ErrorIs(t, err, xerrors.ErrConflict)
	assert.Empty(t, repo.statusUpdates, "a cancelled subscription must not re-enter the pause loop")
}

func TestCancelAlreadyCancelled(t *testing.T) {
	repo := &fakeSubscriptionRepo{
		sub: &subscription.Subscription{ID: 5, Status: subscription.StatusCancelled},
	}

	err := newToggleService(repo).Cancel(context.Background(), 1, &subscription.CancelRequest{SubscriptionID: 5})

	assert.ErrorIs(t, err, xerrors.ErrConflict)
	assert.False(t, repo.cancelled)
}
