package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"math-academy/internal/domain"
)

type SubscriptionRepository struct {
	mock.Mock
}

func (m *SubscriptionRepository) Upsert(ctx context.Context, sub *domain.PushSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *SubscriptionRepository) Disable(ctx context.Context, endpoint string) error {
	args := m.Called(ctx, endpoint)
	return args.Error(0)
}

func (m *SubscriptionRepository) ListEnabled(ctx context.Context, selector domain.SubscriptionSelector) ([]domain.PushSubscription, error) {
	args := m.Called(ctx, selector)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PushSubscription), args.Error(1)
}

func (m *SubscriptionRepository) CountEnabled(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
