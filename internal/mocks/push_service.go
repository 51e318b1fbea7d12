package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"math-academy/internal/domain"
)

type PushService struct {
	mock.Mock
}

func (m *PushService) Subscribe(ctx context.Context, principal domain.Principal, input domain.SubscribeInput) (*domain.PushSubscription, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PushSubscription), args.Error(1)
}

func (m *PushService) Unsubscribe(ctx context.Context, endpoint string) error {
	args := m.Called(ctx, endpoint)
	return args.Error(0)
}

func (m *PushService) PublicKey() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *PushService) Dispatch(ctx context.Context, selector domain.SubscriptionSelector, message domain.PushMessage) domain.DispatchReport {
	args := m.Called(ctx, selector, message)
	return args.Get(0).(domain.DispatchReport)
}
