package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"math-academy/internal/domain"
)

type PushSender struct {
	mock.Mock
}

func (m *PushSender) Send(ctx context.Context, sub *domain.PushSubscription, payload []byte) error {
	args := m.Called(ctx, sub, payload)
	return args.Error(0)
}
