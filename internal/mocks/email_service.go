package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendUrgentNoticeAlert(ctx context.Context, to, noticeTitle, noticeBody string) error {
	args := m.Called(ctx, to, noticeTitle, noticeBody)
	return args.Error(0)
}
