package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"math-academy/internal/domain"
)

type NoticeRepository struct {
	mock.Mock
}

func (m *NoticeRepository) Create(ctx context.Context, notice *domain.Notice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func (m *NoticeRepository) GetVisible(ctx context.Context, id uuid.UUID, filters []domain.AudienceFilter) (*domain.Notice, error) {
	args := m.Called(ctx, id, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notice), args.Error(1)
}

func (m *NoticeRepository) ListVisible(ctx context.Context, filters []domain.AudienceFilter) ([]domain.Notice, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notice), args.Error(1)
}

func (m *NoticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *NoticeRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *NoticeRepository) UpsertRead(ctx context.Context, noticeID uuid.UUID, userID string) error {
	args := m.Called(ctx, noticeID, userID)
	return args.Error(0)
}

func (m *NoticeRepository) CountUnread(ctx context.Context, filters []domain.AudienceFilter, userID string) (int64, error) {
	args := m.Called(ctx, filters, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NoticeRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
