package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"math-academy/internal/domain"
)

type StudentRepository struct {
	mock.Mock
}

func (m *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *StudentRepository) GetByRegistrationNo(ctx context.Context, registrationNo string) (*domain.Student, error) {
	args := m.Called(ctx, registrationNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *StudentRepository) FindIDsByBatch(ctx context.Context, batchID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *StudentRepository) FindIDsByGrade(ctx context.Context, grade string) ([]uuid.UUID, error) {
	args := m.Called(ctx, grade)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *StudentRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
