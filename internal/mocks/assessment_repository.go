package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"math-academy/internal/domain"
)

type AssessmentRepository struct {
	mock.Mock
}

func (m *AssessmentRepository) Create(ctx context.Context, assessment *domain.Assessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}
