package mocks

import (
	"github.com/stretchr/testify/mock"

	"math-academy/internal/domain"
)

type NotifierService struct {
	mock.Mock
}

func (m *NotifierService) OnNoticeCreated(notice *domain.Notice) {
	m.Called(notice)
}

func (m *NotifierService) OnAssessmentCreated(assessment *domain.Assessment) {
	m.Called(assessment)
}
