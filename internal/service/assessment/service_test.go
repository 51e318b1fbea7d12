package assessment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"math-academy/internal/domain"
	"math-academy/internal/mocks"
	"math-academy/internal/service/assessment"
)

func validInput(batchID uuid.UUID) domain.CreateAssessmentInput {
	return domain.CreateAssessmentInput{
		BatchID:  batchID.String(),
		Title:    "Algebra Mock Test",
		Subject:  "Mathematics",
		Date:     "2026-09-15",
		MaxMarks: 100,
	}
}

func TestAssessmentService_Create(t *testing.T) {
	ctx := context.Background()
	batchID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockAssessmentRepo := new(mocks.AssessmentRepository)
		mockBatchRepo := new(mocks.BatchRepository)
		mockNotifier := new(mocks.NotifierService)
		svc := assessment.NewService(mockAssessmentRepo, mockBatchRepo, mockNotifier)

		mockBatchRepo.On("GetByID", ctx, batchID).Return(&domain.Batch{ID: batchID, Name: "Morning 2026"}, nil).Once()
		mockAssessmentRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Assessment) bool {
			return a.BatchID == batchID &&
				a.Title == "Algebra Mock Test" &&
				a.Subject == "Mathematics" &&
				a.MaxMarks == 100
		})).Return(nil).Once()
		mockNotifier.On("OnAssessmentCreated", mock.Anything).Once()

		created, err := svc.Create(ctx, validInput(batchID))

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), created.Date)
		mockAssessmentRepo.AssertExpectations(t)
		mockBatchRepo.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("Accepts RFC3339 Date", func(t *testing.T) {
		mockAssessmentRepo := new(mocks.AssessmentRepository)
		mockBatchRepo := new(mocks.BatchRepository)
		mockNotifier := new(mocks.NotifierService)
		svc := assessment.NewService(mockAssessmentRepo, mockBatchRepo, mockNotifier)

		input := validInput(batchID)
		input.Date = "2026-09-15T09:30:00Z"

		mockBatchRepo.On("GetByID", ctx, batchID).Return(&domain.Batch{ID: batchID}, nil).Once()
		mockAssessmentRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		mockNotifier.On("OnAssessmentCreated", mock.Anything).Once()

		created, err := svc.Create(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC), created.Date)
	})

	t.Run("Truncates Fractional Marks", func(t *testing.T) {
		mockAssessmentRepo := new(mocks.AssessmentRepository)
		mockBatchRepo := new(mocks.BatchRepository)
		mockNotifier := new(mocks.NotifierService)
		svc := assessment.NewService(mockAssessmentRepo, mockBatchRepo, mockNotifier)

		input := validInput(batchID)
		input.MaxMarks = 99.9

		mockBatchRepo.On("GetByID", ctx, batchID).Return(&domain.Batch{ID: batchID}, nil).Once()
		mockAssessmentRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Assessment) bool {
			return a.MaxMarks == 99
		})).Return(nil).Once()
		mockNotifier.On("OnAssessmentCreated", mock.Anything).Once()

		_, err := svc.Create(ctx, input)

		assert.NoError(t, err)
		mockAssessmentRepo.AssertExpectations(t)
	})

	t.Run("Validation Failures", func(t *testing.T) {
		mockAssessmentRepo := new(mocks.AssessmentRepository)
		mockBatchRepo := new(mocks.BatchRepository)
		mockNotifier := new(mocks.NotifierService)
		svc := assessment.NewService(mockAssessmentRepo, mockBatchRepo, mockNotifier)

		cases := map[string]func(*domain.CreateAssessmentInput){
			"missing batch": func(in *domain.CreateAssessmentInput) { in.BatchID = "" },
			"bad batch id":  func(in *domain.CreateAssessmentInput) { in.BatchID = "not-a-uuid" },
			"empty title":   func(in *domain.CreateAssessmentInput) { in.Title = "  " },
			"empty subject": func(in *domain.CreateAssessmentInput) { in.Subject = "" },
			"missing date":  func(in *domain.CreateAssessmentInput) { in.Date = "" },
			"bad date":      func(in *domain.CreateAssessmentInput) { in.Date = "next tuesday" },
			"zero marks":    func(in *domain.CreateAssessmentInput) { in.MaxMarks = 0 },
			"negative marks": func(in *domain.CreateAssessmentInput) {
				in.MaxMarks = -5
			},
		}

		for name, mutate := range cases {
			input := validInput(batchID)
			mutate(&input)

			created, err := svc.Create(ctx, input)

			assert.ErrorIs(t, err, assessment.ErrValidation, name)
			assert.Nil(t, created, name)
		}
		mockAssessmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Batch", func(t *testing.T) {
		mockAssessmentRepo := new(mocks.AssessmentRepository)
		mockBatchRepo := new(mocks.BatchRepository)
		mockNotifier := new(mocks.NotifierService)
		svc := assessment.NewService(mockAssessmentRepo, mockBatchRepo, mockNotifier)

		mockBatchRepo.On("GetByID", ctx, batchID).Return(nil, nil).Once()

		created, err := svc.Create(ctx, validInput(batchID))

		assert.ErrorIs(t, err, assessment.ErrBatchNotFound)
		assert.Nil(t, created)
		mockNotifier.AssertNotCalled(t, "OnAssessmentCreated", mock.Anything)
	})

	t.Run("Repo Error Skips Notifier", func(t *testing.T) {
		mockAssessmentRepo := new(mocks.AssessmentRepository)
		mockBatchRepo := new(mocks.BatchRepository)
		mockNotifier := new(mocks.NotifierService)
		svc := assessment.NewService(mockAssessmentRepo, mockBatchRepo, mockNotifier)

		mockBatchRepo.On("GetByID", ctx, batchID).Return(&domain.Batch{ID: batchID}, nil).Once()
		mockAssessmentRepo.On("Create", ctx, mock.Anything).Return(errors.New("db error")).Once()

		created, err := svc.Create(ctx, validInput(batchID))

		assert.Error(t, err)
		assert.Nil(t, created)
		mockNotifier.AssertNotCalled(t, "OnAssessmentCreated", mock.Anything)
	})
}
