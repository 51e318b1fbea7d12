package assessment

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"math-academy/internal/domain"
	"math-academy/internal/repository"
	"math-academy/internal/service/notifier"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrBatchNotFound = errors.New("batch not found")
)

type Service interface {
	Create(ctx context.Context, input domain.CreateAssessmentInput) (*domain.Assessment, error)
}

type service struct {
	assessmentRepo repository.AssessmentRepository
	batchRepo      repository.BatchRepository
	notifierSvc    notifier.Service
}

func NewService(assessmentRepo repository.AssessmentRepository, batchRepo repository.BatchRepository, notifierSvc notifier.Service) Service {
	return &service{
		assessmentRepo: assessmentRepo,
		batchRepo:      batchRepo,
		notifierSvc:    notifierSvc,
	}
}

func validationError(msg string) error {
	return errors.Join(ErrValidation, errors.New(msg))
}

// Create persists an assessment for an existing batch and notifies the
// batch's students. As with notices, creation never waits on delivery.
func (s *service) Create(ctx context.Context, input domain.CreateAssessmentInput) (*domain.Assessment, error) {
	batchIDStr := strings.TrimSpace(input.BatchID)
	if batchIDStr == "" {
		return nil, validationError("batch ID is required")
	}
	batchID, err := uuid.Parse(batchIDStr)
	if err != nil {
		return nil, validationError("batch ID is invalid")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, validationError("title is required")
	}
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		return nil, validationError("subject is required")
	}
	if input.Date == "" {
		return nil, validationError("date is required")
	}
	date, err := time.Parse(time.RFC3339, input.Date)
	if err != nil {
		// Date-only form is accepted for convenience.
		date, err = time.Parse("2006-01-02", input.Date)
		if err != nil {
			return nil, validationError("date is invalid")
		}
	}
	if input.MaxMarks <= 0 {
		return nil, validationError("max marks must be a positive number")
	}

	batch, err := s.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, ErrBatchNotFound
	}

	assessment := &domain.Assessment{
		ID:       uuid.New(),
		BatchID:  batchID,
		Title:    title,
		Subject:  subject,
		Date:     date,
		MaxMarks: int(math.Floor(input.MaxMarks)),
	}
	if err := s.assessmentRepo.Create(ctx, assessment); err != nil {
		return nil, err
	}

	s.notifierSvc.OnAssessmentCreated(assessment)

	return assessment, nil
}
