package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"math-academy/internal/domain"
)

type AssessmentRepository interface {
	Create(ctx context.Context, assessment *domain.Assessment) error
}

type assessmentRepository struct {
	db *sqlx.DB
}

func NewAssessmentRepository(db *sqlx.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *domain.Assessment) error {
	query := `
		INSERT INTO assessments (id, batch_id, title, subject, date, max_marks)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		assessment.ID, assessment.BatchID, assessment.Title, assessment.Subject,
		assessment.Date, assessment.MaxMarks,
	).Scan(&assessment.CreatedAt)
}
