package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"math-academy/internal/domain"
)

type StudentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error)
	GetByRegistrationNo(ctx context.Context, registrationNo string) (*domain.Student, error)
	// FindIDsByBatch and FindIDsByGrade return only the ids needed for
	// audience expansion.
	FindIDsByBatch(ctx context.Context, batchID uuid.UUID) ([]uuid.UUID, error)
	FindIDsByGrade(ctx context.Context, grade string) ([]uuid.UUID, error)
	CountAll(ctx context.Context) (int64, error)
}

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	var student domain.Student
	query := `SELECT * FROM students WHERE id = $1 AND is_archived = FALSE`
	err := r.db.GetContext(ctx, &student, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) GetByRegistrationNo(ctx context.Context, registrationNo string) (*domain.Student, error) {
	var student domain.Student
	query := `SELECT * FROM students WHERE registration_no = $1 AND is_archived = FALSE`
	err := r.db.GetContext(ctx, &student, query, registrationNo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindIDsByBatch(ctx context.Context, batchID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	query := `SELECT id FROM students WHERE batch_id = $1 AND is_archived = FALSE`
	err := r.db.SelectContext(ctx, &ids, query, batchID)
	return ids, err
}

func (r *studentRepository) FindIDsByGrade(ctx context.Context, grade string) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	query := `SELECT id FROM students WHERE grade = $1 AND is_archived = FALSE`
	err := r.db.SelectContext(ctx, &ids, query, grade)
	return ids, err
}

func (r *studentRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM students WHERE is_archived = FALSE`)
	return count, err
}
