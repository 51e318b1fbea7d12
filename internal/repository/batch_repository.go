package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"math-academy/internal/domain"
)

type BatchRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Batch, error)
}

type batchRepository struct {
	db *sqlx.DB
}

func NewBatchRepository(db *sqlx.DB) BatchRepository {
	return &batchRepository{db: db}
}

func (r *batchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Batch, error) {
	var batch domain.Batch
	query := `SELECT * FROM batches WHERE id = $1`
	err := r.db.GetContext(ctx, &batch, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &batch, nil
}
