package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"math-academy/internal/domain"
)

type UserRepository interface {
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	// FindAdminIdentity returns the single implicit admin: the first user
	// with role ADMIN. Nil when no admin account exists.
	FindAdminIdentity(ctx context.Context) (*domain.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE phone = $1`
	err := r.db.GetContext(ctx, &user, query, phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAdminIdentity(ctx context.Context) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE role = $1 ORDER BY created_at ASC LIMIT 1`
	err := r.db.GetContext(ctx, &user, query, domain.RoleUserAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
