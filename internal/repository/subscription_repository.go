package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"math-academy/internal/domain"
)

type SubscriptionRepository interface {
	// Upsert is idempotent on endpoint: an existing row gets its key material
	// replaced, its owner reassigned and is re-enabled. Covers a device
	// re-registering under a new login.
	Upsert(ctx context.Context, sub *domain.PushSubscription) error
	// Disable flips is_enabled off without deleting the row.
	Disable(ctx context.Context, endpoint string) error
	ListEnabled(ctx context.Context, selector domain.SubscriptionSelector) ([]domain.PushSubscription, error)
	CountEnabled(ctx context.Context) (int64, error)
}

type subscriptionRepository struct {
	db *sqlx.DB
}

func NewSubscriptionRepository(db *sqlx.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Upsert(ctx context.Context, sub *domain.PushSubscription) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	query := `
		INSERT INTO push_subscriptions (id, user_id, endpoint, p256dh, auth, is_enabled)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (endpoint) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			p256dh = EXCLUDED.p256dh,
			auth = EXCLUDED.auth,
			is_enabled = TRUE,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		sub.ID, sub.UserID, sub.Endpoint, sub.P256dh, sub.Auth,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

func (r *subscriptionRepository) Disable(ctx context.Context, endpoint string) error {
	query := `UPDATE push_subscriptions SET is_enabled = FALSE, updated_at = NOW() WHERE endpoint = $1`
	_, err := r.db.ExecContext(ctx, query, endpoint)
	return err
}

func (r *subscriptionRepository) ListEnabled(ctx context.Context, selector domain.SubscriptionSelector) ([]domain.PushSubscription, error) {
	subs := []domain.PushSubscription{}

	switch selector.Mode {
	case domain.SelectAll:
		query := `SELECT * FROM push_subscriptions WHERE is_enabled = TRUE`
		err := r.db.SelectContext(ctx, &subs, query)
		return subs, err

	case domain.SelectRecipients:
		if len(selector.Recipients) == 0 {
			return subs, nil
		}
		query := `SELECT * FROM push_subscriptions WHERE is_enabled = TRUE AND user_id = ANY($1)`
		err := r.db.SelectContext(ctx, &subs, query, pq.Array(selector.Recipients))
		return subs, err

	case domain.SelectPrefix:
		query := `SELECT * FROM push_subscriptions WHERE is_enabled = TRUE AND user_id LIKE $1`
		err := r.db.SelectContext(ctx, &subs, query, selector.Prefix+"%")
		return subs, err

	default:
		return subs, nil
	}
}

func (r *subscriptionRepository) CountEnabled(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM push_subscriptions WHERE is_enabled = TRUE`)
	return count, err
}
