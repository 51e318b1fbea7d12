package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"math-academy/internal/domain"
)

var subscriptionColumns = []string{"id", "user_id", "endpoint", "p256dh", "auth", "is_enabled", "created_at", "updated_at"}

func TestSubscriptionRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubscriptionRepository(db)

	sub := &domain.PushSubscription{
		UserID:   "student:abc",
		Endpoint: "https://push.example.com/ep1",
		P256dh:   "p256dh-key",
		Auth:     "auth-key",
	}

	existingID := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO push_subscriptions")).
		WithArgs(sqlmock.AnyArg(), sub.UserID, sub.Endpoint, sub.P256dh, sub.Auth).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(existingID, now, now))

	err := repo.Upsert(context.Background(), sub)

	assert.NoError(t, err)
	// Conflict on endpoint keeps the original row id.
	assert.Equal(t, existingID, sub.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepository_Disable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubscriptionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE push_subscriptions SET is_enabled = FALSE")).
		WithArgs("https://push.example.com/ep1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Disable(context.Background(), "https://push.example.com/ep1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepository_ListEnabled(t *testing.T) {
	ctx := context.Background()

	t.Run("All", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSubscriptionRepository(db)

		rows := sqlmock.NewRows(subscriptionColumns).
			AddRow(uuid.New(), "student:abc", "https://push.example.com/ep1", "k", "a", true, time.Now(), time.Now()).
			AddRow(uuid.New(), "admin:def", "https://push.example.com/ep2", "k", "a", true, time.Now(), time.Now())
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM push_subscriptions WHERE is_enabled = TRUE")).
			WillReturnRows(rows)

		subs, err := repo.ListEnabled(ctx, domain.SelectAllSubscriptions())

		assert.NoError(t, err)
		assert.Len(t, subs, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Recipients", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSubscriptionRepository(db)

		recipients := []string{"student:abc", "student:def"}
		rows := sqlmock.NewRows(subscriptionColumns).
			AddRow(uuid.New(), "student:abc", "https://push.example.com/ep1", "k", "a", true, time.Now(), time.Now())
		mock.ExpectQuery(regexp.QuoteMeta("user_id = ANY($1)")).
			WithArgs(pq.Array(recipients)).
			WillReturnRows(rows)

		subs, err := repo.ListEnabled(ctx, domain.SelectByRecipients(recipients))

		assert.NoError(t, err)
		assert.Len(t, subs, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Prefix", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSubscriptionRepository(db)

		rows := sqlmock.NewRows(subscriptionColumns).
			AddRow(uuid.New(), "student:abc", "https://push.example.com/ep1", "k", "a", true, time.Now(), time.Now())
		mock.ExpectQuery(regexp.QuoteMeta("user_id LIKE $1")).
			WithArgs("student:%").
			WillReturnRows(rows)

		subs, err := repo.ListEnabled(ctx, domain.SelectByPrefix(domain.StudentRecipientPrefix))

		assert.NoError(t, err)
		assert.Len(t, subs, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("None Skips The Database", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSubscriptionRepository(db)

		subs, err := repo.ListEnabled(ctx, domain.SelectNoSubscriptions())

		assert.NoError(t, err)
		assert.Empty(t, subs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
