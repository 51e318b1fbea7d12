package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"math-academy/internal/domain"
)

type NoticeRepository interface {
	Create(ctx context.Context, notice *domain.Notice) error
	// GetVisible returns the notice only if it passes the audience filters;
	// nil filters mean unrestricted. Returns (nil, nil) when absent or not
	// visible, mirroring ListVisible so single fetch and listing agree.
	GetVisible(ctx context.Context, id uuid.UUID, filters []domain.AudienceFilter) (*domain.Notice, error)
	ListVisible(ctx context.Context, filters []domain.AudienceFilter) ([]domain.Notice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	UpsertRead(ctx context.Context, noticeID uuid.UUID, userID string) error
	// CountUnread counts notices passing the audience filters that have no
	// read receipt for userID. The filter argument must come from the same
	// resolver as ListVisible's.
	CountUnread(ctx context.Context, filters []domain.AudienceFilter, userID string) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

type noticeRepository struct {
	db *sqlx.DB
}

func NewNoticeRepository(db *sqlx.DB) NoticeRepository {
	return &noticeRepository{db: db}
}

// audienceWhere renders the OR-filter list as a SQL predicate over the
// aliased notices table. Filters without a ref id match on audience_type
// alone. nil filters render as TRUE (unrestricted).
func audienceWhere(filters []domain.AudienceFilter, args *[]interface{}) string {
	if filters == nil {
		return "TRUE"
	}
	if len(filters) == 0 {
		return "FALSE"
	}

	branches := make([]string, 0, len(filters))
	for _, f := range filters {
		if f.RefID == "" {
			*args = append(*args, string(f.Type))
			branches = append(branches, fmt.Sprintf("n.audience_type = $%d", len(*args)))
			continue
		}
		*args = append(*args, string(f.Type), f.RefID)
		branches = append(branches, fmt.Sprintf("(n.audience_type = $%d AND n.audience_ref_id = $%d)", len(*args)-1, len(*args)))
	}
	return "(" + strings.Join(branches, " OR ") + ")"
}

func (r *noticeRepository) Create(ctx context.Context, notice *domain.Notice) error {
	query := `
		INSERT INTO notices (id, title, body, type, audience_type, audience_ref_id, is_pinned, publish_at, attachment_url, created_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		notice.ID, notice.Title, notice.Body, notice.Type, notice.AudienceType,
		notice.AudienceRefID, notice.IsPinned, notice.PublishAt, notice.AttachmentURL,
		notice.CreatedByUserID,
	).Scan(&notice.CreatedAt)
}

func (r *noticeRepository) GetVisible(ctx context.Context, id uuid.UUID, filters []domain.AudienceFilter) (*domain.Notice, error) {
	args := []interface{}{id}
	where := audienceWhere(filters, &args)

	var notice domain.Notice
	query := `SELECT * FROM notices n WHERE n.id = $1 AND ` + where
	err := r.db.GetContext(ctx, &notice, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notice, nil
}

func (r *noticeRepository) ListVisible(ctx context.Context, filters []domain.AudienceFilter) ([]domain.Notice, error) {
	var args []interface{}
	where := audienceWhere(filters, &args)

	notices := []domain.Notice{}
	query := `
		SELECT * FROM notices n
		WHERE ` + where + `
		ORDER BY n.is_pinned DESC, n.publish_at DESC`
	err := r.db.SelectContext(ctx, &notices, query, args...)
	return notices, err
}

func (r *noticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notices WHERE id = $1`, id)
	return err
}

func (r *noticeRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM notices WHERE id = $1)`, id)
	return exists, err
}

func (r *noticeRepository) UpsertRead(ctx context.Context, noticeID uuid.UUID, userID string) error {
	query := `
		INSERT INTO notice_reads (notice_id, user_id, read_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (notice_id, user_id) DO UPDATE SET read_at = NOW()`
	_, err := r.db.ExecContext(ctx, query, noticeID, userID)
	return err
}

func (r *noticeRepository) CountUnread(ctx context.Context, filters []domain.AudienceFilter, userID string) (int64, error) {
	args := []interface{}{userID}
	where := audienceWhere(filters, &args)

	var count int64
	query := `
		SELECT COUNT(*) FROM notices n
		WHERE ` + where + `
		AND NOT EXISTS (
			SELECT 1 FROM notice_reads r WHERE r.notice_id = n.id AND r.user_id = $1
		)`
	err := r.db.GetContext(ctx, &count, query, args...)
	return count, err
}

func (r *noticeRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM notices`)
	return count, err
}
