package notice

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"math-academy/internal/domain"
	"math-academy/internal/repository"
	"math-academy/internal/service/audience"
	"math-academy/internal/service/notifier"
)

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNoticeNotFound    = errors.New("notice not found")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrValidation        = errors.New("validation failed")
)

const publicFeedCacheKey = "notices:public"

type Service interface {
	Create(ctx context.Context, principal domain.Principal, input domain.CreateNoticeInput) (*domain.Notice, error)
	List(ctx context.Context, principal domain.Principal) ([]domain.Notice, error)
	Get(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.Notice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkRead(ctx context.Context, principal domain.Principal, noticeID uuid.UUID) error
	UnreadCount(ctx context.Context, principal domain.Principal) (int64, error)
}

type service struct {
	noticeRepo  repository.NoticeRepository
	audienceSvc audience.Service
	notifierSvc notifier.Service
	redis       *redis.Client
}

func NewService(noticeRepo repository.NoticeRepository, audienceSvc audience.Service, notifierSvc notifier.Service, redis *redis.Client) Service {
	return &service{
		noticeRepo:  noticeRepo,
		audienceSvc: audienceSvc,
		notifierSvc: notifierSvc,
		redis:       redis,
	}
}

func validationError(msg string) error {
	return errors.Join(ErrValidation, errors.New(msg))
}

// Create validates and persists a notice, then hands it to the notifier.
// The push fan-out runs detached; creating a notice succeeds regardless of
// push health.
func (s *service) Create(ctx context.Context, principal domain.Principal, input domain.CreateNoticeInput) (*domain.Notice, error) {
	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)
	if title == "" {
		return nil, validationError("title is required")
	}
	if body == "" {
		return nil, validationError("body is required")
	}

	noticeType := domain.NoticeType(input.Type)
	if !noticeType.Valid() {
		return nil, validationError("unknown notice type")
	}
	audienceType := domain.AudienceType(input.AudienceType)
	if !audienceType.Valid() {
		return nil, validationError("unknown audience type")
	}

	var refID *string
	if input.AudienceRefID != nil {
		if trimmed := strings.TrimSpace(*input.AudienceRefID); trimmed != "" {
			refID = &trimmed
		}
	}
	if audienceType.RequiresRef() && refID == nil {
		return nil, validationError("audienceRefId is required for this audienceType")
	}

	publishAt := time.Now()
	if input.PublishAt != nil && *input.PublishAt != "" {
		parsed, err := time.Parse(time.RFC3339, *input.PublishAt)
		if err != nil {
			return nil, validationError("publishAt must be a valid RFC 3339 datetime")
		}
		publishAt = parsed
	}

	var attachmentURL *string
	if input.AttachmentURL != nil {
		if trimmed := strings.TrimSpace(*input.AttachmentURL); trimmed != "" {
			attachmentURL = &trimmed
		}
	}

	notice := &domain.Notice{
		ID:            uuid.New(),
		Title:         title,
		Body:          body,
		Type:          noticeType,
		AudienceType:  audienceType,
		AudienceRefID: refID,
		IsPinned:      input.IsPinned != nil && *input.IsPinned,
		PublishAt:     publishAt,
		AttachmentURL: attachmentURL,
	}
	if principal.IsAdmin() {
		createdBy := principal.UserID
		notice.CreatedByUserID = &createdBy
	}

	if err := s.noticeRepo.Create(ctx, notice); err != nil {
		return nil, err
	}

	s.invalidatePublicFeed(ctx)
	s.notifierSvc.OnNoticeCreated(notice)

	return notice, nil
}

func (s *service) List(ctx context.Context, principal domain.Principal) ([]domain.Notice, error) {
	if principal.Role == domain.RoleStudent && principal.Student == nil {
		return nil, ErrRecipientNotFound
	}

	// Anonymous requests all hit the same guardian placeholder feed, so it
	// is worth caching.
	if principal.IsAnonymous() && s.redis != nil {
		if cached, err := s.redis.Get(ctx, publicFeedCacheKey).Result(); err == nil {
			var notices []domain.Notice
			if json.Unmarshal([]byte(cached), &notices) == nil {
				return notices, nil
			}
		}
	}

	notices, err := s.noticeRepo.ListVisible(ctx, s.audienceSvc.FiltersFor(principal))
	if err != nil {
		return nil, err
	}

	if principal.IsAnonymous() && s.redis != nil {
		if encoded, err := json.Marshal(notices); err == nil {
			_ = s.redis.Set(ctx, publicFeedCacheKey, encoded, time.Minute).Err()
		}
	}

	return notices, nil
}

func (s *service) Get(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.Notice, error) {
	if principal.Role == domain.RoleStudent && principal.Student == nil {
		return nil, ErrRecipientNotFound
	}

	notice, err := s.noticeRepo.GetVisible(ctx, id, s.audienceSvc.FiltersFor(principal))
	if err != nil {
		return nil, err
	}
	if notice == nil {
		return nil, ErrNoticeNotFound
	}
	return notice, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	exists, err := s.noticeRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNoticeNotFound
	}
	if err := s.noticeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidatePublicFeed(ctx)
	return nil
}

func (s *service) MarkRead(ctx context.Context, principal domain.Principal, noticeID uuid.UUID) error {
	if principal.IsAnonymous() {
		return ErrUnauthorized
	}
	if principal.Role == domain.RoleStudent && principal.Student == nil {
		return ErrRecipientNotFound
	}

	exists, err := s.noticeRepo.Exists(ctx, noticeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNoticeNotFound
	}

	return s.noticeRepo.UpsertRead(ctx, noticeID, principal.RecipientID())
}

// UnreadCount counts the notices addressed to the principal that lack a read
// receipt. It shares FiltersFor with List so the count can never disagree
// with the visible list.
func (s *service) UnreadCount(ctx context.Context, principal domain.Principal) (int64, error) {
	if principal.IsAnonymous() {
		return 0, ErrUnauthorized
	}
	if principal.Role == domain.RoleStudent && principal.Student == nil {
		return 0, ErrRecipientNotFound
	}

	return s.noticeRepo.CountUnread(ctx, s.audienceSvc.FiltersFor(principal), principal.RecipientID())
}

func (s *service) invalidatePublicFeed(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, publicFeedCacheKey).Err()
	}
}
