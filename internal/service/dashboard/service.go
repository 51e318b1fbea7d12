package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"math-academy/internal/repository"
)

type Stats struct {
	TotalNotices         int64 `json:"total_notices"`
	TotalStudents        int64 `json:"total_students"`
	EnabledSubscriptions int64 `json:"enabled_subscriptions"`
}

type Service interface {
	GetStats(ctx context.Context) (*Stats, error)
}

type service struct {
	noticeRepo  repository.NoticeRepository
	studentRepo repository.StudentRepository
	subRepo     repository.SubscriptionRepository
	redis       *redis.Client
}

func NewService(noticeRepo repository.NoticeRepository, studentRepo repository.StudentRepository, subRepo repository.SubscriptionRepository, redis *redis.Client) Service {
	return &service{
		noticeRepo:  noticeRepo,
		studentRepo: studentRepo,
		subRepo:     subRepo,
		redis:       redis,
	}
}

func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	cacheKey := "dashboard:stats"

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var stats Stats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	totalNotices, err := s.noticeRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	totalStudents, err := s.studentRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	enabledSubs, err := s.subRepo.CountEnabled(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalNotices:         totalNotices,
		TotalStudents:        totalStudents,
		EnabledSubscriptions: enabledSubs,
	}

	if s.redis != nil {
		if encoded, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, cacheKey, encoded, 5*time.Minute).Err()
		}
	}

	return stats, nil
}
