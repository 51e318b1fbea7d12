package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"math-academy/internal/config"
	"math-academy/internal/repository"
	"math-academy/internal/service/assessment"
	"math-academy/internal/service/audience"
	"math-academy/internal/service/auth"
	"math-academy/internal/service/dashboard"
	"math-academy/internal/service/email"
	"math-academy/internal/service/notice"
	"math-academy/internal/service/notifier"
	"math-academy/internal/service/push"
	"math-academy/internal/service/session"
	"math-academy/internal/service/storage"
)

type Services struct {
	Sessions   *session.Manager
	Auth       auth.Service
	Audience   audience.Service
	Push       push.Service
	Notifier   notifier.Service
	Notice     notice.Service
	Assessment assessment.Service
	Storage    storage.Service
	Dashboard  dashboard.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config, log *logrus.Logger) *Services {
	sessions := session.NewManager(cfg)
	authService := auth.NewService(repos.User, repos.Student, sessions)
	audienceService := audience.NewService(repos.Student, repos.User)
	pushService := push.NewService(repos.Subscription, push.NewWebPushSender(cfg), cfg, log)
	emailService := email.NewService(cfg)
	notifierService := notifier.NewService(audienceService, pushService, emailService, cfg, log)
	noticeService := notice.NewService(repos.Notice, audienceService, notifierService, redis)
	assessmentService := assessment.NewService(repos.Assessment, repos.Batch, notifierService)
	storageService := storage.NewService(minioClient, cfg)
	dashboardService := dashboard.NewService(repos.Notice, repos.Student, repos.Subscription, redis)

	return &Services{
		Sessions:   sessions,
		Auth:       authService,
		Audience:   audienceService,
		Push:       pushService,
		Notifier:   notifierService,
		Notice:     noticeService,
		Assessment: assessmentService,
		Storage:    storageService,
		Dashboard:  dashboardService,
	}
}
