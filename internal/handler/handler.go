package handler

import (
	"math-academy/internal/config"
	"math-academy/internal/service"
)

type Handlers struct {
	Auth       *AuthHandler
	Notice     *NoticeHandler
	Push       *PushHandler
	Assessment *AssessmentHandler
	Dashboard  *DashboardHandler
}

func NewHandlers(services *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(services.Auth, cfg),
		Notice:     NewNoticeHandler(services.Notice, services.Storage),
		Push:       NewPushHandler(services.Push),
		Assessment: NewAssessmentHandler(services.Assessment),
		Dashboard:  NewDashboardHandler(services.Dashboard),
	}
}
