package notifier

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"math-academy/internal/config"
	"math-academy/internal/domain"
	"math-academy/internal/service/audience"
	"math-academy/internal/service/email"
	"math-academy/internal/service/push"
)

// Service is the event surface the creation flows call into. Both hooks are
// fire-and-forget: the HTTP request that created the notice or assessment
// returns immediately and never learns whether delivery worked. Anything
// going wrong in here is logged and dropped.
type Service interface {
	OnNoticeCreated(notice *domain.Notice)
	OnAssessmentCreated(assessment *domain.Assessment)
}

type service struct {
	audienceSvc audience.Service
	pushSvc     push.Service
	emailSvc    email.Service
	cfg         *config.Config
	log         *logrus.Logger
}

func NewService(audienceSvc audience.Service, pushSvc push.Service, emailSvc email.Service, cfg *config.Config, log *logrus.Logger) Service {
	return &service{
		audienceSvc: audienceSvc,
		pushSvc:     pushSvc,
		emailSvc:    emailSvc,
		cfg:         cfg,
		log:         log,
	}
}

func (s *service) OnNoticeCreated(notice *domain.Notice) {
	n := *notice
	go s.noticeCreated(context.Background(), &n)
}

func (s *service) OnAssessmentCreated(assessment *domain.Assessment) {
	a := *assessment
	go s.assessmentCreated(context.Background(), &a)
}

// noticeCreated resolves the notice's audience and fans the push payload
// out. Exported behavior lives here rather than in the goroutine launcher so
// it stays testable synchronously.
func (s *service) noticeCreated(ctx context.Context, notice *domain.Notice) {
	selector, err := s.audienceSvc.Expand(ctx, notice.AudienceType, notice.AudienceRef())
	if err != nil {
		s.log.WithError(err).WithField("notice_id", notice.ID).
			Error("failed to resolve notice audience for push")
		return
	}

	report := s.pushSvc.Dispatch(ctx, selector, domain.PushMessage{
		Title: s.cfg.AppName,
		Body:  notice.Title,
		URL:   fmt.Sprintf("/notices/%s", notice.ID),
	})
	s.logReport("notice", notice.ID.String(), report)

	if notice.Type == domain.NoticeUrgent {
		s.alertAdmin(ctx, notice)
	}
}

func (s *service) assessmentCreated(ctx context.Context, assessment *domain.Assessment) {
	selector, err := s.audienceSvc.Expand(ctx, domain.AudienceBatch, assessment.BatchID.String())
	if err != nil {
		s.log.WithError(err).WithField("assessment_id", assessment.ID).
			Error("failed to resolve assessment audience for push")
		return
	}

	report := s.pushSvc.Dispatch(ctx, selector, domain.PushMessage{
		Title: s.cfg.AppName,
		Body:  fmt.Sprintf("New assessment: %s", assessment.Title),
		URL:   "/student/results",
	})
	s.logReport("assessment", assessment.ID.String(), report)
}

func (s *service) alertAdmin(ctx context.Context, notice *domain.Notice) {
	if s.emailSvc == nil || s.cfg.AdminAlertEmail == "" {
		return
	}
	if err := s.emailSvc.SendUrgentNoticeAlert(ctx, s.cfg.AdminAlertEmail, notice.Title, notice.Body); err != nil {
		s.log.WithError(err).WithField("notice_id", notice.ID).
			Warn("failed to send urgent notice alert email")
	}
}

func (s *service) logReport(trigger, id string, report domain.DispatchReport) {
	s.log.WithFields(logrus.Fields{
		"trigger":   trigger,
		"id":        id,
		"attempted": report.Attempted,
		"delivered": report.Delivered,
		"failed":    report.Failed,
		"disabled":  report.Disabled,
		"aborted":   report.Aborted,
	}).Info("push dispatch finished")
}
