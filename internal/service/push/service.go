package push

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"math-academy/internal/config"
	"math-academy/internal/domain"
	"math-academy/internal/repository"
)

var (
	ErrInvalidSubscription = errors.New("invalid subscription payload")
	ErrPushNotConfigured   = errors.New("push public key not configured")
)

// Service is the subscription registry plus the dispatcher. Dispatch is
// best-effort by contract: per-endpoint failures are logged and dropped, and
// nothing here ever fails the business action that triggered a fan-out.
type Service interface {
	Subscribe(ctx context.Context, principal domain.Principal, input domain.SubscribeInput) (*domain.PushSubscription, error)
	Unsubscribe(ctx context.Context, endpoint string) error
	PublicKey() (string, error)
	Dispatch(ctx context.Context, selector domain.SubscriptionSelector, message domain.PushMessage) domain.DispatchReport
}

type service struct {
	subRepo repository.SubscriptionRepository
	sender  Sender
	cfg     *config.Config
	log     *logrus.Logger
}

func NewService(subRepo repository.SubscriptionRepository, sender Sender, cfg *config.Config, log *logrus.Logger) Service {
	return &service{
		subRepo: subRepo,
		sender:  sender,
		cfg:     cfg,
		log:     log,
	}
}

func (s *service) Subscribe(ctx context.Context, principal domain.Principal, input domain.SubscribeInput) (*domain.PushSubscription, error) {
	if input.Endpoint == "" || input.Keys.P256dh == "" || input.Keys.Auth == "" {
		return nil, ErrInvalidSubscription
	}

	sub := &domain.PushSubscription{
		UserID:   principal.RecipientID(),
		Endpoint: input.Endpoint,
		P256dh:   input.Keys.P256dh,
		Auth:     input.Keys.Auth,
	}
	if err := s.subRepo.Upsert(ctx, sub); err != nil {
		return nil, err
	}
	sub.IsEnabled = true
	return sub, nil
}

func (s *service) Unsubscribe(ctx context.Context, endpoint string) error {
	if endpoint == "" {
		return ErrInvalidSubscription
	}
	return s.subRepo.Disable(ctx, endpoint)
}

func (s *service) PublicKey() (string, error) {
	if s.cfg.VAPIDPublicKey == "" {
		return "", ErrPushNotConfigured
	}
	return s.cfg.VAPIDPublicKey, nil
}

// Dispatch fans message out to every enabled subscription matching selector.
// All deliveries run concurrently and independently; one endpoint failing or
// stalling never cancels the others. Endpoints reported gone are disabled so
// they are skipped next time.
func (s *service) Dispatch(ctx context.Context, selector domain.SubscriptionSelector, message domain.PushMessage) domain.DispatchReport {
	if !s.cfg.PushConfigured() {
		s.log.Warn("push dispatch skipped: VAPID keys not configured")
		return domain.DispatchReport{Aborted: true}
	}

	if selector.Mode == domain.SelectNone {
		return domain.DispatchReport{}
	}

	subs, err := s.subRepo.ListEnabled(ctx, selector)
	if err != nil {
		s.log.WithError(err).Error("push dispatch aborted: failed to list subscriptions")
		return domain.DispatchReport{Aborted: true}
	}
	if len(subs) == 0 {
		return domain.DispatchReport{}
	}

	payload, err := json.Marshal(message)
	if err != nil {
		s.log.WithError(err).Error("push dispatch aborted: failed to encode payload")
		return domain.DispatchReport{Aborted: true}
	}

	report := domain.DispatchReport{Attempted: len(subs)}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for i := range subs {
		sub := subs[i]
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := s.sender.Send(ctx, &sub, payload)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				report.Delivered++
				return
			}

			report.Failed++
			if errors.Is(err, ErrEndpointGone) {
				report.Disabled++
				if disableErr := s.subRepo.Disable(ctx, sub.Endpoint); disableErr != nil {
					s.log.WithError(disableErr).WithField("endpoint", sub.Endpoint).
						Warn("failed to disable gone subscription")
				}
			}
			s.log.WithError(err).WithFields(logrus.Fields{
				"endpoint": sub.Endpoint,
				"user_id":  sub.UserID,
			}).Warn("push delivery failed")
		}()
	}
	wg.Wait()

	return report
}
