package push

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"math-academy/internal/config"
	"math-academy/internal/domain"
)

// ErrEndpointGone marks a permanent delivery failure: the push service no
// longer knows the registration, so the subscription should be disabled.
var ErrEndpointGone = errors.New("push endpoint gone")

// Sender delivers one encrypted payload to one push endpoint. The production
// implementation wraps the Web Push protocol library; tests substitute a
// fake.
type Sender interface {
	Send(ctx context.Context, sub *domain.PushSubscription, payload []byte) error
}

type webpushSender struct {
	cfg    *config.Config
	client *http.Client
}

func NewWebPushSender(cfg *config.Config) Sender {
	return &webpushSender{
		cfg: cfg,
		// Bounds each delivery attempt so one unreachable endpoint cannot
		// hold a dispatch goroutine indefinitely.
		client: &http.Client{Timeout: cfg.PushTimeout},
	}
}

func (s *webpushSender) Send(ctx context.Context, sub *domain.PushSubscription, payload []byte) error {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.cfg.VAPIDSubject,
		VAPIDPublicKey:  s.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: s.cfg.VAPIDPrivateKey,
		TTL:             s.cfg.PushTTL,
		HTTPClient:      s.client,
	})
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ErrEndpointGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("push endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
