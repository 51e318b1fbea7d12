package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"math-academy/internal/config"
)

// Service sends the few operational emails the center needs. Callers treat
// it as best-effort; a nil Service is allowed and means email is disabled.
type Service interface {
	SendUrgentNoticeAlert(ctx context.Context, toEmail, noticeTitle, noticeBody string) error
}

type service struct {
	client *resend.Client
	cfg    *config.Config
}

func NewService(cfg *config.Config) Service {
	if cfg.ResendAPIKey == "" {
		return nil
	}
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		cfg:    cfg,
	}
}

var urgentNoticeTmpl = template.Must(template.New("urgent_notice").Parse(`
<div style="font-family: sans-serif; max-width: 560px; margin: 0 auto;">
  <h2 style="color: #b91c1c;">Urgent notice published</h2>
  <p><strong>{{ .Title }}</strong></p>
  <p>{{ .Body }}</p>
  <p style="color: #6b7280; font-size: 12px;">Sent by {{ .AppName }}</p>
</div>`))

func (s *service) SendUrgentNoticeAlert(ctx context.Context, toEmail, noticeTitle, noticeBody string) error {
	data := struct {
		Title   string
		Body    string
		AppName string
	}{
		Title:   noticeTitle,
		Body:    noticeBody,
		AppName: s.cfg.AppName,
	}

	var body bytes.Buffer
	if err := urgentNoticeTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render urgent notice email: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.cfg.AppName, s.cfg.FromEmail),
		To:      []string{toEmail},
		Subject: fmt.Sprintf("[URGENT] %s", noticeTitle),
		Html:    body.String(),
	}

	_, err := s.client.Emails.Send(params)
	return err
}
