package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/ubhospitality/inventory-backend/pkg/config"
	"github.com/ubhospitality/inventory-backend/pkg/logger"
)

// Sender delivers account emails. Sends run in the background; delivery
// failures are logged and never surface to the caller.
type Sender interface {
	SendVerificationEmail(ctx context.Context, to, verifyURL string)
	SendPasswordResetEmail(ctx context.Context, to, resetURL string)
}

type smtpSender struct {
	cfg  config.MailConfig
	logg *logger.Logger
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// New builds an SMTP-backed sender. When mail is not configured the sender
// logs the would-be message and skips delivery, which keeps dev environments
// working without an SMTP relay.
func New(cfg config.MailConfig, logg *logger.Logger) (Sender, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &smtpSender{
		cfg:  cfg,
		logg: logg,
		send: smtp.SendMail,
	}, nil
}

func (s *smtpSender) SendVerificationEmail(ctx context.Context, to, verifyURL string) {
	subject := "Verify your email address"
	body := fmt.Sprintf(
		"Welcome! Please confirm your email address by opening the link below:\r\n\r\n%s\r\n\r\nIf you did not create this account, ignore this message.\r\n",
		verifyURL,
	)
	s.deliver(ctx, to, subject, body)
}

func (s *smtpSender) SendPasswordResetEmail(ctx context.Context, to, resetURL string) {
	subject := "Reset your password"
	body := fmt.Sprintf(
		"A password reset was requested for your account. Open the link below to choose a new password:\r\n\r\n%s\r\n\r\nIf you did not request this, ignore this message.\r\n",
		resetURL,
	)
	s.deliver(ctx, to, subject, body)
}

// deliver hands the message to a goroutine so account flows never block on
// the SMTP relay.
func (s *smtpSender) deliver(ctx context.Context, to, subject, body string) {
	logCtx := s.logg.WithFields(context.WithoutCancel(ctx), map[string]any{
		"mail_to":      to,
		"mail_subject": subject,
	})

	if !s.cfg.Enabled() {
		s.logg.Info(logCtx, "mail disabled, skipping delivery")
		return
	}

	msg := buildMessage(s.cfg.DefaultFrom, to, subject, body)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	go func() {
		if err := s.send(addr, auth, s.cfg.DefaultFrom, []string{to}, msg); err != nil {
			s.logg.Error(logCtx, "mail delivery failed", err)
			return
		}
		s.logg.Info(logCtx, "mail delivered")
	}()
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
