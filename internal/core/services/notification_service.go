package services

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"github.com/Raju-02-19/college-voting-system/internal/config"

	"gopkg.in/gomail.v2"
)

// ErrMailDisabled is returned when no SMTP credentials are configured
var ErrMailDisabled = errors.New("mail delivery is not configured")

// NotificationService sends mail over SMTP
type NotificationService struct {
	cfg    config.MailConfig
	dialer *gomail.Dialer
}

// NewNotificationService creates a new SMTP notification service
func NewNotificationService(cfg config.MailConfig) *NotificationService {
	d := gomail.NewDialer(cfg.Server, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.UseSSL
	if cfg.UseTLS || cfg.UseSSL {
		d.TLSConfig = &tls.Config{ServerName: cfg.Server, MinVersion: tls.VersionTLS12}
	}

	return &NotificationService{
		cfg:    cfg,
		dialer: d,
	}
}

// Enabled checks if mail is configured
func (s *NotificationService) Enabled() bool {
	return s.cfg.Enabled()
}

// Send delivers a plain-text message
func (s *NotificationService) Send(ctx context.Context, to, subject, body string) error {
	if !s.Enabled() {
		return ErrMailDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.DefaultSender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp delivery to %s failed: %w", to, err)
	}
	return nil
}

// registrationCodeMessage builds the subject and body of a one-time code mail
func registrationCodeMessage(code string) (string, string) {
	return "Your College Voting OTP", fmt.Sprintf("Your OTP is: %s", code)
}
