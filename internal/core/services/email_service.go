package services

import (
	"context"
	"fmt"

	"library-api/internal/config"

	"gopkg.in/gomail.v2"
)

// mailDialer is the part of *gomail.Dialer the email service uses
type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// emailService sends mail over SMTP
type emailService struct {
	cfg    config.MailConfig
	dialer mailDialer
}

// NewEmailService creates a new SMTP email service
func NewEmailService(cfg config.MailConfig) EmailService {
	return &emailService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// SendMails sends message to every address as a single mail.
// Recipients go in Bcc so customers don't see each other.
func (s *emailService) SendMails(ctx context.Context, message string, emails []string) error {
	if len(emails) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.DefaultSender)
	m.SetHeader("Bcc", emails...)
	m.SetHeader("Subject", s.cfg.Subject)
	m.SetBody("text/plain", message)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %d recipients: %w", len(emails), err)
	}
	return nil
}
