package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/nutri-api/internal/config"
)

// SMTPService delivers mail through an SMTP relay
type SMTPService struct {
	from   string
	send   func(...*gomail.Message) error
	logger zerolog.Logger
}

// New returns an SMTP sender, or a NopService when no host is configured
func New(cfg config.SMTPConfig, logger zerolog.Logger) Service {
	if cfg.Host == "" {
		logger.Info().Msg("smtp not configured, outgoing mail disabled")
		return NopService{}
	}
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return &SMTPService{
		from:   cfg.From,
		send:   dialer.DialAndSend,
		logger: logger,
	}
}

func (s *SMTPService) SendPasswordReset(ctx context.Context, to, name, link string) error {
	return s.deliver(ctx, passwordReset(to, name, link))
}

func (s *SMTPService) SendWelcome(ctx context.Context, to, name string) error {
	return s.deliver(ctx, welcome(to, name))
}

func (s *SMTPService) deliver(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.send(s.render(msg)); err != nil {
		s.logger.Error().Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("failed to send mail")
		return fmt.Errorf("failed to send mail: %w", err)
	}
	s.logger.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail sent")
	return nil
}

func (s *SMTPService) render(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	return m
}
