package mailer

import (
	"context"
	"strings"

	"skillified/internal/config"

	"go.uber.org/zap"
	gomail "gopkg.in/mail.v2"
)

type Mail struct {
	Subject string
	Body    string
	From    string
	To      []string
}

type Sender interface {
	Send(ctx context.Context, m Mail) error
}

// NewSender returns an SMTP sender when SMTP is configured and a logging
// sender otherwise.
func NewSender(cfg config.MailConfig, logger *zap.Logger) Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.SMTPEnabled() {
		logger.Info("smtp not configured, contact mail will only be logged")
		return LogSender{Logger: logger}
	}
	return NewSMTPSender(cfg)
}

type SMTPSender struct {
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	d := gomail.NewDialer(strings.TrimSpace(cfg.SMTPHost), cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	d.StartTLSPolicy = gomail.OpportunisticStartTLS
	return &SMTPSender{dialer: d}
}

func (s *SMTPSender) Send(ctx context.Context, m Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", m.To...)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Body)
	return s.dialer.DialAndSend(msg)
}

// LogSender records mail instead of sending it.
type LogSender struct {
	Logger *zap.Logger
}

func (s LogSender) Send(_ context.Context, m Mail) error {
	s.Logger.Info("mail not sent, smtp disabled",
		zap.String("subject", m.Subject),
		zap.String("from", m.From),
		zap.Strings("to", m.To),
	)
	return nil
}
