// Package notification implements the outbound notification port: every
// message is doubled as an in-app notification row and an email.
package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/osis/backend/internal/infrastructure/config"
)

// Mailer sends one email to the given recipients
type Mailer interface {
	Send(ctx context.Context, to []string, cc []string, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP relay
type SMTPMailer struct {
	cfg config.MailConfig
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers the message. Recipients in cc receive a copy.
func (m *SMTPMailer) Send(_ context.Context, to []string, cc []string, subject, body string) error {
	if len(to) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	from := m.cfg.SenderEmail
	if m.cfg.SenderName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.SenderName, m.cfg.SenderEmail)
	}

	var msg strings.Builder
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	if len(cc) > 0 {
		msg.WriteString("Cc: " + strings.Join(cc, ", ") + "\r\n")
	}
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)
	}

	recipients := append(append([]string{}, to...), cc...)
	return smtp.SendMail(addr, auth, m.cfg.SenderEmail, recipients, []byte(msg.String()))
}

// LogMailer logs messages instead of sending them. Used when outbound
// mail is disabled (development, test environments).
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a new LogMailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message
func (m *LogMailer) Send(_ context.Context, to []string, cc []string, subject, _ string) error {
	m.logger.Info("mail suppressed (outbound mail disabled)",
		zap.Strings("to", to),
		zap.Strings("cc", cc),
		zap.String("subject", subject),
	)
	return nil
}
