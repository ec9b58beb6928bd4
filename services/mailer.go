// services/mailer.go
package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"reminders-backend/config"
)

// Notifier is the outbound notification transport. Verify is called once at
// boot; a verification failure is fatal for the process.
type Notifier interface {
	Verify() error
	Send(to, body string) error
	Close() error
}

// SMTPMailer sends plain-text reminder emails over SMTP.
type SMTPMailer struct {
	dialer  *gomail.Dialer
	from    string
	subject string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SenderEmail, cfg.SMTPPassword)
	dialer.SSL = cfg.SMTPSecure

	return &SMTPMailer{
		dialer:  dialer,
		from:    fmt.Sprintf("%s <%s>", cfg.SenderName, cfg.SenderEmail),
		subject: cfg.EmailSubject,
	}
}

// Verify checks SMTP connectivity by dialing and closing a connection.
func (m *SMTPMailer) Verify() error {
	conn, err := m.dialer.Dial()
	if err != nil {
		return fmt.Errorf("smtp verification failed: %w", err)
	}
	return conn.Close()
}

func (m *SMTPMailer) Send(to, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", m.subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}

func (m *SMTPMailer) Close() error {
	// DialAndSend opens a fresh connection per message; nothing is held open.
	return nil
}
