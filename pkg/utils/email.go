package utils

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

// Attachment is an in-memory file attached to an outgoing email.
type Attachment struct {
	Name    string
	Content []byte
}

type Mailer interface {
	Send(to, subject, htmlBody string, attachments ...Attachment) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Password string
}

// SMTPMailer delivers mail through a single SMTP relay using gomail.
type SMTPMailer struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.From, cfg.Password),
	}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string, attachments ...Attachment) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	for _, a := range attachments {
		content := a.Content
		msg.Attach(a.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		Logger.Errorf("failed to send email to %s", to)
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
