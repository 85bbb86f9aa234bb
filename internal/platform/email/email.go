package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"

	"staffsync/internal/platform/config"
)

var ErrNotConfigured = errors.New("email service is not configured")

type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Mailer delivers one message and returns the provider message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
	Configured() bool
}

type noopMailer struct{}

func (noopMailer) Send(context.Context, Message) (string, error) {
	return "", ErrNotConfigured
}

func (noopMailer) Configured() bool { return false }

type smtpMailer struct {
	cfg config.Config
}

func New(cfg config.Config) Mailer {
	if !cfg.EmailEnabled || cfg.SMTPHost == "" {
		return noopMailer{}
	}
	return &smtpMailer{cfg: cfg}
}

func (s *smtpMailer) Configured() bool { return true }

func (s *smtpMailer) Send(ctx context.Context, msg Message) (string, error) {
	if strings.TrimSpace(msg.To) == "" {
		return "", errors.New("recipient is required")
	}
	if msg.From == "" {
		msg.From = s.cfg.EmailFrom
	}
	id := uuid.NewString()
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	dialer := net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return "", err
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		return "", err
	}
	defer client.Close()

	if s.cfg.SMTPUseTLS {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.SMTPHost}); err != nil {
			return "", err
		}
	}

	if s.cfg.SMTPUser != "" {
		auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return "", err
		}
	}

	if err := client.Mail(msg.From); err != nil {
		return "", err
	}
	if err := client.Rcpt(msg.To); err != nil {
		return "", err
	}
	w, err := client.Data()
	if err != nil {
		return "", err
	}
	if _, err := w.Write(buildMessage(id, s.cfg.SMTPHost, msg)); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	if err := client.Quit(); err != nil {
		return "", err
	}
	return id, nil
}

func buildMessage(id, host string, msg Message) []byte {
	headers := []string{
		fmt.Sprintf("Message-ID: <%s@%s>", id, host),
		fmt.Sprintf("From: %s", msg.From),
		fmt.Sprintf("To: %s", msg.To),
		fmt.Sprintf("Subject: %s", msg.Subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n" + msg.HTML)
}
