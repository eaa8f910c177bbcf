package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/Zachkp/devfolio/internal/config"
)

// SMTP sends mail with PLAIN auth through a submission server.
type SMTP struct {
	host string
	port string
	user string
	pass string
	to   string
	from string

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTP builds an SMTP mailer from config.
func NewSMTP(cfg config.MailConfig) *SMTP {
	port := cfg.SMTPPort
	if port == "" {
		port = "587"
	}
	return &SMTP{
		host: cfg.SMTPHost,
		port: port,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		to:   cfg.To,
		from: cfg.From,
		send: smtp.SendMail,
	}
}

// Send implements Mailer. Empty To/From fall back to the configured
// recipient and the SMTP user.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if s.host == "" || s.user == "" || s.pass == "" {
		return fmt.Errorf("smtp credentials: %w", ErrNotConfigured)
	}
	if msg.To == "" {
		msg.To = s.to
	}
	if msg.From == "" {
		msg.From = s.from
	}
	if msg.From == "" {
		msg.From = s.user
	}
	if msg.To == "" {
		return fmt.Errorf("recipient: %w", ErrNotConfigured)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := net.JoinHostPort(s.host, s.port)
	if err := s.send(addr, auth, msg.From, []string{msg.To}, formatRFC822(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func formatRFC822(msg Message) []byte {
	var b strings.Builder
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("From: " + msg.From + "\r\n")
	if msg.ReplyTo != "" {
		b.WriteString("Reply-To: " + msg.ReplyTo + "\r\n")
	}
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Text, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}
