// Package mail sends contact-form notifications through SMTP or the Resend
// HTTP API.
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Zachkp/devfolio/internal/config"
)

// ErrNotConfigured means the provider is missing credentials or a recipient.
var ErrNotConfigured = errors.New("mail provider not configured")

// Message is a plain-text email.
type Message struct {
	To      string
	From    string
	ReplyTo string
	Subject string
	Text    string
}

// Mailer delivers a message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns the mailer selected by cfg.Provider.
func New(cfg config.MailConfig) (Mailer, error) {
	switch cfg.Provider {
	case "", "smtp":
		return NewSMTP(cfg), nil
	case "resend":
		return NewResend(cfg.ResendAPIKey, ""), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}

// ContactFields is the data a contact notification is built from.
type ContactFields struct {
	Name    string
	Email   string
	Message string
}

// ComposeContact builds the notification sent to the site owner. Header
// values are stripped of line breaks.
func ComposeContact(f ContactFields, to, from string) Message {
	name := headerSafe(f.Name)
	email := headerSafe(f.Email)

	body := fmt.Sprintf(`New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, email, f.Message)

	return Message{
		To:      headerSafe(to),
		From:    headerSafe(from),
		ReplyTo: email,
		Subject: "Portfolio Contact: " + name,
		Text:    body,
	}
}

func headerSafe(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\r", " ", "\n", " ").Replace(s))
}
