package mail

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/devfolio/internal/config"
)

func TestComposeContact(t *testing.T) {
	msg := ComposeContact(ContactFields{
		Name:    "Jane\r\nBcc: evil@example.com",
		Email:   "jane@example.com",
		Message: "Hello there,\nnice site!",
	}, "me@example.dev", "site@example.dev")

	assert.Equal(t, "me@example.dev", msg.To)
	assert.Equal(t, "site@example.dev", msg.From)
	assert.Equal(t, "jane@example.com", msg.ReplyTo)
	assert.NotContains(t, msg.Subject, "\n")
	assert.True(t, strings.HasPrefix(msg.Subject, "Portfolio Contact: Jane"))
	assert.Contains(t, msg.Text, "Email: jane@example.com")
	assert.Contains(t, msg.Text, "Hello there,\nnice site!")
}

func TestNew(t *testing.T) {
	m, err := New(config.MailConfig{Provider: "smtp"})
	require.NoError(t, err)
	assert.IsType(t, &SMTP{}, m)

	m, err = New(config.MailConfig{Provider: "resend", ResendAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &Resend{}, m)

	_, err = New(config.MailConfig{Provider: "fax"})
	assert.Error(t, err)
}

func TestSMTP_NotConfigured(t *testing.T) {
	s := NewSMTP(config.MailConfig{SMTPHost: "smtp.example.com"})
	err := s.Send(context.Background(), Message{To: "a@b.c"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	s = NewSMTP(config.MailConfig{SMTPHost: "smtp.example.com", SMTPUser: "u", SMTPPass: "p"})
	err = s.Send(context.Background(), Message{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSMTP_Send(t *testing.T) {
	s := NewSMTP(config.MailConfig{
		SMTPHost: "smtp.example.com",
		SMTPUser: "user@example.com",
		SMTPPass: "secret",
		To:       "owner@example.com",
	})
	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  string
	)
	s.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, string(msg)
		return nil
	}

	msg := ComposeContact(ContactFields{Name: "Jane", Email: "jane@example.com", Message: "hi"}, "", "")
	require.NoError(t, s.Send(context.Background(), msg))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "user@example.com", gotFrom)
	assert.Equal(t, []string{"owner@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Reply-To: jane@example.com\r\n")
	assert.Contains(t, gotMsg, "Subject: Portfolio Contact: Jane\r\n")
}

func TestSMTP_SendError(t *testing.T) {
	s := NewSMTP(config.MailConfig{SMTPHost: "h", SMTPUser: "u", SMTPPass: "p", To: "t@example.com"})
	s.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("421 try later") }

	err := s.Send(context.Background(), Message{Subject: "x"})
	assert.ErrorContains(t, err, "421")
}

func TestResend_Send(t *testing.T) {
	var got resendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer re_123", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	t.Cleanup(srv.Close)

	r := NewResend("re_123", srv.URL)
	err := r.Send(context.Background(), Message{To: "owner@example.com", ReplyTo: "jane@example.com", Subject: "s", Text: "t"})
	require.NoError(t, err)

	assert.Equal(t, []string{"owner@example.com"}, got.To)
	assert.Equal(t, resendTestSender, got.From)
	assert.Equal(t, "jane@example.com", got.ReplyTo)
}

func TestResend_Errors(t *testing.T) {
	err := NewResend("", "").Send(context.Background(), Message{To: "a@b.c"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	t.Cleanup(srv.Close)

	err = NewResend("k", srv.URL).Send(context.Background(), Message{To: "a@b.c"})
	assert.ErrorContains(t, err, "status 422")
	assert.ErrorContains(t, err, "invalid from")
}
