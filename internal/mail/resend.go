package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	resendEndpoint = "https://api.resend.com/emails"

	// resendTestSender works without a verified domain.
	resendTestSender = "Portfolio <onboarding@resend.dev>"
)

// Resend sends mail through the Resend transactional email API.
type Resend struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewResend returns a Resend mailer. An empty endpoint uses the public API.
func NewResend(apiKey, endpoint string) *Resend {
	if endpoint == "" {
		endpoint = resendEndpoint
	}
	return &Resend{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// Send implements Mailer.
func (r *Resend) Send(ctx context.Context, msg Message) error {
	if msg.From == "" {
		msg.From = resendTestSender
	}
	if r.apiKey == "" || msg.To == "" {
		return fmt.Errorf("resend: %w", ErrNotConfigured)
	}

	payload, err := json.Marshal(resendRequest{
		From:    msg.From,
		To:      []string{msg.To},
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("encode resend request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("resend: status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}
