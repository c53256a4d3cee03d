// Package messaging implements the confirmation delivery channels: email
// via Resend and SMS/WhatsApp via Twilio.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"yatra/config"
	"yatra/internal/domain/service"
	"yatra/internal/errors"
)

const resendEndpoint = "https://api.resend.com/emails"

type resendSender struct {
	apiKey      string
	fromAddress string
	httpClient  *http.Client
}

// NewResendSender creates an email sender over the Resend API.
func NewResendSender(cfg *config.ResendConfig) service.EmailSender {
	sender := &resendSender{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	if cfg != nil {
		sender.apiKey = cfg.APIKey
		sender.fromAddress = cfg.FromAddress
	}

	return sender
}

// SendEmail delivers one transactional email.
func (s *resendSender) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	if s.apiKey == "" {
		return errors.New("resend is not configured")
	}

	payload, err := json.Marshal(map[string]any{
		"from":    s.fromAddress,
		"to":      []string{to},
		"subject": subject,
		"html":    htmlBody,
	})
	if err != nil {
		return errors.Wrap(err, "failed to encode email payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to build email request")
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "email request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return errors.Errorf("resend error (%d): %s", resp.StatusCode, string(body))
	}

	return nil
}
