package messaging

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"yatra/config"
	"yatra/internal/errors"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioSender delivers SMS and WhatsApp messages through the Twilio
// Messages API. It implements both service.SMSSender and
// service.WhatsAppSender.
type TwilioSender struct {
	accountSID   string
	authToken    string
	smsFrom      string
	whatsappFrom string
	httpClient   *http.Client
	baseURL      string
}

// NewTwilioSender creates the Twilio messaging client.
func NewTwilioSender(cfg *config.TwilioConfig) *TwilioSender {
	timeout := 15 * time.Second
	sender := &TwilioSender{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    twilioAPIBase,
	}
	if cfg != nil {
		sender.accountSID = cfg.AccountSID
		sender.authToken = cfg.AuthToken
		sender.smsFrom = cfg.SMSFrom
		sender.whatsappFrom = cfg.WhatsAppFrom
		if cfg.RequestTimeout > 0 {
			sender.httpClient.Timeout = cfg.RequestTimeout
		}
	}

	return sender
}

// SendSMS delivers a plain-text SMS to an E.164 number.
func (s *TwilioSender) SendSMS(ctx context.Context, to, body string) error {
	return s.sendMessage(ctx, s.smsFrom, to, body)
}

// SendWhatsApp delivers a WhatsApp message to an E.164 number.
func (s *TwilioSender) SendWhatsApp(ctx context.Context, to, body string) error {
	return s.sendMessage(ctx, "whatsapp:"+s.whatsappFrom, "whatsapp:"+to, body)
}

func (s *TwilioSender) sendMessage(ctx context.Context, from, to, body string) error {
	if s.accountSID == "" || s.authToken == "" {
		return errors.New("twilio is not configured")
	}

	form := url.Values{}
	form.Set("From", from)
	form.Set("To", to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", s.baseURL, s.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "failed to build message request")
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "message request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return errors.Errorf("twilio error (%d): %s", resp.StatusCode, string(respBody))
	}

	return nil
}
