package service

import "context"

// EmailSender delivers transactional email.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

// SMSSender delivers a plain-text SMS to an E.164 number.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// WhatsAppSender delivers a WhatsApp message to an E.164 number.
type WhatsAppSender interface {
	SendWhatsApp(ctx context.Context, to, body string) error
}
