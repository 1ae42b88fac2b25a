package notify

import (
	"context"
)

// ProviderSender is the production Sender: SMTP for email, Twilio for SMS.
type ProviderSender struct {
	email *SMTPClient
	sms   *TwilioClient
}

func NewProviderSender(email *SMTPClient, sms *TwilioClient) *ProviderSender {
	return &ProviderSender{email: email, sms: sms}
}

func (s *ProviderSender) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	return s.email.Send(ctx, to, subject, htmlBody)
}

func (s *ProviderSender) SendSMS(ctx context.Context, to, body string) error {
	return s.sms.Send(ctx, to, body)
}

// SMSAvailable reports whether the SMS channel is configured; the dispatcher
// skips the channel entirely when it is not.
func (s *ProviderSender) SMSAvailable() bool {
	return s.sms != nil && s.sms.Configured()
}
