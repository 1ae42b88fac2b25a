package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"movesmart/internal/config"

	"github.com/rs/zerolog"
)

// SMTPClient delivers HTML email over plain SMTP with STARTTLS. When the
// credentials are not configured, sends are skipped and logged rather than
// failed — notification delivery is best-effort by policy.
type SMTPClient struct {
	cfg    config.SMTPConfig
	logger zerolog.Logger

	// sendMail is swappable in tests; defaults to smtp.SendMail.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPClient(cfg config.SMTPConfig, logger zerolog.Logger) *SMTPClient {
	return &SMTPClient{
		cfg:      cfg,
		logger:   logger,
		sendMail: smtp.SendMail,
	}
}

// Configured reports whether credentials are present.
func (c *SMTPClient) Configured() bool {
	return c.cfg.Username != "" && c.cfg.Password != ""
}

func (c *SMTPClient) Send(ctx context.Context, to, subject, htmlBody string) error {
	if !c.Configured() {
		c.logger.Warn().Str("to", to).Msg("email credentials not configured, email skipped")
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	auth := smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)

	msg := buildMIMEMessage(c.cfg.SenderName, c.cfg.Username, to, subject, htmlBody)

	if err := c.sendMail(addr, auth, c.cfg.Username, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	c.logger.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}

func buildMIMEMessage(senderName, from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", senderName, from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}
