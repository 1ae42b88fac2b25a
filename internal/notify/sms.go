package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"movesmart/internal/config"

	"github.com/rs/zerolog"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioClient sends SMS through the Twilio Messages endpoint. Unconfigured
// credentials degrade to skip-and-log, same policy as email.
type TwilioClient struct {
	cfg     config.SMSConfig
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

func NewTwilioClient(cfg config.SMSConfig, logger zerolog.Logger) *TwilioClient {
	return &TwilioClient{
		cfg:     cfg,
		baseURL: twilioAPIBase,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

func (c *TwilioClient) Configured() bool {
	return c.cfg.AccountSID != "" && c.cfg.AuthToken != "" && c.cfg.FromPhone != ""
}

func (c *TwilioClient) Send(ctx context.Context, to, body string) error {
	if !c.Configured() {
		c.logger.Warn().Str("to", to).Msg("sms credentials not configured, sms skipped")
		return nil
	}

	formatted := FormatPhone(to)
	if formatted == "" {
		return fmt.Errorf("invalid recipient phone number: %q", to)
	}

	form := url.Values{}
	form.Set("To", formatted)
	form.Set("From", FormatPhone(c.cfg.FromPhone))
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, c.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &apiErr)
		if apiErr.Message != "" {
			return fmt.Errorf("twilio responded %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("twilio responded %d", resp.StatusCode)
	}

	c.logger.Info().Str("to", formatted).Msg("sms sent")
	return nil
}

// FormatPhone normalizes a phone number to E.164, assuming US/Canada when the
// country code is missing.
func FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}

	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "+" {
		return ""
	}

	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}

	switch {
	case len(cleaned) == 10:
		return "+1" + cleaned
	case len(cleaned) == 11 && strings.HasPrefix(cleaned, "1"):
		return "+" + cleaned
	}

	// Not obviously North American; pass through with the plus and let the
	// provider reject it if malformed.
	return "+" + cleaned
}
