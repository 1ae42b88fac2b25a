package notify

import (
	"fmt"

	"movesmart/internal/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// TelegramAlerter pushes admin alerts to a Telegram chat. It is an optional
// extra channel next to the admin email/SMS; nil when not configured.
type TelegramAlerter struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

func NewTelegramAlerter(cfg config.TelegramConfig, logger zerolog.Logger) (*TelegramAlerter, error) {
	if cfg.BotToken == "" || cfg.AdminChatID == 0 {
		return nil, nil
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}

	logger.Info().Str("bot", api.Self.UserName).Msg("telegram admin alerts enabled")
	return &TelegramAlerter{api: api, chatID: cfg.AdminChatID, logger: logger}, nil
}

func (a *TelegramAlerter) Alert(text string) error {
	if a == nil {
		return nil
	}

	msg := tgbotapi.NewMessage(a.chatID, text)
	if _, err := a.api.Send(msg); err != nil {
		return fmt.Errorf("telegram alert: %w", err)
	}
	return nil
}
