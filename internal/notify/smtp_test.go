package notify

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"movesmart/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPClient_SkipsWhenUnconfigured(t *testing.T) {
	client := NewSMTPClient(config.SMTPConfig{Host: "smtp.gmail.com", Port: 587}, zerolog.Nop())

	err := client.Send(context.Background(), "to@example.com", "subject", "<p>hi</p>")
	assert.NoError(t, err)
	assert.False(t, client.Configured())
}

func TestSMTPClient_Send(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	client := NewSMTPClient(config.SMTPConfig{
		Host:       "smtp.example.com",
		Port:       587,
		Username:   "sender@example.com",
		Password:   "secret",
		SenderName: "SmartMove Transport",
	}, zerolog.Nop())
	client.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := client.Send(context.Background(), "aisha@example.com", "Your Move is Confirmed", "<p>body</p>")
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "sender@example.com", gotFrom)
	assert.Equal(t, []string{"aisha@example.com"}, gotTo)

	msg := string(gotMsg)
	assert.Contains(t, msg, "From: SmartMove Transport <sender@example.com>")
	assert.Contains(t, msg, "To: aisha@example.com")
	assert.Contains(t, msg, "Subject: Your Move is Confirmed")
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.Contains(t, msg, "<p>body</p>")
}

func TestSMTPClient_SendError(t *testing.T) {
	client := NewSMTPClient(config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "sender@example.com",
		Password: "secret",
	}, zerolog.Nop())
	client.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := client.Send(context.Background(), "to@example.com", "s", "b")
	assert.Error(t, err)
}

func TestSMTPClient_CancelledContext(t *testing.T) {
	client := NewSMTPClient(config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "sender@example.com",
		Password: "secret",
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Send(ctx, "to@example.com", "s", "b")
	assert.ErrorIs(t, err, context.Canceled)
}
