package database

import (
	"context"
	"testing"

	"movesmart/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContactMessage(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	message := &models.ContactMessage{
		Name:    "Jordan",
		Email:   "jordan@example.com",
		Subject: "Quote request",
		Message: "How much for a studio move within the GTA?",
	}

	require.NoError(t, db.CreateContactMessage(ctx, message))
	assert.NotZero(t, message.ID)
	assert.Equal(t, models.ContactStatusNew, message.Status)

	messages, err := db.ListContactMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Quote request", messages[0].Subject)
	assert.Empty(t, messages[0].Phone)
}
