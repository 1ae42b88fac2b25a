package database

import (
	"context"
	"fmt"
	"time"

	"movesmart/internal/models"
)

func (db *DB) CreateContactMessage(ctx context.Context, message *models.ContactMessage) error {
	query := `INSERT INTO contact_messages (name, email, phone, subject, message, status, created_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	if message.Status == "" {
		message.Status = models.ContactStatusNew
	}
	result, err := db.ExecContext(ctx, query,
		message.Name,
		message.Email,
		message.Phone,
		message.Subject,
		message.Message,
		message.Status,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	message.ID = id
	message.CreatedAt = now

	return nil
}

// ListContactMessages возвращает все сообщения, новые в начале
func (db *DB) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	query := `SELECT id, name, email, phone, subject, message, status, created_at
              FROM contact_messages ORDER BY created_at DESC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	var messages []models.ContactMessage
	for rows.Next() {
		var message models.ContactMessage
		err := rows.Scan(
			&message.ID,
			&message.Name,
			&message.Email,
			&message.Phone,
			&message.Subject,
			&message.Message,
			&message.Status,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, message)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contact messages: %w", err)
	}

	return messages, nil
}
