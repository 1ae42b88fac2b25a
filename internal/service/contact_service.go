package service

import (
	"context"
	"fmt"

	"movesmart/internal/domain"
	"movesmart/internal/events"
	"movesmart/internal/models"

	"github.com/rs/zerolog"
)

type ContactService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewContactService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *ContactService {
	return &ContactService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Submit validates and stores a contact form message, then raises
// contact_received. Phone is optional.
func (s *ContactService) Submit(ctx context.Context, message *models.ContactMessage) error {
	if err := required("name", message.Name); err != nil {
		return err
	}
	if err := required("email", message.Email); err != nil {
		return err
	}
	if err := validEmail("email", message.Email); err != nil {
		return err
	}
	if err := required("subject", message.Subject); err != nil {
		return err
	}
	if err := required("message", message.Message); err != nil {
		return err
	}

	message.Status = models.ContactStatusNew
	if err := s.repo.CreateContactMessage(ctx, message); err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	if s.eventBus != nil {
		payload := events.ContactEventPayload{
			MessageID: message.ID,
			Name:      message.Name,
			Email:     message.Email,
			Phone:     message.Phone,
			Subject:   message.Subject,
			Message:   message.Message,
		}
		if err := s.eventBus.PublishJSON(events.EventContactReceived, payload); err != nil {
			s.logger.Error().Err(err).Int64("message_id", message.ID).Msg("publish event error")
		}
	}

	return nil
}

func (s *ContactService) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	return s.repo.ListContactMessages(ctx)
}
