package service

import (
	"context"
	"fmt"

	"movesmart/internal/database"
	"movesmart/internal/domain"
	"movesmart/internal/events"
	"movesmart/internal/metrics"
	"movesmart/internal/models"

	"github.com/rs/zerolog"
)

// statusEvents maps a target status to the event it raises. A transition into
// any other status (including back to pending) is persisted silently.
var statusEvents = map[string]string{
	models.StatusConfirmed: events.EventBookingConfirmed,
	models.StatusCancelled: events.EventBookingCancelled,
	models.StatusCompleted: events.EventBookingCompleted,
}

type BookingService struct {
	repo       domain.Repository
	eventBus   domain.EventPublisher
	syncWorker domain.SyncWorker
	logger     *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, syncWorker domain.SyncWorker, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:       repo,
		eventBus:   eventBus,
		syncWorker: syncWorker,
		logger:     logger,
	}
}

// Submit validates and persists a new booking, then raises booking_created.
// The booking comes back with ID, ServiceName and Status filled in.
func (s *BookingService) Submit(ctx context.Context, booking *models.Booking) error {
	if err := s.validate(booking); err != nil {
		return err
	}

	svc, err := s.repo.GetService(ctx, booking.ServiceID)
	if err != nil {
		if err == database.ErrServiceNotFound {
			return &ValidationError{Field: "service_id", Message: "unknown service"}
		}
		return fmt.Errorf("failed to look up service: %w", err)
	}
	booking.ServiceName = svc.Name
	booking.Status = models.StatusPending

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	metrics.IncBookingCreated()

	s.publishEvent(events.EventBookingCreated, booking)
	s.enqueueUpsert(ctx, booking)

	return nil
}

// UpdateStatus persists the new status verbatim and raises the matching
// lifecycle event. The event fires only when the status actually changes and
// the target is one of confirmed, cancelled or completed; anything else is a
// silent update.
func (s *BookingService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if err := required("status", status); err != nil {
		return err
	}

	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return err
	}

	eventType := ""
	if status != booking.Status {
		eventType = statusEvents[status]
	}

	if err := s.repo.UpdateBookingStatus(ctx, id, status); err != nil {
		return err
	}
	metrics.IncStatusUpdate(status)

	booking.Status = status
	if eventType != "" {
		s.publishEvent(eventType, booking)
	}
	s.enqueueStatus(ctx, id, status)

	return nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

func (s *BookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return s.repo.ListBookings(ctx)
}

func (s *BookingService) validate(booking *models.Booking) error {
	if err := required("customer_name", booking.CustomerName); err != nil {
		return err
	}
	if err := required("customer_email", booking.CustomerEmail); err != nil {
		return err
	}
	if err := validEmail("customer_email", booking.CustomerEmail); err != nil {
		return err
	}
	if err := required("customer_phone", booking.CustomerPhone); err != nil {
		return err
	}
	if booking.ServiceID <= 0 {
		return &ValidationError{Field: "service_id", Message: "is required"}
	}
	if err := required("description", booking.Description); err != nil {
		return err
	}
	if err := required("preferred_date", booking.PreferredDate); err != nil {
		return err
	}
	if err := required("preferred_time", booking.PreferredTime); err != nil {
		return err
	}
	if err := required("address", booking.Address); err != nil {
		return err
	}
	return nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:     booking.ID,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		CustomerPhone: booking.CustomerPhone,
		ServiceName:   booking.ServiceName,
		Description:   booking.Description,
		PreferredDate: booking.PreferredDate,
		PreferredTime: booking.PreferredTime,
		Address:       booking.Address,
		Status:        booking.Status,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}

func (s *BookingService) enqueueUpsert(ctx context.Context, booking *models.Booking) {
	if s.syncWorker == nil {
		return
	}
	if err := s.syncWorker.EnqueueUpsert(ctx, booking); err != nil {
		s.logger.Error().Err(err).Int64("booking_id", booking.ID).Msg("sheets enqueue error")
	}
}

func (s *BookingService) enqueueStatus(ctx context.Context, bookingID int64, status string) {
	if s.syncWorker == nil {
		return
	}
	if err := s.syncWorker.EnqueueStatusUpdate(ctx, bookingID, status); err != nil {
		s.logger.Error().Err(err).Int64("booking_id", bookingID).Msg("sheets enqueue error")
	}
}
