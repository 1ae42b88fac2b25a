package domain

import (
	"context"

	"movesmart/internal/models"
)

type Repository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) error
	ListBookings(ctx context.Context) ([]models.Booking, error)

	GetService(ctx context.Context, id int64) (*models.Service, error)
	GetActiveServices(ctx context.Context) ([]models.Service, error)
	GetFeaturedTestimonials(ctx context.Context) ([]models.Testimonial, error)

	CreateContactMessage(ctx context.Context, message *models.ContactMessage) error
	ListContactMessages(ctx context.Context) ([]models.ContactMessage, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// Sender delivers one rendered message over one channel. Implementations are
// expected to be safe for concurrent use.
type Sender interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
	SendSMS(ctx context.Context, to, body string) error
}

// CatalogCache holds read-mostly catalog listings close to the handlers.
type CatalogCache interface {
	GetServices(ctx context.Context) ([]models.Service, bool, error)
	SetServices(ctx context.Context, services []models.Service) error
	GetTestimonials(ctx context.Context) ([]models.Testimonial, bool, error)
	SetTestimonials(ctx context.Context, testimonials []models.Testimonial) error
}

// SyncWorker schedules dispatch-sheet updates outside the request path.
type SyncWorker interface {
	EnqueueUpsert(ctx context.Context, booking *models.Booking) error
	EnqueueStatusUpdate(ctx context.Context, bookingID int64, status string) error
}
