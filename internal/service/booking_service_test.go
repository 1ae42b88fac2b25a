package service

import (
	"context"
	"encoding/json"
	"testing"

	"movesmart/internal/database"
	"movesmart/internal/events"
	"movesmart/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockRepo) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockRepo) UpdateBookingStatus(ctx context.Context, id int64, s string) error {
	return m.Called(ctx, id, s).Error(0)
}
func (m *mockRepo) ListBookings(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}
func (m *mockRepo) GetService(ctx context.Context, id int64) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}
func (m *mockRepo) GetActiveServices(ctx context.Context) ([]models.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}
func (m *mockRepo) GetFeaturedTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Testimonial), args.Error(1)
}
func (m *mockRepo) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}
func (m *mockRepo) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContactMessage), args.Error(1)
}

// capturingBus records published events instead of delivering them.
type capturingBus struct {
	published []capturedEvent
}

type capturedEvent struct {
	eventType string
	payload   []byte
}

func (b *capturingBus) PublishJSON(eventType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	b.published = append(b.published, capturedEvent{eventType: eventType, payload: data})
	return nil
}

type mockSyncWorker struct {
	mock.Mock
}

func (m *mockSyncWorker) EnqueueUpsert(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockSyncWorker) EnqueueStatusUpdate(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func validBooking() *models.Booking {
	return &models.Booking{
		CustomerName:  "Aisha Park",
		CustomerEmail: "aisha@example.com",
		CustomerPhone: "4165550123",
		ServiceID:     1,
		Description:   "2-bedroom condo",
		PreferredDate: "2025-03-01",
		PreferredTime: "10:00",
		Address:       "12 King St W, Toronto",
	}
}

func TestSubmitBooking(t *testing.T) {
	repo := new(mockRepo)
	bus := &capturingBus{}
	worker := new(mockSyncWorker)

	repo.On("GetService", mock.Anything, int64(1)).Return(&models.Service{ID: 1, Name: "Residential Moving"}, nil)
	repo.On("CreateBooking", mock.Anything, mock.AnythingOfType("*models.Booking")).Return(nil)
	worker.On("EnqueueUpsert", mock.Anything, mock.AnythingOfType("*models.Booking")).Return(nil)

	svc := NewBookingService(repo, bus, worker, testLogger())
	booking := validBooking()

	err := svc.Submit(context.Background(), booking)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, booking.Status)
	assert.Equal(t, "Residential Moving", booking.ServiceName)

	require.Len(t, bus.published, 1)
	assert.Equal(t, events.EventBookingCreated, bus.published[0].eventType)

	var payload events.BookingEventPayload
	require.NoError(t, json.Unmarshal(bus.published[0].payload, &payload))
	assert.Equal(t, "Aisha Park", payload.CustomerName)
	assert.Equal(t, "Residential Moving", payload.ServiceName)
	assert.Equal(t, models.StatusPending, payload.Status)

	repo.AssertExpectations(t)
	worker.AssertExpectations(t)
}

func TestSubmitBookingValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Booking)
		field  string
	}{
		{"missing name", func(b *models.Booking) { b.CustomerName = "" }, "customer_name"},
		{"missing email", func(b *models.Booking) { b.CustomerEmail = " " }, "customer_email"},
		{"bad email", func(b *models.Booking) { b.CustomerEmail = "not-an-email" }, "customer_email"},
		{"bad email no tld", func(b *models.Booking) { b.CustomerEmail = "a@b" }, "customer_email"},
		{"missing phone", func(b *models.Booking) { b.CustomerPhone = "" }, "customer_phone"},
		{"missing service", func(b *models.Booking) { b.ServiceID = 0 }, "service_id"},
		{"missing description", func(b *models.Booking) { b.Description = "" }, "description"},
		{"missing date", func(b *models.Booking) { b.PreferredDate = "" }, "preferred_date"},
		{"missing time", func(b *models.Booking) { b.PreferredTime = "" }, "preferred_time"},
		{"missing address", func(b *models.Booking) { b.Address = "" }, "address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewBookingService(new(mockRepo), &capturingBus{}, nil, testLogger())
			booking := validBooking()
			tt.mutate(booking)

			err := svc.Submit(context.Background(), booking)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestSubmitBookingUnknownService(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetService", mock.Anything, int64(1)).Return(nil, database.ErrServiceNotFound)

	svc := NewBookingService(repo, &capturingBus{}, nil, testLogger())

	err := svc.Submit(context.Background(), validBooking())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "service_id", verr.Field)
}

func TestUpdateStatusRaisesEvent(t *testing.T) {
	repo := new(mockRepo)
	bus := &capturingBus{}
	worker := new(mockSyncWorker)

	repo.On("GetBooking", mock.Anything, int64(7)).Return(&models.Booking{ID: 7, Status: models.StatusPending, ServiceName: "Residential Moving"}, nil)
	repo.On("UpdateBookingStatus", mock.Anything, int64(7), models.StatusConfirmed).Return(nil)
	worker.On("EnqueueStatusUpdate", mock.Anything, int64(7), models.StatusConfirmed).Return(nil)

	svc := NewBookingService(repo, bus, worker, testLogger())

	err := svc.UpdateStatus(context.Background(), 7, models.StatusConfirmed)
	require.NoError(t, err)

	require.Len(t, bus.published, 1)
	assert.Equal(t, events.EventBookingConfirmed, bus.published[0].eventType)

	var payload events.BookingEventPayload
	require.NoError(t, json.Unmarshal(bus.published[0].payload, &payload))
	assert.Equal(t, models.StatusConfirmed, payload.Status)

	repo.AssertExpectations(t)
	worker.AssertExpectations(t)
}

func TestUpdateStatusSameStatusNoEvent(t *testing.T) {
	repo := new(mockRepo)
	bus := &capturingBus{}

	repo.On("GetBooking", mock.Anything, int64(7)).Return(&models.Booking{ID: 7, Status: models.StatusConfirmed}, nil)
	repo.On("UpdateBookingStatus", mock.Anything, int64(7), models.StatusConfirmed).Return(nil)

	svc := NewBookingService(repo, bus, nil, testLogger())

	err := svc.UpdateStatus(context.Background(), 7, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Empty(t, bus.published)
}

func TestUpdateStatusUnknownStatusPersistedSilently(t *testing.T) {
	repo := new(mockRepo)
	bus := &capturingBus{}

	repo.On("GetBooking", mock.Anything, int64(7)).Return(&models.Booking{ID: 7, Status: models.StatusPending}, nil)
	repo.On("UpdateBookingStatus", mock.Anything, int64(7), "on_hold").Return(nil)

	svc := NewBookingService(repo, bus, nil, testLogger())

	err := svc.UpdateStatus(context.Background(), 7, "on_hold")
	require.NoError(t, err)
	assert.Empty(t, bus.published)
	repo.AssertExpectations(t)
}

func TestUpdateStatusRevertToPendingNoEvent(t *testing.T) {
	repo := new(mockRepo)
	bus := &capturingBus{}

	repo.On("GetBooking", mock.Anything, int64(7)).Return(&models.Booking{ID: 7, Status: models.StatusConfirmed}, nil)
	repo.On("UpdateBookingStatus", mock.Anything, int64(7), models.StatusPending).Return(nil)

	svc := NewBookingService(repo, bus, nil, testLogger())

	err := svc.UpdateStatus(context.Background(), 7, models.StatusPending)
	require.NoError(t, err)
	assert.Empty(t, bus.published)
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetBooking", mock.Anything, int64(99)).Return(nil, database.ErrBookingNotFound)

	svc := NewBookingService(repo, &capturingBus{}, nil, testLogger())

	err := svc.UpdateStatus(context.Background(), 99, models.StatusConfirmed)
	assert.ErrorIs(t, err, database.ErrBookingNotFound)
}
