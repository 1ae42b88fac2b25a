package models

import "time"

// Service is a catalog entry customers can book.
type Service struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceRange  string    `json:"price_range"`
	Duration    string    `json:"duration"`
	Icon        string    `json:"icon"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Booking is a customer's move request tied to one service.
// PreferredDate and PreferredTime are kept as free-form strings, matching the
// intake form; they are not validated as calendar values.
type Booking struct {
	ID            int64     `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	ServiceID     int64     `json:"service_id"`
	ServiceName   string    `json:"service_name,omitempty"`
	Description   string    `json:"description"`
	PreferredDate string    `json:"preferred_date"`
	PreferredTime string    `json:"preferred_time"`
	Address       string    `json:"address"`
	Status        string    `json:"status"` // pending, confirmed, cancelled, completed
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Testimonial struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	ProjectType  string    `json:"project_type"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	IsFeatured   bool      `json:"is_featured"`
	CreatedAt    time.Time `json:"created_at"`
}

type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// SyncTask is a queued dispatch-sheet update persisted until a worker
// processes it.
type SyncTask struct {
	ID          int64      `json:"id"`
	TaskType    string     `json:"task_type"`
	BookingID   int64      `json:"booking_id"`
	Payload     string     `json:"payload"`
	Status      string     `json:"status"`
	RetryCount  int        `json:"retry_count"`
	LastError   string     `json:"last_error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	NextRetryAt *time.Time `json:"next_retry_at,omitempty"`
}
