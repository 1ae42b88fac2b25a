package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"movesmart/internal/models"
)

// CreateBooking вставляет новую заявку и присваивает ей ID
func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (
				customer_name, customer_email, customer_phone, service_id,
				description, preferred_date, preferred_time, address,
				status, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	if booking.Status == "" {
		booking.Status = models.StatusPending
	}
	result, err := db.ExecContext(ctx, query,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.ServiceID,
		booking.Description,
		booking.PreferredDate,
		booking.PreferredTime,
		booking.Address,
		booking.Status,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now

	return nil
}

// GetBooking возвращает заявку по ID вместе с именем услуги
func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT b.id, b.customer_name, b.customer_email, b.customer_phone,
				b.service_id, COALESCE(s.name, ''), b.description,
				b.preferred_date, b.preferred_time, b.address, b.status,
				b.created_at, b.updated_at
			FROM bookings b
			LEFT JOIN services s ON s.id = b.service_id
			WHERE b.id = ?`

	var booking models.Booking
	err := db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.ServiceID,
		&booking.ServiceName,
		&booking.Description,
		&booking.PreferredDate,
		&booking.PreferredTime,
		&booking.Address,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

// UpdateBookingStatus перезаписывает статус заявки
func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`

	result, err := db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ListBookings возвращает все заявки, новые в начале
func (db *DB) ListBookings(ctx context.Context) ([]models.Booking, error) {
	query := `SELECT b.id, b.customer_name, b.customer_email, b.customer_phone,
				b.service_id, COALESCE(s.name, ''), b.description,
				b.preferred_date, b.preferred_time, b.address, b.status,
				b.created_at, b.updated_at
			FROM bookings b
			LEFT JOIN services s ON s.id = b.service_id
			ORDER BY b.created_at DESC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var booking models.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.CustomerName,
			&booking.CustomerEmail,
			&booking.CustomerPhone,
			&booking.ServiceID,
			&booking.ServiceName,
			&booking.Description,
			&booking.PreferredDate,
			&booking.PreferredTime,
			&booking.Address,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}

	return bookings, nil
}
