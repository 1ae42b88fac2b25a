package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"movesmart/internal/models"
)

func (db *DB) CreateService(ctx context.Context, service *models.Service) error {
	query := `INSERT INTO services (name, description, price_range, duration, icon, is_active, created_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		service.Name,
		service.Description,
		service.PriceRange,
		service.Duration,
		service.Icon,
		service.IsActive,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	service.ID = id
	service.CreatedAt = now

	return nil
}

func (db *DB) GetService(ctx context.Context, id int64) (*models.Service, error) {
	query := `SELECT id, name, description, price_range, duration, icon, is_active, created_at
              FROM services WHERE id = ?`

	var service models.Service
	err := db.QueryRowContext(ctx, query, id).Scan(
		&service.ID,
		&service.Name,
		&service.Description,
		&service.PriceRange,
		&service.Duration,
		&service.Icon,
		&service.IsActive,
		&service.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	return &service, nil
}

// GetActiveServices возвращает только активные услуги
func (db *DB) GetActiveServices(ctx context.Context) ([]models.Service, error) {
	query := `SELECT id, name, description, price_range, duration, icon, is_active, created_at
              FROM services WHERE is_active = 1 ORDER BY id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active services: %w", err)
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		var service models.Service
		err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.Description,
			&service.PriceRange,
			&service.Duration,
			&service.Icon,
			&service.IsActive,
			&service.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, service)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate services: %w", err)
	}

	return services, nil
}

func (db *DB) CountServices(ctx context.Context) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM services`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return count, nil
}

func (db *DB) CreateTestimonial(ctx context.Context, testimonial *models.Testimonial) error {
	query := `INSERT INTO testimonials (customer_name, project_type, rating, comment, is_featured, created_at)
              VALUES (?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		testimonial.CustomerName,
		testimonial.ProjectType,
		testimonial.Rating,
		testimonial.Comment,
		testimonial.IsFeatured,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create testimonial: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	testimonial.ID = id
	testimonial.CreatedAt = now

	return nil
}

// GetFeaturedTestimonials возвращает отзывы для главной страницы
func (db *DB) GetFeaturedTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	query := `SELECT id, customer_name, project_type, rating, comment, is_featured, created_at
              FROM testimonials WHERE is_featured = 1 ORDER BY id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get featured testimonials: %w", err)
	}
	defer rows.Close()

	var testimonials []models.Testimonial
	for rows.Next() {
		var testimonial models.Testimonial
		err := rows.Scan(
			&testimonial.ID,
			&testimonial.CustomerName,
			&testimonial.ProjectType,
			&testimonial.Rating,
			&testimonial.Comment,
			&testimonial.IsFeatured,
			&testimonial.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan testimonial: %w", err)
		}
		testimonials = append(testimonials, testimonial)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate testimonials: %w", err)
	}

	return testimonials, nil
}

func (db *DB) CountTestimonials(ctx context.Context) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM testimonials`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count testimonials: %w", err)
	}
	return count, nil
}
