package database

import (
	"context"
	"fmt"

	"movesmart/internal/models"
)

// SeedCatalog populates services and testimonials when their tables are
// empty. Re-running against a populated store is a no-op, so deploys never
// duplicate the catalog.
func (db *DB) SeedCatalog(ctx context.Context, services []models.Service, testimonials []models.Testimonial) error {
	serviceCount, err := db.CountServices(ctx)
	if err != nil {
		return err
	}
	if serviceCount == 0 {
		for i := range services {
			if err := db.CreateService(ctx, &services[i]); err != nil {
				return fmt.Errorf("failed to seed service %q: %w", services[i].Name, err)
			}
		}
		db.logger.Info().Int("count", len(services)).Msg("initial moving services seeded")
	}

	testimonialCount, err := db.CountTestimonials(ctx)
	if err != nil {
		return err
	}
	if testimonialCount == 0 {
		for i := range testimonials {
			if err := db.CreateTestimonial(ctx, &testimonials[i]); err != nil {
				return fmt.Errorf("failed to seed testimonial %q: %w", testimonials[i].CustomerName, err)
			}
		}
		db.logger.Info().Int("count", len(testimonials)).Msg("initial testimonials seeded")
	}

	return nil
}
