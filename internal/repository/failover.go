package repository

import (
	"context"
	"sync/atomic"
	"time"

	"movesmart/internal/domain"
	"movesmart/internal/models"

	"github.com/rs/zerolog"
)

// FailoverCatalogCache prefers the primary (Redis) cache and drops to the
// in-memory fallback when it fails. After a minute it probes the primary
// again.
type FailoverCatalogCache struct {
	primary   domain.CatalogCache
	fallback  domain.CatalogCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverCatalogCache(primary, fallback domain.CatalogCache, logger *zerolog.Logger) *FailoverCatalogCache {
	return &FailoverCatalogCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (f *FailoverCatalogCache) GetServices(ctx context.Context) ([]models.Service, bool, error) {
	if f.usePrimary() {
		services, ok, err := f.primary.GetServices(ctx)
		if err == nil {
			f.markUp()
			return services, ok, nil
		}
		f.markDown(err)
	}
	return f.fallback.GetServices(ctx)
}

func (f *FailoverCatalogCache) SetServices(ctx context.Context, services []models.Service) error {
	if f.usePrimary() {
		if err := f.primary.SetServices(ctx, services); err != nil {
			f.markDown(err)
		} else {
			f.markUp()
		}
	}
	return f.fallback.SetServices(ctx, services)
}

func (f *FailoverCatalogCache) GetTestimonials(ctx context.Context) ([]models.Testimonial, bool, error) {
	if f.usePrimary() {
		testimonials, ok, err := f.primary.GetTestimonials(ctx)
		if err == nil {
			f.markUp()
			return testimonials, ok, nil
		}
		f.markDown(err)
	}
	return f.fallback.GetTestimonials(ctx)
}

func (f *FailoverCatalogCache) SetTestimonials(ctx context.Context, testimonials []models.Testimonial) error {
	if f.usePrimary() {
		if err := f.primary.SetTestimonials(ctx, testimonials); err != nil {
			f.markDown(err)
		} else {
			f.markUp()
		}
	}
	return f.fallback.SetTestimonials(ctx, testimonials)
}

// usePrimary reports whether the primary should be tried: either it is
// healthy, or it has been down for over a minute and deserves a probe.
func (f *FailoverCatalogCache) usePrimary() bool {
	if !f.isDown.Load() {
		return true
	}
	return time.Now().UnixNano()-f.lastCheck.Load() > int64(time.Minute)
}

func (f *FailoverCatalogCache) markDown(err error) {
	f.logger.Error().Err(err).Msg("Primary catalog cache failed, falling back to memory")
	f.isDown.Store(true)
	f.lastCheck.Store(time.Now().UnixNano())
}

func (f *FailoverCatalogCache) markUp() {
	if f.isDown.Load() {
		f.logger.Info().Msg("Primary catalog cache recovered")
		f.isDown.Store(false)
	}
}
