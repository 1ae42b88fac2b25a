package service

import (
	"context"

	"movesmart/internal/domain"
	"movesmart/internal/models"

	"github.com/rs/zerolog"
)

// CatalogService serves the read-mostly service and testimonial listings
// through an optional cache. Cache failures degrade to direct reads.
type CatalogService struct {
	repo   domain.Repository
	cache  domain.CatalogCache
	logger *zerolog.Logger
}

func NewCatalogService(repo domain.Repository, cache domain.CatalogCache, logger *zerolog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (s *CatalogService) ActiveServices(ctx context.Context) ([]models.Service, error) {
	if s.cache != nil {
		services, ok, err := s.cache.GetServices(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("services cache read error")
		} else if ok {
			return services, nil
		}
	}

	services, err := s.repo.GetActiveServices(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetServices(ctx, services); err != nil {
			s.logger.Warn().Err(err).Msg("services cache write error")
		}
	}
	return services, nil
}

func (s *CatalogService) FeaturedTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	if s.cache != nil {
		testimonials, ok, err := s.cache.GetTestimonials(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("testimonials cache read error")
		} else if ok {
			return testimonials, nil
		}
	}

	testimonials, err := s.repo.GetFeaturedTestimonials(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetTestimonials(ctx, testimonials); err != nil {
			s.logger.Warn().Err(err).Msg("testimonials cache write error")
		}
	}
	return testimonials, nil
}
