package config

import (
	"fmt"
	"os"

	"movesmart/internal/models"

	yamlv2 "gopkg.in/yaml.v2"
)

// SeedData is the initial catalog loaded when the store is empty.
type SeedData struct {
	Services     []SeedService     `yaml:"services"`
	Testimonials []SeedTestimonial `yaml:"testimonials"`
}

type SeedService struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	PriceRange  string `yaml:"price_range"`
	Duration    string `yaml:"duration"`
	Icon        string `yaml:"icon"`
}

type SeedTestimonial struct {
	CustomerName string `yaml:"customer_name"`
	ProjectType  string `yaml:"project_type"`
	Rating       int    `yaml:"rating"`
	Comment      string `yaml:"comment"`
	IsFeatured   bool   `yaml:"is_featured"`
}

// LoadSeeds reads the seed catalog from a YAML data file.
func LoadSeeds(path string) (*SeedData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seeds: %w", err)
	}

	var seeds SeedData
	if err := yamlv2.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse seeds: %w", err)
	}

	return &seeds, nil
}

// ServiceModels converts seed entries to catalog models, all active.
func (s *SeedData) ServiceModels() []models.Service {
	out := make([]models.Service, 0, len(s.Services))
	for _, seed := range s.Services {
		out = append(out, models.Service{
			Name:        seed.Name,
			Description: seed.Description,
			PriceRange:  seed.PriceRange,
			Duration:    seed.Duration,
			Icon:        seed.Icon,
			IsActive:    true,
		})
	}
	return out
}

func (s *SeedData) TestimonialModels() []models.Testimonial {
	out := make([]models.Testimonial, 0, len(s.Testimonials))
	for _, seed := range s.Testimonials {
		out = append(out, models.Testimonial{
			CustomerName: seed.CustomerName,
			ProjectType:  seed.ProjectType,
			Rating:       seed.Rating,
			Comment:      seed.Comment,
			IsFeatured:   seed.IsFeatured,
		})
	}
	return out
}
