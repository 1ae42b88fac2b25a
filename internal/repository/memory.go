package repository

import (
	"context"
	"sync"
	"time"

	"movesmart/internal/models"
)

type memoryEntry struct {
	value     interface{}
	expiresAt time.Time
}

// MemoryCatalogCache is the in-process fallback used when Redis is down.
type MemoryCatalogCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

func NewMemoryCatalogCache(ttl time.Duration) *MemoryCatalogCache {
	return &MemoryCatalogCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (m *MemoryCatalogCache) GetServices(ctx context.Context) ([]models.Service, bool, error) {
	val, ok := m.get(servicesKey)
	if !ok {
		return nil, false, nil
	}
	return val.([]models.Service), true, nil
}

func (m *MemoryCatalogCache) SetServices(ctx context.Context, services []models.Service) error {
	m.set(servicesKey, services)
	return nil
}

func (m *MemoryCatalogCache) GetTestimonials(ctx context.Context) ([]models.Testimonial, bool, error) {
	val, ok := m.get(testimonialsKey)
	if !ok {
		return nil, false, nil
	}
	return val.([]models.Testimonial), true, nil
}

func (m *MemoryCatalogCache) SetTestimonials(ctx context.Context, testimonials []models.Testimonial) error {
	m.set(testimonialsKey, testimonials)
	return nil
}

func (m *MemoryCatalogCache) get(key string) (interface{}, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

func (m *MemoryCatalogCache) set(key string, value interface{}) {
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(m.ttl)}
	m.mu.Unlock()
}
