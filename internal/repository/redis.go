package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"movesmart/internal/config"
	"movesmart/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	servicesKey     = "catalog:services"
	testimonialsKey = "catalog:testimonials"
)

type RedisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient создает новый клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	return redis.NewClient(options)
}

func NewRedisCatalogCache(client *redis.Client, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisCatalogCache) GetServices(ctx context.Context) ([]models.Service, bool, error) {
	var services []models.Service
	ok, err := r.get(ctx, servicesKey, &services)
	return services, ok, err
}

func (r *RedisCatalogCache) SetServices(ctx context.Context, services []models.Service) error {
	return r.set(ctx, servicesKey, services)
}

func (r *RedisCatalogCache) GetTestimonials(ctx context.Context) ([]models.Testimonial, bool, error) {
	var testimonials []models.Testimonial
	ok, err := r.get(ctx, testimonialsKey, &testimonials)
	return testimonials, ok, err
}

func (r *RedisCatalogCache) SetTestimonials(ctx context.Context, testimonials []models.Testimonial) error {
	return r.set(ctx, testimonialsKey, testimonials)
}

func (r *RedisCatalogCache) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (r *RedisCatalogCache) set(ctx context.Context, key string, value interface{}) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in redis: %w", key, err)
	}
	return nil
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
