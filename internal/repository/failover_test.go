package repository

import (
	"context"
	"testing"
	"time"

	"movesmart/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func TestFailoverPrefersPrimary(t *testing.T) {
	primary, _ := setupRedisCache(t, time.Minute)
	fallback := NewMemoryCatalogCache(time.Minute)
	failover := NewFailoverCatalogCache(primary, fallback, testLogger())
	ctx := context.Background()

	services := []models.Service{{ID: 1, Name: "Residential Moving"}}
	require.NoError(t, failover.SetServices(ctx, services))

	got, ok, err := primary.GetServices(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, services, got)
}

func TestFailoverFallsBackWhenPrimaryDies(t *testing.T) {
	primary, mr := setupRedisCache(t, time.Minute)
	fallback := NewMemoryCatalogCache(time.Minute)
	failover := NewFailoverCatalogCache(primary, fallback, testLogger())
	ctx := context.Background()

	services := []models.Service{{ID: 1, Name: "Residential Moving"}}
	require.NoError(t, failover.SetServices(ctx, services))

	mr.Close()

	// Primary errors out; the fallback copy still serves reads.
	got, ok, err := failover.GetServices(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, services, got)

	// Subsequent calls skip the dead primary entirely.
	got, ok, err = failover.GetServices(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, services, got)
}

func TestFailoverWritesKeepFallbackWarm(t *testing.T) {
	primary, _ := setupRedisCache(t, time.Minute)
	fallback := NewMemoryCatalogCache(time.Minute)
	failover := NewFailoverCatalogCache(primary, fallback, testLogger())
	ctx := context.Background()

	testimonials := []models.Testimonial{{ID: 1, CustomerName: "Maria", Rating: 5}}
	require.NoError(t, failover.SetTestimonials(ctx, testimonials))

	got, ok, err := fallback.GetTestimonials(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testimonials, got)
}
