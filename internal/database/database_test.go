package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"movesmart/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	logger := zerolog.Nop()
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestService(t *testing.T, db *DB) *models.Service {
	service := &models.Service{
		Name:        "Residential Moving",
		Description: "Full-service residential moves.",
		PriceRange:  "$150 - $1,500+",
		Duration:    "Same day - 2 days",
		Icon:        "📦",
		IsActive:    true,
	}
	require.NoError(t, db.CreateService(context.Background(), service))
	return service
}

func TestNewDB_DirectoryCreation(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "db_test_dir")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "nested", "dir", "test.db")
	logger := zerolog.Nop()

	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, dbPath)
}

func TestDB_Ping(t *testing.T) {
	db := setupTestDB(t)

	err := db.PingContext(context.Background())
	assert.NoError(t, err)
}

func TestSeedCatalog(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	services := []models.Service{
		{Name: "Residential Moving", Description: "d", PriceRange: "p", Duration: "1d", Icon: "📦", IsActive: true},
		{Name: "Junk Removal & Disposal", Description: "d", PriceRange: "p", Duration: "1d", Icon: "🗑️", IsActive: true},
	}
	testimonials := []models.Testimonial{
		{CustomerName: "Paul N.", ProjectType: "Long Distance Move", Rating: 5, Comment: "Great", IsFeatured: true},
	}

	require.NoError(t, db.SeedCatalog(ctx, services, testimonials))

	got, err := db.GetActiveServices(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// A second run must not duplicate anything.
	require.NoError(t, db.SeedCatalog(ctx, services, testimonials))

	count, err := db.CountServices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	tCount, err := db.CountTestimonials(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, tCount)
}
