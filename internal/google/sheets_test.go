package google

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"movesmart/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRowValues(t *testing.T) {
	booking := &models.Booking{
		ID:            7,
		CustomerName:  "Aisha Park",
		CustomerPhone: "4165550123",
		CustomerEmail: "aisha@example.com",
		ServiceName:   "Residential Moving",
		PreferredDate: "2025-03-01",
		PreferredTime: "10:00",
		Address:       "12 King St W, Toronto",
		Status:        models.StatusConfirmed,
		UpdatedAt:     time.Date(2025, 2, 20, 9, 30, 0, 0, time.UTC),
	}

	values := bookingRowValues(booking)
	require.Len(t, values, 10)
	assert.Equal(t, int64(7), values[0])
	assert.Equal(t, "Aisha Park", values[1])
	assert.Equal(t, "confirmed", values[8])
	assert.Equal(t, "2025-02-20 09:30:00", values[9])
}

func TestCellRange(t *testing.T) {
	s := &SheetsService{tabTitle: "Dispatch"}
	assert.Equal(t, "Dispatch!A1", s.cellRange("A1"))
	assert.Equal(t, "Dispatch!A3:J3", s.cellRange("A3:J3"))
}

func TestRowCache(t *testing.T) {
	s := &SheetsService{rowCache: make(map[int64]int)}

	_, ok := s.getCachedRow(5)
	assert.False(t, ok)

	s.setCachedRow(5, 12)
	row, ok := s.getCachedRow(5)
	require.True(t, ok)
	assert.Equal(t, 12, row)

	s.ClearCache()
	_, ok = s.getCachedRow(5)
	assert.False(t, ok)
}

func TestFindBookingRowUsesCache(t *testing.T) {
	s := &SheetsService{rowCache: map[int64]int{9: 4}}

	row, err := s.FindBookingRow(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 4, row)
}

func TestFindBookingRowRequiresID(t *testing.T) {
	s := &SheetsService{rowCache: make(map[int64]int)}

	_, err := s.FindBookingRow(context.Background(), 0)
	assert.Error(t, err)
}

func TestServiceAccountEmail(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"client_email":"dispatch@project.iam.gserviceaccount.com"}`), 0o600))

	email, err := ServiceAccountEmail(path)
	require.NoError(t, err)
	assert.Equal(t, "dispatch@project.iam.gserviceaccount.com", email)
}

func TestServiceAccountEmailMissingFile(t *testing.T) {
	_, err := ServiceAccountEmail("/nonexistent/credentials.json")
	assert.Error(t, err)
}
