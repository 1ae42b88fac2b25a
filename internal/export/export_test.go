package export

import (
	"bytes"
	"testing"
	"time"

	"movesmart/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteBookingsXLSX(t *testing.T) {
	bookings := []models.Booking{
		{
			ID:            1,
			CustomerName:  "Aisha Park",
			CustomerEmail: "aisha@example.com",
			CustomerPhone: "4165550123",
			ServiceName:   "Residential Moving",
			PreferredDate: "2025-03-01",
			PreferredTime: "10:00",
			Address:       "12 King St W, Toronto",
			Description:   "2-bedroom condo",
			Status:        models.StatusPending,
			CreatedAt:     time.Date(2025, 2, 20, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:           2,
			CustomerName: "Jordan Lee",
			ServiceName:  "Office Relocation",
			Status:       models.StatusConfirmed,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBookingsXLSX(&buf, bookings))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Customer", rows[0][1])
	assert.Equal(t, "Aisha Park", rows[1][1])
	assert.Equal(t, "Residential Moving", rows[1][4])
	assert.Equal(t, "pending", rows[1][9])
	assert.Equal(t, "Jordan Lee", rows[2][1])
}

func TestWriteBookingsXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBookingsXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
