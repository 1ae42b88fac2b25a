package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"movesmart/internal/database"
	"movesmart/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSheet struct {
	upserts  []*models.Booking
	statuses map[int64]string
	err      error
}

func newFakeSheet() *fakeSheet {
	return &fakeSheet{statuses: make(map[int64]string)}
}

func (f *fakeSheet) UpsertBooking(_ context.Context, b *models.Booking) error {
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, b)
	return nil
}

func (f *fakeSheet) UpdateBookingStatus(_ context.Context, id int64, status string) error {
	if f.err != nil {
		return f.err
	}
	f.statuses[id] = status
	return nil
}

func setupWorker(t *testing.T, sheet DispatchSheet, retry RetryPolicy) (*SheetsWorker, *database.DB) {
	t.Helper()

	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewSheetsWorker(db, sheet, nil, retry, &logger), db
}

func TestRetryPolicyNextDelay(t *testing.T) {
	policy := RetryPolicy{InitialDelay: time.Second, BackoffFactor: 2, MaxDelay: 10 * time.Second}

	assert.Equal(t, time.Second, policy.NextDelay(1))
	assert.Equal(t, 2*time.Second, policy.NextDelay(2))
	assert.Equal(t, 4*time.Second, policy.NextDelay(3))
	assert.Equal(t, 10*time.Second, policy.NextDelay(10))
	assert.Equal(t, time.Second, policy.NextDelay(0))
}

func TestEnqueueUpsertPersists(t *testing.T) {
	w, db := setupWorker(t, newFakeSheet(), RetryPolicy{})
	ctx := context.Background()

	booking := &models.Booking{ID: 3, CustomerName: "Aisha Park", Status: models.StatusPending}
	require.NoError(t, w.EnqueueUpsert(ctx, booking))

	tasks, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, TaskUpsert, tasks[0].TaskType)
	assert.Equal(t, int64(3), tasks[0].BookingID)
}

func TestEnqueueValidation(t *testing.T) {
	w, _ := setupWorker(t, newFakeSheet(), RetryPolicy{})
	ctx := context.Background()

	assert.Error(t, w.EnqueueUpsert(ctx, nil))
	assert.Error(t, w.EnqueueUpsert(ctx, &models.Booking{}))
	assert.Error(t, w.EnqueueStatusUpdate(ctx, 0, "confirmed"))
	assert.Error(t, w.EnqueueStatusUpdate(ctx, 3, ""))
}

func TestProcessTaskUpsert(t *testing.T) {
	sheet := newFakeSheet()
	w, db := setupWorker(t, sheet, RetryPolicy{})
	ctx := context.Background()

	booking := &models.Booking{ID: 3, CustomerName: "Aisha Park"}
	require.NoError(t, w.EnqueueUpsert(ctx, booking))

	tasks, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	w.processTask(ctx, &tasks[0])

	require.Len(t, sheet.upserts, 1)
	assert.Equal(t, "Aisha Park", sheet.upserts[0].CustomerName)

	remaining, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestProcessTaskStatusUpdate(t *testing.T) {
	sheet := newFakeSheet()
	w, db := setupWorker(t, sheet, RetryPolicy{})
	ctx := context.Background()

	require.NoError(t, w.EnqueueStatusUpdate(ctx, 7, models.StatusConfirmed))

	tasks, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	w.processTask(ctx, &tasks[0])
	assert.Equal(t, models.StatusConfirmed, sheet.statuses[7])
}

func TestProcessTaskRetriesThenFails(t *testing.T) {
	sheet := newFakeSheet()
	sheet.err = errors.New("sheets unavailable")
	w, db := setupWorker(t, sheet, RetryPolicy{MaxRetries: 2, InitialDelay: time.Millisecond})
	ctx := context.Background()

	require.NoError(t, w.EnqueueStatusUpdate(ctx, 7, models.StatusConfirmed))

	tasks, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	// First attempt schedules a retry.
	w.processTask(ctx, &tasks[0])

	time.Sleep(5 * time.Millisecond)
	tasks, err = db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "retry", tasks[0].Status)
	assert.Equal(t, 1, tasks[0].RetryCount)

	// Second attempt exhausts the budget.
	w.processTask(ctx, &tasks[0])

	failed, err := db.GetFailedSyncTasks(ctx)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Contains(t, failed[0].LastError, "sheets unavailable")
}

func TestProcessTaskUnknownType(t *testing.T) {
	w, db := setupWorker(t, newFakeSheet(), RetryPolicy{MaxRetries: 1})
	ctx := context.Background()

	task := models.SyncTask{TaskType: "reindex", BookingID: 1, Payload: `{"booking_id":1}`, Status: "pending"}
	require.NoError(t, db.CreateSyncTask(ctx, &task))

	w.processTask(ctx, &task)

	failed, err := db.GetFailedSyncTasks(ctx)
	require.NoError(t, err)
	require.Len(t, failed, 1)
}
