package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/clockwise-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDay() time.Time {
	return time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
}

func TestAttendanceRepository_Create_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()

	_, err := repo.Create(ctx, attendance.Attendance{
		UserID: "user-1",
		Date:   testDay(),
		Status: attendance.StatusPresent,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.Attendance{
		UserID: "user-1",
		Date:   testDay(),
		Status: attendance.StatusLate,
	})
	assert.ErrorIs(t, err, attendance.ErrDuplicateDate)

	// Same user on another day is fine.
	_, err = repo.Create(ctx, attendance.Attendance{
		UserID: "user-1",
		Date:   testDay().AddDate(0, 0, 1),
		Status: attendance.StatusPresent,
	})
	assert.NoError(t, err)
}

// Concurrent inserts for the same (user, date) admit exactly one winner.
func TestAttendanceRepository_Create_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()

	const workers = 50
	results := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, attendance.Attendance{
				UserID: "user-1",
				Date:   testDay(),
				Status: attendance.StatusPresent,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, attendance.ErrDuplicateDate)
		}
	}
	assert.Equal(t, 1, successes)
}

// Concurrent checkouts of the same open record admit exactly one winner.
func TestAttendanceRepository_SetCheckOut_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()

	checkIn := testDay().Add(9 * time.Hour)
	rec, err := repo.Create(ctx, attendance.Attendance{
		UserID:      "user-1",
		Date:        testDay(),
		CheckInTime: &checkIn,
		Status:      attendance.StatusPresent,
	})
	require.NoError(t, err)

	const workers = 20
	results := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.SetCheckOut(ctx, rec.ID, testDay().Add(17*time.Hour), 7.5)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
		}
	}
	assert.Equal(t, 1, successes)

	stored, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.CheckOutTime)
	assert.Equal(t, 7.5, stored.TotalHours)
}

func TestAttendanceRepository_SetCheckOut_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()

	_, err := repo.SetCheckOut(ctx, "no-such-id", testDay().Add(17*time.Hour), 8)

	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}
