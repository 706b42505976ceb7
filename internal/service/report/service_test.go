package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/clockwise-hr/attendance-backend-go/internal/config"
	"github.com/clockwise-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/attendance-backend-go/internal/domain/report"
	"github.com/clockwise-hr/attendance-backend-go/internal/domain/user"
	"github.com/clockwise-hr/attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, now time.Time) (report.Service, attendance.Repository, user.Repository) {
	t.Helper()

	attendanceRepo := memory.NewAttendanceRepository()
	userRepo := memory.NewUserRepository()

	svc := &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		policy:         config.DefaultOfficePolicy(),
		now:            func() time.Time { return now },
	}
	return svc, attendanceRepo, userRepo
}

func TestReportService_ExportAttendanceCSV(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 20, 10, 0, 0, 0, time.UTC)
	svc, attendanceRepo, userRepo := newTestService(t, now)

	dept := "Engineering"
	u, err := userRepo.Create(ctx, user.User{
		Name:         "Alice Smith",
		Email:        "alice@example.com",
		PasswordHash: "not-a-real-hash",
		EmployeeCode: "EMP-001",
		Role:         user.RoleEmployee,
		Department:   &dept,
	})
	require.NoError(t, err)

	checkIn := time.Date(2026, time.March, 2, 9, 5, 0, 0, time.UTC)
	checkOut := time.Date(2026, time.March, 2, 17, 35, 0, 0, time.UTC)
	_, err = attendanceRepo.Create(ctx, attendance.Attendance{
		UserID:       u.ID,
		Date:         time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		CheckInTime:  &checkIn,
		CheckOutTime: &checkOut,
		Status:       attendance.StatusPresent,
		TotalHours:   8,
	})
	require.NoError(t, err)
	_, err = attendanceRepo.Create(ctx, attendance.Attendance{
		UserID: u.ID,
		Date:   time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
		Status: attendance.StatusAbsent,
	})
	require.NoError(t, err)

	from, to := "2026-03-01", "2026-03-10"
	result, err := svc.ExportAttendanceCSV(ctx, report.ExportRequest{From: &from, To: &to})

	require.NoError(t, err)
	assert.Equal(t, "attendance_2026-03-01_to_2026-03-10.csv", result.Filename)

	rows, err := csv.NewReader(bytes.NewReader(result.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{
		"EMP-001", "Alice Smith", "Engineering", "2026-03-02",
		"PRESENT", "09:05:00", "17:35:00", "8.00", "No",
	}, rows[1])
	assert.Equal(t, []string{
		"EMP-001", "Alice Smith", "Engineering", "2026-03-03",
		"ABSENT", "", "", "0.00", "No",
	}, rows[2])
}

// With no range given the export covers the current month so far.
func TestReportService_ExportAttendanceCSV_DefaultRange(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 20, 10, 0, 0, 0, time.UTC)
	svc, attendanceRepo, userRepo := newTestService(t, now)

	u, err := userRepo.Create(ctx, user.User{
		Name:         "Bob Jones",
		Email:        "bob@example.com",
		PasswordHash: "not-a-real-hash",
		EmployeeCode: "EMP-002",
		Role:         user.RoleEmployee,
	})
	require.NoError(t, err)

	// One inside the month, one before it.
	_, err = attendanceRepo.Create(ctx, attendance.Attendance{
		UserID: u.ID,
		Date:   time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
		Status: attendance.StatusPresent,
	})
	require.NoError(t, err)
	_, err = attendanceRepo.Create(ctx, attendance.Attendance{
		UserID: u.ID,
		Date:   time.Date(2026, time.February, 25, 0, 0, 0, 0, time.UTC),
		Status: attendance.StatusPresent,
	})
	require.NoError(t, err)

	result, err := svc.ExportAttendanceCSV(ctx, report.ExportRequest{})

	require.NoError(t, err)
	assert.Equal(t, "attendance_2026-03-01_to_2026-03-20.csv", result.Filename)

	rows, err := csv.NewReader(bytes.NewReader(result.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-03-05", rows[1][3])
}

func TestReportService_ExportAttendanceCSV_InvalidRange(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, time.Date(2026, time.March, 20, 10, 0, 0, 0, time.UTC))

	bad := "03/01/2026"
	_, err := svc.ExportAttendanceCSV(ctx, report.ExportRequest{From: &bad})

	assert.Error(t, err)
}
