package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clockwise-hr/attendance-backend-go/internal/config"
	"github.com/clockwise-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/attendance-backend-go/internal/domain/report"
	"github.com/clockwise-hr/attendance-backend-go/internal/domain/user"
)

var csvHeader = []string{
	"Employee Code", "Employee Name", "Department", "Date",
	"Status", "Check In", "Check Out", "Total Hours", "Late Approved",
}

type ReportServiceImpl struct {
	attendanceRepo attendance.Repository
	userRepo       user.Repository
	policy         config.OfficePolicy
	now            func() time.Time
}

func NewReportService(
	attendanceRepo attendance.Repository,
	userRepo user.Repository,
	policy config.OfficePolicy,
) report.Service {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		policy:         policy,
		now:            time.Now,
	}
}

// ExportAttendanceCSV implements report.Service. The range defaults to
// the current month so far.
func (s *ReportServiceImpl) ExportAttendanceCSV(ctx context.Context, req report.ExportRequest) (report.Export, error) {
	if err := req.Validate(); err != nil {
		return report.Export{}, err
	}

	today := s.policy.DateOf(s.now())
	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := today
	if req.From != nil {
		from, _ = validatedDate(*req.From)
	}
	if req.To != nil {
		to, _ = validatedDate(*req.To)
	}

	var (
		records []attendance.Attendance
		users   []user.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListRange(gctx, from, to)
		if err != nil {
			return fmt.Errorf("failed to load records for export: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		users, err = s.userRepo.FindAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load users for export: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return report.Export{}, err
	}

	byID := make(map[string]user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return report.Export{}, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(csvRow(rec, byID[rec.UserID])); err != nil {
			return report.Export{}, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return report.Export{}, fmt.Errorf("failed to flush CSV: %w", err)
	}

	filename := fmt.Sprintf("attendance_%s_to_%s.csv",
		from.Format("2006-01-02"), to.Format("2006-01-02"))

	slog.Info("attendance export generated",
		"from", from.Format("2006-01-02"),
		"to", to.Format("2006-01-02"),
		"rows", len(records))

	return report.Export{Filename: filename, Content: buf.Bytes()}, nil
}

func csvRow(rec attendance.Attendance, u user.User) []string {
	department := ""
	if u.Department != nil {
		department = *u.Department
	}
	approved := "No"
	if rec.LateApproved {
		approved = "Yes"
	}
	return []string{
		u.EmployeeCode,
		u.Name,
		department,
		rec.Date.Format("2006-01-02"),
		string(rec.Status),
		clockOrEmpty(rec.CheckInTime),
		clockOrEmpty(rec.CheckOutTime),
		strconv.FormatFloat(rec.TotalHours, 'f', 2, 64),
		approved,
	}
}

func clockOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04:05")
}

// validatedDate parses a date the request validation already accepted.
func validatedDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
