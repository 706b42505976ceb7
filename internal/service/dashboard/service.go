package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clockwise-hr/attendance-backend-go/internal/config"
	"github.com/clockwise-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/attendance-backend-go/internal/domain/dashboard"
	"github.com/clockwise-hr/attendance-backend-go/internal/domain/user"
)

// DashboardServiceImpl derives summaries and dashboards from stored
// attendance records. It never writes.
type DashboardServiceImpl struct {
	attendanceRepo attendance.Repository
	userRepo       user.Repository
	policy         config.OfficePolicy
	now            func() time.Time
}

func NewDashboardService(
	attendanceRepo attendance.Repository,
	userRepo user.Repository,
	policy config.OfficePolicy,
) dashboard.Service {
	return &DashboardServiceImpl{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		policy:         policy,
		now:            time.Now,
	}
}

// NewDashboardServiceWithClock is NewDashboardService with an injected
// clock for tests.
func NewDashboardServiceWithClock(
	attendanceRepo attendance.Repository,
	userRepo user.Repository,
	policy config.OfficePolicy,
	now func() time.Time,
) dashboard.Service {
	return &DashboardServiceImpl{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		policy:         policy,
		now:            now,
	}
}

// GetMonthlySummary implements dashboard.Service.
func (s *DashboardServiceImpl) GetMonthlySummary(ctx context.Context, userID string, year, month int) (dashboard.MonthlySummaryResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return dashboard.MonthlySummaryResponse{}, err
	}

	// A zero year or month means the current office-local month.
	if year == 0 || month == 0 {
		today := s.policy.DateOf(s.now())
		year, month = today.Year(), int(today.Month())
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	records, err := s.attendanceRepo.ListAllByUserAndRange(ctx, userID, start, end)
	if err != nil {
		return dashboard.MonthlySummaryResponse{}, fmt.Errorf("failed to load monthly records: %w", err)
	}

	summary := dashboard.MonthlySummaryResponse{
		WorkingDays: s.policy.WorkingDaysPerMonth,
		StartDate:   start.Format("2006-01-02"),
		EndDate:     end.Format("2006-01-02"),
	}

	var hours float64
	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusPresent:
			summary.PresentDays++
		case attendance.StatusAbsent:
			summary.AbsentDays++
		case attendance.StatusLate:
			summary.LateDays++
		case attendance.StatusHalfDay:
			summary.HalfDays++
		}
		hours += rec.TotalHours
	}
	summary.TotalHoursWorked = round2(hours)
	summary.AttendancePercentage = attendancePercentage(
		summary.PresentDays, summary.HalfDays, s.policy.WorkingDaysPerMonth)

	return summary, nil
}

// GetManagerDashboard implements dashboard.Service.
func (s *DashboardServiceImpl) GetManagerDashboard(ctx context.Context) (dashboard.ManagerDashboardResponse, error) {
	today := s.policy.DateOf(s.now())

	var (
		employees []user.User
		records   []attendance.Attendance
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.userRepo.FindAllEmployees(gctx)
		if err != nil {
			return fmt.Errorf("failed to load employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListAllByDate(gctx, today)
		if err != nil {
			return fmt.Errorf("failed to load today's records: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return dashboard.ManagerDashboardResponse{}, err
	}

	byUser := make(map[string]attendance.Attendance, len(records))
	for _, rec := range records {
		byUser[rec.UserID] = rec
	}

	resp := dashboard.ManagerDashboardResponse{
		TotalEmployees:       len(employees),
		WeeklyTrend:          []dashboard.WeeklyTrendItem{},
		DepartmentStats:      []dashboard.DepartmentStat{},
		AbsentEmployeesToday: []dashboard.AbsentEmployee{},
	}

	// Employees with no record yet count as absent alongside swept
	// ABSENT rows. Counts cover employees only, not managers.
	// HALF_DAY belongs to no today-count.
	for _, emp := range employees {
		rec, ok := byUser[emp.ID]
		if !ok || rec.Status == attendance.StatusAbsent {
			resp.AbsentToday++
			resp.AbsentEmployeesToday = append(resp.AbsentEmployeesToday, dashboard.AbsentEmployee{
				UserID:       emp.ID,
				Name:         emp.Name,
				EmployeeCode: emp.EmployeeCode,
				Department:   emp.Department,
				Email:        emp.Email,
			})
			continue
		}
		switch rec.Status {
		case attendance.StatusPresent:
			resp.PresentToday++
		case attendance.StatusLate:
			resp.LateToday++
		}
	}

	return resp, nil
}

// GetEmployeeDashboard implements dashboard.Service.
func (s *DashboardServiceImpl) GetEmployeeDashboard(ctx context.Context, userID string) (dashboard.EmployeeDashboardResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return dashboard.EmployeeDashboardResponse{}, err
	}

	today := s.policy.DateOf(s.now())
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	weekStart := today.AddDate(0, 0, -7)

	var (
		todayRec     *attendance.Attendance
		monthRecords []attendance.Attendance
		weekRecords  []attendance.Attendance
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		todayRec, err = s.attendanceRepo.GetByUserAndDate(gctx, userID, today)
		if err != nil {
			return fmt.Errorf("failed to load today's record: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		monthRecords, err = s.attendanceRepo.ListAllByUserAndRange(gctx, userID, monthStart, today)
		if err != nil {
			return fmt.Errorf("failed to load monthly records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		weekRecords, err = s.attendanceRepo.ListAllByUserAndRange(gctx, userID, weekStart, today)
		if err != nil {
			return fmt.Errorf("failed to load weekly records: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return dashboard.EmployeeDashboardResponse{}, err
	}

	resp := dashboard.EmployeeDashboardResponse{
		TodayStatus: dashboard.NoCheckInStatus,
		Last7Days:   make([]dashboard.DailyAttendance, 0, len(weekRecords)),
	}
	if todayRec != nil {
		resp.TodayStatus = string(todayRec.Status)
	}

	var hours float64
	for _, rec := range monthRecords {
		switch rec.Status {
		case attendance.StatusPresent:
			resp.PresentCount++
		case attendance.StatusAbsent:
			resp.AbsentCount++
		case attendance.StatusLate:
			resp.LateCount++
		case attendance.StatusHalfDay:
			resp.HalfDayCount++
		}
		hours += rec.TotalHours
	}
	resp.TotalHoursThisMonth = round2(hours)

	// weekRecords arrives sorted by date ascending.
	for _, rec := range weekRecords {
		resp.Last7Days = append(resp.Last7Days, dashboard.DailyAttendance{
			Date:        rec.Date.Format("2006-01-02"),
			Status:      rec.Status,
			HoursWorked: rec.TotalHours,
		})
	}

	return resp, nil
}

// attendancePercentage scores a month: full credit per PRESENT day, half
// credit per HALF_DAY, against the configured working days, clamped to 100.
func attendancePercentage(presentDays, halfDays, workingDays int) float64 {
	if workingDays <= 0 {
		return 0
	}
	pct := (float64(presentDays) + 0.5*float64(halfDays)) / float64(workingDays) * 100
	return math.Min(100, round2(pct))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
