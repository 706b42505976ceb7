package dashboard

import "github.com/clockwise-hr/attendance-backend-go/internal/domain/attendance"

// ========== MONTHLY SUMMARY ==========

// MonthlySummaryResponse is one user's attendance summary for a month.
type MonthlySummaryResponse struct {
	PresentDays          int     `json:"present_days"`
	AbsentDays           int     `json:"absent_days"`
	LateDays             int     `json:"late_days"`
	HalfDays             int     `json:"half_days"`
	TotalHoursWorked     float64 `json:"total_hours_worked"`
	WorkingDays          int     `json:"working_days"`
	AttendancePercentage float64 `json:"attendance_percentage"` // clamped to [0, 100]
	StartDate            string  `json:"start_date"`
	EndDate              string  `json:"end_date"`
}

// ========== MANAGER DASHBOARD ==========

// ManagerDashboardResponse is the org-wide view for today.
type ManagerDashboardResponse struct {
	TotalEmployees       int               `json:"total_employees"`
	PresentToday         int               `json:"present_today"`
	AbsentToday          int               `json:"absent_today"`
	LateToday            int               `json:"late_today"`
	WeeklyTrend          []WeeklyTrendItem `json:"weekly_trend"`     // extension point, currently empty
	DepartmentStats      []DepartmentStat  `json:"department_stats"` // extension point, currently empty
	AbsentEmployeesToday []AbsentEmployee  `json:"absent_employees_today"`
}

// WeeklyTrendItem is a per-day attendance count for trend charts.
type WeeklyTrendItem struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Late    int    `json:"late"`
}

// DepartmentStat is a per-department attendance breakdown.
type DepartmentStat struct {
	Department string `json:"department"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
	Late       int    `json:"late"`
}

// AbsentEmployee identifies an employee with no record for today.
type AbsentEmployee struct {
	UserID       string  `json:"user_id"`
	Name         string  `json:"name"`
	EmployeeCode string  `json:"employee_code"`
	Department   *string `json:"department,omitempty"`
	Email        string  `json:"email"`
}

// ========== EMPLOYEE DASHBOARD ==========

// NoCheckInStatus is the sentinel reported when a user has no record today.
const NoCheckInStatus = "NO_CHECK_IN"

// EmployeeDashboardResponse is one user's current-month view.
type EmployeeDashboardResponse struct {
	TodayStatus         string            `json:"today_status"`
	PresentCount        int               `json:"present_count"`
	AbsentCount         int               `json:"absent_count"`
	LateCount           int               `json:"late_count"`
	HalfDayCount        int               `json:"half_day_count"`
	TotalHoursThisMonth float64           `json:"total_hours_this_month"`
	Last7Days           []DailyAttendance `json:"last_7_days"`
}

// DailyAttendance is one day's entry in the last-7-days list.
type DailyAttendance struct {
	Date        string            `json:"date"`
	Status      attendance.Status `json:"status"`
	HoursWorked float64           `json:"hours_worked"`
}
