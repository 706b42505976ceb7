package dashboard

import "context"

// Service derives dashboard and report statistics from the stored
// attendance records. Every operation is a pure read.
type Service interface {
	// GetMonthlySummary aggregates one user's records for a month.
	// A zero year or month selects the current office-local month.
	GetMonthlySummary(ctx context.Context, userID string, year, month int) (MonthlySummaryResponse, error)

	// GetManagerDashboard aggregates today's records across all employees.
	GetManagerDashboard(ctx context.Context) (ManagerDashboardResponse, error)

	// GetEmployeeDashboard aggregates one user's current month and last
	// seven calendar days.
	GetEmployeeDashboard(ctx context.Context, userID string) (EmployeeDashboardResponse, error)
}
