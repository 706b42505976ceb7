package attendance

import (
	"context"
	"time"
)

// Service defines business logic for the attendance lifecycle.
type Service interface {
	// CheckIn creates today's record for a user and classifies its status
	// from the check-in time of day.
	CheckIn(ctx context.Context, userID string) (Attendance, error)

	// CheckOut closes today's open record and computes total hours.
	CheckOut(ctx context.Context, userID string) (Attendance, error)

	// ApproveLate marks a record's late arrival as excused by a manager.
	// Re-approving an approved record re-stamps the approver and time.
	ApproveLate(ctx context.Context, attendanceID, approverID string) (Attendance, error)

	// GetTodayAttendance returns today's record for a user, or nil if none.
	GetTodayAttendance(ctx context.Context, userID string) (*Attendance, error)

	// GetAttendanceHistory returns a user's records over a date range,
	// paginated. Defaults: from = first of current month, to = today.
	GetAttendanceHistory(ctx context.Context, userID string, filter HistoryFilter) (ListResponse, error)

	// GetAllByDate returns all records for one day, paginated, with an
	// optional status filter. Defaults to today.
	GetAllByDate(ctx context.Context, filter DailyFilter) (ListResponse, error)

	// GetByStatusAndDate returns all records for a day matching status.
	GetByStatusAndDate(ctx context.Context, status Status, date time.Time) ([]Attendance, error)

	// RunAbsenceSweep creates ABSENT records for every user with no record
	// on the given day. Safe to run more than once for the same date.
	// Returns the number of records created.
	RunAbsenceSweep(ctx context.Context, date time.Time) (int, error)
}
