package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records.
// Date arguments are calendar days (zero time-of-day) in the office timezone.
type Repository interface {
	// Create inserts a new record. It must fail atomically with
	// ErrDuplicateDate when a record already exists for (UserID, Date),
	// even under concurrent callers.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByID retrieves a record by its ID.
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByUserAndDate retrieves the record for a user on a specific day.
	// Returns (nil, nil) when no record exists.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	// ExistsByUserAndDate reports whether a record exists for (userID, date).
	ExistsByUserAndDate(ctx context.Context, userID string, date time.Time) (bool, error)

	// SetCheckOut stamps the check-out time and total hours on an open record.
	// Returns ErrAlreadyCheckedOut if the record was already closed; the
	// guard must hold under concurrent callers (no last-write-wins).
	SetCheckOut(ctx context.Context, id string, checkOut time.Time, totalHours float64) (Attendance, error)

	// SetLateApproval stamps the approval fields. It touches nothing else.
	SetLateApproval(ctx context.Context, id string, approvedBy string, approvedAt time.Time) (Attendance, error)

	// ListByUserAndRange retrieves a user's records in [from, to] with
	// pagination, ordered by date descending. Returns total count.
	ListByUserAndRange(ctx context.Context, userID string, from, to time.Time, page Page) ([]Attendance, int64, error)

	// ListAllByUserAndRange retrieves all of a user's records in
	// [from, to], ordered by date ascending, without pagination.
	// Used by the aggregation engine.
	ListAllByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]Attendance, error)

	// ListByDate retrieves all records for a day with pagination.
	ListByDate(ctx context.Context, date time.Time, page Page) ([]Attendance, int64, error)

	// ListAllByDate retrieves all records for a day without pagination.
	ListAllByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// ListByStatusAndDate retrieves all records for a day matching status.
	ListByStatusAndDate(ctx context.Context, status Status, date time.Time) ([]Attendance, error)

	// ListRange retrieves every record in [from, to] across all users,
	// ordered by date then user. Used for exports.
	ListRange(ctx context.Context, from, to time.Time) ([]Attendance, error)
}
