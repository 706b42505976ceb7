package attendance

import (
	"time"

	"github.com/clockwise-hr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// Page carries pagination parameters for list queries.
type Page struct {
	Page  int
	Limit int
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p *Page) Validate() error {
	var errs validator.ValidationErrors

	if p.Page < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be at least 1",
		})
	}
	if p.Limit < 1 || p.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be between 1 and 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// HistoryFilter selects a user's records over a date range.
type HistoryFilter struct {
	From *string // "YYYY-MM-DD"
	To   *string
	Page
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.From != nil {
		if _, ok := validator.IsValidDate(*f.From); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "from must be a valid date in YYYY-MM-DD format",
			})
		}
	}
	if f.To != nil {
		if _, ok := validator.IsValidDate(*f.To); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must be a valid date in YYYY-MM-DD format",
			})
		}
	}

	if err := f.Page.Validate(); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, verrs...)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DailyFilter selects all records for one day, optionally by status.
type DailyFilter struct {
	Date   *string // "YYYY-MM-DD", defaults to today
	Status *string
	Page
}

func (f *DailyFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != nil {
		if _, ok := validator.IsValidDate(*f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be a valid date in YYYY-MM-DD format",
			})
		}
	}
	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of PRESENT, LATE, HALF_DAY, ABSENT",
		})
	}

	if err := f.Page.Validate(); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, verrs...)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Response is the wire shape of a single attendance record.
type Response struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	UserName     *string `json:"user_name,omitempty"`
	Department   *string `json:"department,omitempty"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Status       Status  `json:"status"`
	TotalHours   float64 `json:"total_hours"`
	LateApproved bool    `json:"late_approved"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
}

// ListResponse is a paginated set of attendance records.
type ListResponse struct {
	TotalCount  int64      `json:"total_count"`
	Page        int        `json:"page"`
	Limit       int        `json:"limit"`
	TotalPages  int        `json:"total_pages"`
	Attendances []Response `json:"attendances"`
}

// timePtrToString safely converts a *time.Time to a formatted string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// ToResponse maps an Attendance entity to its wire shape.
func ToResponse(att Attendance) Response {
	return Response{
		ID:           att.ID,
		UserID:       att.UserID,
		UserName:     att.UserName,
		Department:   att.Department,
		Date:         att.Date.Format("2006-01-02"),
		CheckInTime:  timePtrToString(att.CheckInTime),
		CheckOutTime: timePtrToString(att.CheckOutTime),
		Status:       att.Status,
		TotalHours:   att.TotalHours,
		LateApproved: att.LateApproved,
		ApprovedBy:   att.ApprovedBy,
		ApprovedAt:   timePtrToString(att.ApprovedAt),
	}
}
