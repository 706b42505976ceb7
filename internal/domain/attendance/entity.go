package attendance

import (
	"time"
)

// Status is the classification of a single day's attendance.
// It is determined once at check-in (or by the absence sweep) and is
// never changed by check-out or late approval.
type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
	StatusHalfDay Status = "HALF_DAY"
	StatusAbsent  Status = "ABSENT"
)

// IsValid reports whether s is one of the known attendance statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusHalfDay, StatusAbsent:
		return true
	}
	return false
}

// Attendance is one user's record for one calendar day.
// At most one record exists per (UserID, Date); the store enforces this.
type Attendance struct {
	ID           string
	UserID       string
	Date         time.Time // calendar day in the office timezone, zero time-of-day
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Status       Status
	TotalHours   float64
	LateApproved bool
	ApprovedBy   *string
	ApprovedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / join fields
	UserName   *string
	Department *string
}

// CheckedOut reports whether the record already has a check-out timestamp.
func (a *Attendance) CheckedOut() bool {
	return a.CheckOutTime != nil
}
