package attendance

import "errors"

// Attendance domain errors
var (
	// State machine errors
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrNoCheckIn         = errors.New("no check-in found for today")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")

	// ErrDuplicateDate is returned by the store when an insert would
	// violate the one-record-per-user-per-day invariant.
	ErrDuplicateDate = errors.New("attendance record already exists for this date")
)
