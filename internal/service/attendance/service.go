package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/clockwise-hr/attendance-backend-go/internal/config"
	"github.com/clockwise-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/attendance-backend-go/internal/domain/user"
)

// AttendanceServiceImpl is the attendance lifecycle engine. It owns
// check-in, check-out, status classification and late approval; the
// one-record-per-day invariant itself lives in the repository.
type AttendanceServiceImpl struct {
	attendanceRepo attendance.Repository
	userRepo       user.Repository
	policy         config.OfficePolicy
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.Repository,
	userRepo user.Repository,
	policy config.OfficePolicy,
) attendance.Service {
	return NewAttendanceServiceWithClock(attendanceRepo, userRepo, policy, time.Now)
}

// NewAttendanceServiceWithClock injects the time source. Classification
// is a pure function of the clock, so tests pin it.
func NewAttendanceServiceWithClock(
	attendanceRepo attendance.Repository,
	userRepo user.Repository,
	policy config.OfficePolicy,
	now func() time.Time,
) attendance.Service {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		policy:         policy,
		now:            now,
	}
}

// ClassifyCheckIn maps a check-in instant to its status using only the
// office-local time of day:
//
//	before the late threshold        -> PRESENT
//	threshold up to (excl.) day end  -> LATE
//	at or after office end           -> HALF_DAY
func ClassifyCheckIn(policy config.OfficePolicy, t time.Time) attendance.Status {
	minutes := policy.MinutesOfDay(t)
	switch {
	case minutes < policy.LateThreshold:
		return attendance.StatusPresent
	case minutes < policy.OfficeEnd:
		return attendance.StatusLate
	default:
		return attendance.StatusHalfDay
	}
}

// CheckIn implements attendance.Service.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, userID string) (attendance.Attendance, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return attendance.Attendance{}, user.ErrUserNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to look up user: %w", err)
	}

	now := s.now()
	today := s.policy.DateOf(now)
	status := ClassifyCheckIn(s.policy, now)

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		UserID:      userID,
		Date:        today,
		CheckInTime: &now,
		Status:      status,
		TotalHours:  0,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateDate) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	slog.Info("user checked in",
		"user_id", userID,
		"date", today.Format("2006-01-02"),
		"status", created.Status)

	return created, nil
}

// CheckOut implements attendance.Service. Status stays whatever check-in
// classified; only the timestamp and total hours change.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, userID string) (attendance.Attendance, error) {
	now := s.now()
	today := s.policy.DateOf(now)

	rec, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if rec == nil || rec.CheckInTime == nil {
		return attendance.Attendance{}, attendance.ErrNoCheckIn
	}
	if rec.CheckedOut() {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}

	totalHours := s.totalHours(*rec.CheckInTime, now)

	updated, err := s.attendanceRepo.SetCheckOut(ctx, rec.ID, now, totalHours)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Attendance{}, fmt.Errorf("failed to set check-out: %w", err)
	}

	slog.Info("user checked out",
		"user_id", userID,
		"date", today.Format("2006-01-02"),
		"total_hours", updated.TotalHours)

	return updated, nil
}

// totalHours computes net worked hours, floored at zero so a break
// longer than the elapsed time never produces a negative value.
func (s *AttendanceServiceImpl) totalHours(checkIn, checkOut time.Time) float64 {
	minutesWorked := checkOut.Sub(checkIn).Minutes()
	hours := (minutesWorked - float64(s.policy.BreakMinutes)) / 60.0
	return math.Max(hours, 0.0)
}

// ApproveLate implements attendance.Service. Re-approving re-stamps the
// approver and time; it never reverts an approval or touches the status.
func (s *AttendanceServiceImpl) ApproveLate(ctx context.Context, attendanceID, approverID string) (attendance.Attendance, error) {
	if _, err := s.attendanceRepo.GetByID(ctx, attendanceID); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if _, err := s.userRepo.GetByID(ctx, approverID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return attendance.Attendance{}, user.ErrUserNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to look up approver: %w", err)
	}

	updated, err := s.attendanceRepo.SetLateApproval(ctx, attendanceID, approverID, s.now())
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to set late approval: %w", err)
	}

	slog.Info("late arrival approved",
		"attendance_id", attendanceID,
		"approved_by", approverID)

	return updated, nil
}

// GetTodayAttendance implements attendance.Service.
func (s *AttendanceServiceImpl) GetTodayAttendance(ctx context.Context, userID string) (*attendance.Attendance, error) {
	return s.attendanceRepo.GetByUserAndDate(ctx, userID, s.policy.DateOf(s.now()))
}

// GetAttendanceHistory implements attendance.Service.
func (s *AttendanceServiceImpl) GetAttendanceHistory(ctx context.Context, userID string, filter attendance.HistoryFilter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	today := s.policy.DateOf(s.now())
	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := today

	if filter.From != nil {
		from, _ = time.Parse("2006-01-02", *filter.From)
	}
	if filter.To != nil {
		to, _ = time.Parse("2006-01-02", *filter.To)
	}

	attendances, total, err := s.attendanceRepo.ListByUserAndRange(ctx, userID, from, to, filter.Page)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendance history: %w", err)
	}

	return buildListResponse(attendances, total, filter.Page), nil
}

// GetAllByDate implements attendance.Service.
func (s *AttendanceServiceImpl) GetAllByDate(ctx context.Context, filter attendance.DailyFilter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	date := s.policy.DateOf(s.now())
	if filter.Date != nil {
		date, _ = time.Parse("2006-01-02", *filter.Date)
	}

	if filter.Status != nil {
		matched, err := s.attendanceRepo.ListByStatusAndDate(ctx, attendance.Status(*filter.Status), date)
		if err != nil {
			return attendance.ListResponse{}, fmt.Errorf("failed to list attendances by status: %w", err)
		}
		return paginateInMemory(matched, filter.Page), nil
	}

	attendances, total, err := s.attendanceRepo.ListByDate(ctx, date, filter.Page)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendances by date: %w", err)
	}

	return buildListResponse(attendances, total, filter.Page), nil
}

// GetByStatusAndDate implements attendance.Service.
func (s *AttendanceServiceImpl) GetByStatusAndDate(ctx context.Context, status attendance.Status, date time.Time) ([]attendance.Attendance, error) {
	return s.attendanceRepo.ListByStatusAndDate(ctx, status, date)
}

func buildListResponse(attendances []attendance.Attendance, total int64, page attendance.Page) attendance.ListResponse {
	responses := make([]attendance.Response, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, attendance.ToResponse(att))
	}

	return attendance.ListResponse{
		TotalCount:  total,
		Page:        page.Page,
		Limit:       page.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(page.Limit))),
		Attendances: responses,
	}
}

func paginateInMemory(matched []attendance.Attendance, page attendance.Page) attendance.ListResponse {
	total := int64(len(matched))

	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return buildListResponse(matched[start:end], total, page)
}
