package cron

import (
	"context"
	"time"

	"github.com/clockwise-hr/attendance-backend-go/internal/config"
	"github.com/clockwise-hr/attendance-backend-go/internal/domain/attendance"
)

// AttendanceJobs holds the scheduled attendance work. The sweep itself
// lives in the attendance service; this layer only decides when to fire.
type AttendanceJobs struct {
	attendanceService attendance.Service
	policy            config.OfficePolicy
	sweepHour         int
	now               func() time.Time
}

func NewAttendanceJobs(
	attendanceService attendance.Service,
	policy config.OfficePolicy,
	sweep config.SweepConfig,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		policy:            policy,
		sweepHour:         sweep.Hour,
		now:               time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_users", 1*time.Hour, j.MarkAbsentUsers)
}

// MarkAbsentUsers fires hourly and runs the absence sweep only during
// the configured office-local hour on business days. The sweep is
// idempotent, so a restart within the same hour does no harm.
func (j *AttendanceJobs) MarkAbsentUsers(ctx context.Context) error {
	nowLocal := j.now().In(j.policy.Location)

	if nowLocal.Hour() != j.sweepHour {
		return nil
	}
	if wd := nowLocal.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return nil
	}

	_, err := j.attendanceService.RunAbsenceSweep(ctx, nowLocal)
	return err
}
