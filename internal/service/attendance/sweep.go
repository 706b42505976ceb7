package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clockwise-hr/attendance-backend-go/internal/domain/attendance"
)

// RunAbsenceSweep implements attendance.Service. It backfills an ABSENT
// record for every user with no attendance activity on the given day.
// A failure for one user is logged and skipped; the sweep always visits
// every user. Running it twice for the same date is safe: inserts that
// collide with an existing record are treated as already done.
func (s *AttendanceServiceImpl) RunAbsenceSweep(ctx context.Context, date time.Time) (int, error) {
	day := s.policy.DateOf(date)

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users for absence sweep: %w", err)
	}

	slog.Info("absence sweep starting",
		"date", day.Format("2006-01-02"),
		"user_count", len(users))

	created := 0
	for _, u := range users {
		exists, err := s.attendanceRepo.ExistsByUserAndDate(ctx, u.ID, day)
		if err != nil {
			slog.Error("absence sweep: existence check failed, skipping user",
				"user_id", u.ID, "error", err)
			continue
		}
		if exists {
			continue
		}

		_, err = s.attendanceRepo.Create(ctx, attendance.Attendance{
			UserID:     u.ID,
			Date:       day,
			Status:     attendance.StatusAbsent,
			TotalHours: 0,
		})
		if err != nil {
			// A concurrent check-in or a prior sweep got there first.
			if errors.Is(err, attendance.ErrDuplicateDate) {
				continue
			}
			slog.Error("absence sweep: failed to mark user absent, skipping",
				"user_id", u.ID, "error", err)
			continue
		}

		created++
	}

	slog.Info("absence sweep completed",
		"date", day.Format("2006-01-02"),
		"marked_absent", created)

	return created, nil
}
