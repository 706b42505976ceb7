// Package memory provides mutex-guarded in-memory repository
// implementations with the same error semantics as the PostgreSQL ones.
// They back the service tests and the STORAGE_DRIVER=memory dev mode.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/clockwise-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/google/uuid"
)

type attendanceRepository struct {
	mu         sync.RWMutex
	byID       map[string]attendance.Attendance
	byUserDate map[string]string // userID|YYYY-MM-DD -> record ID
}

func NewAttendanceRepository() attendance.Repository {
	return &attendanceRepository{
		byID:       make(map[string]attendance.Attendance),
		byUserDate: make(map[string]string),
	}
}

func userDateKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

// Create implements attendance.Repository. The check-then-insert runs
// under the write lock, so concurrent duplicates cannot slip through.
func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := userDateKey(att.UserID, att.Date)
	if _, exists := r.byUserDate[key]; exists {
		return attendance.Attendance{}, attendance.ErrDuplicateDate
	}

	now := time.Now()
	att.ID = uuid.NewString()
	att.CreatedAt = now
	att.UpdatedAt = now

	r.byID[att.ID] = att
	r.byUserDate[key] = att.ID

	return att, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	att, ok := r.byID[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (r *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUserDate[userDateKey(userID, date)]
	if !ok {
		return nil, nil
	}
	att := r.byID[id]
	return &att, nil
}

func (r *attendanceRepository) ExistsByUserAndDate(ctx context.Context, userID string, date time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byUserDate[userDateKey(userID, date)]
	return ok, nil
}

// SetCheckOut implements attendance.Repository. The closed-record guard
// runs under the write lock; a second concurrent caller observes
// ErrAlreadyCheckedOut, never a silent overwrite.
func (r *attendanceRepository) SetCheckOut(ctx context.Context, id string, checkOut time.Time, totalHours float64) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	att, ok := r.byID[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	if att.CheckOutTime != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}

	att.CheckOutTime = &checkOut
	att.TotalHours = totalHours
	att.UpdatedAt = time.Now()
	r.byID[id] = att

	return att, nil
}

func (r *attendanceRepository) SetLateApproval(ctx context.Context, id string, approvedBy string, approvedAt time.Time) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	att, ok := r.byID[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}

	att.LateApproved = true
	att.ApprovedBy = &approvedBy
	att.ApprovedAt = &approvedAt
	att.UpdatedAt = time.Now()
	r.byID[id] = att

	return att, nil
}

func (r *attendanceRepository) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time, page attendance.Page) ([]attendance.Attendance, int64, error) {
	r.mu.RLock()
	matched := r.collect(func(att attendance.Attendance) bool {
		return att.UserID == userID && !att.Date.Before(from) && !att.Date.After(to)
	})
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})

	return paginate(matched, page)
}

func (r *attendanceRepository) ListAllByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	r.mu.RLock()
	matched := r.collect(func(att attendance.Attendance) bool {
		return att.UserID == userID && !att.Date.Before(from) && !att.Date.After(to)
	})
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Date.Before(matched[j].Date)
	})

	return matched, nil
}

func (r *attendanceRepository) ListAllByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	r.mu.RLock()
	matched := r.collect(func(att attendance.Attendance) bool {
		return att.Date.Equal(date)
	})
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].UserID < matched[j].UserID
	})

	return matched, nil
}

func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time, page attendance.Page) ([]attendance.Attendance, int64, error) {
	r.mu.RLock()
	matched := r.collect(func(att attendance.Attendance) bool {
		return att.Date.Equal(date)
	})
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].UserID < matched[j].UserID
	})

	return paginate(matched, page)
}

func (r *attendanceRepository) ListByStatusAndDate(ctx context.Context, status attendance.Status, date time.Time) ([]attendance.Attendance, error) {
	r.mu.RLock()
	matched := r.collect(func(att attendance.Attendance) bool {
		return att.Status == status && att.Date.Equal(date)
	})
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].UserID < matched[j].UserID
	})

	return matched, nil
}

func (r *attendanceRepository) ListRange(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	r.mu.RLock()
	matched := r.collect(func(att attendance.Attendance) bool {
		return !att.Date.Before(from) && !att.Date.After(to)
	})
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.Before(matched[j].Date)
		}
		return matched[i].UserID < matched[j].UserID
	})

	return matched, nil
}

// collect must be called with at least the read lock held.
func (r *attendanceRepository) collect(match func(attendance.Attendance) bool) []attendance.Attendance {
	var out []attendance.Attendance
	for _, att := range r.byID {
		if match(att) {
			out = append(out, att)
		}
	}
	return out
}

func paginate(matched []attendance.Attendance, page attendance.Page) ([]attendance.Attendance, int64, error) {
	total := int64(len(matched))

	start := page.Offset()
	if start >= len(matched) {
		return []attendance.Attendance{}, total, nil
	}
	end := start + page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}
