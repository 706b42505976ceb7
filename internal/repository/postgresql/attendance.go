package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.user_id, a.date, a.check_in_time, a.check_out_time,
	a.status, a.total_hours, a.late_approved, a.approved_by, a.approved_at,
	a.created_at, a.updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.Date, &att.CheckInTime, &att.CheckOutTime,
		&att.Status, &att.TotalHours, &att.LateApproved, &att.ApprovedBy, &att.ApprovedAt,
		&att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.Repository. The unique constraint on
// (user_id, date) makes the insert atomic: when two check-ins race, the
// second sees no returned row and fails with ErrDuplicateDate.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	query := `
		INSERT INTO attendances (
			user_id, date, check_in_time, check_out_time,
			status, total_hours, late_approved, approved_by, approved_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (user_id, date) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := a.db.QueryRow(ctx, query,
		att.UserID,
		att.Date,
		att.CheckInTime,
		att.CheckOutTime,
		att.Status,
		att.TotalHours,
		att.LateApproved,
		att.ApprovedBy,
		att.ApprovedAt,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrDuplicateDate
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	query := `
		SELECT` + attendanceColumns + `,
			u.name AS user_name,
			u.department
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`

	var att attendance.Attendance
	err := a.db.QueryRow(ctx, query, id).Scan(
		&att.ID, &att.UserID, &att.Date, &att.CheckInTime, &att.CheckOutTime,
		&att.Status, &att.TotalHours, &att.LateApproved, &att.ApprovedBy, &att.ApprovedAt,
		&att.CreatedAt, &att.UpdatedAt,
		&att.UserName, &att.Department,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// GetByUserAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	query := `
		SELECT` + attendanceColumns + `
		FROM attendances a
		WHERE a.user_id = $1
		  AND a.date = $2
		LIMIT 1
	`

	att, err := scanAttendance(a.db.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for this day
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &att, nil
}

// ExistsByUserAndDate implements attendance.Repository.
func (a *attendanceRepository) ExistsByUserAndDate(ctx context.Context, userID string, date time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM attendances WHERE user_id = $1 AND date = $2)`

	var exists bool
	if err := a.db.QueryRow(ctx, query, userID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance existence: %w", err)
	}
	return exists, nil
}

// SetCheckOut implements attendance.Repository. The check_out_time IS NULL
// guard keeps concurrent double-checkout out: the losing caller matches no
// row and gets ErrAlreadyCheckedOut.
func (a *attendanceRepository) SetCheckOut(ctx context.Context, id string, checkOut time.Time, totalHours float64) (attendance.Attendance, error) {
	query := `
		UPDATE attendances a
		SET check_out_time = $2, total_hours = $3, updated_at = NOW()
		WHERE a.id = $1
		  AND a.check_out_time IS NULL
		RETURNING` + attendanceColumns

	att, err := scanAttendance(a.db.QueryRow(ctx, query, id, checkOut, totalHours))
	if err == nil {
		return att, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, fmt.Errorf("failed to set check-out: %w", err)
	}

	// No open row matched: closed already, or the record does not exist.
	var exists bool
	if err := a.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM attendances WHERE id = $1)`, id).Scan(&exists); err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to check attendance existence: %w", err)
	}
	if exists {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

// SetLateApproval implements attendance.Repository.
func (a *attendanceRepository) SetLateApproval(ctx context.Context, id string, approvedBy string, approvedAt time.Time) (attendance.Attendance, error) {
	query := `
		UPDATE attendances a
		SET late_approved = TRUE, approved_by = $2, approved_at = $3, updated_at = NOW()
		WHERE a.id = $1
		RETURNING` + attendanceColumns

	att, err := scanAttendance(a.db.QueryRow(ctx, query, id, approvedBy, approvedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to set late approval: %w", err)
	}

	return att, nil
}

// ListByUserAndRange implements attendance.Repository.
func (a *attendanceRepository) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time, page attendance.Page) ([]attendance.Attendance, int64, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM attendances
		WHERE user_id = $1 AND date >= $2 AND date <= $3
	`
	var total int64
	if err := a.db.QueryRow(ctx, countQuery, userID, from, to).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := `
		SELECT` + attendanceColumns + `
		FROM attendances a
		WHERE a.user_id = $1 AND a.date >= $2 AND a.date <= $3
		ORDER BY a.date DESC
		LIMIT $4 OFFSET $5
	`

	rows, err := a.db.Query(ctx, query, userID, from, to, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	attendances, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, err
	}
	return attendances, total, nil
}

// ListAllByUserAndRange implements attendance.Repository.
func (a *attendanceRepository) ListAllByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	query := `
		SELECT` + attendanceColumns + `
		FROM attendances a
		WHERE a.user_id = $1 AND a.date >= $2 AND a.date <= $3
		ORDER BY a.date ASC
	`

	rows, err := a.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// ListAllByDate implements attendance.Repository.
func (a *attendanceRepository) ListAllByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	query := `
		SELECT` + attendanceColumns + `,
			u.name AS user_name,
			u.department
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.date = $1
		ORDER BY u.employee_code ASC
	`

	rows, err := a.db.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by date: %w", err)
	}
	defer rows.Close()

	return collectJoinedAttendances(rows)
}

// ListByDate implements attendance.Repository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time, page attendance.Page) ([]attendance.Attendance, int64, error) {
	var total int64
	if err := a.db.QueryRow(ctx, `SELECT COUNT(*) FROM attendances WHERE date = $1`, date).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := `
		SELECT` + attendanceColumns + `,
			u.name AS user_name,
			u.department
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.date = $1
		ORDER BY u.employee_code ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := a.db.Query(ctx, query, date, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances by date: %w", err)
	}
	defer rows.Close()

	attendances, err := collectJoinedAttendances(rows)
	if err != nil {
		return nil, 0, err
	}
	return attendances, total, nil
}

// ListByStatusAndDate implements attendance.Repository.
func (a *attendanceRepository) ListByStatusAndDate(ctx context.Context, status attendance.Status, date time.Time) ([]attendance.Attendance, error) {
	query := `
		SELECT` + attendanceColumns + `,
			u.name AS user_name,
			u.department
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.status = $1 AND a.date = $2
		ORDER BY u.employee_code ASC
	`

	rows, err := a.db.Query(ctx, query, status, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by status: %w", err)
	}
	defer rows.Close()

	return collectJoinedAttendances(rows)
}

// ListRange implements attendance.Repository.
func (a *attendanceRepository) ListRange(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	query := `
		SELECT` + attendanceColumns + `,
			u.name AS user_name,
			u.department
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.date >= $1 AND a.date <= $2
		ORDER BY a.date ASC, u.employee_code ASC
	`

	rows, err := a.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances in range: %w", err)
	}
	defer rows.Close()

	return collectJoinedAttendances(rows)
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return attendances, nil
}

func collectJoinedAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.UserID, &att.Date, &att.CheckInTime, &att.CheckOutTime,
			&att.Status, &att.TotalHours, &att.LateApproved, &att.ApprovedBy, &att.ApprovedAt,
			&att.CreatedAt, &att.UpdatedAt,
			&att.UserName, &att.Department,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return attendances, nil
}
