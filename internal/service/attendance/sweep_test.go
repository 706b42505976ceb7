package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/clockwise-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/attendance-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAbsenceSweep_MarksMissingUsersAbsent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, at(9, 0))
	present := env.createUser(t, "EMP-001", user.RoleEmployee)
	missing := env.createUser(t, "EMP-002", user.RoleEmployee)
	manager := env.createUser(t, "MGR-001", user.RoleManager)

	_, err := env.service.CheckIn(ctx, present.ID)
	require.NoError(t, err)

	env.clock.Set(at(18, 0))
	created, err := env.service.RunAbsenceSweep(ctx, env.clock.Now())

	require.NoError(t, err)
	assert.Equal(t, 2, created)

	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	rec, err := env.attendanceRepo.GetByUserAndDate(ctx, missing.ID, day)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)
	assert.Nil(t, rec.CheckInTime)
	assert.Equal(t, 0.0, rec.TotalHours)

	// Managers with no activity are swept too.
	rec, err = env.attendanceRepo.GetByUserAndDate(ctx, manager.ID, day)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)

	// The checked-in record is untouched.
	rec, err = env.attendanceRepo.GetByUserAndDate(ctx, present.ID, day)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusPresent, rec.Status)
}

func TestRunAbsenceSweep_Idempotent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, at(18, 0))
	env.createUser(t, "EMP-001", user.RoleEmployee)
	env.createUser(t, "EMP-002", user.RoleEmployee)

	created, err := env.service.RunAbsenceSweep(ctx, env.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = env.service.RunAbsenceSweep(ctx, env.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestRunAbsenceSweep_NoUsers(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, at(18, 0))

	created, err := env.service.RunAbsenceSweep(ctx, env.clock.Now())

	require.NoError(t, err)
	assert.Equal(t, 0, created)
}
