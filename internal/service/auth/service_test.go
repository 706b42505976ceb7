package auth

import (
	"context"
	"testing"

	"github.com/clockwise-hr/attendance-backend-go/internal/domain/auth"
	"github.com/clockwise-hr/attendance-backend-go/internal/domain/user"
	"github.com/clockwise-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/clockwise-hr/attendance-backend-go/internal/pkg/validator"
	"github.com/clockwise-hr/attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
)

func newTestService() auth.Service {
	userRepo := memory.NewUserRepository()
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	return NewAuthService(userRepo, jwtService)
}

func registerTestUser(t *testing.T, svc auth.Service, email, code string) auth.UserResponse {
	t.Helper()

	result, err := svc.Register(context.Background(), auth.RegisterRequest{
		Name:         "Test User",
		Email:        email,
		Password:     "password123",
		EmployeeCode: code,
		Role:         string(user.RoleEmployee),
	})
	require.NoError(t, err)
	return result
}

func TestAuthService_Register_Success(t *testing.T) {
	svc := newTestService()

	result := registerTestUser(t, svc, "alice@example.com", "EMP-001")

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "alice@example.com", result.Email)
	assert.Equal(t, "EMP-001", result.EmployeeCode)
	assert.Equal(t, string(user.RoleEmployee), result.Role)
}

func TestAuthService_Register_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Register(ctx, auth.RegisterRequest{
		Name:         "",
		Email:        "not-an-email",
		Password:     "short",
		EmployeeCode: "",
		Role:         "SUPERVISOR",
	})

	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	details := verrs.ToMap()
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.Contains(t, details, "employee_code")
	assert.Contains(t, details, "role")
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	registerTestUser(t, svc, "alice@example.com", "EMP-001")

	_, err := svc.Register(ctx, auth.RegisterRequest{
		Name:         "Other User",
		Email:        "alice@example.com",
		Password:     "password123",
		EmployeeCode: "EMP-002",
		Role:         string(user.RoleEmployee),
	})

	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	registered := registerTestUser(t, svc, "alice@example.com", "EMP-001")

	response, err := svc.Login(ctx, auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.Greater(t, response.ExpiresAt, int64(0))
	assert.Equal(t, registered.ID, response.User.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	registerTestUser(t, svc, "alice@example.com", "EMP-001")

	_, err := svc.Login(ctx, auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

// Unknown emails fail the same way as wrong passwords.
func TestAuthService_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Login(ctx, auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Refresh_Success(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	registered := registerTestUser(t, svc, "alice@example.com", "EMP-001")

	login, err := svc.Login(ctx, auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, auth.RefreshRequest{RefreshToken: login.RefreshToken})

	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, registered.ID, refreshed.User.ID)
}

// An access token must not pass as a refresh token.
func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	registerTestUser(t, svc, "alice@example.com", "EMP-001")

	login, err := svc.Login(ctx, auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, auth.RefreshRequest{RefreshToken: login.AccessToken})

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_Refresh_Garbage(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Refresh(ctx, auth.RefreshRequest{RefreshToken: "not-a-token"})

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	registered := registerTestUser(t, svc, "alice@example.com", "EMP-001")

	result, err := svc.Me(ctx, registered.ID)

	require.NoError(t, err)
	assert.Equal(t, registered.ID, result.ID)
	assert.Equal(t, "alice@example.com", result.Email)

	_, err = svc.Me(ctx, "no-such-user")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
