package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clockwise-hr/attendance-backend-go/internal/config"
	"github.com/clockwise-hr/attendance-backend-go/internal/domain/auth"
	"github.com/clockwise-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/clockwise-hr/attendance-backend-go/internal/repository/memory"
	attendanceService "github.com/clockwise-hr/attendance-backend-go/internal/service/attendance"
	authService "github.com/clockwise-hr/attendance-backend-go/internal/service/auth"
	dashboardService "github.com/clockwise-hr/attendance-backend-go/internal/service/dashboard"
	reportService "github.com/clockwise-hr/attendance-backend-go/internal/service/report"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret     = "test-secret-key-for-jwt"
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "24h"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	cfg := &config.Config{
		App:    config.AppConfig{Env: "test", StorageDriver: "memory"},
		Office: config.DefaultOfficePolicy(),
	}

	userRepo := memory.NewUserRepository()
	attendanceRepo := memory.NewAttendanceRepository()
	jwtSvc := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userRepo, cfg.Office)
	authSvc := authService.NewAuthService(userRepo, jwtSvc)
	dashboardSvc := dashboardService.NewDashboardService(attendanceRepo, userRepo, cfg.Office)
	reportSvc := reportService.NewReportService(attendanceRepo, userRepo, cfg.Office)

	return NewRouter(
		cfg,
		jwtSvc,
		NewAuthHandler(authSvc),
		NewAttendanceHandler(attendanceSvc),
		NewDashboardHandler(dashboardSvc),
		NewReportHandler(reportSvc),
	)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, router http.Handler, email, code, role string) auth.TokenResponse {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":          "Test User",
		"email":         email,
		"password":      "password123",
		"employee_code": code,
		"role":          role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var tokens auth.TokenResponse
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	return tokens
}

func TestRouter_AttendanceFlow(t *testing.T) {
	router := newTestRouter(t)
	tokens := registerAndLogin(t, router, "alice@example.com", "EMP-001", "EMPLOYEE")

	// Check in.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/attendance/check-in", tokens.AccessToken, nil)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// A second check-in the same day conflicts.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/attendance/check-in", tokens.AccessToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// Today's record is visible.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/attendance/today", tokens.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Check out, then again.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/attendance/check-out", tokens.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = doJSON(t, router, http.MethodPost, "/api/v1/attendance/check-out", tokens.AccessToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// History and dashboard respond for the authenticated user.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/attendance/history", tokens.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = doJSON(t, router, http.MethodGet, "/api/v1/dashboard", tokens.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRouter_CheckOutWithoutCheckIn(t *testing.T) {
	router := newTestRouter(t)
	tokens := registerAndLogin(t, router, "alice@example.com", "EMP-001", "EMPLOYEE")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/attendance/check-out", tokens.AccessToken, nil)

	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestRouter_RequiresAuthentication(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/attendance/check-in", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// A refresh token must not open protected endpoints.
func TestRouter_RejectsRefreshTokenAsAccess(t *testing.T) {
	router := newTestRouter(t)
	tokens := registerAndLogin(t, router, "alice@example.com", "EMP-001", "EMPLOYEE")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/attendance/check-in", tokens.RefreshToken, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ManagerEndpoints(t *testing.T) {
	router := newTestRouter(t)
	employee := registerAndLogin(t, router, "alice@example.com", "EMP-001", "EMPLOYEE")
	manager := registerAndLogin(t, router, "boss@example.com", "MGR-001", "MANAGER")

	// Employees are locked out of the manager surface.
	rec := doJSON(t, router, http.MethodGet, "/api/v1/manager/dashboard", employee.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/v1/manager/dashboard", manager.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/v1/manager/attendance", manager.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	path := fmt.Sprintf("/api/v1/manager/users/%s/attendance", employee.User.ID)
	rec = doJSON(t, router, http.MethodGet, path, manager.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/v1/manager/export/csv", manager.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance_")
}

func TestRouter_ApproveLate(t *testing.T) {
	router := newTestRouter(t)
	employee := registerAndLogin(t, router, "alice@example.com", "EMP-001", "EMPLOYEE")
	manager := registerAndLogin(t, router, "boss@example.com", "MGR-001", "MANAGER")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/attendance/check-in", employee.AccessToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	path := fmt.Sprintf("/api/v1/manager/attendance/%s/approve-late", created.ID)
	rec = doJSON(t, router, http.MethodPost, path, manager.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/v1/manager/attendance/no-such-id/approve-late", manager.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestRouter_RefreshEndpoint(t *testing.T) {
	router := newTestRouter(t)
	tokens := registerAndLogin(t, router, "alice@example.com", "EMP-001", "EMPLOYEE")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{
		"refresh_token": tokens.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{
		"refresh_token": "garbage",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Me(t *testing.T) {
	router := newTestRouter(t)
	tokens := registerAndLogin(t, router, "alice@example.com", "EMP-001", "EMPLOYEE")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var me auth.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "alice@example.com", me.Email)
	assert.Equal(t, "EMP-001", me.EmployeeCode)
}
