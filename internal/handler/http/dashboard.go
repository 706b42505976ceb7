package http

import (
	"net/http"

	"github.com/clockwise-hr/attendance-backend-go/internal/domain/dashboard"
	"github.com/clockwise-hr/attendance-backend-go/internal/handler/http/response"
	"github.com/clockwise-hr/attendance-backend-go/internal/pkg/validator"
)

type DashboardHandler interface {
	EmployeeDashboard(w http.ResponseWriter, r *http.Request)
	MonthlySummary(w http.ResponseWriter, r *http.Request)
	ManagerDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// EmployeeDashboard implements DashboardHandler.
func (h *dashboardHandlerImpl) EmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.GetEmployeeDashboard(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MonthlySummary implements DashboardHandler. The month query parameter
// is "YYYY-MM"; when absent the service falls back to the current
// office-local month.
func (h *dashboardHandlerImpl) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var year, month int
	if m := r.URL.Query().Get("month"); m != "" {
		parsed, ok := validator.IsValidMonth(m)
		if !ok {
			response.BadRequest(w, "month must be in YYYY-MM format", nil)
			return
		}
		year, month = parsed.Year(), int(parsed.Month())
	}

	result, err := h.dashboardService.GetMonthlySummary(r.Context(), userID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ManagerDashboard implements DashboardHandler.
func (h *dashboardHandlerImpl) ManagerDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetManagerDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
