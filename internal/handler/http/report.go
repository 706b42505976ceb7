package http

import (
	"fmt"
	"net/http"

	"github.com/clockwise-hr/attendance-backend-go/internal/domain/report"
	"github.com/clockwise-hr/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	ExportCSV(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// ExportCSV implements ReportHandler. Unlike the JSON endpoints it
// streams the document itself, with a download filename.
func (h *reportHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	var req report.ExportRequest
	if from := r.URL.Query().Get("from"); from != "" {
		req.From = &from
	}
	if to := r.URL.Query().Get("to"); to != "" {
		req.To = &to
	}

	result, err := h.reportService.ExportAttendanceCSV(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Content)
}
