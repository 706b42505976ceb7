package report

import "context"

// Service generates attendance exports for managers.
type Service interface {
	// ExportAttendanceCSV renders every record in the requested range as
	// a CSV document, one row per (user, date).
	ExportAttendanceCSV(ctx context.Context, req ExportRequest) (Export, error)
}
