package report

import (
	"github.com/clockwise-hr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE CSV EXPORT
// ========================================

type ExportRequest struct {
	From *string `json:"from"` // "YYYY-MM-DD", defaults to first of current month
	To   *string `json:"to"`   // defaults to today
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.From != nil {
		if _, ok := validator.IsValidDate(*r.From); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "from must be a valid date in YYYY-MM-DD format",
			})
		}
	}
	if r.To != nil {
		if _, ok := validator.IsValidDate(*r.To); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must be a valid date in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Export is a generated CSV document plus its suggested filename.
type Export struct {
	Filename string
	Content  []byte
}
