package report

import (
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type MonthlyRequest struct {
	CompanyID string
	Month     int
	Year      int
}

func (r *MonthlyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{Field: "company_id", Message: "company_id is required"})
	}
	if !validator.IsValidMonth(r.Month, r.Year) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be 1-12 and year must be valid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExportRequest selects a report and its language. Lang wins over
// AcceptLanguage when both are set.
type ExportRequest struct {
	MonthlyRequest
	EmployeeID     string
	Lang           string
	AcceptLanguage string
}

func (r *ExportRequest) Validate() error {
	return r.MonthlyRequest.Validate()
}

// Export is a rendered file ready to be streamed.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}
