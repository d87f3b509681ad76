package http

import (
	"net/http"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/summary"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SummaryHandler interface {
	GetMySummary(w http.ResponseWriter, r *http.Request)
	GetEmployeeSummary(w http.ResponseWriter, r *http.Request)
}

type summaryHandlerImpl struct {
	summaryService summary.SummaryService
}

func NewSummaryHandler(summaryService summary.SummaryService) SummaryHandler {
	return &summaryHandlerImpl{summaryService: summaryService}
}

// GetMySummary handles GET /summary/my
func (h *summaryHandlerImpl) GetMySummary(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(w, r)
	if !ok {
		return
	}
	h.period(w, r, c.CompanyID, c.EmployeeID)
}

// GetEmployeeSummary handles GET /summary/{employeeID}
func (h *summaryHandlerImpl) GetEmployeeSummary(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(w, r)
	if !ok {
		return
	}
	h.period(w, r, c.CompanyID, chi.URLParam(r, "employeeID"))
}

func (h *summaryHandlerImpl) period(w http.ResponseWriter, r *http.Request, companyID, employeeID string) {
	req := summary.PeriodRequest{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}

	result, err := h.summaryService.GetPeriodSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary.NewSummaryResponse(result, true))
}
