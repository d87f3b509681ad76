package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/summary"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	GetMonthlyReport(w http.ResponseWriter, r *http.Request)
	ExportMonthlyReport(w http.ResponseWriter, r *http.Request)
	ExportEmployeeReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func monthlyRequest(r *http.Request, companyID string) (report.MonthlyRequest, error) {
	month, err := queryInt(r, "month", 0)
	if err != nil {
		return report.MonthlyRequest{}, err
	}
	year, err := queryInt(r, "year", 0)
	if err != nil {
		return report.MonthlyRequest{}, err
	}
	return report.MonthlyRequest{CompanyID: companyID, Month: month, Year: year}, nil
}

// GetMonthlyReport handles GET /reports/monthly
func (h *reportHandlerImpl) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(w, r)
	if !ok {
		return
	}

	req, err := monthlyRequest(r, c.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.Monthly(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary.NewCompanySummaryResponse(result))
}

// ExportMonthlyReport handles GET /reports/monthly/export
func (h *reportHandlerImpl) ExportMonthlyReport(w http.ResponseWriter, r *http.Request) {
	req, ok := exportRequest(w, r)
	if !ok {
		return
	}

	export, err := h.reportService.ExportMonthly(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Debug("Streaming monthly report", "filename", export.Filename, "bytes", len(export.Data))
	response.File(w, export.Filename, export.ContentType, export.Data)
}

// ExportEmployeeReport handles GET /reports/employee/{employeeID}/export
func (h *reportHandlerImpl) ExportEmployeeReport(w http.ResponseWriter, r *http.Request) {
	req, ok := exportRequest(w, r)
	if !ok {
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	export, err := h.reportService.ExportEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, export.Filename, export.ContentType, export.Data)
}

func exportRequest(w http.ResponseWriter, r *http.Request) (report.ExportRequest, bool) {
	c, ok := claims(w, r)
	if !ok {
		return report.ExportRequest{}, false
	}

	monthly, err := monthlyRequest(r, c.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return report.ExportRequest{}, false
	}

	return report.ExportRequest{
		MonthlyRequest: monthly,
		Lang:           r.URL.Query().Get("lang"),
		AcceptLanguage: r.Header.Get("Accept-Language"),
	}, true
}
