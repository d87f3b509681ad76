package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/summary"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
)

type ReportServiceImpl struct {
	summary.SummaryService
	bundle *i18n.Bundle
	loc    *time.Location
}

func NewReportService(summaryService summary.SummaryService, bundle *i18n.Bundle, loc *time.Location) report.ReportService {
	return &ReportServiceImpl{
		SummaryService: summaryService,
		bundle:         bundle,
		loc:            loc,
	}
}

// Monthly implements report.ReportService.
func (s *ReportServiceImpl) Monthly(ctx context.Context, req report.MonthlyRequest) (summary.CompanySummary, error) {
	if err := req.Validate(); err != nil {
		return summary.CompanySummary{}, err
	}
	return s.SummaryService.GetCompanyMonth(ctx, summary.MonthRequest{
		CompanyID: req.CompanyID,
		Month:     req.Month,
		Year:      req.Year,
	})
}

// ExportMonthly implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthly(ctx context.Context, req report.ExportRequest) (report.Export, error) {
	company, err := s.Monthly(ctx, req.MonthlyRequest)
	if err != nil {
		return report.Export{}, err
	}

	tr := s.bundle.Translator(s.bundle.Match(req.Lang, req.AcceptLanguage))
	data, err := renderMonthly(company, tr)
	if err != nil {
		return report.Export{}, fmt.Errorf("failed to render monthly report: %w", err)
	}

	slog.Info("Monthly report exported", "company_id", req.CompanyID, "month", req.Month, "year", req.Year, "lang", tr.Language().String())
	return report.Export{
		Filename:    fmt.Sprintf("attendance_report_%04d_%02d_%s.xlsx", req.Year, req.Month, tr.Language()),
		ContentType: report.XLSXContentType,
		Data:        data,
	}, nil
}

// ExportEmployee implements report.ReportService.
func (s *ReportServiceImpl) ExportEmployee(ctx context.Context, req report.ExportRequest) (report.Export, error) {
	if err := req.Validate(); err != nil {
		return report.Export{}, err
	}
	if validator.IsEmpty(req.EmployeeID) {
		return report.Export{}, validator.Single("employee_id", "employee_id is required")
	}

	start, end := (&summary.MonthRequest{Month: req.Month, Year: req.Year}).Range()
	sum, err := s.SummaryService.GetPeriodSummary(ctx, summary.PeriodRequest{
		CompanyID:  req.CompanyID,
		EmployeeID: req.EmployeeID,
		StartDate:  start.Format(time.DateOnly),
		EndDate:    end.Format(time.DateOnly),
	})
	if err != nil {
		return report.Export{}, err
	}

	tr := s.bundle.Translator(s.bundle.Match(req.Lang, req.AcceptLanguage))
	data, err := renderEmployee(sum, tr, s.loc)
	if err != nil {
		return report.Export{}, fmt.Errorf("failed to render employee report: %w", err)
	}

	return report.Export{
		Filename:    fmt.Sprintf("attendance_%s_%04d_%02d_%s.xlsx", sum.EmployeeCode, req.Year, req.Month, tr.Language()),
		ContentType: report.XLSXContentType,
		Data:        data,
	}, nil
}
