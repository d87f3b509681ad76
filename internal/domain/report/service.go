package report

import (
	"context"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/summary"
)

type ReportService interface {
	Monthly(ctx context.Context, req MonthlyRequest) (summary.CompanySummary, error)
	ExportMonthly(ctx context.Context, req ExportRequest) (Export, error)
	ExportEmployee(ctx context.Context, req ExportRequest) (Export, error)
}
