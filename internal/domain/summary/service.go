package summary

import "context"

type SummaryService interface {
	// GetPeriodSummary aggregates one employee over a month or a week.
	GetPeriodSummary(ctx context.Context, req PeriodRequest) (Summary, error)

	// GetCompanyMonth aggregates every active employee of a company for a month.
	GetCompanyMonth(ctx context.Context, req MonthRequest) (CompanySummary, error)
}
