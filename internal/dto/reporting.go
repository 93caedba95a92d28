package dto

import (
	"fmt"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardResponse is the aggregate home snapshot. Monetary fields are
// strings so privacy mode can mask them.
type DashboardResponse struct {
	TotalBalance       string                 `json:"totalBalance"`
	MonthlyIncome      string                 `json:"monthlyIncome"`
	MonthlyExpense     string                 `json:"monthlyExpense"`
	LastMonthIncome    string                 `json:"lastMonthIncome"`
	LastMonthExpense   string                 `json:"lastMonthExpense"`
	ExpensesByCategory []domain.CategoryTotal `json:"expensesByCategory"`
	RecentTransactions []TransactionResponse  `json:"recentTransactions"`
	NetWorth           string                 `json:"netWorth"`
	ForecastedBalance  string                 `json:"forecastedBalance"`
	DaysRemaining      int                    `json:"daysRemaining"`
}

// ToDashboardResponse converts a domain.Dashboard to its DTO, masking
// monetary aggregates when privacy mode is enabled.
func ToDashboardResponse(d *domain.Dashboard, privacyMode bool) DashboardResponse {
	mask := func(amount decimal.Decimal) string {
		if privacyMode {
			return maskedAmount
		}
		return amount.String()
	}
	return DashboardResponse{
		TotalBalance:       mask(d.TotalBalance),
		MonthlyIncome:      mask(d.MonthlyIncome),
		MonthlyExpense:     mask(d.MonthlyExpense),
		LastMonthIncome:    mask(d.LastMonthIncome),
		LastMonthExpense:   mask(d.LastMonthExpense),
		ExpensesByCategory: d.ExpensesByCategory,
		RecentTransactions: ToTransactionResponses(d.RecentTransactions),
		NetWorth:           mask(d.NetWorth),
		ForecastedBalance:  mask(d.ForecastedBalance),
		DaysRemaining:      d.DaysRemaining,
	}
}

// CashFlowParams defines query parameters for the cash-flow report.
type CashFlowParams struct {
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
	Period    string     `form:"period,default=daily"`
}

// CashFlowResponse wraps the ordered cash-flow buckets.
type CashFlowResponse struct {
	CashFlow []domain.CashFlowEntry `json:"cashFlow"`
}

// CategoryReportParams defines query parameters for the category report.
type CategoryReportParams struct {
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
}

// CategoryReportEntry is one category row of the expense report.
type CategoryReportEntry struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Count      int             `json:"count"`
	Percentage string          `json:"percentage"` // Two decimal places
}

// CategoryReportResponse wraps the per-category report and its grand total.
type CategoryReportResponse struct {
	Report []CategoryReportEntry `json:"report"`
	Total  decimal.Decimal       `json:"total"`
}

// ToCategoryReportResponse derives percentages from category totals. A zero
// grand total yields 0.00 percentages rather than a division fault.
func ToCategoryReportResponse(totals []domain.CategoryTotal) CategoryReportResponse {
	grand := decimal.Zero
	for _, t := range totals {
		grand = grand.Add(t.Total)
	}

	report := make([]CategoryReportEntry, len(totals))
	for i, t := range totals {
		percentage := "0.00"
		if !grand.IsZero() {
			pct, _ := t.Total.Div(grand).Mul(decimal.NewFromInt(100)).Float64()
			percentage = fmt.Sprintf("%.2f", pct)
		}
		report[i] = CategoryReportEntry{
			Category:   t.Category,
			Amount:     t.Total,
			Count:      t.Count,
			Percentage: percentage,
		}
	}

	return CategoryReportResponse{Report: report, Total: grand}
}
