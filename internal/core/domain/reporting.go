package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is an aggregated expense figure for one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// CashFlowGranularity selects the bucketing for cash-flow reports.
type CashFlowGranularity string

const (
	CashFlowDaily   CashFlowGranularity = "daily"
	CashFlowWeekly  CashFlowGranularity = "weekly"
	CashFlowMonthly CashFlowGranularity = "monthly"
)

// CashFlowEntry is one bucket of a cash-flow report.
type CashFlowEntry struct {
	Period  string          `json:"date"` // Bucket key: YYYY-MM-DD or YYYY-MM
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// Dashboard is the aggregate snapshot served to the home view.
type Dashboard struct {
	TotalBalance       decimal.Decimal `json:"totalBalance"`
	MonthlyIncome      decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpense     decimal.Decimal `json:"monthlyExpense"`
	LastMonthIncome    decimal.Decimal `json:"lastMonthIncome"`
	LastMonthExpense   decimal.Decimal `json:"lastMonthExpense"`
	ExpensesByCategory []CategoryTotal `json:"expensesByCategory"`
	RecentTransactions []Transaction   `json:"recentTransactions"`
	NetWorth           decimal.Decimal `json:"netWorth"`
	ForecastedBalance  decimal.Decimal `json:"forecastedBalance"`
	DaysRemaining      int             `json:"daysRemaining"`
	GeneratedAt        time.Time       `json:"-"`
}
