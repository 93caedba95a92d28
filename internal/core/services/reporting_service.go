package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/dompetku/dompetku_backend/internal/utils/forecast"
	"github.com/shopspring/decimal"
)

// recentTransactionCount is how many transactions the dashboard shows.
const recentTransactionCount = 10

// reportingService builds the read-only analytics views. Sums and groupings
// come from the reporting repository; this layer only shapes and buckets.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	txnRepo       portsrepo.TransactionReader
	walletRepo    portsrepo.WalletReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, txnRepo portsrepo.TransactionReader, walletRepo portsrepo.WalletReader) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		txnRepo:       txnRepo,
		walletRepo:    walletRepo,
	}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetDashboard builds the aggregate snapshot as of now.
// Implements portssvc.ReportingSvcFacade
func (s *reportingService) GetDashboard(ctx context.Context, userID string, now time.Time) (*domain.Dashboard, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	wallets, err := s.walletRepo.ListWalletsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets for dashboard: %w", err)
	}
	totalBalance := decimal.Zero
	for _, wallet := range wallets {
		totalBalance = totalBalance.Add(wallet.Balance)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	monthlyIncome, err := s.reportingRepo.SumAmountByType(ctx, userID, domain.Income, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum monthly income: %w", err)
	}
	monthlyExpense, err := s.reportingRepo.SumAmountByType(ctx, userID, domain.Expense, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum monthly expense: %w", err)
	}
	lastMonthIncome, err := s.reportingRepo.SumAmountByType(ctx, userID, domain.Income, lastMonthStart, monthStart)
	if err != nil {
		return nil, fmt.Errorf("failed to sum last month income: %w", err)
	}
	lastMonthExpense, err := s.reportingRepo.SumAmountByType(ctx, userID, domain.Expense, lastMonthStart, monthStart)
	if err != nil {
		return nil, fmt.Errorf("failed to sum last month expense: %w", err)
	}

	expensesByCategory, err := s.reportingRepo.ExpenseTotalsByCategory(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses by category: %w", err)
	}

	recent, err := s.txnRepo.ListTransactionsByUser(ctx, userID, portsrepo.TransactionFilter{Limit: recentTransactionCount})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}

	owedToUser, err := s.reportingRepo.SumUnpaidDebtByType(ctx, userID, domain.DebtOwed)
	if err != nil {
		return nil, fmt.Errorf("failed to sum owed debts: %w", err)
	}
	userOwes, err := s.reportingRepo.SumUnpaidDebtByType(ctx, userID, domain.DebtOwing)
	if err != nil {
		return nil, fmt.Errorf("failed to sum owing debts: %w", err)
	}
	netWorth := totalBalance.Add(owedToUser).Sub(userOwes)

	observations, err := s.reportingRepo.ListExpenseAmountsInRange(ctx, userID, monthStart, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense observations: %w", err)
	}
	daysRemaining := daysInMonth(now.Year(), now.Month()) - now.Day()
	forecasted := forecast.EndOfMonth(totalBalance, observations, daysRemaining)

	logger.Debug("Dashboard built", slog.String("user_id", userID), slog.Int("wallets", len(wallets)), slog.Int("recent", len(recent)))
	return &domain.Dashboard{
		TotalBalance:       totalBalance,
		MonthlyIncome:      monthlyIncome,
		MonthlyExpense:     monthlyExpense,
		LastMonthIncome:    lastMonthIncome,
		LastMonthExpense:   lastMonthExpense,
		ExpensesByCategory: expensesByCategory,
		RecentTransactions: recent,
		NetWorth:           netWorth,
		ForecastedBalance:  forecasted,
		DaysRemaining:      daysRemaining,
		GeneratedAt:        now,
	}, nil
}

// GetCashFlow buckets the user's income and expense transactions within
// [start, end] by the requested granularity, ascending by period.
// Implements portssvc.ReportingSvcFacade
func (s *reportingService) GetCashFlow(ctx context.Context, userID string, start, end time.Time, granularity domain.CashFlowGranularity) ([]domain.CashFlowEntry, error) {
	transactions, err := s.txnRepo.ListTransactionsByUser(ctx, userID, portsrepo.TransactionFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for cash flow: %w", err)
	}

	buckets := make(map[string]*domain.CashFlowEntry)
	for _, txn := range transactions {
		// Transfers move money between the user's own wallets and are
		// neither income nor expense.
		if txn.Type == domain.Transfer {
			continue
		}
		key := bucketKey(txn.Date, granularity)
		entry, ok := buckets[key]
		if !ok {
			entry = &domain.CashFlowEntry{Period: key, Income: decimal.Zero, Expense: decimal.Zero}
			buckets[key] = entry
		}
		if txn.Type == domain.Income {
			entry.Income = entry.Income.Add(txn.Amount)
		} else {
			entry.Expense = entry.Expense.Add(txn.Amount)
		}
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]domain.CashFlowEntry, 0, len(keys))
	for _, key := range keys {
		entry := buckets[key]
		entry.Net = entry.Income.Sub(entry.Expense)
		entries = append(entries, *entry)
	}
	return entries, nil
}

// GetCategoryReport returns per-category expense totals within [start, end].
// Implements portssvc.ReportingSvcFacade
func (s *reportingService) GetCategoryReport(ctx context.Context, userID string, start, end time.Time) ([]domain.CategoryTotal, error) {
	totals, err := s.reportingRepo.ExpenseTotalsByCategory(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate category report: %w", err)
	}
	return totals, nil
}

// bucketKey maps a transaction date to its cash-flow bucket. Weekly buckets
// anchor on the Sunday of the week; monthly on YYYY-MM.
func bucketKey(date time.Time, granularity domain.CashFlowGranularity) string {
	date = date.UTC()
	switch granularity {
	case domain.CashFlowWeekly:
		sunday := date.AddDate(0, 0, -int(date.Weekday()))
		return sunday.Format("2006-01-02")
	case domain.CashFlowMonthly:
		return date.Format("2006-01")
	default:
		return date.Format("2006-01-02")
	}
}

// daysInMonth returns the number of days in the given month; day zero of the
// following month is its last day.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
