package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/monetra/internal/apperrors"
	"github.com/SscSPs/monetra/internal/core/domain"
	portsrepo "github.com/SscSPs/monetra/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/monetra/internal/core/ports/services"
	"github.com/SscSPs/monetra/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// RecentTransactionCount is the number of transactions shown on the dashboard.
const RecentTransactionCount = 5

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	walletRepo portsrepo.WalletReader
	txnRepo    portsrepo.TransactionReader
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(walletRepo portsrepo.WalletReader, txnRepo portsrepo.TransactionReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// GetDashboard summarises balances and the activity of a period. Transfers count towards
// the transaction total but not towards income or expense.
func (s *reportingService) GetDashboard(ctx context.Context, userID string, from, to time.Time) (*domain.Dashboard, error) {
	from, to, err := normalizePeriod(from, to)
	if err != nil {
		return nil, err
	}

	wallets, err := s.walletRepo.ListWalletsByOwner(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load wallets for dashboard", slog.String("user_id", userID))
		return nil, err
	}
	txns, err := s.collectTransactions(ctx, portsrepo.TransactionQuery{OwnerID: userID, From: &from, To: &to})
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for dashboard", slog.String("user_id", userID))
		return nil, err
	}

	dashboard := &domain.Dashboard{
		From:               from,
		To:                 domain.StartOfDay(to),
		TotalBalance:       decimal.Zero,
		Wallets:            make([]domain.WalletBalance, 0, len(wallets)),
		TotalIncome:        decimal.Zero,
		TotalExpense:       decimal.Zero,
		TransactionCount:   len(txns),
		RecentTransactions: make([]domain.Transaction, 0, RecentTransactionCount),
	}
	for _, w := range wallets {
		dashboard.TotalBalance = dashboard.TotalBalance.Add(w.Balance)
		dashboard.Wallets = append(dashboard.Wallets, domain.WalletBalance{
			WalletID:   w.WalletID,
			Name:       w.Name,
			WalletType: w.WalletType,
			Balance:    w.Balance,
		})
	}
	for i, txn := range txns {
		switch txn.TransactionType {
		case domain.Income:
			dashboard.TotalIncome = dashboard.TotalIncome.Add(txn.Amount)
		case domain.Expense:
			dashboard.TotalExpense = dashboard.TotalExpense.Add(txn.Amount)
		}
		if i < RecentTransactionCount {
			dashboard.RecentTransactions = append(dashboard.RecentTransactions, txn)
		}
	}
	dashboard.Net = dashboard.TotalIncome.Sub(dashboard.TotalExpense)

	s.LogDebug(ctx, "Dashboard generated",
		slog.String("user_id", userID),
		slog.Int("transactions", len(txns)))
	return dashboard, nil
}

// GetCategoryBreakdown groups the income or expenses of a period by category, largest first.
func (s *reportingService) GetCategoryBreakdown(ctx context.Context, userID string, txnType domain.TransactionType, from, to time.Time) (*domain.CategoryBreakdown, error) {
	if txnType != domain.Income && txnType != domain.Expense {
		return nil, fmt.Errorf("%w: breakdown is only available for INCOME or EXPENSE, got '%s'", apperrors.ErrValidation, txnType)
	}
	from, to, err := normalizePeriod(from, to)
	if err != nil {
		return nil, err
	}

	txns, err := s.collectTransactions(ctx, portsrepo.TransactionQuery{OwnerID: userID, TransactionType: txnType, From: &from, To: &to})
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for category breakdown", slog.String("user_id", userID))
		return nil, err
	}

	rows := make(map[domain.Category]*domain.CategoryAmount)
	total := decimal.Zero
	for _, txn := range txns {
		row, ok := rows[txn.Category]
		if !ok {
			row = &domain.CategoryAmount{Category: txn.Category, Total: decimal.Zero}
			rows[txn.Category] = row
		}
		row.Total = row.Total.Add(txn.Amount)
		row.Count++
		total = total.Add(txn.Amount)
	}

	breakdown := &domain.CategoryBreakdown{
		TransactionType: txnType,
		From:            from,
		To:              domain.StartOfDay(to),
		Total:           total,
		Categories:      make([]domain.CategoryAmount, 0, len(rows)),
	}
	hundred := decimal.NewFromInt(100)
	for _, category := range domain.AllCategories {
		row, ok := rows[category]
		if !ok {
			continue
		}
		row.Percentage = decimal.Zero
		if total.IsPositive() {
			row.Percentage = row.Total.Mul(hundred).Div(total).Round(2)
		}
		breakdown.Categories = append(breakdown.Categories, *row)
	}
	sort.SliceStable(breakdown.Categories, func(i, j int) bool {
		return breakdown.Categories[i].Total.GreaterThan(breakdown.Categories[j].Total)
	})
	return breakdown, nil
}

// GetCalendar returns one entry per day of the month, including days without activity.
func (s *reportingService) GetCalendar(ctx context.Context, userID string, year int, month time.Month) (*domain.Calendar, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", apperrors.ErrValidation)
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	to := endOfDay(last)

	txns, err := s.collectTransactions(ctx, portsrepo.TransactionQuery{OwnerID: userID, From: &first, To: &to})
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for calendar", slog.String("user_id", userID))
		return nil, err
	}

	days := make([]domain.DaySummary, last.Day())
	for i := range days {
		days[i] = domain.DaySummary{
			Date:    first.AddDate(0, 0, i),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
			Net:     decimal.Zero,
		}
	}
	for _, txn := range txns {
		day := &days[txn.Date.UTC().Day()-1]
		day.Count++
		switch txn.TransactionType {
		case domain.Income:
			day.Income = day.Income.Add(txn.Amount)
		case domain.Expense:
			day.Expense = day.Expense.Add(txn.Amount)
		}
		day.Net = day.Income.Sub(day.Expense)
	}
	return &domain.Calendar{Year: year, Month: month, Days: days}, nil
}

// collectTransactions reads every page of query.
func (s *reportingService) collectTransactions(ctx context.Context, query portsrepo.TransactionQuery) ([]domain.Transaction, error) {
	query.Limit = pagination.MaxLimit
	var all []domain.Transaction
	for {
		page, next, err := s.txnRepo.ListTransactions(ctx, query)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if next == nil {
			return all, nil
		}
		query.NextToken = next
	}
}

// normalizePeriod widens [from, to] to whole UTC days.
func normalizePeriod(from, to time.Time) (time.Time, time.Time, error) {
	if from.IsZero() || to.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: report period requires 'from' and 'to'", apperrors.ErrValidation)
	}
	start, end := domain.StartOfDay(from), endOfDay(to)
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: 'to' is before 'from'", apperrors.ErrValidation)
	}
	return start, end, nil
}
