package services_test

import (
	"time"

	"github.com/SscSPs/monetra/internal/apperrors"
	"github.com/SscSPs/monetra/internal/core/domain"
	portssvc "github.com/SscSPs/monetra/internal/core/ports/services"
	"github.com/SscSPs/monetra/internal/core/services"
	"github.com/SscSPs/monetra/internal/dto"
)

func (s *LedgerTestSuite) recordOn(walletID string, txnType domain.TransactionType, category domain.Category, amount int64, day time.Time) {
	_, err := s.txns.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		WalletID:        walletID,
		Amount:          dec(amount),
		TransactionType: txnType,
		Category:        category,
		Date:            dto.NewDate(day),
	}, owner)
	s.Require().NoError(err)
}

func (s *LedgerTestSuite) seedReportData() (bank, savings *domain.Wallet) {
	bank = s.createWallet("Bank", domain.BankAccount, 1000, nil)
	savings = s.createWallet("Savings", domain.Savings, 0, nil)

	may1 := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	may3 := time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)

	s.recordOn(bank.WalletID, domain.Income, domain.CategorySalary, 500, may1)
	s.recordOn(bank.WalletID, domain.Expense, domain.CategoryFood, 30, may1)
	s.recordOn(bank.WalletID, domain.Expense, domain.CategoryFood, 20, may3)
	s.recordOn(bank.WalletID, domain.Expense, domain.CategoryHousing, 150, may3)
	s.recordOn(bank.WalletID, domain.Expense, domain.CategoryFood, 999, april)

	_, err := s.txns.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		WalletID: bank.WalletID, ToWalletID: savings.WalletID, Amount: dec(100),
		TransactionType: domain.Transfer, Category: domain.CategoryOther, Date: dto.NewDate(may3),
	}, owner)
	s.Require().NoError(err)
	return bank, savings
}

func (s *LedgerTestSuite) reporting() portssvc.ReportingService {
	return services.NewReportingService(s.repos.WalletRepo, s.repos.TransactionRepo)
}

func (s *LedgerTestSuite) TestDashboard() {
	s.seedReportData()

	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	dashboard, err := s.reporting().GetDashboard(s.ctx, owner, from, to)
	s.Require().NoError(err)

	// 1000 + 500 - 30 - 20 - 150 - 999, transfers move money without changing the total.
	s.True(dec(301).Equal(dashboard.TotalBalance), "total balance: %s", dashboard.TotalBalance)
	s.Len(dashboard.Wallets, 2)
	s.True(dec(500).Equal(dashboard.TotalIncome))
	s.True(dec(200).Equal(dashboard.TotalExpense), "transfers and other periods are excluded")
	s.True(dec(300).Equal(dashboard.Net))
	s.Equal(5, dashboard.TransactionCount)
	s.Len(dashboard.RecentTransactions, services.RecentTransactionCount)
	s.Equal(time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC), dashboard.RecentTransactions[0].Date)

	_, err = s.reporting().GetDashboard(s.ctx, owner, to, from)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerTestSuite) TestCategoryBreakdown() {
	s.seedReportData()

	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	breakdown, err := s.reporting().GetCategoryBreakdown(s.ctx, owner, domain.Expense, from, to)
	s.Require().NoError(err)

	s.True(dec(200).Equal(breakdown.Total))
	s.Require().Len(breakdown.Categories, 2)
	s.Equal(domain.CategoryHousing, breakdown.Categories[0].Category)
	s.True(dec(75).Equal(breakdown.Categories[0].Percentage))
	s.Equal(domain.CategoryFood, breakdown.Categories[1].Category)
	s.Equal(2, breakdown.Categories[1].Count)
	s.True(dec(25).Equal(breakdown.Categories[1].Percentage))

	_, err = s.reporting().GetCategoryBreakdown(s.ctx, owner, domain.Transfer, from, to)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerTestSuite) TestCalendar() {
	s.seedReportData()

	calendar, err := s.reporting().GetCalendar(s.ctx, owner, 2026, time.May)
	s.Require().NoError(err)
	s.Require().Len(calendar.Days, 31)

	first := calendar.Days[0]
	s.Equal(2, first.Count)
	s.True(dec(500).Equal(first.Income))
	s.True(dec(30).Equal(first.Expense))
	s.True(dec(470).Equal(first.Net))

	third := calendar.Days[2]
	s.Equal(3, third.Count, "the transfer is counted")
	s.True(dec(170).Equal(third.Expense))
	s.True(dec(-170).Equal(third.Net))

	s.Zero(calendar.Days[1].Count)

	_, err = s.reporting().GetCalendar(s.ctx, owner, 2026, 13)
	s.ErrorIs(err, apperrors.ErrValidation)
}
