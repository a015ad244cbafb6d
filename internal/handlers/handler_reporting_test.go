package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/monetra/internal/apperrors"
	"github.com/SscSPs/monetra/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (suite *HandlerTestSuite) TestDashboard() {
	from, to := day(2026, 5, 1), day(2026, 5, 31)
	dashboard := &domain.Dashboard{From: from, To: to, TotalBalance: dec("301"), TransactionCount: 5}
	suite.mockReports.On("GetDashboard", mock.Anything, testUserID, from, to).Return(dashboard, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/reports/dashboard?from=2026-05-01&to=2026-05-31", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"totalBalance":"301"`)
}

func (suite *HandlerTestSuite) TestDashboard_InvalidPeriod() {
	from, to := day(2026, 5, 31), day(2026, 5, 1)
	suite.mockReports.On("GetDashboard", mock.Anything, testUserID, from, to).
		Return(nil, apperrors.ErrValidation).Once()

	w := suite.request(http.MethodGet, "/api/v1/reports/dashboard?from=2026-05-31&to=2026-05-01", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCategoryBreakdown_DefaultsToExpense() {
	from, to := day(2026, 5, 1), day(2026, 5, 31)
	suite.mockReports.On("GetCategoryBreakdown", mock.Anything, testUserID, domain.Expense, from, to).
		Return(&domain.CategoryBreakdown{TransactionType: domain.Expense}, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/reports/categories?from=2026-05-01&to=2026-05-31", "")
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/v1/reports/categories?type=TRANSFER", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCalendar() {
	suite.mockReports.On("GetCalendar", mock.Anything, testUserID, 2026, time.February).
		Return(&domain.Calendar{Year: 2026, Month: time.February}, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/reports/calendar?year=2026&month=2", "")
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/v1/reports/calendar?month=13", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}
