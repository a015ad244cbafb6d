package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/monetra/internal/core/domain"
	portssvc "github.com/SscSPs/monetra/internal/core/ports/services"
	"github.com/SscSPs/monetra/internal/dto"
	"github.com/SscSPs/monetra/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	now              func() time.Time
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// RegisterReportingRoutes registers routes related to financial reports
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/dashboard", h.getDashboard)
		reportingGroup.GET("/categories", h.getCategoryBreakdown)
		reportingGroup.GET("/calendar", h.getCalendar)
	}
}

// period resolves optional from/to query values. The default is the current month up to today.
func (h *reportingHandler) period(from, to *time.Time) (time.Time, time.Time) {
	now := h.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := domain.StartOfDay(now)
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}
	return start, end
}

// getDashboard godoc
// @Summary Dashboard summary
// @Description Total and per-wallet balances with income, expense and net for a period. Transfers are not counted as income or expense.
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param to query string false "End date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.Dashboard
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		abortUnauthorized(c, logger)
		return
	}

	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindingError(c, logger, err, "query parameters")
		return
	}
	from, to := h.period(params.From, params.To)

	logger.Info("Received request to generate dashboard",
		slog.String("from", from.Format(dto.DateLayout)),
		slog.String("to", to.Format(dto.DateLayout)))

	dashboard, err := h.reportingService.GetDashboard(c.Request.Context(), userID, from, to)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// getCategoryBreakdown godoc
// @Summary Category breakdown
// @Description Totals, counts and shares per category for income or expenses in a period
// @Tags reports
// @Produce json
// @Param type query string false "INCOME or EXPENSE" default(EXPENSE)
// @Param from query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param to query string false "End date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.CategoryBreakdown
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /reports/categories [get]
func (h *reportingHandler) getCategoryBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		abortUnauthorized(c, logger)
		return
	}

	var params dto.CategoryBreakdownParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindingError(c, logger, err, "query parameters")
		return
	}
	from, to := h.period(params.From, params.To)

	breakdown, err := h.reportingService.GetCategoryBreakdown(c.Request.Context(), userID, domain.TransactionType(params.TransactionType), from, to)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate category breakdown")
		return
	}

	logger.Debug("Category breakdown generated", slog.Int("categories", len(breakdown.Categories)))
	c.JSON(http.StatusOK, breakdown)
}

// getCalendar godoc
// @Summary Monthly calendar
// @Description Per-day income, expense, net and transaction count for one month
// @Tags reports
// @Produce json
// @Param year query int false "Year" default(current year)
// @Param month query int false "Month (1-12)" default(current month)
// @Success 200 {object} domain.Calendar
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /reports/calendar [get]
func (h *reportingHandler) getCalendar(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		abortUnauthorized(c, logger)
		return
	}

	var params dto.CalendarParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindingError(c, logger, err, "query parameters")
		return
	}
	now := h.now()
	year, month := now.Year(), now.Month()
	if params.Year != 0 {
		year = params.Year
	}
	if params.Month != 0 {
		month = time.Month(params.Month)
	}

	calendar, err := h.reportingService.GetCalendar(c.Request.Context(), userID, year, month)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate calendar")
		return
	}

	c.JSON(http.StatusOK, calendar)
}
