package services

import (
	"context"
	"time"

	"github.com/SscSPs/monetra/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// GetDashboard summarises balances and activity between from and to (inclusive days).
	GetDashboard(ctx context.Context, userID string, from, to time.Time) (*domain.Dashboard, error)

	// GetCategoryBreakdown groups income or expenses of a period by category.
	GetCategoryBreakdown(ctx context.Context, userID string, txnType domain.TransactionType, from, to time.Time) (*domain.CategoryBreakdown, error)

	// GetCalendar returns per-day totals for one month.
	GetCalendar(ctx context.Context, userID string, year int, month time.Month) (*domain.Calendar, error)
}
