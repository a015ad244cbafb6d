package dto

import "time"

// DashboardParams defines query parameters for the dashboard. Defaults to the current month.
type DashboardParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To   *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}

// CategoryBreakdownParams defines query parameters for the category breakdown.
type CategoryBreakdownParams struct {
	TransactionType string     `form:"type,default=EXPENSE" binding:"oneof=INCOME EXPENSE"`
	From            *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To              *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}

// CalendarParams selects a month. Zero values mean the current month.
type CalendarParams struct {
	Year  int `form:"year" binding:"omitempty,min=1970,max=9999"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}
