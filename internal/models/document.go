// Package models describes how domain records are laid out as store documents.
package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Collection names.
const (
	WalletsCollection      = "wallets"
	TransactionsCollection = "transactions"
)

// Fields shared by every collection.
const (
	FieldOwnerID       = "ownerId"
	FieldCreatedAt     = "createdAt"
	FieldCreatedBy     = "createdBy"
	FieldLastUpdatedAt = "lastUpdatedAt"
	FieldLastUpdatedBy = "lastUpdatedBy"
)

// TimeLayout is fixed width so lexical order of encoded values equals chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTime encodes t in UTC using TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime decodes a value written by FormatTime.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored time '%s': %w", s, err)
	}
	return t, nil
}

// FormatDecimal encodes d canonically.
func FormatDecimal(d decimal.Decimal) string {
	return d.String()
}

// ParseDecimal decodes a value written by FormatDecimal.
func ParseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid stored decimal '%s': %w", s, err)
	}
	return d, nil
}
