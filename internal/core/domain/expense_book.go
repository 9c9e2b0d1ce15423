package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ExpenseBook is the per-user, per-month record aggregating need/want
// spending. Income and percent splits are snapshotted when the book is
// created so later profile edits don't rewrite history.
type ExpenseBook struct {
	BookID             int64           `json:"bookID"`
	UserID             string          `json:"userID"`
	Month              time.Time       `json:"month"` // First of month, 00:00 UTC
	TotalSpendings     decimal.Decimal `json:"totalSpendings"`
	MonthlyIncome      decimal.Decimal `json:"monthlyIncome"`
	NeedsPercent       decimal.Decimal `json:"needsPercent"`
	WantsPercent       decimal.Decimal `json:"wantsPercent"`
	InvestmentsPercent decimal.Decimal `json:"investmentsPercent"`
	AuditFields
}

// NeedsAllocation is the amount of the snapshotted income allocated to needs.
func (b *ExpenseBook) NeedsAllocation() decimal.Decimal {
	return b.MonthlyIncome.Mul(b.NeedsPercent).Div(oneHundred)
}

// WantsAllocation is the amount of the snapshotted income allocated to wants.
func (b *ExpenseBook) WantsAllocation() decimal.Decimal {
	return b.MonthlyIncome.Mul(b.WantsPercent).Div(oneHundred)
}

// InvestmentsAllocation is the amount of the snapshotted income allocated to investments.
func (b *ExpenseBook) InvestmentsAllocation() decimal.Decimal {
	return b.MonthlyIncome.Mul(b.InvestmentsPercent).Div(oneHundred)
}

// MonthStart truncates t to the first of its month at 00:00 UTC, the
// canonical key for expense books.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
