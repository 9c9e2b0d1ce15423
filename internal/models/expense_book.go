package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseBook represents a monthly expense book row. Income and split
// percentages are snapshotted from the user at creation time.
type ExpenseBook struct {
	BookID             int64           `db:"book_id"`
	UserID             string          `db:"user_id"`
	Month              time.Time       `db:"month"`
	TotalSpendings     decimal.Decimal `db:"total_spendings"`
	MonthlyIncome      decimal.Decimal `db:"monthly_income"`
	NeedsPercent       decimal.Decimal `db:"needs_percent"`
	WantsPercent       decimal.Decimal `db:"wants_percent"`
	InvestmentsPercent decimal.Decimal `db:"investments_percent"`
	AuditFields
}
