package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a user row, carrying the budgeting profile and the
// persisted aggregate balances alongside the authentication fields.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Name         string `db:"name"`

	MonthlyIncome      decimal.Decimal `db:"monthly_income"`
	NeedsPercent       decimal.Decimal `db:"needs_percent"`
	WantsPercent       decimal.Decimal `db:"wants_percent"`
	InvestmentsPercent decimal.Decimal `db:"investments_percent"`

	SavingsBalance       decimal.Decimal `db:"savings_balance"`
	InvestmentsBalance   decimal.Decimal `db:"investments_balance"`
	MiscellaneousBalance decimal.Decimal `db:"miscellaneous_balance"`
	DuePayable           decimal.Decimal `db:"due_payable"`
	DueReceivable        decimal.Decimal `db:"due_receivable"`

	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
