package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the aggregate account holder. All running balances live on this
// row and are mutated exclusively through BalanceDeltas applied while the
// row is locked.
type User struct {
	UserID               string          `json:"userID"` // Primary Key (UUID)
	Username             string          `json:"username"`
	Name                 string          `json:"name"`
	PasswordHash         string          `json:"-"`
	MonthlyIncome        decimal.Decimal `json:"monthlyIncome"`
	NeedsPercent         decimal.Decimal `json:"needsPercent"`
	WantsPercent         decimal.Decimal `json:"wantsPercent"`
	InvestmentsPercent   decimal.Decimal `json:"investmentsPercent"`
	SavingsBalance       decimal.Decimal `json:"savingsBalance"`
	InvestmentsBalance   decimal.Decimal `json:"investmentsBalance"`
	MiscellaneousBalance decimal.Decimal `json:"miscellaneousBalance"`
	DuePayable           decimal.Decimal `json:"duePayable"`
	DueReceivable        decimal.Decimal `json:"dueReceivable"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// BalanceDeltas is the set of signed adjustments one operation applies to a
// user's running balances. Zero fields are left untouched.
type BalanceDeltas struct {
	Savings       decimal.Decimal
	Miscellaneous decimal.Decimal
	Investments   decimal.Decimal
	DuePayable    decimal.Decimal
	DueReceivable decimal.Decimal
}

// IsZero reports whether the deltas would leave every balance unchanged.
func (d BalanceDeltas) IsZero() bool {
	return d.Savings.IsZero() &&
		d.Miscellaneous.IsZero() &&
		d.Investments.IsZero() &&
		d.DuePayable.IsZero() &&
		d.DueReceivable.IsZero()
}

// Add merges two delta sets field by field.
func (d BalanceDeltas) Add(other BalanceDeltas) BalanceDeltas {
	return BalanceDeltas{
		Savings:       d.Savings.Add(other.Savings),
		Miscellaneous: d.Miscellaneous.Add(other.Miscellaneous),
		Investments:   d.Investments.Add(other.Investments),
		DuePayable:    d.DuePayable.Add(other.DuePayable),
		DueReceivable: d.DueReceivable.Add(other.DueReceivable),
	}
}
