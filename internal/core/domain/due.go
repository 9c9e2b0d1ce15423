package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DueType indicates whether the money is owed by the user or to the user.
type DueType string

const (
	Payable    DueType = "PAYABLE"
	Receivable DueType = "RECEIVABLE"
)

// Valid reports whether the due type is one of the known values.
func (t DueType) Valid() bool {
	return t == Payable || t == Receivable
}

// DueStatus indicates the settlement state of a due.
type DueStatus string

const (
	DuePending DueStatus = "PENDING"
	DuePaid    DueStatus = "PAID"
)

// Valid reports whether the due status is one of the known values.
func (s DueStatus) Valid() bool {
	return s == DuePending || s == DuePaid
}

// TransferAccountType names the destination a settlement materializes into.
type TransferAccountType string

const (
	TransferSavings       TransferAccountType = "SAVINGS"
	TransferMiscellaneous TransferAccountType = "MISCELLANEOUS"
	TransferNeed          TransferAccountType = "NEED"
	TransferWant          TransferAccountType = "WANT"
)

// Valid reports whether the destination is one of the known values.
func (t TransferAccountType) Valid() bool {
	switch t {
	case TransferSavings, TransferMiscellaneous, TransferNeed, TransferWant:
		return true
	}
	return false
}

// IsExpenseCategory reports whether the destination is an expense-book
// category rather than a balance-carrying account.
func (t TransferAccountType) IsExpenseCategory() bool {
	return t == TransferNeed || t == TransferWant
}

// Due represents money owed by (payable) or to (receivable) the user.
// Invariant: TransferAccountType/TransferAccountID are non-nil iff the due
// is PAID; the due holds the forward pointer to the ledger entry that
// materialized its settlement.
type Due struct {
	DueID               int64                `json:"dueID"`
	UserID              string               `json:"userID"`
	Amount              decimal.Decimal      `json:"amount"` // Positive value
	Description         string               `json:"description"`
	DueDate             time.Time            `json:"dueDate"`
	DueType             DueType              `json:"dueType"`
	DueStatus           DueStatus            `json:"dueStatus"`
	TransferAccountType *TransferAccountType `json:"transferAccountType,omitempty"`
	TransferAccountID   *int64               `json:"transferAccountID,omitempty"`
	AuditFields
}

// IsSettled reports whether the due carries a materialized settlement.
func (d *Due) IsSettled() bool {
	return d.DueStatus == DuePaid && d.TransferAccountID != nil && d.TransferAccountType != nil
}

// SettlementEntryType derives the ledger entry direction for a settlement:
// paying a due moves money out, receiving one moves money in.
func SettlementEntryType(t DueType) EntryType {
	if t == Payable {
		return EntryOut
	}
	return EntryIn
}

// SettlementBalanceEffect is the signed effect a settlement of the given
// type and amount has on a balance-carrying destination account.
func SettlementBalanceEffect(t DueType, amount decimal.Decimal) decimal.Decimal {
	if t == Payable {
		return amount.Neg()
	}
	return amount
}

// AggregateDelta builds the BalanceDeltas touching only the aggregate due
// total matching the due type.
func AggregateDelta(t DueType, amount decimal.Decimal) BalanceDeltas {
	if t == Payable {
		return BalanceDeltas{DuePayable: amount}
	}
	return BalanceDeltas{DueReceivable: amount}
}
