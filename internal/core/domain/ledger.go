package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates the direction of a ledger entry.
type EntryType string

const (
	EntryIn  EntryType = "IN"
	EntryOut EntryType = "OUT"
)

// Valid reports whether the entry type is one of the known values.
func (t EntryType) Valid() bool {
	return t == EntryIn || t == EntryOut
}

// Reverse flips the direction of an entry.
func (t EntryType) Reverse() EntryType {
	if t == EntryIn {
		return EntryOut
	}
	return EntryIn
}

// LedgerEntry is the common shape of a row in any destination ledger table
// (savings, miscellaneous, need, want). Entries created by settlement carry
// the DueType tag; need/want entries carry the owning expense book id.
// The entry has no back-pointer to its due.
type LedgerEntry struct {
	EntryID   int64           `json:"entryID"`
	UserID    string          `json:"userID"`
	Amount    decimal.Decimal `json:"amount"` // Positive value
	EntryName string          `json:"entryName"`
	EntryType EntryType       `json:"entryType"`
	DueType   *DueType        `json:"dueType,omitempty"`
	BookID    *int64          `json:"bookID,omitempty"`
	AuditFields
}

// LedgerEntryUpdate is an in-place rewrite of a settled entry, issued by the
// due editor in lock-step with its owning due. CreatedAt is preserved.
type LedgerEntryUpdate struct {
	Amount    decimal.Decimal
	EntryName string
	EntryType EntryType
	DueType   DueType
	UpdatedBy string
	UpdatedAt time.Time
}
