package models

import (
	"github.com/shopspring/decimal"
)

// LedgerEntry represents a row in one of the per-category ledger tables
// (savings_entries, miscellaneous_entries, need_entries, want_entries).
// BookID is only populated for the expense tables.
type LedgerEntry struct {
	EntryID   int64           `db:"entry_id"`
	UserID    string          `db:"user_id"`
	Amount    decimal.Decimal `db:"amount"`
	EntryName string          `db:"entry_name"`
	EntryType string          `db:"entry_type"`
	DueType   *string         `db:"due_type"`
	BookID    *int64          `db:"book_id"`
	AuditFields
}
