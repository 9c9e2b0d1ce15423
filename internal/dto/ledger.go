package dto

import (
	"time"

	"github.com/budgetbook/budget_book_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntryResponse is the wire representation of a ledger entry.
type LedgerEntryResponse struct {
	EntryID   int64            `json:"entryID"`
	Amount    decimal.Decimal  `json:"amount"`
	EntryName string           `json:"entryName"`
	EntryType domain.EntryType `json:"entryType"`
	DueType   *domain.DueType  `json:"dueType,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ToLedgerEntryResponses converts a slice of domain entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = LedgerEntryResponse{
			EntryID:   e.EntryID,
			Amount:    e.Amount,
			EntryName: e.EntryName,
			EntryType: e.EntryType,
			DueType:   e.DueType,
			CreatedAt: e.CreatedAt,
		}
	}
	return out
}

// ListLedgerEntriesParams holds query parameters for listing ledger entries.
type ListLedgerEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListLedgerEntriesResponse is the paginated entry listing payload.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}
