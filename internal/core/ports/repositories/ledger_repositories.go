package repositories

import (
	"context"

	"github.com/budgetbook/budget_book_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerDestination abstracts one of the places settlement money can land:
// the savings or miscellaneous account, or the current month's need/want
// expense categories. The settlement engine, due editor, and due remover all
// dispatch on this interface exactly once per operation instead of
// re-branching on the destination kind.
//
// Entry writers run inside the caller's transaction. Implementations backed
// by the expense book additionally maintain the book's totalSpendings as
// entries are inserted, rewritten, or deleted.
type LedgerDestination interface {
	// Kind names the destination.
	Kind() domain.TransferAccountType

	// AcceptsReceivable reports whether a RECEIVABLE due may settle here.
	// Expense categories only exist for payable dues.
	AcceptsReceivable() bool

	// RequiresFunds reports whether a payable settlement must be covered by
	// the destination's current balance.
	RequiresFunds() bool

	// AvailableFunds returns the balance funding a payable settlement, read
	// from the given (row-locked) user.
	AvailableFunds(user *domain.User) decimal.Decimal

	// SettlementDeltas maps a signed balance effect onto the user balance
	// field this destination owns. Expense categories return zero deltas:
	// their aggregation happens on the expense book, not the user row.
	SettlementDeltas(effect decimal.Decimal) domain.BalanceDeltas

	// InsertEntry writes the destination ledger row and returns its id.
	InsertEntry(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) (int64, error)

	// UpdateEntry rewrites an entry in place, preserving its CreatedAt.
	// Returns false when the entry no longer exists.
	UpdateEntry(ctx context.Context, tx pgx.Tx, entryID int64, userID string, update domain.LedgerEntryUpdate) (bool, error)

	// DeleteEntry removes an entry and returns the removed row, or nil when
	// the entry no longer exists.
	DeleteEntry(ctx context.Context, tx pgx.Tx, entryID int64, userID string) (*domain.LedgerEntry, error)
}

// DestinationRegistry resolves a LedgerDestination by kind.
type DestinationRegistry interface {
	For(kind domain.TransferAccountType) (LedgerDestination, error)
}

// LedgerReader defines read operations over the destination ledger tables
// for listing endpoints.
type LedgerReader interface {
	// ListEntriesByUser retrieves a paginated list of entries for the given
	// destination kind using token-based pagination.
	ListEntriesByUser(ctx context.Context, kind domain.TransferAccountType, userID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}
