package services

import (
	"context"
	"time"

	"github.com/budgetbook/budget_book_app/internal/core/domain"
	"github.com/budgetbook/budget_book_app/internal/dto"
)

// ExpenseBookSvcFacade exposes read access to the monthly expense books.
type ExpenseBookSvcFacade interface {
	// GetCurrentBook retrieves the current month's book, creating it with a
	// snapshot of the user's income and splits when absent.
	GetCurrentBook(ctx context.Context, userID string) (*domain.ExpenseBook, error)

	// GetBookForMonth retrieves the book for an arbitrary month.
	GetBookForMonth(ctx context.Context, userID string, month time.Time) (*domain.ExpenseBook, error)

	// ListBooks retrieves the user's books, most recent first.
	ListBooks(ctx context.Context, userID string, params dto.ListExpenseBooksParams) ([]domain.ExpenseBook, error)
}

// LedgerSvcFacade exposes read access to the balance-carrying ledgers.
type LedgerSvcFacade interface {
	// ListEntries retrieves a page of savings/miscellaneous entries.
	ListEntries(ctx context.Context, userID string, kind domain.TransferAccountType, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error)
}
