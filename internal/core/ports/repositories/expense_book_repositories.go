package repositories

import (
	"context"
	"time"

	"github.com/budgetbook/budget_book_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ExpenseBookReader defines read operations for expense book data
type ExpenseBookReader interface {
	// FindBookByMonth retrieves the book for the given month (first-of-month UTC).
	FindBookByMonth(ctx context.Context, userID string, month time.Time) (*domain.ExpenseBook, error)

	// ListBooksByUser retrieves the user's books, most recent month first.
	ListBooksByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.ExpenseBook, error)
}

// ExpenseBookWriter defines write operations for expense book data
type ExpenseBookWriter interface {
	// GetOrCreateBookForUpdate resolves the book for the given month, creating
	// it with the user's current income/split snapshot when absent, and locks
	// its row. Must be called within a transaction.
	GetOrCreateBookForUpdate(ctx context.Context, tx pgx.Tx, userID string, month time.Time, now time.Time) (*domain.ExpenseBook, error)

	// ApplySpendingsDelta adjusts totalSpendings by the signed delta. Returns
	// false when the book no longer exists.
	ApplySpendingsDelta(ctx context.Context, tx pgx.Tx, bookID int64, delta decimal.Decimal, updatedBy string, now time.Time) (bool, error)
}

// ExpenseBookRepositoryFacade combines the expense book interfaces
type ExpenseBookRepositoryFacade interface {
	ExpenseBookReader
	ExpenseBookWriter
}

// ExpenseBookRepositoryWithTx extends ExpenseBookRepositoryFacade with
// transaction capabilities
type ExpenseBookRepositoryWithTx interface {
	ExpenseBookRepositoryFacade
	TransactionManager
}
