package repositories

import (
	"context"
	"time"

	"github.com/budgetbook/budget_book_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// DueReader defines read operations for due data
type DueReader interface {
	// FindDueByID retrieves a specific due by its identifier.
	FindDueByID(ctx context.Context, dueID int64) (*domain.Due, error)

	// FindDueByIDForUpdate retrieves a due and locks its row for the duration
	// of the transaction. Must be called within a transaction.
	FindDueByIDForUpdate(ctx context.Context, tx pgx.Tx, dueID int64) (*domain.Due, error)

	// ListDuesByUser retrieves a paginated list of dues for a user using
	// token-based pagination, optionally filtered by status.
	ListDuesByUser(ctx context.Context, userID string, limit int, nextToken *string, status *domain.DueStatus) ([]domain.Due, *string, error)
}

// DueWriter defines write operations for due data. All writers that
// participate in settlement run inside the caller's transaction.
type DueWriter interface {
	// SaveDue inserts a new pending due and returns its generated id.
	SaveDue(ctx context.Context, tx pgx.Tx, due domain.Due) (int64, error)

	// UpdateDueFields rewrites amount/description/dueDate/dueType on the due row.
	UpdateDueFields(ctx context.Context, tx pgx.Tx, due domain.Due) error

	// MarkDueSettled flips the due to PAID and records the forward pointer to
	// the ledger entry that materialized the settlement.
	MarkDueSettled(ctx context.Context, tx pgx.Tx, dueID int64, destination domain.TransferAccountType, entryID int64, updatedBy string, now time.Time) error

	// MarkDueUnsettled flips the due back to PENDING and clears the transfer
	// reference.
	MarkDueUnsettled(ctx context.Context, tx pgx.Tx, dueID int64, updatedBy string, now time.Time) error

	// DeleteDue removes the due row.
	DeleteDue(ctx context.Context, tx pgx.Tx, dueID int64) error
}

// DueRepositoryFacade combines all due-related repository interfaces
type DueRepositoryFacade interface {
	DueReader
	DueWriter
}

// DueRepositoryWithTx extends DueRepositoryFacade with transaction capabilities
type DueRepositoryWithTx interface {
	DueRepositoryFacade
	TransactionManager
}
