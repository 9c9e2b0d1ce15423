package repositories

import (
	"context"
	"time"

	"github.com/budgetbook/budget_book_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their unique username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByIDForUpdate retrieves a user and locks their row for update.
	// Must be called within a transaction; settlement reads balances through
	// this so delta computation never sees a stale value.
	FindUserByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates profile fields (name, income, percent splits).
	UpdateUser(ctx context.Context, user domain.User) error

	// ApplyBalanceDeltas adjusts the user's running balances by the given
	// signed deltas in a single statement within the caller's transaction.
	ApplyBalanceDeltas(ctx context.Context, tx pgx.Tx, userID string, deltas domain.BalanceDeltas, updatedBy string, now time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
