package pgsql

import (
	portsrepo "github.com/budgetbook/budget_book_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	dueRepo := newPgxDueRepository(dbPool)
	expenseBookRepo := newPgxExpenseBookRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	destinations := NewDestinationRegistry(expenseBookRepo)

	return portsrepo.RepositoryProvider{
		DueRepo:         dueRepo,
		UserRepo:        userRepo,
		ExpenseBookRepo: expenseBookRepo,
		LedgerRepo:      ledgerRepo,
		Destinations:    destinations,
	}
}
