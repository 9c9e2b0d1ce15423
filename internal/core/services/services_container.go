package services

import (
	portsrepo "github.com/budgetbook/budget_book_app/internal/core/ports/repositories"
	portssvc "github.com/budgetbook/budget_book_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Due = NewDueService(repos.DueRepo, repos.UserRepo, repos.Destinations)
	container.ExpenseBook = NewExpenseBookService(repos.ExpenseBookRepo)
	container.Ledger = NewLedgerService(repos.LedgerRepo)

	return container
}
