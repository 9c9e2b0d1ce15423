package services

import (
	"context"
	"fmt"
	"time"

	"github.com/budgetbook/budget_book_app/internal/core/domain"
	portsrepo "github.com/budgetbook/budget_book_app/internal/core/ports/repositories"
	portssvc "github.com/budgetbook/budget_book_app/internal/core/ports/services"
	"github.com/budgetbook/budget_book_app/internal/dto"
)

type expenseBookService struct {
	bookRepo portsrepo.ExpenseBookRepositoryWithTx
}

// NewExpenseBookService creates a new ExpenseBookService.
func NewExpenseBookService(bookRepo portsrepo.ExpenseBookRepositoryWithTx) portssvc.ExpenseBookSvcFacade {
	return &expenseBookService{bookRepo: bookRepo}
}

// Ensure expenseBookService implements the portssvc.ExpenseBookSvcFacade interface
var _ portssvc.ExpenseBookSvcFacade = (*expenseBookService)(nil)

// GetCurrentBook retrieves this month's book, creating it with a snapshot of
// the user's current income and splits when the month has none yet. Past
// months are never backfilled; only the current one materializes on read.
func (s *expenseBookService) GetCurrentBook(ctx context.Context, userID string) (*domain.ExpenseBook, error) {
	now := time.Now().UTC()

	tx, err := s.bookRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin expense book lookup: %w", err)
	}
	defer s.bookRepo.Rollback(ctx, tx)

	book, err := s.bookRepo.GetOrCreateBookForUpdate(ctx, tx, userID, domain.MonthStart(now), now)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current expense book: %w", err)
	}

	if err := s.bookRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit expense book lookup: %w", err)
	}
	return book, nil
}

func (s *expenseBookService) GetBookForMonth(ctx context.Context, userID string, month time.Time) (*domain.ExpenseBook, error) {
	book, err := s.bookRepo.FindBookByMonth(ctx, userID, domain.MonthStart(month))
	if err != nil {
		return nil, fmt.Errorf("failed to get expense book: %w", err)
	}
	return book, nil
}

func (s *expenseBookService) ListBooks(ctx context.Context, userID string, params dto.ListExpenseBooksParams) ([]domain.ExpenseBook, error) {
	books, err := s.bookRepo.ListBooksByUser(ctx, userID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense books: %w", err)
	}
	return books, nil
}
