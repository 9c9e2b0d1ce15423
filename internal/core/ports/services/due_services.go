package services

import (
	"context"

	"github.com/budgetbook/budget_book_app/internal/core/domain"
	"github.com/budgetbook/budget_book_app/internal/dto"
)

// DueSvcFacade exposes the due lifecycle: creation, listing, the settlement
// state machine, edits, and removal. Every operation is scoped to the
// calling user; dues owned by someone else surface as not found.
type DueSvcFacade interface {
	// CreateDue records a new pending due and grows the matching aggregate
	// (duePayable or dueReceivable) by its amount.
	CreateDue(ctx context.Context, userID string, req dto.CreateDueRequest) (*domain.Due, error)

	// GetDueByID retrieves a single due owned by the user.
	GetDueByID(ctx context.Context, userID string, dueID int64) (*domain.Due, error)

	// ListDues retrieves a paginated list of the user's dues.
	ListDues(ctx context.Context, userID string, params dto.ListDuesParams) (*dto.ListDuesResponse, error)

	// SetDueStatus toggles a due between PENDING and PAID, materializing or
	// reversing its settlement in the destination account.
	SetDueStatus(ctx context.Context, userID string, dueID int64, req dto.SetDueStatusRequest) (*domain.Due, error)

	// EditDue amends amount/description/dueDate/dueType, re-deriving every
	// balance delta from the due's current status and destination.
	EditDue(ctx context.Context, userID string, dueID int64, req dto.EditDueRequest) (*domain.Due, error)

	// DeleteDue removes a due, reversing its settlement side effects first.
	DeleteDue(ctx context.Context, userID string, dueID int64) error
}
