package services

import (
	"context"

	"github.com/budgetbook/budget_book_app/internal/core/domain"
	"github.com/budgetbook/budget_book_app/internal/dto"
)

// UserSvcFacade exposes user account operations.
type UserSvcFacade interface {
	// CreateUser registers a new user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// GetUserByID retrieves a user with their current balances.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username (login path).
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// UpdateUser amends profile fields (name, income, percent splits).
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)
}
