package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetbook/budget_book_app/internal/apperrors"
	"github.com/budgetbook/budget_book_app/internal/core/domain"
	portsrepo "github.com/budgetbook/budget_book_app/internal/core/ports/repositories"
	portssvc "github.com/budgetbook/budget_book_app/internal/core/ports/services"
	"github.com/budgetbook/budget_book_app/internal/dto"
	"github.com/budgetbook/budget_book_app/internal/middleware"
	"github.com/budgetbook/budget_book_app/internal/utils"
)

type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a new user. Balances, aggregates, and the budget
// profile all start at zero.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userRepo.FindUserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: username %q is already taken", apperrors.ErrDuplicate, req.Username)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	newUserID := uuid.NewString()
	user := domain.User{
		UserID:       newUserID,
		Username:     req.Username,
		PasswordHash: passwordHash,
		Name:         req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User created", slog.String("user_id", newUserID))
	return &user, nil
}

// GetUserByID retrieves a user with their current balances.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username for the login path.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// UpdateUser amends profile fields. The percentage splits must stay within
// [0, 100] and sum to at most 100, otherwise the monthly allocations would
// overcommit the income.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s for update: %w", userID, err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.MonthlyIncome != nil {
		if req.MonthlyIncome.IsNegative() {
			return nil, fmt.Errorf("%w: monthly income cannot be negative", apperrors.ErrValidation)
		}
		user.MonthlyIncome = *req.MonthlyIncome
	}
	if req.NeedsPercent != nil {
		user.NeedsPercent = *req.NeedsPercent
	}
	if req.WantsPercent != nil {
		user.WantsPercent = *req.WantsPercent
	}
	if req.InvestmentsPercent != nil {
		user.InvestmentsPercent = *req.InvestmentsPercent
	}
	if err := validatePercentSplits(user.NeedsPercent, user.WantsPercent, user.InvestmentsPercent); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user.LastUpdatedAt = now
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}

	logger.Info("User profile updated", slog.String("user_id", userID))
	return user, nil
}

var oneHundred = decimal.NewFromInt(100)

func validatePercentSplits(needs, wants, investments decimal.Decimal) error {
	for _, p := range []decimal.Decimal{needs, wants, investments} {
		if p.IsNegative() || p.GreaterThan(oneHundred) {
			return fmt.Errorf("%w: percent splits must be between 0 and 100", apperrors.ErrValidation)
		}
	}
	if needs.Add(wants).Add(investments).GreaterThan(oneHundred) {
		return fmt.Errorf("%w: percent splits cannot sum above 100", apperrors.ErrValidation)
	}
	return nil
}
