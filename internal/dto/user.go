package dto

import (
	"time"

	"github.com/budgetbook/budget_book_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateUserRequest is the registration payload.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,max=100"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued JWT.
type LoginResponse struct {
	Token string `json:"token"`
}

// UpdateUserRequest amends profile fields; nil fields are left untouched.
type UpdateUserRequest struct {
	Name               *string          `json:"name,omitempty" binding:"omitempty,max=100"`
	MonthlyIncome      *decimal.Decimal `json:"monthlyIncome,omitempty"`
	NeedsPercent       *decimal.Decimal `json:"needsPercent,omitempty"`
	WantsPercent       *decimal.Decimal `json:"wantsPercent,omitempty"`
	InvestmentsPercent *decimal.Decimal `json:"investmentsPercent,omitempty"`
}

// UserResponse is the balances summary for the account holder.
type UserResponse struct {
	UserID               string          `json:"userID"`
	Username             string          `json:"username"`
	Name                 string          `json:"name"`
	MonthlyIncome        decimal.Decimal `json:"monthlyIncome"`
	NeedsPercent         decimal.Decimal `json:"needsPercent"`
	WantsPercent         decimal.Decimal `json:"wantsPercent"`
	InvestmentsPercent   decimal.Decimal `json:"investmentsPercent"`
	SavingsBalance       decimal.Decimal `json:"savingsBalance"`
	InvestmentsBalance   decimal.Decimal `json:"investmentsBalance"`
	MiscellaneousBalance decimal.Decimal `json:"miscellaneousBalance"`
	DuePayable           decimal.Decimal `json:"duePayable"`
	DueReceivable        decimal.Decimal `json:"dueReceivable"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain user to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:               u.UserID,
		Username:             u.Username,
		Name:                 u.Name,
		MonthlyIncome:        u.MonthlyIncome,
		NeedsPercent:         u.NeedsPercent,
		WantsPercent:         u.WantsPercent,
		InvestmentsPercent:   u.InvestmentsPercent,
		SavingsBalance:       u.SavingsBalance,
		InvestmentsBalance:   u.InvestmentsBalance,
		MiscellaneousBalance: u.MiscellaneousBalance,
		DuePayable:           u.DuePayable,
		DueReceivable:        u.DueReceivable,
		CreatedAt:            u.CreatedAt,
	}
}
