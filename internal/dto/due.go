package dto

import (
	"time"

	"github.com/budgetbook/budget_book_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDueRequest is the payload for creating a new (pending) due.
type CreateDueRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required,min=1,max=100"`
	DueDate     time.Time       `json:"dueDate" binding:"required,futuredate"`
	DueType     domain.DueType  `json:"dueType" binding:"required,oneof=PAYABLE RECEIVABLE"`
}

// EditDueRequest is the payload for amending an existing due. All fields are
// required; the editor re-derives every balance delta from them.
type EditDueRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required,min=1,max=100"`
	DueDate     time.Time       `json:"dueDate" binding:"required,futuredate"`
	DueType     domain.DueType  `json:"dueType" binding:"required,oneof=PAYABLE RECEIVABLE"`
}

// SetDueStatusRequest is the payload for toggling a due between PENDING and
// PAID. Destination is required when settling (PENDING -> PAID).
type SetDueStatusRequest struct {
	TargetStatus domain.DueStatus            `json:"targetStatus" binding:"required,oneof=PENDING PAID"`
	Destination  *domain.TransferAccountType `json:"destination,omitempty" binding:"omitempty,oneof=SAVINGS MISCELLANEOUS NEED WANT"`
}

// ListDuesParams holds query parameters for listing dues.
type ListDuesParams struct {
	Limit     int               `form:"limit"`
	NextToken *string           `form:"nextToken"`
	Status    *domain.DueStatus `form:"status" binding:"omitempty,oneof=PENDING PAID"`
}

// DueResponse is the wire representation of a due.
type DueResponse struct {
	DueID               int64                       `json:"dueID"`
	Amount              decimal.Decimal             `json:"amount"`
	Description         string                      `json:"description"`
	DueDate             time.Time                   `json:"dueDate"`
	DueType             domain.DueType              `json:"dueType"`
	DueStatus           domain.DueStatus            `json:"dueStatus"`
	TransferAccountType *domain.TransferAccountType `json:"transferAccountType,omitempty"`
	TransferAccountID   *int64                      `json:"transferAccountID,omitempty"`
	CreatedAt           time.Time                   `json:"createdAt"`
	LastUpdatedAt       time.Time                   `json:"lastUpdatedAt"`
}

// ToDueResponse converts a domain due to its response DTO.
func ToDueResponse(d *domain.Due) DueResponse {
	return DueResponse{
		DueID:               d.DueID,
		Amount:              d.Amount,
		Description:         d.Description,
		DueDate:             d.DueDate,
		DueType:             d.DueType,
		DueStatus:           d.DueStatus,
		TransferAccountType: d.TransferAccountType,
		TransferAccountID:   d.TransferAccountID,
		CreatedAt:           d.CreatedAt,
		LastUpdatedAt:       d.LastUpdatedAt,
	}
}

// ToDueResponses converts a slice of domain dues.
func ToDueResponses(dues []domain.Due) []DueResponse {
	out := make([]DueResponse, len(dues))
	for i := range dues {
		out[i] = ToDueResponse(&dues[i])
	}
	return out
}

// ListDuesResponse is the paginated due listing payload.
type ListDuesResponse struct {
	Dues      []DueResponse `json:"dues"`
	NextToken *string       `json:"nextToken,omitempty"`
}
