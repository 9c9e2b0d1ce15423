package dto

import (
	"time"

	"github.com/budgetbook/budget_book_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseBookResponse is the wire representation of a monthly expense book,
// including the allocation amounts derived from the snapshotted splits.
type ExpenseBookResponse struct {
	BookID                int64           `json:"bookID"`
	Month                 time.Time       `json:"month"`
	TotalSpendings        decimal.Decimal `json:"totalSpendings"`
	MonthlyIncome         decimal.Decimal `json:"monthlyIncome"`
	NeedsPercent          decimal.Decimal `json:"needsPercent"`
	WantsPercent          decimal.Decimal `json:"wantsPercent"`
	InvestmentsPercent    decimal.Decimal `json:"investmentsPercent"`
	NeedsAllocation       decimal.Decimal `json:"needsAllocation"`
	WantsAllocation       decimal.Decimal `json:"wantsAllocation"`
	InvestmentsAllocation decimal.Decimal `json:"investmentsAllocation"`
}

// ToExpenseBookResponse converts a domain book to its response DTO.
func ToExpenseBookResponse(b *domain.ExpenseBook) ExpenseBookResponse {
	return ExpenseBookResponse{
		BookID:                b.BookID,
		Month:                 b.Month,
		TotalSpendings:        b.TotalSpendings,
		MonthlyIncome:         b.MonthlyIncome,
		NeedsPercent:          b.NeedsPercent,
		WantsPercent:          b.WantsPercent,
		InvestmentsPercent:    b.InvestmentsPercent,
		NeedsAllocation:       b.NeedsAllocation(),
		WantsAllocation:       b.WantsAllocation(),
		InvestmentsAllocation: b.InvestmentsAllocation(),
	}
}

// ToExpenseBookResponses converts a slice of domain books.
func ToExpenseBookResponses(books []domain.ExpenseBook) []ExpenseBookResponse {
	out := make([]ExpenseBookResponse, len(books))
	for i := range books {
		out[i] = ToExpenseBookResponse(&books[i])
	}
	return out
}

// ListExpenseBooksParams holds query parameters for listing books.
type ListExpenseBooksParams struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// ListExpenseBooksResponse is the book listing payload.
type ListExpenseBooksResponse struct {
	Books []ExpenseBookResponse `json:"books"`
}
