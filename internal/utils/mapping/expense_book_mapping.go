package mapping

import (
	"github.com/budgetbook/budget_book_app/internal/core/domain"
	"github.com/budgetbook/budget_book_app/internal/models"
)

// ToDomainExpenseBook converts a model ExpenseBook to a domain ExpenseBook
func ToDomainExpenseBook(m models.ExpenseBook) domain.ExpenseBook {
	return domain.ExpenseBook{
		BookID:             m.BookID,
		UserID:             m.UserID,
		Month:              m.Month,
		TotalSpendings:     m.TotalSpendings,
		MonthlyIncome:      m.MonthlyIncome,
		NeedsPercent:       m.NeedsPercent,
		WantsPercent:       m.WantsPercent,
		InvestmentsPercent: m.InvestmentsPercent,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseBookSlice converts a slice of model ExpenseBooks to domain ones
func ToDomainExpenseBookSlice(ms []models.ExpenseBook) []domain.ExpenseBook {
	ds := make([]domain.ExpenseBook, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpenseBook(m)
	}
	return ds
}
