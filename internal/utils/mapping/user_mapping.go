package mapping

import (
	"github.com/budgetbook/budget_book_app/internal/core/domain"
	"github.com/budgetbook/budget_book_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:               d.UserID,
		Username:             d.Username,
		PasswordHash:         d.PasswordHash,
		Name:                 d.Name,
		MonthlyIncome:        d.MonthlyIncome,
		NeedsPercent:         d.NeedsPercent,
		WantsPercent:         d.WantsPercent,
		InvestmentsPercent:   d.InvestmentsPercent,
		SavingsBalance:       d.SavingsBalance,
		InvestmentsBalance:   d.InvestmentsBalance,
		MiscellaneousBalance: d.MiscellaneousBalance,
		DuePayable:           d.DuePayable,
		DueReceivable:        d.DueReceivable,
		AuditFields:          ToModelAuditFields(d.AuditFields),
		DeletedAt:            d.DeletedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:               m.UserID,
		Username:             m.Username,
		PasswordHash:         m.PasswordHash,
		Name:                 m.Name,
		MonthlyIncome:        m.MonthlyIncome,
		NeedsPercent:         m.NeedsPercent,
		WantsPercent:         m.WantsPercent,
		InvestmentsPercent:   m.InvestmentsPercent,
		SavingsBalance:       m.SavingsBalance,
		InvestmentsBalance:   m.InvestmentsBalance,
		MiscellaneousBalance: m.MiscellaneousBalance,
		DuePayable:           m.DuePayable,
		DueReceivable:        m.DueReceivable,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
		DeletedAt:            m.DeletedAt,
	}
}
