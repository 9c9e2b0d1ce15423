package mapping

import (
	"github.com/budgetbook/budget_book_app/internal/core/domain"
	"github.com/budgetbook/budget_book_app/internal/models"
)

// ToModelDue converts a domain Due to a model Due
func ToModelDue(d domain.Due) models.Due {
	m := models.Due{
		DueID:       d.DueID,
		UserID:      d.UserID,
		Amount:      d.Amount,
		Description: d.Description,
		DueDate:     d.DueDate,
		DueType:     string(d.DueType),
		DueStatus:   string(d.DueStatus),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.TransferAccountType != nil {
		t := string(*d.TransferAccountType)
		m.TransferAccountType = &t
	}
	if d.TransferAccountID != nil {
		id := *d.TransferAccountID
		m.TransferAccountID = &id
	}
	return m
}

// ToDomainDue converts a model Due to a domain Due
func ToDomainDue(m models.Due) domain.Due {
	d := domain.Due{
		DueID:       m.DueID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		Description: m.Description,
		DueDate:     m.DueDate,
		DueType:     domain.DueType(m.DueType),
		DueStatus:   domain.DueStatus(m.DueStatus),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.TransferAccountType != nil {
		t := domain.TransferAccountType(*m.TransferAccountType)
		d.TransferAccountType = &t
	}
	if m.TransferAccountID != nil {
		id := *m.TransferAccountID
		d.TransferAccountID = &id
	}
	return d
}

// ToDomainDueSlice converts a slice of model Dues to a slice of domain Dues
func ToDomainDueSlice(ms []models.Due) []domain.Due {
	ds := make([]domain.Due, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDue(m)
	}
	return ds
}
