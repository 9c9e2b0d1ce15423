package mapping

import (
	"github.com/budgetbook/budget_book_app/internal/core/domain"
	"github.com/budgetbook/budget_book_app/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	m := models.LedgerEntry{
		EntryID:     d.EntryID,
		UserID:      d.UserID,
		Amount:      d.Amount,
		EntryName:   d.EntryName,
		EntryType:   string(d.EntryType),
		BookID:      d.BookID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.DueType != nil {
		t := string(*d.DueType)
		m.DueType = &t
	}
	return m
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	d := domain.LedgerEntry{
		EntryID:     m.EntryID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		EntryName:   m.EntryName,
		EntryType:   domain.EntryType(m.EntryType),
		BookID:      m.BookID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.DueType != nil {
		t := domain.DueType(*m.DueType)
		d.DueType = &t
	}
	return d
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to domain ones
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
