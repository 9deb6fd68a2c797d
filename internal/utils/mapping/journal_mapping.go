package mapping

import (
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry.
// Lines are mapped separately; they live in their own table.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		EntryID:          d.EntryID,
		CompanyID:        d.CompanyID,
		EntryNumber:      d.EntryNumber,
		JournalType:      string(d.JournalType),
		EntryDate:        d.EntryDate,
		Description:      d.Description,
		Reference:        d.Reference,
		Status:           string(d.Status),
		Amount:           d.Amount,
		PostedAt:         PtrToNullTime(d.PostedAt),
		PostedBy:         PtrToNullString(d.PostedBy),
		OriginalEntryID:  PtrToNullString(d.OriginalEntryID),
		ReversingEntryID: PtrToNullString(d.ReversingEntryID),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.Source != nil {
		m.SourceKind = PtrToNullString(strPtr(string(d.Source.Kind)))
		m.SourceID = PtrToNullString(strPtr(d.Source.ID))
	}
	return m
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:          m.EntryID,
		CompanyID:        m.CompanyID,
		EntryNumber:      m.EntryNumber,
		JournalType:      domain.JournalType(m.JournalType),
		EntryDate:        m.EntryDate,
		Description:      m.Description,
		Reference:        m.Reference,
		Status:           domain.EntryStatus(m.Status),
		Amount:           m.Amount,
		PostedAt:         NullTimeToPtr(m.PostedAt),
		PostedBy:         NullStringToPtr(m.PostedBy),
		OriginalEntryID:  NullStringToPtr(m.OriginalEntryID),
		ReversingEntryID: NullStringToPtr(m.ReversingEntryID),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if m.SourceKind.Valid && m.SourceID.Valid {
		d.Source = &domain.SourceDocument{
			Kind: domain.SourceKind(m.SourceKind.String),
			ID:   m.SourceID.String,
		}
	}
	return d
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		LineNo:      d.LineNo,
		AccountID:   d.AccountID,
		Description: d.Description,
		Debit:       d.Debit,
		Credit:      d.Credit,
		TaxCodeID:   PtrToNullString(d.TaxCodeID),
		TaxAmount:   d.TaxAmount,
		Dimension:   d.Dimension,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:           m.LineID,
		EntryID:          m.EntryID,
		LineNo:           m.LineNo,
		AccountID:        m.AccountID,
		Description:      m.Description,
		Debit:            m.Debit,
		Credit:           m.Credit,
		TaxCodeID:        NullStringToPtr(m.TaxCodeID),
		TaxAmount:        m.TaxAmount,
		Dimension:        m.Dimension,
		EntryDate:        m.EntryDate,
		EntryDescription: m.EntryDescription,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}

func strPtr(s string) *string {
	return &s
}
