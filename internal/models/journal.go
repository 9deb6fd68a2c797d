package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a row of the journal_entries table.
type JournalEntry struct {
	EntryID          string          `db:"entry_id"`
	CompanyID        string          `db:"company_id"`
	EntryNumber      string          `db:"entry_number"`
	JournalType      string          `db:"journal_type"`
	EntryDate        time.Time       `db:"entry_date"`
	Description      string          `db:"description"`
	Reference        string          `db:"reference"`
	SourceKind       sql.NullString  `db:"source_kind"`
	SourceID         sql.NullString  `db:"source_id"`
	Status           string          `db:"status"`
	Amount           decimal.Decimal `db:"amount"`
	PostedAt         sql.NullTime    `db:"posted_at"`
	PostedBy         sql.NullString  `db:"posted_by"`
	OriginalEntryID  sql.NullString  `db:"original_entry_id"`
	ReversingEntryID sql.NullString  `db:"reversing_entry_id"`
	AuditFields
}

// JournalLine represents a row of the journal_lines table.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	LineNo      int             `db:"line_no"`
	AccountID   string          `db:"account_id"`
	Description string          `db:"description"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	TaxCodeID   sql.NullString  `db:"tax_code_id"`
	TaxAmount   decimal.Decimal `db:"tax_amount"`
	Dimension   string          `db:"dimension"`
	AuditFields

	// Joined from journal_entries for account activity listings.
	EntryDate        time.Time `db:"entry_date"`
	EntryDescription string    `db:"entry_description"`
}
