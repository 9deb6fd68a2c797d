package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	errLineMissingAccount = errors.New("journal line requires an account")
	errLineNegativeAmount = errors.New("journal line amounts must not be negative")
	errLineBothSides      = errors.New("journal line cannot carry both a debit and a credit")
)

// EntryStatus captures the lifecycle state of a journal entry.
type EntryStatus string

const (
	EntryDraft    EntryStatus = "DRAFT"    // Editable, no ledger effect
	EntryPosted   EntryStatus = "POSTED"   // Immutable, affects balances
	EntryReversed EntryStatus = "REVERSED" // Posted entry neutralized by a reversal
)

// JournalType tags the book of original entry a journal entry belongs to.
type JournalType string

const (
	JournalGeneral   JournalType = "GENERAL"
	JournalSales     JournalType = "SALES"
	JournalPurchases JournalType = "PURCHASES"
	JournalTax       JournalType = "TAX"
)

// SourceKind identifies the type of source document a journal entry was
// derived from.
type SourceKind string

const (
	SourceSale      SourceKind = "SALE"
	SourcePurchase  SourceKind = "PURCHASE"
	SourceTaxReturn SourceKind = "TAX_RETURN"
)

// SourceDocument links a journal entry back to the document it was derived
// from. The kind decides how the ID should be interpreted.
type SourceDocument struct {
	Kind SourceKind `json:"kind"`
	ID   string     `json:"id"`
}

// JournalEntry is the unit of double-entry recording. An entry groups one or
// more lines whose debits and credits must balance before it can be posted.
type JournalEntry struct {
	EntryID     string          `json:"entryID"`     // Primary Key (e.g., UUID)
	CompanyID   string          `json:"companyID"`   // FK -> companies.company_id
	EntryNumber string          `json:"entryNumber"` // Sequential document number, e.g. JE-000042
	JournalType JournalType     `json:"journalType"`
	EntryDate   time.Time       `json:"entryDate"` // Accounting date, decides the fiscal period
	Description string          `json:"description"`
	Reference   string          `json:"reference,omitempty"` // External reference, e.g. invoice number
	Source      *SourceDocument `json:"source,omitempty"`
	Status      EntryStatus     `json:"status"`
	Amount      decimal.Decimal `json:"amount"` // Total debits once balanced
	PostedAt    *time.Time      `json:"postedAt,omitempty"`
	PostedBy    *string         `json:"postedBy,omitempty"`
	// OriginalEntryID is set on a reversal and points at the entry it reverses.
	OriginalEntryID *string `json:"originalEntryID,omitempty"`
	// ReversingEntryID is set on a reversed entry and points at its reversal.
	ReversingEntryID *string       `json:"reversingEntryID,omitempty"`
	Lines            []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// IsDraft reports whether the entry is still editable.
func (j JournalEntry) IsDraft() bool {
	return j.Status == EntryDraft
}

// IsReversal reports whether the entry was created to reverse another entry.
func (j JournalEntry) IsReversal() bool {
	return j.OriginalEntryID != nil
}

// JournalLine is a single debit or credit within a journal entry. Exactly one
// of Debit or Credit carries the amount; a line with zero on both sides is a
// placeholder and never contributes to balances.
type JournalLine struct {
	LineID      string          `json:"lineID"`  // Primary Key (e.g., UUID)
	EntryID     string          `json:"entryID"` // FK -> journal_entries.entry_id
	LineNo      int             `json:"lineNo"`  // Position within the entry
	AccountID   string          `json:"accountID"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	TaxCodeID   *string         `json:"taxCodeID,omitempty"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	Dimension   string          `json:"dimension,omitempty"` // Optional analysis tag, e.g. cost centre
	// Denormalized from the parent entry for account statement views.
	EntryDate        time.Time `json:"entryDate,omitempty"`
	EntryDescription string    `json:"entryDescription,omitempty"`
	AuditFields
}

// IsPlaceholder reports whether the line carries no amount on either side.
func (l JournalLine) IsPlaceholder() bool {
	return l.Debit.IsZero() && l.Credit.IsZero()
}

// Validate checks the structural rules a line must satisfy regardless of the
// entry it belongs to.
func (l JournalLine) Validate() error {
	if l.AccountID == "" {
		return errLineMissingAccount
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return errLineNegativeAmount
	}
	if !l.Debit.IsZero() && !l.Credit.IsZero() {
		return errLineBothSides
	}
	return nil
}
