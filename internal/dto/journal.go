package dto

import (
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest defines one line of a journal entry being created.
// Exactly one of debit or credit should carry a value; lines where both are
// zero are kept as placeholders and ignored by balancing.
type CreateJournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	TaxCodeID   *string         `json:"taxCodeID"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	Dimension   string          `json:"dimension"`
}

// CreateJournalEntryRequest defines the data needed to create a journal entry draft.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time                  `json:"entryDate" binding:"required"`
	JournalType domain.JournalType         `json:"journalType" binding:"omitempty,oneof=GENERAL SALES PURCHASES TAX"`
	Description string                     `json:"description"`
	Reference   string                     `json:"reference"`
	SourceKind  *domain.SourceKind         `json:"sourceKind" binding:"omitempty,oneof=SALE PURCHASE TAX_RETURN"`
	SourceID    *string                    `json:"sourceID"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateJournalEntryRequest defines the data allowed when replacing a draft entry.
// The lines supplied here replace the draft's lines wholesale.
type UpdateJournalEntryRequest struct {
	EntryDate   time.Time                  `json:"entryDate" binding:"required"`
	Description string                     `json:"description"`
	Reference   string                     `json:"reference"`
	SourceKind  *domain.SourceKind         `json:"sourceKind" binding:"omitempty,oneof=SALE PURCHASE TAX_RETURN"`
	SourceID    *string                    `json:"sourceID"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ReverseEntryRequest defines the data for reversing a posted entry.
// When ReversalDate is omitted the reversal is dated today.
type ReverseEntryRequest struct {
	ReversalDate *time.Time `json:"reversalDate"`
	Description  string     `json:"description"`
}

// SourceDocumentResponse identifies the business document an entry was generated from.
type SourceDocumentResponse struct {
	Kind domain.SourceKind `json:"kind"`
	ID   string            `json:"id"`
}

// JournalLineResponse defines the data returned for one line of an entry.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	LineNo      int             `json:"lineNo"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	TaxCodeID   *string         `json:"taxCodeID,omitempty"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	Dimension   string          `json:"dimension,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID          string                  `json:"entryID"`
	EntryNumber      string                  `json:"entryNumber"`
	JournalType      domain.JournalType      `json:"journalType"`
	EntryDate        time.Time               `json:"entryDate"`
	Description      string                  `json:"description,omitempty"`
	Reference        string                  `json:"reference,omitempty"`
	Source           *SourceDocumentResponse `json:"source,omitempty"`
	Status           domain.EntryStatus      `json:"status"`
	Amount           decimal.Decimal         `json:"amount"`
	PostedAt         *time.Time              `json:"postedAt,omitempty"`
	PostedBy         *string                 `json:"postedBy,omitempty"`
	OriginalEntryID  *string                 `json:"originalEntryID,omitempty"`
	ReversingEntryID *string                 `json:"reversingEntryID,omitempty"`
	Lines            []JournalLineResponse   `json:"lines,omitempty"`
	CreatedAt        time.Time               `json:"createdAt"`
	CreatedBy        string                  `json:"createdBy"`
	LastUpdatedAt    time.Time               `json:"lastUpdatedAt"`
	LastUpdatedBy    string                  `json:"lastUpdatedBy"`
}

// ToJournalLineResponse converts a domain.JournalLine to JournalLineResponse DTO.
func ToJournalLineResponse(line *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      line.LineID,
		LineNo:      line.LineNo,
		AccountID:   line.AccountID,
		Description: line.Description,
		Debit:       line.Debit,
		Credit:      line.Credit,
		TaxCodeID:   line.TaxCodeID,
		TaxAmount:   line.TaxAmount,
		Dimension:   line.Dimension,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:          entry.EntryID,
		EntryNumber:      entry.EntryNumber,
		JournalType:      entry.JournalType,
		EntryDate:        entry.EntryDate,
		Description:      entry.Description,
		Reference:        entry.Reference,
		Status:           entry.Status,
		Amount:           entry.Amount,
		PostedAt:         entry.PostedAt,
		PostedBy:         entry.PostedBy,
		OriginalEntryID:  entry.OriginalEntryID,
		ReversingEntryID: entry.ReversingEntryID,
		CreatedAt:        entry.CreatedAt,
		CreatedBy:        entry.CreatedBy,
		LastUpdatedAt:    entry.LastUpdatedAt,
		LastUpdatedBy:    entry.LastUpdatedBy,
	}
	if entry.Source != nil {
		resp.Source = &SourceDocumentResponse{Kind: entry.Source.Kind, ID: entry.Source.ID}
	}
	if len(entry.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(entry.Lines))
		for i, line := range entry.Lines {
			resp.Lines[i] = ToJournalLineResponse(&line)
		}
	}
	return resp
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	Limit            int     `form:"limit,default=20"`
	NextToken        *string `form:"nextToken"`
	IncludeReversals bool    `form:"includeReversals"`
}

// ListEntriesResponse wraps a page of journal entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToListEntriesResponse converts a page of domain entries to its DTO form.
func ToListEntriesResponse(entries []domain.JournalEntry, nextToken *string) *ListEntriesResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i, entry := range entries {
		res[i] = ToJournalEntryResponse(&entry)
	}
	return &ListEntriesResponse{Entries: res, NextToken: nextToken}
}

// PostedEntriesRangeParams defines the inclusive date window for the posted
// entries query.
type PostedEntriesRangeParams struct {
	StartDate time.Time `form:"startDate" time_format:"2006-01-02" binding:"required"`
	EndDate   time.Time `form:"endDate" time_format:"2006-01-02" binding:"required"`
}

// PostedEntriesResponse wraps the posted entries of a date window.
type PostedEntriesResponse struct {
	Entries []JournalEntryResponse `json:"entries"`
}

// ToPostedEntriesResponse converts posted domain entries to their DTO form.
func ToPostedEntriesResponse(entries []domain.JournalEntry) *PostedEntriesResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i, entry := range entries {
		res[i] = ToJournalEntryResponse(&entry)
	}
	return &PostedEntriesResponse{Entries: res}
}

// AccountLineResponse defines one line of an account's activity listing.
type AccountLineResponse struct {
	LineID           string          `json:"lineID"`
	EntryID          string          `json:"entryID"`
	EntryDate        time.Time       `json:"entryDate"`
	EntryDescription string          `json:"entryDescription,omitempty"`
	LineNo           int             `json:"lineNo"`
	AccountID        string          `json:"accountID"`
	Description      string          `json:"description,omitempty"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
}

// ListLinesParams defines query parameters for listing an account's lines.
type ListLinesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListLinesResponse wraps a page of account activity lines.
type ListLinesResponse struct {
	Lines     []AccountLineResponse `json:"lines"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToListLinesResponse converts a page of domain lines to its DTO form.
func ToListLinesResponse(lines []domain.JournalLine, nextToken *string) *ListLinesResponse {
	res := make([]AccountLineResponse, len(lines))
	for i, line := range lines {
		res[i] = AccountLineResponse{
			LineID:           line.LineID,
			EntryID:          line.EntryID,
			EntryDate:        line.EntryDate,
			EntryDescription: line.EntryDescription,
			LineNo:           line.LineNo,
			AccountID:        line.AccountID,
			Description:      line.Description,
			Debit:            line.Debit,
			Credit:           line.Credit,
		}
	}
	return &ListLinesResponse{Lines: res, NextToken: nextToken}
}
