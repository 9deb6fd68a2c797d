package services

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal entry data
type JournalReaderSvc interface {
	// GetEntryByID retrieves a specific journal entry with its lines.
	GetEntryByID(ctx context.Context, companyID string, entryID string, requestingUserID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of journal entries in a company.
	ListEntries(ctx context.Context, companyID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// ListPostedEntriesInRange retrieves the posted entries dated inside the
	// inclusive window [start, end] with their lines, oldest first. This is
	// the query surface statement generation and tax preparation read from.
	ListPostedEntriesInRange(ctx context.Context, companyID string, start, end time.Time, userID string) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal entry data
type JournalWriterSvc interface {
	// CreateEntry persists a new journal entry in draft status with its lines.
	CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateEntry replaces the details and lines of a draft entry.
	UpdateEntry(ctx context.Context, companyID string, entryID string, req dto.UpdateJournalEntryRequest, requestingUserID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a draft entry and its lines. Posted and reversed
	// entries cannot be deleted, only reversed.
	DeleteEntry(ctx context.Context, companyID string, entryID string, requestingUserID string) error

	// PostEntry posts a draft entry, making it immutable and applying its
	// amounts to account balances.
	PostEntry(ctx context.Context, companyID string, entryID string, requestingUserID string) (*domain.JournalEntry, error)

	// ReverseEntry creates and posts a mirror-image entry that backs out a
	// posted entry. Returns the reversing entry.
	ReverseEntry(ctx context.Context, companyID string, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.JournalEntry, error)
}

// JournalLineReaderSvc defines read operations for journal line data
type JournalLineReaderSvc interface {
	// ListLinesByAccount retrieves posted lines for a specific account.
	ListLinesByAccount(ctx context.Context, companyID string, accountID string, userID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalLineReaderSvc
}
