package repositories

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryReader defines read operations for journal entry data
type JournalEntryReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByCompany retrieves a paginated list of journal entries for a company
	// using token-based pagination. It returns the entries, a token for the next page,
	// and an error. Reversal pairs are filtered out unless includeReversals is set.
	ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error)

	// FindPostedEntriesInRange retrieves every posted entry dated inside the
	// inclusive window [start, end], oldest first, with lines attached.
	// Entries that were later reversed are included together with their
	// reversals so the window reflects everything that hit the ledger.
	FindPostedEntriesInRange(ctx context.Context, companyID string, start, end time.Time) ([]domain.JournalEntry, error)
}

// JournalEntryWriter defines write operations for journal entry data.
// Each method is atomic; composite operations run inside a single database
// transaction.
type JournalEntryWriter interface {
	// SaveEntry persists a draft entry together with its lines. Drafts do not
	// touch account balances.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// UpdateEntryWithLines updates a draft entry's header and replaces its
	// lines wholesale in one transaction.
	UpdateEntryWithLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// DeleteDraftEntry removes a draft entry and its lines in one transaction.
	// Posted and reversed entries are never deleted.
	DeleteDraftEntry(ctx context.Context, entryID string) error

	// PostEntry transitions a draft to POSTED and applies the given balance
	// deltas to the affected accounts, all in one transaction.
	PostEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error

	// SaveReversalEntry persists an already-posted reversal entry with its
	// lines, marks the original entry REVERSED with the back link, and applies
	// the balance deltas, all in one transaction.
	SaveReversalEntry(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, originalEntryID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// JournalLineReader defines read operations for journal line data
type JournalLineReader interface {
	// FindLinesByEntryID retrieves all lines of a single journal entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)

	// ListLinesByAccountID retrieves a paginated account statement using
	// token-based pagination. Only lines of posted entries appear; reversal
	// pairs are filtered out.
	ListLinesByAccountID(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error)

	// SumAccountActivity totals the ledger debits and credits hitting an account
	// up to and including asOf. Since-reversed entries still count; their
	// reversals cancel them from the reversal date onward.
	SumAccountActivity(ctx context.Context, companyID, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	JournalLineReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
