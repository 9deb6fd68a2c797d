package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	"github.com/quillbooks/quillbooks_app/internal/models"
	"github.com/quillbooks/quillbooks_app/internal/utils/mapping"
	"github.com/quillbooks/quillbooks_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal entry and line data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const entrySelectColumns = `entry_id, company_id, entry_number, journal_type, entry_date, description, reference,
	source_kind, source_id, status, amount, posted_at, posted_by, original_entry_id, reversing_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

const lineSelectColumns = `line_id, entry_id, line_no, account_id, description, debit, credit,
	tax_code_id, tax_amount, dimension, created_at, created_by, last_updated_at, last_updated_by`

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.EntryNumber,
		&m.JournalType,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.SourceKind,
		&m.SourceID,
		&m.Status,
		&m.Amount,
		&m.PostedAt,
		&m.PostedBy,
		&m.OriginalEntryID,
		&m.ReversingEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanJournalLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.LineNo,
		&m.AccountID,
		&m.Description,
		&m.Debit,
		&m.Credit,
		&m.TaxCodeID,
		&m.TaxAmount,
		&m.Dimension,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// insertEntryTx inserts a journal entry row inside the given transaction.
func (r *PgxJournalRepository) insertEntryTx(ctx context.Context, tx pgx.Tx, m models.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (
			entry_id, company_id, entry_number, journal_type, entry_date, description, reference,
			source_kind, source_id, status, amount, posted_at, posted_by, original_entry_id, reversing_entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.CompanyID,
		m.EntryNumber,
		m.JournalType,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.SourceKind,
		m.SourceID,
		m.Status,
		m.Amount,
		m.PostedAt,
		m.PostedBy,
		m.OriginalEntryID,
		m.ReversingEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" && pgErr.ConstraintName == "journal_entries_company_number_unique" {
				return apperrors.NewConflictError("entry number " + m.EntryNumber + " already exists")
			}
			if pgErr.Code == "23505" {
				return apperrors.NewConflictError("entry ID " + m.EntryID + " already exists")
			}
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}
	return nil
}

// insertLinesTx batch-inserts journal lines inside the given transaction.
func (r *PgxJournalRepository) insertLinesTx(ctx context.Context, tx pgx.Tx, entryID string, lines []models.JournalLine) error {
	query := `
		INSERT INTO journal_lines (
			line_id, entry_id, line_no, account_id, description, debit, credit,
			tax_code_id, tax_amount, dimension,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(query,
			line.LineID,
			line.EntryID,
			line.LineNo,
			line.AccountID,
			line.Description,
			line.Debit,
			line.Credit,
			line.TaxCodeID,
			line.TaxAmount,
			line.Dimension,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for entry "+entryID, err)
	}
	return nil
}

// SaveEntry persists a draft entry and its lines within a DB transaction.
// Drafts never touch account balances.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := entry.CreatedAt
	userID := entry.CreatedBy

	if err := r.insertEntryTx(ctx, tx, mapping.ToModelJournalEntry(entry)); err != nil {
		return err
	}

	modelLines := make([]models.JournalLine, len(lines))
	for i, line := range lines {
		m := mapping.ToModelJournalLine(line)
		m.CreatedAt = now
		m.CreatedBy = userID
		m.LastUpdatedAt = now
		m.LastUpdatedBy = userID
		modelLines[i] = m
	}
	if err := r.insertLinesTx(ctx, tx, entry.EntryID, modelLines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateEntryWithLines replaces a draft entry's header and lines wholesale in one transaction.
func (r *PgxJournalRepository) UpdateEntryWithLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET journal_type = $2,
		    entry_date = $3,
		    description = $4,
		    reference = $5,
		    source_kind = $6,
		    source_id = $7,
		    amount = $8,
		    last_updated_at = $9,
		    last_updated_by = $10
		WHERE entry_id = $1 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.EntryID,
		m.JournalType,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.SourceKind,
		m.SourceID,
		m.Amount,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update draft entry "+m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewConflictError("entry " + m.EntryID + " is not a draft or does not exist")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines of entry "+m.EntryID, err)
	}

	modelLines := make([]models.JournalLine, len(lines))
	for i, line := range lines {
		lm := mapping.ToModelJournalLine(line)
		lm.CreatedAt = entry.LastUpdatedAt
		lm.CreatedBy = entry.LastUpdatedBy
		lm.LastUpdatedAt = entry.LastUpdatedAt
		lm.LastUpdatedBy = entry.LastUpdatedBy
		modelLines[i] = lm
	}
	if err := r.insertLinesTx(ctx, tx, m.EntryID, modelLines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteDraftEntry removes a draft entry and its lines in one transaction.
// The header delete is status-guarded, so a concurrently posted entry
// surfaces as a conflict instead of disappearing from the ledger.
func (r *PgxJournalRepository) DeleteDraftEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines of entry "+entryID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1 AND status = 'DRAFT';`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete draft entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewConflictError("entry " + entryID + " is not a draft or does not exist")
	}

	return r.Commit(ctx, tx)
}

// PostEntry transitions a draft to POSTED and applies the balance deltas to the
// affected accounts, all in one transaction.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET status = 'POSTED',
		    amount = $2,
		    posted_at = $3,
		    posted_by = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE entry_id = $1 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.EntryID,
		m.Amount,
		m.PostedAt,
		m.PostedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to post entry "+m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewConflictError("entry " + m.EntryID + " is not a draft or does not exist")
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, entry.LastUpdatedBy, entry.LastUpdatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	return r.Commit(ctx, tx)
}

// SaveReversalEntry persists a posted reversal entry with its lines, marks the
// original entry REVERSED with the back link, and applies the balance deltas,
// all in one transaction.
func (r *PgxJournalRepository) SaveReversalEntry(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, originalEntryID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntryTx(ctx, tx, mapping.ToModelJournalEntry(reversal)); err != nil {
		return err
	}

	modelLines := make([]models.JournalLine, len(lines))
	for i, line := range lines {
		lm := mapping.ToModelJournalLine(line)
		lm.CreatedAt = now
		lm.CreatedBy = userID
		lm.LastUpdatedAt = now
		lm.LastUpdatedBy = userID
		modelLines[i] = lm
	}
	if err := r.insertLinesTx(ctx, tx, reversal.EntryID, modelLines); err != nil {
		return err
	}

	// Guard against double reversal: the original must still be POSTED and unlinked.
	linkQuery := `
		UPDATE journal_entries
		SET status = 'REVERSED',
		    reversing_entry_id = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE entry_id = $1 AND status = 'POSTED' AND reversing_entry_id IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, linkQuery, originalEntryID, reversal.EntryID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry "+originalEntryID+" reversed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewConflictError("entry " + originalEntryID + " is not posted or already reversed")
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a journal entry by its ID. Lines are fetched separately.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entrySelectColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}

	domainEntry := mapping.ToDomainJournalEntry(m)
	return &domainEntry, nil
}

// ListEntriesByCompany retrieves a paginated list of journal entries for a company
// using token-based pagination. It returns the entries, a token for the next page,
// and an error.
func (r *PgxJournalRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there is a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entrySelectColumns + ` FROM journal_entries`

	filterClause := `WHERE company_id = $1`
	if !includeReversals {
		filterClause += ` AND status != 'REVERSED' AND reversing_entry_id IS NULL AND original_entry_id IS NULL`
	}

	// Ordering must be stable; entry_date DESC with created_at DESC as tie-breaker.
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{companyID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		// Tuple comparison is concise and efficient in Postgres.
		cursorClause := `AND (entry_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)

		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for company "+companyID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJournalEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for company "+companyID, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for company "+companyID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		// The token points to the last item included in this response page.
		lastEntry := modelEntries[limit-1]
		newToken := pagination.EncodeToken(lastEntry.EntryDate, lastEntry.CreatedAt)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	domainEntries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		domainEntries[i] = mapping.ToDomainJournalEntry(m)
	}

	return domainEntries, nextTokenVal, nil
}

// FindPostedEntriesInRange retrieves every posted entry dated inside the
// inclusive window [start, end], oldest first, with lines attached. Entries
// later reversed stay in the result together with their reversals.
func (r *PgxJournalRepository) FindPostedEntriesInRange(ctx context.Context, companyID string, start, end time.Time) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entrySelectColumns + ` FROM journal_entries
		WHERE company_id = $1 AND status IN ('POSTED', 'REVERSED') AND entry_date >= $2 AND entry_date <= $3
		ORDER BY entry_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query posted entries for company "+companyID, err)
	}
	defer rows.Close()

	modelEntries := []models.JournalEntry{}
	for rows.Next() {
		m, scanErr := scanJournalEntry(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan posted entry row for company "+companyID, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating posted entry rows for company "+companyID, err)
	}

	entries := make([]domain.JournalEntry, len(modelEntries))
	entryIDs := make([]string, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = mapping.ToDomainJournalEntry(m)
		entryIDs[i] = entries[i].EntryID
	}

	linesMap, err := r.FindLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		lines := linesMap[entries[i].EntryID]
		for j := range lines {
			lines[j].EntryDate = entries[i].EntryDate
			lines[j].EntryDescription = entries[i].Description
		}
		entries[i].Lines = lines
	}

	return entries, nil
}

// FindLinesByEntryID retrieves all lines of a single journal entry.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineSelectColumns + ` FROM journal_lines WHERE entry_id = $1 ORDER BY line_no;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		m, scanErr := scanJournalLine(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, scanErr)
		}
		lines = append(lines, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}

	return mapping.ToDomainJournalLineSlice(lines), nil
}

// FindLinesByEntryIDs retrieves all lines for a list of entry IDs, grouped by entry ID.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `SELECT ` + lineSelectColumns + ` FROM journal_lines WHERE entry_id = ANY($1) ORDER BY entry_id, line_no;`

	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry IDs", err)
	}
	defer rows.Close()

	linesMap := make(map[string][]domain.JournalLine)
	for rows.Next() {
		m, scanErr := scanJournalLine(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row during batch fetch", scanErr)
		}
		domainLine := mapping.ToDomainJournalLine(m)
		linesMap[domainLine.EntryID] = append(linesMap[domainLine.EntryID], domainLine)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows during batch fetch", err)
	}

	// Entries with no lines still get an empty slice.
	for _, id := range entryIDs {
		if _, exists := linesMap[id]; !exists {
			linesMap[id] = []domain.JournalLine{}
		}
	}

	return linesMap, nil
}

// ListLinesByAccountID retrieves a paginated account statement using token-based
// pagination. Only lines of posted entries appear; reversal pairs are filtered out.
func (r *PgxJournalRepository) ListLinesByAccountID(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT l.line_id, l.entry_id, l.line_no, l.account_id, l.description, l.debit, l.credit,
		       l.tax_code_id, l.tax_amount, l.dimension,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by,
		       e.entry_date, e.description AS entry_description
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1 AND e.company_id = $2 AND e.status = 'POSTED' AND e.original_entry_id IS NULL
	`
	orderByClause := `ORDER BY e.entry_date DESC, l.created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID, companyID}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (e.entry_date, l.created_at) < ($3, $4)`
		args = append(args, lastEntryDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)

		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query lines for account "+accountID+" in company "+companyID, err)
	}
	defer rows.Close()

	modelLines := make([]models.JournalLine, 0, fetchLimit)
	for rows.Next() {
		var m models.JournalLine
		scanErr := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.LineNo,
			&m.AccountID,
			&m.Description,
			&m.Debit,
			&m.Credit,
			&m.TaxCodeID,
			&m.TaxAmount,
			&m.Dimension,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.EntryDate,
			&m.EntryDescription,
		)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan line row for account "+accountID, scanErr)
		}
		modelLines = append(modelLines, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating line rows for account "+accountID, err)
	}

	var nextTokenVal *string
	results := modelLines
	if len(modelLines) > limit {
		lastLine := modelLines[limit-1]
		newToken := pagination.EncodeToken(lastLine.EntryDate, lastLine.CreatedAt)
		nextTokenVal = &newToken
		results = modelLines[:limit]
	}

	return mapping.ToDomainJournalLineSlice(results), nextTokenVal, nil
}

// SumAccountActivity totals the ledger debits and credits hitting an account up
// to and including asOf. Entries that were later reversed still count; their
// reversals cancel them out from the reversal date onward.
func (r *PgxJournalRepository) SumAccountActivity(ctx context.Context, companyID, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0) AS total_debit, COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1 AND e.company_id = $2 AND e.status IN ('POSTED', 'REVERSED') AND e.entry_date <= $3;
	`

	var totalDebit, totalCredit decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, accountID, companyID, asOf).Scan(&totalDebit, &totalCredit)
	if err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum activity for account "+accountID, err)
	}

	return totalDebit, totalCredit, nil
}
