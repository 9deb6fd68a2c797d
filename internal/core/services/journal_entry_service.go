package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
	"github.com/quillbooks/quillbooks_app/internal/middleware"
	"github.com/quillbooks/quillbooks_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrEntryNoAmountLines = fmt.Errorf("%w: journal entry needs at least one line with an amount", apperrors.ErrValidation)
	ErrEntryMinAccounts   = fmt.Errorf("%w: journal entry must touch at least two different accounts", apperrors.ErrValidation)
	ErrAccountNotUsable   = fmt.Errorf("%w: account not usable", apperrors.ErrValidation)
	ErrTaxCodeNotUsable   = fmt.Errorf("%w: tax code not usable", apperrors.ErrValidation)
)

// journalService provides the journal entry lifecycle: draft, post, reverse.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	companySvc  portssvc.CompanySvcFacade
	fiscalRepo  portsrepo.FiscalPeriodReader
	taxCodeRepo portsrepo.TaxCodeReader
	numberSvc   portssvc.DocumentNumberSvc
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
	companySvc portssvc.CompanySvcFacade,
	fiscalRepo portsrepo.FiscalPeriodReader,
	taxCodeRepo portsrepo.TaxCodeReader,
	numberSvc portssvc.DocumentNumberSvc,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		companySvc:  companySvc,
		fiscalRepo:  fiscalRepo,
		taxCodeRepo: taxCodeRepo,
		numberSvc:   numberSvc,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines converts request lines into domain lines, assigning IDs and
// positions and enforcing the per-line structural rules. Problems across all
// lines are collected so the caller can fix the whole entry in one pass.
func buildLines(reqLines []dto.CreateJournalLineRequest, entryID string, userID string, now time.Time) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, len(reqLines))
	var problems []string
	for i, lr := range reqLines {
		line := domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			LineNo:      i + 1,
			AccountID:   lr.AccountID,
			Description: lr.Description,
			Debit:       lr.Debit,
			Credit:      lr.Credit,
			TaxCodeID:   lr.TaxCodeID,
			TaxAmount:   lr.TaxAmount,
			Dimension:   lr.Dimension,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := line.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("line %d: %v", i+1, err))
		}
		if line.TaxAmount.IsNegative() {
			problems = append(problems, fmt.Sprintf("line %d: tax amount must not be negative", i+1))
		}
		if line.TaxCodeID == nil && !line.TaxAmount.IsZero() {
			problems = append(problems, fmt.Sprintf("line %d: tax amount requires a tax code", i+1))
		}
		lines[i] = line
	}
	if len(problems) > 0 {
		return nil, apperrors.NewValidationError(problems...)
	}
	return lines, nil
}

// validateEntryLines enforces the entry-level rules and returns the two
// totals. Placeholder lines are skipped by the totals, so an entry made up of
// placeholders alone is rejected rather than passing as trivially balanced.
func validateEntryLines(lines []domain.JournalLine) (totalDebits, totalCredits decimal.Decimal, err error) {
	accountSet := make(map[string]struct{})
	amountLines := 0
	for _, line := range lines {
		if line.IsPlaceholder() {
			continue
		}
		amountLines++
		accountSet[line.AccountID] = struct{}{}
	}
	if amountLines == 0 {
		return decimal.Zero, decimal.Zero, ErrEntryNoAmountLines
	}
	if len(accountSet) < 2 {
		return decimal.Zero, decimal.Zero, ErrEntryMinAccounts
	}

	totalDebits, totalCredits = accounting.EntryTotals(lines)
	if !accounting.IsBalanced(totalDebits, totalCredits) {
		return totalDebits, totalCredits, apperrors.NewUnbalancedEntryError(totalDebits, totalCredits)
	}
	return totalDebits, totalCredits, nil
}

// sourceFromRequest builds the optional source document link. Kind and ID
// travel together or not at all.
func sourceFromRequest(kind *domain.SourceKind, id *string) (*domain.SourceDocument, error) {
	if kind == nil && id == nil {
		return nil, nil
	}
	if kind == nil || id == nil || *id == "" {
		return nil, fmt.Errorf("%w: source kind and source ID must be provided together", apperrors.ErrValidation)
	}
	return &domain.SourceDocument{Kind: *kind, ID: *id}, nil
}

// resolveAccounts fetches every account the lines reference and verifies each
// one is active and belongs to the company. Placeholder lines still name an
// account, so they are checked too.
func (s *journalService) resolveAccounts(ctx context.Context, companyID string, lines []domain.JournalLine, userID string) (map[string]domain.Account, error) {
	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	uniqueAccountIDs := uniqueStrings(accountIDs)

	accountsMap, err := s.accountSvc.GetAccountByIDs(ctx, companyID, uniqueAccountIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for _, id := range uniqueAccountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: account %s does not exist in company %s", ErrAccountNotUsable, id, companyID)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", ErrAccountNotUsable, id)
		}
	}
	return accountsMap, nil
}

// checkTaxCodes verifies every tax code the lines reference exists, is active
// and belongs to the company.
func (s *journalService) checkTaxCodes(ctx context.Context, companyID string, lines []domain.JournalLine) error {
	taxCodeIDs := make([]string, 0)
	for _, line := range lines {
		if line.TaxCodeID != nil {
			taxCodeIDs = append(taxCodeIDs, *line.TaxCodeID)
		}
	}
	if len(taxCodeIDs) == 0 {
		return nil
	}

	uniqueIDs := uniqueStrings(taxCodeIDs)
	taxCodes, err := s.taxCodeRepo.FindTaxCodesByIDs(ctx, uniqueIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch tax codes: %w", err)
	}
	for _, id := range uniqueIDs {
		tc, found := taxCodes[id]
		if !found {
			return fmt.Errorf("%w: tax code %s does not exist", ErrTaxCodeNotUsable, id)
		}
		if tc.CompanyID != companyID {
			return fmt.Errorf("%w: tax code %s does not belong to company %s", ErrTaxCodeNotUsable, id, companyID)
		}
		if !tc.IsActive {
			return fmt.Errorf("%w: tax code %s is inactive", ErrTaxCodeNotUsable, id)
		}
	}
	return nil
}

// periodForDate returns the fiscal period covering the date. A date no period
// covers maps to ErrNoOpenPeriod.
func (s *journalService) periodForDate(ctx context.Context, companyID string, date time.Time) (*domain.FiscalPeriod, error) {
	period, err := s.fiscalRepo.FindPeriodForDate(ctx, companyID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNoOpenPeriod, date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to look up fiscal period: %w", err)
	}
	return period, nil
}

// computeBalanceChanges accumulates the signed balance delta each account
// receives when the lines are applied to the ledger.
func computeBalanceChanges(lines []domain.JournalLine, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	balanceChanges := make(map[string]decimal.Decimal)
	for _, line := range lines {
		if line.IsPlaceholder() {
			continue
		}
		acc, ok := accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("internal error: account %s missing during balance calculation", line.AccountID)
		}
		signedAmount, err := accounting.SignedAmount(acc.AccountType, line)
		if err != nil {
			return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
		}
		balanceChanges[line.AccountID] = balanceChanges[line.AccountID].Add(signedAmount)
	}
	return balanceChanges, nil
}

// CreateEntry creates a new journal entry draft with its lines after validation.
// Implements portssvc.JournalSvcFacade
func (s *journalService) CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for CreateEntry", slog.String("user_id", creatorUserID), slog.String("company_id", companyID), slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines, err := buildLines(req.Lines, entryID, creatorUserID, now)
	if err != nil {
		return nil, err
	}

	totalDebits, _, err := validateEntryLines(lines)
	if err != nil {
		return nil, err
	}

	source, err := sourceFromRequest(req.SourceKind, req.SourceID)
	if err != nil {
		return nil, err
	}

	// The entry date must fall inside a known fiscal period even for a draft,
	// otherwise the draft could never be posted.
	if _, err := s.periodForDate(ctx, companyID, req.EntryDate); err != nil {
		return nil, err
	}

	if _, err := s.resolveAccounts(ctx, companyID, lines, creatorUserID); err != nil {
		logger.Error("Account validation failed for new entry", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, err
	}
	if err := s.checkTaxCodes(ctx, companyID, lines); err != nil {
		return nil, err
	}

	entryNumber, err := s.numberSvc.NextJournalNumber(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve entry number: %w", err)
	}

	journalType := req.JournalType
	if journalType == "" {
		journalType = domain.JournalGeneral
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		CompanyID:   companyID,
		EntryNumber: entryNumber,
		JournalType: journalType,
		EntryDate:   req.EntryDate,
		Description: req.Description,
		Reference:   req.Reference,
		Source:      source,
		Status:      domain.EntryDraft,
		Amount:      totalDebits,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry drafted successfully",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("company_id", companyID))
	entry.Lines = lines
	return &entry, nil
}

// findEntryInCompany fetches an entry and verifies it belongs to the company.
// Entries from other companies come back as NotFound to obscure existence.
func (s *journalService) findEntryInCompany(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal entry by ID", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if entry.CompanyID != companyID {
		logger.Warn("Journal entry found but belongs to different company",
			slog.String("entry_id", entryID),
			slog.String("entry_company", entry.CompanyID),
			slog.String("requested_company", companyID))
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// GetEntryByID retrieves a specific journal entry with its lines.
// Implements portssvc.JournalSvcFacade
func (s *journalService) GetEntryByID(ctx context.Context, companyID string, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for GetEntryByID", slog.String("user_id", requestingUserID), slog.String("company_id", companyID), slog.String("error", err.Error()))
		return nil, err
	}

	entry, err := s.findEntryInCompany(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}

	for i := range lines {
		lines[i].EntryDate = entry.EntryDate
		lines[i].EntryDescription = entry.Description
	}
	entry.Lines = lines

	logger.Debug("Journal entry retrieved successfully",
		slog.String("entry_id", entryID),
		slog.Int("line_count", len(lines)))
	return entry, nil
}

// ListEntries retrieves a paginated list of journal entries for a company.
func (s *journalService) ListEntries(ctx context.Context, companyID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for ListEntries", "error", err)
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntriesByCompany(ctx, companyID, limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		logger.Error("Failed to list journal entries from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	logger.Info("Journal entries listed successfully", "count", len(entries))
	return dto.ToListEntriesResponse(entries, nextToken), nil
}

// UpdateEntry replaces the details and lines of a draft entry.
// Implements portssvc.JournalSvcFacade
func (s *journalService) UpdateEntry(ctx context.Context, companyID string, entryID string, req dto.UpdateJournalEntryRequest, requestingUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for UpdateEntry", slog.String("user_id", requestingUserID), slog.String("company_id", companyID), slog.String("error", err.Error()))
		return nil, err
	}

	entry, err := s.findEntryInCompany(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.IsDraft() {
		return nil, fmt.Errorf("%w: only draft entries can be edited, status is %s", apperrors.ErrInvalidState, entry.Status)
	}

	now := time.Now().UTC()
	lines, err := buildLines(req.Lines, entryID, requestingUserID, now)
	if err != nil {
		return nil, err
	}

	totalDebits, _, err := validateEntryLines(lines)
	if err != nil {
		return nil, err
	}

	source, err := sourceFromRequest(req.SourceKind, req.SourceID)
	if err != nil {
		return nil, err
	}

	if _, err := s.periodForDate(ctx, companyID, req.EntryDate); err != nil {
		return nil, err
	}
	if _, err := s.resolveAccounts(ctx, companyID, lines, requestingUserID); err != nil {
		return nil, err
	}
	if err := s.checkTaxCodes(ctx, companyID, lines); err != nil {
		return nil, err
	}

	entry.EntryDate = req.EntryDate
	entry.Description = req.Description
	entry.Reference = req.Reference
	entry.Source = source
	entry.Amount = totalDebits
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = requestingUserID

	if err := s.journalRepo.UpdateEntryWithLines(ctx, *entry, lines); err != nil {
		logger.Error("Failed to update journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	logger.Info("Journal entry updated successfully", slog.String("entry_id", entryID))
	entry.Lines = lines
	return entry, nil
}

// DeleteEntry removes a draft entry and its lines. Drafts have no ledger
// effect, so deletion is unrestricted; posted entries can only be reversed.
// Implements portssvc.JournalSvcFacade
func (s *journalService) DeleteEntry(ctx context.Context, companyID string, entryID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for DeleteEntry", slog.String("user_id", requestingUserID), slog.String("company_id", companyID), slog.String("error", err.Error()))
		return err
	}

	entry, err := s.findEntryInCompany(ctx, companyID, entryID)
	if err != nil {
		return err
	}
	if !entry.IsDraft() {
		return fmt.Errorf("%w: only draft entries can be deleted, status is %s", apperrors.ErrInvalidState, entry.Status)
	}

	if err := s.journalRepo.DeleteDraftEntry(ctx, entryID); err != nil {
		logger.Error("Failed to delete draft entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return err
	}

	logger.Info("Draft journal entry deleted",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entry.EntryNumber))
	return nil
}

// ListPostedEntriesInRange retrieves posted entries dated inside [start, end]
// with their lines, oldest first.
// Implements portssvc.JournalSvcFacade
func (s *journalService) ListPostedEntriesInRange(ctx context.Context, companyID string, start, end time.Time, userID string) ([]domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for ListPostedEntriesInRange", slog.String("user_id", userID), slog.String("company_id", companyID), slog.String("error", err.Error()))
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date must not be before start date", apperrors.ErrValidation)
	}

	entries, err := s.journalRepo.FindPostedEntriesInRange(ctx, companyID, start, end)
	if err != nil {
		logger.Error("Failed to fetch posted entries in range", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve posted entries: %w", err)
	}

	logger.Debug("Posted entries fetched for range",
		slog.Int("count", len(entries)),
		slog.String("start", start.Format("2006-01-02")),
		slog.String("end", end.Format("2006-01-02")))
	return entries, nil
}

// PostEntry posts a draft entry, making it immutable and applying its amounts
// to account balances.
// Implements portssvc.JournalSvcFacade
func (s *journalService) PostEntry(ctx context.Context, companyID string, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for PostEntry", slog.String("user_id", requestingUserID), slog.String("company_id", companyID), slog.String("error", err.Error()))
		return nil, err
	}

	entry, err := s.findEntryInCompany(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.IsDraft() {
		return nil, fmt.Errorf("%w: only draft entries can be posted, status is %s", apperrors.ErrInvalidState, entry.Status)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for posting", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, err)
	}

	// The draft was balanced when saved; re-check in case of direct data edits.
	if _, _, err := validateEntryLines(lines); err != nil {
		return nil, err
	}

	period, err := s.periodForDate(ctx, companyID, entry.EntryDate)
	if err != nil {
		return nil, err
	}
	if !period.IsOpen() {
		return nil, fmt.Errorf("%w: period %s is %s", apperrors.ErrClosedPeriod, period.Name, period.Status)
	}

	// Accounts may have been deactivated since the draft was created.
	accountsMap, err := s.resolveAccounts(ctx, companyID, lines, requestingUserID)
	if err != nil {
		return nil, err
	}

	balanceChanges, err := computeBalanceChanges(lines, accountsMap)
	if err != nil {
		logger.Error("Failed to compute balance changes", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	now := time.Now().UTC()
	entry.Status = domain.EntryPosted
	entry.PostedAt = &now
	entry.PostedBy = &requestingUserID
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = requestingUserID

	if err := s.journalRepo.PostEntry(ctx, *entry, balanceChanges); err != nil {
		logger.Error("Failed to post journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	logger.Info("Journal entry posted successfully",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entry.EntryNumber))
	entry.Lines = lines
	return entry, nil
}

// validateReversalAndGetOriginal authorizes the caller and checks the original
// entry can be reversed, returning it with its lines.
func (s *journalService) validateReversalAndGetOriginal(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, []domain.JournalLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for ReverseEntry", "error", err)
		return nil, nil, err
	}

	original, err := s.findEntryInCompany(ctx, companyID, entryID)
	if err != nil {
		return nil, nil, err
	}

	if original.Status == domain.EntryReversed {
		return nil, nil, fmt.Errorf("%w: entry %s is already reversed", apperrors.ErrInvalidState, original.EntryNumber)
	}
	if original.Status != domain.EntryPosted {
		return nil, nil, fmt.Errorf("%w: entry status is %s, expected POSTED", apperrors.ErrInvalidState, original.Status)
	}
	if original.IsReversal() {
		return nil, nil, fmt.Errorf("%w: cannot reverse a reversal entry", apperrors.ErrInvalidState)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch original lines for reversal", "error", err)
		return nil, nil, fmt.Errorf("failed to retrieve original lines: %w", err)
	}
	return original, lines, nil
}

// ReverseEntry creates and posts a mirror-image entry that backs out a posted
// entry. The original becomes REVERSED and the two entries link to each other.
func (s *journalService) ReverseEntry(ctx context.Context, companyID string, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, originalLines, err := s.validateReversalAndGetOriginal(ctx, companyID, entryID, userID)
	if err != nil {
		return nil, err
	}

	reversalDate := original.EntryDate
	if req.ReversalDate != nil {
		reversalDate = *req.ReversalDate
	}

	// The reversal posts immediately, so its period must be open. Reversing
	// into a closed period requires reopening it first.
	period, err := s.periodForDate(ctx, companyID, reversalDate)
	if err != nil {
		return nil, err
	}
	if !period.IsOpen() {
		return nil, fmt.Errorf("%w: period %s is %s", apperrors.ErrClosedPeriod, period.Name, period.Status)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Reversal of: %s", original.Description)
	}

	reversalNumber, err := s.numberSvc.NextJournalNumber(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve entry number for reversal: %w", err)
	}

	// Mirror each line, swapping the debit and credit sides. Tax attributes
	// travel with the swapped line so tax aggregates cancel out too.
	reversalLines := make([]domain.JournalLine, len(originalLines))
	for i, orig := range originalLines {
		reversalLines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     reversalID,
			LineNo:      orig.LineNo,
			AccountID:   orig.AccountID,
			Description: orig.Description,
			Debit:       orig.Credit,
			Credit:      orig.Debit,
			TaxCodeID:   orig.TaxCodeID,
			TaxAmount:   orig.TaxAmount,
			Dimension:   orig.Dimension,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	accountsMap, err := s.resolveAccounts(ctx, companyID, reversalLines, userID)
	if err != nil {
		logger.Error("Failed to fetch accounts for reversal", "error", err)
		return nil, err
	}

	balanceChanges, err := computeBalanceChanges(reversalLines, accountsMap)
	if err != nil {
		return nil, err
	}

	reversal := domain.JournalEntry{
		EntryID:         reversalID,
		CompanyID:       companyID,
		EntryNumber:     reversalNumber,
		JournalType:     original.JournalType,
		EntryDate:       reversalDate,
		Description:     description,
		Reference:       original.Reference,
		Status:          domain.EntryPosted,
		Amount:          original.Amount,
		PostedAt:        &now,
		PostedBy:        &userID,
		OriginalEntryID: &original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveReversalEntry(ctx, reversal, reversalLines, original.EntryID, balanceChanges, userID, now); err != nil {
		logger.Error("Failed to save reversal entry", "error", err, "original_entry_id", original.EntryID)
		return nil, fmt.Errorf("failed to save reversal entry: %w", err)
	}

	logger.Info("Journal entry reversed successfully",
		slog.String("original_entry_id", original.EntryID),
		slog.String("reversal_entry_id", reversalID))
	reversal.Lines = reversalLines
	return &reversal, nil
}

// ListLinesByAccount retrieves posted lines for a specific account.
func (s *journalService) ListLinesByAccount(ctx context.Context, companyID string, accountID string, userID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for ListLinesByAccount", "error", err)
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	lines, nextToken, err := s.journalRepo.ListLinesByAccountID(ctx, companyID, accountID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list lines by account from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve account lines: %w", err)
	}

	logger.Info("Account lines listed successfully", "count", len(lines))
	return dto.ToListLinesResponse(lines, nextToken), nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
