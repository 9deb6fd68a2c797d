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
	"github.com/quillbooks/quillbooks_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// taxReturnService implements the TaxReturnSvcFacade interface
type taxReturnService struct {
	BaseService
	taxReturnRepo portsrepo.TaxReturnRepositoryFacade
	companyRepo   portsrepo.CompanyReader
	accountRepo   portsrepo.AccountReader
	journalSvc    portssvc.JournalSvcFacade
	numberSvc     portssvc.DocumentNumberSvc
}

// NewTaxReturnService creates a new tax return service. Settlement entries
// are created through the journal service so they follow the same validation
// and posting path as any other entry.
func NewTaxReturnService(
	taxReturnRepo portsrepo.TaxReturnRepositoryFacade,
	companyRepo portsrepo.CompanyReader,
	accountRepo portsrepo.AccountReader,
	journalSvc portssvc.JournalSvcFacade,
	numberSvc portssvc.DocumentNumberSvc,
	authorizer portssvc.CompanyAuthorizerSvc,
) portssvc.TaxReturnSvcFacade {
	return &taxReturnService{
		BaseService:   BaseService{CompanyAuthorizer: authorizer},
		taxReturnRepo: taxReturnRepo,
		companyRepo:   companyRepo,
		accountRepo:   accountRepo,
		journalSvc:    journalSvc,
		numberSvc:     numberSvc,
	}
}

// Ensure taxReturnService implements the TaxReturnSvcFacade interface
var _ portssvc.TaxReturnSvcFacade = (*taxReturnService)(nil)

// returnDueDate computes the filing deadline: the last day of the month
// following the period end.
func returnDueDate(periodEnd time.Time) time.Time {
	return time.Date(periodEnd.Year(), periodEnd.Month()+2, 0, 0, 0, 0, 0, time.UTC)
}

// PrepareTaxReturn derives a draft GST return from posted journal activity in
// the requested date range. The box values are a snapshot of the ledger at
// preparation time.
func (s *taxReturnService) PrepareTaxReturn(ctx context.Context, companyID string, req dto.PrepareTaxReturnRequest, userID string) (*domain.TaxReturn, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to prepare tax return",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil, err
	}

	if req.EndDate.Before(req.StartDate) {
		return nil, apperrors.NewValidationFailedError("tax return end date must not be before its start date")
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load company for tax return",
			slog.String("company_id", companyID))
		return nil, err
	}
	if !company.IsGSTRegistered {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("company %s is not GST registered", company.Name))
	}

	// Only submitted returns block the window; an abandoned draft does not.
	existing, err := s.taxReturnRepo.FindOverlappingReturn(ctx, companyID, req.StartDate, req.EndDate)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for overlapping tax returns",
			slog.String("company_id", companyID))
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError(fmt.Sprintf("reporting period overlaps tax return %s", existing.ReturnNo))
	}

	rows, err := s.taxReturnRepo.AggregateTaxActivity(ctx, companyID, req.StartDate, req.EndDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate tax activity",
			slog.String("company_id", companyID))
		return nil, err
	}

	boxes := deriveReturnBoxes(rows)

	returnNo, err := s.numberSvc.NextTaxReturnNumber(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve tax return number: %w", err)
	}

	now := time.Now().UTC()
	taxReturn := domain.TaxReturn{
		TaxReturnID:           uuid.NewString(),
		CompanyID:             companyID,
		ReturnNo:              returnNo,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		DueDate:               returnDueDate(req.EndDate),
		StandardRatedSupplies: boxes.standardRatedSupplies,
		ZeroRatedSupplies:     boxes.zeroRatedSupplies,
		ExemptSupplies:        boxes.exemptSupplies,
		TotalSupplies:         boxes.totalSupplies,
		TaxablePurchases:      boxes.taxablePurchases,
		OutputTax:             boxes.outputTax,
		InputTax:              boxes.inputTax,
		Adjustments:           decimal.Zero,
		NetTax:                boxes.netTax,
		Status:                domain.TaxReturnDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.taxReturnRepo.SaveTaxReturn(ctx, taxReturn); err != nil {
		s.LogError(ctx, err, "Failed to save tax return",
			slog.String("tax_return_id", taxReturn.TaxReturnID),
			slog.String("company_id", companyID))
		return nil, err
	}

	s.LogInfo(ctx, "Tax return prepared successfully",
		slog.String("tax_return_id", taxReturn.TaxReturnID),
		slog.String("return_no", returnNo),
		slog.String("net_tax", taxReturn.NetTax.StringFixed(2)))
	return &taxReturn, nil
}

type returnBoxes struct {
	standardRatedSupplies decimal.Decimal
	zeroRatedSupplies     decimal.Decimal
	exemptSupplies        decimal.Decimal
	totalSupplies         decimal.Decimal
	taxablePurchases      decimal.Decimal
	outputTax             decimal.Decimal
	inputTax              decimal.Decimal
	netTax                decimal.Decimal
}

// deriveReturnBoxes classifies aggregated tax activity into the F5 boxes.
// Supply codes only count on revenue accounts and purchase codes only on
// expense or asset accounts, so a mis-tagged line never distorts a box.
// Supplies are credit-normal and purchases debit-normal, so each side nets
// out its corrections. Blocked purchases count toward the purchase total but
// never contribute input tax.
func deriveReturnBoxes(rows []domain.TaxActivityRow) returnBoxes {
	b := returnBoxes{
		standardRatedSupplies: decimal.Zero,
		zeroRatedSupplies:     decimal.Zero,
		exemptSupplies:        decimal.Zero,
		totalSupplies:         decimal.Zero,
		taxablePurchases:      decimal.Zero,
		outputTax:             decimal.Zero,
		inputTax:              decimal.Zero,
		netTax:                decimal.Zero,
	}

	for _, row := range rows {
		switch row.TaxCode {
		case domain.TaxCodeStandardRated:
			if row.AccountType != domain.Revenue {
				continue
			}
			b.standardRatedSupplies = b.standardRatedSupplies.Add(row.CreditTotal.Sub(row.DebitTotal))
			b.outputTax = b.outputTax.Add(row.TaxOnCredits.Sub(row.TaxOnDebits))
		case domain.TaxCodeZeroRated:
			if row.AccountType != domain.Revenue {
				continue
			}
			b.zeroRatedSupplies = b.zeroRatedSupplies.Add(row.CreditTotal.Sub(row.DebitTotal))
		case domain.TaxCodeExempt:
			if row.AccountType != domain.Revenue {
				continue
			}
			b.exemptSupplies = b.exemptSupplies.Add(row.CreditTotal.Sub(row.DebitTotal))
		case domain.TaxCodeTaxablePurchase:
			if row.AccountType != domain.Expense && row.AccountType != domain.Asset {
				continue
			}
			b.taxablePurchases = b.taxablePurchases.Add(row.DebitTotal.Sub(row.CreditTotal))
			b.inputTax = b.inputTax.Add(row.TaxOnDebits.Sub(row.TaxOnCredits))
		case domain.TaxCodeBlockedPurchase:
			if row.AccountType != domain.Expense && row.AccountType != domain.Asset {
				continue
			}
			b.taxablePurchases = b.taxablePurchases.Add(row.DebitTotal.Sub(row.CreditTotal))
		}
	}

	b.standardRatedSupplies = accounting.RoundMoney(b.standardRatedSupplies)
	b.zeroRatedSupplies = accounting.RoundMoney(b.zeroRatedSupplies)
	b.exemptSupplies = accounting.RoundMoney(b.exemptSupplies)
	b.totalSupplies = b.standardRatedSupplies.Add(b.zeroRatedSupplies).Add(b.exemptSupplies)
	b.taxablePurchases = accounting.RoundMoney(b.taxablePurchases)
	b.outputTax = accounting.RoundMoney(b.outputTax)
	b.inputTax = accounting.RoundMoney(b.inputTax)
	b.netTax = b.outputTax.Sub(b.inputTax)
	return b
}

// findReturnInCompany fetches a tax return and verifies it belongs to the
// company. Returns from other companies come back as NotFound.
func (s *taxReturnService) findReturnInCompany(ctx context.Context, companyID string, taxReturnID string) (*domain.TaxReturn, error) {
	taxReturn, err := s.taxReturnRepo.FindTaxReturnByID(ctx, taxReturnID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find tax return by ID",
				slog.String("tax_return_id", taxReturnID))
		}
		return nil, err
	}
	if taxReturn.CompanyID != companyID {
		s.LogDebug(ctx, "Tax return found but belongs to different company",
			slog.String("tax_return_id", taxReturnID),
			slog.String("return_company", taxReturn.CompanyID),
			slog.String("requested_company", companyID))
		return nil, apperrors.ErrNotFound
	}
	return taxReturn, nil
}

// GetTaxReturnByID retrieves a specific tax return
func (s *taxReturnService) GetTaxReturnByID(ctx context.Context, companyID string, taxReturnID string, userID string) (*domain.TaxReturn, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findReturnInCompany(ctx, companyID, taxReturnID)
}

// ListTaxReturns retrieves a paginated list of tax returns for a company
func (s *taxReturnService) ListTaxReturns(ctx context.Context, companyID string, limit int, offset int, userID string) ([]domain.TaxReturn, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	returns, err := s.taxReturnRepo.ListTaxReturnsByCompany(ctx, companyID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tax returns",
			slog.String("company_id", companyID))
		return nil, err
	}
	if returns == nil {
		return []domain.TaxReturn{}, nil
	}
	return returns, nil
}

// FinalizeTaxReturn marks a draft return as submitted and posts the
// settlement entry that clears the GST control accounts. The submission
// stands even when the settlement entry cannot be posted; in that case the
// returned error wraps ErrSettlementFailed and SettlementEntryID stays
// empty so the entry can be booked by hand.
func (s *taxReturnService) FinalizeTaxReturn(ctx context.Context, companyID string, taxReturnID string, req dto.FinalizeTaxReturnRequest, userID string) (*domain.TaxReturn, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to finalize tax return",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil, err
	}

	taxReturn, err := s.findReturnInCompany(ctx, companyID, taxReturnID)
	if err != nil {
		return nil, err
	}
	if taxReturn.Status != domain.TaxReturnDraft {
		return nil, fmt.Errorf("%w: only draft returns can be finalized, status is %s", apperrors.ErrInvalidState, taxReturn.Status)
	}

	settlementEntryID, settlementErr := s.postSettlementEntry(ctx, companyID, taxReturn, userID)

	now := time.Now().UTC()
	taxReturn.Status = domain.TaxReturnSubmitted
	taxReturn.SubmissionRef = req.SubmissionRef
	taxReturn.SubmittedAt = &now
	taxReturn.SettlementEntryID = settlementEntryID
	taxReturn.LastUpdatedAt = now
	taxReturn.LastUpdatedBy = userID

	if err := s.taxReturnRepo.UpdateTaxReturn(ctx, *taxReturn); err != nil {
		s.LogError(ctx, err, "Failed to mark tax return submitted",
			slog.String("tax_return_id", taxReturnID))
		if settlementEntryID != nil {
			// The settlement entry is posted and carries the return as its
			// source document, so it stays discoverable for reconciliation.
			s.LogError(ctx, err, "Settlement entry posted but return update failed",
				slog.String("tax_return_id", taxReturnID),
				slog.String("settlement_entry_id", *settlementEntryID))
		}
		return nil, err
	}

	if settlementErr != nil {
		s.LogError(ctx, settlementErr, "Tax return submitted without settlement entry",
			slog.String("tax_return_id", taxReturnID))
		return taxReturn, fmt.Errorf("%w: %v", apperrors.ErrSettlementFailed, settlementErr)
	}

	s.LogInfo(ctx, "Tax return finalized successfully",
		slog.String("tax_return_id", taxReturnID),
		slog.String("return_no", taxReturn.ReturnNo))
	return taxReturn, nil
}

// AmendTaxReturn flags a submitted return as amended. The filed figures are
// kept untouched; corrected figures belong on a replacement return covering
// the same window. The reason lands in the audit log, not on the return.
func (s *taxReturnService) AmendTaxReturn(ctx context.Context, companyID string, taxReturnID string, req dto.AmendTaxReturnRequest, userID string) (*domain.TaxReturn, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to amend tax return",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil, err
	}

	taxReturn, err := s.findReturnInCompany(ctx, companyID, taxReturnID)
	if err != nil {
		return nil, err
	}
	if taxReturn.Status != domain.TaxReturnSubmitted {
		return nil, fmt.Errorf("%w: only submitted returns can be amended, status is %s", apperrors.ErrInvalidState, taxReturn.Status)
	}

	now := time.Now().UTC()
	taxReturn.Status = domain.TaxReturnAmended
	taxReturn.LastUpdatedAt = now
	taxReturn.LastUpdatedBy = userID

	if err := s.taxReturnRepo.UpdateTaxReturn(ctx, *taxReturn); err != nil {
		s.LogError(ctx, err, "Failed to mark tax return amended",
			slog.String("tax_return_id", taxReturnID))
		return nil, err
	}

	s.LogInfo(ctx, "Tax return amended",
		slog.String("tax_return_id", taxReturnID),
		slog.String("return_no", taxReturn.ReturnNo),
		slog.String("reason", req.Reason))
	return taxReturn, nil
}

// postSettlementEntry creates and posts the journal entry that clears the
// GST output and input accounts into the clearing account. A return with no
// tax on either side needs no settlement and yields a nil entry ID.
func (s *taxReturnService) postSettlementEntry(ctx context.Context, companyID string, taxReturn *domain.TaxReturn, userID string) (*string, error) {
	if taxReturn.OutputTax.IsZero() && taxReturn.InputTax.IsZero() && taxReturn.NetTax.IsZero() {
		s.LogDebug(ctx, "Tax return has no tax to settle, skipping settlement entry",
			slog.String("tax_return_id", taxReturn.TaxReturnID))
		return nil, nil
	}

	lines := make([]dto.CreateJournalLineRequest, 0, 3)
	if !taxReturn.OutputTax.IsZero() {
		outputAcc, err := s.accountRepo.FindAccountByCode(ctx, companyID, gstOutputAccountCode)
		if err != nil {
			return nil, fmt.Errorf("GST output account %s: %w", gstOutputAccountCode, err)
		}
		lines = append(lines, dto.CreateJournalLineRequest{
			AccountID:   outputAcc.AccountID,
			Description: "Clear GST output tax",
			Debit:       taxReturn.OutputTax,
		})
	}
	if !taxReturn.InputTax.IsZero() {
		inputAcc, err := s.accountRepo.FindAccountByCode(ctx, companyID, gstInputAccountCode)
		if err != nil {
			return nil, fmt.Errorf("GST input account %s: %w", gstInputAccountCode, err)
		}
		lines = append(lines, dto.CreateJournalLineRequest{
			AccountID:   inputAcc.AccountID,
			Description: "Clear GST input tax",
			Credit:      taxReturn.InputTax,
		})
	}
	if !taxReturn.NetTax.IsZero() {
		clearingAcc, err := s.accountRepo.FindAccountByCode(ctx, companyID, gstClearingAccountCode)
		if err != nil {
			return nil, fmt.Errorf("GST clearing account %s: %w", gstClearingAccountCode, err)
		}
		line := dto.CreateJournalLineRequest{AccountID: clearingAcc.AccountID}
		if taxReturn.IsPayable() {
			line.Description = "GST payable to IRAS"
			line.Credit = taxReturn.NetTax
		} else {
			line.Description = "GST refundable from IRAS"
			line.Debit = taxReturn.NetTax.Neg()
		}
		lines = append(lines, line)
	}

	sourceKind := domain.SourceTaxReturn
	sourceID := taxReturn.TaxReturnID
	req := dto.CreateJournalEntryRequest{
		EntryDate:   taxReturn.EndDate,
		JournalType: domain.JournalTax,
		Description: fmt.Sprintf("GST settlement for return %s", taxReturn.ReturnNo),
		SourceKind:  &sourceKind,
		SourceID:    &sourceID,
		Lines:       lines,
	}

	draft, err := s.journalSvc.CreateEntry(ctx, companyID, req, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to draft settlement entry: %w", err)
	}

	posted, err := s.journalSvc.PostEntry(ctx, companyID, draft.EntryID, userID)
	if err != nil {
		// The abandoned draft has no ledger effect.
		return nil, fmt.Errorf("failed to post settlement entry %s: %w", draft.EntryNumber, err)
	}

	return &posted.EntryID, nil
}
