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
)

// taxCodeService implements the TaxCodeSvcFacade interface
type taxCodeService struct {
	BaseService
	taxCodeRepo portsrepo.TaxCodeRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewTaxCodeService creates a new tax code service. The account reader is
// used to validate GL account links.
func NewTaxCodeService(taxCodeRepo portsrepo.TaxCodeRepositoryFacade, accountRepo portsrepo.AccountReader, authorizer portssvc.CompanyAuthorizerSvc) portssvc.TaxCodeSvcFacade {
	return &taxCodeService{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		taxCodeRepo: taxCodeRepo,
		accountRepo: accountRepo,
	}
}

// Ensure taxCodeService implements the TaxCodeSvcFacade interface
var _ portssvc.TaxCodeSvcFacade = (*taxCodeService)(nil)

// checkGLAccount verifies the linked GL account exists and belongs to the company.
func (s *taxCodeService) checkGLAccount(ctx context.Context, companyID string, glAccountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, glAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationFailedError(fmt.Sprintf("GL account %s does not exist", glAccountID))
		}
		return err
	}
	if account.CompanyID != companyID {
		return apperrors.NewValidationFailedError(fmt.Sprintf("GL account %s does not belong to company %s", glAccountID, companyID))
	}
	return nil
}

// CreateTaxCode persists a new tax code
func (s *taxCodeService) CreateTaxCode(ctx context.Context, companyID string, req dto.CreateTaxCodeRequest, userID string) (*domain.TaxCode, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to create tax code",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil, err
	}

	if req.RatePercent.IsNegative() {
		return nil, apperrors.NewValidationFailedError("tax rate must not be negative")
	}
	if req.GLAccountID != nil {
		if err := s.checkGLAccount(ctx, companyID, *req.GLAccountID); err != nil {
			return nil, err
		}
	}

	taxType := req.TaxType
	if taxType == "" {
		taxType = domain.TaxTypeGST
	}

	now := time.Now().UTC()
	taxCode := domain.TaxCode{
		TaxCodeID:   uuid.NewString(),
		CompanyID:   companyID,
		Code:        req.Code,
		Name:        req.Name,
		TaxType:     taxType,
		RatePercent: req.RatePercent,
		IsDefault:   req.IsDefault,
		IsActive:    true,
		GLAccountID: req.GLAccountID,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.taxCodeRepo.SaveTaxCode(ctx, taxCode); err != nil {
		s.LogError(ctx, err, "Failed to save tax code",
			slog.String("tax_code_id", taxCode.TaxCodeID),
			slog.String("company_id", companyID))
		return nil, err
	}

	s.LogInfo(ctx, "Tax code created successfully",
		slog.String("tax_code_id", taxCode.TaxCodeID),
		slog.String("code", taxCode.Code),
		slog.String("company_id", companyID))
	return &taxCode, nil
}

// findTaxCodeInCompany fetches a tax code and verifies it belongs to the
// company. Codes from other companies come back as NotFound.
func (s *taxCodeService) findTaxCodeInCompany(ctx context.Context, companyID string, taxCodeID string) (*domain.TaxCode, error) {
	taxCode, err := s.taxCodeRepo.FindTaxCodeByID(ctx, taxCodeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find tax code by ID",
				slog.String("tax_code_id", taxCodeID))
		}
		return nil, err
	}
	if taxCode.CompanyID != companyID {
		s.LogDebug(ctx, "Tax code found but belongs to different company",
			slog.String("tax_code_id", taxCodeID),
			slog.String("tax_code_company", taxCode.CompanyID),
			slog.String("requested_company", companyID))
		return nil, apperrors.ErrNotFound
	}
	return taxCode, nil
}

// GetTaxCodeByID retrieves a specific tax code
func (s *taxCodeService) GetTaxCodeByID(ctx context.Context, companyID string, taxCodeID string, userID string) (*domain.TaxCode, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findTaxCodeInCompany(ctx, companyID, taxCodeID)
}

// ListTaxCodes retrieves the tax codes of a company
func (s *taxCodeService) ListTaxCodes(ctx context.Context, companyID string, activeOnly bool, userID string) ([]domain.TaxCode, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	taxCodes, err := s.taxCodeRepo.ListTaxCodes(ctx, companyID, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tax codes",
			slog.String("company_id", companyID))
		return nil, err
	}
	if taxCodes == nil {
		return []domain.TaxCode{}, nil
	}
	return taxCodes, nil
}

// UpdateTaxCode updates an existing tax code's details
func (s *taxCodeService) UpdateTaxCode(ctx context.Context, companyID string, taxCodeID string, req dto.UpdateTaxCodeRequest, userID string) (*domain.TaxCode, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to update tax code",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil, err
	}

	taxCode, err := s.findTaxCodeInCompany(ctx, companyID, taxCodeID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		taxCode.Name = *req.Name
		updated = true
	}
	if req.RatePercent != nil {
		if req.RatePercent.IsNegative() {
			return nil, apperrors.NewValidationFailedError("tax rate must not be negative")
		}
		taxCode.RatePercent = *req.RatePercent
		updated = true
	}
	if req.GLAccountID != nil {
		if err := s.checkGLAccount(ctx, companyID, *req.GLAccountID); err != nil {
			return nil, err
		}
		taxCode.GLAccountID = req.GLAccountID
		updated = true
	}
	if req.Description != nil {
		taxCode.Description = *req.Description
		updated = true
	}
	if req.IsDefault != nil {
		taxCode.IsDefault = *req.IsDefault
		updated = true
	}
	if req.IsActive != nil {
		taxCode.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for tax code update",
			slog.String("tax_code_id", taxCodeID))
		return taxCode, nil
	}

	now := time.Now().UTC()
	taxCode.LastUpdatedAt = now
	taxCode.LastUpdatedBy = userID

	if err := s.taxCodeRepo.UpdateTaxCode(ctx, *taxCode); err != nil {
		s.LogError(ctx, err, "Failed to update tax code",
			slog.String("tax_code_id", taxCodeID))
		return nil, err
	}

	s.LogInfo(ctx, "Tax code updated successfully",
		slog.String("tax_code_id", taxCodeID))
	return taxCode, nil
}

// DeactivateTaxCode marks a tax code as inactive
func (s *taxCodeService) DeactivateTaxCode(ctx context.Context, companyID string, taxCodeID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to deactivate tax code",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return err
	}

	if _, err := s.findTaxCodeInCompany(ctx, companyID, taxCodeID); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.taxCodeRepo.DeactivateTaxCode(ctx, taxCodeID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to deactivate tax code",
			slog.String("tax_code_id", taxCodeID))
		return err
	}

	s.LogInfo(ctx, "Tax code deactivated successfully",
		slog.String("tax_code_id", taxCodeID))
	return nil
}
