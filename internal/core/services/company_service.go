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

// companyService implements the CompanySvcFacade interface
type companyService struct {
	BaseService
	companyRepo  portsrepo.CompanyRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	taxCodeRepo  portsrepo.TaxCodeRepositoryFacade
	sequenceRepo portsrepo.SequenceRepository
}

// NewCompanyService creates a new company service with the provided dependencies.
// The account, tax code and sequence repositories are needed to seed the
// defaults a fresh company starts with.
func NewCompanyService(
	companyRepo portsrepo.CompanyRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	taxCodeRepo portsrepo.TaxCodeRepositoryFacade,
	sequenceRepo portsrepo.SequenceRepository,
) portssvc.CompanySvcFacade {
	return &companyService{
		companyRepo:  companyRepo,
		accountRepo:  accountRepo,
		taxCodeRepo:  taxCodeRepo,
		sequenceRepo: sequenceRepo,
	}
}

// Ensure companyService implements the CompanySvcFacade interface
var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// GetCompanyByID retrieves a company by its ID
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string, userID string) (*domain.Company, error) {
	if err := s.AuthorizeUserAction(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company by ID",
				slog.String("company_id", companyID))
		}
		return nil, err
	}

	s.LogDebug(ctx, "Company retrieved successfully",
		slog.String("company_id", company.CompanyID))
	return company, nil
}

// ListUserCompanies retrieves all companies a user belongs to
func (s *companyService) ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompaniesByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies for user",
			slog.String("user_id", userID))
		return nil, err
	}

	if companies == nil {
		return []domain.Company{}, nil
	}

	s.LogDebug(ctx, "Companies listed successfully",
		slog.Int("count", len(companies)),
		slog.String("user_id", userID))
	return companies, nil
}

// ListCompanyUsers retrieves the memberships of a company
func (s *companyService) ListCompanyUsers(ctx context.Context, companyID string, requestingUserID string) ([]domain.UserCompany, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	memberships, err := s.companyRepo.ListUsersInCompany(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users in company",
			slog.String("company_id", companyID))
		return nil, err
	}

	if memberships == nil {
		return []domain.UserCompany{}, nil
	}

	return memberships, nil
}

// CreateCompany creates a new company, makes the creator its admin and seeds
// the default chart of accounts, tax codes and document sequences.
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	now := time.Now().UTC()
	companyID := uuid.NewString()

	baseCurrency := req.BaseCurrencyCode
	if baseCurrency == "" {
		baseCurrency = "SGD"
	}

	company := domain.Company{
		CompanyID:        companyID,
		Name:             req.Name,
		RegistrationNo:   req.RegistrationNo,
		GSTRegNo:         req.GSTRegNo,
		IsGSTRegistered:  req.IsGSTRegistered,
		BaseCurrencyCode: baseCurrency,
		IsActive:         true,
		Version:          1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to save company",
			slog.String("company_id", companyID))
		return nil, err
	}

	// Make the creator an admin. This goes straight to the repository: the
	// service-level AddUserToCompany requires an existing admin.
	membership := domain.UserCompany{
		UserID:    creatorUserID,
		CompanyID: companyID,
		Role:      domain.RoleAdmin,
		JoinedAt:  now,
	}
	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add creator as admin to new company",
			slog.String("company_id", companyID),
			slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to grant creator access to company: %w", err)
	}

	if err := s.seedCompanyDefaults(ctx, companyID, creatorUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to seed defaults for new company",
			slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to seed company defaults: %w", err)
	}

	s.LogInfo(ctx, "Company created successfully",
		slog.String("company_id", companyID),
		slog.String("creator_id", creatorUserID))
	return &company, nil
}

// UpdateCompany updates company details
func (s *companyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, requestingUserID string) (*domain.Company, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		company.Name = *req.Name
		updated = true
	}
	if req.RegistrationNo != nil {
		company.RegistrationNo = *req.RegistrationNo
		updated = true
	}
	if req.GSTRegNo != nil {
		company.GSTRegNo = *req.GSTRegNo
		updated = true
	}
	if req.IsGSTRegistered != nil {
		company.IsGSTRegistered = *req.IsGSTRegistered
		updated = true
	}

	if !updated {
		s.LogDebug(ctx, "No fields provided for company update",
			slog.String("company_id", companyID))
		return company, nil
	}

	now := time.Now().UTC()
	company.LastUpdatedAt = now
	company.LastUpdatedBy = requestingUserID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		s.LogError(ctx, err, "Failed to update company",
			slog.String("company_id", companyID))
		return nil, err
	}

	company.Version++

	s.LogInfo(ctx, "Company updated successfully",
		slog.String("company_id", companyID))
	return company, nil
}

// DeactivateCompany marks a company as inactive
func (s *companyService) DeactivateCompany(ctx context.Context, companyID string, requestingUserID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.companyRepo.DeactivateCompany(ctx, companyID, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate company",
			slog.String("company_id", companyID))
		return err
	}

	s.LogInfo(ctx, "Company deactivated successfully",
		slog.String("company_id", companyID))
	return nil
}

// AddUserToCompany adds a user to a company with a specific role
func (s *companyService) AddUserToCompany(ctx context.Context, addingUserID, targetUserID, companyID string, role domain.UserCompanyRole) error {
	if err := s.AuthorizeUserAction(ctx, addingUserID, companyID, domain.RoleAdmin); err != nil {
		s.LogError(ctx, err, "User not authorized to add members to company",
			slog.String("adding_user_id", addingUserID),
			slog.String("company_id", companyID))
		return err
	}

	membership := domain.UserCompany{
		UserID:    targetUserID,
		CompanyID: companyID,
		Role:      role,
		JoinedAt:  time.Now().UTC(),
	}

	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add user to company",
			slog.String("target_user_id", targetUserID),
			slog.String("company_id", companyID))
		return err
	}

	s.LogInfo(ctx, "User added to company successfully",
		slog.String("target_user_id", targetUserID),
		slog.String("company_id", companyID),
		slog.String("role", string(role)))
	return nil
}

// RemoveUserFromCompany marks a user's membership as removed
func (s *companyService) RemoveUserFromCompany(ctx context.Context, requestingUserID, targetUserID, companyID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		s.LogError(ctx, err, "User not authorized to remove members from company",
			slog.String("requesting_user_id", requestingUserID),
			slog.String("company_id", companyID))
		return err
	}

	if err := s.companyRepo.RemoveUserFromCompany(ctx, targetUserID, companyID); err != nil {
		s.LogError(ctx, err, "Failed to remove user from company",
			slog.String("target_user_id", targetUserID),
			slog.String("company_id", companyID))
		return err
	}

	s.LogInfo(ctx, "User removed from company",
		slog.String("target_user_id", targetUserID),
		slog.String("company_id", companyID))
	return nil
}

// UpdateUserCompanyRole updates a user's role in a company
func (s *companyService) UpdateUserCompanyRole(ctx context.Context, requestingUserID, targetUserID, companyID string, newRole domain.UserCompanyRole) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		s.LogError(ctx, err, "User not authorized to update member roles",
			slog.String("requesting_user_id", requestingUserID),
			slog.String("company_id", companyID))
		return err
	}

	// The target must currently be a member; a removed user is re-added via
	// AddUserToCompany, not a role change.
	existing, err := s.companyRepo.FindUserCompanyRole(ctx, targetUserID, companyID)
	if err != nil {
		return err
	}
	if existing.Role == domain.RoleRemoved {
		return apperrors.NewNotFoundError("user is not a member of this company")
	}

	membership := domain.UserCompany{
		UserID:    targetUserID,
		CompanyID: companyID,
		Role:      newRole,
		JoinedAt:  existing.JoinedAt,
	}
	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to update user role in company",
			slog.String("target_user_id", targetUserID),
			slog.String("company_id", companyID))
		return err
	}

	s.LogInfo(ctx, "User role updated in company",
		slog.String("target_user_id", targetUserID),
		slog.String("company_id", companyID),
		slog.String("new_role", string(newRole)))
	return nil
}

// AuthorizeUserAction checks if a user has required permissions for a company
func (s *companyService) AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error {
	membership, err := s.companyRepo.FindUserCompanyRole(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of company",
				slog.String("user_id", userID),
				slog.String("company_id", companyID))
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find user company role",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return err
	}

	if !hasRequiredRole(membership.Role, requiredRole) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("company_id", companyID),
			slog.String("user_role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}

	return nil
}

// hasRequiredRole checks if the user's role meets or exceeds the required role.
// A removed membership never grants access.
func hasRequiredRole(userRole, requiredRole domain.UserCompanyRole) bool {
	switch requiredRole {
	case domain.RoleReadOnly:
		return userRole == domain.RoleReadOnly || userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleMember:
		return userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleAdmin:
		return userRole == domain.RoleAdmin
	default:
		return false
	}
}
