package services

import (
	"context"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/dto"
)

// CompanyReaderSvc defines read operations for company data
type CompanyReaderSvc interface {
	// GetCompanyByID retrieves a specific company by its ID.
	// The requesting user must be a member of the company.
	GetCompanyByID(ctx context.Context, companyID string, userID string) (*domain.Company, error)

	// ListUserCompanies retrieves companies the user belongs to.
	ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error)

	// ListCompanyUsers retrieves all users and their roles for a specific company.
	// Only members of the company can access this data.
	ListCompanyUsers(ctx context.Context, companyID string, requestingUserID string) ([]domain.UserCompany, error)
}

// CompanyWriterSvc defines write operations for company data
type CompanyWriterSvc interface {
	// CreateCompany persists a new company, makes the creator an admin and seeds
	// the default chart of accounts, tax codes and document sequences.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)

	// UpdateCompany updates company details.
	UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, requestingUserID string) (*domain.Company, error)

	// DeactivateCompany marks a company as inactive.
	DeactivateCompany(ctx context.Context, companyID string, requestingUserID string) error
}

// CompanyMembershipSvc defines operations for managing company membership
type CompanyMembershipSvc interface {
	// AddUserToCompany adds a user to a company with a specific role.
	AddUserToCompany(ctx context.Context, addingUserID, targetUserID, companyID string, role domain.UserCompanyRole) error

	// RemoveUserFromCompany removes a user from a company.
	// Only company admins can remove users.
	RemoveUserFromCompany(ctx context.Context, requestingUserID, targetUserID, companyID string) error

	// UpdateUserCompanyRole updates a user's role in a company.
	// Only company admins can update user roles.
	UpdateUserCompanyRole(ctx context.Context, requestingUserID, targetUserID, companyID string, newRole domain.UserCompanyRole) error
}

// CompanyAuthorizerSvc defines operations for company authorization
type CompanyAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has required permissions for a company.
	AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error
}

// CompanySvcFacade combines all company-related service interfaces
// This is a facade for clients that need access to all operations
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
	CompanyMembershipSvc
	CompanyAuthorizerSvc
}
