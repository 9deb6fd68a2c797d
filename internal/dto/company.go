package dto

import (
	"time"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

// --- Company DTOs ---

// CreateCompanyRequest defines data for creating a new company.
type CreateCompanyRequest struct {
	Name             string `json:"name" binding:"required"`
	RegistrationNo   string `json:"registrationNo"`
	GSTRegNo         string `json:"gstRegNo"`
	IsGSTRegistered  bool   `json:"isGSTRegistered"`
	BaseCurrencyCode string `json:"baseCurrencyCode" binding:"omitempty,iso4217"`
}

// UpdateCompanyRequest defines data allowed for updating a company.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateCompanyRequest struct {
	Name            *string `json:"name"`
	RegistrationNo  *string `json:"registrationNo"`
	GSTRegNo        *string `json:"gstRegNo"`
	IsGSTRegistered *bool   `json:"isGSTRegistered"`
}

// CompanyResponse defines data returned for a company.
type CompanyResponse struct {
	CompanyID        string    `json:"companyID"`
	Name             string    `json:"name"`
	RegistrationNo   string    `json:"registrationNo,omitempty"`
	GSTRegNo         string    `json:"gstRegNo,omitempty"`
	IsGSTRegistered  bool      `json:"isGSTRegistered"`
	BaseCurrencyCode string    `json:"baseCurrencyCode"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	CreatedBy        string    `json:"createdBy"` // UserID
	LastUpdatedAt    time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy    string    `json:"lastUpdatedBy"` // UserID
}

// ToCompanyResponse converts domain.Company to DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:        c.CompanyID,
		Name:             c.Name,
		RegistrationNo:   c.RegistrationNo,
		GSTRegNo:         c.GSTRegNo,
		IsGSTRegistered:  c.IsGSTRegistered,
		BaseCurrencyCode: c.BaseCurrencyCode,
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
		CreatedBy:        c.CreatedBy,
		LastUpdatedAt:    c.LastUpdatedAt,
		LastUpdatedBy:    c.LastUpdatedBy,
	}
}

// ListCompaniesResponse wraps a list of companies.
type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// ToListCompaniesResponse converts a slice of domain.Company to DTO.
func ToListCompaniesResponse(cs []domain.Company) ListCompaniesResponse {
	list := make([]CompanyResponse, len(cs))
	for i, c := range cs {
		list[i] = ToCompanyResponse(&c)
	}
	return ListCompaniesResponse{Companies: list}
}

// --- User Company Membership DTOs ---

// AddUserToCompanyRequest defines data for adding a user to a company.
type AddUserToCompanyRequest struct {
	UserID string                 `json:"userID" binding:"required"`
	Role   domain.UserCompanyRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// UpdateUserCompanyRoleRequest defines data for changing a member's role.
type UpdateUserCompanyRoleRequest struct {
	Role domain.UserCompanyRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// UserCompanyResponse defines data returned about a user's membership.
type UserCompanyResponse struct {
	UserID    string                 `json:"userID"`
	UserName  string                 `json:"userName,omitempty"`
	CompanyID string                 `json:"companyID"`
	Role      domain.UserCompanyRole `json:"role"`
	JoinedAt  time.Time              `json:"joinedAt"`
}

// ToUserCompanyResponse converts domain.UserCompany to DTO.
func ToUserCompanyResponse(uc *domain.UserCompany) UserCompanyResponse {
	return UserCompanyResponse{
		UserID:    uc.UserID,
		UserName:  uc.UserName,
		CompanyID: uc.CompanyID,
		Role:      uc.Role,
		JoinedAt:  uc.JoinedAt,
	}
}

// ToListUserCompanyResponse converts a slice of domain.UserCompany to DTO.
func ToListUserCompanyResponse(ucs []domain.UserCompany) []UserCompanyResponse {
	list := make([]UserCompanyResponse, len(ucs))
	for i, uc := range ucs {
		list[i] = ToUserCompanyResponse(&uc)
	}
	return list
}
