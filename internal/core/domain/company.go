package domain

import "time"

// Company is the bookkeeping boundary. Every account, fiscal calendar, journal
// entry and tax return belongs to exactly one company, and membership decides
// who may touch its books.
type Company struct {
	CompanyID        string `json:"companyID"` // Primary Key (e.g., UUID)
	Name             string `json:"name"`
	RegistrationNo   string `json:"registrationNo,omitempty"`   // Business registration number (e.g., ACRA UEN)
	GSTRegNo         string `json:"gstRegNo,omitempty"`         // GST registration number, when registered
	IsGSTRegistered  bool   `json:"isGSTRegistered"`            // Enables the tax return workflow
	BaseCurrencyCode string `json:"baseCurrencyCode"`           // Informational; the books are single-currency
	IsActive         bool   `json:"isActive"`
	Version          int64  `json:"version"` // Optimistic locking version
	AuditFields
}

// UserCompanyRole defines the possible roles a user can have within a company.
type UserCompanyRole string

const (
	RoleAdmin    UserCompanyRole = "ADMIN"
	RoleMember   UserCompanyRole = "MEMBER"
	RoleReadOnly UserCompanyRole = "READONLY" // Read-only access to company data
	RoleRemoved  UserCompanyRole = "REMOVED"  // For users who have been removed from the company
)

// UserCompany represents the membership of a User in a Company.
type UserCompany struct {
	UserID    string          `json:"userID"`   // FK -> users.user_id
	UserName  string          `json:"userName"` // Name of the user
	CompanyID string          `json:"companyID"`
	Role      UserCompanyRole `json:"role"`
	JoinedAt  time.Time       `json:"joinedAt"`
}
