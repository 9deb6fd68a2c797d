package mapping

import (
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:          d.AccountID,
		CompanyID:          d.CompanyID,
		Code:               d.Code,
		Name:               d.Name,
		AccountType:        string(d.AccountType),
		SubType:            d.SubType,
		ParentAccountID:    PtrToNullString(d.ParentAccountID),
		Description:        d.Description,
		OpeningBalance:     d.OpeningBalance,
		OpeningBalanceDate: PtrToNullTime(d.OpeningBalanceDate),
		IsActive:           d.IsActive,
		IsControlAccount:   d.IsControlAccount,
		IsBankAccount:      d.IsBankAccount,
		Balance:            d.Balance,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:          m.AccountID,
		CompanyID:          m.CompanyID,
		Code:               m.Code,
		Name:               m.Name,
		AccountType:        domain.AccountType(m.AccountType),
		SubType:            m.SubType,
		ParentAccountID:    NullStringToPtr(m.ParentAccountID),
		Description:        m.Description,
		OpeningBalance:     m.OpeningBalance,
		OpeningBalanceDate: NullTimeToPtr(m.OpeningBalanceDate),
		IsActive:           m.IsActive,
		IsControlAccount:   m.IsControlAccount,
		IsBankAccount:      m.IsBankAccount,
		Balance:            m.Balance,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
