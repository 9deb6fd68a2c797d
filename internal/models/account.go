package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Account represents a row of the accounts table.
// Nullable foreign keys use sql null types; mapping converts them to pointers.
type Account struct {
	AccountID          string          `db:"account_id"`
	CompanyID          string          `db:"company_id"`
	Code               string          `db:"code"`
	Name               string          `db:"name"`
	AccountType        string          `db:"account_type"`
	SubType            string          `db:"sub_type"`
	ParentAccountID    sql.NullString  `db:"parent_account_id"`
	Description        string          `db:"description"`
	OpeningBalance     decimal.Decimal `db:"opening_balance"`
	OpeningBalanceDate sql.NullTime    `db:"opening_balance_date"`
	IsActive           bool            `db:"is_active"`
	IsControlAccount   bool            `db:"is_control_account"`
	IsBankAccount      bool            `db:"is_bank_account"`
	Balance            decimal.Decimal `db:"balance"`
	AuditFields
}
