package accounting

import (
	"fmt"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest absolute difference between debit and credit
// totals that still counts as balanced. Amounts carry two decimal places, so
// anything below half a cent is rounding noise.
var BalanceTolerance = decimal.New(5, -3) // 0.005

// SignedAmount converts one journal line into the signed delta it applies to
// its account's balance. This is used in both services and repositories to
// keep the accounting convention in one place.
//
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func SignedAmount(accountType domain.AccountType, line domain.JournalLine) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return line.Debit.Sub(line.Credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return line.Credit.Sub(line.Debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
}

// EntryTotals sums the debit and credit sides of an entry's lines. Placeholder
// lines contribute nothing to either total.
func EntryTotals(lines []domain.JournalLine) (totalDebits, totalCredits decimal.Decimal) {
	totalDebits = decimal.Zero
	totalCredits = decimal.Zero
	for _, line := range lines {
		if line.IsPlaceholder() {
			continue
		}
		totalDebits = totalDebits.Add(line.Debit)
		totalCredits = totalCredits.Add(line.Credit)
	}
	return totalDebits, totalCredits
}

// IsBalanced reports whether the two totals differ by less than BalanceTolerance.
func IsBalanced(totalDebits, totalCredits decimal.Decimal) bool {
	return totalDebits.Sub(totalCredits).Abs().LessThan(BalanceTolerance)
}

// RoundMoney rounds to two decimal places, half away from zero. Persisted
// monetary amounts and tax box values go through this before saving.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
