package accounting_test

import (
	"testing"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		debit       string
		credit      string
		want        string
		wantErr     bool
	}{
		{name: "debit to asset increases", accountType: domain.Asset, debit: "100", credit: "0", want: "100"},
		{name: "credit to asset decreases", accountType: domain.Asset, debit: "0", credit: "40", want: "-40"},
		{name: "debit to expense increases", accountType: domain.Expense, debit: "25.50", credit: "0", want: "25.50"},
		{name: "credit to liability increases", accountType: domain.Liability, debit: "0", credit: "75", want: "75"},
		{name: "debit to liability decreases", accountType: domain.Liability, debit: "75", credit: "0", want: "-75"},
		{name: "credit to revenue increases", accountType: domain.Revenue, debit: "0", credit: "90", want: "90"},
		{name: "credit to equity increases", accountType: domain.Equity, debit: "0", credit: "1000", want: "1000"},
		{name: "unknown account type", accountType: domain.AccountType("BOGUS"), debit: "10", credit: "0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := domain.JournalLine{
				AccountID: "acc_123",
				Debit:     decimal.RequireFromString(tt.debit),
				Credit:    decimal.RequireFromString(tt.credit),
			}
			got, err := accounting.SignedAmount(tt.accountType, line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestEntryTotals_SkipsPlaceholders(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "acc_1", Debit: decimal.RequireFromString("100.00"), Credit: decimal.Zero},
		{AccountID: "acc_2", Debit: decimal.Zero, Credit: decimal.RequireFromString("100.00")},
		{AccountID: "acc_3", Debit: decimal.Zero, Credit: decimal.Zero}, // placeholder
	}

	debits, credits := accounting.EntryTotals(lines)

	assert.True(t, debits.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, credits.Equal(decimal.RequireFromString("100.00")))
}

func TestIsBalanced(t *testing.T) {
	tests := []struct {
		name    string
		debits  string
		credits string
		want    bool
	}{
		{name: "exactly equal", debits: "100.00", credits: "100.00", want: true},
		{name: "one cent off", debits: "100.00", credits: "99.99", want: false},
		{name: "under half a cent off", debits: "100.004", credits: "100.00", want: true},
		{name: "exactly at tolerance", debits: "100.005", credits: "100.00", want: false},
		{name: "credits exceed debits", debits: "99.99", credits: "100.00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.IsBalanced(
				decimal.RequireFromString(tt.debits),
				decimal.RequireFromString(tt.credits),
			)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "half rounds up", in: "8.105", want: "8.11"},
		{name: "below half rounds down", in: "8.104", want: "8.10"},
		{name: "two places unchanged", in: "8.10", want: "8.10"},
		{name: "negative half rounds away from zero", in: "-8.105", want: "-8.11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.RoundMoney(decimal.RequireFromString(tt.in))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}
