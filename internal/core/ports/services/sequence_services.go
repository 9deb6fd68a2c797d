package services

import (
	"context"
)

// DocumentNumberSvc hands out per-company document numbers. Reservation is
// atomic so concurrent callers never receive the same number; numbers are
// not reused, so an abandoned reservation leaves a gap.
type DocumentNumberSvc interface {
	// NextJournalNumber reserves and formats the next journal entry number.
	NextJournalNumber(ctx context.Context, companyID string) (string, error)

	// NextTaxReturnNumber reserves and formats the next tax return number.
	NextTaxReturnNumber(ctx context.Context, companyID string) (string, error)
}
