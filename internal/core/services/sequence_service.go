package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
)

// documentNumberService implements the DocumentNumberSvc interface
type documentNumberService struct {
	BaseService
	sequenceRepo portsrepo.SequenceRepository
}

// NewDocumentNumberService creates a new document number service
func NewDocumentNumberService(sequenceRepo portsrepo.SequenceRepository) portssvc.DocumentNumberSvc {
	return &documentNumberService{
		sequenceRepo: sequenceRepo,
	}
}

// Ensure documentNumberService implements the DocumentNumberSvc interface
var _ portssvc.DocumentNumberSvc = (*documentNumberService)(nil)

func (s *documentNumberService) NextJournalNumber(ctx context.Context, companyID string) (string, error) {
	return s.nextNumber(ctx, companyID, domain.SequenceJournal)
}

func (s *documentNumberService) NextTaxReturnNumber(ctx context.Context, companyID string) (string, error) {
	return s.nextNumber(ctx, companyID, domain.SequenceTaxReturn)
}

func (s *documentNumberService) nextNumber(ctx context.Context, companyID string, kind string) (string, error) {
	seq, err := s.sequenceRepo.ReserveNextNumber(ctx, companyID, kind)
	if err != nil {
		s.LogError(ctx, err, "Failed to reserve next document number",
			slog.String("company_id", companyID),
			slog.String("kind", kind))
		return "", err
	}

	formatted := formatDocumentNumber(seq.Prefix, seq.Padding, seq.LastNumber)
	s.LogDebug(ctx, "Document number reserved",
		slog.String("company_id", companyID),
		slog.String("kind", kind),
		slog.String("number", formatted))
	return formatted, nil
}

// formatDocumentNumber renders a reserved number as prefix plus the counter
// zero-padded to the configured width. Counters beyond the width simply grow
// longer, e.g. JE-1000000 after JE-999999.
func formatDocumentNumber(prefix string, padding int, number int64) string {
	return fmt.Sprintf("%s%0*d", prefix, padding, number)
}
