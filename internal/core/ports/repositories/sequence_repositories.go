package repositories

import (
	"context"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

// SequenceRepository defines operations on per-company document sequences
type SequenceRepository interface {
	// ReserveNextNumber atomically increments the sequence for the kind and
	// returns the updated row. Reserved numbers are never reused, so a failed
	// save downstream leaves a gap.
	ReserveNextNumber(ctx context.Context, companyID string, kind string) (*domain.DocumentSequence, error)

	// PeekSequence returns the sequence row without advancing it.
	PeekSequence(ctx context.Context, companyID string, kind string) (*domain.DocumentSequence, error)

	// EnsureSequence creates the sequence row with the given defaults if it
	// does not exist yet.
	EnsureSequence(ctx context.Context, seq domain.DocumentSequence) error
}
