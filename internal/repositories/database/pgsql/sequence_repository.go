package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	"github.com/quillbooks/quillbooks_app/internal/models"
	"github.com/quillbooks/quillbooks_app/internal/utils/mapping"
)

type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for document sequences.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxSequenceRepository implements portsrepo.SequenceRepository
var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// ReserveNextNumber increments the sequence and returns the updated row. The
// single UPDATE ... RETURNING keeps concurrent reservations from receiving the
// same number.
func (r *PgxSequenceRepository) ReserveNextNumber(ctx context.Context, companyID string, kind string) (*domain.DocumentSequence, error) {
	query := `
		UPDATE document_sequences
		SET last_number = last_number + 1, last_updated_at = $3
		WHERE company_id = $1 AND kind = $2
		RETURNING company_id, kind, prefix, padding, last_number, last_updated_at;
	`

	var m models.DocumentSequence
	err := r.Pool.QueryRow(ctx, query, companyID, kind, time.Now().UTC()).Scan(
		&m.CompanyID,
		&m.Kind,
		&m.Prefix,
		&m.Padding,
		&m.LastNumber,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("document sequence " + kind + " not found for company " + companyID)
		}
		return nil, apperrors.NewAppError(500, "failed to reserve next "+kind+" number for company "+companyID, err)
	}

	seq := mapping.ToDomainDocumentSequence(m)
	return &seq, nil
}

// PeekSequence returns the sequence row without advancing it.
func (r *PgxSequenceRepository) PeekSequence(ctx context.Context, companyID string, kind string) (*domain.DocumentSequence, error) {
	query := `
		SELECT company_id, kind, prefix, padding, last_number, last_updated_at
		FROM document_sequences
		WHERE company_id = $1 AND kind = $2;
	`

	var m models.DocumentSequence
	err := r.Pool.QueryRow(ctx, query, companyID, kind).Scan(
		&m.CompanyID,
		&m.Kind,
		&m.Prefix,
		&m.Padding,
		&m.LastNumber,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("document sequence " + kind + " not found for company " + companyID)
		}
		return nil, apperrors.NewAppError(500, "failed to find document sequence for company "+companyID, err)
	}

	seq := mapping.ToDomainDocumentSequence(m)
	return &seq, nil
}

// EnsureSequence creates the sequence row if it does not exist. An existing
// row is left untouched so counters survive re-seeding.
func (r *PgxSequenceRepository) EnsureSequence(ctx context.Context, seq domain.DocumentSequence) error {
	m := mapping.ToModelDocumentSequence(seq)

	query := `
		INSERT INTO document_sequences (company_id, kind, prefix, padding, last_number, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (company_id, kind) DO NOTHING;
	`

	_, err := r.Pool.Exec(ctx, query,
		m.CompanyID,
		m.Kind,
		m.Prefix,
		m.Padding,
		m.LastNumber,
		m.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to ensure document sequence "+m.Kind+" for company "+m.CompanyID, err)
	}
	return nil
}
