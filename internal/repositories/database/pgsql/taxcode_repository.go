package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	"github.com/quillbooks/quillbooks_app/internal/models"
	"github.com/quillbooks/quillbooks_app/internal/utils/mapping"
)

type PgxTaxCodeRepository struct {
	BaseRepository
}

// newPgxTaxCodeRepository creates a new repository for tax code data.
func newPgxTaxCodeRepository(pool *pgxpool.Pool) portsrepo.TaxCodeRepositoryFacade {
	return &PgxTaxCodeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTaxCodeRepository implements portsrepo.TaxCodeRepositoryFacade
var _ portsrepo.TaxCodeRepositoryFacade = (*PgxTaxCodeRepository)(nil)

var FULL_TAX_CODE_SELECT_QUERY = `
SELECT
	tc.tax_code_id, tc.company_id, tc.code, tc.name, tc.tax_type, tc.rate_percent,
	tc.is_default, tc.is_active, tc.gl_account_id, tc.description,
	tc.created_at, tc.created_by, tc.last_updated_at, tc.last_updated_by
FROM tax_codes tc
`

const taxCodeInsertQuery = `
	INSERT INTO tax_codes (
		tax_code_id, company_id, code, name, tax_type, rate_percent,
		is_default, is_active, gl_account_id, description,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
`

func (r *PgxTaxCodeRepository) getTaxCodes(ctx context.Context, filterQuery string, args ...any) ([]domain.TaxCode, error) {
	query := FULL_TAX_CODE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax codes", err)
	}
	defer rows.Close()
	modelCodes, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TaxCode])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.TaxCode{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect tax code rows", err)
	}

	return mapping.ToDomainTaxCodeSlice(modelCodes), nil
}

func taxCodeInsertArgs(m models.TaxCode) []any {
	return []any{
		m.TaxCodeID,
		m.CompanyID,
		m.Code,
		m.Name,
		m.TaxType,
		m.RatePercent,
		m.IsDefault,
		m.IsActive,
		m.GLAccountID,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// SaveTaxCode inserts a new tax code.
func (r *PgxTaxCodeRepository) SaveTaxCode(ctx context.Context, taxCode domain.TaxCode) error {
	m := mapping.ToModelTaxCode(taxCode)

	_, err := r.Pool.Exec(ctx, taxCodeInsertQuery, taxCodeInsertArgs(m)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" && pgErr.ConstraintName == "tax_codes_company_code_unique" {
				return apperrors.NewConflictError("tax code " + m.Code + " already exists in company")
			}
			if pgErr.Code == "23505" {
				return apperrors.NewConflictError("tax code ID " + m.TaxCodeID + " already exists")
			}
			if pgErr.Code == "23503" {
				return apperrors.NewValidationFailedError("GL account or company does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save tax code "+m.TaxCodeID, err)
	}
	return nil
}

// SaveTaxCodes inserts a batch of tax codes in one transaction. Used when
// seeding a new company's defaults.
func (r *PgxTaxCodeRepository) SaveTaxCodes(ctx context.Context, taxCodes []domain.TaxCode) error {
	if len(taxCodes) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, taxCode := range taxCodes {
		batch.Queue(taxCodeInsertQuery, taxCodeInsertArgs(mapping.ToModelTaxCode(taxCode))...)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("one of the tax codes already exists")
		}
		return apperrors.NewAppError(500, "failed to execute tax code batch", err)
	}

	return r.Commit(ctx, tx)
}

// FindTaxCodeByID retrieves a tax code by its ID.
func (r *PgxTaxCodeRepository) FindTaxCodeByID(ctx context.Context, taxCodeID string) (*domain.TaxCode, error) {
	codes, err := r.getTaxCodes(ctx, `WHERE tc.tax_code_id = $1`, taxCodeID)
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &codes[0], nil
}

// FindTaxCodeByCode retrieves a tax code by its engine code within a company.
func (r *PgxTaxCodeRepository) FindTaxCodeByCode(ctx context.Context, companyID string, code string) (*domain.TaxCode, error) {
	codes, err := r.getTaxCodes(ctx, `WHERE tc.company_id = $1 AND tc.code = $2`, companyID, code)
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &codes[0], nil
}

// FindTaxCodesByIDs retrieves multiple tax codes by their IDs.
func (r *PgxTaxCodeRepository) FindTaxCodesByIDs(ctx context.Context, taxCodeIDs []string) (map[string]domain.TaxCode, error) {
	if len(taxCodeIDs) == 0 {
		return map[string]domain.TaxCode{}, nil
	}

	codes, err := r.getTaxCodes(ctx, `WHERE tc.tax_code_id = ANY($1)`, taxCodeIDs)
	if err != nil {
		return nil, err
	}

	codesMap := make(map[string]domain.TaxCode, len(codes))
	for _, tc := range codes {
		codesMap[tc.TaxCodeID] = tc
	}
	return codesMap, nil
}

// ListTaxCodes retrieves the tax codes of a company ordered by code.
func (r *PgxTaxCodeRepository) ListTaxCodes(ctx context.Context, companyID string, activeOnly bool) ([]domain.TaxCode, error) {
	filter := `WHERE tc.company_id = $1`
	if activeOnly {
		filter += ` AND tc.is_active = TRUE`
	}
	filter += ` ORDER BY tc.code`

	return r.getTaxCodes(ctx, filter, companyID)
}

// UpdateTaxCode updates an existing tax code's details.
// The code itself and the company are immutable.
func (r *PgxTaxCodeRepository) UpdateTaxCode(ctx context.Context, taxCode domain.TaxCode) error {
	m := mapping.ToModelTaxCode(taxCode)

	query := `
		UPDATE tax_codes
		SET name = $2, rate_percent = $3, is_default = $4, is_active = $5,
		    gl_account_id = $6, description = $7, last_updated_at = $8, last_updated_by = $9
		WHERE tax_code_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query,
		m.TaxCodeID,
		m.Name,
		m.RatePercent,
		m.IsDefault,
		m.IsActive,
		m.GLAccountID,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		return apperrors.NewAppError(500, "failed to execute update tax code "+m.TaxCodeID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeactivateTaxCode marks a tax code as inactive.
func (r *PgxTaxCodeRepository) DeactivateTaxCode(ctx context.Context, taxCodeID string, userID string, now time.Time) error {
	query := `
		UPDATE tax_codes
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE tax_code_id = $1 AND is_active = TRUE;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, taxCodeID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to execute deactivate tax code "+taxCodeID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindTaxCodeByID(ctx, taxCodeID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return findErr
		}
		return apperrors.NewValidationFailedError("tax code " + taxCodeID + " is already inactive")
	}

	return nil
}
