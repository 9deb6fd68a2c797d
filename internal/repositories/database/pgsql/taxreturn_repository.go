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

type PgxTaxReturnRepository struct {
	BaseRepository
}

// newPgxTaxReturnRepository creates a new repository for tax return data.
func newPgxTaxReturnRepository(pool *pgxpool.Pool) portsrepo.TaxReturnRepositoryFacade {
	return &PgxTaxReturnRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTaxReturnRepository implements portsrepo.TaxReturnRepositoryFacade
var _ portsrepo.TaxReturnRepositoryFacade = (*PgxTaxReturnRepository)(nil)

var FULL_TAX_RETURN_SELECT_QUERY = `
SELECT
	tr.tax_return_id, tr.company_id, tr.return_no, tr.start_date, tr.end_date, tr.due_date,
	tr.standard_rated_supplies, tr.zero_rated_supplies, tr.exempt_supplies, tr.total_supplies,
	tr.taxable_purchases, tr.output_tax, tr.input_tax, tr.adjustments, tr.net_tax,
	tr.status, tr.submission_ref, tr.submitted_at, tr.settlement_entry_id,
	tr.created_at, tr.created_by, tr.last_updated_at, tr.last_updated_by
FROM tax_returns tr
`

func (r *PgxTaxReturnRepository) getTaxReturns(ctx context.Context, filterQuery string, args ...any) ([]domain.TaxReturn, error) {
	query := FULL_TAX_RETURN_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax returns", err)
	}
	defer rows.Close()
	modelReturns, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TaxReturn])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.TaxReturn{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect tax return rows", err)
	}

	return mapping.ToDomainTaxReturnSlice(modelReturns), nil
}

// SaveTaxReturn inserts a new tax return.
func (r *PgxTaxReturnRepository) SaveTaxReturn(ctx context.Context, taxReturn domain.TaxReturn) error {
	m := mapping.ToModelTaxReturn(taxReturn)

	query := `
		INSERT INTO tax_returns (
			tax_return_id, company_id, return_no, start_date, end_date, due_date,
			standard_rated_supplies, zero_rated_supplies, exempt_supplies, total_supplies,
			taxable_purchases, output_tax, input_tax, adjustments, net_tax,
			status, submission_ref, submitted_at, settlement_entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TaxReturnID,
		m.CompanyID,
		m.ReturnNo,
		m.StartDate,
		m.EndDate,
		m.DueDate,
		m.StandardRatedSupplies,
		m.ZeroRatedSupplies,
		m.ExemptSupplies,
		m.TotalSupplies,
		m.TaxablePurchases,
		m.OutputTax,
		m.InputTax,
		m.Adjustments,
		m.NetTax,
		m.Status,
		m.SubmissionRef,
		m.SubmittedAt,
		m.SettlementEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" && pgErr.ConstraintName == "tax_returns_company_no_unique" {
				return apperrors.NewConflictError("tax return number " + m.ReturnNo + " already exists")
			}
			if pgErr.Code == "23505" {
				return apperrors.NewConflictError("tax return ID " + m.TaxReturnID + " already exists")
			}
		}
		return apperrors.NewAppError(500, "failed to save tax return "+m.TaxReturnID, err)
	}
	return nil
}

// UpdateTaxReturn updates the derived boxes and submission details of a tax return.
func (r *PgxTaxReturnRepository) UpdateTaxReturn(ctx context.Context, taxReturn domain.TaxReturn) error {
	m := mapping.ToModelTaxReturn(taxReturn)

	query := `
		UPDATE tax_returns
		SET standard_rated_supplies = $2, zero_rated_supplies = $3, exempt_supplies = $4, total_supplies = $5,
		    taxable_purchases = $6, output_tax = $7, input_tax = $8, adjustments = $9, net_tax = $10,
		    status = $11, submission_ref = $12, submitted_at = $13, settlement_entry_id = $14,
		    last_updated_at = $15, last_updated_by = $16
		WHERE tax_return_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query,
		m.TaxReturnID,
		m.StandardRatedSupplies,
		m.ZeroRatedSupplies,
		m.ExemptSupplies,
		m.TotalSupplies,
		m.TaxablePurchases,
		m.OutputTax,
		m.InputTax,
		m.Adjustments,
		m.NetTax,
		m.Status,
		m.SubmissionRef,
		m.SubmittedAt,
		m.SettlementEntryID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		return apperrors.NewAppError(500, "failed to execute update tax return "+m.TaxReturnID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("tax return " + m.TaxReturnID + " not found")
	}

	return nil
}

// FindTaxReturnByID retrieves a tax return by its ID.
func (r *PgxTaxReturnRepository) FindTaxReturnByID(ctx context.Context, taxReturnID string) (*domain.TaxReturn, error) {
	returns, err := r.getTaxReturns(ctx, `WHERE tr.tax_return_id = $1`, taxReturnID)
	if err != nil {
		return nil, err
	}
	if len(returns) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &returns[0], nil
}

// ListTaxReturnsByCompany retrieves a paginated list of tax returns, newest period first.
func (r *PgxTaxReturnRepository) ListTaxReturnsByCompany(ctx context.Context, companyID string, limit int, offset int) ([]domain.TaxReturn, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	filter := `WHERE tr.company_id = $1 ORDER BY tr.start_date DESC LIMIT $2 OFFSET $3`
	return r.getTaxReturns(ctx, filter, companyID, limit, offset)
}

// FindOverlappingReturn finds a non-draft tax return whose period overlaps [start, end].
// Returns apperrors.ErrNotFound when no submitted return overlaps.
func (r *PgxTaxReturnRepository) FindOverlappingReturn(ctx context.Context, companyID string, start, end time.Time) (*domain.TaxReturn, error) {
	filter := `WHERE tr.company_id = $1 AND tr.status != 'DRAFT' AND tr.start_date <= $3 AND tr.end_date >= $2 LIMIT 1`
	returns, err := r.getTaxReturns(ctx, filter, companyID, start, end)
	if err != nil {
		return nil, err
	}
	if len(returns) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &returns[0], nil
}

// AggregateTaxActivity sums posted journal activity per tax code and account
// category over a date range. Reversed originals and their mirrors both
// aggregate; their debit/credit totals net to zero when both fall in range.
func (r *PgxTaxReturnRepository) AggregateTaxActivity(ctx context.Context, companyID string, start, end time.Time) ([]domain.TaxActivityRow, error) {
	query := `
		SELECT
			tc.code AS tax_code,
			a.account_type,
			COALESCE(SUM(l.debit), 0) AS debit_total,
			COALESCE(SUM(l.credit), 0) AS credit_total,
			COALESCE(SUM(CASE WHEN l.debit > 0 THEN l.tax_amount ELSE 0 END), 0) AS tax_on_debits,
			COALESCE(SUM(CASE WHEN l.credit > 0 THEN l.tax_amount ELSE 0 END), 0) AS tax_on_credits
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN tax_codes tc ON l.tax_code_id = tc.tax_code_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.company_id = $1
			AND e.entry_date BETWEEN $2 AND $3
			AND e.status IN ('POSTED', 'REVERSED')
		GROUP BY tc.code, a.account_type
		ORDER BY tc.code, a.account_type;
	`

	rows, err := r.Pool.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax activity for company "+companyID, err)
	}
	defer rows.Close()

	var result []domain.TaxActivityRow
	for rows.Next() {
		var row domain.TaxActivityRow
		if err := rows.Scan(
			&row.TaxCode,
			&row.AccountType,
			&row.DebitTotal,
			&row.CreditTotal,
			&row.TaxOnDebits,
			&row.TaxOnCredits,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tax activity row", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tax activity rows", err)
	}

	if len(result) == 0 {
		return []domain.TaxActivityRow{}, nil
	}

	return result, nil
}
