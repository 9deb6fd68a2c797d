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

type PgxFiscalRepository struct {
	BaseRepository
}

// newPgxFiscalRepository creates a new repository for fiscal calendar data.
func newPgxFiscalRepository(pool *pgxpool.Pool) portsrepo.FiscalRepositoryWithTx {
	return &PgxFiscalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxFiscalRepository implements portsrepo.FiscalRepositoryWithTx
var _ portsrepo.FiscalRepositoryWithTx = (*PgxFiscalRepository)(nil)

var FULL_FISCAL_YEAR_SELECT_QUERY = `
SELECT
	fy.fiscal_year_id, fy.company_id, fy.name, fy.start_date, fy.end_date, fy.granularity, fy.status,
	fy.created_at, fy.created_by, fy.last_updated_at, fy.last_updated_by
FROM fiscal_years fy
`

var FULL_FISCAL_PERIOD_SELECT_QUERY = `
SELECT
	fp.period_id, fp.fiscal_year_id, fp.company_id, fp.name, fp.sequence, fp.start_date, fp.end_date, fp.status,
	fp.created_at, fp.created_by, fp.last_updated_at, fp.last_updated_by
FROM fiscal_periods fp
`

func (r *PgxFiscalRepository) getFiscalYears(ctx context.Context, filterQuery string, args ...any) ([]domain.FiscalYear, error) {
	query := FULL_FISCAL_YEAR_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fiscal years", err)
	}
	defer rows.Close()
	modelYears, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.FiscalYear])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.FiscalYear{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect fiscal year rows", err)
	}

	return mapping.ToDomainFiscalYearSlice(modelYears), nil
}

func (r *PgxFiscalRepository) getFiscalPeriods(ctx context.Context, filterQuery string, args ...any) ([]domain.FiscalPeriod, error) {
	query := FULL_FISCAL_PERIOD_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fiscal periods", err)
	}
	defer rows.Close()
	modelPeriods, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.FiscalPeriod])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.FiscalPeriod{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect fiscal period rows", err)
	}

	return mapping.ToDomainFiscalPeriodSlice(modelPeriods), nil
}

// FindFiscalYearByID retrieves a fiscal year by its ID, without periods.
func (r *PgxFiscalRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	years, err := r.getFiscalYears(ctx, `WHERE fy.fiscal_year_id = $1`, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &years[0], nil
}

// ListFiscalYearsByCompany retrieves all fiscal years of a company, newest first.
func (r *PgxFiscalRepository) ListFiscalYearsByCompany(ctx context.Context, companyID string) ([]domain.FiscalYear, error) {
	return r.getFiscalYears(ctx, `WHERE fy.company_id = $1 ORDER BY fy.start_date DESC`, companyID)
}

// FindOverlappingYear finds a fiscal year whose date range overlaps [start, end].
// Returns apperrors.ErrNotFound when no year overlaps.
func (r *PgxFiscalRepository) FindOverlappingYear(ctx context.Context, companyID string, start, end time.Time) (*domain.FiscalYear, error) {
	filter := `WHERE fy.company_id = $1 AND fy.start_date <= $3 AND fy.end_date >= $2 LIMIT 1`
	years, err := r.getFiscalYears(ctx, filter, companyID, start, end)
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &years[0], nil
}

// FindPeriodByID retrieves a fiscal period by its ID.
func (r *PgxFiscalRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	periods, err := r.getFiscalPeriods(ctx, `WHERE fp.period_id = $1`, periodID)
	if err != nil {
		return nil, err
	}
	if len(periods) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &periods[0], nil
}

// FindPeriodForDate finds the fiscal period containing the given date.
// Returns apperrors.ErrNotFound when the date falls outside every period.
func (r *PgxFiscalRepository) FindPeriodForDate(ctx context.Context, companyID string, date time.Time) (*domain.FiscalPeriod, error) {
	filter := `WHERE fp.company_id = $1 AND fp.start_date <= $2 AND fp.end_date >= $2 LIMIT 1`
	periods, err := r.getFiscalPeriods(ctx, filter, companyID, date)
	if err != nil {
		return nil, err
	}
	if len(periods) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &periods[0], nil
}

// ListPeriodsByYear retrieves the periods of a fiscal year in sequence order.
func (r *PgxFiscalRepository) ListPeriodsByYear(ctx context.Context, fiscalYearID string) ([]domain.FiscalPeriod, error) {
	return r.getFiscalPeriods(ctx, `WHERE fp.fiscal_year_id = $1 ORDER BY fp.sequence`, fiscalYearID)
}

// SaveFiscalYearWithPeriods persists a fiscal year and its generated periods in one transaction.
func (r *PgxFiscalRepository) SaveFiscalYearWithPeriods(ctx context.Context, year domain.FiscalYear, periods []domain.FiscalPeriod) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelYear := mapping.ToModelFiscalYear(year)
	yearQuery := `
		INSERT INTO fiscal_years (
			fiscal_year_id, company_id, name, start_date, end_date, granularity, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, yearQuery,
		modelYear.FiscalYearID,
		modelYear.CompanyID,
		modelYear.Name,
		modelYear.StartDate,
		modelYear.EndDate,
		modelYear.Granularity,
		modelYear.Status,
		modelYear.CreatedAt,
		modelYear.CreatedBy,
		modelYear.LastUpdatedAt,
		modelYear.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("fiscal year " + modelYear.FiscalYearID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to insert fiscal year "+modelYear.FiscalYearID, err)
	}

	periodQuery := `
		INSERT INTO fiscal_periods (
			period_id, fiscal_year_id, company_id, name, sequence, start_date, end_date, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, period := range periods {
		m := mapping.ToModelFiscalPeriod(period)
		batch.Queue(periodQuery,
			m.PeriodID,
			m.FiscalYearID,
			m.CompanyID,
			m.Name,
			m.Sequence,
			m.StartDate,
			m.EndDate,
			m.Status,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute period batch for fiscal year "+modelYear.FiscalYearID, err)
	}

	return r.Commit(ctx, tx)
}

// SavePeriod persists a single manually added fiscal period.
func (r *PgxFiscalRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)
	query := `
		INSERT INTO fiscal_periods (
			period_id, fiscal_year_id, company_id, name, sequence, start_date, end_date, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID,
		m.FiscalYearID,
		m.CompanyID,
		m.Name,
		m.Sequence,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("period " + m.PeriodID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to insert fiscal period "+m.PeriodID, err)
	}
	return nil
}

// UpdatePeriodStatus sets the status of a fiscal period.
// Transition rules are enforced by the service layer.
func (r *PgxFiscalRepository) UpdatePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, userID string, now time.Time) error {
	query := `
		UPDATE fiscal_periods
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE period_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, periodID, status, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of period "+periodID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("period " + periodID + " not found")
	}

	return nil
}

// UpdateYearStatus transitions a fiscal year and its periods still in
// fromStatus to toStatus in one transaction. The year row is status-guarded,
// so a concurrent transition surfaces as a conflict.
func (r *PgxFiscalRepository) UpdateYearStatus(ctx context.Context, fiscalYearID string, fromStatus, toStatus domain.PeriodStatus, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	yearQuery := `
		UPDATE fiscal_years
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE fiscal_year_id = $1 AND status = $2;
	`
	cmdTag, err := tx.Exec(ctx, yearQuery, fiscalYearID, fromStatus, toStatus, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of fiscal year "+fiscalYearID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewConflictError("fiscal year " + fiscalYearID + " is not in status " + string(fromStatus))
	}

	// Moving no periods is legitimate: closing a year whose periods are all
	// closed already leaves them untouched.
	periodQuery := `
		UPDATE fiscal_periods
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE fiscal_year_id = $1 AND status = $2;
	`
	if _, err := tx.Exec(ctx, periodQuery, fiscalYearID, fromStatus, toStatus, now, userID); err != nil {
		return apperrors.NewAppError(500, "failed to update period statuses of fiscal year "+fiscalYearID, err)
	}

	return r.Commit(ctx, tx)
}
