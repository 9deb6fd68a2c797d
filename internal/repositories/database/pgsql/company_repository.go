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
)

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryWithTx {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCompanyRepository implements portsrepo.CompanyRepositoryWithTx
var _ portsrepo.CompanyRepositoryWithTx = (*PgxCompanyRepository)(nil)

var FULL_COMPANY_SELECT_QUERY = `
SELECT
	c.company_id, c.name, c.registration_no, c.gst_reg_no, c.is_gst_registered,
	c.base_currency_code, c.is_active, c.version,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
FROM companies c
`

func (r *PgxCompanyRepository) getCompanies(ctx context.Context, filterQuery string, args ...any) ([]domain.Company, error) {
	query := FULL_COMPANY_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query companies", err)
	}
	defer rows.Close()
	domainCompanies, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Company])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Company{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect company rows", err)
	}

	return domainCompanies, nil
}

// SaveCompany persists a new company.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	query := `
		INSERT INTO companies (
			company_id, name, registration_no, gst_reg_no, is_gst_registered,
			base_currency_code, is_active, version,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		company.CompanyID,
		company.Name,
		company.RegistrationNo,
		company.GSTRegNo,
		company.IsGSTRegistered,
		company.BaseCurrencyCode,
		company.IsActive,
		1,
		company.CreatedAt,
		company.CreatedBy,
		company.LastUpdatedAt,
		company.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("company ID " + company.CompanyID + " already exists")
			}
		}
		return apperrors.NewAppError(500, "failed to save company "+company.CompanyID, err)
	}
	return nil
}

// FindCompanyByID retrieves a specific company by its ID.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	companies, err := r.getCompanies(ctx, `WHERE c.company_id = $1`, companyID)
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &companies[0], nil
}

// ListCompaniesByUserID retrieves the active companies a user belongs to.
func (r *PgxCompanyRepository) ListCompaniesByUserID(ctx context.Context, userID string) ([]domain.Company, error) {
	filter := `
		JOIN user_companies uc ON c.company_id = uc.company_id
		WHERE uc.user_id = $1 AND uc.role != $2 AND c.is_active = TRUE
		ORDER BY c.name;
	`
	return r.getCompanies(ctx, filter, userID, domain.RoleRemoved)
}

// UpdateCompany updates a company using optimistic locking on its version.
func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	query := `
		UPDATE companies
		SET name = $3, registration_no = $4, gst_reg_no = $5, is_gst_registered = $6,
		    last_updated_at = $7, last_updated_by = $8, version = version + 1
		WHERE company_id = $1 AND version = $2;
	`
	result, err := r.Pool.Exec(ctx, query,
		company.CompanyID,
		company.Version,
		company.Name,
		company.RegistrationNo,
		company.GSTRegNo,
		company.IsGSTRegistered,
		company.LastUpdatedAt,
		company.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update company "+company.CompanyID, err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NewConflictError("company " + company.CompanyID + " was modified concurrently or does not exist")
	}

	return nil
}

// DeactivateCompany marks a company as inactive.
func (r *PgxCompanyRepository) DeactivateCompany(ctx context.Context, companyID string, userID string) error {
	query := `
		UPDATE companies
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3, version = version + 1
		WHERE company_id = $1 AND is_active = TRUE;
	`
	result, err := r.Pool.Exec(ctx, query, companyID, time.Now().UTC(), userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate company "+companyID, err)
	}

	if result.RowsAffected() == 0 {
		// Distinguish a missing company from one that is already inactive.
		_, findErr := r.FindCompanyByID(ctx, companyID)
		if findErr != nil {
			return apperrors.ErrNotFound
		}
		return apperrors.NewValidationFailedError("company " + companyID + " is already inactive")
	}

	return nil
}

// AddUserToCompany adds a user to a company with a specific role.
func (r *PgxCompanyRepository) AddUserToCompany(ctx context.Context, membership domain.UserCompany) error {
	query := `
		INSERT INTO user_companies (user_id, company_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, company_id) DO UPDATE SET role = EXCLUDED.role;
	` // Upsert: add the user or update their role if they already exist
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.CompanyID,
		membership.Role,
		membership.JoinedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("user or company does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to add/update user "+membership.UserID+" in company "+membership.CompanyID, err)
	}
	return nil
}

// FindUserCompanyRole retrieves the role of a user in a company.
func (r *PgxCompanyRepository) FindUserCompanyRole(ctx context.Context, userID, companyID string) (*domain.UserCompany, error) {
	query := `
		SELECT user_id, company_id, role, joined_at
		FROM user_companies
		WHERE user_id = $1 AND company_id = $2;
	`
	var uc domain.UserCompany
	err := r.Pool.QueryRow(ctx, query, userID, companyID).Scan(
		&uc.UserID,
		&uc.CompanyID,
		&uc.Role,
		&uc.JoinedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("company not found") // User has no membership in this company
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+userID+" company role in "+companyID, err)
	}
	return &uc, nil
}

// ListUsersInCompany retrieves the memberships of a company, excluding removed users.
func (r *PgxCompanyRepository) ListUsersInCompany(ctx context.Context, companyID string) ([]domain.UserCompany, error) {
	query := `
		SELECT uc.user_id, u.name AS user_name, uc.company_id, uc.role, uc.joined_at
		FROM user_companies uc
		JOIN users u ON uc.user_id = u.user_id
		WHERE uc.company_id = $1 AND uc.role != $2
		ORDER BY uc.joined_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, domain.RoleRemoved)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users for company "+companyID, err)
	}
	defer rows.Close()

	var memberships []domain.UserCompany
	for rows.Next() {
		var uc domain.UserCompany
		err := rows.Scan(
			&uc.UserID,
			&uc.UserName,
			&uc.CompanyID,
			&uc.Role,
			&uc.JoinedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user company row", err)
		}
		memberships = append(memberships, uc)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user company rows", err)
	}

	return memberships, nil
}

// RemoveUserFromCompany marks a user as removed by setting their role to REMOVED.
func (r *PgxCompanyRepository) RemoveUserFromCompany(ctx context.Context, userID, companyID string) error {
	query := `
		UPDATE user_companies
		SET role = $3
		WHERE user_id = $1 AND company_id = $2;
	`

	result, err := r.Pool.Exec(ctx, query, userID, companyID, domain.RoleRemoved)
	if err != nil {
		return apperrors.NewAppError(500, "failed to remove user "+userID+" from company "+companyID, err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("membership not found")
	}

	return nil
}
