package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
)

// fiscalService implements the FiscalSvcFacade interface
type fiscalService struct {
	BaseService
	fiscalRepo portsrepo.FiscalRepositoryFacade
}

// NewFiscalService creates a new fiscal calendar service
func NewFiscalService(fiscalRepo portsrepo.FiscalRepositoryFacade, authorizer portssvc.CompanyAuthorizerSvc) portssvc.FiscalSvcFacade {
	return &fiscalService{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		fiscalRepo:  fiscalRepo,
	}
}

// Ensure fiscalService implements the FiscalSvcFacade interface
var _ portssvc.FiscalSvcFacade = (*fiscalService)(nil)

// CreateFiscalYear persists a new fiscal year and generates its periods
// according to the requested granularity.
func (s *fiscalService) CreateFiscalYear(ctx context.Context, companyID string, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		s.LogError(ctx, err, "User not authorized to create fiscal year",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil, err
	}

	if req.EndDate.Before(req.StartDate) {
		return nil, apperrors.NewValidationFailedError("fiscal year end date must not be before its start date")
	}

	existing, err := s.fiscalRepo.FindOverlappingYear(ctx, companyID, req.StartDate, req.EndDate)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for overlapping fiscal years",
			slog.String("company_id", companyID))
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError(fmt.Sprintf("date range overlaps fiscal year %s", existing.Name))
	}

	now := time.Now().UTC()
	year := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    companyID,
		Name:         req.Name,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Granularity:  req.Granularity,
		Status:       domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	periods, err := generatePeriods(year, userID, now)
	if err != nil {
		return nil, err
	}

	if err := s.fiscalRepo.SaveFiscalYearWithPeriods(ctx, year, periods); err != nil {
		s.LogError(ctx, err, "Failed to save fiscal year",
			slog.String("fiscal_year_id", year.FiscalYearID),
			slog.String("company_id", companyID))
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal year created successfully",
		slog.String("fiscal_year_id", year.FiscalYearID),
		slog.String("company_id", companyID),
		slog.Int("period_count", len(periods)))
	year.Periods = periods
	return &year, nil
}

// generatePeriods tiles the fiscal year's date range into consecutive periods.
// A trailing range shorter than one full step is absorbed into the final
// period, so period boundaries after the first always land on step boundaries.
func generatePeriods(year domain.FiscalYear, userID string, now time.Time) ([]domain.FiscalPeriod, error) {
	startDay := time.Date(year.StartDate.Year(), year.StartDate.Month(), year.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(year.EndDate.Year(), year.EndDate.Month(), year.EndDate.Day(), 0, 0, 0, 0, time.UTC)

	var stepMonths int
	switch year.Granularity {
	case domain.GranularityMonth:
		stepMonths = 1
	case domain.GranularityQuarter:
		stepMonths = 3
	case domain.GranularityYear:
		stepMonths = 0
	default:
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown period granularity %s", year.Granularity))
	}

	starts := []time.Time{startDay}
	if stepMonths > 0 {
		for cur := startDay.AddDate(0, stepMonths, 0); !cur.After(endDay); cur = cur.AddDate(0, stepMonths, 0) {
			starts = append(starts, cur)
		}
		// Drop a final boundary that opens a partial tile; its range folds
		// into the period before it.
		last := starts[len(starts)-1]
		if len(starts) > 1 && last.AddDate(0, stepMonths, 0).AddDate(0, 0, -1).After(endDay) {
			starts = starts[:len(starts)-1]
		}
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	periods := make([]domain.FiscalPeriod, len(starts))
	for i, periodStart := range starts {
		periodEnd := endDay
		if i < len(starts)-1 {
			periodEnd = starts[i+1].AddDate(0, 0, -1)
		}

		var name string
		switch year.Granularity {
		case domain.GranularityMonth:
			name = periodStart.Format("2006-01")
		case domain.GranularityQuarter:
			name = fmt.Sprintf("%s Q%d", year.Name, i+1)
		default:
			name = year.Name
		}

		periods[i] = domain.FiscalPeriod{
			PeriodID:     uuid.NewString(),
			FiscalYearID: year.FiscalYearID,
			CompanyID:    year.CompanyID,
			Name:         name,
			Sequence:     i + 1,
			StartDate:    periodStart,
			EndDate:      periodEnd,
			Status:       domain.PeriodOpen,
			AuditFields:  audit,
		}
	}
	return periods, nil
}

// AddPeriod inserts a manually defined period into a fiscal year. The range
// must lie inside the year and must not overlap any existing period.
func (s *fiscalService) AddPeriod(ctx context.Context, companyID string, fiscalYearID string, req dto.AddFiscalPeriodRequest, userID string) (*domain.FiscalPeriod, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		s.LogError(ctx, err, "User not authorized to add fiscal period",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil, err
	}

	if req.EndDate.Before(req.StartDate) {
		return nil, apperrors.NewValidationFailedError("period end date must not be before its start date")
	}

	year, err := s.findYearInCompany(ctx, companyID, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if year.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: fiscal year %s is %s", apperrors.ErrInvalidState, year.Name, year.Status)
	}
	if !year.Contains(req.StartDate) || !year.Contains(req.EndDate) {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("period range must lie inside fiscal year %s", year.Name))
	}

	siblings, err := s.fiscalRepo.ListPeriodsByYear(ctx, fiscalYearID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods for overlap check",
			slog.String("fiscal_year_id", fiscalYearID))
		return nil, err
	}
	maxSequence := 0
	for _, p := range siblings {
		if p.Contains(req.StartDate) || p.Contains(req.EndDate) || (req.StartDate.Before(p.StartDate) && req.EndDate.After(p.EndDate)) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("date range overlaps period %s", p.Name))
		}
		if p.Sequence > maxSequence {
			maxSequence = p.Sequence
		}
	}

	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		PeriodID:     uuid.NewString(),
		FiscalYearID: fiscalYearID,
		CompanyID:    companyID,
		Name:         req.Name,
		Sequence:     maxSequence + 1,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.fiscalRepo.SavePeriod(ctx, period); err != nil {
		s.LogError(ctx, err, "Failed to save fiscal period",
			slog.String("period_id", period.PeriodID),
			slog.String("fiscal_year_id", fiscalYearID))
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal period added",
		slog.String("period_id", period.PeriodID),
		slog.String("period_name", period.Name),
		slog.String("fiscal_year_id", fiscalYearID))
	return &period, nil
}

// findYearInCompany fetches a fiscal year and verifies it belongs to the
// company. Years from other companies come back as NotFound.
func (s *fiscalService) findYearInCompany(ctx context.Context, companyID string, fiscalYearID string) (*domain.FiscalYear, error) {
	year, err := s.fiscalRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find fiscal year by ID",
				slog.String("fiscal_year_id", fiscalYearID))
		}
		return nil, err
	}
	if year.CompanyID != companyID {
		s.LogDebug(ctx, "Fiscal year found but belongs to different company",
			slog.String("fiscal_year_id", fiscalYearID),
			slog.String("year_company", year.CompanyID),
			slog.String("requested_company", companyID))
		return nil, apperrors.ErrNotFound
	}
	return year, nil
}

// findPeriodInCompany fetches a fiscal period and verifies it belongs to the
// company. Periods from other companies come back as NotFound.
func (s *fiscalService) findPeriodInCompany(ctx context.Context, companyID string, periodID string) (*domain.FiscalPeriod, error) {
	period, err := s.fiscalRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find fiscal period by ID",
				slog.String("period_id", periodID))
		}
		return nil, err
	}
	if period.CompanyID != companyID {
		s.LogDebug(ctx, "Fiscal period found but belongs to different company",
			slog.String("period_id", periodID),
			slog.String("period_company", period.CompanyID),
			slog.String("requested_company", companyID))
		return nil, apperrors.ErrNotFound
	}
	return period, nil
}

// GetFiscalYearByID retrieves a fiscal year with its periods.
func (s *fiscalService) GetFiscalYearByID(ctx context.Context, companyID string, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	year, err := s.findYearInCompany(ctx, companyID, fiscalYearID)
	if err != nil {
		return nil, err
	}

	periods, err := s.fiscalRepo.ListPeriodsByYear(ctx, fiscalYearID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods for fiscal year",
			slog.String("fiscal_year_id", fiscalYearID))
		return nil, err
	}
	year.Periods = periods

	return year, nil
}

// ListFiscalYears retrieves all fiscal years for a company, newest first.
func (s *fiscalService) ListFiscalYears(ctx context.Context, companyID string, userID string) ([]domain.FiscalYear, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	years, err := s.fiscalRepo.ListFiscalYearsByCompany(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal years",
			slog.String("company_id", companyID))
		return nil, err
	}
	if years == nil {
		return []domain.FiscalYear{}, nil
	}
	return years, nil
}

// GetPeriodForDate finds the fiscal period containing the given date.
func (s *fiscalService) GetPeriodForDate(ctx context.Context, companyID string, date time.Time, userID string) (*domain.FiscalPeriod, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	period, err := s.fiscalRepo.FindPeriodForDate(ctx, companyID, date)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find period for date",
				slog.String("company_id", companyID),
				slog.String("date", date.Format("2006-01-02")))
		}
		return nil, err
	}
	return period, nil
}

// ClosePeriod transitions an open period to closed.
func (s *fiscalService) ClosePeriod(ctx context.Context, companyID string, periodID string, userID string) (*domain.FiscalPeriod, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		s.LogError(ctx, err, "User not authorized to close period",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil, err
	}

	period, err := s.findPeriodInCompany(ctx, companyID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: only open periods can be closed, status is %s", apperrors.ErrInvalidState, period.Status)
	}

	now := time.Now().UTC()
	if err := s.fiscalRepo.UpdatePeriodStatus(ctx, periodID, domain.PeriodClosed, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to close period",
			slog.String("period_id", periodID))
		return nil, err
	}

	period.Status = domain.PeriodClosed
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID

	s.LogInfo(ctx, "Fiscal period closed",
		slog.String("period_id", periodID),
		slog.String("period_name", period.Name))
	return period, nil
}

// ReopenPeriod transitions a closed period back to open. Archived periods
// stay closed for good, and periods of a closed year cannot reopen until the
// year itself does.
func (s *fiscalService) ReopenPeriod(ctx context.Context, companyID string, periodID string, userID string) (*domain.FiscalPeriod, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		s.LogError(ctx, err, "User not authorized to reopen period",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil, err
	}

	period, err := s.findPeriodInCompany(ctx, companyID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status == domain.PeriodArchived {
		return nil, fmt.Errorf("%w: archived periods cannot be reopened", apperrors.ErrInvalidState)
	}
	if period.Status != domain.PeriodClosed {
		return nil, fmt.Errorf("%w: only closed periods can be reopened, status is %s", apperrors.ErrInvalidState, period.Status)
	}

	year, err := s.fiscalRepo.FindFiscalYearByID(ctx, period.FiscalYearID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load fiscal year for reopen check",
			slog.String("fiscal_year_id", period.FiscalYearID))
		return nil, err
	}
	if year.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: fiscal year %s is %s", apperrors.ErrInvalidState, year.Name, year.Status)
	}

	now := time.Now().UTC()
	if err := s.fiscalRepo.UpdatePeriodStatus(ctx, periodID, domain.PeriodOpen, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to reopen period",
			slog.String("period_id", periodID))
		return nil, err
	}

	period.Status = domain.PeriodOpen
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID

	s.LogInfo(ctx, "Fiscal period reopened",
		slog.String("period_id", periodID),
		slog.String("period_name", period.Name))
	return period, nil
}

// ArchivePeriod transitions a closed period to archived. Archival is
// permanent; an archived period never reopens.
func (s *fiscalService) ArchivePeriod(ctx context.Context, companyID string, periodID string, userID string) (*domain.FiscalPeriod, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		s.LogError(ctx, err, "User not authorized to archive period",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil, err
	}

	period, err := s.findPeriodInCompany(ctx, companyID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status != domain.PeriodClosed {
		return nil, fmt.Errorf("%w: only closed periods can be archived, status is %s", apperrors.ErrInvalidState, period.Status)
	}

	now := time.Now().UTC()
	if err := s.fiscalRepo.UpdatePeriodStatus(ctx, periodID, domain.PeriodArchived, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to archive period",
			slog.String("period_id", periodID))
		return nil, err
	}

	period.Status = domain.PeriodArchived
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID

	s.LogInfo(ctx, "Fiscal period archived",
		slog.String("period_id", periodID),
		slog.String("period_name", period.Name))
	return period, nil
}

// CloseFiscalYear closes a fiscal year once every period in it is closed.
func (s *fiscalService) CloseFiscalYear(ctx context.Context, companyID string, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		s.LogError(ctx, err, "User not authorized to close fiscal year",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil, err
	}

	year, err := s.findYearInCompany(ctx, companyID, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if year.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: only open fiscal years can be closed, status is %s", apperrors.ErrInvalidState, year.Status)
	}

	periods, err := s.fiscalRepo.ListPeriodsByYear(ctx, fiscalYearID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods for year close",
			slog.String("fiscal_year_id", fiscalYearID))
		return nil, err
	}
	for _, p := range periods {
		if p.Status == domain.PeriodOpen {
			return nil, fmt.Errorf("%w: period %s is still open", apperrors.ErrConflict, p.Name)
		}
	}

	now := time.Now().UTC()
	if err := s.fiscalRepo.UpdateYearStatus(ctx, fiscalYearID, domain.PeriodOpen, domain.PeriodClosed, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to close fiscal year",
			slog.String("fiscal_year_id", fiscalYearID))
		return nil, err
	}

	year.Status = domain.PeriodClosed
	year.LastUpdatedAt = now
	year.LastUpdatedBy = userID
	year.Periods = periods

	s.LogInfo(ctx, "Fiscal year closed",
		slog.String("fiscal_year_id", fiscalYearID),
		slog.String("name", year.Name))
	return year, nil
}

// ArchiveFiscalYear archives a closed fiscal year and all its periods.
// Archival is permanent.
func (s *fiscalService) ArchiveFiscalYear(ctx context.Context, companyID string, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		s.LogError(ctx, err, "User not authorized to archive fiscal year",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil, err
	}

	year, err := s.findYearInCompany(ctx, companyID, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if year.Status != domain.PeriodClosed {
		return nil, fmt.Errorf("%w: only closed fiscal years can be archived, status is %s", apperrors.ErrInvalidState, year.Status)
	}

	now := time.Now().UTC()
	if err := s.fiscalRepo.UpdateYearStatus(ctx, fiscalYearID, domain.PeriodClosed, domain.PeriodArchived, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to archive fiscal year",
			slog.String("fiscal_year_id", fiscalYearID))
		return nil, err
	}

	year.Status = domain.PeriodArchived
	year.LastUpdatedAt = now
	year.LastUpdatedBy = userID

	periods, err := s.fiscalRepo.ListPeriodsByYear(ctx, fiscalYearID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods after archive",
			slog.String("fiscal_year_id", fiscalYearID))
		return nil, err
	}
	year.Periods = periods

	s.LogInfo(ctx, "Fiscal year archived",
		slog.String("fiscal_year_id", fiscalYearID),
		slog.String("name", year.Name))
	return year, nil
}
