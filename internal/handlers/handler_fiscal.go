package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
	"github.com/quillbooks/quillbooks_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fiscalHandler handles HTTP requests related to fiscal years and periods.
type fiscalHandler struct {
	fiscalService portssvc.FiscalSvcFacade
}

// newFiscalHandler creates a new fiscalHandler.
func newFiscalHandler(fs portssvc.FiscalSvcFacade) *fiscalHandler {
	return &fiscalHandler{fiscalService: fs}
}

// registerFiscalRoutes registers routes related to the fiscal calendar within a company.
func registerFiscalRoutes(rg *gin.RouterGroup, fiscalService portssvc.FiscalSvcFacade) {
	h := newFiscalHandler(fiscalService)

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.createFiscalYear)
		years.GET("", h.listFiscalYears)
		years.GET("/:year_id", h.getFiscalYear)
		years.POST("/:year_id/close", h.closeFiscalYear)
		years.POST("/:year_id/archive", h.archiveFiscalYear)
		years.POST("/:year_id/periods", h.addPeriod)
	}

	periods := rg.Group("/fiscal-periods")
	{
		periods.GET("", h.getPeriodForDate)
		periods.POST("/:period_id/close", h.closePeriod)
		periods.POST("/:period_id/reopen", h.reopenPeriod)
		periods.POST("/:period_id/archive", h.archivePeriod)
	}
}

// createFiscalYear godoc
// @Summary Create a fiscal year
// @Description Creates a fiscal year tiled with monthly periods, all starting Open
// @Tags fiscal
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   fiscalYear body dto.CreateFiscalYearRequest true "Fiscal year details"
// @Success 201 {object} dto.FiscalYearResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Overlaps an existing fiscal year"
// @Failure 500 {object} map[string]string "Failed to create fiscal year"
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-years [post]
func (h *fiscalHandler) createFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFiscalYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("creator_user_id", userID))
	logger.Info("Received request to create fiscal year", slog.String("name", req.Name))

	year, err := h.fiscalService.CreateFiscalYear(c.Request.Context(), companyID, req, userID)
	if err != nil {
		h.respondFiscalError(c, logger, err, "Failed to create fiscal year")
		return
	}

	logger.Info("Fiscal year created successfully", slog.String("fiscal_year_id", year.FiscalYearID))
	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(year))
}

// listFiscalYears godoc
// @Summary List fiscal years
// @Description Lists all fiscal years for a company with their periods, newest first
// @Tags fiscal
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {object} dto.ListFiscalYearsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list fiscal years"
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-years [get]
func (h *fiscalHandler) listFiscalYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID))
	logger.Info("Received request to list fiscal years")

	years, err := h.fiscalService.ListFiscalYears(c.Request.Context(), companyID, userID)
	if err != nil {
		h.respondFiscalError(c, logger, err, "Failed to list fiscal years")
		return
	}

	logger.Info("Fiscal years listed successfully", slog.Int("count", len(years)))
	c.JSON(http.StatusOK, dto.ToListFiscalYearsResponse(years))
}

// getFiscalYear godoc
// @Summary Get a fiscal year by ID
// @Description Retrieves a fiscal year with its periods
// @Tags fiscal
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   year_id path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Failure 500 {object} map[string]string "Failed to retrieve fiscal year"
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-years/{year_id} [get]
func (h *fiscalHandler) getFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	yearID := c.Param("year_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("fiscal_year_id", yearID))
	logger.Info("Received request to get fiscal year")

	year, err := h.fiscalService.GetFiscalYearByID(c.Request.Context(), companyID, yearID, userID)
	if err != nil {
		h.respondFiscalError(c, logger, err, "Failed to retrieve fiscal year")
		return
	}

	logger.Info("Fiscal year retrieved successfully")
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

// getPeriodForDate godoc
// @Summary Find the fiscal period containing a date
// @Description Returns the fiscal period whose range contains the given date
// @Tags fiscal
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   date query string true "Date to look up (YYYY-MM-DD)"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 400 {object} map[string]string "Invalid or missing date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No period covers the date"
// @Failure 500 {object} map[string]string "Failed to look up period"
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-periods [get]
func (h *fiscalHandler) getPeriodForDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'date' is required"})
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		logger.Warn("Invalid date format for period lookup", slog.String("date", dateStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("date", dateStr))
	logger.Info("Received request to find period for date")

	period, err := h.fiscalService.GetPeriodForDate(c.Request.Context(), companyID, date, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoOpenPeriod) || errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No fiscal period covers date")
			c.JSON(http.StatusNotFound, gin.H{"error": "No fiscal period covers this date"})
			return
		}
		h.respondFiscalError(c, logger, err, "Failed to look up period")
		return
	}

	logger.Info("Fiscal period found")
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// addPeriod godoc
// @Summary Add a fiscal period to a year
// @Description Inserts a manually defined period. The range must lie inside the year and not overlap existing periods.
// @Tags fiscal
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   year_id path string true "Fiscal year ID"
// @Param   period body dto.AddFiscalPeriodRequest true "Period details"
// @Success 201 {object} dto.FiscalPeriodResponse
// @Failure 400 {object} map[string]string "Invalid input or range outside the year"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Failure 409 {object} map[string]string "Range overlaps an existing period"
// @Failure 500 {object} map[string]string "Failed to add period"
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-years/{year_id}/periods [post]
func (h *fiscalHandler) addPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	yearID := c.Param("year_id")

	var req dto.AddFiscalPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("fiscal_year_id", yearID))
	logger.Info("Received request to add fiscal period", slog.String("name", req.Name))

	period, err := h.fiscalService.AddPeriod(c.Request.Context(), companyID, yearID, req, userID)
	if err != nil {
		h.respondFiscalError(c, logger, err, "Failed to add period")
		return
	}

	logger.Info("Fiscal period added successfully", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, dto.ToFiscalPeriodResponse(period))
}

// closePeriod godoc
// @Summary Close a fiscal period
// @Description Transitions an Open period to Closed, blocking further posting into it
// @Tags fiscal
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   period_id path string true "Fiscal period ID"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period is not Open"
// @Failure 500 {object} map[string]string "Failed to close period"
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-periods/{period_id}/close [post]
func (h *fiscalHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	periodID := c.Param("period_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("period_id", periodID))
	logger.Info("Received request to close fiscal period")

	period, err := h.fiscalService.ClosePeriod(c.Request.Context(), companyID, periodID, userID)
	if err != nil {
		h.respondFiscalError(c, logger, err, "Failed to close period")
		return
	}

	logger.Info("Fiscal period closed successfully")
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// archivePeriod godoc
// @Summary Archive a closed fiscal period
// @Description Transitions a Closed period to Archived. Archival is permanent; archived periods never reopen.
// @Tags fiscal
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   period_id path string true "Fiscal period ID"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period is not Closed"
// @Failure 500 {object} map[string]string "Failed to archive period"
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-periods/{period_id}/archive [post]
func (h *fiscalHandler) archivePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	periodID := c.Param("period_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("period_id", periodID))
	logger.Info("Received request to archive fiscal period")

	period, err := h.fiscalService.ArchivePeriod(c.Request.Context(), companyID, periodID, userID)
	if err != nil {
		h.respondFiscalError(c, logger, err, "Failed to archive period")
		return
	}

	logger.Info("Fiscal period archived successfully")
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// reopenPeriod godoc
// @Summary Reopen a closed fiscal period
// @Description Transitions a Closed period back to Open. Requires the ADMIN role; archived years cannot be reopened.
// @Tags fiscal
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   period_id path string true "Fiscal period ID"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period not Closed, or fiscal year archived"
// @Failure 500 {object} map[string]string "Failed to reopen period"
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-periods/{period_id}/reopen [post]
func (h *fiscalHandler) reopenPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	periodID := c.Param("period_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("period_id", periodID))
	logger.Info("Received request to reopen fiscal period")

	period, err := h.fiscalService.ReopenPeriod(c.Request.Context(), companyID, periodID, userID)
	if err != nil {
		h.respondFiscalError(c, logger, err, "Failed to reopen period")
		return
	}

	logger.Info("Fiscal period reopened successfully")
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// closeFiscalYear godoc
// @Summary Close a fiscal year
// @Description Transitions an Open fiscal year to Closed. All periods must be Closed first.
// @Tags fiscal
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   year_id path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Failure 409 {object} map[string]string "Year not Open, or periods still Open"
// @Failure 500 {object} map[string]string "Failed to close fiscal year"
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-years/{year_id}/close [post]
func (h *fiscalHandler) closeFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	yearID := c.Param("year_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("fiscal_year_id", yearID))
	logger.Info("Received request to close fiscal year")

	year, err := h.fiscalService.CloseFiscalYear(c.Request.Context(), companyID, yearID, userID)
	if err != nil {
		h.respondFiscalError(c, logger, err, "Failed to close fiscal year")
		return
	}

	logger.Info("Fiscal year closed successfully")
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

// archiveFiscalYear godoc
// @Summary Archive a fiscal year
// @Description Transitions a Closed fiscal year to Archived. Archived years are permanently locked.
// @Tags fiscal
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   year_id path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Failure 409 {object} map[string]string "Year is not Closed"
// @Failure 500 {object} map[string]string "Failed to archive fiscal year"
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-years/{year_id}/archive [post]
func (h *fiscalHandler) archiveFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	yearID := c.Param("year_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("fiscal_year_id", yearID))
	logger.Info("Received request to archive fiscal year")

	year, err := h.fiscalService.ArchiveFiscalYear(c.Request.Context(), companyID, yearID, userID)
	if err != nil {
		h.respondFiscalError(c, logger, err, "Failed to archive fiscal year")
		return
	}

	logger.Info("Fiscal year archived successfully")
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

// respondFiscalError maps fiscal calendar errors onto HTTP responses.
func (h *fiscalHandler) respondFiscalError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Fiscal resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("User forbidden for fiscal operation")
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrInvalidState), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Fiscal operation conflicts with current state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error in fiscal operation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Fiscal operation failed in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
