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

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the financial report routes within a company.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/balance-sheet", h.getBalanceSheet)
	}
}

// getTrialBalance godoc
// @Summary Get the trial balance
// @Description Lists every account with posted activity and its debit or credit balance as of a date
// @Tags reports
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid date format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate trial balance"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOfStr := c.DefaultQuery("asOf", time.Now().Format("2006-01-02"))
	asOf, err := time.Parse("2006-01-02", asOfStr)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("asOf", asOfStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("as_of", asOfStr))
	logger.Info("Received request for trial balance")

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), companyID, asOf, userID)
	if err != nil {
		h.respondReportError(c, logger, err, "Failed to generate trial balance")
		return
	}

	logger.Info("Trial balance generated successfully", slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(rows, asOf))
}

// getProfitAndLoss godoc
// @Summary Get the profit and loss statement
// @Description Summarizes revenue and expense activity over a date range
// @Tags reports
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   fromDate query string false "Range start (YYYY-MM-DD), defaults to the first of the current month"
// @Param   toDate query string false "Range end (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} map[string]string "Invalid date format or range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate profit and loss"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	now := time.Now()
	defaultFrom := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	fromStr := c.DefaultQuery("fromDate", defaultFrom.Format("2006-01-02"))
	toStr := c.DefaultQuery("toDate", now.Format("2006-01-02"))

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		logger.Warn("Invalid fromDate format", slog.String("fromDate", fromStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fromDate format. Use YYYY-MM-DD"})
		return
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		logger.Warn("Invalid toDate format", slog.String("toDate", toStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid toDate format. Use YYYY-MM-DD"})
		return
	}
	if from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fromDate must be before toDate"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("from", fromStr), slog.String("to", toStr))
	logger.Info("Received request for profit and loss")

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), companyID, from, to, userID)
	if err != nil {
		h.respondReportError(c, logger, err, "Failed to generate profit and loss")
		return
	}

	logger.Info("Profit and loss generated successfully")
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report, from, to))
}

// getBalanceSheet godoc
// @Summary Get the balance sheet
// @Description Summarizes asset, liability, and equity balances as of a date
// @Tags reports
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid date format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate balance sheet"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOfStr := c.DefaultQuery("asOf", time.Now().Format("2006-01-02"))
	asOf, err := time.Parse("2006-01-02", asOfStr)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("asOf", asOfStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("as_of", asOfStr))
	logger.Info("Received request for balance sheet")

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), companyID, asOf, userID)
	if err != nil {
		h.respondReportError(c, logger, err, "Failed to generate balance sheet")
		return
	}

	logger.Info("Balance sheet generated successfully")
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report, asOf))
}

// respondReportError maps report generation errors onto HTTP responses.
func (h *reportingHandler) respondReportError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("User forbidden to view report")
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Company not found for report", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
	default:
		logger.Error("Report generation failed in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
