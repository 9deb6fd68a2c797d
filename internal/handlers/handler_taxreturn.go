package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
	"github.com/quillbooks/quillbooks_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// taxReturnHandler handles HTTP requests related to GST returns.
type taxReturnHandler struct {
	taxReturnService portssvc.TaxReturnSvcFacade
}

// newTaxReturnHandler creates a new taxReturnHandler.
func newTaxReturnHandler(ts portssvc.TaxReturnSvcFacade) *taxReturnHandler {
	return &taxReturnHandler{taxReturnService: ts}
}

// registerTaxReturnRoutes registers routes related to GST returns within a company.
func registerTaxReturnRoutes(rg *gin.RouterGroup, taxReturnService portssvc.TaxReturnSvcFacade) {
	h := newTaxReturnHandler(taxReturnService)

	taxReturns := rg.Group("/tax-returns")
	{
		taxReturns.POST("", h.prepareTaxReturn)
		taxReturns.GET("", h.listTaxReturns)
		taxReturns.GET("/:return_id", h.getTaxReturn)
		taxReturns.POST("/:return_id/finalize", h.finalizeTaxReturn)
		taxReturns.POST("/:return_id/amend", h.amendTaxReturn)
	}
}

// prepareTaxReturn godoc
// @Summary Prepare a GST return
// @Description Derives a draft GST F5 return from posted journal activity in the given period
// @Tags tax-returns
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   period body dto.PrepareTaxReturnRequest true "Reporting period"
// @Success 201 {object} dto.TaxReturnResponse
// @Failure 400 {object} map[string]string "Invalid period or company not GST-registered"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "A return already covers this period"
// @Failure 500 {object} map[string]string "Failed to prepare tax return"
// @Security BearerAuth
// @Router /companies/{company_id}/tax-returns [post]
func (h *taxReturnHandler) prepareTaxReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.PrepareTaxReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PrepareTaxReturn", slog.String("error", err.Error()))
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
	logger.Info("Received request to prepare tax return",
		slog.Time("start_date", req.StartDate), slog.Time("end_date", req.EndDate))

	taxReturn, err := h.taxReturnService.PrepareTaxReturn(c.Request.Context(), companyID, req, userID)
	if err != nil {
		h.respondTaxReturnError(c, logger, err, "Failed to prepare tax return")
		return
	}

	logger.Info("Tax return prepared successfully",
		slog.String("tax_return_id", taxReturn.TaxReturnID), slog.String("return_no", taxReturn.ReturnNo))
	c.JSON(http.StatusCreated, dto.ToTaxReturnResponse(taxReturn))
}

// listTaxReturns godoc
// @Summary List GST returns
// @Description Lists GST returns for a company, newest period first
// @Tags tax-returns
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListTaxReturnsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list tax returns"
// @Security BearerAuth
// @Router /companies/{company_id}/tax-returns [get]
func (h *taxReturnHandler) listTaxReturns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTaxReturns", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("company_id", companyID))
	logger.Info("Received request to list tax returns", slog.Int("limit", params.Limit))

	returns, err := h.taxReturnService.ListTaxReturns(c.Request.Context(), companyID, params.Limit, params.Offset, userID)
	if err != nil {
		h.respondTaxReturnError(c, logger, err, "Failed to list tax returns")
		return
	}

	logger.Info("Tax returns listed successfully", slog.Int("count", len(returns)))
	c.JSON(http.StatusOK, dto.ToListTaxReturnsResponse(returns))
}

// getTaxReturn godoc
// @Summary Get a GST return by ID
// @Description Retrieves a GST return with its box values
// @Tags tax-returns
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   return_id path string true "Tax return ID"
// @Success 200 {object} dto.TaxReturnResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Tax return not found"
// @Failure 500 {object} map[string]string "Failed to retrieve tax return"
// @Security BearerAuth
// @Router /companies/{company_id}/tax-returns/{return_id} [get]
func (h *taxReturnHandler) getTaxReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	taxReturnID := c.Param("return_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("tax_return_id", taxReturnID))
	logger.Info("Received request to get tax return")

	taxReturn, err := h.taxReturnService.GetTaxReturnByID(c.Request.Context(), companyID, taxReturnID, userID)
	if err != nil {
		h.respondTaxReturnError(c, logger, err, "Failed to retrieve tax return")
		return
	}

	logger.Info("Tax return retrieved successfully")
	c.JSON(http.StatusOK, dto.ToTaxReturnResponse(taxReturn))
}

// finalizeTaxReturn godoc
// @Summary Finalize a GST return
// @Description Marks a Draft return as Submitted and posts the GST settlement journal entry. If the settlement entry cannot be created the return is still Submitted and the response carries a settlementWarning.
// @Tags tax-returns
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   return_id path string true "Tax return ID"
// @Param   submission body dto.FinalizeTaxReturnRequest false "Submission reference"
// @Success 200 {object} dto.FinalizeTaxReturnResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Tax return not found"
// @Failure 409 {object} map[string]string "Return is not in Draft status"
// @Failure 500 {object} map[string]string "Failed to finalize tax return"
// @Security BearerAuth
// @Router /companies/{company_id}/tax-returns/{return_id}/finalize [post]
func (h *taxReturnHandler) finalizeTaxReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	taxReturnID := c.Param("return_id")

	var req dto.FinalizeTaxReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for FinalizeTaxReturn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("tax_return_id", taxReturnID))
	logger.Info("Received request to finalize tax return")

	taxReturn, err := h.taxReturnService.FinalizeTaxReturn(c.Request.Context(), companyID, taxReturnID, req, userID)
	if err != nil {
		// A settlement failure after the status flip is not a failed submission.
		// The return comes back Submitted; the caller books the settlement by hand.
		if errors.Is(err, apperrors.ErrSettlementFailed) && taxReturn != nil {
			logger.Error("Tax return submitted but settlement entry failed", slog.String("error", err.Error()))
			c.JSON(http.StatusOK, dto.FinalizeTaxReturnResponse{
				TaxReturn:         dto.ToTaxReturnResponse(taxReturn),
				SettlementWarning: "Return submitted, but the settlement journal entry could not be created. Record the GST settlement manually.",
			})
			return
		}
		h.respondTaxReturnError(c, logger, err, "Failed to finalize tax return")
		return
	}

	logger.Info("Tax return finalized successfully", slog.String("return_no", taxReturn.ReturnNo))
	c.JSON(http.StatusOK, dto.FinalizeTaxReturnResponse{TaxReturn: dto.ToTaxReturnResponse(taxReturn)})
}

// amendTaxReturn godoc
// @Summary Mark a GST return as amended
// @Description Flags a Submitted return as Amended. Corrected figures go on a replacement return; this only records that the filed figures were superseded.
// @Tags tax-returns
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   return_id path string true "Tax return ID"
// @Param   amendment body dto.AmendTaxReturnRequest true "Amendment reason"
// @Success 200 {object} dto.TaxReturnResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Tax return not found"
// @Failure 409 {object} map[string]string "Return is not in Submitted status"
// @Failure 500 {object} map[string]string "Failed to amend tax return"
// @Security BearerAuth
// @Router /companies/{company_id}/tax-returns/{return_id}/amend [post]
func (h *taxReturnHandler) amendTaxReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	taxReturnID := c.Param("return_id")

	var req dto.AmendTaxReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AmendTaxReturn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("tax_return_id", taxReturnID))
	logger.Info("Received request to amend tax return")

	taxReturn, err := h.taxReturnService.AmendTaxReturn(c.Request.Context(), companyID, taxReturnID, req, userID)
	if err != nil {
		h.respondTaxReturnError(c, logger, err, "Failed to amend tax return")
		return
	}

	logger.Info("Tax return marked as amended", slog.String("return_no", taxReturn.ReturnNo))
	c.JSON(http.StatusOK, dto.ToTaxReturnResponse(taxReturn))
}

// respondTaxReturnError maps tax return errors onto HTTP responses.
func (h *taxReturnHandler) respondTaxReturnError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Tax return not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("User forbidden for tax return operation")
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrInvalidState):
		logger.Warn("Tax return operation conflicts with current state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error in tax return operation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Tax return operation failed in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
