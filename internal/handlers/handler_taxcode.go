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

// taxCodeHandler handles HTTP requests related to tax codes.
type taxCodeHandler struct {
	taxCodeService portssvc.TaxCodeSvcFacade
}

// newTaxCodeHandler creates a new taxCodeHandler.
func newTaxCodeHandler(ts portssvc.TaxCodeSvcFacade) *taxCodeHandler {
	return &taxCodeHandler{taxCodeService: ts}
}

// registerTaxCodeRoutes registers routes related to tax codes within a company.
func registerTaxCodeRoutes(rg *gin.RouterGroup, taxCodeService portssvc.TaxCodeSvcFacade) {
	h := newTaxCodeHandler(taxCodeService)

	taxCodes := rg.Group("/tax-codes")
	{
		taxCodes.POST("", h.createTaxCode)
		taxCodes.GET("", h.listTaxCodes)
		taxCodes.GET("/:tax_code_id", h.getTaxCode)
		taxCodes.PUT("/:tax_code_id", h.updateTaxCode)
		taxCodes.DELETE("/:tax_code_id", h.deleteTaxCode)
	}
}

// createTaxCode godoc
// @Summary Create a tax code
// @Description Creates a new tax code for tagging journal lines
// @Tags tax-codes
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   taxCode body dto.CreateTaxCodeRequest true "Tax code details"
// @Success 201 {object} dto.TaxCodeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Tax code already exists"
// @Failure 500 {object} map[string]string "Failed to create tax code"
// @Security BearerAuth
// @Router /companies/{company_id}/tax-codes [post]
func (h *taxCodeHandler) createTaxCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateTaxCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTaxCode", slog.String("error", err.Error()))
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
	logger.Info("Received request to create tax code", slog.String("code", req.Code))

	taxCode, err := h.taxCodeService.CreateTaxCode(c.Request.Context(), companyID, req, userID)
	if err != nil {
		h.respondTaxCodeError(c, logger, err, "Failed to create tax code")
		return
	}

	logger.Info("Tax code created successfully", slog.String("tax_code_id", taxCode.TaxCodeID))
	c.JSON(http.StatusCreated, dto.ToTaxCodeResponse(taxCode))
}

// listTaxCodes godoc
// @Summary List tax codes
// @Description Lists tax codes for a company, ordered by code
// @Tags tax-codes
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   activeOnly query bool false "Return only active tax codes" default(false)
// @Success 200 {object} dto.ListTaxCodesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list tax codes"
// @Security BearerAuth
// @Router /companies/{company_id}/tax-codes [get]
func (h *taxCodeHandler) listTaxCodes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	activeOnly := c.Query("activeOnly") == "true"

	logger = logger.With(slog.String("company_id", companyID))
	logger.Info("Received request to list tax codes", slog.Bool("active_only", activeOnly))

	taxCodes, err := h.taxCodeService.ListTaxCodes(c.Request.Context(), companyID, activeOnly, userID)
	if err != nil {
		h.respondTaxCodeError(c, logger, err, "Failed to list tax codes")
		return
	}

	logger.Info("Tax codes listed successfully", slog.Int("count", len(taxCodes)))
	c.JSON(http.StatusOK, dto.ToListTaxCodesResponse(taxCodes))
}

// getTaxCode godoc
// @Summary Get a tax code by ID
// @Description Retrieves details for a specific tax code
// @Tags tax-codes
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   tax_code_id path string true "Tax code ID"
// @Success 200 {object} dto.TaxCodeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Tax code not found"
// @Failure 500 {object} map[string]string "Failed to retrieve tax code"
// @Security BearerAuth
// @Router /companies/{company_id}/tax-codes/{tax_code_id} [get]
func (h *taxCodeHandler) getTaxCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	taxCodeID := c.Param("tax_code_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("tax_code_id", taxCodeID))
	logger.Info("Received request to get tax code")

	taxCode, err := h.taxCodeService.GetTaxCodeByID(c.Request.Context(), companyID, taxCodeID, userID)
	if err != nil {
		h.respondTaxCodeError(c, logger, err, "Failed to retrieve tax code")
		return
	}

	logger.Info("Tax code retrieved successfully")
	c.JSON(http.StatusOK, dto.ToTaxCodeResponse(taxCode))
}

// updateTaxCode godoc
// @Summary Update a tax code
// @Description Updates a tax code's rate, name, or linked GL account
// @Tags tax-codes
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   tax_code_id path string true "Tax code ID"
// @Param   taxCode body dto.UpdateTaxCodeRequest true "Fields to update"
// @Success 200 {object} dto.TaxCodeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Tax code not found"
// @Failure 500 {object} map[string]string "Failed to update tax code"
// @Security BearerAuth
// @Router /companies/{company_id}/tax-codes/{tax_code_id} [put]
func (h *taxCodeHandler) updateTaxCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	taxCodeID := c.Param("tax_code_id")

	var req dto.UpdateTaxCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTaxCode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("tax_code_id", taxCodeID))
	logger.Info("Received request to update tax code")

	taxCode, err := h.taxCodeService.UpdateTaxCode(c.Request.Context(), companyID, taxCodeID, req, userID)
	if err != nil {
		h.respondTaxCodeError(c, logger, err, "Failed to update tax code")
		return
	}

	logger.Info("Tax code updated successfully")
	c.JSON(http.StatusOK, dto.ToTaxCodeResponse(taxCode))
}

// deleteTaxCode godoc
// @Summary Deactivate a tax code
// @Description Marks a tax code inactive so it can no longer be used on new lines
// @Tags tax-codes
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   tax_code_id path string true "Tax code ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Tax code not found"
// @Failure 500 {object} map[string]string "Failed to deactivate tax code"
// @Security BearerAuth
// @Router /companies/{company_id}/tax-codes/{tax_code_id} [delete]
func (h *taxCodeHandler) deleteTaxCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	taxCodeID := c.Param("tax_code_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("tax_code_id", taxCodeID))
	logger.Info("Received request to deactivate tax code")

	if err := h.taxCodeService.DeactivateTaxCode(c.Request.Context(), companyID, taxCodeID, userID); err != nil {
		h.respondTaxCodeError(c, logger, err, "Failed to deactivate tax code")
		return
	}

	logger.Info("Tax code deactivated successfully")
	c.Status(http.StatusNoContent)
}

// respondTaxCodeError maps tax code errors onto HTTP responses.
func (h *taxCodeHandler) respondTaxCodeError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Tax code not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Tax code not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("User forbidden for tax code operation")
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Tax code conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error in tax code operation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Tax code operation failed in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
