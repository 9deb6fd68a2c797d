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

// companyHandler handles HTTP requests related to companies and their members.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

// newCompanyHandler creates a new companyHandler.
func newCompanyHandler(cs portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{
		companyService: cs,
	}
}

// registerCompanyRoutes registers routes related to companies and their members.
// It also registers the accounting routes nested under a specific company.
func registerCompanyRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newCompanyHandler(services.Company)

	// Routes for managing companies themselves (e.g., creating, listing user's companies)
	companiesTopLevel := rg.Group("/companies")
	{
		companiesTopLevel.POST("", h.createCompany)
		companiesTopLevel.GET("", h.listUserCompanies) // List companies the calling user belongs to
	}

	// Routes specific to a single company (identified by company_id)
	companySpecific := rg.Group("/companies/:company_id")
	{
		companySpecific.GET("", h.getCompany)
		companySpecific.PUT("", h.updateCompany)
		companySpecific.DELETE("", h.deactivateCompany)

		// Manage users within a company
		companyUsers := companySpecific.Group("/users")
		{
			companyUsers.POST("", h.addUserToCompany)
			companyUsers.GET("", h.listCompanyUsers)
			companyUsers.PUT("/:user_id/role", h.updateUserRole)
			companyUsers.DELETE("/:user_id", h.removeUserFromCompany)
		}

		// -- NESTED ACCOUNTING ROUTES --
		// Everything below is scoped to the company in the path.
		RegisterAccountRoutes(companySpecific, services.Account, services.Journal)
		RegisterJournalRoutes(companySpecific, services.Journal)
		registerFiscalRoutes(companySpecific, services.Fiscal)
		registerTaxCodeRoutes(companySpecific, services.TaxCode)
		registerTaxReturnRoutes(companySpecific, services.TaxReturn)
		registerReportingRoutes(companySpecific, services.Reporting)
	}
}

// createCompany godoc
// @Summary Create a new company
// @Description Creates a new company, assigns the creator as admin and seeds the default chart of accounts, tax codes and document sequences.
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create company"
// @Security BearerAuth
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create company", slog.String("company_name", req.Name))

	newCompany, err := h.companyService.CreateCompany(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating company", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create company in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create company"})
		}
		return
	}

	logger.Info("Company created successfully", slog.String("company_id", newCompany.CompanyID))
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(newCompany))
}

// listUserCompanies godoc
// @Summary List companies for current user
// @Description Retrieves a list of companies the authenticated user belongs to.
// @Tags companies
// @Produce  json
// @Success 200 {object} dto.ListCompaniesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list companies"
// @Security BearerAuth
// @Router /companies [get]
func (h *companyHandler) listUserCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("user_id", userID))
	logger.Info("Received request to list user's companies")

	companies, err := h.companyService.ListUserCompanies(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list companies from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list companies"})
		return
	}

	logger.Info("Companies listed successfully", slog.Int("count", len(companies)))
	c.JSON(http.StatusOK, dto.ToListCompaniesResponse(companies))
}

// getCompany godoc
// @Summary Get a company by ID
// @Description Retrieves details for a specific company. The caller must be a member.
// @Tags companies
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to retrieve company"
// @Security BearerAuth
// @Router /companies/{company_id} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID))
	logger.Info("Received request to get company")

	company, err := h.companyService.GetCompanyByID(c.Request.Context(), companyID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Company not found or user is not a member")
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else {
			logger.Error("Failed to get company from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve company"})
		}
		return
	}

	logger.Info("Company retrieved successfully")
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// updateCompany godoc
// @Summary Update a company
// @Description Updates a company's details (requires admin permission).
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   company body dto.UpdateCompanyRequest true "Company details to update"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (caller is not admin)"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to update company"
// @Security BearerAuth
// @Router /companies/{company_id} [put]
func (h *companyHandler) updateCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("updater_user_id", userID))
	logger.Info("Received request to update company")

	updatedCompany, err := h.companyService.UpdateCompany(c.Request.Context(), companyID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Company not found for update")
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to update company")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to update company in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company"})
		}
		return
	}

	logger.Info("Company updated successfully")
	c.JSON(http.StatusOK, dto.ToCompanyResponse(updatedCompany))
}

// deactivateCompany godoc
// @Summary Deactivate a company
// @Description Marks a company as inactive (requires admin permission).
// @Tags companies
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (caller is not admin)"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to deactivate company"
// @Security BearerAuth
// @Router /companies/{company_id} [delete]
func (h *companyHandler) deactivateCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("deleter_user_id", userID))
	logger.Info("Received request to deactivate company")

	if err := h.companyService.DeactivateCompany(c.Request.Context(), companyID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Company not found for deactivation")
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("User forbidden to deactivate company")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to deactivate company in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate company"})
		}
		return
	}

	logger.Info("Company deactivated successfully")
	c.Status(http.StatusNoContent)
}

// addUserToCompany godoc
// @Summary Add a user to a company
// @Description Adds a specified user to a company with a given role (requires admin permission).
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   user_details body dto.AddUserToCompanyRequest true "User ID and Role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (caller is not admin)"
// @Failure 404 {object} map[string]string "Company or User not found"
// @Failure 500 {object} map[string]string "Failed to add user"
// @Security BearerAuth
// @Router /companies/{company_id}/users [post]
func (h *companyHandler) addUserToCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.AddUserToCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddUserToCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Adding user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("adding_user_id", addingUserID), slog.String("company_id", companyID), slog.String("target_user_id", req.UserID))
	logger.Info("Received request to add user to company", slog.String("role", string(req.Role)))

	err := h.companyService.AddUserToCompany(c.Request.Context(), addingUserID, req.UserID, companyID, req.Role)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Add user failed: company or user not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Company or user not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Add user failed: forbidden")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Add user failed: already a member")
			c.JSON(http.StatusConflict, gin.H{"error": "User is already a member of this company"})
		} else {
			logger.Error("Failed to add user to company in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add user to company"})
		}
		return
	}

	logger.Info("User added to company successfully")
	c.Status(http.StatusNoContent)
}

// listCompanyUsers godoc
// @Summary List users in a company
// @Description Retrieves the members of a company and their roles. The caller must be a member.
// @Tags companies
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {array} dto.UserCompanyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to list users"
// @Security BearerAuth
// @Router /companies/{company_id}/users [get]
func (h *companyHandler) listCompanyUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID))
	logger.Info("Received request to list company users")

	members, err := h.companyService.ListCompanyUsers(c.Request.Context(), companyID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Company not found or user is not a member")
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else {
			logger.Error("Failed to list company users from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list company users"})
		}
		return
	}

	logger.Info("Company users listed successfully", slog.Int("count", len(members)))
	c.JSON(http.StatusOK, dto.ToListUserCompanyResponse(members))
}

// updateUserRole godoc
// @Summary Change a member's role
// @Description Updates a user's role within a company (requires admin permission).
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   user_id path string true "User ID"
// @Param   role body dto.UpdateUserCompanyRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (caller is not admin)"
// @Failure 404 {object} map[string]string "Company or member not found"
// @Failure 500 {object} map[string]string "Failed to update role"
// @Security BearerAuth
// @Router /companies/{company_id}/users/{user_id}/role [put]
func (h *companyHandler) updateUserRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	targetUserID := c.Param("user_id")

	var req dto.UpdateUserCompanyRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateUserRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("target_user_id", targetUserID))
	logger.Info("Received request to update user role", slog.String("new_role", string(req.Role)))

	err := h.companyService.UpdateUserCompanyRole(c.Request.Context(), requestingUserID, targetUserID, companyID, req.Role)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Update role failed: company or member not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Company or member not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Update role failed: forbidden")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Update role failed: validation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update user role in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user role"})
		}
		return
	}

	logger.Info("User role updated successfully")
	c.Status(http.StatusNoContent)
}

// removeUserFromCompany godoc
// @Summary Remove a user from a company
// @Description Removes a member from a company (requires admin permission).
// @Tags companies
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   user_id path string true "User ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (caller is not admin)"
// @Failure 404 {object} map[string]string "Company or member not found"
// @Failure 500 {object} map[string]string "Failed to remove user"
// @Security BearerAuth
// @Router /companies/{company_id}/users/{user_id} [delete]
func (h *companyHandler) removeUserFromCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	targetUserID := c.Param("user_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("target_user_id", targetUserID))
	logger.Info("Received request to remove user from company")

	err := h.companyService.RemoveUserFromCompany(c.Request.Context(), requestingUserID, targetUserID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Remove user failed: company or member not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Company or member not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Remove user failed: forbidden")
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to remove user from company in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove user from company"})
		}
		return
	}

	logger.Info("User removed from company successfully")
	c.Status(http.StatusNoContent)
}
