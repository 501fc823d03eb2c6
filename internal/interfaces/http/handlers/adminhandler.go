package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marzgate/marzgate/internal/application/admin/dto"
	"github.com/marzgate/marzgate/internal/application/admin/usecases"
	"github.com/marzgate/marzgate/internal/interfaces/http/middleware"
	"github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
	"github.com/marzgate/marzgate/internal/shared/utils"
)

// AdminHandler exposes super-admin management of reseller accounts.
type AdminHandler struct {
	createAdminUC *usecases.CreateAdminUseCase
	updateAdminUC *usecases.UpdateAdminUseCase
	deleteAdminUC *usecases.DeleteAdminUseCase
	getAdminUC    *usecases.GetAdminUseCase
	listAdminsUC  *usecases.ListAdminsUseCase
	logger        logger.Interface
}

func NewAdminHandler(
	createAdminUC *usecases.CreateAdminUseCase,
	updateAdminUC *usecases.UpdateAdminUseCase,
	deleteAdminUC *usecases.DeleteAdminUseCase,
	getAdminUC *usecases.GetAdminUseCase,
	listAdminsUC *usecases.ListAdminsUseCase,
) *AdminHandler {
	return &AdminHandler{
		createAdminUC: createAdminUC,
		updateAdminUC: updateAdminUC,
		deleteAdminUC: deleteAdminUC,
		getAdminUC:    getAdminUC,
		listAdminsUC:  listAdminsUC,
		logger:        logger.NewLogger(),
	}
}

func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	var req dto.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create admin", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.createAdminUC.Execute(c.Request.Context(), actorID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Admin created successfully")
}

func (h *AdminHandler) UpdateAdmin(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	adminID, err := parseIDParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update admin", "admin_id", adminID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.updateAdminUC.Execute(c.Request.Context(), actorID, adminID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Admin updated successfully", result)
}

func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	adminID, err := parseIDParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteAdminUC.Execute(c.Request.Context(), actorID, adminID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Admin deleted successfully", nil)
}

func (h *AdminHandler) GetAdmin(c *gin.Context) {
	adminID, err := parseIDParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getAdminUC.Execute(c.Request.Context(), adminID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AdminHandler) ListAdmins(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	results, total, err := h.listAdminsUC.Execute(c.Request.Context(), pagination)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, results, total, pagination.Page, pagination.PageSize)
}

// parseIDParam parses the :id path parameter as a positive integer.
func parseIDParam(c *gin.Context) (uint, error) {
	idStr := c.Param("id")
	if idStr == "" {
		return 0, errors.NewValidationError("id is required")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid id format")
	}

	return uint(id), nil
}
