package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marzgate/marzgate/internal/application/vpnuser/dto"
	"github.com/marzgate/marzgate/internal/application/vpnuser/usecases"
	"github.com/marzgate/marzgate/internal/interfaces/http/middleware"
	"github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
	"github.com/marzgate/marzgate/internal/shared/utils"
)

// VpnUserHandler exposes the reseller's own VPN account operations. Every
// route is scoped to the authenticated admin; usernames belonging to other
// admins behave as if they do not exist.
type VpnUserHandler struct {
	createVpnUserUC  *usecases.CreateVpnUserUseCase
	deleteVpnUserUC  *usecases.DeleteVpnUserUseCase
	getDetailUC      *usecases.GetVpnUserDetailUseCase
	listVpnUsersUC   *usecases.ListVpnUsersUseCase
	resetTrafficUC   *usecases.ResetVpnUserTrafficUseCase
	changePlanUC     *usecases.ChangeVpnUserPlanUseCase
	listPanelUsersUC *usecases.ListPanelAccountsUseCase
	logger           logger.Interface
}

func NewVpnUserHandler(
	createVpnUserUC *usecases.CreateVpnUserUseCase,
	deleteVpnUserUC *usecases.DeleteVpnUserUseCase,
	getDetailUC *usecases.GetVpnUserDetailUseCase,
	listVpnUsersUC *usecases.ListVpnUsersUseCase,
	resetTrafficUC *usecases.ResetVpnUserTrafficUseCase,
	changePlanUC *usecases.ChangeVpnUserPlanUseCase,
	listPanelUsersUC *usecases.ListPanelAccountsUseCase,
) *VpnUserHandler {
	return &VpnUserHandler{
		createVpnUserUC:  createVpnUserUC,
		deleteVpnUserUC:  deleteVpnUserUC,
		getDetailUC:      getDetailUC,
		listVpnUsersUC:   listVpnUsersUC,
		resetTrafficUC:   resetTrafficUC,
		changePlanUC:     changePlanUC,
		listPanelUsersUC: listPanelUsersUC,
		logger:           logger.NewLogger(),
	}
}

func (h *VpnUserHandler) CreateVpnUser(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	var req dto.CreateVpnUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create vpn user", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.createVpnUserUC.Execute(c.Request.Context(), actorID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "VPN user created successfully")
}

func (h *VpnUserHandler) DeleteVpnUser(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	username, err := parseUsernameParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteVpnUserUC.Execute(c.Request.Context(), actorID, username); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "VPN user deleted successfully", nil)
}

func (h *VpnUserHandler) GetVpnUserDetail(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	username, err := parseUsernameParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getDetailUC.Execute(c.Request.Context(), actorID, username)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *VpnUserHandler) ListVpnUsers(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	pagination := utils.ParsePagination(c)

	results, total, err := h.listVpnUsersUC.Execute(c.Request.Context(), actorID, pagination)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, results, total, pagination.Page, pagination.PageSize)
}

func (h *VpnUserHandler) ResetVpnUserTraffic(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	username, err := parseUsernameParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.resetTrafficUC.Execute(c.Request.Context(), actorID, username); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Traffic reset successfully", nil)
}

// ChangeVpnUserPlan moves one of the caller's accounts to another plan.
func (h *VpnUserHandler) ChangeVpnUserPlan(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	username, err := parseUsernameParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.ChangeVpnUserPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change vpn user plan", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.changePlanUC.Execute(c.Request.Context(), actorID, username, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan changed successfully", result)
}

// ListPanelAccounts pages the remote panel's accounts for reconciliation.
// Super-admin only.
func (h *VpnUserHandler) ListPanelAccounts(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	results, total, err := h.listPanelUsersUC.Execute(c.Request.Context(), pagination)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, results, total, pagination.Page, pagination.PageSize)
}

func parseUsernameParam(c *gin.Context) (string, error) {
	username := c.Param("username")
	if username == "" {
		return "", errors.NewValidationError("username is required")
	}
	return username, nil
}
