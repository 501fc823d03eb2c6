package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marzgate/marzgate/internal/application/auth/dto"
	"github.com/marzgate/marzgate/internal/application/auth/usecases"
	"github.com/marzgate/marzgate/internal/shared/logger"
	"github.com/marzgate/marzgate/internal/shared/utils"
)

type AuthHandler struct {
	adminLoginUC      *usecases.AdminLoginUseCase
	superAdminLoginUC *usecases.SuperAdminLoginUseCase
	logger            logger.Interface
}

func NewAuthHandler(
	adminLoginUC *usecases.AdminLoginUseCase,
	superAdminLoginUC *usecases.SuperAdminLoginUseCase,
) *AuthHandler {
	return &AuthHandler{
		adminLoginUC:      adminLoginUC,
		superAdminLoginUC: superAdminLoginUC,
		logger:            logger.NewLogger(),
	}
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for admin login", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "username and password are required")
		return
	}

	result, err := h.adminLoginUC.Execute(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AuthHandler) SuperAdminLogin(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for super admin login", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "username and password are required")
		return
	}

	result, err := h.superAdminLoginUC.Execute(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
