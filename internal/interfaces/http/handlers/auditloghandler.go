package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marzgate/marzgate/internal/application/audit"
	"github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
	"github.com/marzgate/marzgate/internal/shared/utils"
)

type AuditLogHandler struct {
	listActionsUC *audit.ListActionsUseCase
	logger        logger.Interface
}

func NewAuditLogHandler(listActionsUC *audit.ListActionsUseCase) *AuditLogHandler {
	return &AuditLogHandler{
		listActionsUC: listActionsUC,
		logger:        logger.NewLogger(),
	}
}

// ListActionLogs pages through the audit trail. An optional admin_id query
// parameter narrows the listing to one reseller's actions.
func (h *AuditLogHandler) ListActionLogs(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	var adminID *uint
	if raw := c.Query("admin_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid admin_id parameter"))
			return
		}
		parsed := uint(id)
		adminID = &parsed
	}

	results, total, err := h.listActionsUC.Execute(c.Request.Context(), pagination, adminID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, results, total, pagination.Page, pagination.PageSize)
}
