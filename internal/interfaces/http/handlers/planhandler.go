package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marzgate/marzgate/internal/application/plan/dto"
	"github.com/marzgate/marzgate/internal/application/plan/usecases"
	"github.com/marzgate/marzgate/internal/interfaces/http/middleware"
	"github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
	"github.com/marzgate/marzgate/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC *usecases.CreatePlanUseCase
	updatePlanUC *usecases.UpdatePlanUseCase
	deletePlanUC *usecases.DeletePlanUseCase
	getPlanUC    *usecases.GetPlanUseCase
	listPlansUC  *usecases.ListPlansUseCase
	logger       logger.Interface
}

func NewPlanHandler(
	createPlanUC *usecases.CreatePlanUseCase,
	updatePlanUC *usecases.UpdatePlanUseCase,
	deletePlanUC *usecases.DeletePlanUseCase,
	getPlanUC *usecases.GetPlanUseCase,
	listPlansUC *usecases.ListPlansUseCase,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC: createPlanUC,
		updatePlanUC: updatePlanUC,
		deletePlanUC: deletePlanUC,
		getPlanUC:    getPlanUC,
		listPlansUC:  listPlansUC,
		logger:       logger.NewLogger(),
	}
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.createPlanUC.Execute(c.Request.Context(), actorID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Plan created successfully")
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	planID, err := parseIDParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update plan", "plan_id", planID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.updatePlanUC.Execute(c.Request.Context(), actorID, planID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan updated successfully", result)
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	planID, err := parseIDParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deletePlanUC.Execute(c.Request.Context(), actorID, planID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan deleted successfully", nil)
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID, err := parseIDParam(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getPlanUC.Execute(c.Request.Context(), planID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListPlans returns every plan for the super admin console.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	results, total, err := h.listPlansUC.Execute(c.Request.Context(), pagination, false)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, results, total, pagination.Page, pagination.PageSize)
}

// ListActivePlans returns only active plans, the set resellers may order from.
func (h *PlanHandler) ListActivePlans(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	results, total, err := h.listPlansUC.Execute(c.Request.Context(), pagination, true)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, results, total, pagination.Page, pagination.PageSize)
}
