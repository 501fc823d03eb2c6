package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marzgate/marzgate/internal/application/payment/dto"
	"github.com/marzgate/marzgate/internal/application/payment/usecases"
	"github.com/marzgate/marzgate/internal/interfaces/http/middleware"
	"github.com/marzgate/marzgate/internal/shared/errors"
	"github.com/marzgate/marzgate/internal/shared/logger"
	"github.com/marzgate/marzgate/internal/shared/utils"
)

type PaymentHandler struct {
	requestChargeUC    *usecases.RequestChargeUseCase
	handleCallbackUC   *usecases.HandleCallbackUseCase
	listTransactionsUC *usecases.ListTransactionsUseCase
	logger             logger.Interface
}

func NewPaymentHandler(
	requestChargeUC *usecases.RequestChargeUseCase,
	handleCallbackUC *usecases.HandleCallbackUseCase,
	listTransactionsUC *usecases.ListTransactionsUseCase,
) *PaymentHandler {
	return &PaymentHandler{
		requestChargeUC:    requestChargeUC,
		handleCallbackUC:   handleCallbackUC,
		listTransactionsUC: listTransactionsUC,
		logger:             logger.NewLogger(),
	}
}

// RequestCharge starts a balance top-up and returns the gateway payment URL
// the frontend should redirect the payer to.
func (h *PaymentHandler) RequestCharge(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	var req dto.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for charge", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.requestChargeUC.Execute(c.Request.Context(), actorID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Charge initiated successfully")
}

// HandleCallback receives the gateway's browser redirect. It never renders an
// API error: every path ends in a redirect to the frontend result page.
func (h *PaymentHandler) HandleCallback(c *gin.Context) {
	authority := c.Query("Authority")
	status := c.Query("Status")

	outcome := h.handleCallbackUC.Execute(c.Request.Context(), authority, status)

	c.Redirect(http.StatusFound, outcome.RedirectURL)
}

func (h *PaymentHandler) ListTransactions(c *gin.Context) {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	pagination := utils.ParsePagination(c)

	results, total, err := h.listTransactionsUC.Execute(c.Request.Context(), actorID, pagination)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, results, total, pagination.Page, pagination.PageSize)
}
