// internal/handlers/payment.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hyeonwoo-dev/furniture-shop/internal/i18n"
	"github.com/hyeonwoo-dev/furniture-shop/internal/services"
	"github.com/hyeonwoo-dev/furniture-shop/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// POST /api/payments/intent
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, err := h.paymentService.CreateIntent(userID, &req)
	if err != nil {
		handleServiceError(c, err, i18n.KeyOrderNotFound)
		return
	}
	utils.CreatedResponse(c, result)
}

// POST /api/payments/confirm
func (h *PaymentHandler) Confirm(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	check, err := h.paymentService.Confirm(userID, &req)
	if err != nil {
		handleServiceError(c, err, i18n.KeyPaymentNotFound)
		return
	}
	utils.SuccessResponse(c, check)
}

// GET /api/payments/checks
func (h *PaymentHandler) ListChecks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	checks, err := h.paymentService.FindChecksByUserID(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, checks)
}

// GET /api/payments/checks/:id
func (h *PaymentHandler) GetCheck(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	checkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	check, err := h.paymentService.FindCheckByID(checkID, userID, isAdmin(c))
	if err != nil {
		handleServiceError(c, err, i18n.KeyPaymentNotFound)
		return
	}
	utils.SuccessResponse(c, check)
}

// POST /api/payments/checks/:id/cancel
func (h *PaymentHandler) CancelCheck(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	checkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	check, err := h.paymentService.CancelCheck(checkID, userID, isAdmin(c))
	if err != nil {
		handleServiceError(c, err, i18n.KeyPaymentNotFound)
		return
	}
	utils.SuccessResponse(c, check)
}
