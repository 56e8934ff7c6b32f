// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hyeonwoo-dev/furniture-shop/internal/i18n"
	"github.com/hyeonwoo-dev/furniture-shop/internal/services"
	"github.com/hyeonwoo-dev/furniture-shop/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// POST /api/cart
func (h *CartHandler) Add(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	item, err := h.cartService.Add(userID, &req)
	if err != nil {
		handleServiceError(c, err, i18n.KeyOptionNotFound)
		return
	}
	utils.CreatedResponse(c, item)
}

// GET /api/cart
func (h *CartHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	items, err := h.cartService.FindByUserID(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	var total int64
	for _, item := range items {
		total += item.Price * item.Quantity
	}

	utils.SuccessResponse(c, gin.H{
		"items": items,
		"total": total,
	})
}

// PUT /api/cart/:id
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	item, err := h.cartService.UpdateQuantity(userID, itemID, &req)
	if err != nil {
		handleServiceError(c, err, "cart")
		return
	}
	utils.SuccessResponse(c, item)
}

// DELETE /api/cart/:id
func (h *CartHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.cartService.Remove(userID, itemID); err != nil {
		handleServiceError(c, err, "cart")
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": itemID})
}
