// internal/handlers/comment.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hyeonwoo-dev/furniture-shop/internal/i18n"
	"github.com/hyeonwoo-dev/furniture-shop/internal/services"
	"github.com/hyeonwoo-dev/furniture-shop/internal/utils"
)

// CommentHandler serves product reviews. Create accepts multipart form
// data so attachments can ride along with the text.
type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// POST /api/options/:id/comments  (multipart: content, order_check_id?, files[])
func (h *CommentHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	optionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	content := c.PostForm("content")
	if content == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "content"), nil)
		return
	}

	req := services.CreateCommentRequest{Content: content}
	if raw := c.PostForm("order_check_id"); raw != "" {
		checkID, err := uuid.Parse(raw)
		if err != nil {
			utils.BadRequestResponse(c, "invalid order_check_id", nil)
			return
		}
		req.OrderCheckID = &checkID
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "invalid multipart form", err.Error())
		return
	}
	files := form.File["files"]

	comment, err := h.commentService.Create(userID, optionID, &req, files)
	if err != nil {
		handleServiceError(c, err, i18n.KeyOptionNotFound)
		return
	}
	utils.CreatedResponse(c, comment)
}

// GET /api/products/:id/comments
func (h *CommentHandler) ListByProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.commentService.FindByProductID(productID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, comments)
}

// GET /api/comments/:id
func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comment, err := h.commentService.FindByID(id)
	if err != nil {
		handleServiceError(c, err, i18n.KeyCommentNotFound)
		return
	}
	utils.SuccessResponse(c, comment)
}

// PUT /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	comment, err := h.commentService.Update(id, userID, &req)
	if err != nil {
		handleServiceError(c, err, i18n.KeyCommentNotFound)
		return
	}
	utils.SuccessResponse(c, comment)
}

// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.Delete(id, userID, isAdmin(c)); err != nil {
		handleServiceError(c, err, i18n.KeyCommentNotFound)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": id})
}
