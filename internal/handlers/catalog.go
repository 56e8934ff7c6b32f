// internal/handlers/catalog.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hyeonwoo-dev/furniture-shop/internal/i18n"
	"github.com/hyeonwoo-dev/furniture-shop/internal/services"
	"github.com/hyeonwoo-dev/furniture-shop/internal/utils"
)

// CatalogHandler serves the category tree, products and options.
type CatalogHandler struct {
	catalogService *services.CatalogService
	optionService  *services.OptionService
}

func NewCatalogHandler(catalogService *services.CatalogService, optionService *services.OptionService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		optionService:  optionService,
	}
}

// POST /api/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	category, err := h.catalogService.CreateCategory(&req)
	if err != nil {
		handleServiceError(c, err, i18n.KeyCategoryNotFound)
		return
	}

	utils.CreatedResponse(c, category)
}

// GET /api/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.FindAllCategories()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, categories)
}

// GET /api/categories/super
func (h *CatalogHandler) ListSuperCategories(c *gin.Context) {
	categories, err := h.catalogService.FindSuperCategories()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, categories)
}

// GET /api/categories/:id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.catalogService.FindCategoryByID(id)
	if err != nil {
		handleServiceError(c, err, i18n.KeyCategoryNotFound)
		return
	}
	utils.SuccessResponse(c, category)
}

// GET /api/categories/:id/children
func (h *CatalogHandler) ListChildCategories(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	categories, err := h.catalogService.FindChildCategories(id)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, categories)
}

// PUT /api/categories/:id
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	category, err := h.catalogService.UpdateCategory(id, &req)
	if err != nil {
		handleServiceError(c, err, i18n.KeyCategoryNotFound)
		return
	}
	utils.SuccessResponse(c, category)
}

// DELETE /api/categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategory(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, i18n.KeyCategoryNotFound)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": id})
}

// POST /api/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.catalogService.CreateProduct(&req)
	if err != nil {
		handleServiceError(c, err, i18n.KeyCategoryNotFound)
		return
	}
	utils.CreatedResponse(c, product)
}

// GET /api/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.catalogService.FindAllProducts(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(products, total, params))
}

// GET /api/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.FindProductByID(id)
	if err != nil {
		handleServiceError(c, err, i18n.KeyProductNotFound)
		return
	}
	utils.SuccessResponse(c, product)
}

// GET /api/categories/:id/products
func (h *CatalogHandler) ListCategoryProducts(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	products, total, err := h.catalogService.FindProductsByCategory(id, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(products, total, params))
}

// PUT /api/products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.catalogService.UpdateProduct(id, &req)
	if err != nil {
		handleServiceError(c, err, i18n.KeyProductNotFound)
		return
	}
	utils.SuccessResponse(c, product)
}

// DELETE /api/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(id); err != nil {
		handleServiceError(c, err, i18n.KeyProductNotFound)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": id})
}

// POST /api/options
func (h *CatalogHandler) CreateOption(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	option, err := h.optionService.Create(&req)
	if err != nil {
		handleServiceError(c, err, i18n.KeyProductNotFound)
		return
	}
	utils.CreatedResponse(c, option)
}

// GET /api/options
func (h *CatalogHandler) ListOptions(c *gin.Context) {
	options, err := h.optionService.FindAll()
	if err != nil {
		handleServiceError(c, err, i18n.KeyOptionNotFound)
		return
	}
	utils.SuccessResponse(c, options)
}

// GET /api/options/:id
func (h *CatalogHandler) GetOption(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	option, err := h.optionService.FindByID(id)
	if err != nil {
		handleServiceError(c, err, i18n.KeyOptionNotFound)
		return
	}
	utils.SuccessResponse(c, option)
}

// GET /api/products/:id/options
func (h *CatalogHandler) ListProductOptions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	options, err := h.optionService.FindByProductID(id)
	if err != nil {
		handleServiceError(c, err, i18n.KeyOptionNotFound)
		return
	}
	utils.SuccessResponse(c, options)
}

// PUT /api/options/:id
func (h *CatalogHandler) UpdateOption(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	option, err := h.optionService.Update(id, &req)
	if err != nil {
		handleServiceError(c, err, i18n.KeyOptionNotFound)
		return
	}
	utils.SuccessResponse(c, option)
}

// PUT /api/options/:id/stock
func (h *CatalogHandler) UpdateOptionStock(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		StockQuantity int64 `json:"stock_quantity" validate:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	option, err := h.optionService.UpdateStock(id, req.StockQuantity)
	if err != nil {
		handleServiceError(c, err, i18n.KeyOptionNotFound)
		return
	}
	utils.SuccessResponse(c, option)
}

// DELETE /api/options/:id
func (h *CatalogHandler) DeleteOption(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.optionService.Delete(id); err != nil {
		handleServiceError(c, err, i18n.KeyOptionNotFound)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": id})
}
