// internal/handlers/pages.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hyeonwoo-dev/furniture-shop/internal/services"
	"github.com/hyeonwoo-dev/furniture-shop/internal/utils"
)

// PageHandler renders the server-side HTML storefront. Every page gets
// the two-level category menu plus whatever the template needs; the
// logged-in username rides along when OptionalAuth resolved a session.
type PageHandler struct {
	catalogService *services.CatalogService
	optionService  *services.OptionService
	cartService    *services.CartService
	orderService   *services.OrderService
	commentService *services.CommentService
	paymentService *services.PaymentService
}

func NewPageHandler(
	catalogService *services.CatalogService,
	optionService *services.OptionService,
	cartService *services.CartService,
	orderService *services.OrderService,
	commentService *services.CommentService,
	paymentService *services.PaymentService,
) *PageHandler {
	return &PageHandler{
		catalogService: catalogService,
		optionService:  optionService,
		cartService:    cartService,
		orderService:   orderService,
		commentService: commentService,
		paymentService: paymentService,
	}
}

func (h *PageHandler) pageData(c *gin.Context, extra gin.H) gin.H {
	data := gin.H{}

	menu, err := h.catalogService.BuildMenu()
	if err == nil {
		data["menu"] = menu
	}

	if username, exists := c.Get("username"); exists {
		data["username"] = username
	}
	data["admin"] = isAdmin(c)

	for k, v := range extra {
		data[k] = v
	}
	return data
}

// GET /
func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.pageData(c, nil))
}

// GET /menu
func (h *PageHandler) Menu(c *gin.Context) {
	c.HTML(http.StatusOK, "menu.html", h.pageData(c, nil))
}

// GET /login
func (h *PageHandler) Login(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", h.pageData(c, nil))
}

// GET /join
func (h *PageHandler) Join(c *gin.Context) {
	c.HTML(http.StatusOK, "join.html", h.pageData(c, nil))
}

// GET /categorycreate
func (h *PageHandler) CategoryCreate(c *gin.Context) {
	categories, err := h.catalogService.FindAllCategories()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "index.html", h.pageData(c, gin.H{"error": err.Error()}))
		return
	}
	c.HTML(http.StatusOK, "categorycreate.html", h.pageData(c, gin.H{"categories": categories}))
}

// GET /category/updateForm?id=...
func (h *PageHandler) CategoryUpdateForm(c *gin.Context) {
	id, ok := parseQueryID(c, "id")
	if !ok {
		c.HTML(http.StatusBadRequest, "index.html", h.pageData(c, gin.H{"error": "invalid category id"}))
		return
	}

	category, err := h.catalogService.FindCategoryByID(id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	categories, _ := h.catalogService.FindAllCategories()
	c.HTML(http.StatusOK, "categoryUpdate.html", h.pageData(c, gin.H{
		"category":   category,
		"categories": categories,
	}))
}

// GET /category/show/:id
func (h *PageHandler) CategoryShow(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.catalogService.FindCategoryByID(id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	params := utils.GetPaginationParams(c)
	products, total, err := h.catalogService.FindProductsByCategory(id, params)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "productCategoryPage.html", h.pageData(c, gin.H{
		"category": category,
		"products": products,
		"total":    total,
		"page":     params.Page,
	}))
}

// GET /product/show/:id
func (h *PageHandler) ProductShow(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.FindProductByID(id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	// Missing options just hide the buy box
	options, err := h.optionService.FindByProductID(id)
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		h.renderError(c, err)
		return
	}

	comments, err := h.commentService.FindByProductID(id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "productPage.html", h.pageData(c, gin.H{
		"product":  product,
		"options":  options,
		"comments": comments,
	}))
}

// GET /product/add
func (h *PageHandler) ProductAdd(c *gin.Context) {
	categories, err := h.catalogService.FindAllCategories()
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "productCreate.html", h.pageData(c, gin.H{"categories": categories}))
}

// GET /product/update?id=...
func (h *PageHandler) ProductUpdate(c *gin.Context) {
	id, ok := parseQueryID(c, "id")
	if !ok {
		c.HTML(http.StatusBadRequest, "index.html", h.pageData(c, gin.H{"error": "invalid product id"}))
		return
	}

	product, err := h.catalogService.FindProductByID(id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	categories, _ := h.catalogService.FindAllCategories()
	c.HTML(http.StatusOK, "productUpdate.html", h.pageData(c, gin.H{
		"product":    product,
		"categories": categories,
	}))
}

// GET /cart
func (h *PageHandler) Cart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	items, err := h.cartService.FindByUserID(userID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	var total int64
	for _, item := range items {
		total += item.Price * item.Quantity
	}

	c.HTML(http.StatusOK, "cartPage.html", h.pageData(c, gin.H{
		"items": items,
		"total": total,
	}))
}

// GET /order
func (h *PageHandler) Orders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	orders, err := h.orderService.FindByUserID(userID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "orderPage.html", h.pageData(c, gin.H{"orders": orders}))
}

// GET /myPage
func (h *PageHandler) MyPage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	orders, err := h.orderService.FindByUserID(userID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	comments, err := h.commentService.FindByUserID(userID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "myPage.html", h.pageData(c, gin.H{
		"orders":   orders,
		"comments": comments,
	}))
}

// GET /product_comment/save/:id  (id is the option being reviewed)
func (h *PageHandler) CommentForm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	option, err := h.optionService.FindByID(id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "productReview.html", h.pageData(c, gin.H{"option": option}))
}

// GET /product_comment/update/:id
func (h *PageHandler) CommentUpdateForm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comment, err := h.commentService.FindByID(id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "commentUpdate.html", h.pageData(c, gin.H{"comment": comment}))
}

// GET /adminPage
func (h *PageHandler) AdminPage(c *gin.Context) {
	options, err := h.optionService.FindAll()
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "adminPage.html", h.pageData(c, gin.H{"options": options}))
}

// GET /payments/index
func (h *PageHandler) PaymentIndex(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	checks, err := h.paymentService.FindChecksByUserID(userID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "payindex.html", h.pageData(c, gin.H{"checks": checks}))
}

// GET /payments/response
func (h *PageHandler) PaymentResponse(c *gin.Context) {
	c.HTML(http.StatusOK, "payresponse.html", h.pageData(c, gin.H{
		"reference": c.Query("payment_intent"),
		"status":    c.Query("redirect_status"),
	}))
}

// GET /payments/cancel
func (h *PageHandler) PaymentCancel(c *gin.Context) {
	c.HTML(http.StatusOK, "paycancel.html", h.pageData(c, nil))
}

func (h *PageHandler) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, services.ErrNotFound) {
		status = http.StatusNotFound
	}
	c.HTML(status, "index.html", h.pageData(c, gin.H{"error": err.Error()}))
}
