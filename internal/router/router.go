// internal/router/router.go
package router

import (
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"

	"github.com/hyeonwoo-dev/furniture-shop/internal/config"
	"github.com/hyeonwoo-dev/furniture-shop/internal/handlers"
	"github.com/hyeonwoo-dev/furniture-shop/internal/middleware"
	"github.com/hyeonwoo-dev/furniture-shop/internal/services"
)

func SetupRouter(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Services
	blacklist := services.NewTokenBlacklist(cfg)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	authService := services.NewAuthService(db, blacklist, cfg)
	catalogService := services.NewCatalogService(db)
	optionService := services.NewOptionService(db)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, optionService, cartService)
	commentService := services.NewCommentService(db, storageService)
	paymentService := services.NewPaymentService(db, orderService, cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, optionService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	commentHandler := handlers.NewCommentHandler(commentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	pageHandler := handlers.NewPageHandler(
		catalogService, optionService, cartService,
		orderService, commentService, paymentService,
	)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.GeneralRateLimit())

	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/uploads", cfg.Upload.BasePath)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Server-rendered pages
	pages := r.Group("/")
	pages.Use(middleware.OptionalAuth(blacklist))
	{
		pages.GET("/", pageHandler.Index)
		pages.GET("/menu", pageHandler.Menu)
		pages.GET("/login", pageHandler.Login)
		pages.GET("/join", pageHandler.Join)
		pages.GET("/category/show/:id", pageHandler.CategoryShow)
		pages.GET("/product/show/:id", pageHandler.ProductShow)
	}

	userPages := r.Group("/")
	userPages.Use(middleware.AuthRequired(blacklist))
	{
		userPages.GET("/cart", pageHandler.Cart)
		userPages.GET("/order", pageHandler.Orders)
		userPages.GET("/myPage", pageHandler.MyPage)
		userPages.GET("/product_comment/save/:id", pageHandler.CommentForm)
		userPages.GET("/product_comment/update/:id", pageHandler.CommentUpdateForm)
		userPages.GET("/payments/index", pageHandler.PaymentIndex)
		userPages.GET("/payments/response", pageHandler.PaymentResponse)
		userPages.GET("/payments/cancel", pageHandler.PaymentCancel)
	}

	adminPages := r.Group("/")
	adminPages.Use(middleware.AuthRequired(blacklist), middleware.AdminRequired())
	{
		adminPages.GET("/adminPage", pageHandler.AdminPage)
		adminPages.GET("/categorycreate", pageHandler.CategoryCreate)
		adminPages.GET("/category/updateForm", pageHandler.CategoryUpdateForm)
		adminPages.GET("/product/add", pageHandler.ProductAdd)
		adminPages.GET("/product/update", pageHandler.ProductUpdate)
	}

	// JSON API
	api := r.Group("/api")
	{
		// Auth
		api.POST("/join", middleware.AuthRateLimit(), authHandler.Join)
		api.POST("/login", middleware.AuthRateLimit(), authHandler.Login)
		api.POST("/refresh", middleware.AuthRateLimit(), authHandler.Refresh)

		// Public catalog reads
		api.GET("/categories", catalogHandler.ListCategories)
		api.GET("/categories/super", catalogHandler.ListSuperCategories)
		api.GET("/categories/:id", catalogHandler.GetCategory)
		api.GET("/categories/:id/children", catalogHandler.ListChildCategories)
		api.GET("/categories/:id/products", catalogHandler.ListCategoryProducts)
		api.GET("/products", catalogHandler.ListProducts)
		api.GET("/products/:id", catalogHandler.GetProduct)
		api.GET("/products/:id/options", catalogHandler.ListProductOptions)
		api.GET("/products/:id/comments", commentHandler.ListByProduct)
		api.GET("/options/:id", catalogHandler.GetOption)
		api.GET("/comments/:id", commentHandler.Get)

		// Authenticated
		authed := api.Group("/")
		authed.Use(middleware.AuthRequired(blacklist))
		{
			authed.POST("/logout", authHandler.Logout)
			authed.GET("/user/info", authHandler.UserInfo)

			authed.POST("/cart", cartHandler.Add)
			authed.GET("/cart", cartHandler.List)
			authed.PUT("/cart/:id", cartHandler.UpdateQuantity)
			authed.DELETE("/cart/:id", cartHandler.Remove)

			authed.POST("/orders", orderHandler.Place)
			authed.GET("/orders", orderHandler.List)
			authed.GET("/orders/:id", orderHandler.Get)
			authed.DELETE("/orders/:id", orderHandler.Cancel)

			authed.POST("/options/:id/comments", middleware.UploadRateLimit(), commentHandler.Create)
			authed.PUT("/comments/:id", commentHandler.Update)
			authed.DELETE("/comments/:id", commentHandler.Delete)

			authed.POST("/payments/intent", paymentHandler.CreateIntent)
			authed.POST("/payments/confirm", paymentHandler.Confirm)
			authed.GET("/payments/checks", paymentHandler.ListChecks)
			authed.GET("/payments/checks/:id", paymentHandler.GetCheck)
			authed.POST("/payments/checks/:id/cancel", paymentHandler.CancelCheck)
		}

		// Admin
		admin := api.Group("/")
		admin.Use(middleware.AuthRequired(blacklist), middleware.AdminRequired())
		{
			admin.POST("/join/admin", authHandler.JoinAdmin)

			admin.POST("/categories", catalogHandler.CreateCategory)
			admin.PUT("/categories/:id", catalogHandler.UpdateCategory)
			admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)

			admin.POST("/products", catalogHandler.CreateProduct)
			admin.PUT("/products/:id", catalogHandler.UpdateProduct)
			admin.DELETE("/products/:id", catalogHandler.DeleteProduct)

			admin.POST("/options", catalogHandler.CreateOption)
			admin.GET("/options", catalogHandler.ListOptions)
			admin.PUT("/options/:id", catalogHandler.UpdateOption)
			admin.PUT("/options/:id/stock", catalogHandler.UpdateOptionStock)
			admin.DELETE("/options/:id", catalogHandler.DeleteOption)
		}
	}

	return r, nil
}
