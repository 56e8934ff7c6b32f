// internal/tests/api_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hyeonwoo-dev/furniture-shop/internal/config"
	"github.com/hyeonwoo-dev/furniture-shop/internal/handlers"
	"github.com/hyeonwoo-dev/furniture-shop/internal/middleware"
	"github.com/hyeonwoo-dev/furniture-shop/internal/models"
	"github.com/hyeonwoo-dev/furniture-shop/internal/services"
)

type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine

	option models.Option
}

func (suite *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Option{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderCheck{},
		&models.Comment{},
		&models.CommentFile{},
	))
	suite.db = db

	cfg := &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 168,
		},
		Upload: config.UploadConfig{
			BasePath:    suite.T().TempDir(),
			MaxFileSize: 10 * 1024 * 1024,
		},
	}

	blacklist := services.NewTokenBlacklist(cfg)
	authService := services.NewAuthService(db, blacklist, cfg)
	optionService := services.NewOptionService(db)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, optionService, cartService)

	authHandler := handlers.NewAuthHandler(authService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)

	r := gin.New()
	r.Use(middleware.I18nMiddleware())

	api := r.Group("/api")
	api.POST("/join", authHandler.Join)
	api.POST("/login", authHandler.Login)

	authed := api.Group("/")
	authed.Use(middleware.AuthRequired(blacklist))
	{
		authed.POST("/logout", authHandler.Logout)
		authed.GET("/user/info", authHandler.UserInfo)
		authed.POST("/cart", cartHandler.Add)
		authed.GET("/cart", cartHandler.List)
		authed.POST("/orders", orderHandler.Place)
		authed.DELETE("/orders/:id", orderHandler.Cancel)
	}
	suite.router = r

	// Seed one product with one option
	category := models.Category{Name: "거실 가구"}
	suite.Require().NoError(db.Create(&category).Error)
	product := models.Product{CategoryID: category.ID, Name: "패브릭 소파", Price: 450000}
	suite.Require().NoError(db.Create(&product).Error)
	suite.option = models.Option{ProductID: product.ID, Name: "그레이", Price: 10000, StockQuantity: 10}
	suite.Require().NoError(db.Create(&suite.option).Error)
}

func (suite *APITestSuite) doJSON(method, path string, payload interface{}, cookie string) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		suite.Require().NoError(err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: cookie})
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) join(email string) {
	w := suite.doJSON("POST", "/api/join", map[string]interface{}{
		"username": "tester",
		"email":    email,
		"password": "Password1!",
	}, "")
	suite.Require().Equal(http.StatusCreated, w.Code)
}

// login returns the session token set in the "token" cookie.
func (suite *APITestSuite) login(email string) string {
	w := suite.doJSON("POST", "/api/login", map[string]interface{}{
		"email":    email,
		"password": "Password1!",
	}, "")
	suite.Require().Equal(http.StatusOK, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			suite.Require().NotEmpty(c.Value)
			suite.Require().Equal("/", c.Path)
			suite.Require().Equal(3600, c.MaxAge)
			return c.Value
		}
	}
	suite.FailNow("login response did not set a token cookie")
	return ""
}

func (suite *APITestSuite) TestJoinAndLogin() {
	suite.join("user@example.com")
	token := suite.login("user@example.com")

	w := suite.doJSON("GET", "/api/user/info", nil, token)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(suite.T(), response["success"].(bool))
}

func (suite *APITestSuite) TestJoinDuplicateEmailConflicts() {
	suite.join("dup@example.com")

	w := suite.doJSON("POST", "/api/join", map[string]interface{}{
		"username": "tester",
		"email":    "dup@example.com",
		"password": "Password1!",
	}, "")
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *APITestSuite) TestLoginWrongPassword() {
	suite.join("user@example.com")

	w := suite.doJSON("POST", "/api/login", map[string]interface{}{
		"email":    "user@example.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestCartRequiresAuth() {
	w := suite.doJSON("GET", "/api/cart", nil, "")
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestCartAndOrderFlow() {
	suite.join("buyer@example.com")
	token := suite.login("buyer@example.com")

	// Add to cart
	w := suite.doJSON("POST", "/api/cart", map[string]interface{}{
		"option_id": suite.option.ID,
		"quantity":  3,
	}, token)
	suite.Require().Equal(http.StatusCreated, w.Code)

	// Place the order
	w = suite.doJSON("POST", "/api/orders", nil, token)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var placed struct {
		Data struct {
			Order models.Order `json:"order"`
			Total int64        `json:"total"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &placed))
	assert.Equal(suite.T(), int64(30000), placed.Data.Total)

	// Stock was deducted
	var option models.Option
	suite.Require().NoError(suite.db.First(&option, "id = ?", suite.option.ID).Error)
	assert.Equal(suite.T(), int64(7), option.StockQuantity)

	// Cart is now empty
	w = suite.doJSON("GET", "/api/cart", nil, token)
	suite.Require().Equal(http.StatusOK, w.Code)
	var cart struct {
		Data struct {
			Items []models.CartItem `json:"items"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Empty(suite.T(), cart.Data.Items)

	// Cancel restores stock
	w = suite.doJSON("DELETE", "/api/orders/"+placed.Data.Order.ID.String(), nil, token)
	suite.Require().Equal(http.StatusOK, w.Code)

	suite.Require().NoError(suite.db.First(&option, "id = ?", suite.option.ID).Error)
	assert.Equal(suite.T(), int64(10), option.StockQuantity)
}

func (suite *APITestSuite) TestOrderEmptyCart() {
	suite.join("buyer@example.com")
	token := suite.login("buyer@example.com")

	w := suite.doJSON("POST", "/api/orders", nil, token)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *APITestSuite) TestLogoutDropsCookie() {
	suite.join("user@example.com")
	token := suite.login("user@example.com")

	w := suite.doJSON("POST", "/api/logout", nil, token)
	suite.Require().Equal(http.StatusOK, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			assert.Empty(suite.T(), c.Value)
			assert.True(suite.T(), c.MaxAge < 0)
		}
	}
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
