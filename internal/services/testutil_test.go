// internal/services/testutil_test.go
package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hyeonwoo-dev/furniture-shop/internal/config"
	"github.com/hyeonwoo-dev/furniture-shop/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
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
	)
	require.NoError(t, err)

	return db
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 168,
		},
		Upload: config.UploadConfig{
			BasePath:    t.TempDir(),
			MaxFileSize: 10 * 1024 * 1024,
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Username: "tester",
		Email:    email,
		Roles:    models.RoleUser,
	}
	require.NoError(t, user.SetPassword("Password1!"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCatalog(t *testing.T, db *gorm.DB) (*models.Category, *models.Product) {
	t.Helper()

	category := &models.Category{Name: "거실 가구"}
	require.NoError(t, db.Create(category).Error)

	product := &models.Product{
		CategoryID:  category.ID,
		Name:        "패브릭 소파",
		Description: "3인용 패브릭 소파",
		Price:       450000,
		DeliveryFee: 30000,
	}
	require.NoError(t, db.Create(product).Error)
	return category, product
}

func createTestOption(t *testing.T, db *gorm.DB, productID uuid.UUID, name string, price, stock int64) *models.Option {
	t.Helper()

	option := &models.Option{
		ProductID:     productID,
		Name:          name,
		Price:         price,
		StockQuantity: stock,
	}
	require.NoError(t, db.Create(option).Error)
	return option
}
