// internal/services/option_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionServiceCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewOptionService(db)
	_, product := createTestCatalog(t, db)

	option, err := svc.Create(&CreateOptionRequest{
		ProductID:     product.ID,
		Name:          "그레이",
		Price:         10000,
		StockQuantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, product.ID, option.ProductID)
	assert.Equal(t, int64(5), option.StockQuantity)
}

func TestOptionServiceCreateMissingProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewOptionService(db)

	_, err := svc.Create(&CreateOptionRequest{
		ProductID: uuid.New(),
		Name:      "그레이",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOptionServiceFindByProductIDEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewOptionService(db)
	_, product := createTestCatalog(t, db)

	// A product with no options is an error, not an empty list
	_, err := svc.FindByProductID(product.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOptionServiceFindByProductID(t *testing.T) {
	db := newTestDB(t)
	svc := NewOptionService(db)
	_, product := createTestCatalog(t, db)
	createTestOption(t, db, product.ID, "그레이", 0, 3)
	createTestOption(t, db, product.ID, "베이지", 5000, 7)

	options, err := svc.FindByProductID(product.ID)
	require.NoError(t, err)
	assert.Len(t, options, 2)
}

func TestOptionServiceDeductStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewOptionService(db)
	_, product := createTestCatalog(t, db)
	option := createTestOption(t, db, product.ID, "그레이", 0, 10)

	require.NoError(t, svc.DeductStock(db, option.ID, 4))

	reloaded, err := svc.FindByID(option.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), reloaded.StockQuantity)
}

func TestOptionServiceDeductStockInsufficient(t *testing.T) {
	db := newTestDB(t)
	svc := NewOptionService(db)
	_, product := createTestCatalog(t, db)
	option := createTestOption(t, db, product.ID, "그레이", 0, 3)

	err := svc.DeductStock(db, option.ID, 4)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Stock is untouched after a failed deduction
	reloaded, err := svc.FindByID(option.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), reloaded.StockQuantity)
}

func TestOptionServiceDeductStockExact(t *testing.T) {
	db := newTestDB(t)
	svc := NewOptionService(db)
	_, product := createTestCatalog(t, db)
	option := createTestOption(t, db, product.ID, "그레이", 0, 3)

	require.NoError(t, svc.DeductStock(db, option.ID, 3))

	reloaded, err := svc.FindByID(option.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), reloaded.StockQuantity)

	// The next unit is refused
	err = svc.DeductStock(db, option.ID, 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestOptionServiceDeductStockMissingOption(t *testing.T) {
	db := newTestDB(t)
	svc := NewOptionService(db)

	err := svc.DeductStock(db, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOptionServiceRestoreStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewOptionService(db)
	_, product := createTestCatalog(t, db)
	option := createTestOption(t, db, product.ID, "그레이", 0, 2)

	require.NoError(t, svc.RestoreStock(db, option.ID, 5))

	reloaded, err := svc.FindByID(option.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), reloaded.StockQuantity)
}

func TestOptionServiceUpdateStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewOptionService(db)
	_, product := createTestCatalog(t, db)
	option := createTestOption(t, db, product.ID, "그레이", 0, 2)

	updated, err := svc.UpdateStock(option.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(20), updated.StockQuantity)

	_, err = svc.UpdateStock(option.ID, -1)
	assert.Error(t, err)
}

func TestOptionServiceDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewOptionService(db)
	_, product := createTestCatalog(t, db)
	option := createTestOption(t, db, product.ID, "그레이", 0, 2)

	require.NoError(t, svc.Delete(option.ID))

	_, err := svc.FindByID(option.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(option.ID), ErrNotFound)
}
