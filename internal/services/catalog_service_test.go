// internal/services/catalog_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyeonwoo-dev/furniture-shop/internal/models"
	"github.com/hyeonwoo-dev/furniture-shop/internal/utils"
)

func TestCatalogServiceCategoryTree(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	super, err := svc.CreateCategory(&CreateCategoryRequest{Name: "가구"})
	require.NoError(t, err)
	assert.Nil(t, super.ParentID)

	parent, err := svc.CreateCategory(&CreateCategoryRequest{Name: "소파", ParentID: &super.ID})
	require.NoError(t, err)

	son, err := svc.CreateCategory(&CreateCategoryRequest{Name: "패브릭 소파", ParentID: &parent.ID})
	require.NoError(t, err)

	supers, err := svc.FindSuperCategories()
	require.NoError(t, err)
	require.Len(t, supers, 1)
	assert.Equal(t, super.ID, supers[0].ID)

	children, err := svc.FindChildCategories(parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, son.ID, children[0].ID)
}

func TestCatalogServiceCreateCategoryMissingParent(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	missing := uuid.New()
	_, err := svc.CreateCategory(&CreateCategoryRequest{Name: "소파", ParentID: &missing})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogServiceBuildMenuTwoLevels(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	super, err := svc.CreateCategory(&CreateCategoryRequest{Name: "가구"})
	require.NoError(t, err)
	parent, err := svc.CreateCategory(&CreateCategoryRequest{Name: "소파", ParentID: &super.ID})
	require.NoError(t, err)
	son, err := svc.CreateCategory(&CreateCategoryRequest{Name: "패브릭 소파", ParentID: &parent.ID})
	require.NoError(t, err)
	// A fourth level stays out of the menu
	_, err = svc.CreateCategory(&CreateCategoryRequest{Name: "3인용", ParentID: &son.ID})
	require.NoError(t, err)

	menu, err := svc.BuildMenu()
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, super.ID, menu[0].Super.ID)
	require.Len(t, menu[0].Children, 1)
	assert.Equal(t, parent.ID, menu[0].Children[0].ID)
	require.Len(t, menu[0].Children[0].Children, 1)
	assert.Equal(t, son.ID, menu[0].Children[0].Children[0].ID)
	// The son's own children are not loaded
	assert.Empty(t, menu[0].Children[0].Children[0].Children)
}

func TestCatalogServiceDeleteCategoryGuards(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	super, err := svc.CreateCategory(&CreateCategoryRequest{Name: "가구"})
	require.NoError(t, err)
	child, err := svc.CreateCategory(&CreateCategoryRequest{Name: "소파", ParentID: &super.ID})
	require.NoError(t, err)

	// Still has a child
	assert.Error(t, svc.DeleteCategory(super.ID))

	_, err = svc.CreateProduct(&CreateProductRequest{
		CategoryID: child.ID,
		Name:       "패브릭 소파",
		Price:      450000,
	})
	require.NoError(t, err)

	// Still has a product
	assert.Error(t, svc.DeleteCategory(child.ID))
}

func TestCatalogServiceProductCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	category, err := svc.CreateCategory(&CreateCategoryRequest{Name: "침실 가구"})
	require.NoError(t, err)

	product, err := svc.CreateProduct(&CreateProductRequest{
		CategoryID:  category.ID,
		Name:        "퀸 침대",
		Description: "퀸 사이즈 침대 프레임",
		Price:       800000,
		DeliveryFee: 50000,
		Images:      []string{"/uploads/products/bed1.jpg"},
	})
	require.NoError(t, err)

	found, err := svc.FindProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "퀸 침대", found.Name)
	require.Len(t, found.Images, 1)

	newName := "퀸 침대 프레임"
	newPrice := int64(750000)
	_, err = svc.UpdateProduct(product.ID, &UpdateProductRequest{Name: &newName, Price: &newPrice})
	require.NoError(t, err)

	reloaded, err := svc.FindProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, newName, reloaded.Name)
	assert.Equal(t, newPrice, reloaded.Price)

	_, err = svc.CreateProduct(&CreateProductRequest{CategoryID: uuid.New(), Name: "유령", Price: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogServiceDeleteProductRemovesOptions(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	_, product := createTestCatalog(t, db)
	createTestOption(t, db, product.ID, "그레이", 0, 5)
	createTestOption(t, db, product.ID, "베이지", 0, 5)

	require.NoError(t, svc.DeleteProduct(product.ID))

	_, err := svc.FindProductByID(product.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var optionCount int64
	require.NoError(t, db.Model(&models.Option{}).Where("product_id = ?", product.ID).Count(&optionCount).Error)
	assert.Equal(t, int64(0), optionCount)
}

func TestCatalogServiceFindProductsByCategoryPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	category, err := svc.CreateCategory(&CreateCategoryRequest{Name: "의자"})
	require.NoError(t, err)

	for i := 0; i < 25; i++ {
		_, err := svc.CreateProduct(&CreateProductRequest{
			CategoryID: category.ID,
			Name:       "의자",
			Price:      int64(10000 + i),
		})
		require.NoError(t, err)
	}

	params := utils.PaginationParams{Page: 2, Limit: 10, Sort: "price", Order: "asc"}
	products, total, err := svc.FindProductsByCategory(category.ID, params)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, products, 10)
	assert.Equal(t, int64(10010), products[0].Price)
}
