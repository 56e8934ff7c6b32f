// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/hyeonwoo-dev/furniture-shop/internal/models"
	"github.com/hyeonwoo-dev/furniture-shop/internal/utils"
)

// CatalogService owns categories and products. Categories form a tree
// via ParentID; the storefront menu walks two levels down from the
// root categories.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

type CreateCategoryRequest struct {
	Name     string     `json:"name" validate:"required,max=100"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type UpdateCategoryRequest struct {
	Name     *string    `json:"name" validate:"omitempty,max=100"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type CreateProductRequest struct {
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	Name        string    `json:"name" validate:"required,max=255"`
	Description string    `json:"description"`
	Price       int64     `json:"price" validate:"min=0"`
	DeliveryFee int64     `json:"delivery_fee" validate:"min=0"`
	Images      []string  `json:"images"`
}

type UpdateProductRequest struct {
	CategoryID  *uuid.UUID `json:"category_id"`
	Name        *string    `json:"name" validate:"omitempty,max=255"`
	Description *string    `json:"description"`
	Price       *int64     `json:"price" validate:"omitempty,min=0"`
	DeliveryFee *int64     `json:"delivery_fee" validate:"omitempty,min=0"`
	Images      []string   `json:"images"`
}

// MenuEntry is one root category with its two descendant levels
// flattened for the menu template.
type MenuEntry struct {
	Super    models.Category   `json:"super"`
	Children []models.Category `json:"children"`
}

func (s *CatalogService) CreateCategory(req *CreateCategoryRequest) (*models.Category, error) {
	if req.ParentID != nil {
		var parent models.Category
		if err := s.db.First(&parent, "id = ?", *req.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("parent category %s: %w", *req.ParentID, ErrNotFound)
			}
			return nil, fmt.Errorf("failed to load parent category: %w", err)
		}
	}

	category := &models.Category{
		Name:     req.Name,
		ParentID: req.ParentID,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CatalogService) FindCategoryByID(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.Preload("Children").First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return &category, nil
}

// FindSuperCategories lists root categories (no parent).
func (s *CatalogService) FindSuperCategories() ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.Where("parent_id IS NULL").Order("name asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) FindChildCategories(parentID uuid.UUID) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.Where("parent_id = ?", parentID).Order("name asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list child categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) FindAllCategories() ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// BuildMenu walks two levels below each root category: the roots, their
// children, and their children's children.
func (s *CatalogService) BuildMenu() ([]MenuEntry, error) {
	supers, err := s.FindSuperCategories()
	if err != nil {
		return nil, err
	}

	menu := make([]MenuEntry, 0, len(supers))
	for _, super := range supers {
		var children []models.Category
		err := s.db.Preload("Children").
			Where("parent_id = ?", super.ID).
			Order("name asc").
			Find(&children).Error
		if err != nil {
			return nil, fmt.Errorf("failed to build menu: %w", err)
		}
		menu = append(menu, MenuEntry{Super: super, Children: children})
	}
	return menu, nil
}

func (s *CatalogService) UpdateCategory(id uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.FindCategoryByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, fmt.Errorf("category cannot be its own parent")
		}
		updates["parent_id"] = *req.ParentID
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
	}
	return category, nil
}

// DeleteCategory removes a category. Categories that still hold
// products or child categories cannot be deleted.
func (s *CatalogService) DeleteCategory(id uuid.UUID) error {
	var childCount int64
	if err := s.db.Model(&models.Category{}).Where("parent_id = ?", id).Count(&childCount).Error; err != nil {
		return fmt.Errorf("failed to count children: %w", err)
	}
	if childCount > 0 {
		return fmt.Errorf("category %s still has child categories", id)
	}

	var productCount int64
	if err := s.db.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if productCount > 0 {
		return fmt.Errorf("category %s still has products", id)
	}

	result := s.db.Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *CatalogService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %s: %w", req.CategoryID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	product := &models.Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		DeliveryFee: req.DeliveryFee,
		Images:      pq.StringArray(req.Images),
	}
	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) FindProductByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Category").Preload("Options").First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &product, nil
}

// FindProductsByCategory lists the products directly under one
// category, paginated.
func (s *CatalogService) FindProductsByCategory(categoryID uuid.UUID, params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Where("category_id = ?", categoryID)

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products := []models.Product{}
	query = utils.ApplySort(query, params, []string{"created_at", "name", "price"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

func (s *CatalogService) FindAllProducts(params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products := []models.Product{}
	query = utils.ApplySort(query.Preload("Category"), params, []string{"created_at", "name", "price"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

func (s *CatalogService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	product, err := s.FindProductByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.DeliveryFee != nil {
		updates["delivery_fee"] = *req.DeliveryFee
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}
	return product, nil
}

// DeleteProduct removes a product and its options together.
func (s *CatalogService) DeleteProduct(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.Option{}).Error; err != nil {
			return fmt.Errorf("failed to delete options: %w", err)
		}

		result := tx.Delete(&models.Product{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete product: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil
	})
}
