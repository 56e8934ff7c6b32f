// internal/services/option_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyeonwoo-dev/furniture-shop/internal/models"
)

// OptionService is the single writer of option stock. All stock
// mutations go through DeductStock/RestoreStock (or the admin
// overwrite); nothing else touches stock_quantity.
type OptionService struct {
	db *gorm.DB
}

func NewOptionService(db *gorm.DB) *OptionService {
	return &OptionService{db: db}
}

type CreateOptionRequest struct {
	ProductID     uuid.UUID `json:"product_id" validate:"required"`
	Name          string    `json:"name" validate:"required,max=255"`
	Price         int64     `json:"price" validate:"min=0"`
	StockQuantity int64     `json:"stock_quantity" validate:"min=0"`
}

type UpdateOptionRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=255"`
	Price *int64  `json:"price" validate:"omitempty,min=0"`
}

// Create attaches a new option to an existing product. A missing
// product is reported as ErrNotFound, not a foreign key violation.
func (s *OptionService) Create(req *CreateOptionRequest) (*models.Option, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", req.ProductID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	option := &models.Option{
		ProductID:     req.ProductID,
		Name:          req.Name,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	}

	if err := s.db.Create(option).Error; err != nil {
		return nil, fmt.Errorf("failed to create option: %w", err)
	}
	return option, nil
}

func (s *OptionService) FindByID(id uuid.UUID) (*models.Option, error) {
	var option models.Option
	if err := s.db.First(&option, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("option %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load option: %w", err)
	}
	return &option, nil
}

// FindByProductID lists a product's options. A product with no options
// yields ErrNotFound rather than an empty list; callers that want the
// soft form should recover from it.
func (s *OptionService) FindByProductID(productID uuid.UUID) ([]models.Option, error) {
	var options []models.Option
	if err := s.db.Where("product_id = ?", productID).Order("created_at asc").Find(&options).Error; err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("options for product %s: %w", productID, ErrNotFound)
	}
	return options, nil
}

// FindAll lists every option with its product preloaded, for the admin
// page. Like FindByProductID it treats an empty table as ErrNotFound.
func (s *OptionService) FindAll() ([]models.Option, error) {
	var options []models.Option
	if err := s.db.Preload("Product").Order("created_at desc").Find(&options).Error; err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}
	if len(options) == 0 {
		return nil, ErrNotFound
	}
	return options, nil
}

func (s *OptionService) Update(id uuid.UUID, req *UpdateOptionRequest) (*models.Option, error) {
	option, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}

	if len(updates) > 0 {
		if err := s.db.Model(option).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update option: %w", err)
		}
	}
	return option, nil
}

func (s *OptionService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Option{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete option: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("option %s: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateStock overwrites the absolute stock level. Admin only; normal
// order flow uses DeductStock/RestoreStock instead.
func (s *OptionService) UpdateStock(id uuid.UUID, quantity int64) (*models.Option, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("stock quantity must not be negative: %w", ErrInsufficientStock)
	}

	option, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(option).UpdateColumn("stock_quantity", quantity).Error; err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}
	option.StockQuantity = quantity
	return option, nil
}

// DeductStock atomically subtracts quantity from an option's stock. The
// guard clause in the UPDATE keeps stock from ever going negative even
// under concurrent orders; losing the race surfaces as
// ErrInsufficientStock.
func (s *OptionService) DeductStock(tx *gorm.DB, optionID uuid.UUID, quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("deduct quantity must be positive")
	}

	result := tx.Model(&models.Option{}).
		Where("id = ? AND stock_quantity >= ?", optionID, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to deduct stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var option models.Option
		if err := tx.First(&option, "id = ?", optionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("option %s: %w", optionID, ErrNotFound)
			}
			return fmt.Errorf("failed to load option: %w", err)
		}
		return fmt.Errorf("option %s has %d left, requested %d: %w",
			optionID, option.StockQuantity, quantity, ErrInsufficientStock)
	}
	return nil
}

// DeductStockOnOrder deducts stock for every order line inside the
// caller's transaction. The first failing line aborts, rolling back
// the lines already deducted with it.
func (s *OptionService) DeductStockOnOrder(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		if err := s.DeductStock(tx, item.OptionID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// RestoreStockOnOrderCancel returns every order line's quantity to
// stock inside the caller's transaction.
func (s *OptionService) RestoreStockOnOrderCancel(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		if err := s.RestoreStock(tx, item.OptionID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// RestoreStock returns quantity to an option's stock after an order is
// cancelled.
func (s *OptionService) RestoreStock(tx *gorm.DB, optionID uuid.UUID, quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("restore quantity must be positive")
	}

	result := tx.Model(&models.Option{}).
		Where("id = ?", optionID).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to restore stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("option %s: %w", optionID, ErrNotFound)
	}
	return nil
}
