// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyeonwoo-dev/furniture-shop/internal/models"
)

// CartService manages the per-user cart. Unlike options, an empty cart
// listing is a normal state and returns an empty slice.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

type AddCartItemRequest struct {
	OptionID uuid.UUID `json:"option_id" validate:"required"`
	Quantity int64     `json:"quantity" validate:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity" validate:"required,min=1"`
}

// Add puts an option into the user's cart, snapshotting the option
// price. Adding the same option again merges into the existing row.
func (s *CartService) Add(userID uuid.UUID, req *AddCartItemRequest) (*models.CartItem, error) {
	var option models.Option
	if err := s.db.First(&option, "id = ?", req.OptionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("option %s: %w", req.OptionID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load option: %w", err)
	}

	var item models.CartItem
	err := s.db.Where("user_id = ? AND option_id = ?", userID, req.OptionID).First(&item).Error
	if err == nil {
		item.Quantity += req.Quantity
		item.Price = option.Price
		if err := s.db.Save(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
		return &item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check cart: %w", err)
	}

	item = models.CartItem{
		UserID:   userID,
		OptionID: req.OptionID,
		Quantity: req.Quantity,
		Price:    option.Price,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	return &item, nil
}

// FindByUserID lists the user's cart with options and their products
// preloaded for display. An empty cart is an empty slice, not an error.
func (s *CartService) FindByUserID(userID uuid.UUID) ([]models.CartItem, error) {
	items := []models.CartItem{}
	err := s.db.Preload("Option").Preload("Option.Product").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	return items, nil
}

// UpdateQuantity changes the quantity of one of the caller's own cart
// rows. Touching another user's row is reported as not found.
func (s *CartService) UpdateQuantity(userID, itemID uuid.UUID, req *UpdateCartItemRequest) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load cart item: %w", err)
	}

	item.Quantity = req.Quantity
	if err := s.db.Model(&item).UpdateColumn("quantity", req.Quantity).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return &item, nil
}

func (s *CartService) Remove(userID, itemID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
	}
	return nil
}

// Clear drops every row in the user's cart. Used after an order is
// placed; deleting zero rows is fine.
func (s *CartService) Clear(tx *gorm.DB, userID uuid.UUID) error {
	if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
