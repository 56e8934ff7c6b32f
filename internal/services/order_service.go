// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyeonwoo-dev/furniture-shop/internal/models"
)

// OrderService converts carts into orders and cancels them. Placement
// and cancellation each run in one transaction so stock, order rows and
// cart rows always move together.
type OrderService struct {
	db            *gorm.DB
	optionService *OptionService
	cartService   *CartService
}

func NewOrderService(db *gorm.DB, optionService *OptionService, cartService *CartService) *OrderService {
	return &OrderService{
		db:            db,
		optionService: optionService,
		cartService:   cartService,
	}
}

// Place turns the user's entire cart into an order. Inside one
// transaction it snapshots the cart into order items, deducts stock for
// every line and clears the cart. Any line without enough stock rolls
// the whole order back.
func (s *OrderService) Place(userID uuid.UUID) (*models.Order, error) {
	var order *models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cartItems []models.CartItem
		if err := tx.Where("user_id = ?", userID).Order("created_at asc").Find(&cartItems).Error; err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}
		if len(cartItems) == 0 {
			return fmt.Errorf("cart for user %s is empty: %w", userID, ErrNotFound)
		}

		order = &models.Order{
			UserID:    userID,
			OrderedAt: time.Now(),
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, cartItem := range cartItems {
			item := models.OrderItem{
				OrderID:  order.ID,
				OptionID: cartItem.OptionID,
				Quantity: cartItem.Quantity,
				Price:    cartItem.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			order.Items = append(order.Items, item)
		}

		if err := s.optionService.DeductStockOnOrder(tx, order.Items); err != nil {
			return err
		}

		return s.cartService.Clear(tx, userID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// FindByID loads an order with its items and their options. Non-admin
// callers only see their own orders.
func (s *OrderService) FindByID(orderID, userID uuid.UUID, isAdmin bool) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").Preload("Items.Option").Preload("Items.Option.Product").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if !isAdmin && order.UserID != userID {
		return nil, ErrForbidden
	}
	return &order, nil
}

// FindByUserID lists a user's orders newest first.
func (s *OrderService) FindByUserID(userID uuid.UUID) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.Preload("Items").Preload("Items.Option").
		Where("user_id = ?", userID).
		Order("ordered_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Cancel deletes an order and its items and returns every item's
// quantity to stock, all in one transaction. Only the owner (or an
// admin) may cancel.
func (s *OrderService) Cancel(orderID, userID uuid.UUID, isAdmin bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
			}
			return fmt.Errorf("failed to load order: %w", err)
		}

		if !isAdmin && order.UserID != userID {
			return ErrForbidden
		}

		if err := s.optionService.RestoreStockOnOrderCancel(tx, order.Items); err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		if err := tx.Delete(&order).Error; err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}

		// Pending payment checks die with the order
		err := tx.Model(&models.OrderCheck{}).
			Where("order_id = ? AND status = ?", orderID, models.PaymentStatusPending).
			Update("status", models.PaymentStatusCancelled).Error
		if err != nil {
			return fmt.Errorf("failed to cancel payment checks: %w", err)
		}
		return nil
	})
}

// Total sums item price times quantity for display; delivery fees are
// shown separately on the product.
func (s *OrderService) Total(order *models.Order) int64 {
	var total int64
	for _, item := range order.Items {
		total += item.Price * item.Quantity
	}
	return total
}
