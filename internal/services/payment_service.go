// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/refund"
	"gorm.io/gorm"

	"github.com/hyeonwoo-dev/furniture-shop/internal/config"
	"github.com/hyeonwoo-dev/furniture-shop/internal/models"
)

// PaymentService records payment confirmations (order checks) against
// orders and drives the Stripe payment intent flow.
type PaymentService struct {
	db           *gorm.DB
	orderService *OrderService
	config       *config.Config
}

func NewPaymentService(db *gorm.DB, orderService *OrderService, cfg *config.Config) *PaymentService {
	if cfg.Payment.StripeSecretKey != "" {
		stripe.Key = cfg.Payment.StripeSecretKey
	}
	return &PaymentService{db: db, orderService: orderService, config: cfg}
}

type CreateIntentRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
}

type ConfirmPaymentRequest struct {
	PaymentReference string `json:"payment_reference" validate:"required"`
}

// PaymentIntentResult carries what the checkout page needs to finish
// the payment client side.
type PaymentIntentResult struct {
	Check        *models.OrderCheck `json:"check"`
	ClientSecret string             `json:"client_secret"`
}

// CreateIntent opens a Stripe payment intent for the order total and
// records a pending order check referencing it.
func (s *PaymentService) CreateIntent(userID uuid.UUID, req *CreateIntentRequest) (*PaymentIntentResult, error) {
	if s.config.Payment.StripeSecretKey == "" {
		return nil, fmt.Errorf("payment provider is not configured")
	}

	order, err := s.orderService.FindByID(req.OrderID, userID, false)
	if err != nil {
		return nil, err
	}

	amount := s.orderService.Total(order)
	if amount <= 0 {
		return nil, fmt.Errorf("order %s has nothing to pay", order.ID)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyKRW)),
		Params: stripe.Params{
			Metadata: map[string]string{
				"order_id": order.ID.String(),
				"user_id":  userID.String(),
			},
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	check := &models.OrderCheck{
		OrderID:          order.ID,
		UserID:           userID,
		PaymentReference: intent.ID,
		Amount:           amount,
		Status:           models.PaymentStatusPending,
	}
	if err := s.db.Create(check).Error; err != nil {
		return nil, fmt.Errorf("failed to create order check: %w", err)
	}

	return &PaymentIntentResult{Check: check, ClientSecret: intent.ClientSecret}, nil
}

// Confirm verifies the intent with Stripe and marks the order check
// confirmed. A not-yet-succeeded intent marks the check failed so the
// shopper can retry with a fresh intent.
func (s *PaymentService) Confirm(userID uuid.UUID, req *ConfirmPaymentRequest) (*models.OrderCheck, error) {
	var check models.OrderCheck
	err := s.db.Where("payment_reference = ? AND user_id = ?", req.PaymentReference, userID).
		First(&check).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order check for %s: %w", req.PaymentReference, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load order check: %w", err)
	}

	if check.Status == models.PaymentStatusConfirmed {
		return &check, nil
	}

	intent, err := paymentintent.Get(req.PaymentReference, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		if err := s.db.Model(&check).Update("status", models.PaymentStatusFailed).Error; err != nil {
			return nil, fmt.Errorf("failed to update order check: %w", err)
		}
		check.Status = models.PaymentStatusFailed
		return &check, nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      models.PaymentStatusConfirmed,
		"approved_at": &now,
	}
	if err := s.db.Model(&check).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to confirm order check: %w", err)
	}
	check.Status = models.PaymentStatusConfirmed
	check.ApprovedAt = &now
	return &check, nil
}

// CancelCheck voids a check. Pending checks cancel the Stripe intent;
// confirmed checks are refunded before being marked cancelled.
func (s *PaymentService) CancelCheck(checkID, userID uuid.UUID, isAdmin bool) (*models.OrderCheck, error) {
	check, err := s.FindCheckByID(checkID, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	switch check.Status {
	case models.PaymentStatusPending:
		if s.config.Payment.StripeSecretKey != "" && check.PaymentReference != "" {
			if _, err := paymentintent.Cancel(check.PaymentReference, nil); err != nil {
				return nil, fmt.Errorf("failed to cancel payment intent: %w", err)
			}
		}
	case models.PaymentStatusConfirmed:
		if s.config.Payment.StripeSecretKey != "" && check.PaymentReference != "" {
			params := &stripe.RefundParams{
				PaymentIntent: stripe.String(check.PaymentReference),
			}
			if _, err := refund.New(params); err != nil {
				return nil, fmt.Errorf("failed to refund payment: %w", err)
			}
		}
	default:
		return nil, fmt.Errorf("order check %s is already %s", checkID, check.Status)
	}

	if err := s.db.Model(check).Update("status", models.PaymentStatusCancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel order check: %w", err)
	}
	check.Status = models.PaymentStatusCancelled
	return check, nil
}

func (s *PaymentService) FindCheckByID(checkID, userID uuid.UUID, isAdmin bool) (*models.OrderCheck, error) {
	var check models.OrderCheck
	err := s.db.Preload("Order").Preload("Order.Items").First(&check, "id = ?", checkID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order check %s: %w", checkID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load order check: %w", err)
	}

	if !isAdmin && check.UserID != userID {
		return nil, ErrForbidden
	}
	return &check, nil
}

func (s *PaymentService) FindChecksByUserID(userID uuid.UUID) ([]models.OrderCheck, error) {
	checks := []models.OrderCheck{}
	err := s.db.Preload("Order").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&checks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list order checks: %w", err)
	}
	return checks, nil
}
