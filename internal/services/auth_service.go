// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyeonwoo-dev/furniture-shop/internal/config"
	"github.com/hyeonwoo-dev/furniture-shop/internal/models"
	"github.com/hyeonwoo-dev/furniture-shop/internal/utils"
)

// AuthService handles registration, login and token issuance. Login
// yields an access token (carried in the "token" cookie) plus a refresh
// token stored against the user row; logout blacklists the access token
// for its remaining lifetime.
type AuthService struct {
	db        *gorm.DB
	blacklist *TokenBlacklist
	config    *config.Config
}

func NewAuthService(db *gorm.DB, blacklist *TokenBlacklist, cfg *config.Config) *AuthService {
	return &AuthService{db: db, blacklist: blacklist, config: cfg}
}

type JoinRequest struct {
	Username    string `json:"username" validate:"required,username"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Join registers a new user. Email is the login identity and must be
// unique; a taken address is reported as ErrDuplicateEmail.
func (s *AuthService) Join(req *JoinRequest) (*models.User, error) {
	return s.join(req, false)
}

// JoinAdmin registers a user that also carries the admin role.
func (s *AuthService) JoinAdmin(req *JoinRequest) (*models.User, error) {
	return s.join(req, true)
}

func (s *AuthService) join(req *JoinRequest, admin bool) (*models.User, error) {
	var existing models.User
	err := s.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("email %s: %w", req.Email, ErrDuplicateEmail)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Roles:       models.RoleUser,
	}
	if admin {
		user.AddAdminRole()
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login checks credentials and issues a token pair. Wrong email and
// wrong password look identical to the caller.
func (s *AuthService) Login(req *LoginRequest) (*models.User, *TokenPair, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUnauthorized
		}
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, nil, ErrUnauthorized
	}

	pair, err := s.issueTokens(&user)
	if err != nil {
		return nil, nil, err
	}
	return &user, pair, nil
}

// Logout blacklists the presented access token until it would have
// expired and drops the stored refresh token.
func (s *AuthService) Logout(ctx context.Context, token string, claims *utils.JWTClaims) error {
	if err := s.blacklist.Ban(ctx, token, utils.TokenRemainingTTL(claims)); err != nil {
		return err
	}

	err := s.db.Model(&models.User{}).
		Where("id = ?", claims.UserID).
		Update("refresh_token", nil).Error
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// Refresh exchanges a valid refresh token for a new token pair. The
// presented token must match the one stored on the user row; rotation
// invalidates the old one.
func (s *AuthService) Refresh(refreshToken string) (*models.User, *TokenPair, error) {
	subject, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, ErrUnauthorized
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", subject).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUnauthorized
		}
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, nil, ErrUnauthorized
	}

	pair, err := s.issueTokens(&user)
	if err != nil {
		return nil, nil, err
	}
	return &user, pair, nil
}

// FindUser looks a user up by the email+username pair, the identity
// form the storefront's profile lookups use.
func (s *AuthService) FindUser(email, username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ? AND username = ?", email, username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) FindUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	accessTTL := time.Duration(s.config.JWT.AccessTokenTTL) * time.Hour
	refreshTTL := time.Duration(s.config.JWT.RefreshTokenTTL) * time.Hour

	accessToken, err := utils.GenerateAccessToken(user.ID, user.Username, user.Roles, accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID, refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	err = s.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("refresh_token", refreshToken).Error
	if err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
