// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hyeonwoo-dev/furniture-shop/internal/i18n"
	"github.com/hyeonwoo-dev/furniture-shop/internal/services"
	"github.com/hyeonwoo-dev/furniture-shop/internal/utils"
)

// Session cookie lifetime in seconds, matching the access token TTL.
const sessionCookieMaxAge = 3600

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /api/join
func (h *AuthHandler) Join(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.authService.Join(&req)
	if err != nil {
		handleServiceError(c, err, i18n.KeyUserNotFound)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthJoinSuccess),
		"user":    user,
	})
}

// POST /api/join/admin
func (h *AuthHandler) JoinAdmin(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.authService.JoinAdmin(&req)
	if err != nil {
		handleServiceError(c, err, i18n.KeyUserNotFound)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthJoinSuccess),
		"user":    user,
	})
}

// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, pair, err := h.authService.Login(&req)
	if err != nil {
		handleServiceError(c, err, i18n.KeyUserNotFound)
		return
	}

	// The browser session rides on the "token" cookie
	c.SetCookie("token", pair.AccessToken, sessionCookieMaxAge, "/", "", false, true)

	utils.SuccessResponse(c, gin.H{
		"message":       i18n.T(lang, i18n.KeyAuthLoginSuccess),
		"user":          user,
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	tokenVal, _ := c.Get("access_token")
	token, _ := tokenVal.(string)
	if token != "" {
		if claims, err := utils.ValidateJWT(token); err == nil {
			if err := h.authService.Logout(c.Request.Context(), token, claims); err != nil {
				utils.InternalErrorResponse(c, err.Error())
				return
			}
		}
	}

	// Drop the session cookie
	c.SetCookie("token", "", -1, "/", "", false, true)

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthLogoutSuccess),
	})
}

// POST /api/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, pair, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		handleServiceError(c, err, i18n.KeyUserNotFound)
		return
	}

	c.SetCookie("token", pair.AccessToken, sessionCookieMaxAge, "/", "", false, true)

	utils.SuccessResponse(c, gin.H{
		"user":          user,
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// GET /api/user/info
func (h *AuthHandler) UserInfo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	// Admins may look up another user by the email+username pair
	if email, username := c.Query("email"), c.Query("username"); email != "" && username != "" && isAdmin(c) {
		user, err := h.authService.FindUser(email, username)
		if err != nil {
			handleServiceError(c, err, i18n.KeyUserNotFound)
			return
		}
		utils.SuccessResponse(c, gin.H{"user": user})
		return
	}

	user, err := h.authService.FindUserByID(userID)
	if err != nil {
		handleServiceError(c, err, i18n.KeyUserNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}
